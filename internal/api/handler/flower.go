package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/petalstack/florist/internal/api/middleware"
	"github.com/petalstack/florist/internal/api/response"
	"github.com/petalstack/florist/internal/api/validation"
	"github.com/petalstack/florist/internal/flower"
	"github.com/petalstack/florist/internal/metrics"
)

// flowerRequest is the request body for POST /flowers and PUT /flowers/{id}.
type flowerRequest struct {
	Name          string  `json:"name"`
	InSeason      bool    `json:"inSeason"`
	AverageHeight float64 `json:"averageHeight"`
	Meaning       string  `json:"meaning"`
}

type seasonRequest struct {
	InSeason *bool `json:"inSeason"`
}

// flowerResponse is the API representation of a flower and its variants.
type flowerResponse struct {
	ID            int               `json:"id"`
	Name          string            `json:"name"`
	InSeason      bool              `json:"inSeason"`
	AverageHeight float64           `json:"averageHeight"`
	Meaning       string            `json:"meaning"`
	Variants      []variantResponse `json:"variants"`
}

func toFlowerResponse(f *flower.Flower) flowerResponse {
	vs := f.Variants()
	variants := make([]variantResponse, 0, len(vs))
	for _, v := range vs {
		variants = append(variants, toVariantResponse(v))
	}
	return flowerResponse{
		ID:            f.ID,
		Name:          f.Name,
		InSeason:      f.InSeason,
		AverageHeight: f.AverageHeight,
		Meaning:       f.Meaning,
		Variants:      variants,
	}
}

func (req flowerRequest) details() flower.FlowerDetails {
	return flower.FlowerDetails{
		Name:          req.Name,
		InSeason:      req.InSeason,
		AverageHeight: req.AverageHeight,
		Meaning:       req.Meaning,
	}
}

// FlowerHandler handles flower CRUD endpoints.
type FlowerHandler struct {
	repo    *flower.Repository
	metrics *metrics.CatalogMetrics
}

// NewFlowerHandler creates a new FlowerHandler. m may be nil.
func NewFlowerHandler(repo *flower.Repository, m *metrics.CatalogMetrics) *FlowerHandler {
	return &FlowerHandler{repo: repo, metrics: m}
}

// Create handles POST /flowers.
func (h *FlowerHandler) Create(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var req flowerRequest
	if !decodeJSON(w, r, &req) {
		h.metrics.Observe("add_flower", metrics.ResultInvalid)
		return
	}

	f := h.repo.Add(req.details())
	h.metrics.Observe("add_flower", metrics.ResultOK)
	h.metrics.Refresh(h.repo)
	slog.Debug("flower added", "id", f.ID, "name", f.Name)

	response.Success(w, http.StatusCreated, toFlowerResponse(&f), requestID)
}

// List handles GET /flowers. The optional q parameter filters by name and
// inSeason keeps only flowers whose season flag equals the given value.
func (h *FlowerHandler) List(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var inSeason *bool
	if raw := r.URL.Query().Get("inSeason"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			response.Err(w, http.StatusBadRequest, "INVALID_QUERY", "inSeason must be true or false", requestID)
			return
		}
		inSeason = &v
	}

	var flowers []flower.Flower
	if q := r.URL.Query().Get("q"); q != "" {
		flowers = h.repo.SearchByName(q)
	} else {
		flowers = h.repo.List()
	}

	items := make([]flowerResponse, 0, len(flowers))
	for i := range flowers {
		if inSeason != nil && flowers[i].InSeason != *inSeason {
			continue
		}
		items = append(items, toFlowerResponse(&flowers[i]))
	}

	response.SuccessList(w, http.StatusOK, items, len(items), requestID)
}

// GetByID handles GET /flowers/{id}.
func (h *FlowerHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	id, ok := intParam(w, r, "id")
	if !ok {
		return
	}

	f, found := h.repo.Find(id)
	if !found {
		response.Err(w, http.StatusNotFound, "NOT_FOUND", "Flower not found", requestID)
		return
	}

	response.Success(w, http.StatusOK, toFlowerResponse(&f), requestID)
}

// Update handles PUT /flowers/{id}. Variants are left untouched.
func (h *FlowerHandler) Update(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	id, ok := intParam(w, r, "id")
	if !ok {
		return
	}

	var req flowerRequest
	if !decodeJSON(w, r, &req) {
		h.metrics.Observe("update_flower", metrics.ResultInvalid)
		return
	}

	d := req.details()
	f, err := h.repo.Update(id, &d)
	h.metrics.Observe("update_flower", resultOf(err))
	if err != nil {
		writeCatalogErr(w, err, requestID)
		return
	}
	h.metrics.Refresh(h.repo)

	response.Success(w, http.StatusOK, toFlowerResponse(&f), requestID)
}

// SetSeason handles PUT /flowers/{id}/season.
func (h *FlowerHandler) SetSeason(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	id, ok := intParam(w, r, "id")
	if !ok {
		return
	}

	var req seasonRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if fieldErrors := validation.RequireFlag("inSeason", req.InSeason); len(fieldErrors) > 0 {
		response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed", fieldErrors, requestID)
		return
	}

	f, err := h.repo.SetInSeason(id, *req.InSeason)
	h.metrics.Observe("set_in_season", resultOf(err))
	if err != nil {
		writeCatalogErr(w, err, requestID)
		return
	}
	h.metrics.Refresh(h.repo)

	response.Success(w, http.StatusOK, toFlowerResponse(&f), requestID)
}

// Delete handles DELETE /flowers/{id}.
func (h *FlowerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	id, ok := intParam(w, r, "id")
	if !ok {
		return
	}

	err := h.repo.Delete(id)
	h.metrics.Observe("delete_flower", resultOf(err))
	if err != nil {
		writeCatalogErr(w, err, requestID)
		return
	}
	h.metrics.Refresh(h.repo)
	slog.Debug("flower deleted", "id", id)

	response.NoContent(w)
}
