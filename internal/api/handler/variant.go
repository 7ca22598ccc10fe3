package handler

import (
	"net/http"

	"github.com/petalstack/florist/internal/api/middleware"
	"github.com/petalstack/florist/internal/api/response"
	"github.com/petalstack/florist/internal/api/validation"
	"github.com/petalstack/florist/internal/flower"
	"github.com/petalstack/florist/internal/metrics"
)

// variantRequest is the request body for creating or replacing a variant.
type variantRequest struct {
	Name              string  `json:"name"`
	ExpectedBloomLife int     `json:"expectedBloomLife"`
	Colour            string  `json:"colour"`
	Available         bool    `json:"available"`
	Price             float64 `json:"price"`
}

type availabilityRequest struct {
	Available *bool `json:"available"`
}

type variantResponse struct {
	ID                int     `json:"id"`
	Name              string  `json:"name"`
	ExpectedBloomLife int     `json:"expectedBloomLife"`
	Colour            string  `json:"colour"`
	Available         bool    `json:"available"`
	Price             float64 `json:"price"`
}

// variantMatchResponse is a variant returned by a cross-flower query.
type variantMatchResponse struct {
	FlowerID   int             `json:"flowerId"`
	FlowerName string          `json:"flowerName"`
	Variant    variantResponse `json:"variant"`
}

func toVariantResponse(v flower.Variant) variantResponse {
	return variantResponse{
		ID:                v.ID,
		Name:              v.Name,
		ExpectedBloomLife: v.ExpectedBloomLife,
		Colour:            v.Colour,
		Available:         v.Available,
		Price:             v.Price,
	}
}

func toMatchResponses(matches []flower.VariantMatch) []variantMatchResponse {
	items := make([]variantMatchResponse, 0, len(matches))
	for _, m := range matches {
		items = append(items, variantMatchResponse{
			FlowerID:   m.FlowerID,
			FlowerName: m.FlowerName,
			Variant:    toVariantResponse(m.Variant),
		})
	}
	return items
}

func (req variantRequest) details() flower.VariantDetails {
	return flower.VariantDetails{
		Name:              req.Name,
		ExpectedBloomLife: req.ExpectedBloomLife,
		Colour:            req.Colour,
		Available:         req.Available,
		Price:             req.Price,
	}
}

// VariantHandler handles the variant endpoints, both per flower and across
// the whole catalogue.
type VariantHandler struct {
	repo    *flower.Repository
	metrics *metrics.CatalogMetrics
}

// NewVariantHandler creates a new VariantHandler. m may be nil.
func NewVariantHandler(repo *flower.Repository, m *metrics.CatalogMetrics) *VariantHandler {
	return &VariantHandler{repo: repo, metrics: m}
}

func (h *VariantHandler) decodeVariant(w http.ResponseWriter, r *http.Request, op string) (variantRequest, bool) {
	var req variantRequest
	if !decodeJSON(w, r, &req) {
		h.metrics.Observe(op, metrics.ResultInvalid)
		return req, false
	}
	return req, true
}

// Create handles POST /flowers/{id}/variants.
func (h *VariantHandler) Create(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	flowerID, ok := intParam(w, r, "id")
	if !ok {
		return
	}
	req, ok := h.decodeVariant(w, r, "add_variant")
	if !ok {
		return
	}

	v, err := h.repo.AddVariant(flowerID, req.details())
	h.metrics.Observe("add_variant", resultOf(err))
	if err != nil {
		writeCatalogErr(w, err, requestID)
		return
	}
	h.metrics.Refresh(h.repo)

	response.Success(w, http.StatusCreated, toVariantResponse(v), requestID)
}

// List handles GET /flowers/{id}/variants.
func (h *VariantHandler) List(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	flowerID, ok := intParam(w, r, "id")
	if !ok {
		return
	}

	f, found := h.repo.Find(flowerID)
	if !found {
		response.Err(w, http.StatusNotFound, "NOT_FOUND", "Flower not found", requestID)
		return
	}

	vs := f.Variants()
	items := make([]variantResponse, 0, len(vs))
	for _, v := range vs {
		items = append(items, toVariantResponse(v))
	}

	response.SuccessList(w, http.StatusOK, items, len(items), requestID)
}

// GetByID handles GET /flowers/{id}/variants/{variantId}.
func (h *VariantHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	flowerID, ok := intParam(w, r, "id")
	if !ok {
		return
	}
	variantID, ok := intParam(w, r, "variantId")
	if !ok {
		return
	}

	v, err := h.repo.FindVariant(flowerID, variantID)
	if err != nil {
		writeCatalogErr(w, err, requestID)
		return
	}

	response.Success(w, http.StatusOK, toVariantResponse(v), requestID)
}

// Update handles PUT /flowers/{id}/variants/{variantId}.
func (h *VariantHandler) Update(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	flowerID, ok := intParam(w, r, "id")
	if !ok {
		return
	}
	variantID, ok := intParam(w, r, "variantId")
	if !ok {
		return
	}
	req, ok := h.decodeVariant(w, r, "update_variant")
	if !ok {
		return
	}

	d := req.details()
	v, err := h.repo.UpdateVariant(flowerID, variantID, &d)
	h.metrics.Observe("update_variant", resultOf(err))
	if err != nil {
		writeCatalogErr(w, err, requestID)
		return
	}
	h.metrics.Refresh(h.repo)

	response.Success(w, http.StatusOK, toVariantResponse(v), requestID)
}

// SetAvailability handles PUT /flowers/{id}/variants/{variantId}/availability.
func (h *VariantHandler) SetAvailability(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	flowerID, ok := intParam(w, r, "id")
	if !ok {
		return
	}
	variantID, ok := intParam(w, r, "variantId")
	if !ok {
		return
	}

	var req availabilityRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if fieldErrors := validation.RequireFlag("available", req.Available); len(fieldErrors) > 0 {
		response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed", fieldErrors, requestID)
		return
	}

	v, err := h.repo.SetVariantAvailability(flowerID, variantID, *req.Available)
	h.metrics.Observe("set_variant_availability", resultOf(err))
	if err != nil {
		writeCatalogErr(w, err, requestID)
		return
	}
	h.metrics.Refresh(h.repo)

	response.Success(w, http.StatusOK, toVariantResponse(v), requestID)
}

// Delete handles DELETE /flowers/{id}/variants/{variantId}.
func (h *VariantHandler) Delete(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	flowerID, ok := intParam(w, r, "id")
	if !ok {
		return
	}
	variantID, ok := intParam(w, r, "variantId")
	if !ok {
		return
	}

	err := h.repo.DeleteVariant(flowerID, variantID)
	h.metrics.Observe("delete_variant", resultOf(err))
	if err != nil {
		writeCatalogErr(w, err, requestID)
		return
	}
	h.metrics.Refresh(h.repo)

	response.NoContent(w)
}

// Search handles GET /variants?q=. Without q every variant is returned.
func (h *VariantHandler) Search(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	items := toMatchResponses(h.repo.SearchVariants(r.URL.Query().Get("q")))
	response.SuccessList(w, http.StatusOK, items, len(items), requestID)
}

// Available handles GET /variants/available.
func (h *VariantHandler) Available(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	items := toMatchResponses(h.repo.AvailableVariants())
	response.SuccessList(w, http.StatusOK, items, len(items), requestID)
}
