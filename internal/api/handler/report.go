package handler

import (
	"net/http"

	"github.com/petalstack/florist/internal/api/middleware"
	"github.com/petalstack/florist/internal/api/response"
	"github.com/petalstack/florist/internal/flower"
)

type statsResponse struct {
	Flowers           int `json:"flowers"`
	BloomingFlowers   int `json:"bloomingFlowers"`
	AvailableVariants int `json:"availableVariants"`
}

// ReportHandler serves the plain-text catalogue reports and the counters.
type ReportHandler struct {
	repo *flower.Repository
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(repo *flower.Repository) *ReportHandler {
	return &ReportHandler{repo: repo}
}

func writeReport(w http.ResponseWriter, rep flower.Report) {
	response.Text(w, http.StatusOK, rep.String(), rep.Empty())
}

// Flowers handles GET /reports/flowers.
func (h *ReportHandler) Flowers(w http.ResponseWriter, _ *http.Request) {
	writeReport(w, h.repo.ListAllReport())
}

// Blooming handles GET /reports/blooming.
func (h *ReportHandler) Blooming(w http.ResponseWriter, _ *http.Request) {
	writeReport(w, h.repo.ListBloomingReport())
}

// Search handles GET /reports/search?q=.
func (h *ReportHandler) Search(w http.ResponseWriter, r *http.Request) {
	writeReport(w, h.repo.SearchByNameReport(r.URL.Query().Get("q")))
}

// Variants handles GET /reports/variants?q=.
func (h *ReportHandler) Variants(w http.ResponseWriter, r *http.Request) {
	writeReport(w, h.repo.SearchVariantsReport(r.URL.Query().Get("q")))
}

// AvailableVariants handles GET /reports/available-variants.
func (h *ReportHandler) AvailableVariants(w http.ResponseWriter, _ *http.Request) {
	writeReport(w, h.repo.AvailableVariantsReport())
}

// FlowerVariants handles GET /reports/flowers/{id}/variants.
func (h *ReportHandler) FlowerVariants(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(w, r, "id")
	if !ok {
		return
	}

	rep, err := h.repo.ListVariants(id)
	if err != nil {
		writeCatalogErr(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	writeReport(w, rep)
}

// Stats handles GET /stats.
func (h *ReportHandler) Stats(w http.ResponseWriter, r *http.Request) {
	response.Success(w, http.StatusOK, statsResponse{
		Flowers:           h.repo.Count(),
		BloomingFlowers:   h.repo.CountBlooming(),
		AvailableVariants: h.repo.CountAvailableVariants(),
	}, middleware.GetRequestID(r.Context()))
}
