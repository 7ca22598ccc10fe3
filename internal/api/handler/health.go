package handler

import (
	"net/http"

	"github.com/petalstack/florist/internal/api/middleware"
	"github.com/petalstack/florist/internal/api/response"
)

// CatalogCounter reports the size of the catalogue.
type CatalogCounter interface {
	Count() int
}

// HealthHandler handles the GET /health endpoint.
type HealthHandler struct {
	catalog CatalogCounter
	version string
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(catalog CatalogCounter, version string) *HealthHandler {
	return &HealthHandler{
		catalog: catalog,
		version: version,
	}
}

type healthData struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Flowers int    `json:"flowers"`
}

// ServeHTTP handles the health check request.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	response.Success(w, http.StatusOK, healthData{
		Status:  "healthy",
		Version: h.version,
		Flowers: h.catalog.Count(),
	}, requestID)
}
