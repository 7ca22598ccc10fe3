package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/petalstack/florist/internal/api/middleware"
	"github.com/petalstack/florist/internal/api/response"
	"github.com/petalstack/florist/internal/flower"
	"github.com/petalstack/florist/internal/metrics"
)

const maxBodyBytes = 1 << 20

// decodeJSON reads the request body into dst. On failure it writes the error
// response and returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_JSON", "Request body must be valid JSON", middleware.GetRequestID(r.Context()))
		return false
	}
	return true
}

// intParam parses a numeric URL parameter. On failure it writes the error
// response and returns false.
func intParam(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	v, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_ID", name+" must be an integer", middleware.GetRequestID(r.Context()))
		return 0, false
	}
	return v, true
}

// writeCatalogErr maps catalogue errors to API errors.
func writeCatalogErr(w http.ResponseWriter, err error, requestID string) {
	switch {
	case errors.Is(err, flower.ErrFlowerNotFound):
		response.Err(w, http.StatusNotFound, "NOT_FOUND", "Flower not found", requestID)
	case errors.Is(err, flower.ErrVariantNotFound):
		response.Err(w, http.StatusNotFound, "NOT_FOUND", "Variant not found", requestID)
	case errors.Is(err, flower.ErrMissingDetails):
		response.Err(w, http.StatusBadRequest, "VALIDATION_ERROR", "Request details are required", requestID)
	default:
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Catalogue operation failed", requestID)
	}
}

func resultOf(err error) string {
	switch {
	case err == nil:
		return metrics.ResultOK
	case errors.Is(err, flower.ErrFlowerNotFound), errors.Is(err, flower.ErrVariantNotFound):
		return metrics.ResultNotFound
	case errors.Is(err, flower.ErrMissingDetails):
		return metrics.ResultInvalid
	default:
		return metrics.ResultError
	}
}
