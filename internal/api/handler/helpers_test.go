package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/petalstack/florist/internal/flower"
	"github.com/petalstack/florist/internal/metrics"
)

func makeChiRequest(method, path string, body []byte, params map[string]string) (*http.Request, *httptest.ResponseRecorder) {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, path, bytes.NewReader(body))
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()

	if len(params) > 0 {
		rctx := chi.NewRouteContext()
		for k, v := range params {
			rctx.URLParams.Add(k, v)
		}
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	}

	return req, w
}

func parseEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var env map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &env)
	require.NoError(t, err, "failed to parse response body")
	return env
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	env := parseEnvelope(t, w)
	return env["error"].(map[string]interface{})["code"].(string)
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}

func newTestMetrics() *metrics.CatalogMetrics {
	return metrics.NewCatalogMetrics(prometheus.NewRegistry())
}

// seededRepo returns a repository with a blooming Tulip (id 0) carrying one
// available variant, and an out-of-season Holly (id 1) with none.
func seededRepo() *flower.Repository {
	repo := flower.NewRepository()
	tulip := repo.Add(flower.FlowerDetails{Name: "Tulip", InSeason: true, AverageHeight: 0.3, Meaning: "Love"})
	repo.Add(flower.FlowerDetails{Name: "Holly", AverageHeight: 1.2, Meaning: "Protection"})
	_, _ = repo.AddVariant(tulip.ID, flower.VariantDetails{Name: "Red Tulip", ExpectedBloomLife: 10, Colour: "Red", Available: true, Price: 5})
	return repo
}
