package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"sigs.k8s.io/yaml"

	specpkg "github.com/petalstack/florist/api"
	"github.com/petalstack/florist/internal/api"
	"github.com/petalstack/florist/internal/auth"
	"github.com/petalstack/florist/internal/flower"
	"github.com/petalstack/florist/internal/metrics"
)

// openAPISpec is the minimal structure needed to extract paths from the OpenAPI document.
type openAPISpec struct {
	Paths map[string]map[string]interface{} `json:"paths"`
}

var httpMethods = map[string]bool{
	"GET": true, "POST": true, "PUT": true, "PATCH": true, "DELETE": true, "HEAD": true, "OPTIONS": true,
}

type route struct {
	method string
	path   string
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestRouter(t *testing.T, authService *auth.Service) (*chi.Mux, *flower.Repository) {
	t.Helper()
	reg := prometheus.NewRegistry()
	repo := flower.NewRepository()
	r := api.NewRouter(api.RouterDeps{
		Repo:        repo,
		AuthService: authService,
		Metrics:     metrics.NewCatalogMetrics(reg),
		Gatherer:    reg,
		Logger:      quietLogger(),
		Version:     "test",
		OpenAPISpec: specpkg.OpenAPISpec,
	})
	return r, repo
}

func do(r http.Handler, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestOpenAPISpec_RoutesCoverAllPaths(t *testing.T) {
	t.Parallel()

	specJSON, err := yaml.YAMLToJSON(specpkg.OpenAPISpec)
	require.NoError(t, err, "embedded OpenAPI document must convert to JSON")

	var spec openAPISpec
	require.NoError(t, json.Unmarshal(specJSON, &spec), "OpenAPI JSON must unmarshal")

	specRoutes := extractSpecRoutes(spec)
	require.NotEmpty(t, specRoutes, "OpenAPI document should define at least one route")

	router, _ := newTestRouter(t, nil)
	chiRoutes := extractChiRoutes(t, router)
	require.NotEmpty(t, chiRoutes, "Chi router should have at least one route")

	for _, sr := range specRoutes {
		t.Run(fmt.Sprintf("spec_%s_%s_has_Chi_route", sr.method, sr.path), func(t *testing.T) {
			assert.Contains(t, chiRoutes, sr, "OpenAPI route %s %s not found in Chi router", sr.method, sr.path)
		})
	}

	for _, cr := range chiRoutes {
		t.Run(fmt.Sprintf("Chi_%s_%s_has_spec_path", cr.method, cr.path), func(t *testing.T) {
			assert.Contains(t, specRoutes, cr, "Chi route %s %s not found in OpenAPI spec", cr.method, cr.path)
		})
	}
}

func TestRouter_FlowerAndVariantLifecycle(t *testing.T) {
	t.Parallel()

	router, repo := newTestRouter(t, nil)

	w := do(router, http.MethodGet, "/reports/flowers", nil, nil)
	assert.Equal(t, "true", w.Header().Get("X-Report-Empty"))
	assert.Contains(t, w.Body.String(), flower.NoFlowersStored)

	w = do(router, http.MethodPost, "/flowers", map[string]interface{}{"name": "Tulip", "inSeason": true, "averageHeight": 0.3, "meaning": "Love"}, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = do(router, http.MethodPost, "/flowers/0/variants", map[string]interface{}{"name": "Red Tulip", "expectedBloomLife": 10, "colour": "Red", "available": true, "price": 5.0}, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = do(router, http.MethodGet, "/flowers/0/variants/0", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(router, http.MethodGet, "/stats", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"availableVariants":1`)

	w = do(router, http.MethodDelete, "/flowers/0", nil, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, 0, repo.Count())

	w = do(router, http.MethodGet, "/flowers/0", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_RequiresAPIKeyForMutations(t *testing.T) {
	t.Parallel()

	gen := auth.NewService("", bcrypt.MinCost)
	rawKey, hash, err := gen.GenerateKey()
	require.NoError(t, err)
	router, repo := newTestRouter(t, auth.NewService(hash, bcrypt.MinCost))

	w := do(router, http.MethodPost, "/flowers", map[string]string{"name": "Tulip"}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, 0, repo.Count())

	w = do(router, http.MethodPost, "/flowers", map[string]string{"name": "Tulip"}, map[string]string{"X-API-Key": rawKey})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = do(router, http.MethodGet, "/flowers", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_MetricsEndpoint(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t, nil)
	do(router, http.MethodPost, "/flowers", map[string]string{"name": "Tulip"}, nil)

	w := do(router, http.MethodGet, "/metrics", nil, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `florist_catalog_operations_total{operation="add_flower",result="ok"} 1`)
	assert.Contains(t, w.Body.String(), "florist_catalog_flowers 1")
}

func TestRouter_RateLimited(t *testing.T) {
	t.Parallel()

	router := api.NewRouter(api.RouterDeps{
		Repo:           flower.NewRepository(),
		Logger:         quietLogger(),
		RateLimitRPS:   0.001,
		RateLimitBurst: 1,
	})

	assert.Equal(t, http.StatusOK, do(router, http.MethodGet, "/flowers", nil, nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, do(router, http.MethodGet, "/flowers", nil, nil).Code)
	assert.Equal(t, http.StatusOK, do(router, http.MethodGet, "/health", nil, nil).Code, "health is not rate limited")
}

func TestRouter_CORSPreflight(t *testing.T) {
	t.Parallel()

	router := api.NewRouter(api.RouterDeps{
		Repo:           flower.NewRepository(),
		Logger:         quietLogger(),
		AllowedOrigins: []string{"https://shop.example"},
	})

	w := do(router, http.MethodOptions, "/flowers", nil, map[string]string{
		"Origin":                         "https://shop.example",
		"Access-Control-Request-Method":  http.MethodPost,
		"Access-Control-Request-Headers": "X-API-Key",
	})

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://shop.example", w.Header().Get("Access-Control-Allow-Origin"))

	w = do(router, http.MethodGet, "/flowers", nil, map[string]string{"Origin": "https://other.example"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func extractSpecRoutes(spec openAPISpec) []route {
	var routes []route
	for path, item := range spec.Paths {
		for key := range item {
			method := strings.ToUpper(key)
			if !httpMethods[method] {
				continue
			}
			routes = append(routes, route{method: method, path: path})
		}
	}
	sortRoutes(routes)
	return routes
}

func extractChiRoutes(t *testing.T, r *chi.Mux) []route {
	t.Helper()
	var routes []route
	walkFunc := func(method, routePath string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		// Chi subroutes produce trailing slashes (e.g. /flowers/) while
		// OpenAPI uses /flowers.
		normalized := strings.TrimRight(routePath, "/")
		if normalized == "" {
			normalized = "/"
		}
		routes = append(routes, route{method: method, path: normalized})
		return nil
	}
	require.NoError(t, chi.Walk(r, walkFunc), "chi.Walk should not error")
	sortRoutes(routes)
	return routes
}

func sortRoutes(routes []route) {
	sort.Slice(routes, func(i, j int) bool {
		if routes[i].path == routes[j].path {
			return routes[i].method < routes[j].method
		}
		return routes[i].path < routes[j].path
	})
}
