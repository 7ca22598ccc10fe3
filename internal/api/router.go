package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/petalstack/florist/internal/api/handler"
	"github.com/petalstack/florist/internal/api/middleware"
	"github.com/petalstack/florist/internal/auth"
	"github.com/petalstack/florist/internal/flower"
	"github.com/petalstack/florist/internal/metrics"
)

// RouterDeps holds all dependencies needed by the router.
type RouterDeps struct {
	Repo           *flower.Repository
	AuthService    *auth.Service
	Metrics        *metrics.CatalogMetrics
	Gatherer       prometheus.Gatherer
	Logger         *slog.Logger
	Version        string
	OpenAPISpec    []byte
	RateLimitRPS   float64
	RateLimitBurst int
	AllowedOrigins []string
}

// NewRouter creates and configures a Chi router with all middleware and routes.
func NewRouter(deps RouterDeps) *chi.Mux {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery)
	r.Use(chimiddleware.StripSlashes)
	r.Use(middleware.Logging(logger))
	if len(deps.AllowedOrigins) > 0 {
		r.Use(corsHandler(deps.AllowedOrigins))
	}

	healthHandler := handler.NewHealthHandler(deps.Repo, deps.Version)
	r.Get("/health", healthHandler.ServeHTTP)

	if len(deps.OpenAPISpec) > 0 {
		openapiHandler := handler.NewOpenAPIHandler(deps.OpenAPISpec)
		r.Get("/openapi.json", openapiHandler.ServeHTTP)
	}

	if deps.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	authService := deps.AuthService
	if authService == nil {
		authService = auth.NewService("", 0)
	}

	flowerHandler := handler.NewFlowerHandler(deps.Repo, deps.Metrics)
	variantHandler := handler.NewVariantHandler(deps.Repo, deps.Metrics)
	reportHandler := handler.NewReportHandler(deps.Repo)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(deps.RateLimitRPS, deps.RateLimitBurst))
		r.Use(middleware.MutatingOnly(middleware.RequireAPIKey(authService)))

		r.Route("/flowers", func(r chi.Router) {
			r.Post("/", flowerHandler.Create)
			r.Get("/", flowerHandler.List)
			r.Get("/{id}", flowerHandler.GetByID)
			r.Put("/{id}", flowerHandler.Update)
			r.Delete("/{id}", flowerHandler.Delete)
			r.Put("/{id}/season", flowerHandler.SetSeason)

			r.Route("/{id}/variants", func(r chi.Router) {
				r.Post("/", variantHandler.Create)
				r.Get("/", variantHandler.List)
				r.Get("/{variantId}", variantHandler.GetByID)
				r.Put("/{variantId}", variantHandler.Update)
				r.Delete("/{variantId}", variantHandler.Delete)
				r.Put("/{variantId}/availability", variantHandler.SetAvailability)
			})
		})

		r.Route("/variants", func(r chi.Router) {
			r.Get("/", variantHandler.Search)
			r.Get("/available", variantHandler.Available)
		})

		r.Route("/reports", func(r chi.Router) {
			r.Get("/flowers", reportHandler.Flowers)
			r.Get("/flowers/{id}/variants", reportHandler.FlowerVariants)
			r.Get("/blooming", reportHandler.Blooming)
			r.Get("/search", reportHandler.Search)
			r.Get("/variants", reportHandler.Variants)
			r.Get("/available-variants", reportHandler.AvailableVariants)
		})

		r.Get("/stats", reportHandler.Stats)
	})

	return r
}

// corsHandler answers preflight requests and lets browser clients send the
// API key and read the request id and report headers.
func corsHandler(origins []string) func(http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type", "X-API-Key", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID", "X-Report-Empty"},
		MaxAge:         300,
	}).Handler
}
