package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	specpkg "github.com/petalstack/florist/api"
	"github.com/petalstack/florist/internal/api"
	"github.com/petalstack/florist/internal/auth"
	"github.com/petalstack/florist/internal/config"
	"github.com/petalstack/florist/internal/flower"
	"github.com/petalstack/florist/internal/metrics"
	"github.com/petalstack/florist/internal/seed"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	setupLogger(cfg.LogLevel)

	repo := flower.NewRepository()
	if cfg.SeedFile != "" {
		res, err := seed.LoadFile(repo, cfg.SeedFile)
		if err != nil {
			slog.Error("failed to load seed file", "error", err, "path", cfg.SeedFile)
			os.Exit(1)
		}
		slog.Info("catalogue seeded", "path", cfg.SeedFile, "flowers", res.Flowers, "variants", res.Variants)
	}

	deps := api.RouterDeps{
		Repo:           repo,
		AuthService:    auth.NewService(cfg.APIKeyHash, 0),
		Logger:         slog.Default(),
		Version:        cfg.Version,
		OpenAPISpec:    specpkg.OpenAPISpec,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
		AllowedOrigins: cfg.CORSAllowedOrigins,
	}
	if cfg.MetricsEnabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		deps.Metrics = metrics.NewCatalogMetrics(reg)
		deps.Metrics.Refresh(repo)
		deps.Gatherer = reg
	}
	if !deps.AuthService.Enabled() {
		slog.Warn("API_KEY_HASH not set; mutating routes are unauthenticated")
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           api.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting florist server", "port", cfg.Port, "version", cfg.Version)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("shutting down server", "signal", sig.String())
	case err := <-serverErr:
		slog.Error("server error", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}

func setupLogger(level string) {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))
}
