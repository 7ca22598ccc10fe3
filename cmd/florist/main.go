package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/petalstack/florist/internal/config"
	"github.com/petalstack/florist/internal/console"
	"github.com/petalstack/florist/internal/flower"
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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := console.New(repo, os.Stdin, os.Stdout, slog.Default()).Run(ctx); err != nil && ctx.Err() == nil {
		slog.Error("console stopped", "error", err)
		os.Exit(1)
	}
}

// setupLogger writes JSON logs to stderr so they stay out of the menu output.
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

	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))
}
