package config

import (
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	Port           int     `envconfig:"PORT" default:"8080"`
	LogLevel       string  `envconfig:"LOG_LEVEL" default:"info"`
	Version        string  `envconfig:"VERSION" default:"dev"`
	SeedFile       string  `envconfig:"SEED_FILE" default:""`
	APIKeyHash     string  `envconfig:"API_KEY_HASH" default:""`
	RateLimitRPS   float64 `envconfig:"RATE_LIMIT_RPS" default:"20"`
	RateLimitBurst int     `envconfig:"RATE_LIMIT_BURST" default:"40"`
	MetricsEnabled bool    `envconfig:"METRICS_ENABLED" default:"true"`
	// CORSAllowedOrigins is a comma-separated list of browser origins.
	CORSAllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
}

// Load reads configuration from environment variables into a Config struct.
// A .env file in the working directory is applied first when present; it
// never overrides variables that are already set.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
