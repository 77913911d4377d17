package config

import (
	"fmt"
	"os"
)

type Config struct {
	DatabaseDSN   string
	LogLevel      string
	MetricsAddr   string
	HTTPAddr      string
	AllowedOrigin string
}

func Load() (*Config, error) {
	cfg := &Config{
		DatabaseDSN:   os.Getenv("DATABASE_DSN"),
		LogLevel:      os.Getenv("LOG_LEVEL"),
		MetricsAddr:   os.Getenv("METRICS_ADDR"),
		HTTPAddr:      os.Getenv("HTTP_ADDR"),
		AllowedOrigin: os.Getenv("ALLOWED_ORIGIN"),
	}

	// Validation
	var missing []string
	if cfg.DatabaseDSN == "" {
		missing = append(missing, "DATABASE_DSN")
	}
	if cfg.LogLevel == "" {
		missing = append(missing, "LOG_LEVEL")
	}
	if cfg.MetricsAddr == "" {
		missing = append(missing, "METRICS_ADDR")
	}
	if cfg.HTTPAddr == "" {
		missing = append(missing, "HTTP_ADDR")
	}
	if cfg.AllowedOrigin == "" {
		missing = append(missing, "ALLOWED_ORIGIN")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required env vars: %v", missing)
	}

	return cfg, nil
}
