package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/neomorfeo/tourdesk/internal/adapter/otel"
)

// config is the process configuration, read from the environment.
type config struct {
	Port               string
	DatabasePath       string
	SeedSampleData     bool
	ReconcileInterval  time.Duration
	CORSAllowedOrigins []string
	LogLevel           slog.Level
	Telemetry          otel.Config
}

// loadConfig reads a .env file from the working directory if there is one,
// then the environment. Variables already set win over the file.
func loadConfig() (config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return config{}, fmt.Errorf("loading .env: %w", err)
	}

	seed, err := strconv.ParseBool(envOrDefault("SEED_SAMPLE_DATA", "true"))
	if err != nil {
		return config{}, fmt.Errorf("SEED_SAMPLE_DATA: %w", err)
	}

	interval, err := time.ParseDuration(envOrDefault("RECONCILE_INTERVAL", "10m"))
	if err != nil {
		return config{}, fmt.Errorf("RECONCILE_INTERVAL: %w", err)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(envOrDefault("LOG_LEVEL", "info"))); err != nil {
		return config{}, fmt.Errorf("LOG_LEVEL: %w", err)
	}

	var origins []string
	for _, o := range strings.Split(envOrDefault("CORS_ALLOWED_ORIGINS", "*"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}

	return config{
		Port:               envOrDefault("PORT", "8080"),
		DatabasePath:       envOrDefault("DATABASE_PATH", "tourdesk.db"),
		SeedSampleData:     seed,
		ReconcileInterval:  interval,
		CORSAllowedOrigins: origins,
		LogLevel:           level,
		Telemetry:          otel.ConfigFromEnv(),
	}, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// newLogger returns a JSON logger in production and a text logger elsewhere.
func newLogger(cfg config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	if cfg.Telemetry.Environment == "production" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
