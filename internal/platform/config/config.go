// Package config loads and validates service configuration from the environment.
package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"go-simpler.org/env"
)

const (
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

type Config struct {
	AppEnv       string `env:"APP_ENV" default:"development"`
	Port         string `env:"PORT" default:"8080"`
	LogLevel     string `env:"LOG_LEVEL" default:"info"`
	LogFormat    string `env:"LOG_FORMAT" default:"text"`
	StoreBackend string `env:"STORE_BACKEND" default:"redis"`
	RedisURL     string `env:"REDIS_URL"`

	// Ranking policy. Defaults follow the reference behavior: one vote is
	// worth 432 points, articles accept votes for a week, listings hold 25
	// articles, group views are cached for a minute.
	VoteBonus         float64       `env:"VOTE_BONUS" default:"432"`
	EligibilityWindow time.Duration `env:"ELIGIBILITY_WINDOW" default:"168h"`
	PageSize          int64         `env:"PAGE_SIZE" default:"25"`
	GroupViewTTL      time.Duration `env:"GROUP_VIEW_TTL" default:"60s"`
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	var cfg Config
	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func validate(cfg *Config) error {
	switch cfg.StoreBackend {
	case BackendRedis:
		if cfg.RedisURL == "" {
			return fmt.Errorf("REDIS_URL is required when STORE_BACKEND is %q", BackendRedis)
		}
	case BackendMemory:
	default:
		return fmt.Errorf("STORE_BACKEND must be %q or %q, got %q", BackendRedis, BackendMemory, cfg.StoreBackend)
	}

	if cfg.VoteBonus <= 0 {
		return fmt.Errorf("VOTE_BONUS must be positive, got %v", cfg.VoteBonus)
	}
	if cfg.EligibilityWindow <= 0 {
		return fmt.Errorf("ELIGIBILITY_WINDOW must be positive, got %v", cfg.EligibilityWindow)
	}
	if cfg.PageSize <= 0 {
		return fmt.Errorf("PAGE_SIZE must be positive, got %v", cfg.PageSize)
	}
	if cfg.GroupViewTTL <= 0 {
		return fmt.Errorf("GROUP_VIEW_TTL must be positive, got %v", cfg.GroupViewTTL)
	}

	return nil
}
