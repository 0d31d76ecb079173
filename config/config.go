package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Config holds all runtime configuration, read from the environment.
type Config struct {
	// Store selection
	StoreDriver string `validate:"oneof=memory file sqlite postgres"`
	StorePath   string `validate:"required_if=StoreDriver file"`
	DatabaseDSN string

	// Engine tuning
	DebounceMs    int `validate:"min=50"`
	RetentionDays int `validate:"min=1"`
	MaxDraftBytes int `validate:"min=1024"`

	// Logging
	LogLevel string `validate:"oneof=debug info warn error"`
}

// Load reads configuration from environment variables with defaults and
// validates the result.
func Load() (*Config, error) {
	cfg := &Config{
		StoreDriver:   getEnv("DRAFT_STORE_DRIVER", "file"),
		StorePath:     getEnv("DRAFT_STORE_PATH", defaultStorePath()),
		DatabaseDSN:   getEnv("DATABASE_DSN", ""),
		DebounceMs:    getEnvInt("DRAFT_DEBOUNCE_MS", 1000),
		RetentionDays: getEnvInt("DRAFT_RETENTION_DAYS", 7),
		MaxDraftBytes: getEnvInt("DRAFT_MAX_BYTES", 4_500_000),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if (cfg.StoreDriver == "postgres" || cfg.StoreDriver == "sqlite") && cfg.DatabaseDSN == "" {
		return nil, fmt.Errorf("DATABASE_DSN is required for the %s store", cfg.StoreDriver)
	}
	return cfg, nil
}

func defaultStorePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./drafts"
	}
	return home + "/.draftkeep/drafts"
}

func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}
