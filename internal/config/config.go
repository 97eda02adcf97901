// Package config loads propbook settings from the environment and an
// optional .env file.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	apperr "github.com/ukaji3/propbook-go/pkg/propbook/errors"
)

// DefaultWorkbookPath is used when PROPBOOK_WORKBOOK is unset.
const DefaultWorkbookPath = "data/proposal_management.xlsx"

// Config represents the complete application configuration
type Config struct {
	Workbook WorkbookConfig
	Log      LogConfig
}

// WorkbookConfig holds workbook file settings
type WorkbookConfig struct {
	Path string
	// Seed enables sample users and cost items on initialization.
	Seed bool
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string
	Format string
}

// Load reads .env (if present) and then the environment, and validates the result.
// Variables already set in the environment win over .env entries.
func Load() (*Config, error) {
	// A missing .env is normal.
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv reads configuration from environment variables only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Workbook: WorkbookConfig{
			Path: getEnvOrDefault("PROPBOOK_WORKBOOK", DefaultWorkbookPath),
			Seed: getEnvBoolOrDefault("PROPBOOK_SEED", true),
		},
		Log: LogConfig{
			Level:  strings.ToUpper(getEnvOrDefault("LOG_LEVEL", "INFO")),
			Format: strings.ToLower(getEnvOrDefault("LOG_FORMAT", "text")),
		},
	}
	if err := cfg.Validate(); err != nil {
		return nil, apperr.Wrap(err, "configuration validation failed")
	}
	return cfg, nil
}

// Validate checks field values.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Workbook.Path) == "" {
		return apperr.ConfigInvalid("workbook path is required")
	}
	if !strings.HasSuffix(strings.ToLower(c.Workbook.Path), ".xlsx") {
		return apperr.ConfigInvalid("workbook path must end in .xlsx: " + c.Workbook.Path)
	}
	switch strings.ToUpper(c.Log.Level) {
	case "DEBUG", "INFO", "WARN", "ERROR":
	default:
		return apperr.ConfigInvalid("LOG_LEVEL must be DEBUG, INFO, WARN or ERROR: " + c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return apperr.ConfigInvalid("LOG_FORMAT must be text or json: " + c.Log.Format)
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
