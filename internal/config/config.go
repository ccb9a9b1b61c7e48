package config

import (
	"os"
	"strconv"

	"ablab/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	Analysis AnalysisConfig
	Database DatabaseConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	APIPort string
	GinMode string
}

// AnalysisConfig holds pipeline defaults
type AnalysisConfig struct {
	// Alpha is the default significance level; requests may override it.
	Alpha float64
	// MaxUploadBytes bounds accepted upload size.
	MaxUploadBytes int64
}

// DatabaseConfig holds the optional run-history store settings. An empty
// URL disables persistence; the engine itself never requires it.
type DatabaseConfig struct {
	URL string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:    getEnvOrDefault("PORT", "8080"),
			APIPort: getEnvOrDefault("API_PORT", "8081"),
			GinMode: getEnvOrDefault("GIN_MODE", "release"),
		},
		Analysis: AnalysisConfig{
			Alpha:          getEnvFloatOrDefault("SIGNIFICANCE_LEVEL", 0.05),
			MaxUploadBytes: getEnvInt64OrDefault("MAX_UPLOAD_BYTES", 32<<20),
		},
		Database: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
	}

	if cfg.Analysis.Alpha <= 0 || cfg.Analysis.Alpha >= 1 {
		return nil, errors.ConfigInvalid("SIGNIFICANCE_LEVEL must be in (0, 1)")
	}
	if cfg.Analysis.MaxUploadBytes <= 0 {
		return nil, errors.ConfigInvalid("MAX_UPLOAD_BYTES must be positive")
	}
	return cfg, nil
}

func getEnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvFloatOrDefault(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvInt64OrDefault(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}
