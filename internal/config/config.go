package config

import (
	"os"
	"strconv"

	"github.com/merwanroudane/plott/internal/errors"
)

// Config is the complete application configuration.
type Config struct {
	Server   ServerConfig
	Data     DataConfig
	Database DatabaseConfig
}

// ServerConfig holds web server settings.
type ServerConfig struct {
	Port string
}

// DataConfig holds upload and expansion limits.
type DataConfig struct {
	MaxUploadBytes int64 // multipart upload size cap
	MaxRows        int   // row cap per uploaded dataset
	MaxFrames      int   // cap on frames per expansion (memory bound)
	PreviewRows    int   // rows echoed back in the upload summary
}

// DatabaseConfig holds the optional upload-ledger connection. An empty URL
// disables the ledger; the app runs fully in-memory.
type DatabaseConfig struct {
	URL string
}

// Load reads configuration from environment variables and validates it.
// Every knob has a default so the app boots with no environment at all.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8080"),
		},
		Data: DataConfig{
			MaxUploadBytes: getEnvInt64OrDefault("MAX_UPLOAD_BYTES", 10<<20),
			MaxRows:        getEnvIntOrDefault("MAX_ROWS", 10000),
			MaxFrames:      getEnvIntOrDefault("MAX_FRAMES", 300),
			PreviewRows:    getEnvIntOrDefault("PREVIEW_ROWS", 5),
		},
		Database: DatabaseConfig{
			URL: getEnvOrDefault("DATABASE_URL", ""),
		},
	}

	if cfg.Data.MaxFrames < 1 {
		return nil, errors.ConfigInvalid("MAX_FRAMES must be at least 1")
	}
	if cfg.Data.MaxRows < 1 {
		return nil, errors.ConfigInvalid("MAX_ROWS must be at least 1")
	}
	if cfg.Data.MaxUploadBytes < 1 {
		return nil, errors.ConfigInvalid("MAX_UPLOAD_BYTES must be positive")
	}
	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}
