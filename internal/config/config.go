// Package config loads server configuration from the environment, with
// optional .env file support for local development.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"
)

// Config holds everything the server needs to start.
type Config struct {
	// Port is the HTTP listen port.
	Port string

	// DBPath is the SQLite database file path; parent directories are
	// created on startup.
	DBPath string

	// LogLevel is one of debug, info, warn, error.
	LogLevel string
}

// Load reads configuration from the environment. A .env file in the
// working directory is applied first when present; real environment
// variables win over it.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:     getEnv("PORT", "8080"),
		DBPath:   getEnv("DB_PATH", "./data/tabshare.db"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

// Validate checks the configuration, collecting every problem rather
// than stopping at the first.
func (c *Config) Validate() error {
	var result *multierror.Error

	if port, err := strconv.Atoi(c.Port); err != nil {
		result = multierror.Append(result, fmt.Errorf("invalid port %q: must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		result = multierror.Append(result, fmt.Errorf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.DBPath == "" {
		result = multierror.Append(result, fmt.Errorf("database path cannot be empty"))
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		result = multierror.Append(result, fmt.Errorf("invalid log level %q: must be debug, info, warn, or error", c.LogLevel))
	}

	return result.ErrorOrNil()
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
