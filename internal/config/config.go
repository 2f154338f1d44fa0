// Package config loads kiosk configuration from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the kiosk gateway configuration. Command-line flags
// override whatever the environment provides.
type Config struct {
	// Addr is the local address the kiosk listens on.
	Addr string `env:"HALALAN_ADDR" envDefault:"localhost:8080"`
	// APIURL is the base URL of the remote balloting service.
	APIURL string `env:"HALALAN_API_URL" envDefault:"http://localhost:8000/api"`
	// DBPath is the sqlite file holding session tokens and settings.
	DBPath string `env:"HALALAN_DB" envDefault:"halalan.db"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `env:"HALALAN_LOG_LEVEL" envDefault:"info"`
	// LogHTTP enables per-request HTTP logging.
	LogHTTP bool `env:"HALALAN_LOG_HTTP" envDefault:"false"`
}

// Load parses configuration from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
