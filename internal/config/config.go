// Package config loads runtime configuration from environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds everything the program reads from the environment.
type Config struct {
	// DBPath is the SQLite database file. Each path is an independent
	// data set, like separate browser profiles.
	DBPath string `env:"TAVOLO_DB_PATH" envDefault:"./data/tavolo.db"`

	// PollInterval is how often the kitchen view re-reads orders and menu.
	PollInterval time.Duration `env:"TAVOLO_POLL_INTERVAL" envDefault:"5s"`

	// LogLevel is debug, info, warn, or error.
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
