// Package config loads the backend configuration from the environment.
//
// A .env file in the working directory is honored when present, actual
// environment variables take precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// GinMode is the mode the gin engine runs in. Release is the default
	// for security reasons.
	GinMode string `envconfig:"GIN_MODE" default:"release"`

	// LogFormat selects between human readable and JSON logs. When unset,
	// it follows the gin mode.
	LogFormat string `envconfig:"LOG_FORMAT"`

	Port int `envconfig:"PORT" default:"8080"`

	// CORSAllowOrigins is a space separated list of allowed origins.
	// CORS headers are only sent when it is set.
	CORSAllowOrigins string `envconfig:"CORS_ALLOW_ORIGINS"`

	// DBFile is the sqlite database file. It is ignored when DB_HOST is
	// set, in which case a PostgreSQL connection is used.
	DBFile string `envconfig:"DB_FILE" default:"data/gorm.db"`
}

// Load reads the configuration from a .env file and the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
