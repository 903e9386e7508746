package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds runtime settings, sourced from the environment. A .env file
// in the working directory is loaded first if present.
type Config struct {
	Port     int    `envconfig:"PORT" default:"8080"`
	DBPath   string `envconfig:"DB_PATH" default:"pollz.db"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// Salts feed the one-way voter and IP digests. Rotating VoterHashSalt
	// mid-election orphans every existing ledger row, so don't.
	VoterHashSalt string `envconfig:"VOTER_HASH_SALT" required:"true"`
	IPHashSalt    string `envconfig:"IP_HASH_SALT" required:"true"`

	// AdminPassword is auto-generated at startup when unset.
	AdminPassword string `envconfig:"ADMIN_PASSWORD"`

	HTTPLogging bool `envconfig:"HTTP_LOGGING" default:"false"`
}

// Load reads configuration from .env (if present) and the environment
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("pollz", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	return &cfg, nil
}

// Addr returns the listen address for the HTTP server
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
