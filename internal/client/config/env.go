package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv overlays API_URL, API_TIMEOUT and SESSION_FILE when set.
func parseEnv(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}
	return nil
}
