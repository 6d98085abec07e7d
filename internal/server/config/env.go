package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// portEnv mirrors the conventional PORT variable of PaaS deployments.
type portEnv struct {
	Port string `env:"PORT"`
}

// parseEnv loads envFile (if it exists) into the process environment without
// overriding variables that are already set, then overlays the environment
// onto config. Unset variables leave config untouched.
func parseEnv(config *Config, envFile string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	if err := env.Parse(config); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}

	var p portEnv
	if err := env.Parse(&p); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}
	if p.Port != "" {
		host, _, err := net.SplitHostPort(config.EndpointAddrHTTP)
		if err != nil {
			host = ""
		}
		config.EndpointAddrHTTP = net.JoinHostPort(host, p.Port)
	}

	return nil
}
