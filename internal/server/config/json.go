package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/expensetracker/internal/timex"
)

// JsonConfig is the on-disk shape of the -c/--config file. Durations use
// timex.Duration so both "15s" and integer nanoseconds are accepted. Only
// non-zero fields override the target Config.
type JsonConfig struct {
	EndpointAddrHTTP   string         `json:"endpoint_addr_http"`
	EndpointAddrGRPC   string         `json:"endpoint_addr_grpc"`
	DataBackend        string         `json:"data_backend"`
	DatabaseDSN        string         `json:"database_dsn"`
	SecretKey          string         `json:"secret_key"`
	LogLevel           string         `json:"log_level"`
	LogFormat          string         `json:"log_format"`
	CORSAllowedOrigins []string       `json:"cors_allowed_origins"`
	MaxBodyBytes       int64          `json:"max_body_bytes"`
	ReadTimeout        timex.Duration `json:"read_timeout"`
	WriteTimeout       timex.Duration `json:"write_timeout"`
	IdleTimeout        timex.Duration `json:"idle_timeout"`
	ShutdownTimeout    timex.Duration `json:"shutdown_timeout"`
	S3RootUser         string         `json:"s3_root_user"`
	S3RootPassword     string         `json:"s3_root_password"`
	S3Bucket           string         `json:"s3_bucket"`
	S3Region           string         `json:"s3_region"`
	S3BaseEndpoint     string         `json:"s3_base_endpoint"`
}

// parseJSON overlays the file at path onto config. An empty path is a no-op.
func parseJSON(config *Config, path string) error {
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.DataBackend, c.DataBackend)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.LogFormat, c.LogFormat)
	if len(c.CORSAllowedOrigins) > 0 {
		config.CORSAllowedOrigins = c.CORSAllowedOrigins
	}
	if c.MaxBodyBytes > 0 {
		config.MaxBodyBytes = c.MaxBodyBytes
	}
	if c.ReadTimeout.Duration > 0 {
		config.ReadTimeout = c.ReadTimeout.Duration
	}
	if c.WriteTimeout.Duration > 0 {
		config.WriteTimeout = c.WriteTimeout.Duration
	}
	if c.IdleTimeout.Duration > 0 {
		config.IdleTimeout = c.IdleTimeout.Duration
	}
	if c.ShutdownTimeout.Duration > 0 {
		config.ShutdownTimeout = c.ShutdownTimeout.Duration
	}
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)

	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
