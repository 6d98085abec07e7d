// Package config loads runtime configuration for the expense CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or --config.
//  3. Environment variables API_URL, API_TIMEOUT and SESSION_FILE.
//  4. Command-line flags, which override earlier values.
//
// # JSON schema
//
//	{
//	  "server_url": "http://127.0.0.1:5000",
//	  "request_timeout": "10s",
//	  "session_file": "session.db"
//	}
package config
