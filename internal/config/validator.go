package config

import (
	"errors"
	"fmt"
	"strings"
)

var validLogLevels = map[string]bool{"debug": true, "info": true, "warn": true, "warning": true, "error": true}

// Validate reports every invalid setting at once
func (c *Config) Validate() error {
	var errs []error

	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port))
	}
	if !validLogLevels[c.LogLevel] {
		errs = append(errs, fmt.Errorf("LOG_LEVEL %q is not one of debug, info, warn, error", c.LogLevel))
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be text or json, got %q", c.LogFormat))
	}
	switch c.DBDriver {
	case "postgres":
		if c.DBMaxConns < 1 {
			errs = append(errs, fmt.Errorf("DB_MAX_CONNS must be positive, got %d", c.DBMaxConns))
		}
	case "sqlite":
		if strings.TrimSpace(c.SQLitePath) == "" {
			errs = append(errs, errors.New("SQLITE_PATH must be set when DB_DRIVER=sqlite"))
		}
	case "memory":
	default:
		errs = append(errs, fmt.Errorf("DB_DRIVER must be postgres, sqlite or memory, got %q", c.DBDriver))
	}
	if c.SessionCacheSize < 1 {
		errs = append(errs, fmt.Errorf("SESSION_CACHE_SIZE must be positive, got %d", c.SessionCacheSize))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, fmt.Errorf("SESSION_TTL must be positive, got %s", c.SessionTTL))
	}
	if c.GachaUnitCost < 0 {
		errs = append(errs, fmt.Errorf("GACHA_UNIT_COST must not be negative, got %g", c.GachaUnitCost))
	}
	if c.SeekChunkSize < 1 {
		errs = append(errs, fmt.Errorf("SEEK_CHUNK_SIZE must be positive, got %d", c.SeekChunkSize))
	}
	if c.SeekHardCap < 1 {
		errs = append(errs, fmt.Errorf("SEEK_MAX_ATTEMPTS must be positive, got %d", c.SeekHardCap))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

// Warnings returns non-fatal issues worth logging at startup
func (c *Config) Warnings() []string {
	var warnings []string

	if c.APIKey == "" {
		warnings = append(warnings, "API_KEY is not set - mutating routes are not protected")
	}
	if c.APIKey == ExampleAPIKeyValue {
		warnings = append(warnings, "API_KEY appears to be using the example value - generate a secure key with: openssl rand -hex 32")
	}
	if c.DBDriver == "postgres" && c.DBPassword == ExamplePasswordValue {
		warnings = append(warnings, "DB_PASSWORD appears to be using the example value - please use a secure password")
	}
	if c.Environment == "prod" && c.DBDriver == "sqlite" {
		warnings = append(warnings, "DB_DRIVER=sqlite in prod - records are stored in a local file")
	}
	if c.DBDriver == "memory" {
		warnings = append(warnings, "DB_DRIVER=memory - tracking records are lost on restart")
	}
	if c.RandomSeed != 0 {
		warnings = append(warnings, "RANDOM_SEED is set - simulations are reproducible")
	}

	return warnings
}
