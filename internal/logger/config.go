package logger

import (
	"log/slog"
	"strings"
)

// Rotation bounds the rotated log file written by NewFileWriter.
type Rotation struct {
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// DefaultRotation keeps roughly half a gigabyte of compressed history.
func DefaultRotation() Rotation {
	return Rotation{
		MaxSizeMB:  DefaultMaxSizeMB,
		MaxBackups: DefaultMaxBackups,
		MaxAgeDays: DefaultMaxAgeDays,
		Compress:   true,
	}
}

// Config represents logger configuration
type Config struct {
	Level       string // debug, info, warn, error
	Format      string // json, text
	ServiceName string
	Version     string
	Environment string
	AddSource   bool
	Rotation    Rotation
}

// ForEnvironment returns the preset for env. Production logs JSON at info,
// anything else logs text at debug with source locations.
func ForEnvironment(env, version string) Config {
	if version == "" {
		version = DefaultVersion
	}
	cfg := Config{
		ServiceName: DefaultServiceName,
		Version:     version,
		Environment: env,
		Rotation:    DefaultRotation(),
	}
	switch strings.ToLower(env) {
	case EnvProduction, EnvProd:
		cfg.Level = LogLevelInfo
		cfg.Format = LogFormatJSON
	default:
		cfg.Level = LogLevelDebug
		cfg.Format = LogFormatText
		cfg.AddSource = true
	}
	return cfg
}

// WithOverrides applies non-empty level and format values on top of c.
func (c Config) WithOverrides(level, format string) Config {
	if level != "" {
		c.Level = level
	}
	if format != "" {
		c.Format = format
	}
	return c
}

// LogLevel maps Level to slog, falling back to info for unknown names.
func (c Config) LogLevel() slog.Level {
	switch strings.ToLower(c.Level) {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelWarn, LogLevelWarning:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	}
	return slog.LevelInfo
}

// IsJSON reports whether Format selects the JSON handler
func (c Config) IsJSON() bool {
	return strings.EqualFold(c.Format, LogFormatJSON)
}

func (c Config) baseAttrs() []slog.Attr {
	attrs := []slog.Attr{slog.String(AttrKeyService, c.ServiceName)}
	if c.Version != "" {
		attrs = append(attrs, slog.String(AttrKeyVersion, c.Version))
	}
	if c.Environment != "" {
		attrs = append(attrs, slog.String(AttrKeyEnvironment, c.Environment))
	}
	return attrs
}
