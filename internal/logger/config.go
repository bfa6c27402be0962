package logger

import (
	"log/slog"
	"strings"
)

// Config describes how the process logs
type Config struct {
	Level       string // debug, info, warn or error
	Format      string // json or text
	ServiceName string
	Version     string
	Environment string // dev, staging, prod or test
	AddSource   bool
}

// NewConfig builds a config from explicit values
func NewConfig(level, format, serviceName, version, environment string, addSource bool) Config {
	return Config{
		Level:       level,
		Format:      format,
		ServiceName: serviceName,
		Version:     version,
		Environment: environment,
		AddSource:   addSource,
	}
}

// ProductionConfig logs JSON at info without source locations
func ProductionConfig() Config {
	return NewConfig(LogLevelInfo, LogFormatJSON, DefaultServiceName, ProductionVersion, EnvironmentProduction, false)
}

// DevelopmentConfig logs text at debug with source locations
func DevelopmentConfig() Config {
	return NewConfig(LogLevelDebug, LogFormatText, DefaultServiceName, DefaultVersion, EnvironmentDev, true)
}

// DefaultConfig is the fallback when the application has no config
func DefaultConfig() Config {
	return NewConfig(LogLevelInfo, LogFormatText, DefaultServiceName, DefaultVersion, EnvironmentDev, false)
}

// IsDevelopment reports whether the environment is a local one
func IsDevelopment(environment string) bool {
	e := strings.ToLower(environment)
	return e == EnvironmentDev || e == "development"
}

// LogLevel maps Level onto slog; unknown values log at info
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

// IsJSON reports whether records are written as JSON
func (c Config) IsJSON() bool {
	return strings.EqualFold(c.Format, LogFormatJSON)
}

// BaseAttributes are attached to every record
func (c Config) BaseAttributes() []slog.Attr {
	return []slog.Attr{
		slog.String(AttrKeyService, c.ServiceName),
		slog.String(AttrKeyVersion, c.Version),
		slog.String(AttrKeyEnvironment, c.Environment),
	}
}
