package config

import (
	"fmt"
	"strings"
)

// FieldError represents a validation error for a specific configuration field.
type FieldError struct {
	// Field is the dotted path to the configuration field (e.g. "cache.backend").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError represents one or more validation errors in a configuration.
type ValidationError struct {
	// Errors contains all validation errors found in the configuration.
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// Validate validates the entire configuration and returns a ValidationError
// if any rules fail. All validation errors are collected and returned together.
func Validate(cfg *Config) error {
	var errs []FieldError

	errs = append(errs, validateWorkspace(&cfg.Workspace)...)
	errs = append(errs, validateLoader(&cfg.Loader)...)
	errs = append(errs, validateCache(&cfg.Cache)...)
	errs = append(errs, validateWatcher(&cfg.Watcher)...)
	errs = append(errs, validateTelemetry(&cfg.Telemetry)...)

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}

	return nil
}

func validateWorkspace(cfg *WorkspaceConfig) []FieldError {
	var errs []FieldError

	if cfg.Root == "" {
		errs = append(errs, FieldError{
			Field:   "workspace.root",
			Message: "must not be empty",
		})
	}
	for i, ext := range cfg.Extensions {
		if !strings.HasPrefix(ext, ".") {
			errs = append(errs, FieldError{
				Field:   fmt.Sprintf("workspace.extensions[%d]", i),
				Message: fmt.Sprintf("extension %q must start with a dot", ext),
			})
		}
	}

	return errs
}

func validateLoader(cfg *LoaderConfig) []FieldError {
	var errs []FieldError

	if cfg.MaxFileSize < 0 {
		errs = append(errs, FieldError{
			Field:   "loader.max_file_size",
			Message: "must not be negative",
		})
	}

	return errs
}

func validateCache(cfg *CacheConfig) []FieldError {
	var errs []FieldError

	switch cfg.Backend {
	case "memory", "sqlite":
	default:
		errs = append(errs, FieldError{
			Field:   "cache.backend",
			Message: fmt.Sprintf("unknown backend %q (must be \"memory\" or \"sqlite\")", cfg.Backend),
		})
	}

	if cfg.Backend == "sqlite" && cfg.SQLite.Path == "" {
		errs = append(errs, FieldError{
			Field:   "cache.sqlite.path",
			Message: "must not be empty when the sqlite backend is selected",
		})
	}
	if cfg.SQLite.MaxOpenConns < 0 {
		errs = append(errs, FieldError{
			Field:   "cache.sqlite.max_open_conns",
			Message: "must not be negative",
		})
	}
	if cfg.SQLite.MaxIdleConns > cfg.SQLite.MaxOpenConns && cfg.SQLite.MaxOpenConns > 0 {
		errs = append(errs, FieldError{
			Field:   "cache.sqlite.max_idle_conns",
			Message: "must not exceed max_open_conns",
		})
	}

	if cfg.MaxEntries < 0 {
		errs = append(errs, FieldError{
			Field:   "cache.max_entries",
			Message: "must not be negative",
		})
	}
	if cfg.TTL < 0 {
		errs = append(errs, FieldError{
			Field:   "cache.ttl",
			Message: "must not be negative",
		})
	}

	if cfg.Retention.Enabled {
		if cfg.Retention.Schedule == "" {
			errs = append(errs, FieldError{
				Field:   "cache.retention.schedule",
				Message: "must not be empty when retention is enabled",
			})
		}
		if cfg.Retention.MaxAge <= 0 {
			errs = append(errs, FieldError{
				Field:   "cache.retention.max_age",
				Message: "must be positive when retention is enabled",
			})
		}
	}

	return errs
}

func validateWatcher(cfg *WatcherConfig) []FieldError {
	var errs []FieldError

	if cfg.Debounce < 0 {
		errs = append(errs, FieldError{
			Field:   "watcher.debounce",
			Message: "must not be negative",
		})
	}

	return errs
}

func validateTelemetry(cfg *TelemetryConfig) []FieldError {
	var errs []FieldError

	switch cfg.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.level",
			Message: fmt.Sprintf("unknown level %q", cfg.Logging.Level),
		})
	}
	switch cfg.Logging.Format {
	case "", "json", "text":
	default:
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.format",
			Message: fmt.Sprintf("unknown format %q", cfg.Logging.Format),
		})
	}

	if cfg.Metrics.Enabled && cfg.Metrics.ListenAddress == "" {
		errs = append(errs, FieldError{
			Field:   "telemetry.metrics.listen_address",
			Message: "must not be empty when metrics are enabled",
		})
	}

	return errs
}
