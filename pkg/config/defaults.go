package config

import "time"

// Default values for configuration fields.
const (
	// Workspace defaults
	DefaultWorkspaceRoot = "."

	// Loader defaults
	DefaultMaxFileSize = int64(10 * 1024 * 1024) // 10MB

	// Cache defaults
	DefaultCacheEnabled      = true
	DefaultCacheBackend      = "memory"
	DefaultCacheMaxEntries   = 256
	DefaultCacheTTL          = time.Duration(0)
	DefaultSQLitePath        = "data/loom-cache.db"
	DefaultSQLiteMaxOpen     = 10
	DefaultSQLiteMaxIdle     = 5
	DefaultSQLiteWALMode     = true
	DefaultSQLiteBusyTimeout = 5 * time.Second
	DefaultRetentionSchedule = "0 3 * * *"
	DefaultRetentionMaxAge   = 30 * 24 * time.Hour

	// Watcher defaults
	DefaultWatcherDebounce = 500 * time.Millisecond

	// Telemetry defaults
	DefaultLogLevel             = "info"
	DefaultLogFormat            = "text"
	DefaultMetricsListenAddress = "127.0.0.1:9464"
)

// DefaultExtensions are the file extensions treated as documents.
var DefaultExtensions = []string{".cdx", ".xml"}

// ApplyDefaults fills in zero-valued fields with defaults. Explicit values
// from the file or environment are never overwritten.
func ApplyDefaults(cfg *Config) {
	if cfg.Workspace.Root == "" {
		cfg.Workspace.Root = DefaultWorkspaceRoot
	}
	if len(cfg.Workspace.Extensions) == 0 {
		cfg.Workspace.Extensions = append([]string(nil), DefaultExtensions...)
	}

	if cfg.Loader.MaxFileSize == 0 {
		cfg.Loader.MaxFileSize = DefaultMaxFileSize
	}

	if cfg.Cache.Backend == "" {
		cfg.Cache.Backend = DefaultCacheBackend
	}
	if cfg.Cache.MaxEntries == 0 {
		cfg.Cache.MaxEntries = DefaultCacheMaxEntries
	}
	if cfg.Cache.SQLite.Path == "" {
		cfg.Cache.SQLite.Path = DefaultSQLitePath
	}
	if cfg.Cache.SQLite.MaxOpenConns == 0 {
		cfg.Cache.SQLite.MaxOpenConns = DefaultSQLiteMaxOpen
	}
	if cfg.Cache.SQLite.MaxIdleConns == 0 {
		cfg.Cache.SQLite.MaxIdleConns = DefaultSQLiteMaxIdle
	}
	if cfg.Cache.SQLite.BusyTimeout == 0 {
		cfg.Cache.SQLite.BusyTimeout = DefaultSQLiteBusyTimeout
	}
	if cfg.Cache.Retention.Schedule == "" {
		cfg.Cache.Retention.Schedule = DefaultRetentionSchedule
	}
	if cfg.Cache.Retention.MaxAge == 0 {
		cfg.Cache.Retention.MaxAge = DefaultRetentionMaxAge
	}

	if cfg.Watcher.Debounce == 0 {
		cfg.Watcher.Debounce = DefaultWatcherDebounce
	}

	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLogLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLogFormat
	}
	if cfg.Telemetry.Metrics.ListenAddress == "" {
		cfg.Telemetry.Metrics.ListenAddress = DefaultMetricsListenAddress
	}
}

// DefaultConfig returns a configuration with every field defaulted.
func DefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	cfg.Cache.Enabled = DefaultCacheEnabled
	cfg.Cache.SQLite.WALMode = DefaultSQLiteWALMode
	return cfg
}
