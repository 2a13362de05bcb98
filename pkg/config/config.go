package config

import "time"

// Config is the root configuration for loom.
type Config struct {
	// Workspace configures where documents live.
	Workspace WorkspaceConfig `yaml:"workspace"`

	// Loader configures the document loading pipeline.
	Loader LoaderConfig `yaml:"loader"`

	// Cache configures the assembled-document cache.
	Cache CacheConfig `yaml:"cache"`

	// Watcher configures filesystem watching.
	Watcher WatcherConfig `yaml:"watcher"`

	// Telemetry configures logging and metrics.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// WorkspaceConfig describes the document workspace.
type WorkspaceConfig struct {
	// Root is the directory scanned for documents.
	Root string `yaml:"root"`

	// Extensions lists the file extensions treated as documents.
	Extensions []string `yaml:"extensions"`
}

// LoaderConfig controls the loading pipeline.
type LoaderConfig struct {
	// MaxFileSize caps the input size in bytes.
	MaxFileSize int64 `yaml:"max_file_size"`

	// Strict promotes warning-class findings to load failures.
	Strict bool `yaml:"strict"`
}

// CacheConfig controls the assembled-document cache.
type CacheConfig struct {
	// Enabled turns the cache on.
	Enabled bool `yaml:"enabled"`

	// Backend selects the storage backend: "memory" or "sqlite".
	Backend string `yaml:"backend"`

	// SQLite configures the sqlite backend.
	SQLite SQLiteConfig `yaml:"sqlite"`

	// MaxEntries caps the number of cached documents (0 = unlimited).
	MaxEntries int `yaml:"max_entries"`

	// TTL is how long an entry stays valid (0 = forever).
	TTL time.Duration `yaml:"ttl"`

	// Retention configures scheduled pruning of stale entries.
	Retention RetentionConfig `yaml:"retention"`
}

// SQLiteConfig configures the sqlite cache backend.
type SQLiteConfig struct {
	// Path is the database file location.
	Path string `yaml:"path"`

	// MaxOpenConns caps open connections.
	MaxOpenConns int `yaml:"max_open_conns"`

	// MaxIdleConns caps idle connections.
	MaxIdleConns int `yaml:"max_idle_conns"`

	// WALMode enables write-ahead logging.
	WALMode bool `yaml:"wal_mode"`

	// BusyTimeout is the sqlite busy timeout.
	BusyTimeout time.Duration `yaml:"busy_timeout"`
}

// RetentionConfig configures scheduled cache pruning.
type RetentionConfig struct {
	// Enabled turns scheduled pruning on.
	Enabled bool `yaml:"enabled"`

	// Schedule is a cron expression for prune runs.
	Schedule string `yaml:"schedule"`

	// MaxAge evicts entries older than this.
	MaxAge time.Duration `yaml:"max_age"`
}

// WatcherConfig controls filesystem watching.
type WatcherConfig struct {
	// Enabled turns the watcher on.
	Enabled bool `yaml:"enabled"`

	// Debounce coalesces change events within this window.
	Debounce time.Duration `yaml:"debounce"`
}

// TelemetryConfig groups logging and metrics settings.
type TelemetryConfig struct {
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	// Level is the minimum log level ("debug", "info", "warn", "error").
	Level string `yaml:"level"`

	// Format is the output format ("json", "text").
	Format string `yaml:"format"`

	// AddSource includes file:line in log output.
	AddSource bool `yaml:"add_source"`
}

// MetricsConfig configures the Prometheus endpoint.
type MetricsConfig struct {
	// Enabled turns the metrics endpoint on.
	Enabled bool `yaml:"enabled"`

	// ListenAddress is the address the metrics server binds to.
	ListenAddress string `yaml:"listen_address"`
}
