package cache

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"canvas-hq/loom/pkg/config"
	"canvas-hq/loom/pkg/telemetry/logging"
)

const schema = `
CREATE TABLE IF NOT EXISTS assemblies (
	key        TEXT PRIMARY KEY,
	mod_time   INTEGER NOT NULL,
	stored_at  INTEGER NOT NULL,
	data       BLOB NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_assemblies_stored_at ON assemblies(stored_at);
`

// SQLiteBackend implements Backend on a sqlite database so assembled
// documents survive process restarts.
type SQLiteBackend struct {
	db     *sql.DB
	logger *logging.Logger
}

// NewSQLiteBackend opens (or creates) the database at cfg.Path and
// initializes the schema.
func NewSQLiteBackend(cfg config.SQLiteConfig, logger *logging.Logger) (*SQLiteBackend, error) {
	if logger == nil {
		logger = logging.Nop()
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("opening cache database %q: %w", cfg.Path, err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)

	b := &SQLiteBackend{db: db, logger: logger}
	if err := b.initialize(cfg); err != nil {
		db.Close()
		return nil, err
	}

	logger.Debug("sqlite cache backend initialized",
		"path", cfg.Path,
		"wal_mode", cfg.WALMode,
	)

	return b, nil
}

// initialize applies pragmas and creates the schema.
func (b *SQLiteBackend) initialize(cfg config.SQLiteConfig) error {
	if cfg.WALMode {
		if _, err := b.db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
			return fmt.Errorf("enabling WAL mode: %w", err)
		}
	}
	if cfg.BusyTimeout > 0 {
		if _, err := b.db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d;", cfg.BusyTimeout.Milliseconds())); err != nil {
			return fmt.Errorf("setting busy timeout: %w", err)
		}
	}
	if _, err := b.db.Exec(schema); err != nil {
		return fmt.Errorf("creating cache schema: %w", err)
	}
	return nil
}

// Get returns the entry for key, or ErrNotFound.
func (b *SQLiteBackend) Get(ctx context.Context, key string) (*Entry, error) {
	row := b.db.QueryRowContext(ctx,
		"SELECT mod_time, stored_at, data FROM assemblies WHERE key = ?", key)

	var modTime, storedAt int64
	var data []byte
	if err := row.Scan(&modTime, &storedAt, &data); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reading cache entry %q: %w", key, err)
	}

	return &Entry{
		Key:      key,
		ModTime:  time.Unix(0, modTime),
		StoredAt: time.Unix(0, storedAt),
		Data:     data,
	}, nil
}

// Put stores an entry, replacing any existing row for the same key.
func (b *SQLiteBackend) Put(ctx context.Context, entry *Entry) error {
	_, err := b.db.ExecContext(ctx,
		`INSERT INTO assemblies (key, mod_time, stored_at, data) VALUES (?, ?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET mod_time = excluded.mod_time,
		   stored_at = excluded.stored_at, data = excluded.data`,
		entry.Key, entry.ModTime.UnixNano(), entry.StoredAt.UnixNano(), entry.Data)
	if err != nil {
		return fmt.Errorf("writing cache entry %q: %w", entry.Key, err)
	}
	return nil
}

// Delete removes the entry for key.
func (b *SQLiteBackend) Delete(ctx context.Context, key string) error {
	if _, err := b.db.ExecContext(ctx, "DELETE FROM assemblies WHERE key = ?", key); err != nil {
		return fmt.Errorf("deleting cache entry %q: %w", key, err)
	}
	return nil
}

// PruneOlderThan removes entries stored before the cutoff.
func (b *SQLiteBackend) PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := b.db.ExecContext(ctx,
		"DELETE FROM assemblies WHERE stored_at < ?", cutoff.UnixNano())
	if err != nil {
		return 0, fmt.Errorf("pruning cache entries: %w", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if deleted > 0 {
		b.logger.Debug("pruned cache entries", "deleted", deleted)
	}
	return deleted, nil
}

// Len returns the number of stored entries.
func (b *SQLiteBackend) Len(ctx context.Context) (int, error) {
	var count int
	if err := b.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM assemblies").Scan(&count); err != nil {
		return 0, fmt.Errorf("counting cache entries: %w", err)
	}
	return count, nil
}

// Close closes the database.
func (b *SQLiteBackend) Close() error {
	return b.db.Close()
}
