package cache

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"canvas-hq/loom/pkg/cdl"
	"canvas-hq/loom/pkg/cdl/ast"
	"canvas-hq/loom/pkg/cdl/mermaid"
	"canvas-hq/loom/pkg/cdl/parser"
	"canvas-hq/loom/pkg/cdl/serializer"
	"canvas-hq/loom/pkg/telemetry/logging"
)

// ErrNotFound is returned by backends when no entry exists for a key.
var ErrNotFound = errors.New("cache: entry not found")

// Entry is one cached assembly. Data holds the assembled document in its
// serialized form: variables already resolved, so a hit never re-runs the
// resolution or validation stages.
type Entry struct {
	// Key identifies the entry (the document's absolute path).
	Key string

	// ModTime is the source file's modification time at assembly.
	ModTime time.Time

	// StoredAt is when the entry was written.
	StoredAt time.Time

	// Data is the serialized assembled document.
	Data []byte
}

// Backend is the storage interface behind the cache. Implementations must
// be safe for concurrent use.
type Backend interface {
	// Get returns the entry for key, or ErrNotFound.
	Get(ctx context.Context, key string) (*Entry, error)

	// Put stores an entry, replacing any existing one for the same key.
	Put(ctx context.Context, entry *Entry) error

	// Delete removes the entry for key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// PruneOlderThan removes entries stored before the cutoff and returns
	// how many were removed.
	PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error)

	// Len returns the number of stored entries.
	Len(ctx context.Context) (int, error)

	// Close releases backend resources.
	Close() error
}

// Recorder receives cache outcome notifications. The metrics package
// provides an implementation; a nil Recorder disables recording.
type Recorder interface {
	Hit()
	Miss()
	Eviction(count int64)
}

// Cache memoizes document assembly keyed by source path, invalidated by the
// file's modification time. Concurrent loads of the same path are
// serialized per key, so each changed file is assembled at most once no
// matter how many readers race for it.
type Cache struct {
	backend  Backend
	loader   *cdl.Loader
	recorder Recorder
	logger   *logging.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// Option configures a Cache.
type Option func(*Cache)

// WithRecorder attaches a cache outcome recorder.
func WithRecorder(r Recorder) Option {
	return func(c *Cache) {
		c.recorder = r
	}
}

// WithLogger attaches a logger.
func WithLogger(l *logging.Logger) Option {
	return func(c *Cache) {
		c.logger = l
	}
}

// New creates a cache over the given backend and loader.
func New(backend Backend, loader *cdl.Loader, opts ...Option) *Cache {
	c := &Cache{
		backend: backend,
		loader:  loader,
		logger:  logging.Nop(),
		locks:   make(map[string]*sync.Mutex),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load returns the assembled document for path, from cache when the file
// has not changed since the entry was stored, otherwise assembling fresh
// and storing the result.
func (c *Cache) Load(ctx context.Context, path string) (*ast.Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %q: %w", path, err)
	}

	lock := c.keyLock(path)
	lock.Lock()
	defer lock.Unlock()

	entry, err := c.backend.Get(ctx, path)
	if err == nil && entry.ModTime.Equal(info.ModTime()) {
		doc, decErr := decodeEntry(entry)
		if decErr == nil {
			c.recordHit()
			c.logger.DebugContext(ctx, "cache hit", "document", path)
			return doc, nil
		}
		// A corrupt entry falls through to reassembly.
		c.logger.WarnContext(ctx, "discarding undecodable cache entry",
			"document", path, "error", decErr)
	} else if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	c.recordMiss()
	c.logger.DebugContext(ctx, "cache miss", "document", path)

	result, err := c.loader.LoadDocument(path)
	if err != nil {
		return nil, err
	}

	data, err := serializer.Serialize(result.Document)
	if err != nil {
		return nil, fmt.Errorf("encoding cache entry for %q: %w", path, err)
	}

	putErr := c.backend.Put(ctx, &Entry{
		Key:      path,
		ModTime:  info.ModTime(),
		StoredAt: time.Now(),
		Data:     []byte(data),
	})
	if putErr != nil {
		// A write failure degrades to cacheless operation.
		c.logger.WarnContext(ctx, "cache write failed", "document", path, "error", putErr)
	}

	return result.Document, nil
}

// Invalidate drops the entry for path.
func (c *Cache) Invalidate(ctx context.Context, path string) error {
	return c.backend.Delete(ctx, path)
}

// Prune removes entries stored before the cutoff.
func (c *Cache) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	deleted, err := c.backend.PruneOlderThan(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	if deleted > 0 && c.recorder != nil {
		c.recorder.Eviction(deleted)
	}
	return deleted, nil
}

// Close releases the underlying backend.
func (c *Cache) Close() error {
	return c.backend.Close()
}

// keyLock returns the mutex serializing assembly for a key.
func (c *Cache) keyLock(key string) *sync.Mutex {
	c.mu.Lock()
	defer c.mu.Unlock()
	lock, ok := c.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		c.locks[key] = lock
	}
	return lock
}

func (c *Cache) recordHit() {
	if c.recorder != nil {
		c.recorder.Hit()
	}
}

func (c *Cache) recordMiss() {
	if c.recorder != nil {
		c.recorder.Miss()
	}
}

// decodeEntry re-parses the stored assembled document and re-derives its
// flow graph. Validation and resolution already ran at assembly time.
func decodeEntry(entry *Entry) (*ast.Document, error) {
	doc, err := parser.NewParser().ParseBytes(entry.Data, entry.Key)
	if err != nil {
		return nil, err
	}
	if doc.Flow != nil {
		if err := mermaid.Enrich(doc.Flow); err != nil {
			return nil, err
		}
	}
	return doc, nil
}
