package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryBackend implements Backend with an in-memory map. Entries do not
// survive process restarts; use the sqlite backend for persistence.
type MemoryBackend struct {
	entries    map[string]*Entry
	maxEntries int
	mu         sync.RWMutex
}

// NewMemoryBackend creates an in-memory backend. maxEntries of 0 means
// unlimited.
func NewMemoryBackend(maxEntries int) *MemoryBackend {
	return &MemoryBackend{
		entries:    make(map[string]*Entry),
		maxEntries: maxEntries,
	}
}

// Get returns the entry for key, or ErrNotFound.
func (b *MemoryBackend) Get(ctx context.Context, key string) (*Entry, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	entry, ok := b.entries[key]
	if !ok {
		return nil, ErrNotFound
	}
	// Copy so callers cannot mutate the stored entry.
	entryCopy := *entry
	return &entryCopy, nil
}

// Put stores an entry. When the backend is full, the oldest entry is
// evicted first.
func (b *MemoryBackend) Put(ctx context.Context, entry *Entry) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.entries[entry.Key]; !exists && b.maxEntries > 0 && len(b.entries) >= b.maxEntries {
		b.evictOldestLocked()
	}

	entryCopy := *entry
	b.entries[entry.Key] = &entryCopy
	return nil
}

// Delete removes the entry for key.
func (b *MemoryBackend) Delete(ctx context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.entries, key)
	return nil
}

// PruneOlderThan removes entries stored before the cutoff.
func (b *MemoryBackend) PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var deleted int64
	for key, entry := range b.entries {
		if entry.StoredAt.Before(cutoff) {
			delete(b.entries, key)
			deleted++
		}
	}
	return deleted, nil
}

// Len returns the number of stored entries.
func (b *MemoryBackend) Len(ctx context.Context) (int, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.entries), nil
}

// Close is a no-op for the memory backend.
func (b *MemoryBackend) Close() error {
	return nil
}

// evictOldestLocked removes the entry with the earliest StoredAt.
// Caller must hold the write lock.
func (b *MemoryBackend) evictOldestLocked() {
	var oldestKey string
	var oldest time.Time
	first := true
	for key, entry := range b.entries {
		if first || entry.StoredAt.Before(oldest) {
			oldestKey = key
			oldest = entry.StoredAt
			first = false
		}
	}
	if oldestKey != "" {
		delete(b.entries, oldestKey)
	}
}
