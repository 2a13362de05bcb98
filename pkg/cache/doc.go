// Package cache memoizes document assembly.
//
// A Cache wraps a storage Backend (in-memory or sqlite) and a loader.
// Entries are keyed by document path and invalidated by file modification
// time; concurrent loads of the same path are serialized so a changed file
// is assembled at most once. A cron-driven Scheduler prunes stale entries.
package cache
