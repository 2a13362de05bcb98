// Package watcher observes a workspace for document changes.
//
// It wraps fsnotify with extension filtering and per-path debouncing so a
// burst of editor writes to one file yields a single reload, while changes
// to different documents are reported independently. The typical consumer
// invalidates a cache entry and reassembles on each notification.
package watcher
