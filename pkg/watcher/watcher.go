package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"canvas-hq/loom/pkg/telemetry/logging"
)

// ChangeHandler is invoked with the path of a changed document after the
// debounce window closes. A removal passes removed=true; the handler is
// expected to drop any cached state for the path.
type ChangeHandler func(path string, removed bool)

// Config controls what the watcher observes.
type Config struct {
	// Root is the workspace file or directory to watch.
	Root string

	// Debounce is the quiet period before a change is reported
	// (default: 500ms).
	Debounce time.Duration

	// Extensions lists the document extensions to report, e.g. ".cdx".
	Extensions []string

	// SkipHidden skips dotfiles and dot-directories.
	SkipHidden bool
}

// DefaultConfig returns the default watcher configuration.
func DefaultConfig() *Config {
	return &Config{
		Debounce:   500 * time.Millisecond,
		Extensions: []string{".cdx", ".xml"},
		SkipHidden: true,
	}
}

// Watcher reports document changes under a workspace root. Rapid edit
// bursts to the same file collapse into a single notification; distinct
// files debounce independently so one noisy document cannot starve
// another's reload.
type Watcher struct {
	fsw      *fsnotify.Watcher
	logger   *logging.Logger
	config   *Config
	debounce *Debouncer

	mu       sync.RWMutex
	running  bool
	started  bool
	stopOnce sync.Once
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// New creates a watcher. A nil config uses DefaultConfig.
func New(config *Config, logger *logging.Logger) (*Watcher, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if config.Debounce <= 0 {
		config.Debounce = DefaultConfig().Debounce
	}
	if logger == nil {
		logger = logging.Nop()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &Watcher{
		fsw:      fsw,
		logger:   logger,
		config:   config,
		debounce: NewDebouncer(config.Debounce),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Watch blocks processing filesystem events until the context is cancelled
// or Stop is called, invoking onChange for each settled document change.
func (w *Watcher) Watch(ctx context.Context, onChange ChangeHandler) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return fmt.Errorf("watcher already running")
	}
	w.running = true
	w.started = true
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
		close(w.doneCh)
	}()

	if err := w.addPath(w.config.Root); err != nil {
		return fmt.Errorf("failed to watch workspace: %w", err)
	}

	w.logger.Info("workspace watcher started",
		"root", w.config.Root,
		"debounce_ms", w.config.Debounce.Milliseconds(),
	)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("workspace watcher stopped (context cancelled)")
			return nil

		case <-w.stopCh:
			w.logger.Info("workspace watcher stopped")
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}

			// A new subdirectory must be added before documents inside
			// it produce events.
			if event.Op.Has(fsnotify.Create) {
				if isDir, err := isDirectory(event.Name); err == nil && isDir {
					w.addPath(event.Name)
					continue
				}
			}

			if !w.shouldReport(event) {
				continue
			}

			w.logger.Debug("document event",
				"document", event.Name,
				"op", event.Op.String(),
			)

			path := event.Name
			removed := event.Op.Has(fsnotify.Remove) || event.Op.Has(fsnotify.Rename)
			w.debounce.Trigger(path, func() {
				onChange(path, removed)
			})

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			// Keep watching despite transient errors.
			w.logger.Error("workspace watcher error", "error", err)
		}
	}
}

// Stop stops the watcher, waits for the event loop to exit, and releases
// the filesystem watcher and any pending debounce timers. Resources are
// released even when the event loop already exited through context
// cancellation; repeated and concurrent calls are safe.
func (w *Watcher) Stop() error {
	var closeErr error
	w.stopOnce.Do(func() {
		close(w.stopCh)

		w.mu.RLock()
		started := w.started
		w.mu.RUnlock()
		if started {
			<-w.doneCh
		}

		w.debounce.Stop()
		if err := w.fsw.Close(); err != nil {
			closeErr = fmt.Errorf("failed to close watcher: %w", err)
		}
	})
	return closeErr
}

// addPath registers a file, or a directory tree, with the watcher.
func (w *Watcher) addPath(path string) error {
	isDir, err := isDirectory(path)
	if err != nil {
		return err
	}
	if !isDir {
		return w.fsw.Add(path)
	}

	return filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if w.config.SkipHidden && strings.HasPrefix(filepath.Base(p), ".") && p != path {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if info.IsDir() {
			if err := w.fsw.Add(p); err != nil {
				return fmt.Errorf("failed to watch directory %q: %w", p, err)
			}
			w.logger.Debug("watching directory", "path", p)
		}
		return nil
	})
}

// shouldReport filters events down to document changes worth reloading.
func (w *Watcher) shouldReport(event fsnotify.Event) bool {
	if event.Op.Has(fsnotify.Chmod) {
		return false
	}

	ext := strings.ToLower(filepath.Ext(event.Name))
	if !w.hasWatchedExtension(ext) {
		return false
	}

	if w.config.SkipHidden && strings.HasPrefix(filepath.Base(event.Name), ".") {
		return false
	}

	return true
}

func (w *Watcher) hasWatchedExtension(ext string) bool {
	for _, watched := range w.config.Extensions {
		if ext == strings.ToLower(watched) {
			return true
		}
	}
	return false
}

func isDirectory(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	return info.IsDir(), nil
}
