package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func TestDebouncer_CollapsesBursts(t *testing.T) {
	d := NewDebouncer(50 * time.Millisecond)
	defer d.Stop()

	var mu sync.Mutex
	calls := 0

	for i := 0; i < 5; i++ {
		d.Trigger("doc.cdx", func() {
			mu.Lock()
			calls++
			mu.Unlock()
		})
	}

	time.Sleep(200 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if calls != 1 {
		t.Errorf("calls = %d, want 1 for a burst on one key", calls)
	}
}

func TestDebouncer_KeysAreIndependent(t *testing.T) {
	d := NewDebouncer(50 * time.Millisecond)
	defer d.Stop()

	var mu sync.Mutex
	fired := map[string]int{}
	note := func(key string) func() {
		return func() {
			mu.Lock()
			fired[key]++
			mu.Unlock()
		}
	}

	d.Trigger("a.cdx", note("a.cdx"))
	d.Trigger("b.cdx", note("b.cdx"))

	time.Sleep(200 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if fired["a.cdx"] != 1 || fired["b.cdx"] != 1 {
		t.Errorf("fired = %v, want one callback per key", fired)
	}
}

func TestDebouncer_StopCancelsPending(t *testing.T) {
	d := NewDebouncer(50 * time.Millisecond)

	var mu sync.Mutex
	calls := 0
	d.Trigger("doc.cdx", func() {
		mu.Lock()
		calls++
		mu.Unlock()
	})
	d.Stop()

	time.Sleep(150 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if calls != 0 {
		t.Errorf("calls = %d after Stop, want 0", calls)
	}
}

// collectChanges runs a watcher over dir and gathers notifications.
func collectChanges(t *testing.T, dir string) (*Watcher, context.CancelFunc, func() []string) {
	t.Helper()

	w, err := New(&Config{
		Root:       dir,
		Debounce:   30 * time.Millisecond,
		Extensions: []string{".cdx"},
		SkipHidden: true,
	}, nil)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	var mu sync.Mutex
	var changed []string
	go func() {
		w.Watch(ctx, func(path string, removed bool) {
			mu.Lock()
			changed = append(changed, path)
			mu.Unlock()
		})
	}()

	// Give the event loop time to register watches.
	time.Sleep(100 * time.Millisecond)

	return w, cancel, func() []string {
		mu.Lock()
		defer mu.Unlock()
		out := make([]string, len(changed))
		copy(out, changed)
		return out
	}
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(20 * time.Millisecond)
	}
	return cond()
}

func TestWatcher_ReportsDocumentChange(t *testing.T) {
	dir := t.TempDir()
	w, cancel, changes := collectChanges(t, dir)
	defer cancel()
	defer w.Stop()

	path := filepath.Join(dir, "plan.cdx")
	if err := os.WriteFile(path, []byte("<context/>"), 0o644); err != nil {
		t.Fatalf("writing document: %v", err)
	}

	if !waitFor(t, 2*time.Second, func() bool { return len(changes()) >= 1 }) {
		t.Fatal("no change reported for new document")
	}
	if got := changes()[0]; got != path {
		t.Errorf("reported path = %q, want %q", got, path)
	}
}

func TestWatcher_IgnoresOtherExtensions(t *testing.T) {
	dir := t.TempDir()
	w, cancel, changes := collectChanges(t, dir)
	defer cancel()
	defer w.Stop()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("writing file: %v", err)
	}

	time.Sleep(300 * time.Millisecond)
	if got := changes(); len(got) != 0 {
		t.Errorf("changes = %v, want none for unwatched extension", got)
	}
}

func TestWatcher_IgnoresHiddenFiles(t *testing.T) {
	dir := t.TempDir()
	w, cancel, changes := collectChanges(t, dir)
	defer cancel()
	defer w.Stop()

	if err := os.WriteFile(filepath.Join(dir, ".draft.cdx"), []byte("x"), 0o644); err != nil {
		t.Fatalf("writing file: %v", err)
	}

	time.Sleep(300 * time.Millisecond)
	if got := changes(); len(got) != 0 {
		t.Errorf("changes = %v, want none for hidden file", got)
	}
}

func TestWatcher_DoubleWatchFails(t *testing.T) {
	dir := t.TempDir()
	w, cancel, _ := collectChanges(t, dir)
	defer cancel()
	defer w.Stop()

	if err := w.Watch(context.Background(), func(string, bool) {}); err == nil {
		t.Error("second Watch() on a running watcher succeeded")
	}
}

func TestWatcher_StopIdempotent(t *testing.T) {
	w, err := New(nil, nil)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	// Stop before Watch must not block or error, and a second Stop must
	// not close already-closed channels.
	if err := w.Stop(); err != nil {
		t.Errorf("Stop() on idle watcher = %v", err)
	}
	if err := w.Stop(); err != nil {
		t.Errorf("second Stop() = %v", err)
	}
}

func TestWatcher_StopAfterContextCancel(t *testing.T) {
	dir := t.TempDir()
	w, err := New(&Config{Root: dir, Debounce: 30 * time.Millisecond}, nil)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	watchDone := make(chan error, 1)
	go func() {
		watchDone <- w.Watch(ctx, func(string, bool) {})
	}()
	time.Sleep(100 * time.Millisecond)

	// Let the event loop exit on its own before Stop is called.
	cancel()
	select {
	case err := <-watchDone:
		if err != nil {
			t.Fatalf("Watch() = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Watch() did not exit after context cancellation")
	}

	// Stop must still release the filesystem watcher and debounce timers.
	if err := w.Stop(); err != nil {
		t.Errorf("Stop() after cancelled Watch = %v", err)
	}
	if err := w.Stop(); err != nil {
		t.Errorf("second Stop() = %v", err)
	}
}

func TestWatcher_ConcurrentStop(t *testing.T) {
	dir := t.TempDir()
	w, cancel, _ := collectChanges(t, dir)
	defer cancel()

	var wg sync.WaitGroup
	errs := make([]error, 4)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = w.Stop()
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Errorf("Stop() #%d = %v", i, err)
		}
	}
}
