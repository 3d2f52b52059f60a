package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type changeLog struct {
	mu    sync.Mutex
	calls [][]string
}

func (c *changeLog) record(_ context.Context, changed []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, changed)
	return nil
}

func (c *changeLog) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.calls)
}

func startWatcher(t *testing.T, w *Watcher) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		require.NoError(t, <-done)
	})
	select {
	case <-w.Ready():
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not become ready")
	}
}

func TestWatcher_DebouncesWrites(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "coverage")
	target := filepath.Join(dir, "coverage-summary.json")

	log := &changeLog{}
	w, err := New([]string{target}, 100*time.Millisecond, log.record)
	require.NoError(t, err)
	startWatcher(t, w)
	require.DirExists(t, dir, "missing parent directory is created")

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(target, []byte(`{"total":{}}`), 0o600))
	}

	require.Eventually(t, func() bool { return log.count() >= 1 }, 5*time.Second, 20*time.Millisecond)
	log.mu.Lock()
	require.Contains(t, log.calls[0], target)
	log.mu.Unlock()
}

func TestWatcher_IgnoresUnrelatedFiles(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "coverage-summary.json")

	log := &changeLog{}
	w, err := New([]string{target}, 20*time.Millisecond, log.record)
	require.NoError(t, err)
	startWatcher(t, w)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "lcov.info"), []byte("TN:"), 0o600))
	time.Sleep(200 * time.Millisecond)
	require.Zero(t, log.count())
}

func TestNew_RequiresFiles(t *testing.T) {
	_, err := New(nil, 0, nil)
	require.Error(t, err)

	w, err := New([]string{"a/x.json", "a/y.json"}, 0, nil)
	require.NoError(t, err)
	require.Len(t, w.dirs, 1)
	require.Equal(t, DefaultDebounce, w.debounce)
}
