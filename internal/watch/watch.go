// Package watch regenerates reports when their input files change.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/docreports/internal/logfields"
)

// DefaultDebounce coalesces the burst of writes test runners emit.
const DefaultDebounce = 500 * time.Millisecond

// Watcher monitors a set of files and invokes OnChange once per burst of
// modifications. OnChange runs on the watcher goroutine, so regenerations
// never overlap.
type Watcher struct {
	files    map[string]struct{}
	dirs     []string
	debounce time.Duration
	onChange func(ctx context.Context, changed []string) error
	logger   *slog.Logger
	ready    chan struct{}
}

// New creates a Watcher for files. Parent directories are created on Run when
// missing so a summary that does not exist yet can still be watched.
func New(files []string, debounce time.Duration, onChange func(ctx context.Context, changed []string) error) (*Watcher, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("no files to watch")
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	w := &Watcher{
		files:    map[string]struct{}{},
		debounce: debounce,
		onChange: onChange,
		logger:   slog.Default(),
		ready:    make(chan struct{}),
	}
	seenDirs := map[string]bool{}
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve watch path: %w", err)
		}
		w.files[abs] = struct{}{}
		// Watch the directory containing the file (more reliable than watching the file directly)
		dir := filepath.Dir(abs)
		if !seenDirs[dir] {
			seenDirs[dir] = true
			w.dirs = append(w.dirs, dir)
		}
	}
	return w, nil
}

// WithLogger sets the logger.
func (w *Watcher) WithLogger(l *slog.Logger) *Watcher {
	if l != nil {
		w.logger = l
	}
	return w
}

// Ready is closed once all directories are being watched.
func (w *Watcher) Ready() <-chan struct{} { return w.ready }

// Run blocks until ctx is cancelled. Errors from OnChange are logged and do
// not stop the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer func() { _ = fw.Close() }()

	for _, dir := range w.dirs {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create watch directory %s: %w", dir, err)
		}
		if err := fw.Add(dir); err != nil {
			return fmt.Errorf("failed to watch directory %s: %w", dir, err)
		}
		w.logger.Info("Watching for report input changes", logfields.Path(dir))
	}
	close(w.ready)

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	pending := map[string]struct{}{}

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug("Report input change detected", logfields.Path(event.Name), slog.String("op", event.Op.String()))
			pending[event.Name] = struct{}{}
			timer.Reset(w.debounce)

		case <-timer.C:
			changed := make([]string, 0, len(pending))
			for name := range pending {
				changed = append(changed, name)
			}
			clear(pending)
			start := time.Now()
			if err := w.onChange(ctx, changed); err != nil {
				w.logger.Error("Regeneration failed", logfields.Error(err))
				continue
			}
			w.logger.Info("Regenerated after input change", logfields.Duration(time.Since(start)))

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("File watcher error", logfields.Error(err))
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if _, ok := w.files[filepath.Clean(event.Name)]; !ok {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) != 0
}
