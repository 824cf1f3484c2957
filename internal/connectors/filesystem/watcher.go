package filesystem

import (
	"context"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/motocheck/internal/logger"
)

// Default watcher tuning.
const (
	DefaultDebounce = 500 * time.Millisecond
	DefaultRate     = 1.0
)

// Handler receives a batch of new or rewritten files, sorted by path.
type Handler func(ctx context.Context, paths []string) error

// WatcherOptions tunes a Watcher. Zero values use the defaults.
type WatcherOptions struct {
	// Debounce is how long the folder must stay quiet before a batch is
	// handed over, so files still being copied are not read half-written.
	Debounce time.Duration

	// BatchesPerSecond caps how often the handler runs.
	BatchesPerSecond float64
}

// Watcher collects files dropped into a folder and hands them over in
// batches.
type Watcher struct {
	dir      string
	fsw      *fsnotify.Watcher
	debounce time.Duration
	limiter  *rate.Limiter

	mu      sync.Mutex
	pending map[string]struct{}
}

// NewWatcher starts watching dir. Subdirectories are not watched.
func NewWatcher(dir string, opts WatcherOptions) (*Watcher, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("watch folder: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("watch folder: %s is not a directory", dir)
	}

	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.BatchesPerSecond <= 0 {
		opts.BatchesPerSecond = DefaultRate
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", dir, err)
	}

	return &Watcher{
		dir:      dir,
		fsw:      fsw,
		debounce: opts.Debounce,
		limiter:  rate.NewLimiter(rate.Limit(opts.BatchesPerSecond), 1),
		pending:  make(map[string]struct{}),
	}, nil
}

// Run delivers batches to handle until ctx is cancelled or the watcher is
// closed. Handler errors are logged and watching continues.
func (w *Watcher) Run(ctx context.Context, handle Handler) error {
	defer w.fsw.Close()

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if w.handleFsEvent(event) {
				timer.Reset(w.debounce)
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch %s: %v", w.dir, err)

		case <-timer.C:
			paths := w.drain()
			if len(paths) == 0 {
				continue
			}
			if err := w.limiter.Wait(ctx); err != nil {
				return nil
			}
			logger.Debug("watch %s: %d new files", w.dir, len(paths))
			if err := handle(ctx, paths); err != nil {
				logger.Warn("watch %s: %v", w.dir, err)
			}
		}
	}
}

// Close stops watching. A running Run returns.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

// handleFsEvent updates the pending set and reports whether a file was
// added to it.
func (w *Watcher) handleFsEvent(event fsnotify.Event) bool {
	if isHidden(event.Name) {
		return false
	}

	switch {
	case event.Has(fsnotify.Create), event.Has(fsnotify.Write):
		info, err := os.Stat(event.Name)
		if err != nil || info.IsDir() {
			return false
		}
		w.mu.Lock()
		w.pending[event.Name] = struct{}{}
		w.mu.Unlock()
		return true

	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		w.mu.Lock()
		delete(w.pending, event.Name)
		w.mu.Unlock()
	}
	return false
}

func (w *Watcher) drain() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	paths := make([]string, 0, len(w.pending))
	for p := range w.pending {
		paths = append(paths, p)
	}
	w.pending = make(map[string]struct{})
	sort.Strings(paths)
	return paths
}
