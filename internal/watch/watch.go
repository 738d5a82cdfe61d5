// Package watch reports bend-test exports as the machine writes them into a
// directory.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is how long a file must stay quiet before it is handled
const DefaultDebounce = 500 * time.Millisecond

// Handler receives each settled .csv file once per burst of writes.
// A returned error counts the file under Stats.Errors.
type Handler func(ctx context.Context, path string) error

// Stats counts watcher activity. Handled counts files the handler accepted;
// Errors counts handler failures and fsnotify errors.
type Stats struct {
	Events  int
	Handled int
	Errors  int
}

// Watcher debounces .csv create/write events in one directory
type Watcher struct {
	dir      string
	handler  Handler
	log      *zap.Logger
	debounce time.Duration

	mu      sync.Mutex
	pending map[string]time.Time
	stats   Stats
}

// Option configures a Watcher
type Option func(*Watcher)

// WithDebounce overrides DefaultDebounce
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

// WithLogger sets the logger; the default discards
func WithLogger(l *zap.Logger) Option {
	return func(w *Watcher) { w.log = l }
}

// New creates a watcher for dir. Nothing is watched until Run.
func New(dir string, h Handler, opts ...Option) *Watcher {
	w := &Watcher{
		dir:      dir,
		handler:  h,
		log:      zap.NewNop(),
		debounce: DefaultDebounce,
		pending:  make(map[string]time.Time),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Stats returns a snapshot of the counters
func (w *Watcher) Stats() Stats {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stats
}

// Run watches until ctx is cancelled. Handlers run on the Run goroutine.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}
	w.log.Info("watching for bend exports", zap.String("dir", w.dir), zap.Duration("debounce", w.debounce))

	ticker := time.NewTicker(max(w.debounce/5, 10*time.Millisecond))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Debug("watcher stopped", zap.String("dir", w.dir))
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watcher error", zap.Error(err))
			w.mu.Lock()
			w.stats.Errors++
			w.mu.Unlock()

		case <-ticker.C:
			for _, path := range w.settled(time.Now()) {
				w.handle(ctx, path)
			}
		}
	}
}

func (w *Watcher) handle(ctx context.Context, path string) {
	w.log.Debug("export settled", zap.String("path", path))
	err := w.handler(ctx, path)

	w.mu.Lock()
	defer w.mu.Unlock()
	if err != nil {
		w.log.Warn("export failed", zap.String("path", path), zap.Error(err))
		w.stats.Errors++
		return
	}
	w.stats.Handled++
}

func isExport(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".csv")
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !isExport(event.Name) {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	switch {
	case event.Op&(fsnotify.Create|fsnotify.Write) != 0:
		w.stats.Events++
		w.pending[event.Name] = time.Now()
	case event.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
		delete(w.pending, event.Name)
	}
}

// settled removes and returns the paths quiet for at least the debounce
func (w *Watcher) settled(now time.Time) []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	var ready []string
	for path, last := range w.pending {
		if now.Sub(last) >= w.debounce {
			ready = append(ready, path)
			delete(w.pending, path)
		}
	}
	return ready
}
