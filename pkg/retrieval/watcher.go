package retrieval

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period after a file event before the
// corpus is reloaded.
const DefaultDebounce = 100 * time.Millisecond

// Watcher watches a corpus directory and reloads the index when corpus
// files change. Rapid event bursts are debounced into a single reload.
type Watcher struct {
	index    *Index
	watcher  *fsnotify.Watcher
	logger   *slog.Logger
	debounce time.Duration

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
	timer   *time.Timer
}

// NewWatcher creates a watcher for a directory-backed index. The index
// must have been created with NewDirIndex.
func NewWatcher(idx *Index, logger *slog.Logger) (*Watcher, error) {
	if idx.dir == "" {
		return nil, fmt.Errorf("index is not directory-backed")
	}
	if logger == nil {
		logger = slog.Default()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}

	return &Watcher{
		index:    idx,
		watcher:  fsw,
		logger:   logger.With("component", "retrieval"),
		debounce: DefaultDebounce,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Watch blocks processing file events until the context is cancelled or
// Stop is called.
func (w *Watcher) Watch(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return fmt.Errorf("watcher already running")
	}
	w.running = true
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
		close(w.doneCh)
	}()

	if err := w.watcher.Add(w.index.dir); err != nil {
		return fmt.Errorf("watch corpus directory: %w", err)
	}

	w.logger.Info("Corpus watcher started",
		"dir", w.index.dir,
		"debounce_ms", w.debounce.Milliseconds(),
	)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Corpus watcher stopped (context cancelled)")
			return nil

		case <-w.stopCh:
			w.logger.Info("Corpus watcher stopped")
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !isCorpusEvent(event) {
				continue
			}
			w.logger.Debug("Corpus file event", "path", event.Name, "op", event.Op.String())
			w.scheduleReload()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error("Corpus watcher error", "error", err)
		}
	}
}

// Stop stops the watcher and waits for Watch to return.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return w.watcher.Close()
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh

	return w.watcher.Close()
}

func (w *Watcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		select {
		case <-w.stopCh:
			return
		default:
		}

		w.logger.Info("Reloading corpus", "dir", w.index.dir)
		if err := w.index.Reload(); err != nil {
			w.logger.Error("Corpus reload failed", "error", err)
		}
	})
}

func isCorpusEvent(event fsnotify.Event) bool {
	if event.Op&fsnotify.Chmod == fsnotify.Chmod {
		return false
	}
	switch strings.ToLower(filepath.Ext(event.Name)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
