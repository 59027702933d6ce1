package catalog

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads the catalog when the card data on disk changes.
type Watcher struct {
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	path     string
	holder   *Holder
	debounce time.Duration
	onReload func(*Catalog, error)
	stopCh   chan struct{}
	doneCh   chan struct{}
	running  bool
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce sets how long the watcher waits after the last change
// before reloading.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// OnReload registers a callback invoked after every reload attempt.
func OnReload(fn func(*Catalog, error)) WatcherOption {
	return func(w *Watcher) {
		w.onReload = fn
	}
}

// NewWatcher creates a watcher for the card data at path that publishes
// reloaded catalogs through holder.
func NewWatcher(path string, holder *Holder, opts ...WatcherOption) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	w := &Watcher{
		watcher:  fw,
		path:     path,
		holder:   holder,
		debounce: 300 * time.Millisecond, // Editors save in bursts
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Start begins watching. It is non-blocking.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	dirs, err := w.watchDirs()
	if err == nil {
		for _, dir := range dirs {
			if err = w.watcher.Add(dir); err != nil {
				err = fmt.Errorf("failed to watch %s: %w", dir, err)
				break
			}
		}
	}
	if err != nil {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
		return err
	}
	slog.Info("Watching card data for changes", "path", w.path, "dirs", len(dirs))

	go w.run(ctx)
	return nil
}

// watchDirs lists the directories to watch. A single data file is watched
// through its parent directory so that atomic replaces are seen.
func (w *Watcher) watchDirs() ([]string, error) {
	info, err := os.Stat(w.path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", w.path, err)
	}
	if !info.IsDir() {
		return []string{filepath.Dir(w.path)}, nil
	}

	var dirs []string
	err = filepath.WalkDir(w.path, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != w.path && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		dirs = append(dirs, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", w.path, err)
	}
	return dirs, nil
}

// Stop stops the watcher and waits for its loop to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh

	if err := w.watcher.Close(); err != nil {
		slog.Warn("Failed to close file watcher", "error", err)
	}
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			slog.Debug("Card data changed", "path", event.Name, "op", event.Op.String())
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("File watcher error", "error", err)

		case <-fire:
			fire = nil
			w.reload()
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	if filepath.Clean(event.Name) == filepath.Clean(w.path) {
		return true
	}
	return isCardFile(event.Name) && strings.HasPrefix(filepath.Clean(event.Name), filepath.Clean(w.path)+string(filepath.Separator))
}

// reload swaps in a freshly loaded catalog. On failure the previous
// catalog stays in place.
func (w *Watcher) reload() {
	c, err := Load(w.path)
	if err != nil {
		slog.Error("Failed to reload card data, keeping previous catalog", "path", w.path, "error", err)
	} else {
		w.holder.Swap(c)
		slog.Info("Card data reloaded", "path", w.path, "cards", c.Len(), "themes", len(c.Themes()))
	}
	if w.onReload != nil {
		w.onReload(c, err)
	}
}
