package watcher

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// RemovalEvent reports a path that disappeared from the watched tree.
type RemovalEvent struct {
	Path string
}

// Watcher monitors the download path recursively and emits an event
// whenever something under it is removed or renamed away, so stale import
// records can be evicted without waiting for a prune run.
type Watcher struct {
	watcher   *fsnotify.Watcher
	watchPath string
	running   bool
	stopChan  chan struct{}
	eventChan chan<- RemovalEvent
}

// NewWatcher creates a new file system watcher.
func NewWatcher(eventChan chan<- RemovalEvent) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		watcher:   watcher,
		eventChan: eventChan,
		stopChan:  make(chan struct{}),
	}, nil
}

// Start begins watching the download path and its subdirectories.
func (w *Watcher) Start(ctx context.Context, watchPath string) error {
	w.watchPath = watchPath
	slog.Info("Starting download path watcher", "path", watchPath)

	err := filepath.WalkDir(watchPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.watcher.Add(path)
		}
		return nil
	})
	if err != nil {
		return err
	}

	w.running = true
	go w.watchLoop(ctx)

	slog.Info("Download path watcher started")
	return nil
}

// Stop stops the file watcher.
func (w *Watcher) Stop() {
	if !w.running {
		return
	}

	slog.Info("Stopping download path watcher")
	w.running = false
	close(w.stopChan)
	w.watcher.Close()
}

// watchLoop processes file system events.
func (w *Watcher) watchLoop(ctx context.Context) {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("File watcher error", "error", err)

		case <-w.stopChan:
			return

		case <-ctx.Done():
			return
		}
	}
}

// handleEvent processes a single file system event.
func (w *Watcher) handleEvent(event fsnotify.Event) {
	// New directories join the watch so nested removals are seen too.
	if event.Op&fsnotify.Create == fsnotify.Create {
		w.maybeWatchDir(event.Name)
		return
	}

	if event.Op&(fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}

	slog.Debug("Detected removal under download path", "path", event.Name)
	select {
	case w.eventChan <- RemovalEvent{Path: event.Name}:
	case <-w.stopChan:
	}
}

func (w *Watcher) maybeWatchDir(path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}
	if err := w.watcher.Add(path); err != nil {
		slog.Debug("not watching created directory", "path", path, "error", err)
	}
}
