package watcher

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/omicsops/samplectl/internal/utils/logger"
	"go.uber.org/zap"
)

// Watcher re-validates a sample sheet whenever it changes on disk
type Watcher struct {
	watcher    *fsnotify.Watcher
	revalidate func(string) error
	debouncer  *Debouncer
}

// Debouncer prevents rapid-fire revalidations while an editor is saving
type Debouncer struct {
	timer    *time.Timer
	duration time.Duration
}

// NewWatcher creates a new sheet watcher. revalidate is called with the
// changed path after the debounce window passes.
func NewWatcher(revalidate func(string) error) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	return &Watcher{
		watcher:    fsWatcher,
		revalidate: revalidate,
		debouncer: &Debouncer{
			duration: 500 * time.Millisecond,
		},
	}, nil
}

// Watch starts watching the given sheet files
func (w *Watcher) Watch(paths ...string) error {
	logger.Info("Watching sample sheets", zap.Strings("paths", paths))

	for _, path := range paths {
		if err := w.watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}

		// Editors often replace the file, so watch the directory too
		dir := filepath.Dir(path)
		if err := w.watcher.Add(dir); err != nil {
			logger.Warn("Failed to watch directory", zap.String("dir", dir), zap.Error(err))
		}
	}

	go w.processEvents()

	return nil
}

// processEvents processes file system events
func (w *Watcher) processEvents() {
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
			logger.Error("File watcher error", zap.Error(err))
		}
	}
}

// handleEvent handles a single file system event
func (w *Watcher) handleEvent(event fsnotify.Event) {
	if event.Op&fsnotify.Write == fsnotify.Write || event.Op&fsnotify.Create == fsnotify.Create {
		logger.Debug("Sheet changed", zap.String("file", event.Name), zap.String("op", event.Op.String()))

		w.debouncer.Debounce(func() {
			if err := w.revalidate(event.Name); err != nil {
				logger.Error("Revalidation failed after change",
					zap.String("file", event.Name),
					zap.Error(err))
			}
		})
	}
}

// Debounce debounces function calls
func (d *Debouncer) Debounce(fn func()) {
	if d.timer != nil {
		d.timer.Stop()
	}

	d.timer = time.AfterFunc(d.duration, fn)
}

// Close closes the watcher
func (w *Watcher) Close() error {
	if w.debouncer.timer != nil {
		w.debouncer.timer.Stop()
	}
	return w.watcher.Close()
}
