package sheet

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/IAtecnoaccion/dashboard-proyecto-xtract/internal/common"
)

// Invalidator drops cached data.
type Invalidator interface {
	Invalidate()
}

// DefaultDebounce batches the burst of events a spreadsheet save produces.
const DefaultDebounce = 500 * time.Millisecond

// Watcher invalidates a loader whenever its workbook changes on disk.
type Watcher struct {
	target    Invalidator
	watcher   *fsnotify.Watcher
	stopCh    chan struct{}
	doneCh    chan struct{}
	path      string
	dir       string
	debounce  time.Duration
	mu        sync.Mutex
	closeOnce sync.Once
	running   bool
}

// NewWatcher watches the file at path and calls target.Invalidate after
// changes settle for debounce.
func NewWatcher(path string, target Invalidator, debounce time.Duration) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	return &Watcher{
		target:   target,
		watcher:  fw,
		path:     abs,
		dir:      filepath.Dir(abs),
		debounce: debounce,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Start begins watching. It returns immediately; events are handled in a
// goroutine until ctx is done or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return nil
	}

	// The directory is watched so that replace-on-save keeps working.
	if err := w.watcher.Add(w.dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.dir, err)
	}

	w.running = true
	go w.run(ctx)

	common.LogInfo("Watching workbook for changes", common.Fields{"path": w.path})
	return nil
}

// Stop ends the watch and waits for the event loop to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	running := w.running
	w.running = false
	w.mu.Unlock()

	if running {
		close(w.stopCh)
		<-w.doneCh
	}

	w.closeOnce.Do(func() {
		if err := w.watcher.Close(); err != nil {
			common.LogError(err, "Failed to close file watcher", common.Fields{"path": w.path})
		}
	})
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

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
			common.LogDebug("Workbook changed", common.Fields{"path": event.Name, "op": event.Op.String()})
			timer.Reset(w.debounce)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			common.LogError(err, "File watcher error", common.Fields{"path": w.path})

		case <-timer.C:
			w.target.Invalidate()
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Write) ||
		event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Remove) ||
		event.Has(fsnotify.Rename)
}
