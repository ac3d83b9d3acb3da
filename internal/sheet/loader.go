package sheet

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/IAtecnoaccion/dashboard-proyecto-xtract/internal/checksum"
	"github.com/IAtecnoaccion/dashboard-proyecto-xtract/internal/common"
)

// Observer is told about every load attempt.
type Observer interface {
	LoadSucceeded(path string, records int, elapsed time.Duration)
	LoadFailed(path string, err error)
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithObserver reports load attempts to o.
func WithObserver(o Observer) LoaderOption {
	return func(l *Loader) {
		l.observer = o
	}
}

// WithClock overrides the time source used for LoadedAt.
func WithClock(now func() time.Time) LoaderOption {
	return func(l *Loader) {
		l.now = now
	}
}

// Loader keeps the last successfully read table and re-reads it when the
// file changes or when asked to. Failed reads are never cached.
type Loader struct {
	table    *Table
	observer Observer
	now      func() time.Time
	path     string
	opts     Options
	mu       sync.RWMutex
}

// NewLoader creates a loader for the workbook at path. Nothing is read until
// the first call to Table or Reload.
func NewLoader(path string, opts Options, options ...LoaderOption) *Loader {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	l := &Loader{
		path: path,
		opts: opts,
		now:  time.Now,
	}
	for _, o := range options {
		o(l)
	}
	return l
}

// Path returns the absolute workbook path.
func (l *Loader) Path() string {
	return l.path
}

// Table returns the current snapshot, reading the file if there is none or
// if its identity changed since the last read.
func (l *Loader) Table() (*Table, error) {
	l.mu.RLock()
	current := l.table
	l.mu.RUnlock()

	if current != nil {
		state, id := l.compare(current)
		switch state {
		case fileSame:
			return current, nil
		case fileTouched:
			return l.retag(current, id), nil
		}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// Another caller may have refreshed it while we waited.
	if l.table != nil && l.table != current {
		if state, _ := l.compare(l.table); state == fileSame {
			return l.table, nil
		}
	}
	return l.load()
}

// Reload discards the snapshot and reads the file again.
func (l *Loader) Reload() (*Table, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.table = nil
	return l.load()
}

// Invalidate drops the snapshot so the next Table call reads the file.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	l.table = nil
	l.mu.Unlock()

	common.LogDebug("Workbook snapshot invalidated", common.Fields{"path": l.path})
}

// Identity returns the identity of the current snapshot, if any.
func (l *Loader) Identity() (Identity, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.table == nil {
		return Identity{}, false
	}
	return l.table.Identity, true
}

type fileState int

const (
	fileSame fileState = iota
	fileTouched
	fileChanged
)

// compare checks the file on disk against the identity of t. A file whose
// stat changed but whose content hashes the same is reported as touched,
// together with its new identity.
func (l *Loader) compare(t *Table) (fileState, Identity) {
	id, err := statIdentity(l.path)
	if err != nil {
		return fileChanged, Identity{}
	}
	if id.SameStat(t.Identity) {
		return fileSame, t.Identity
	}

	sum, err := checksum.File(l.path)
	if err != nil || sum != t.Identity.Checksum {
		return fileChanged, Identity{}
	}
	id.Checksum = sum
	return fileTouched, id
}

// retag records a new stat identity for unchanged content so later calls
// skip hashing.
func (l *Loader) retag(t *Table, id Identity) *Table {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.table != t {
		if l.table != nil {
			return l.table
		}
		return t
	}
	next := *t
	next.Identity = id
	l.table = &next
	return l.table
}

// load reads the workbook. Callers must hold the write lock.
func (l *Loader) load() (*Table, error) {
	start := time.Now()

	table, err := l.read()
	if err != nil {
		l.table = nil
		common.LogError(err, "Failed to load workbook", common.Fields{"path": l.path})
		if l.observer != nil {
			l.observer.LoadFailed(l.path, err)
		}
		return nil, err
	}

	l.table = table
	elapsed := time.Since(start)
	common.LogInfo("Workbook loaded", common.Fields{
		"path":     l.path,
		"sheet":    table.Sheet,
		"records":  table.Len(),
		"checksum": table.Identity.Checksum,
		"elapsed":  elapsed,
	})
	if l.observer != nil {
		l.observer.LoadSucceeded(l.path, table.Len(), elapsed)
	}
	return table, nil
}

func (l *Loader) read() (*Table, error) {
	id, err := statIdentity(l.path)
	if err != nil {
		return nil, loadFailure(l.path, err)
	}

	sum, err := checksum.File(l.path)
	if err != nil {
		return nil, loadFailure(l.path, err)
	}
	id.Checksum = sum

	table, err := Read(l.path, l.opts)
	if err != nil {
		return nil, err
	}
	table.Identity = id
	table.LoadedAt = l.now()
	return table, nil
}

func statIdentity(path string) (Identity, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Identity{}, err
	}
	if info.IsDir() {
		return Identity{}, fmt.Errorf("%s is a directory", path)
	}
	return Identity{
		Path:    path,
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}, nil
}
