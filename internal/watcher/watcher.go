// Package watcher reports created and modified diagram sources under a set of
// directories.
package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Operation is the kind of change observed on a file.
type Operation int

const (
	Created Operation = iota + 1
	Modified
	Removed
)

func (o Operation) String() string {
	switch o {
	case Created:
		return "created"
	case Modified:
		return "modified"
	case Removed:
		return "removed"
	}
	return "unknown"
}

// Event is one filtered file system change.
type Event struct {
	Path string
	Op   Operation
}

// DefaultExtensions are watched when none are configured.
var DefaultExtensions = []string{".md", ".mmd"}

// Watcher wraps fsnotify with extension filtering.
type Watcher struct {
	fs         *fsnotify.Watcher
	extensions []string
	log        *zap.Logger
}

// New creates a watcher for files with one of extensions. A nil log
// discards output.
func New(extensions []string, log *zap.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Watcher{fs: fw, extensions: extensions, log: log}, nil
}

// Add watches each path. Files are watched through their parent directory
// so editors that replace files on save keep being observed.
func (w *Watcher) Add(paths ...string) error {
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return fmt.Errorf("watching %s: %w", p, err)
		}
		dir := p
		if !info.IsDir() {
			dir = filepath.Dir(p)
		}
		if err := w.fs.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
		w.log.Debug("watching directory", zap.String("dir", dir))
	}
	return nil
}

// Watch emits filtered events until ctx is done or the watcher is closed.
// The returned channel is closed when the emitting goroutine exits.
func (w *Watcher) Watch(ctx context.Context) <-chan Event {
	events := make(chan Event, 100)

	go func() {
		defer close(events)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.fs.Events:
				if !ok {
					return
				}
				if !w.isWatchedExtension(ev.Name) {
					continue
				}

				var op Operation
				switch {
				case ev.Has(fsnotify.Create):
					op = Created
				case ev.Has(fsnotify.Write):
					op = Modified
				case ev.Has(fsnotify.Remove), ev.Has(fsnotify.Rename):
					op = Removed
				default:
					continue
				}

				select {
				case events <- Event{Path: ev.Name, Op: op}:
				case <-ctx.Done():
					return
				}
			case err, ok := <-w.fs.Errors:
				if !ok {
					return
				}
				w.log.Warn("watch error", zap.Error(err))
			}
		}
	}()

	return events
}

// Close stops the underlying fsnotify watcher.
func (w *Watcher) Close() error {
	return w.fs.Close()
}

func (w *Watcher) isWatchedExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range w.extensions {
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}
