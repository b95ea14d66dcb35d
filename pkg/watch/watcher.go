// Package watch turns filesystem events in one directory into refresh signals.
package watch

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/datatug/millertug/pkg/logging"
	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

var newWatcher = fsnotify.NewWatcher

// Watcher watches a single directory at a time.
// Any create, remove, rename or write inside it is reported on Changes.
// Bursts are coalesced into one pending notification.
type Watcher struct {
	watcher *fsnotify.Watcher
	changes chan struct{}
	done    chan struct{}
	log     logrus.FieldLogger

	mu  sync.Mutex
	dir string
}

type Option func(w *Watcher)

func WithLogger(log logrus.FieldLogger) Option {
	return func(w *Watcher) {
		w.log = log
	}
}

func New(options ...Option) (*Watcher, error) {
	fw, err := newWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create filesystem watcher: %w", err)
	}
	w := &Watcher{
		watcher: fw,
		changes: make(chan struct{}, 1),
		done:    make(chan struct{}),
		log:     logging.Discard(),
	}
	for _, o := range options {
		o(w)
	}
	go w.run()
	return w, nil
}

// Watch replaces the watched directory with dir.
// Watching the directory already watched is a no-op.
func (w *Watcher) Watch(dir string) error {
	dir = filepath.Clean(dir)
	w.mu.Lock()
	defer w.mu.Unlock()
	if dir == w.dir {
		return nil
	}
	if w.dir != "" {
		if err := w.watcher.Remove(w.dir); err != nil {
			w.log.WithError(err).Debugf("failed to stop watching %s", w.dir)
		}
		w.dir = ""
	}
	if err := w.watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	w.dir = dir
	w.log.Debugf("watching %s", dir)
	return nil
}

// Dir is the currently watched directory, empty when none.
func (w *Watcher) Dir() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.dir
}

// Changes delivers at most one pending notification.
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

func (w *Watcher) Close() error {
	err := w.watcher.Close()
	<-w.done
	return err
}

func (w *Watcher) run() {
	defer close(w.done)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handle(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.WithError(err).Warn("watcher error")
		}
	}
}

const relevantOps = fsnotify.Create | fsnotify.Remove | fsnotify.Rename | fsnotify.Write

func (w *Watcher) handle(event fsnotify.Event) {
	if event.Op&relevantOps == 0 {
		return
	}
	w.mu.Lock()
	dir := w.dir
	w.mu.Unlock()
	if dir == "" || filepath.Dir(event.Name) != dir {
		// late event from a directory no longer watched
		return
	}
	w.log.Debugf("fsnotify event: %s op=%v", event.Name, event.Op)
	w.notify()
}

func (w *Watcher) notify() {
	select {
	case w.changes <- struct{}{}:
	default:
	}
}
