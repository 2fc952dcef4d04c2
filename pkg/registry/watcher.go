package registry

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/zcbus/zcbus-go/pkg/service"
)

// ErrWatchUnsupported is returned by Watch for local services.
var ErrWatchUnsupported = errors.New("watching is only supported for ipc services")

// WatchOp is the kind of change reported by a Watcher.
type WatchOp uint8

const (
	// WatchAdded indicates a service was published.
	WatchAdded WatchOp = 0

	// WatchRemoved indicates a service was removed.
	WatchRemoved WatchOp = 1
)

// String returns the operation name.
func (o WatchOp) String() string {
	switch o {
	case WatchAdded:
		return "ADDED"
	case WatchRemoved:
		return "REMOVED"
	default:
		return "UNKNOWN"
	}
}

// WatchEvent reports one change of the service directory.
type WatchEvent struct {
	Op WatchOp
	ID service.ID

	// Static is the config of an added service, if it could be read.
	Static *StaticConfig
}

// Watcher reports services appearing in and disappearing from the service
// directory.
type Watcher struct {
	reg     *Registry
	fs      *fsnotify.Watcher
	static  *fileStatic
	events  chan WatchEvent
	errors  chan error
	done    chan struct{}
	wg      sync.WaitGroup
	closeMu sync.Once
}

// Watch starts watching the service directory of an ipc registry.
func (r *Registry) Watch() (*Watcher, error) {
	static, ok := r.static.(*fileStatic)
	if !ok {
		return nil, ErrWatchUnsupported
	}
	if err := os.MkdirAll(static.dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create service directory: %w", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := fw.Add(static.dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", static.dir, err)
	}

	w := &Watcher{
		reg:    r,
		fs:     fw,
		static: static,
		events: make(chan WatchEvent, 16),
		errors: make(chan error, 1),
		done:   make(chan struct{}),
	}
	w.wg.Add(1)
	go w.run()
	return w, nil
}

// Events returns the channel of changes. It is closed by Close.
func (w *Watcher) Events() <-chan WatchEvent {
	return w.events
}

// Errors returns the channel of watch errors. It is closed by Close.
func (w *Watcher) Errors() <-chan error {
	return w.errors
}

// Close stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Close() error {
	var err error
	w.closeMu.Do(func() {
		close(w.done)
		err = w.fs.Close()
		w.wg.Wait()
	})
	return err
}

func (w *Watcher) run() {
	defer w.wg.Done()
	defer close(w.events)
	defer close(w.errors)

	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			w.handle(ev)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			select {
			case w.errors <- err:
			default:
				w.reg.logger.Warn("dropping watch error", slog.Any("error", err))
			}
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	id, ok := w.static.idFromFile(filepath.Base(ev.Name))
	if !ok {
		return
	}

	var out WatchEvent
	switch {
	case ev.Has(fsnotify.Create):
		out = WatchEvent{Op: WatchAdded, ID: id}
		if sc, err := w.reg.readStatic(id); err == nil {
			out.Static = sc
		}
	case ev.Has(fsnotify.Remove), ev.Has(fsnotify.Rename):
		out = WatchEvent{Op: WatchRemoved, ID: id}
	default:
		return
	}

	select {
	case w.events <- out:
	case <-w.done:
	}
}
