package dataset

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/Iron-Ham/rowsift/internal/errors"
)

// DefaultDebounce is how long the watcher waits after the last filesystem
// event before reloading. Editors often emit several events per save.
const DefaultDebounce = 150 * time.Millisecond

// Reload is delivered by a Watcher after the watched file changes.
// Exactly one of Dataset and Err is set.
type Reload struct {
	Dataset *Dataset
	Err     error
}

// Watcher reloads a local dataset file whenever it changes on disk.
type Watcher struct {
	path     string
	opts     LoadOptions
	debounce time.Duration
	watcher  *fsnotify.Watcher
	reloads  chan Reload

	stopOnce sync.Once
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// NewWatcher creates a Watcher for the local file at path. The parent
// directory is watched so that atomic replace-on-save is detected.
func NewWatcher(path string, opts LoadOptions) (*Watcher, error) {
	if IsRemote(path) {
		return nil, errors.NewValidationError("only local files can be watched").
			WithField("dataset.watch").
			WithValue(path)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrap(err, "resolving dataset path")
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "creating file watcher")
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		_ = fw.Close()
		return nil, errors.Wrapf(err, "watching %s", filepath.Dir(abs))
	}

	return &Watcher{
		path:     abs,
		opts:     opts,
		debounce: DefaultDebounce,
		watcher:  fw,
		reloads:  make(chan Reload, 1),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// SetDebounce overrides DefaultDebounce. Must be called before Start.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// Reloads returns the channel on which reload results are delivered.
// The channel is closed after Stop.
func (w *Watcher) Reloads() <-chan Reload {
	return w.reloads
}

// Start begins watching in a background goroutine.
func (w *Watcher) Start() {
	go w.loop()
}

// Stop stops watching and waits for the background goroutine to exit.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
		_ = w.watcher.Close()
	})
	<-w.doneCh
}

func (w *Watcher) loop() {
	defer close(w.doneCh)
	defer close(w.reloads)

	timer := time.NewTimer(0)
	<-timer.C
	pending := false

	for {
		select {
		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			pending = true
			timer.Reset(w.debounce)

		case <-timer.C:
			if !pending {
				continue
			}
			pending = false
			w.deliver(w.load())

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.deliver(Reload{Err: errors.Wrap(err, "watching dataset")})
		}
	}
}

func (w *Watcher) load() Reload {
	ds, err := Load(context.Background(), w.path, w.opts)
	if err != nil {
		return Reload{Err: err}
	}
	return Reload{Dataset: ds}
}

// deliver replaces any undelivered reload with r so that a slow consumer
// only ever sees the newest state.
func (w *Watcher) deliver(r Reload) {
	for {
		select {
		case w.reloads <- r:
			return
		case <-w.stopCh:
			return
		default:
		}
		select {
		case <-w.reloads:
		default:
		}
	}
}
