package assets

import (
	"errors"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spaghettifunk/gyre/engine/core"
)

// FnOnChange is invoked on the watcher goroutine with the path of the
// changed file.
type FnOnChange func(path string)

// Quiet period after the last event before onChange fires. A single save
// usually produces several Create/Write events.
const DefaultReloadDelay = 100 * time.Millisecond

// ConfigWatcher reports writes to a single file. It watches the parent
// directory so that editors replacing the file by rename are noticed too.
// A burst of events is reported once.
type ConfigWatcher struct {
	path     string
	onChange FnOnChange
	delay    time.Duration

	mutex    sync.Mutex
	fsnotify *fsnotify.Watcher
	pending  *time.Timer
	isClosed bool
	done     chan struct{}
}

func NewConfigWatcher(path string, onChange FnOnChange) (*ConfigWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &ConfigWatcher{
		path:     abs,
		onChange: onChange,
		delay:    DefaultReloadDelay,
		fsnotify: fsWatch,
		done:     make(chan struct{}),
	}, nil
}

func (w *ConfigWatcher) Path() string {
	return w.path
}

// Start begins watching and returns once the watch is registered.
func (w *ConfigWatcher) Start() error {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	if w.isClosed {
		return errors.New("config watcher already closed")
	}
	if err := w.fsnotify.Add(filepath.Dir(w.path)); err != nil {
		return err
	}
	go w.start()
	return nil
}

// Close stops the watcher; it is safe to call more than once.
func (w *ConfigWatcher) Close() error {
	w.mutex.Lock()
	if w.isClosed {
		w.mutex.Unlock()
		return nil
	}
	w.isClosed = true
	if w.pending != nil {
		w.pending.Stop()
	}
	close(w.done)
	w.mutex.Unlock()
	return w.fsnotify.Close()
}

func (w *ConfigWatcher) start() {
	for {
		select {
		case e, ok := <-w.fsnotify.Events:
			if !ok {
				return
			}
			if filepath.Clean(e.Name) != w.path {
				continue
			}
			// Handle create or modify events
			if e.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				core.LogDebug("config file %s changed (%s)", e.Name, e.Op)
				w.schedule()
			}

		case err, ok := <-w.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogError(err.Error())

		case <-w.done:
			return
		}
	}
}

// schedule (re)arms the reload timer so that onChange runs once the file
// has been quiet for w.delay.
func (w *ConfigWatcher) schedule() {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	if w.isClosed {
		return
	}
	if w.pending != nil {
		w.pending.Stop()
	}
	w.pending = time.AfterFunc(w.delay, w.fire)
}

func (w *ConfigWatcher) fire() {
	w.mutex.Lock()
	closed := w.isClosed
	w.mutex.Unlock()
	if !closed {
		w.onChange(w.path)
	}
}
