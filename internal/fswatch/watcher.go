// Package fswatch watches a single file for changes, debouncing the
// rapid-fire write events editors tend to emit for one logical save.
// Grounded directly on the teacher's internal/track/watcher.go, which
// watches a tasks.md file the same way; generalized here from "a tasks
// file" to any file the CLI's watch command points it at.
package fswatch

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// defaultDebounce is the default quiet period required after the last
// write event before a change notification fires.
const defaultDebounce = 150 * time.Millisecond

// Watcher monitors a file for changes using fsnotify with debouncing.
// fsnotify watches directories, not individual files (some editors
// replace a file via rename-into-place rather than writing in place),
// so Watcher watches the file's parent directory and filters events
// down to the one path it cares about.
type Watcher struct {
	watcher  *fsnotify.Watcher
	filePath string
	events   chan struct{}
	errors   chan error
	done     chan struct{}
	debounce time.Duration
	mu       sync.Mutex
	closed   bool
}

// New creates a Watcher for filePath using the default debounce. The
// file must exist at creation time.
func New(filePath string) (*Watcher, error) {
	return NewWithDebounce(filePath, defaultDebounce)
}

// NewWithDebounce creates a Watcher for filePath with a custom debounce
// duration. The file must exist at creation time.
func NewWithDebounce(filePath string, debounce time.Duration) (*Watcher, error) {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(absPath); err != nil {
		return nil, err
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := fsWatcher.Add(filepath.Dir(absPath)); err != nil {
		_ = fsWatcher.Close()
		return nil, err
	}

	w := &Watcher{
		watcher:  fsWatcher,
		filePath: absPath,
		events:   make(chan struct{}, 1),
		errors:   make(chan error, 1),
		done:     make(chan struct{}),
		debounce: debounce,
	}
	go w.loop()
	return w, nil
}

// Events returns a channel that receives a notification each time the
// watched file settles after a burst of writes. Buffered with capacity
// 1: a slow consumer sees only the most recent change, never a backlog.
func (w *Watcher) Events() <-chan struct{} { return w.events }

// Errors returns a channel receiving errors from the underlying
// fsnotify watcher, also buffered with capacity 1.
func (w *Watcher) Errors() <-chan error { return w.errors }

// Close stops the watcher and releases its resources. Safe to call more
// than once.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	w.mu.Unlock()

	close(w.done)
	return w.watcher.Close()
}

func (w *Watcher) loop() {
	var timer *time.Timer
	var timerChan <-chan time.Time

	for {
		select {
		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			timer, timerChan = w.handleEvent(event, timer, timerChan)

		case <-timerChan:
			w.sendEvent()
			timer = nil
			timerChan = nil

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.sendError(err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event, timer *time.Timer, timerChan <-chan time.Time) (*time.Timer, <-chan time.Time) {
	if !w.isWatchedFile(event.Name) {
		return timer, timerChan
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return timer, timerChan
	}

	if timer == nil {
		timer = time.NewTimer(w.debounce)
		return timer, timer.C
	}
	w.resetTimer(timer)
	return timer, timerChan
}

func (w *Watcher) resetTimer(timer *time.Timer) {
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
	timer.Reset(w.debounce)
}

func (w *Watcher) isWatchedFile(eventPath string) bool {
	absEventPath, err := filepath.Abs(eventPath)
	if err != nil {
		return false
	}
	return absEventPath == w.filePath
}

func (w *Watcher) sendEvent() {
	select {
	case w.events <- struct{}{}:
	default:
	}
}

func (w *Watcher) sendError(err error) {
	select {
	case w.errors <- err:
	default:
	}
}
