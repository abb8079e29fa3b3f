package script

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long a script must be quiet before a change is
// reported.
const DefaultDebounce = 100 * time.Millisecond

// Watcher reports changes to a single script file. Bursts of writes within
// the debounce delay are coalesced into one event.
//
// The parent directory is watched rather than the file so that editors
// which save by renaming a temporary file over the original are seen.
type Watcher struct {
	mu sync.Mutex

	watcher *fsnotify.Watcher
	path    string
	delay   time.Duration

	events chan string
	errors chan error

	closed   bool
	closeCh  chan struct{}
	closedWg sync.WaitGroup
}

// NewWatcher starts watching path. The file must exist.
func NewWatcher(path string, delay time.Duration) (*Watcher, error) {
	if delay <= 0 {
		delay = DefaultDebounce
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	info, err := os.Stat(absPath)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(absPath)); err != nil {
		fw.Close()
		return nil, err
	}

	w := &Watcher{
		watcher: fw,
		path:    absPath,
		delay:   delay,
		events:  make(chan string, 1),
		errors:  make(chan error, 10),
		closeCh: make(chan struct{}),
	}

	w.closedWg.Add(1)
	go w.processLoop()

	return w, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Events delivers the script path after each settled change.
func (w *Watcher) Events() <-chan string {
	return w.events
}

// Errors returns the error channel.
func (w *Watcher) Errors() <-chan error {
	return w.errors
}

// Close stops the watcher. It is safe to call more than once.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.closeCh)
	w.mu.Unlock()

	w.closedWg.Wait()

	close(w.events)
	close(w.errors)

	return w.watcher.Close()
}

// processLoop filters fsnotify events for the script and debounces them.
func (w *Watcher) processLoop() {
	defer w.closedWg.Done()

	timer := time.NewTimer(w.delay)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-w.closeCh:
			return

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if w.relevant(ev) {
				timer.Reset(w.delay)
			}

		case <-timer.C:
			w.sendEvent()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.sendError(err)
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != w.path {
		return false
	}
	return ev.Op.Has(fsnotify.Write) || ev.Op.Has(fsnotify.Create)
}

// sendEvent drops the event when one is already pending; the receiver
// rereads the file anyway.
func (w *Watcher) sendEvent() {
	select {
	case w.events <- w.path:
	default:
	}
}

func (w *Watcher) sendError(err error) {
	select {
	case w.errors <- err:
	default:
	}
}
