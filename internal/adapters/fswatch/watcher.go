// Package fswatch watches a drop directory for new dataset files using
// github.com/fsnotify/fsnotify. Files are debounced (exports copy in over
// many write events) and reported once their size stops changing.
package fswatch

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Extensions the importer can handle.
var watchExts = map[string]bool{
	".csv":  true,
	".tsv":  true,
	".xlsx": true,
	".xlsm": true,
}

const (
	debounceInterval = 500 * time.Millisecond
	settleInterval   = 250 * time.Millisecond
	settleAttempts   = 20
)

// Watcher reports importable files dropped into a directory.
type Watcher struct {
	fw   *fsnotify.Watcher
	done chan struct{}
	mu   sync.Mutex
	seen map[string]time.Time
}

// NewWatcher creates a watcher; Watch starts it.
func NewWatcher() (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		fw:   fw,
		done: make(chan struct{}),
		seen: make(map[string]time.Time),
	}, nil
}

// Watch monitors dir (non-recursive) and calls onDrop with the absolute path
// of each settled, importable file. Existing files are not reported; only
// new arrivals trigger the callback.
func (w *Watcher) Watch(dir string, onDrop func(path string)) error {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return err
	}
	if err := w.fw.Add(abs); err != nil {
		return err
	}

	go func() {
		for {
			select {
			case event, ok := <-w.fw.Events:
				if !ok {
					return
				}
				if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
					continue
				}
				path := event.Name
				if !watchExts[strings.ToLower(filepath.Ext(path))] {
					continue
				}
				if strings.HasPrefix(filepath.Base(path), ".") {
					continue
				}
				if !w.shouldReport(path) {
					continue
				}
				go func(path string) {
					if waitSettled(path) {
						onDrop(path)
					}
				}(path)

			case _, ok := <-w.fw.Errors:
				if !ok {
					return
				}

			case <-w.done:
				return
			}
		}
	}()
	return nil
}

// shouldReport debounces per path.
func (w *Watcher) shouldReport(path string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	now := time.Now()
	if last, ok := w.seen[path]; ok && now.Sub(last) < debounceInterval {
		return false
	}
	w.seen[path] = now
	return true
}

// waitSettled polls until the file size is stable across two checks. A file
// still being copied keeps growing; report it only when writing stops.
func waitSettled(path string) bool {
	var lastSize int64 = -1
	for i := 0; i < settleAttempts; i++ {
		info, err := os.Stat(path)
		if err != nil {
			return false
		}
		if info.Size() == lastSize && info.Size() > 0 {
			return true
		}
		lastSize = info.Size()
		time.Sleep(settleInterval)
	}
	return false
}

// Stop terminates the event loop and releases the OS watch.
func (w *Watcher) Stop() error {
	close(w.done)
	return w.fw.Close()
}
