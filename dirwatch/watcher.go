// Package dirwatch lists a directory as URI strings and signals when its entries change.
package dirwatch

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/storage"
	"github.com/fsnotify/fsnotify"
)

const debounceDelay = 100 * time.Millisecond

// Watcher reports changes to the entries of a single directory.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	dir       string
	events    chan struct{}
	stop      chan struct{}
	stopOnce  sync.Once

	mu       sync.Mutex
	debounce *time.Timer
	closed   bool
}

// New starts watching dir.
func New(dir string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	w := &Watcher{
		fsWatcher: fsw,
		dir:       dir,
		events:    make(chan struct{}, 1),
		stop:      make(chan struct{}),
	}
	go w.run()
	return w, nil
}

func (w *Watcher) run() {
	defer func() {
		w.mu.Lock()
		w.closed = true
		if w.debounce != nil {
			w.debounce.Stop()
		}
		w.mu.Unlock()
		close(w.events)
	}()

	for {
		select {
		case <-w.stop:
			return
		case ev, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if ev.Op == fsnotify.Chmod {
				continue
			}
			w.signal()
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			fyne.LogError("Directory watcher error for "+w.dir, err)
		}
	}
}

// signal coalesces bursts of events into one notification.
func (w *Watcher) signal() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounce != nil {
		w.debounce.Stop()
	}
	w.debounce = time.AfterFunc(debounceDelay, func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		if w.closed {
			return
		}
		select {
		case w.events <- struct{}{}:
		default:
		}
	})
}

// Events signals after the directory changed. It is closed once the watcher stops.
func (w *Watcher) Events() <-chan struct{} {
	return w.events
}

// Dir returns the watched directory.
func (w *Watcher) Dir() string {
	return w.dir
}

// Stop shuts the watcher down. Calling it more than once is safe.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stop)
		w.fsWatcher.Close()
	})
}

// List returns the entries of dir as file URI strings, folders first, each
// group sorted by case-insensitive name. Dot files are skipped unless hidden is set.
func List(dir string, hidden bool) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].IsDir() != entries[j].IsDir() {
			return entries[i].IsDir()
		}
		return strings.ToLower(entries[i].Name()) < strings.ToLower(entries[j].Name())
	})

	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		if !hidden && strings.HasPrefix(e.Name(), ".") {
			continue
		}
		ids = append(ids, storage.NewFileURI(filepath.Join(dir, e.Name())).String())
	}
	return ids, nil
}
