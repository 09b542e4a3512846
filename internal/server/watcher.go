package server

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher monitors the site folder so the operator sees each manual edit
// picked up while previewing. Editors fire several writes per save, so
// events are debounced per file.
type Watcher struct {
	fw      *fsnotify.Watcher
	done    chan struct{}
	stopped bool
	mu      sync.Mutex
}

// NewWatcher creates a new site folder watcher.
func NewWatcher() (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		fw:   fw,
		done: make(chan struct{}),
	}, nil
}

const debounceInterval = 50 * time.Millisecond

// Watch starts monitoring siteDir recursively. onChange is called with the
// absolute path of each changed file; it may be invoked from any goroutine.
func (w *Watcher) Watch(siteDir string, onChange func(path string)) error {
	absPath, err := filepath.Abs(siteDir)
	if err != nil {
		return err
	}

	err = filepath.Walk(absPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // skip inaccessible paths
		}
		if info.IsDir() {
			if strings.HasPrefix(info.Name(), ".") && path != absPath {
				return filepath.SkipDir
			}
			return w.fw.Add(path)
		}
		return nil
	})
	if err != nil {
		return err
	}

	debounce := make(map[string]time.Time)
	var dmu sync.Mutex

	go func() {
		for {
			select {
			case <-w.done:
				return
			case event, ok := <-w.fw.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
					continue
				}
				if shouldIgnore(event.Name) {
					continue
				}
				// New directories need watching too.
				if event.Op&fsnotify.Create != 0 {
					if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
						_ = w.fw.Add(event.Name)
						continue
					}
				}

				dmu.Lock()
				last, seen := debounce[event.Name]
				now := time.Now()
				if seen && now.Sub(last) < debounceInterval {
					dmu.Unlock()
					continue
				}
				debounce[event.Name] = now
				dmu.Unlock()

				onChange(event.Name)
			case _, ok := <-w.fw.Errors:
				if !ok {
					return
				}
			}
		}
	}()

	return nil
}

// Stop ends monitoring and releases resources. Safe to call multiple times.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return nil
	}
	w.stopped = true
	close(w.done)
	return w.fw.Close()
}

func shouldIgnore(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") {
		return true
	}
	// Atomic replaces go through temp files; reporting those is noise.
	return strings.Contains(base, ".tmp-")
}
