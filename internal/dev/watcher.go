package dev

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// WatcherConfig configures the file watcher.
type WatcherConfig struct {
	// Paths are the files and directories to watch.
	Paths []string

	// Ignore contains base-name glob patterns to skip.
	Ignore []string

	// Interval is the polling interval.
	Interval time.Duration
}

// DefaultIgnore contains default patterns to ignore.
var DefaultIgnore = []string{
	".git",
	"*.tmp",
	"*.swp",
	"*~",
}

// Watcher monitors files for changes by polling their modification times.
type Watcher struct {
	config   WatcherConfig
	onChange func(changed []string)

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	stamps  map[string]time.Time
}

// NewWatcher creates a new file watcher.
func NewWatcher(config WatcherConfig) *Watcher {
	if config.Interval == 0 {
		config.Interval = 250 * time.Millisecond
	}
	if config.Ignore == nil {
		config.Ignore = DefaultIgnore
	}
	return &Watcher{config: config}
}

// OnChange sets the callback for changes. It receives the changed paths,
// sorted, once per polling round that found any.
func (w *Watcher) OnChange(fn func(changed []string)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = fn
}

// Start watches until ctx is done or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.stopCh = make(chan struct{})
	stopCh := w.stopCh
	w.stamps = w.scan()
	w.mu.Unlock()

	ticker := time.NewTicker(w.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.Stop()
			return ctx.Err()
		case <-stopCh:
			return nil
		case <-ticker.C:
			w.check()
		}
	}
}

// Stop stops the watcher.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		close(w.stopCh)
		w.running = false
	}
}

// IsRunning returns whether the watcher is running.
func (w *Watcher) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

func (w *Watcher) check() {
	stamps := w.scan()

	w.mu.Lock()
	var changed []string
	for p, t := range stamps {
		if old, ok := w.stamps[p]; !ok || !t.Equal(old) {
			changed = append(changed, p)
		}
	}
	for p := range w.stamps {
		if _, ok := stamps[p]; !ok {
			changed = append(changed, p)
		}
	}
	w.stamps = stamps
	callback := w.onChange
	w.mu.Unlock()

	if len(changed) > 0 && callback != nil {
		sort.Strings(changed)
		callback(changed)
	}
}

// scan returns the modification time of every watched file.
func (w *Watcher) scan() map[string]time.Time {
	stamps := make(map[string]time.Time)
	for _, root := range w.config.Paths {
		filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if w.shouldIgnore(p) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() {
				return nil
			}
			info, err := os.Stat(p)
			if err == nil {
				stamps[p] = info.ModTime()
			}
			return nil
		})
	}
	return stamps
}

// shouldIgnore checks the base name of p against the ignore patterns.
func (w *Watcher) shouldIgnore(p string) bool {
	name := filepath.Base(p)
	for _, pattern := range w.config.Ignore {
		if pattern == name {
			return true
		}
		if matched, _ := filepath.Match(pattern, name); matched {
			return true
		}
	}
	return false
}
