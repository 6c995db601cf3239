// Package watcher reports files that appear in a directory so they can be
// organized as they arrive.
package watcher

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WatchConfig contains watcher settings.
type WatchConfig struct {
	Debounce       time.Duration // Quiet period before a file is reported (default: 2s)
	IgnorePatterns []string      // Glob patterns to ignore (e.g., "*.tmp", "*.part")
}

// DefaultWatchConfig returns a WatchConfig with sensible defaults.
func DefaultWatchConfig() *WatchConfig {
	return &WatchConfig{
		Debounce:       2 * time.Second,
		IgnorePatterns: DefaultIgnorePatterns(),
	}
}

// Watcher monitors one directory, non-recursively, and delivers settled
// regular files on Paths. Delivery is serialized through a channel so the
// consumer handles one file at a time.
type Watcher struct {
	config    *WatchConfig
	log       *slog.Logger
	fsWatcher *fsnotify.Watcher
	filter    *FileFilter
	debouncer *Debouncer
	dir       string

	paths    chan string
	done     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// New creates a Watcher. A nil config uses DefaultWatchConfig.
func New(config *WatchConfig, log *slog.Logger) *Watcher {
	if config == nil {
		config = DefaultWatchConfig()
	}
	if config.Debounce <= 0 {
		config.Debounce = DefaultWatchConfig().Debounce
	}
	w := &Watcher{
		config: config,
		log:    log,
		filter: NewFileFilter(config.IgnorePatterns),
		paths:  make(chan string, 64),
		done:   make(chan struct{}),
	}
	w.debouncer = NewDebouncer(config.Debounce, w.deliver)
	return w
}

// Start begins watching dir. It returns once the watch is registered.
func (w *Watcher) Start(dir string) error {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return err
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(absDir); err != nil {
		fsw.Close()
		return fmt.Errorf("watch %s: %w", absDir, err)
	}

	w.fsWatcher = fsw
	w.dir = absDir

	w.wg.Add(1)
	go w.processEvents()
	return nil
}

// Paths delivers settled files, one path per arrival.
func (w *Watcher) Paths() <-chan string {
	return w.paths
}

// Stop shuts the watcher down. Pending, unsettled files are dropped.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		w.debouncer.CancelAll()
		w.wg.Wait()
		if w.fsWatcher != nil {
			w.fsWatcher.Close()
		}
	})
}

func (w *Watcher) processEvents() {
	defer w.wg.Done()

	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if filepath.Dir(event.Name) != w.dir || w.filter.ShouldIgnore(event.Name) {
				continue
			}
			w.debouncer.Add(event.Name)
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.log.Error(fmt.Sprintf("Watch error on %s: %v", w.dir, err))
		}
	}
}

// deliver runs on a debounce timer goroutine. Directories and files that are
// already gone are dropped here.
func (w *Watcher) deliver(path string) {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return
	}
	select {
	case w.paths <- path:
	case <-w.done:
	}
}
