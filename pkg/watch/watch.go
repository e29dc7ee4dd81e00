// Package watch re-runs metadata extraction when source files change. Rapid
// bursts of file events collapse into one rebuild through a debounce window.
package watch

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/mde-pach/showkit/pkg/parser"
)

// Options configures the watcher.
type Options struct {
	// DebounceMs is the quiet period after the last event before a rebuild
	// fires. Zero means the 200ms default.
	DebounceMs int
	// IgnoreBasenames are extra basename patterns to skip, matched with
	// filepath.Match.
	IgnoreBasenames []string
}

// DefaultOptions returns the standard watch configuration.
func DefaultOptions() Options {
	return Options{DebounceMs: 200}
}

// RebuildFunc runs one full extraction pass. Invoked from the watcher's
// event goroutine after the debounce window closes.
type RebuildFunc func() error

// Watcher watches a project tree and triggers rebuilds on source changes.
type Watcher struct {
	watcher *fsnotify.Watcher
	rebuild RebuildFunc
	logger  *slog.Logger
	options Options

	debounceMu sync.Mutex
	debounce   *time.Timer
	pending    int

	mu       sync.Mutex
	stopChan chan struct{}
	stopped  bool
}

// New creates a watcher that calls rebuild after changes settle.
func New(rebuild RebuildFunc, options Options, logger *slog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}
	if options.DebounceMs == 0 {
		options.DebounceMs = 200
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{
		watcher:  fsw,
		rebuild:  rebuild,
		logger:   logger,
		options:  options,
		stopChan: make(chan struct{}),
	}, nil
}

// Start begins watching rootPath and every non-ignored subdirectory, then
// processes events in a background goroutine.
func (w *Watcher) Start(rootPath string) error {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return fmt.Errorf("watcher already stopped")
	}
	w.mu.Unlock()

	err := filepath.Walk(rootPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if !info.IsDir() {
			return nil
		}
		if path != rootPath && w.shouldIgnore(path) {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			w.logger.Warn("failed to watch directory", "path", path, "error", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("setup watches: %w", err)
	}

	w.logger.Info("file watcher started", "root", rootPath)
	go w.eventLoop()
	return nil
}

// Stop stops the watcher. Safe to call multiple times.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return nil
	}
	w.stopped = true
	close(w.stopChan)

	w.debounceMu.Lock()
	if w.debounce != nil {
		w.debounce.Stop()
	}
	w.debounceMu.Unlock()

	err := w.watcher.Close()
	w.logger.Info("file watcher stopped")
	return err
}

func (w *Watcher) eventLoop() {
	for {
		select {
		case <-w.stopChan:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("file watcher error", "error", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	path := event.Name
	if w.shouldIgnore(path) {
		return
	}

	// newly created directories need their own watch
	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			if err := w.watcher.Add(path); err != nil {
				w.logger.Warn("failed to watch new directory", "path", path, "error", err)
			}
			return
		}
	}

	if !parser.IsSourceFile(path) {
		return
	}
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}

	w.logger.Debug("file event", "op", event.Op.String(), "file", path)
	w.scheduleRebuild()
}

// scheduleRebuild resets the shared debounce timer; only the last event of
// a burst triggers the rebuild.
func (w *Watcher) scheduleRebuild() {
	w.debounceMu.Lock()
	defer w.debounceMu.Unlock()

	w.pending++
	if w.debounce != nil {
		w.debounce.Stop()
	}
	w.debounce = time.AfterFunc(
		time.Duration(w.options.DebounceMs)*time.Millisecond,
		w.runRebuild,
	)
}

func (w *Watcher) runRebuild() {
	w.debounceMu.Lock()
	events := w.pending
	w.pending = 0
	w.debounceMu.Unlock()

	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return
	}
	w.mu.Unlock()

	start := time.Now()
	if err := w.rebuild(); err != nil {
		w.logger.Error("rebuild failed", "error", err)
		return
	}
	w.logger.Info("rebuild complete",
		"events", events,
		"elapsed", time.Since(start).Round(time.Millisecond))
}

func (w *Watcher) shouldIgnore(path string) bool {
	base := filepath.Base(path)
	for _, pattern := range w.options.IgnoreBasenames {
		if matched, _ := filepath.Match(pattern, base); matched {
			return true
		}
	}
	switch base {
	case "node_modules", ".git", "dist", "build", "out", "coverage", ".next":
		return true
	}
	return false
}
