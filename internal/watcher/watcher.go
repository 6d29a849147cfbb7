// Package watcher monitors a directory and feeds new files to the
// ingestion pipeline.
package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ghostvault-labs/ghostvault/internal/core/ports/driving"
	"github.com/ghostvault-labs/ghostvault/internal/logger"
)

// DefaultSettleDelay is how long a new file is left alone before
// indexing, so writers can finish.
const DefaultSettleDelay = time.Second

// Config configures the directory watcher.
type Config struct {
	// Dir is the directory to watch. Created if missing.
	Dir string

	// SettleDelay overrides DefaultSettleDelay when positive.
	SettleDelay time.Duration
}

// Watcher scans a directory at startup and indexes files as they
// appear. Files that fail to index are logged and retried on the next
// appearance rather than crashing the watch loop.
type Watcher struct {
	dir      string
	settle   time.Duration
	ingestor driving.Ingestor
}

// New creates a watcher over cfg.Dir feeding ingestor.
func New(cfg Config, ingestor driving.Ingestor) *Watcher {
	settle := cfg.SettleDelay
	if settle <= 0 {
		settle = DefaultSettleDelay
	}
	return &Watcher{
		dir:      cfg.Dir,
		settle:   settle,
		ingestor: ingestor,
	}
}

// Dir returns the watched directory.
func (w *Watcher) Dir() string {
	return w.dir
}

// Run scans existing files, then blocks processing filesystem events
// until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("creating watch directory %s: %w", w.dir, err)
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating filesystem watcher: %w", err)
	}
	defer fsWatcher.Close()

	if err := fsWatcher.Add(w.dir); err != nil {
		return fmt.Errorf("watching %s: %w", w.dir, err)
	}

	logger.Info("watching directory: %s", w.dir)
	w.scanExisting(ctx)
	logger.Info("startup scan complete, waiting for new files")

	for {
		select {
		case <-ctx.Done():
			logger.Info("watcher stopping")
			return nil

		case event, ok := <-fsWatcher.Events:
			if !ok {
				return nil
			}
			path := w.pathToIndex(event)
			if path == "" {
				continue
			}
			// Let the writer finish before reading the file.
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(w.settle):
			}
			w.index(ctx, path)

		case err, ok := <-fsWatcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("watch error: %v", err)
		}
	}
}

// scanExisting indexes files already present in the watched directory.
func (w *Watcher) scanExisting(ctx context.Context) {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		logger.Error("scanning %s: %v", w.dir, err)
		return
	}

	for _, entry := range entries {
		if ctx.Err() != nil {
			return
		}
		if entry.IsDir() || isHidden(entry.Name()) {
			continue
		}
		w.index(ctx, filepath.Join(w.dir, entry.Name()))
	}
}

// pathToIndex returns the file path an event should trigger indexing
// for, or "" when the event is irrelevant. Only file creations and
// moves into the directory count; writes to existing files are
// ignored.
func (w *Watcher) pathToIndex(event fsnotify.Event) string {
	if !event.Has(fsnotify.Create) {
		return ""
	}
	if isHidden(filepath.Base(event.Name)) {
		return ""
	}

	info, err := os.Stat(event.Name)
	if err != nil {
		// Gone already, nothing to index.
		return ""
	}
	if info.IsDir() {
		return ""
	}
	return event.Name
}

// index feeds one file to the ingestor, logging failures.
func (w *Watcher) index(ctx context.Context, path string) {
	if w.ingestor.IsProcessed(path) {
		return
	}

	logger.Info("indexing %s", filepath.Base(path))
	if err := w.ingestor.IndexFile(ctx, path); err != nil {
		logger.Error("indexing %s: %v", filepath.Base(path), err)
		return
	}
	logger.Info("indexed %s", filepath.Base(path))
}

// isHidden reports whether name is a dotfile.
func isHidden(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}
