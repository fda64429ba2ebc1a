package config

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const defaultDebounce = 100 * time.Millisecond

// FactionWatcher reloads a FactionTable when its file changes.
// Only future spawns see the new assignments.
type FactionWatcher struct {
	watcher  *fsnotify.Watcher
	path     string
	table    *FactionTable
	debounce time.Duration

	// Reloaded receives the entry count after each successful reload.
	Reloaded chan int

	closeOnce sync.Once
}

// NewFactionWatcher watches the directory holding path.
// Editors replace files on save, so the directory is watched, not the file.
func NewFactionWatcher(path string, table *FactionTable) (*FactionWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(path), err)
	}
	return &FactionWatcher{
		watcher:  w,
		path:     filepath.Clean(path),
		table:    table,
		debounce: defaultDebounce,
		Reloaded: make(chan int, 4),
	}, nil
}

// Run processes events until ctx is done.
// Bursts of events are coalesced: the table reloads once the file has been
// quiet for the debounce interval.
func (w *FactionWatcher) Run(ctx context.Context) error {
	defer w.Close()

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			timer.Reset(w.debounce)
		case <-timer.C:
			w.reload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("faction watcher error", "path", w.path, "error", err)
		}
	}
}

func (w *FactionWatcher) reload() {
	entries, err := LoadFactionEntries(w.path)
	if err != nil {
		// keep the previous table
		slog.Error("reloading faction table", "path", w.path, "error", err)
		return
	}
	w.table.Replace(entries)
	slog.Info("faction table reloaded", "path", w.path, "entries", len(entries))

	select {
	case w.Reloaded <- len(entries):
	default:
	}
}

// Close stops watching. Safe to call multiple times.
func (w *FactionWatcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		err = w.watcher.Close()
	})
	return err
}
