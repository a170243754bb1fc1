package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/bep/debounce"
	"github.com/fsnotify/fsnotify"
)

// WatchDebounce is how long the watcher waits for a burst of file events to
// settle before reloading. Editors often write a file in several steps.
var WatchDebounce = 150 * time.Millisecond

// Watch calls onChange with freshly loaded settings each time the file at
// path is written, until ctx is done. The directory is watched rather than
// the file so that editors replacing the file by rename are picked up too.
// onChange runs on its own goroutine.
func Watch(ctx context.Context, path string, onChange func(*Settings, error)) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating settings dir: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating settings watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	debounced := debounce.New(WatchDebounce)
	name := filepath.Base(path)

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Base(event.Name) != name {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				debounced(func() {
					if ctx.Err() != nil {
						return
					}
					onChange(LoadFile(path))
				})
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				slog.Warn("settings watcher error", "error", err)
			}
		}
	}()

	return nil
}
