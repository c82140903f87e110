package tray

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const watchDebounce = 250 * time.Millisecond

// watchFiles calls onChange after any of files is written, created, renamed
// or removed. Bursts of events are coalesced into a single call.
func watchFiles(ctx context.Context, logger *zap.Logger, files []string, onChange func()) error {
	fsWatcher, errWatcher := fsnotify.NewWatcher()
	if errWatcher != nil {
		return errors.Wrap(errWatcher, "Failed to create file watcher")
	}

	watched := map[string]bool{}

	for _, file := range files {
		dir := filepath.Dir(file)
		watched[filepath.Clean(file)] = true

		if errMkdir := os.MkdirAll(dir, 0o755); errMkdir != nil {
			_ = fsWatcher.Close()

			return errors.Wrap(errMkdir, "Failed to create watched directory")
		}

		if errAdd := fsWatcher.Add(dir); errAdd != nil {
			_ = fsWatcher.Close()

			return errors.Wrapf(errAdd, "Failed to watch %s", dir)
		}
	}

	go func() {
		defer func() {
			if errClose := fsWatcher.Close(); errClose != nil {
				logger.Error("Failed to close file watcher", zap.Error(errClose))
			}
		}()

		var debounce *time.Timer

		for {
			select {
			case <-ctx.Done():
				if debounce != nil {
					debounce.Stop()
				}

				return
			case event, ok := <-fsWatcher.Events:
				if !ok {
					return
				}

				if !watched[filepath.Clean(event.Name)] {
					continue
				}

				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
					continue
				}

				logger.Debug("Config changed", zap.String("path", event.Name), zap.String("op", event.Op.String()))

				if debounce != nil {
					debounce.Stop()
				}

				debounce = time.AfterFunc(watchDebounce, onChange)
			case errWatch, ok := <-fsWatcher.Errors:
				if !ok {
					return
				}

				logger.Error("File watcher error", zap.Error(errWatch))
			}
		}
	}()

	return nil
}
