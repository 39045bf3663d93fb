package config

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the config file whenever it is written or replaced and hands the new
// configuration to onChange. Decode errors are logged and the previous config stays in effect.
// The parent directory is watched so editors that save by rename are still observed.
// Watch returns once the watcher is installed; it stops when ctx is cancelled.
//
// Parameters:
//   - ctx: cancels the watch
//   - path: the config file to follow
//   - logger: destination for reload failures; nil uses slog.Default()
//   - onChange: receives each successfully reloaded config, on the watcher goroutine
//
// Returns:
//   - error: error if the watcher cannot be created
func Watch(ctx context.Context, path string, logger *slog.Logger, onChange func(*Config)) error {
	if logger == nil {
		logger = slog.Default()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve config path %s: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create config watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != abs || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
					continue
				}
				cfg, err := Load(abs)
				if err != nil {
					logger.Warn("config reload failed", "path", abs, "err", err)
					continue
				}
				logger.Info("config reloaded", "path", abs)
				onChange(cfg)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("config watcher error", "err", err)
			}
		}
	}()
	return nil
}
