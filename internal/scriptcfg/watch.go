package scriptcfg

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/leapstack-labs/leapedit/internal/blob"
	"github.com/leapstack-labs/leapedit/internal/config"
)

// reloadDebounce coalesces the burst of events editors emit on save.
var reloadDebounce = 100 * time.Millisecond

// Watch reloads the config whenever the script is written or replaced and
// passes the result to onReload. It blocks until ctx is done. The script's
// directory must exist.
func Watch(ctx context.Context, flags config.Flags, store *blob.Store, logger *slog.Logger, onReload func(*Config)) error {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	script := filepath.Clean(flags.ScriptPath())
	// Watch the directory; editors often replace the file by rename.
	dir := filepath.Dir(script)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	logger.Debug("watching config script", "script", script)

	var reload <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != script {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			reload = time.After(reloadDebounce)

		case <-reload:
			reload = nil
			cfg, err := Load(flags, store, logger)
			if err != nil {
				logger.Error("reloading config", "error", err)
				continue
			}
			logger.Info("config reloaded", "script", script, "source", string(cfg.Source()))
			onReload(cfg)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "error", err)
		}
	}
}
