package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const reloadDebounce = 250 * time.Millisecond

// WatchPolicy reloads the policy file whenever it changes and hands every
// valid result to apply. An invalid file is logged and the previous policy
// stays in effect. It blocks until ctx is done.
//
// The directory is watched rather than the file so that editors which save by
// rename are picked up.
func WatchPolicy(ctx context.Context, path string, apply func(*Policy), logger *zap.Logger) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating policy watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(path), err)
	}

	target := filepath.Clean(path)

	// Stopped until the first relevant event arrives.
	timer := time.NewTimer(time.Hour)
	timer.Stop()

	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}

			if filepath.Clean(ev.Name) != target {
				continue
			}

			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}

			timer.Reset(reloadDebounce)

		case <-timer.C:
			policy, err := LoadPolicy(path)
			if err != nil {
				logger.Error("policy reload failed, keeping previous policy", zap.String("path", path), zap.Error(err))
				continue
			}

			apply(policy)
			logger.Info("policy reloaded", zap.String("path", path))

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}

			logger.Warn("policy watcher error", zap.Error(err))
		}
	}
}
