// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package mockbackend

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// reloadDebounce coalesces the burst of events an editor save produces.
const reloadDebounce = 200 * time.Millisecond

// Watcher reloads the fixture store when its file changes.
type Watcher struct {
	store    *FixtureStore
	watcher  *fsnotify.Watcher
	target   string
	debounce time.Duration
	logger   *zap.Logger

	// reloaded receives the result of each reload; tests read it.
	reloaded chan error
}

// NewWatcher watches the directory of the store's file, since editors often
// replace files by rename.
func NewWatcher(store *FixtureStore, logger *zap.Logger) (*Watcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	target, err := filepath.Abs(store.Path())
	if err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(target)); err != nil {
		fw.Close()
		return nil, err
	}
	return &Watcher{
		store:    store,
		watcher:  fw,
		target:   target,
		debounce: reloadDebounce,
		logger:   logger,
		reloaded: make(chan error, 1),
	}, nil
}

// Run processes events until ctx is cancelled or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) {
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			err := w.store.Reload()
			if err != nil {
				w.logger.Warn("fixture reload failed", zap.Error(err))
			} else {
				w.logger.Info("fixtures reloaded from disk", zap.Int("rules", w.store.Len()))
			}
			select {
			case w.reloaded <- err:
			default:
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("fixture watch error", zap.Error(err))
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
