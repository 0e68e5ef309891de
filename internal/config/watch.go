// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"github.com/fsnotify/fsnotify"

	"github.com/ezeoli88/agentic-conversation-engine/internal/obslog"
)

// Watcher reloads the global Config whenever config.json changes on
// disk, so an operator editing external-server entries by hand doesn't
// need to restart the engine.
type Watcher struct {
	fsw *fsnotify.Watcher
	log *obslog.Logger
}

// WatchGlobal starts watching config.json's directory for writes and
// reloads the global Config on every change. Callers must call Close
// when done.
func WatchGlobal(log *obslog.Logger) (*Watcher, error) {
	if log == nil {
		log = obslog.Default()
	}
	dir, err := ConfigDir()
	if err != nil {
		return nil, err
	}
	if err := EnsureConfigDir(); err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{fsw: fsw, log: log}
	go w.run()
	return w, nil
}

func (w *Watcher) run() {
	path, err := ConfigPath()
	if err != nil {
		return
	}
	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if event.Name != path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if _, err := ReloadGlobal(); err != nil {
				w.log.Warn("CONFIG_RELOAD_FAILED", "error", err)
				continue
			}
			w.log.Info("CONFIG_RELOADED", "path", path)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn("CONFIG_WATCH_ERROR", "error", err)
		}
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}
