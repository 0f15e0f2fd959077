// Copyright 2026 Teradata
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package theme

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// WatcherConfig configures a Watcher.
type WatcherConfig struct {
	DebounceMs int         // Debounce delay in milliseconds (default: 200ms)
	Logger     *zap.Logger // Logger for reload events
}

// Watcher reloads a Store when its preference file is edited by another
// process (another CLI invocation, a text editor, a sync tool).
type Watcher struct {
	store   *Store
	path    string
	watcher *fsnotify.Watcher
	config  WatcherConfig
	logger  *zap.Logger

	debounceMu    sync.Mutex
	debounceTimer *time.Timer

	stopCh   chan struct{}
	doneCh   chan struct{}
	stopOnce sync.Once
}

// NewWatcher creates a watcher for the file behind backend.
func NewWatcher(store *Store, backend *FileBackend, config WatcherConfig) (*Watcher, error) {
	if store == nil || backend == nil {
		return nil, fmt.Errorf("theme watcher requires a store and a file backend")
	}
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}
	if config.DebounceMs <= 0 {
		config.DebounceMs = 200
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	return &Watcher{
		store:   store,
		path:    backend.Path(),
		watcher: fw,
		config:  config,
		logger:  config.Logger,
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}, nil
}

// Start watches the preference file's directory until ctx is cancelled or
// Stop is called. The directory is created if missing so that the first
// external save is observed.
func (w *Watcher) Start(ctx context.Context) error {
	dir := filepath.Dir(w.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}
	// Watch the directory, not the file: atomic saves replace the inode.
	if err := w.watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	w.logger.Info("Started theme preference watcher",
		zap.String("path", w.path),
		zap.Int("debounce_ms", w.config.DebounceMs))

	go w.watchLoop(ctx)
	return nil
}

func (w *Watcher) watchLoop(ctx context.Context) {
	defer close(w.doneCh)

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(ctx, event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("Theme watcher error", zap.Error(err))

		case <-w.stopCh:
			return

		case <-ctx.Done():
			return
		}
	}
}

func (w *Watcher) handleEvent(ctx context.Context, event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return
	}
	w.debounce(func() {
		if err := w.store.Reload(ctx); err != nil {
			w.logger.Warn("Theme preference reload failed",
				zap.String("path", w.path),
				zap.Error(err))
		}
	})
}

// debounce delays fn until writes settle.
func (w *Watcher) debounce(fn func()) {
	w.debounceMu.Lock()
	defer w.debounceMu.Unlock()

	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceTimer = time.AfterFunc(time.Duration(w.config.DebounceMs)*time.Millisecond, fn)
}

// Stop ends the watch loop and releases the underlying watcher.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.stopCh)
		w.debounceMu.Lock()
		if w.debounceTimer != nil {
			w.debounceTimer.Stop()
		}
		w.debounceMu.Unlock()
		err = w.watcher.Close()
	})
	return err
}
