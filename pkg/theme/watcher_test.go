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
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWatcherValidation(t *testing.T) {
	_, err := NewWatcher(nil, NewFileBackend("x"), WatcherConfig{})
	assert.Error(t, err)
}

func TestWatcherReloadsExternalSave(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	path := filepath.Join(t.TempDir(), "theme.yaml")
	backend := NewFileBackend(path)
	store, err := NewStore(ctx, backend, StoreOptions{})
	require.NoError(t, err)

	var changes atomic.Int32
	store.Subscribe(func(Preference) { changes.Add(1) })

	w, err := NewWatcher(store, backend, WatcherConfig{DebounceMs: 20})
	require.NoError(t, err)
	require.NoError(t, w.Start(ctx))
	defer func() { _ = w.Stop() }()

	// Another process writes the same file.
	other := NewFileBackend(path)
	require.NoError(t, other.Save(ctx, Preference{Mode: ModeDark, Revision: "external", UpdatedAt: time.Now()}))

	require.Eventually(t, func() bool { return store.Mode() == ModeDark }, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, "external", store.Preference().Revision)
	assert.GreaterOrEqual(t, changes.Load(), int32(1))
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dir := t.TempDir()
	backend := NewFileBackend(filepath.Join(dir, "theme.yaml"))
	store, err := NewStore(ctx, backend, StoreOptions{})
	require.NoError(t, err)

	w, err := NewWatcher(store, backend, WatcherConfig{DebounceMs: 10})
	require.NoError(t, err)
	require.NoError(t, w.Start(ctx))
	defer func() { _ = w.Stop() }()

	require.NoError(t, NewFileBackend(filepath.Join(dir, "other.yaml")).Save(ctx, Preference{Mode: ModeComfort}))
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, ModeLight, store.Mode())
}

func TestWatcherStopIdempotent(t *testing.T) {
	backend := NewFileBackend(filepath.Join(t.TempDir(), "theme.yaml"))
	store, err := NewStore(context.Background(), backend, StoreOptions{})
	require.NoError(t, err)

	w, err := NewWatcher(store, backend, WatcherConfig{})
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))
	require.NoError(t, w.Stop())
	assert.NoError(t, w.Stop())
}
