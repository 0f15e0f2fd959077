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
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// memoryBackend is an in-memory Backend with injectable failures.
type memoryBackend struct {
	mu      sync.Mutex
	pref    Preference
	found   bool
	loadErr error
	saveErr error
	saves   int
	history []string // saved revisions in order
	closed  bool
}

func (b *memoryBackend) Load(context.Context) (Preference, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.pref, b.found, b.loadErr
}

func (b *memoryBackend) Save(_ context.Context, pref Preference) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.saveErr != nil {
		return b.saveErr
	}
	b.pref, b.found = pref, true
	b.saves++
	b.history = append(b.history, pref.Revision)
	return nil
}

func (b *memoryBackend) Close() error {
	b.closed = true
	return nil
}

func fixedClock() func() time.Time {
	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time { return ts }
}

func TestNewStoreRequiresBackend(t *testing.T) {
	_, err := NewStore(context.Background(), nil, StoreOptions{})
	require.Error(t, err)
}

func TestNewStoreDefaults(t *testing.T) {
	s, err := NewStore(context.Background(), &memoryBackend{}, StoreOptions{})
	require.NoError(t, err)
	assert.Equal(t, ModeLight, s.Mode())
	assert.Empty(t, s.Preference().Revision)

	s, err = NewStore(context.Background(), &memoryBackend{}, StoreOptions{DefaultMode: ModeDark})
	require.NoError(t, err)
	assert.Equal(t, ModeDark, s.Mode())
}

func TestNewStoreLoadsPersisted(t *testing.T) {
	b := &memoryBackend{pref: Preference{Mode: ModeComfort, Revision: "r1"}, found: true}
	s, err := NewStore(context.Background(), b, StoreOptions{})
	require.NoError(t, err)
	assert.Equal(t, ModeComfort, s.Mode())
	assert.Equal(t, "r1", s.Preference().Revision)
}

func TestNewStoreLoadFailureFallsBack(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	b := &memoryBackend{loadErr: errors.New("disk on fire")}

	s, err := NewStore(context.Background(), b, StoreOptions{DefaultMode: ModeDark, Logger: zap.New(core)})
	require.NoError(t, err)
	assert.Equal(t, ModeDark, s.Mode())
	require.Equal(t, 1, logs.Len())
	assert.Contains(t, logs.All()[0].Message, "Failed to load theme preference")
}

func TestSetModePersists(t *testing.T) {
	b := &memoryBackend{}
	s, err := NewStore(context.Background(), b, StoreOptions{Now: fixedClock()})
	require.NoError(t, err)

	require.NoError(t, s.SetMode(context.Background(), ModeDark))
	assert.Equal(t, ModeDark, s.Mode())
	assert.Equal(t, ModeDark, b.pref.Mode)
	assert.NotEmpty(t, b.pref.Revision)
	assert.Equal(t, fixedClock()(), b.pref.UpdatedAt)
	assert.Equal(t, b.pref, s.Preference())

	// Same mode again does not write.
	require.NoError(t, s.SetMode(context.Background(), ModeDark))
	assert.Equal(t, 1, b.saves)
}

func TestSetModeDefaultIsPersistedOnFirstSet(t *testing.T) {
	b := &memoryBackend{}
	s, err := NewStore(context.Background(), b, StoreOptions{})
	require.NoError(t, err)

	require.NoError(t, s.SetMode(context.Background(), ModeLight))
	assert.Equal(t, 1, b.saves)
	assert.True(t, b.found)
}

func TestSetModeSaveFailureKeepsState(t *testing.T) {
	b := &memoryBackend{saveErr: errors.New("read-only")}
	s, err := NewStore(context.Background(), b, StoreOptions{})
	require.NoError(t, err)

	var notified bool
	s.Subscribe(func(Preference) { notified = true })

	err = s.SetMode(context.Background(), ModeDark)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read-only")
	assert.Equal(t, ModeLight, s.Mode())
	assert.False(t, notified)
}

func TestSetModeRejectsInvalid(t *testing.T) {
	s, err := NewStore(context.Background(), &memoryBackend{}, StoreOptions{})
	require.NoError(t, err)
	assert.ErrorIs(t, s.SetMode(context.Background(), Mode(9)), ErrUnknownMode)
}

func TestToggleCycles(t *testing.T) {
	s, err := NewStore(context.Background(), &memoryBackend{}, StoreOptions{})
	require.NoError(t, err)

	var seen []Mode
	for range 4 {
		m, err := s.Toggle(context.Background())
		require.NoError(t, err)
		seen = append(seen, m)
	}
	assert.Equal(t, []Mode{ModeDark, ModeComfort, ModeLight, ModeDark}, seen)
}

func TestToggleFailureReturnsCurrent(t *testing.T) {
	s, err := NewStore(context.Background(), &memoryBackend{saveErr: errors.New("nope")}, StoreOptions{})
	require.NoError(t, err)

	m, err := s.Toggle(context.Background())
	require.Error(t, err)
	assert.Equal(t, ModeLight, m)
}

func TestSubscribeAndCancel(t *testing.T) {
	s, err := NewStore(context.Background(), &memoryBackend{}, StoreOptions{})
	require.NoError(t, err)

	var got []Mode
	cancel := s.Subscribe(func(p Preference) { got = append(got, p.Mode) })

	require.NoError(t, s.SetMode(context.Background(), ModeDark))
	cancel()
	cancel()
	require.NoError(t, s.SetMode(context.Background(), ModeComfort))

	assert.Equal(t, []Mode{ModeDark}, got)
}

func TestReloadAdoptsExternalChange(t *testing.T) {
	b := &memoryBackend{}
	s, err := NewStore(context.Background(), b, StoreOptions{})
	require.NoError(t, err)

	var got []Preference
	s.Subscribe(func(p Preference) { got = append(got, p) })

	// Nothing persisted: no change.
	require.NoError(t, s.Reload(context.Background()))
	assert.Empty(t, got)

	b.mu.Lock()
	b.pref, b.found = Preference{Mode: ModeComfort, Revision: "external"}, true
	b.mu.Unlock()

	require.NoError(t, s.Reload(context.Background()))
	assert.Equal(t, ModeComfort, s.Mode())
	require.Len(t, got, 1)
	assert.Equal(t, "external", got[0].Revision)

	// Same revision again is ignored.
	require.NoError(t, s.Reload(context.Background()))
	assert.Len(t, got, 1)
	assert.Equal(t, 0, b.saves)
}

func TestReloadError(t *testing.T) {
	b := &memoryBackend{}
	s, err := NewStore(context.Background(), b, StoreOptions{DefaultMode: ModeDark})
	require.NoError(t, err)

	b.loadErr = errors.New("corrupt")
	require.Error(t, s.Reload(context.Background()))
	assert.Equal(t, ModeDark, s.Mode())
}

func TestStoreConcurrentAccess(t *testing.T) {
	s, err := NewStore(context.Background(), &memoryBackend{}, StoreOptions{})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = s.SetMode(context.Background(), Modes[i%len(Modes)])
			_ = s.Mode()
		}(i)
	}
	wg.Wait()
	assert.True(t, s.Mode().Valid())
}

func TestSubscribersSeeSaveOrder(t *testing.T) {
	b := &memoryBackend{}
	s, err := NewStore(context.Background(), b, StoreOptions{})
	require.NoError(t, err)

	var mu sync.Mutex
	var seen []string
	s.Subscribe(func(p Preference) {
		mu.Lock()
		seen = append(seen, p.Revision)
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := range 10 {
				if (i+j)%3 == 0 {
					_, _ = s.Toggle(context.Background())
					continue
				}
				_ = s.SetMode(context.Background(), Modes[(i+j)%len(Modes)])
			}
		}(i)
	}
	wg.Wait()

	b.mu.Lock()
	defer b.mu.Unlock()
	mu.Lock()
	defer mu.Unlock()
	require.NotEmpty(t, seen)
	assert.Equal(t, b.history, seen)
	assert.Equal(t, b.pref, s.Preference())
}

func TestStoreClose(t *testing.T) {
	b := &memoryBackend{}
	s, err := NewStore(context.Background(), b, StoreOptions{})
	require.NoError(t, err)
	require.NoError(t, s.Close())
	assert.True(t, b.closed)
}
