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
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Preference is the persisted theme selection.
type Preference struct {
	Mode      Mode
	Revision  string    // unique per saved change
	UpdatedAt time.Time // zero for an unsaved default
}

// Backend persists a Preference.
type Backend interface {
	// Load returns the stored preference. found is false when nothing has
	// been saved yet.
	Load(ctx context.Context) (pref Preference, found bool, err error)
	Save(ctx context.Context, pref Preference) error
	Close() error
}

// StoreOptions configures a Store.
type StoreOptions struct {
	DefaultMode Mode             // used when nothing is persisted (default: light)
	Logger      *zap.Logger      // nil means no logging
	Now         func() time.Time // clock override for tests
}

// Store is the single owner of the theme preference. It loads the persisted
// value at construction and saves on every change. Safe for concurrent use.
//
// Changes are applied one at a time and subscribers are called in the order
// the changes were saved. Subscribers run on the changing goroutine and must
// not call SetMode, Toggle or Reload.
type Store struct {
	backend Backend
	logger  *zap.Logger
	now     func() time.Time

	// writeMu orders save, state update and notify across writers.
	writeMu sync.Mutex

	mu   sync.RWMutex
	pref Preference

	subMu   sync.Mutex
	subs    map[int]func(Preference)
	nextSub int
}

// NewStore creates a store and loads the persisted preference. A backend
// read failure is logged and the default mode is used; the store is still
// returned so the UI keeps working.
func NewStore(ctx context.Context, backend Backend, opts StoreOptions) (*Store, error) {
	if backend == nil {
		return nil, errors.New("theme store requires a backend")
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if !opts.DefaultMode.Valid() {
		opts.DefaultMode = ModeLight
	}

	s := &Store{
		backend: backend,
		logger:  opts.Logger,
		now:     opts.Now,
		pref:    Preference{Mode: opts.DefaultMode},
		subs:    make(map[int]func(Preference)),
	}

	pref, found, err := backend.Load(ctx)
	switch {
	case err != nil:
		s.logger.Warn("Failed to load theme preference, using default",
			zap.String("default_mode", opts.DefaultMode.String()),
			zap.Error(err))
	case found:
		s.pref = pref
		s.logger.Debug("Loaded theme preference",
			zap.String("mode", pref.Mode.String()),
			zap.String("revision", pref.Revision))
	}
	return s, nil
}

// Mode returns the current mode.
func (s *Store) Mode() Mode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pref.Mode
}

// Preference returns the current preference.
func (s *Store) Preference() Preference {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pref
}

// SetMode persists m and notifies subscribers. Setting the mode that is
// already persisted is a no-op. When the save fails the in-memory state is
// left unchanged.
func (s *Store) SetMode(ctx context.Context, m Mode) error {
	if !m.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownMode, int(m))
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.setModeLocked(ctx, m)
}

// setModeLocked requires writeMu.
func (s *Store) setModeLocked(ctx context.Context, m Mode) error {
	prev := s.Preference()
	if prev.Mode == m && prev.Revision != "" {
		return nil
	}
	next := Preference{
		Mode:      m,
		Revision:  uuid.NewString(),
		UpdatedAt: s.now().UTC(),
	}
	if err := s.backend.Save(ctx, next); err != nil {
		return fmt.Errorf("failed to persist theme mode %s: %w", m, err)
	}
	s.mu.Lock()
	s.pref = next
	s.mu.Unlock()

	s.logger.Info("Theme mode changed",
		zap.String("from", prev.Mode.String()),
		zap.String("to", next.Mode.String()),
		zap.String("revision", next.Revision))
	s.notify(next)
	return nil
}

// Toggle advances to the next mode (light, dark, comfort, light, ...).
func (s *Store) Toggle(ctx context.Context) (Mode, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	next := s.Mode().Next()
	if err := s.setModeLocked(ctx, next); err != nil {
		return s.Mode(), err
	}
	return next, nil
}

// Reload re-reads the backend and adopts a preference saved by someone
// else. It does not write back. Subscribers are notified only on change.
func (s *Store) Reload(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	pref, found, err := s.backend.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to reload theme preference: %w", err)
	}
	if !found {
		return nil
	}

	s.mu.Lock()
	if pref.Revision == s.pref.Revision && pref.Mode == s.pref.Mode {
		s.mu.Unlock()
		return nil
	}
	s.pref = pref
	s.mu.Unlock()

	s.logger.Info("Theme preference reloaded",
		zap.String("mode", pref.Mode.String()),
		zap.String("revision", pref.Revision))
	s.notify(pref)
	return nil
}

// Subscribe registers fn to be called after every change. The returned
// function removes the subscription.
func (s *Store) Subscribe(fn func(Preference)) (cancel func()) {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.subs, id)
			s.subMu.Unlock()
		})
	}
}

func (s *Store) notify(pref Preference) {
	s.subMu.Lock()
	fns := make([]func(Preference), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(pref)
	}
}

// Close releases the backend.
func (s *Store) Close() error {
	return s.backend.Close()
}
