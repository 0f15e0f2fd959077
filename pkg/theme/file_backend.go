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
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// FileBackend stores the preference in a small YAML document:
//
//	mode: dark
//	revision: 6f1c...
//	updated_at: 2026-01-02T15:04:05Z
type FileBackend struct {
	path string
}

type preferenceDoc struct {
	Mode      string    `yaml:"mode"`
	Revision  string    `yaml:"revision,omitempty"`
	UpdatedAt time.Time `yaml:"updated_at,omitempty"`
}

// NewFileBackend returns a backend for path. The file is created on first save.
func NewFileBackend(path string) *FileBackend {
	return &FileBackend{path: filepath.Clean(path)}
}

// Path returns the backing file path.
func (b *FileBackend) Path() string { return b.path }

// Load implements Backend. A missing or empty file is reported as not found.
func (b *FileBackend) Load(ctx context.Context) (Preference, bool, error) {
	if err := ctx.Err(); err != nil {
		return Preference{}, false, err
	}

	data, err := os.ReadFile(b.path)
	if errors.Is(err, os.ErrNotExist) {
		return Preference{}, false, nil
	}
	if err != nil {
		return Preference{}, false, fmt.Errorf("failed to read %s: %w", b.path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return Preference{}, false, nil
	}

	var doc preferenceDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Preference{}, false, fmt.Errorf("failed to parse %s: %w", b.path, err)
	}
	mode, err := ParseMode(doc.Mode)
	if err != nil {
		return Preference{}, false, fmt.Errorf("invalid preference in %s: %w", b.path, err)
	}

	return Preference{Mode: mode, Revision: doc.Revision, UpdatedAt: doc.UpdatedAt}, true, nil
}

// Save implements Backend. The file is replaced atomically.
func (b *FileBackend) Save(ctx context.Context, pref Preference) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := yaml.Marshal(preferenceDoc{
		Mode:      pref.Mode.String(),
		Revision:  pref.Revision,
		UpdatedAt: pref.UpdatedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to encode preference: %w", err)
	}

	dir := filepath.Dir(b.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".theme-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to close %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, b.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", b.path, err)
	}
	return nil
}

// Close implements Backend.
func (b *FileBackend) Close() error { return nil }
