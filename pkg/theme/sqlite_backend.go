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
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/teradata-labs/cyberwallet/internal/sqlitedriver"
)

const createPreferencesTable = `
CREATE TABLE IF NOT EXISTS theme_preferences (
	id         INTEGER PRIMARY KEY CHECK (id = 1),
	mode       TEXT NOT NULL,
	revision   TEXT NOT NULL,
	updated_at TEXT NOT NULL
)`

// SQLiteBackend stores the preference as a single row in a SQLite database.
type SQLiteBackend struct {
	db *sql.DB
}

// NewSQLiteBackend opens (or creates) the database at dsn and ensures the
// schema exists. Use ":memory:" for an ephemeral store. A non-empty key
// encrypts the database and requires a cgo build.
func NewSQLiteBackend(ctx context.Context, dsn, key string) (*SQLiteBackend, error) {
	db, err := sqlitedriver.Open(ctx, dsn, sqlitedriver.Options{Key: key})
	if err != nil {
		return nil, fmt.Errorf("failed to open theme database: %w", err)
	}
	if _, err := db.ExecContext(ctx, createPreferencesTable); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create theme_preferences table: %w", err)
	}
	return &SQLiteBackend{db: db}, nil
}

// Load implements Backend.
func (b *SQLiteBackend) Load(ctx context.Context) (Preference, bool, error) {
	var mode, revision, updated string
	err := b.db.QueryRowContext(ctx,
		"SELECT mode, revision, updated_at FROM theme_preferences WHERE id = 1",
	).Scan(&mode, &revision, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return Preference{}, false, nil
	}
	if err != nil {
		return Preference{}, false, fmt.Errorf("failed to query theme preference: %w", err)
	}

	m, err := ParseMode(mode)
	if err != nil {
		return Preference{}, false, fmt.Errorf("invalid stored theme preference: %w", err)
	}
	ts, err := time.Parse(time.RFC3339Nano, updated)
	if err != nil {
		return Preference{}, false, fmt.Errorf("invalid stored updated_at %q: %w", updated, err)
	}
	return Preference{Mode: m, Revision: revision, UpdatedAt: ts}, true, nil
}

// Save implements Backend.
func (b *SQLiteBackend) Save(ctx context.Context, pref Preference) error {
	_, err := b.db.ExecContext(ctx, `
		INSERT INTO theme_preferences (id, mode, revision, updated_at)
		VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			mode = excluded.mode,
			revision = excluded.revision,
			updated_at = excluded.updated_at`,
		pref.Mode.String(), pref.Revision, pref.UpdatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("failed to save theme preference: %w", err)
	}
	return nil
}

// Close implements Backend.
func (b *SQLiteBackend) Close() error {
	return b.db.Close()
}
