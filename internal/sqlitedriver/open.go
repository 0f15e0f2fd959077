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

package sqlitedriver

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// DriverName is the database/sql name both builds register.
const DriverName = "sqlite3"

// ErrEncryptionUnsupported is returned when a key is supplied to a build
// without SQLCipher.
var ErrEncryptionUnsupported = errors.New("sqlite encryption requires a cgo build")

// Options tunes a connection opened by Open.
type Options struct {
	// Key is the SQLCipher passphrase. Empty leaves the database in plain text.
	Key string
	// BusyTimeout bounds how long a writer waits on a lock (default: 5s).
	BusyTimeout time.Duration
}

// Open opens dsn with a single connection so ":memory:" databases stay
// shared and writers are serialized.
func Open(ctx context.Context, dsn string, opts Options) (*sql.DB, error) {
	if opts.Key != "" && !EncryptionSupported {
		return nil, ErrEncryptionUnsupported
	}
	if opts.BusyTimeout <= 0 {
		opts.BusyTimeout = 5 * time.Second
	}

	db, err := sql.Open(DriverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %q: %w", dsn, err)
	}
	db.SetMaxOpenConns(1)

	// PRAGMA key must be the first statement on the connection.
	if opts.Key != "" {
		if _, err := db.ExecContext(ctx, "PRAGMA key = "+quote(opts.Key)); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to set key on %q: %w", dsn, err)
		}
	}
	pragma := fmt.Sprintf("PRAGMA busy_timeout = %d", opts.BusyTimeout.Milliseconds())
	if _, err := db.ExecContext(ctx, pragma); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to set busy_timeout on %q: %w", dsn, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %q: %w", dsn, err)
	}
	return db, nil
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
