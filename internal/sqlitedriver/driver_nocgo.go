//go:build !cgo

package sqlitedriver

import (
	"database/sql"

	"modernc.org/sqlite"
)

func init() {
	sql.Register(DriverName, &sqlite.Driver{})
}

// EncryptionSupported reports whether Options.Key can be honored.
const EncryptionSupported = false
