//go:build cgo

package sqlitedriver

import (
	_ "github.com/mutecomm/go-sqlcipher/v4" // registers "sqlite3" with SQLCipher
)

// EncryptionSupported reports whether Options.Key can be honored.
const EncryptionSupported = true
