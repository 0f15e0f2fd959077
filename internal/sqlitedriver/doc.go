// Package sqlitedriver registers a SQLite database/sql driver under the name
// "sqlite3" and opens databases with the pragmas the theme store expects.
//
// With CGO it uses go-sqlcipher, so databases may be encrypted with a
// passphrase. Without CGO it registers the pure-Go modernc.org/sqlite driver,
// which cannot open encrypted databases.
//
// Import it for its side effects, or call Open:
//
//	db, err := sqlitedriver.Open(ctx, "theme.db", sqlitedriver.Options{})
package sqlitedriver
