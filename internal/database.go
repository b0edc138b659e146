package internal

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	session_id  TEXT PRIMARY KEY,
	name        TEXT NOT NULL DEFAULT '',
	age         INTEGER NOT NULL DEFAULT 0,
	timestamp   INTEGER NOT NULL DEFAULT 0,
	image_count INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_sessions_timestamp ON sessions(timestamp DESC);
`

// OpenDatabase opens (creating if needed) the session SQLite database
// and ensures the schema exists.
func OpenDatabase(path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, &StoreError{Op: "open", Err: err}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, &StoreError{Op: "open", Err: err}
	}

	// A single connection sidesteps SQLITE_BUSY between the store's
	// writers and the subscription re-queries.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, &StoreError{Op: "open", Err: fmt.Errorf("ping failed: %w", err)}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, &StoreError{Op: "open", Err: fmt.Errorf("schema init failed: %w", err)}
	}

	return db, nil
}
