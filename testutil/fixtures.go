package testutil

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

const sessionsSchema = `
CREATE TABLE IF NOT EXISTS sessions (
	session_id  TEXT PRIMARY KEY,
	name        TEXT NOT NULL DEFAULT '',
	age         INTEGER NOT NULL DEFAULT 0,
	timestamp   INTEGER NOT NULL DEFAULT 0,
	image_count INTEGER NOT NULL DEFAULT 0
);
`

// CreateInMemoryDB creates an empty in-memory session database
func CreateInMemoryDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open in-memory database: %v", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(sessionsSchema); err != nil {
		t.Fatalf("Failed to create sessions table: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// CreateTestDB creates a session database fixture with sample records
func CreateTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db := CreateInMemoryDB(t)
	InsertSessionRow(t, db, "P001", "Jane Doe", 34, 1700000300000, 3)
	InsertSessionRow(t, db, "P002", "John Smith", 52, 1700000200000, 1)
	InsertSessionRow(t, db, "P003", "Ada Park", 27, 1700000100000, 0)
	return db
}

// CreateFileDB creates a session database file under dir
func CreateFileDB(t *testing.T, dir string) (*sql.DB, string) {
	t.Helper()
	path := filepath.Join(dir, "sessions.db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("Failed to open database %s: %v", path, err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(sessionsSchema); err != nil {
		t.Fatalf("Failed to create sessions table: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, path
}

// InsertSessionRow inserts one session record directly
func InsertSessionRow(t *testing.T, db *sql.DB, sessionID, name string, age int, timestamp int64, imageCount int) {
	t.Helper()
	_, err := db.Exec(
		"INSERT OR REPLACE INTO sessions (session_id, name, age, timestamp, image_count) VALUES (?, ?, ?, ?, ?)",
		sessionID, name, age, timestamp, imageCount)
	if err != nil {
		t.Fatalf("Failed to insert session %s: %v", sessionID, err)
	}
}

// CountSessionRows returns the number of rows in the sessions table
func CountSessionRows(t *testing.T, db *sql.DB) int {
	t.Helper()
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM sessions").Scan(&n); err != nil {
		t.Fatalf("Failed to count sessions: %v", err)
	}
	return n
}
