package testutil

import (
	"database/sql"
	"path/filepath"
	"testing"

	"tagebuch/internal/db"
)

// NewTestDB opens a migrated SQLite database in a per-test temp dir.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	database, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })
	return database
}

// SeedSlot writes a raw slot value, bypassing the repositories.
func SeedSlot(t *testing.T, database *sql.DB, key, value string) {
	t.Helper()

	_, err := database.Exec(
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, '2025-01-01T00:00:00Z')
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		t.Fatalf("seed slot %s: %v", key, err)
	}
}
