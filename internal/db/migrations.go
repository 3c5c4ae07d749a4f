package db

import (
	"database/sql"
	"fmt"
)

// Every persisted value lives in one key/value slot; the entry collection is a
// single JSON document under its namespace key.
const baseSchema = `
CREATE TABLE IF NOT EXISTS kv (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updated_at TEXT NOT NULL
);
`

func Migrate(db *sql.DB) error {
	if _, err := db.Exec(baseSchema); err != nil {
		return fmt.Errorf("migrate base schema: %w", err)
	}
	return nil
}
