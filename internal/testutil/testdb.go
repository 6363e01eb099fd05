package testutil

import (
	"database/sql"
	"testing"

	"github.com/alexanderramin/syllabus/internal/db"
)

// NewTestDB opens a migrated in-memory run store that closes with the test.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(db.MemoryPath)
	if err != nil {
		t.Fatalf("opening test run store: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })
	return database
}

// CountRows returns the number of rows in one of the run store tables.
func CountRows(t *testing.T, database *sql.DB, table string) int {
	t.Helper()
	switch table {
	case "runs", "run_sections", "run_themes", "submissions":
	default:
		t.Fatalf("unknown table %q", table)
	}
	var n int
	if err := database.QueryRow(`SELECT COUNT(*) FROM ` + table).Scan(&n); err != nil {
		t.Fatalf("counting %s: %v", table, err)
	}
	return n
}
