package database

import (
	"path/filepath"
	"testing"
)

// SetupTestSQLite opens a fresh SQLite journal in the test's temp dir
func SetupTestSQLite(t *testing.T) *SQLiteDB {
	t.Helper()

	db, err := OpenSQLite(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("warning: failed to close test database: %v", err)
		}
	})

	return db
}
