package database

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteDB is a single-file journal store
type SQLiteDB struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the journal database at path and applies the schema.
// Use ":memory:" for a throwaway database.
func OpenSQLite(path string) (*SQLiteDB, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// a :memory: database lives only as long as its single connection
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(SQLiteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply sqlite schema: %w", err)
	}

	return &SQLiteDB{db: db}, nil
}

// Conn returns the underlying *sql.DB
func (s *SQLiteDB) Conn() *sql.DB {
	return s.db
}

// HealthCheck verifies the database file is usable
func (s *SQLiteDB) HealthCheck(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	return nil
}

// Close closes the database
func (s *SQLiteDB) Close() error {
	return s.db.Close()
}
