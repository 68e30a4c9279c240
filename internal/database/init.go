package database

import (
	"context"
	"fmt"

	"github.com/yourusername/edge-journal/internal/config"
)

// Store is the opened storage backend; exactly one of Postgres and SQLite is set
type Store struct {
	Postgres *DB
	SQLite   *SQLiteDB
}

// Initialize opens the storage backend selected by configuration and makes sure the schema exists
func Initialize(ctx context.Context, cfg *config.Config) (*Store, error) {
	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		db, err := NewDB(ctx, cfg)
		if err != nil {
			return nil, err
		}
		if err := db.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, err
		}
		return &Store{Postgres: db}, nil
	case config.DriverSQLite:
		db, err := OpenSQLite(cfg.Storage.SQLitePath)
		if err != nil {
			return nil, err
		}
		return &Store{SQLite: db}, nil
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Storage.Driver)
	}
}

// HealthCheck pings whichever backend is open
func (s *Store) HealthCheck(ctx context.Context) error {
	if s.Postgres != nil {
		return s.Postgres.HealthCheck(ctx)
	}
	if s.SQLite != nil {
		return s.SQLite.HealthCheck(ctx)
	}
	return fmt.Errorf("no storage backend open")
}

// Close releases the open backend
func (s *Store) Close() error {
	if s.Postgres != nil {
		s.Postgres.Close()
	}
	if s.SQLite != nil {
		return s.SQLite.Close()
	}
	return nil
}
