package repository

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/edge-journal/internal/database"
	"github.com/yourusername/edge-journal/internal/models"
)

// Repositories holds all repository implementations
type Repositories struct {
	Trades    TradeRepository
	Profiles  ProfileRepository
	Snapshots SnapshotRepository
}

// NewRepositories creates the PostgreSQL-backed repositories
func NewRepositories(db *database.DB) (*Repositories, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}

	return &Repositories{
		Trades:    NewPostgresTradeRepository(db),
		Profiles:  NewPostgresProfileRepository(db),
		Snapshots: NewPostgresSnapshotRepository(db),
	}, nil
}

// NewSQLiteRepositories creates the SQLite-backed repositories
func NewSQLiteRepositories(db *database.SQLiteDB) (*Repositories, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}

	return &Repositories{
		Trades:    NewSQLiteTradeRepository(db),
		Profiles:  NewSQLiteProfileRepository(db),
		Snapshots: NewSQLiteSnapshotRepository(db),
	}, nil
}

// NewRepositoriesFromStore picks the implementation matching the open backend
func NewRepositoriesFromStore(store *database.Store) (*Repositories, error) {
	if store == nil {
		return nil, fmt.Errorf("storage backend is required")
	}
	if store.Postgres != nil {
		return NewRepositories(store.Postgres)
	}
	return NewSQLiteRepositories(store.SQLite)
}

func prepareTrade(trade *models.TradeRecord) error {
	if trade == nil {
		return fmt.Errorf("trade is required")
	}
	if trade.AccountID == uuid.Nil {
		return models.ErrInvalidID
	}
	if trade.ID == uuid.Nil {
		trade.ID = uuid.New()
	}
	if trade.CreatedAt.IsZero() {
		trade.CreatedAt = time.Now().UTC()
	}
	return nil
}

func prepareProfile(profile *models.EvaluationProfile) error {
	if err := models.ValidateProfile(profile); err != nil {
		return err
	}
	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}
	now := time.Now().UTC()
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now
	return nil
}

func prepareSnapshot(snapshot *models.StatisticsSnapshot) error {
	if snapshot == nil {
		return fmt.Errorf("snapshot is required")
	}
	if snapshot.AccountID == uuid.Nil {
		return models.ErrInvalidID
	}
	if snapshot.ID == uuid.Nil {
		snapshot.ID = uuid.New()
	}
	if snapshot.ComputedAt.IsZero() {
		snapshot.ComputedAt = time.Now().UTC()
	}
	if len(snapshot.FullResults) == 0 {
		snapshot.FullResults = []byte("{}")
	}
	return nil
}

// rangeClause appends open-ended date bounds to a WHERE clause.
// placeholder renders the n-th bind parameter for the driver.
func rangeClause(start, end time.Time, args []any, placeholder func(int) string) (string, []any) {
	clause := ""
	if !start.IsZero() {
		args = append(args, start.UTC())
		clause += " AND trade_date >= " + placeholder(len(args))
	}
	if !end.IsZero() {
		args = append(args, end.UTC())
		clause += " AND trade_date <= " + placeholder(len(args))
	}
	return clause, args
}

func postgresPlaceholder(n int) string { return fmt.Sprintf("$%d", n) }

func sqlitePlaceholder(int) string { return "?" }
