package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/yourusername/edge-journal/internal/database"
	"github.com/yourusername/edge-journal/internal/models"
)

const snapshotColumns = `id, account_id, computed_at, range_start, range_end, total_trades, total_pnl_cents,
		win_rate, sharpe_ratio, max_drawdown_pct, risk_of_ruin, full_results`

// PostgresSnapshotRepository implements SnapshotRepository for PostgreSQL
type PostgresSnapshotRepository struct {
	db *database.DB
}

// NewPostgresSnapshotRepository creates a new snapshot repository
func NewPostgresSnapshotRepository(db *database.DB) SnapshotRepository {
	return &PostgresSnapshotRepository{db: db}
}

// Save inserts a statistics snapshot
func (r *PostgresSnapshotRepository) Save(ctx context.Context, snapshot *models.StatisticsSnapshot) error {
	if err := prepareSnapshot(snapshot); err != nil {
		return err
	}

	query := `INSERT INTO statistics_snapshots (` + snapshotColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := r.db.GetPool().Exec(ctx, query,
		snapshot.ID, snapshot.AccountID, snapshot.ComputedAt.UTC(), snapshot.RangeStart.UTC(),
		snapshot.RangeEnd.UTC(), snapshot.TotalTrades, snapshot.TotalPnLCents, snapshot.WinRate,
		snapshot.SharpeRatio, snapshot.MaxDrawdownPct, snapshot.RiskOfRuin, []byte(snapshot.FullResults),
	)
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	return nil
}

// GetLatestByAccount retrieves the most recent snapshot of an account
func (r *PostgresSnapshotRepository) GetLatestByAccount(ctx context.Context, accountID uuid.UUID) (*models.StatisticsSnapshot, error) {
	query := `SELECT ` + snapshotColumns + ` FROM statistics_snapshots
		WHERE account_id = $1 ORDER BY computed_at DESC LIMIT 1`

	snapshot, err := scanSnapshot(r.db.GetPool().QueryRow(ctx, query, accountID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest snapshot: %w", err)
	}

	return snapshot, nil
}

func scanSnapshot(row rowScanner) (*models.StatisticsSnapshot, error) {
	s := &models.StatisticsSnapshot{}
	var full []byte
	err := row.Scan(
		&s.ID, &s.AccountID, &s.ComputedAt, &s.RangeStart, &s.RangeEnd, &s.TotalTrades, &s.TotalPnLCents,
		&s.WinRate, &s.SharpeRatio, &s.MaxDrawdownPct, &s.RiskOfRuin, &full,
	)
	if err != nil {
		return nil, err
	}
	s.FullResults = full
	return s, nil
}
