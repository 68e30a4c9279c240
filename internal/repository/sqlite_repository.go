package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/edge-journal/internal/database"
	"github.com/yourusername/edge-journal/internal/models"
)

// SQLiteTradeRepository implements TradeRepository on a local SQLite journal
type SQLiteTradeRepository struct {
	db *sql.DB
}

// NewSQLiteTradeRepository creates a new trade repository
func NewSQLiteTradeRepository(db *database.SQLiteDB) TradeRepository {
	return &SQLiteTradeRepository{db: db.Conn()}
}

const sqliteTradeInsert = `INSERT INTO trades (` + tradeColumns + `)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// Create inserts a new trade
func (r *SQLiteTradeRepository) Create(ctx context.Context, trade *models.TradeRecord) error {
	if err := prepareTrade(trade); err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, sqliteTradeInsert, tradeArgs(trade)...); err != nil {
		return fmt.Errorf("failed to create trade: %w", err)
	}
	return nil
}

// CreateBatch inserts trades in one transaction
func (r *SQLiteTradeRepository) CreateBatch(ctx context.Context, trades []*models.TradeRecord) error {
	if len(trades) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, sqliteTradeInsert)
	if err != nil {
		return fmt.Errorf("failed to prepare trade insert: %w", err)
	}
	defer stmt.Close()

	for i, trade := range trades {
		if err := prepareTrade(trade); err != nil {
			return fmt.Errorf("trade %d: %w", i, err)
		}
		if _, err := stmt.ExecContext(ctx, tradeArgs(trade)...); err != nil {
			return fmt.Errorf("failed to batch insert trades: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetByAccount retrieves an account's trades ordered by open date
func (r *SQLiteTradeRepository) GetByAccount(ctx context.Context, accountID uuid.UUID, start, end time.Time) ([]*models.TradeRecord, error) {
	clause, args := rangeClause(start, end, []any{accountID}, sqlitePlaceholder)
	query := `SELECT ` + tradeColumns + ` FROM trades WHERE account_id = ?` + clause +
		` ORDER BY trade_date ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query trades: %w", err)
	}
	defer rows.Close()

	var trades []*models.TradeRecord
	for rows.Next() {
		trade := &models.TradeRecord{}
		err := rows.Scan(
			&trade.ID, &trade.AccountID, &trade.Date, &trade.Symbol, &trade.Side, &trade.PnL, &trade.Fees,
			&trade.RMultiple, &trade.Playbook, &trade.Emotion, &trade.AssetClass, &trade.CloseDate,
			&trade.FollowedRules, &trade.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trade: %w", err)
		}
		trades = append(trades, trade)
	}

	return trades, rows.Err()
}

// SQLiteProfileRepository implements ProfileRepository on a local SQLite journal
type SQLiteProfileRepository struct {
	db *sql.DB
}

// NewSQLiteProfileRepository creates a new evaluation profile repository
func NewSQLiteProfileRepository(db *database.SQLiteDB) ProfileRepository {
	return &SQLiteProfileRepository{db: db.Conn()}
}

// Create inserts a new profile
func (r *SQLiteProfileRepository) Create(ctx context.Context, profile *models.EvaluationProfile) error {
	if err := prepareProfile(profile); err != nil {
		return err
	}

	query := `INSERT INTO evaluation_profiles (` + profileColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	if _, err := r.db.ExecContext(ctx, query, profileArgs(profile)...); err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}
	return nil
}

// GetByID retrieves a profile by ID
func (r *SQLiteProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.EvaluationProfile, error) {
	query := `SELECT ` + profileColumns + ` FROM evaluation_profiles WHERE id = ?`

	profile, err := scanProfile(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return profile, nil
}

// GetActive retrieves all active profiles
func (r *SQLiteProfileRepository) GetActive(ctx context.Context) ([]*models.EvaluationProfile, error) {
	query := `SELECT ` + profileColumns + ` FROM evaluation_profiles WHERE active = 1 ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query active profiles: %w", err)
	}
	defer rows.Close()

	var profiles []*models.EvaluationProfile
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		profiles = append(profiles, profile)
	}
	return profiles, rows.Err()
}

// Update rewrites a profile's rule set
func (r *SQLiteProfileRepository) Update(ctx context.Context, profile *models.EvaluationProfile) error {
	if err := prepareProfile(profile); err != nil {
		return err
	}

	query := `
		UPDATE evaluation_profiles
		SET account_id = ?, name = ?, firm = ?, account_size = ?, daily_loss_limit = ?,
		    daily_loss_unit = ?, max_drawdown = ?, max_drawdown_unit = ?, profit_target = ?,
		    profit_target_unit = ?, evaluation_days = ?, min_trading_days = ?, start_date = ?,
		    trailing_dd = ?, active = ?, updated_at = ?
		WHERE id = ?
	`

	args := profileUpdateArgs(profile)
	args = append(args[1:], args[0])

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	if affected == 0 {
		return models.ErrNotFound
	}
	return nil
}

// SQLiteSnapshotRepository implements SnapshotRepository on a local SQLite journal
type SQLiteSnapshotRepository struct {
	db *sql.DB
}

// NewSQLiteSnapshotRepository creates a new snapshot repository
func NewSQLiteSnapshotRepository(db *database.SQLiteDB) SnapshotRepository {
	return &SQLiteSnapshotRepository{db: db.Conn()}
}

// Save inserts a statistics snapshot
func (r *SQLiteSnapshotRepository) Save(ctx context.Context, snapshot *models.StatisticsSnapshot) error {
	if err := prepareSnapshot(snapshot); err != nil {
		return err
	}

	query := `INSERT INTO statistics_snapshots (` + snapshotColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		snapshot.ID, snapshot.AccountID, snapshot.ComputedAt.UTC(), snapshot.RangeStart.UTC(),
		snapshot.RangeEnd.UTC(), snapshot.TotalTrades, snapshot.TotalPnLCents, snapshot.WinRate,
		snapshot.SharpeRatio, snapshot.MaxDrawdownPct, snapshot.RiskOfRuin, string(snapshot.FullResults),
	)
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

// GetLatestByAccount retrieves the most recent snapshot of an account
func (r *SQLiteSnapshotRepository) GetLatestByAccount(ctx context.Context, accountID uuid.UUID) (*models.StatisticsSnapshot, error) {
	query := `SELECT ` + snapshotColumns + ` FROM statistics_snapshots
		WHERE account_id = ? ORDER BY computed_at DESC LIMIT 1`

	snapshot, err := scanSnapshot(r.db.QueryRowContext(ctx, query, accountID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest snapshot: %w", err)
	}
	return snapshot, nil
}
