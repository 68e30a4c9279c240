package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/yourusername/edge-journal/internal/database"
	"github.com/yourusername/edge-journal/internal/models"
)

const tradeColumns = `id, account_id, trade_date, symbol, side, pnl, fees, r_multiple, playbook,
		emotion, asset_class, close_date, followed_rules, created_at`

// PostgresTradeRepository implements TradeRepository for PostgreSQL
type PostgresTradeRepository struct {
	db *database.DB
}

// NewPostgresTradeRepository creates a new trade repository
func NewPostgresTradeRepository(db *database.DB) TradeRepository {
	return &PostgresTradeRepository{db: db}
}

// Create inserts a new trade
func (r *PostgresTradeRepository) Create(ctx context.Context, trade *models.TradeRecord) error {
	if err := prepareTrade(trade); err != nil {
		return err
	}

	query := `INSERT INTO trades (` + tradeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err := r.db.GetPool().Exec(ctx, query, tradeArgs(trade)...)
	if err != nil {
		return fmt.Errorf("failed to create trade: %w", err)
	}

	return nil
}

// CreateBatch inserts trades using COPY
func (r *PostgresTradeRepository) CreateBatch(ctx context.Context, trades []*models.TradeRecord) error {
	if len(trades) == 0 {
		return nil
	}

	columns := []string{"id", "account_id", "trade_date", "symbol", "side", "pnl", "fees", "r_multiple",
		"playbook", "emotion", "asset_class", "close_date", "followed_rules", "created_at"}

	rows := make([][]any, len(trades))
	for i, trade := range trades {
		if err := prepareTrade(trade); err != nil {
			return fmt.Errorf("trade %d: %w", i, err)
		}
		rows[i] = tradeArgs(trade)
	}

	count, err := r.db.GetPool().CopyFrom(ctx, pgx.Identifier{"trades"}, columns, pgx.CopyFromRows(rows))
	if err != nil {
		return fmt.Errorf("failed to batch insert trades: %w", err)
	}

	if count != int64(len(trades)) {
		return fmt.Errorf("inserted %d rows, expected %d", count, len(trades))
	}

	return nil
}

// GetByAccount retrieves an account's trades ordered by open date
func (r *PostgresTradeRepository) GetByAccount(ctx context.Context, accountID uuid.UUID, start, end time.Time) ([]*models.TradeRecord, error) {
	clause, args := rangeClause(start, end, []any{accountID}, postgresPlaceholder)
	query := `SELECT ` + tradeColumns + ` FROM trades WHERE account_id = $1` + clause +
		` ORDER BY trade_date ASC, id ASC`

	rows, err := r.db.GetPool().Query(ctx, query, args...)
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

func tradeArgs(t *models.TradeRecord) []any {
	var closeDate *time.Time
	if t.CloseDate != nil {
		c := t.CloseDate.UTC()
		closeDate = &c
	}
	return []any{
		t.ID, t.AccountID, t.Date.UTC(), t.Symbol, string(t.Side), t.PnL, t.Fees, t.RMultiple, t.Playbook,
		t.Emotion, t.AssetClass, closeDate, t.FollowedRules, t.CreatedAt.UTC(),
	}
}
