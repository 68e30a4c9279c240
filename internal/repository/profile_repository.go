package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/yourusername/edge-journal/internal/database"
	"github.com/yourusername/edge-journal/internal/models"
)

const profileColumns = `id, account_id, name, firm, account_size, daily_loss_limit, daily_loss_unit,
		max_drawdown, max_drawdown_unit, profit_target, profit_target_unit, evaluation_days,
		min_trading_days, start_date, trailing_dd, active, created_at, updated_at`

// rowScanner is satisfied by both pgx and database/sql rows
type rowScanner interface {
	Scan(dest ...any) error
}

// PostgresProfileRepository implements ProfileRepository for PostgreSQL
type PostgresProfileRepository struct {
	db *database.DB
}

// NewPostgresProfileRepository creates a new evaluation profile repository
func NewPostgresProfileRepository(db *database.DB) ProfileRepository {
	return &PostgresProfileRepository{db: db}
}

// Create inserts a new profile
func (r *PostgresProfileRepository) Create(ctx context.Context, profile *models.EvaluationProfile) error {
	if err := prepareProfile(profile); err != nil {
		return err
	}

	query := `INSERT INTO evaluation_profiles (` + profileColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`

	if _, err := r.db.GetPool().Exec(ctx, query, profileArgs(profile)...); err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}

	return nil
}

// GetByID retrieves a profile by ID
func (r *PostgresProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.EvaluationProfile, error) {
	query := `SELECT ` + profileColumns + ` FROM evaluation_profiles WHERE id = $1`

	profile, err := scanProfile(r.db.GetPool().QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return profile, nil
}

// GetActive retrieves all active profiles
func (r *PostgresProfileRepository) GetActive(ctx context.Context) ([]*models.EvaluationProfile, error) {
	query := `SELECT ` + profileColumns + ` FROM evaluation_profiles WHERE active = true ORDER BY name ASC`

	rows, err := r.db.GetPool().Query(ctx, query)
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
func (r *PostgresProfileRepository) Update(ctx context.Context, profile *models.EvaluationProfile) error {
	if err := prepareProfile(profile); err != nil {
		return err
	}

	query := `
		UPDATE evaluation_profiles
		SET account_id = $2, name = $3, firm = $4, account_size = $5, daily_loss_limit = $6,
		    daily_loss_unit = $7, max_drawdown = $8, max_drawdown_unit = $9, profit_target = $10,
		    profit_target_unit = $11, evaluation_days = $12, min_trading_days = $13, start_date = $14,
		    trailing_dd = $15, active = $16, updated_at = $17
		WHERE id = $1
	`

	tag, err := r.db.GetPool().Exec(ctx, query, profileUpdateArgs(profile)...)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}

// profileArgs returns the columns in profileColumns order
func profileArgs(p *models.EvaluationProfile) []any {
	var startDate *time.Time
	if p.StartDate != nil {
		s := p.StartDate.UTC()
		startDate = &s
	}
	return []any{
		p.ID, p.AccountID, p.Name, p.Firm, p.AccountSize, p.DailyLossLimit, string(unitOrAbs(p.DailyLossUnit)),
		p.MaxDrawdown, string(unitOrAbs(p.MaxDrawdownUnit)), p.ProfitTarget, string(unitOrAbs(p.ProfitTargetUnit)),
		p.EvaluationDays, p.MinTradingDays, startDate, p.TrailingDrawdown, p.Active,
		p.CreatedAt.UTC(), p.UpdatedAt.UTC(),
	}
}

// profileUpdateArgs drops created_at, which never changes
func profileUpdateArgs(p *models.EvaluationProfile) []any {
	args := profileArgs(p)
	return append(args[:16:16], args[17])
}

func scanProfile(row rowScanner) (*models.EvaluationProfile, error) {
	p := &models.EvaluationProfile{}
	err := row.Scan(
		&p.ID, &p.AccountID, &p.Name, &p.Firm, &p.AccountSize, &p.DailyLossLimit, &p.DailyLossUnit,
		&p.MaxDrawdown, &p.MaxDrawdownUnit, &p.ProfitTarget, &p.ProfitTargetUnit, &p.EvaluationDays,
		&p.MinTradingDays, &p.StartDate, &p.TrailingDrawdown, &p.Active, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func unitOrAbs(u models.LimitUnit) models.LimitUnit {
	if u == "" {
		return models.LimitUnitAbsolute
	}
	return u
}
