package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/edge-journal/internal/models"
)

// TradeRepository defines the interface for journal trade access.
// A zero start or end leaves that side of the range open.
type TradeRepository interface {
	GetByAccount(ctx context.Context, accountID uuid.UUID, start, end time.Time) ([]*models.TradeRecord, error)
	Create(ctx context.Context, trade *models.TradeRecord) error
	CreateBatch(ctx context.Context, trades []*models.TradeRecord) error
}

// ProfileRepository defines the interface for evaluation profile access
type ProfileRepository interface {
	Create(ctx context.Context, profile *models.EvaluationProfile) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.EvaluationProfile, error)
	GetActive(ctx context.Context) ([]*models.EvaluationProfile, error)
	Update(ctx context.Context, profile *models.EvaluationProfile) error
}

// SnapshotRepository persists computed statistics
type SnapshotRepository interface {
	Save(ctx context.Context, snapshot *models.StatisticsSnapshot) error
	GetLatestByAccount(ctx context.Context, accountID uuid.UUID) (*models.StatisticsSnapshot, error)
}
