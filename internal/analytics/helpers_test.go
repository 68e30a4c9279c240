package analytics

import (
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/edge-journal/internal/models"
)

var baseDate = time.Date(2024, time.January, 1, 14, 30, 0, 0, time.UTC)

func floatPtr(v float64) *float64 {
	return &v
}

func newTrade(pnl float64, date time.Time) *models.TradeRecord {
	return &models.TradeRecord{
		ID:            uuid.New(),
		Date:          date,
		Symbol:        "es",
		Side:          models.TradeSideLong,
		PnL:           floatPtr(pnl),
		Playbook:      "breakout",
		Emotion:       "Calm",
		AssetClass:    "Futures",
		FollowedRules: true,
	}
}

// dailyTrades returns one trade per consecutive calendar day
func dailyTrades(pnls ...float64) []*models.TradeRecord {
	out := make([]*models.TradeRecord, len(pnls))
	for i, p := range pnls {
		out[i] = newTrade(p, baseDate.AddDate(0, 0, i))
	}
	return out
}

func seededSettings(seed int64) Settings {
	s := DefaultSettings()
	s.Seed = seed
	return s
}
