package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// StatisticsSnapshot represents a persisted statistics computation
type StatisticsSnapshot struct {
	ID             uuid.UUID       `db:"id" json:"id"`
	AccountID      uuid.UUID       `db:"account_id" json:"account_id"`
	ComputedAt     time.Time       `db:"computed_at" json:"computed_at"`
	RangeStart     time.Time       `db:"range_start" json:"range_start"`
	RangeEnd       time.Time       `db:"range_end" json:"range_end"`
	TotalTrades    int             `db:"total_trades" json:"total_trades"`
	TotalPnLCents  int64           `db:"total_pnl_cents" json:"total_pnl_cents"`
	WinRate        float64         `db:"win_rate" json:"win_rate"`
	SharpeRatio    float64         `db:"sharpe_ratio" json:"sharpe_ratio"`
	MaxDrawdownPct float64         `db:"max_drawdown_pct" json:"max_drawdown_pct"`
	RiskOfRuin     float64         `db:"risk_of_ruin" json:"risk_of_ruin"`
	FullResults    json.RawMessage `db:"full_results" json:"full_results"`
}

// GetTotalPnL returns the snapshot's total P&L in dollars
func (s *StatisticsSnapshot) GetTotalPnL() float64 {
	return Cents(s.TotalPnLCents).Dollars()
}
