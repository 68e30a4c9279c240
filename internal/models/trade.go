package models

import (
	"time"

	"github.com/google/uuid"
)

// TradeSide represents the direction of a trade
type TradeSide string

const (
	TradeSideLong  TradeSide = "long"
	TradeSideShort TradeSide = "short"
)

// TradeRecord represents a closed trade as stored in the journal
type TradeRecord struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	AccountID     uuid.UUID  `db:"account_id" json:"account_id"`
	Date          time.Time  `db:"trade_date" json:"date"`
	Symbol        string     `db:"symbol" json:"symbol"`
	Side          TradeSide  `db:"side" json:"side" validate:"omitempty,oneof=long short"`
	PnL           *float64   `db:"pnl" json:"pnl"`
	Fees          float64    `db:"fees" json:"fees" validate:"gte=0"`
	RMultiple     *float64   `db:"r_multiple" json:"r_multiple,omitempty"`
	Playbook      string     `db:"playbook" json:"playbook"`
	Emotion       string     `db:"emotion" json:"emotion"`
	AssetClass    string     `db:"asset_class" json:"asset_class"`
	CloseDate     *time.Time `db:"close_date" json:"close_date,omitempty"`
	FollowedRules bool       `db:"followed_rules" json:"followed_rules"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
}

// HasPnL reports whether the trade carries a realized P&L
func (t *TradeRecord) HasPnL() bool {
	return t != nil && t.PnL != nil
}

// HasDate reports whether the trade carries a usable open timestamp
func (t *TradeRecord) HasDate() bool {
	return t != nil && !t.Date.IsZero()
}

// HoldDuration returns the time between open and close, if both are known
func (t *TradeRecord) HoldDuration() (time.Duration, bool) {
	if !t.HasDate() || t.CloseDate == nil || t.CloseDate.IsZero() {
		return 0, false
	}
	d := t.CloseDate.Sub(t.Date)
	if d < 0 {
		return 0, false
	}
	return d, true
}
