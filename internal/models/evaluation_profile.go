package models

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// LimitUnit describes how a profile limit is expressed
type LimitUnit string

const (
	LimitUnitPercent  LimitUnit = "pct"
	LimitUnitAbsolute LimitUnit = "abs"
)

// EvaluationProfile is the rule set of a funded-account evaluation
type EvaluationProfile struct {
	ID               uuid.UUID  `db:"id" json:"id" yaml:"id"`
	AccountID        uuid.UUID  `db:"account_id" json:"account_id" yaml:"account_id"`
	Name             string     `db:"name" json:"name" yaml:"name"`
	Firm             string     `db:"firm" json:"firm" yaml:"firm"`
	AccountSize      float64    `db:"account_size" json:"account_size" yaml:"account_size" validate:"gt=0"`
	DailyLossLimit   float64    `db:"daily_loss_limit" json:"daily_loss_limit" yaml:"daily_loss_limit" validate:"gte=0"`
	DailyLossUnit    LimitUnit  `db:"daily_loss_unit" json:"daily_loss_unit" yaml:"daily_loss_unit" validate:"omitempty,oneof=pct abs"`
	MaxDrawdown      float64    `db:"max_drawdown" json:"max_drawdown" yaml:"max_drawdown" validate:"gte=0"`
	MaxDrawdownUnit  LimitUnit  `db:"max_drawdown_unit" json:"max_drawdown_unit" yaml:"max_drawdown_unit" validate:"omitempty,oneof=pct abs"`
	ProfitTarget     float64    `db:"profit_target" json:"profit_target" yaml:"profit_target" validate:"gte=0"`
	ProfitTargetUnit LimitUnit  `db:"profit_target_unit" json:"profit_target_unit" yaml:"profit_target_unit" validate:"omitempty,oneof=pct abs"`
	EvaluationDays   int        `db:"evaluation_days" json:"evaluation_days" yaml:"evaluation_days" validate:"gte=0"`
	MinTradingDays   int        `db:"min_trading_days" json:"min_trading_days" yaml:"min_trading_days" validate:"gte=0"`
	StartDate        *time.Time `db:"start_date" json:"start_date,omitempty" yaml:"start_date,omitempty"`
	TrailingDrawdown bool       `db:"trailing_dd" json:"trailing_dd" yaml:"trailing_dd"`
	Active           bool       `db:"active" json:"active" yaml:"active"`
	CreatedAt        time.Time  `db:"created_at" json:"created_at" yaml:"-"`
	UpdatedAt        time.Time  `db:"updated_at" json:"updated_at" yaml:"-"`
}

// ResolveLimit converts a limit to absolute dollars using the account size
func (p *EvaluationProfile) ResolveLimit(value float64, unit LimitUnit) float64 {
	if unit == LimitUnitPercent {
		return p.AccountSize * value / 100
	}
	return value
}

// DailyLossLimitAbs returns the daily loss limit in dollars
func (p *EvaluationProfile) DailyLossLimitAbs() float64 {
	return p.ResolveLimit(p.DailyLossLimit, p.DailyLossUnit)
}

// MaxDrawdownAbs returns the maximum drawdown in dollars
func (p *EvaluationProfile) MaxDrawdownAbs() float64 {
	return p.ResolveLimit(p.MaxDrawdown, p.MaxDrawdownUnit)
}

// ProfitTargetAbs returns the profit target in dollars
func (p *EvaluationProfile) ProfitTargetAbs() float64 {
	return p.ResolveLimit(p.ProfitTarget, p.ProfitTargetUnit)
}

var profileValidator = validator.New()

// ValidateProfile checks a profile once at the ingestion boundary
func ValidateProfile(p *EvaluationProfile) error {
	if p == nil {
		return ErrInvalidProfile
	}
	if err := profileValidator.Struct(p); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidProfile, err)
	}
	return nil
}
