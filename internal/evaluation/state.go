// Package evaluation tracks funded-account ("prop firm") evaluations: it walks
// daily P&L against a rule profile and projects the remaining period.
package evaluation

import (
	"time"

	"github.com/yourusername/edge-journal/internal/models"
)

// Status is the outcome of an evaluation so far
type Status string

const (
	StatusActive Status = "active"
	StatusPassed Status = "passed"
	StatusFailed Status = "failed"
)

// UnlimitedDays is reported as DaysRemaining for profiles without a time limit
const UnlimitedDays = -1

const reasonPeriodExpired = "period expired without reaching target"

// Options carries the clock and calendar used to evaluate
type Options struct {
	// Now defaults to time.Now
	Now time.Time
	// Location defines day boundaries; defaults to UTC
	Location *time.Location
}

func (o Options) withDefaults() Options {
	if o.Now.IsZero() {
		o.Now = time.Now()
	}
	if o.Location == nil {
		o.Location = time.UTC
	}
	return o
}

// DayStep is one day of the evaluation walk
type DayStep struct {
	Date       time.Time `json:"date"`
	PnL        float64   `json:"pnl"`
	Equity     float64   `json:"equity"`
	EquityHigh float64   `json:"equity_high"`
	Drawdown   float64   `json:"drawdown"`
}

// State is the evaluation status derived from the trades so far. Money fields are dollars.
type State struct {
	Status     Status `json:"status"`
	FailReason string `json:"fail_reason,omitempty"`

	CumPnL        float64 `json:"cum_pnl"`
	EquityHigh    float64 `json:"equity_high"`
	CurrentEquity float64 `json:"current_equity"`
	// TrailingDD is the current drawdown, measured from EquityHigh for trailing
	// profiles and from the account size otherwise
	TrailingDD    float64 `json:"trailing_dd"`
	MaxTrailingDD float64 `json:"max_trailing_dd"`
	TodayPnL      float64 `json:"today_pnl"`

	DaysTraded    int `json:"days_traded"`
	CalendarDays  int `json:"calendar_days"`
	DaysRemaining int `json:"days_remaining"`

	DailyBreached    bool `json:"daily_breached"`
	DrawdownBreached bool `json:"drawdown_breached"`
	TargetReached    bool `json:"target_reached"`
	MinDaysMet       bool `json:"min_days_met"`
	PeriodExpired    bool `json:"period_expired"`

	DailyLossLimit float64 `json:"daily_loss_limit"`
	MaxDrawdown    float64 `json:"max_drawdown"`
	ProfitTarget   float64 `json:"profit_target"`

	DailyProgress    float64 `json:"daily_progress"`
	DrawdownProgress float64 `json:"drawdown_progress"`
	TargetProgress   float64 `json:"target_progress"`

	Days []DayStep `json:"days"`
}

// Breached reports whether any rule was broken during the walk
func (s State) Breached() bool {
	return s.DailyBreached || s.DrawdownBreached
}

// defaultState is the state of an evaluation with no trading yet
func defaultState(profile *models.EvaluationProfile) State {
	s := State{Status: StatusActive, DaysRemaining: UnlimitedDays, Days: []DayStep{}}
	if profile == nil {
		return s
	}
	account := models.CentsFromDollars(profile.AccountSize).Dollars()
	s.CurrentEquity = account
	s.EquityHigh = account
	s.DailyLossLimit = profile.DailyLossLimitAbs()
	s.MaxDrawdown = profile.MaxDrawdownAbs()
	s.ProfitTarget = profile.ProfitTargetAbs()
	if profile.EvaluationDays > 0 {
		s.DaysRemaining = profile.EvaluationDays
	}
	return s
}
