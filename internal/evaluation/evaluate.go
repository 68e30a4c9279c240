package evaluation

import (
	"fmt"
	"time"

	"github.com/yourusername/edge-journal/internal/analytics"
	"github.com/yourusername/edge-journal/internal/models"
)

// Evaluate walks the daily P&L of trades on or after the profile start date and
// derives the evaluation status. A breach is recorded but does not stop the walk,
// so MaxTrailingDD always covers the full history. With no trades in the window
// the default active state is returned.
func Evaluate(trades []*models.TradeRecord, profile *models.EvaluationProfile, opts Options) State {
	opts = opts.withDefaults()
	state := defaultState(profile)
	if profile == nil {
		return state
	}

	var start time.Time
	if profile.StartDate != nil && !profile.StartDate.IsZero() {
		start = calendarStart(*profile.StartDate, opts.Location)
	}
	daily := analytics.DailyTotals(tradesSince(trades, start, opts.Location), opts.Location)
	if len(daily) == 0 {
		return state
	}
	today := startOfDay(opts.Now, opts.Location)

	account := models.CentsFromDollars(profile.AccountSize)
	dailyLimit := models.CentsFromDollars(state.DailyLossLimit)
	maxDD := models.CentsFromDollars(state.MaxDrawdown)
	target := models.CentsFromDollars(state.ProfitTarget)

	var cum, maxSeen, current, todayPnL models.Cents
	equity, high := account, account
	for _, day := range daily {
		cum += day.PnL
		equity += day.PnL

		var dd models.Cents
		if profile.TrailingDrawdown {
			if equity > high {
				high = equity
			}
			dd = high - equity
		} else {
			dd = account - equity
		}
		if dd > maxSeen {
			maxSeen = dd
		}
		current = dd
		if day.Date.Equal(today) {
			todayPnL = day.PnL
		}

		if dailyLimit > 0 && day.PnL < 0 && day.PnL.Abs() >= dailyLimit {
			state.DailyBreached = true
			if state.FailReason == "" {
				state.FailReason = fmt.Sprintf("daily loss limit breached on %s: lost %s against a limit of %s",
					day.Key(), day.PnL.Abs(), dailyLimit)
			}
		}
		if maxDD > 0 && dd >= maxDD {
			state.DrawdownBreached = true
			if state.FailReason == "" {
				state.FailReason = fmt.Sprintf("max drawdown breached on %s: drawdown %s against a limit of %s",
					day.Key(), dd, maxDD)
			}
		}

		state.Days = append(state.Days, DayStep{
			Date:       day.Date,
			PnL:        day.PnL.Dollars(),
			Equity:     equity.Dollars(),
			EquityHigh: high.Dollars(),
			Drawdown:   max(dd, 0).Dollars(),
		})
	}
	if current < 0 {
		current = 0
	}

	state.CumPnL = cum.Dollars()
	state.CurrentEquity = equity.Dollars()
	state.EquityHigh = high.Dollars()
	state.TrailingDD = current.Dollars()
	state.MaxTrailingDD = maxSeen.Dollars()
	state.TodayPnL = todayPnL.Dollars()
	state.DaysTraded = len(daily)
	state.CalendarDays = calendarDays(start, today, daily)

	state.TargetReached = target > 0 && cum >= target
	state.MinDaysMet = state.DaysTraded >= profile.MinTradingDays
	state.PeriodExpired = profile.EvaluationDays > 0 && state.CalendarDays > profile.EvaluationDays
	if profile.EvaluationDays > 0 {
		state.DaysRemaining = max(0, profile.EvaluationDays-state.CalendarDays)
	}

	switch {
	case state.Breached():
		state.Status = StatusFailed
	case state.TargetReached && state.MinDaysMet:
		state.Status = StatusPassed
	case state.PeriodExpired && !state.TargetReached:
		state.Status = StatusFailed
		state.FailReason = reasonPeriodExpired
	default:
		state.Status = StatusActive
	}

	if dailyLimit > 0 && todayPnL < 0 {
		state.DailyProgress = progress(todayPnL.Abs(), dailyLimit)
	}
	if maxDD > 0 {
		state.DrawdownProgress = progress(current, maxDD)
	}
	if target > 0 {
		state.TargetProgress = progress(cum, target)
	}
	return state
}

// tradesSince keeps dated trades whose day is on or after start. A zero start keeps
// every trade.
func tradesSince(trades []*models.TradeRecord, start time.Time, loc *time.Location) []*models.TradeRecord {
	if start.IsZero() {
		return trades
	}
	out := make([]*models.TradeRecord, 0, len(trades))
	for _, t := range trades {
		if !t.HasDate() {
			continue
		}
		if !startOfDay(t.Date, loc).Before(start) {
			out = append(out, t)
		}
	}
	return out
}

// calendarDays counts days inclusively from start to today, or across the traded
// span when the profile has no start date.
func calendarDays(start, today time.Time, daily []analytics.DailyPnL) int {
	if !start.IsZero() {
		if today.Before(start) {
			return 0
		}
		return daysBetween(start, today) + 1
	}
	if len(daily) == 0 {
		return 0
	}
	return daysBetween(daily[0].Date, daily[len(daily)-1].Date) + 1
}

// daysBetween counts calendar days, ignoring DST shifts in the location
func daysBetween(from, to time.Time) int {
	a := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}

// calendarStart reads a start date as a calendar day. Stored and parsed start
// dates are UTC midnights, so the UTC date is the one the trader entered.
func calendarStart(d time.Time, loc *time.Location) time.Time {
	d = d.UTC()
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// progress returns value/limit as a percentage clamped to [0, 100]
func progress(value, limit models.Cents) float64 {
	if limit <= 0 || value <= 0 {
		return 0
	}
	pct := float64(value) / float64(limit) * 100
	if pct > 100 {
		return 100
	}
	return pct
}
