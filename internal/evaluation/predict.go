package evaluation

import (
	"github.com/yourusername/edge-journal/internal/analytics"
	"github.com/yourusername/edge-journal/internal/models"
)

// Predictor defaults
const (
	DefaultPredictionRuns = 5000
	// DefaultHorizonDays is simulated when the profile has no time limit
	DefaultHorizonDays = 60
	// TradeDayProbability is the fixed chance that a simulated day has trading.
	// It models weekends and days off and is not fitted to the trader.
	TradeDayProbability = 0.30

	minPredictionSamples = 3
)

// PredictOptions configures the outcome simulation
type PredictOptions struct {
	Runs   int
	Random analytics.RandomSource
}

// Prediction is the projected outcome of the remaining evaluation period
type Prediction struct {
	// Insufficient is set when fewer than three non-zero daily results exist
	Insufficient  bool                             `json:"insufficient"`
	Runs          int                              `json:"runs"`
	Samples       int                              `json:"samples"`
	HorizonDays   int                              `json:"horizon_days"`
	PassRate      float64                          `json:"pass_rate"`
	FailRate      float64                          `json:"fail_rate"`
	ActiveRate    float64                          `json:"active_rate"`
	AvgDaysToPass float64                          `json:"avg_days_to_pass"`
	FinalPnL      analytics.PercentileDistribution `json:"final_pnl"`
	Confidence    analytics.Confidence             `json:"confidence"`
}

// Predict bootstraps historical daily P&L over the days left in the evaluation,
// starting from state. Each simulated day trades with TradeDayProbability; a
// trading day is checked for a daily-loss breach, then a drawdown breach, then
// for the target with the minimum trading days met. Fewer than three samples
// always give an insufficient result, even for a finished evaluation.
func Predict(dailyPnls []float64, state State, profile *models.EvaluationProfile, opts PredictOptions) Prediction {
	samples := make([]models.Cents, 0, len(dailyPnls))
	for _, v := range dailyPnls {
		if c := models.CentsFromDollars(v); c != 0 {
			samples = append(samples, c)
		}
	}

	p := Prediction{
		Samples:    len(samples),
		Confidence: predictionConfidence(len(samples)),
	}
	if profile == nil || len(samples) < minPredictionSamples {
		p.Insufficient = true
		return p
	}
	switch state.Status {
	case StatusFailed:
		p.FailRate = 100
		return p
	case StatusPassed:
		p.PassRate = 100
		return p
	}

	if opts.Runs <= 0 {
		opts.Runs = DefaultPredictionRuns
	}
	if opts.Random == nil {
		opts.Random = analytics.NewRandomSource(0)
	}
	p.Runs = opts.Runs
	p.HorizonDays = DefaultHorizonDays
	if profile.EvaluationDays > 0 {
		p.HorizonDays = max(0, profile.EvaluationDays-state.CalendarDays)
	}

	account := models.CentsFromDollars(profile.AccountSize)
	dailyLimit := models.CentsFromDollars(profile.DailyLossLimitAbs())
	maxDD := models.CentsFromDollars(profile.MaxDrawdownAbs())
	target := models.CentsFromDollars(profile.ProfitTargetAbs())
	startCum := models.CentsFromDollars(state.CumPnL)
	startEquity := models.CentsFromDollars(state.CurrentEquity)
	startHigh := models.CentsFromDollars(state.EquityHigh)

	passed, failed, passDays := 0, 0, 0
	finals := make([]float64, opts.Runs)
	for run := 0; run < opts.Runs; run++ {
		cum, equity, high := startCum, startEquity, startHigh
		daysTraded := state.DaysTraded

	days:
		for day := 1; day <= p.HorizonDays; day++ {
			if opts.Random.Float64() >= TradeDayProbability {
				continue
			}
			pnl := samples[opts.Random.Intn(len(samples))]
			cum += pnl
			equity += pnl
			daysTraded++
			if equity > high {
				high = equity
			}

			dd := account - equity
			if profile.TrailingDrawdown {
				dd = high - equity
			}
			switch {
			case dailyLimit > 0 && pnl < 0 && pnl.Abs() >= dailyLimit:
				failed++
				break days
			case maxDD > 0 && dd >= maxDD:
				failed++
				break days
			case target > 0 && cum >= target && daysTraded >= profile.MinTradingDays:
				passed++
				passDays += day
				break days
			}
		}
		finals[run] = cum.Dollars()
	}

	runs := float64(opts.Runs)
	p.PassRate = float64(passed) / runs * 100
	p.FailRate = float64(failed) / runs * 100
	p.ActiveRate = float64(opts.Runs-passed-failed) / runs * 100
	if passed > 0 {
		p.AvgDaysToPass = float64(passDays) / float64(passed)
	}
	p.FinalPnL = analytics.Percentiles(finals)
	return p
}

// HistoricalDailyPnLs returns the non-zero daily P&L of trades, in dollars and
// chronological order, as input for Predict.
func HistoricalDailyPnLs(trades []*models.TradeRecord, opts Options) []float64 {
	opts = opts.withDefaults()
	daily := analytics.DailyTotals(trades, opts.Location)
	out := make([]float64, 0, len(daily))
	for _, d := range daily {
		if d.PnL != 0 {
			out = append(out, d.PnL.Dollars())
		}
	}
	return out
}

func predictionConfidence(samples int) analytics.Confidence {
	switch {
	case samples >= 30:
		return analytics.ConfidenceHigh
	case samples >= 15:
		return analytics.ConfidenceMedium
	default:
		return analytics.ConfidenceLow
	}
}
