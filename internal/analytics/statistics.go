package analytics

import (
	"time"

	"github.com/yourusername/edge-journal/internal/models"
)

// Streak lengths reported by the consecutive-loss probability
const (
	shortLossRun = 3
	longLossRun  = 5
)

// StatisticsResult is the full output of ComputeStatistics. Money fields are dollars.
type StatisticsResult struct {
	TotalTrades      int     `json:"total_trades"`
	Wins             int     `json:"wins"`
	Losses           int     `json:"losses"`
	Breakeven        int     `json:"breakeven"`
	TotalPnL         float64 `json:"total_pnl"`
	TotalPnLCents    int64   `json:"total_pnl_cents"`
	TotalFees        float64 `json:"total_fees"`
	GrossProfit      float64 `json:"gross_profit"`
	GrossLoss        float64 `json:"gross_loss"`
	BestTrade        float64 `json:"best_trade"`
	WorstTrade       float64 `json:"worst_trade"`
	WinRate          float64 `json:"win_rate"`
	AverageWin       float64 `json:"average_win"`
	AverageLoss      float64 `json:"average_loss"`
	RiskReward       Ratio   `json:"risk_reward"`
	ProfitFactor     Ratio   `json:"profit_factor"`
	Expectancy       float64 `json:"expectancy"`
	ExpectancyR      Ratio   `json:"expectancy_r"`
	AverageRMultiple float64 `json:"average_r_multiple"`
	KellyFraction    float64 `json:"kelly_fraction"`
	AdjustedKelly    float64 `json:"adjusted_kelly"`

	TradingDays    int         `json:"trading_days"`
	SharpeRatio    float64     `json:"sharpe_ratio"`
	SortinoRatio   Ratio       `json:"sortino_ratio"`
	MaxDrawdownPct float64     `json:"max_drawdown_pct"`
	MaxDrawdownAbs float64     `json:"max_drawdown_abs"`
	EquityCurve    EquityCurve `json:"equity_curve"`

	Streaks              Streaks `json:"streaks"`
	ThreeLossProbability float64 `json:"three_loss_probability"`
	FiveLossProbability  float64 `json:"five_loss_probability"`

	Breakdowns    Breakdowns        `json:"breakdowns"`
	Duration      DurationAnalysis  `json:"duration"`
	Rolling       []RollingWindow   `json:"rolling"`
	PlaybookByDay PlaybookDayMatrix `json:"playbook_by_day"`
	RiskOfRuin    RiskOfRuinResult  `json:"risk_of_ruin"`

	Warnings []Warning `json:"warnings"`
}

// ComputeStatistics runs the accumulator and derives every metric from it. Apart
// from RiskOfRuin the result depends only on the set of trades, not their order.
func ComputeStatistics(records []*models.TradeRecord, settings Settings) StatisticsResult {
	settings = settings.withDefaults()
	state := Accumulate(records, settings.Location)
	daily := state.DailySeries()
	dailyValues := dailyDollars(daily)
	curve := BuildEquityCurve(daily)
	ddPct, ddAbs := curve.MaxDrawdown()

	result := StatisticsResult{
		TotalTrades:      state.TotalCount,
		Wins:             state.WinCount,
		Losses:           state.LossCount,
		Breakeven:        state.BreakevenCount,
		TotalPnL:         state.TotalPnL.Dollars(),
		TotalPnLCents:    int64(state.TotalPnL),
		TotalFees:        state.TotalFees.Dollars(),
		GrossProfit:      state.WinSum.Dollars(),
		GrossLoss:        state.LossSum.Abs().Dollars(),
		BestTrade:        state.BestTrade.Dollars(),
		WorstTrade:       state.WorstTrade.Dollars(),
		WinRate:          WinRate(state),
		AverageWin:       AverageWin(state),
		AverageLoss:      AverageLoss(state),
		RiskReward:       RiskReward(state),
		ProfitFactor:     ProfitFactor(state),
		Expectancy:       Expectancy(state),
		ExpectancyR:      ExpectancyR(state),
		AverageRMultiple: AverageRMultiple(state),
		KellyFraction:    KellyFraction(state),

		TradingDays:    len(daily),
		SharpeRatio:    SharpeRatio(dailyValues, settings.RiskFreeRate),
		SortinoRatio:   SortinoRatio(dailyValues, settings.RiskFreeRate),
		MaxDrawdownPct: ddPct,
		MaxDrawdownAbs: ddAbs,
		EquityCurve:    curve,

		Streaks:              state.Streaks,
		ThreeLossProbability: ConsecutiveLossProbability(state, shortLossRun),
		FiveLossProbability:  ConsecutiveLossProbability(state, longLossRun),

		Breakdowns:    BuildBreakdowns(state),
		Duration:      AnalyzeDuration(state),
		Rolling:       RollingWindows(daily, RollingPeriods),
		PlaybookByDay: BuildPlaybookDayMatrix(state),
		Warnings:      []Warning{},
	}
	result.AdjustedKelly = result.KellyFraction * settings.KellyMultiplier

	if state.TotalCount < MinTradesForKelly {
		result.Warnings = append(result.Warnings,
			lowSampleWarning("kelly_fraction", state.TotalCount, MinTradesForKelly, "trades"))
	}
	if len(daily) < MinDaysForSharpe {
		result.Warnings = append(result.Warnings,
			lowSampleWarning("sharpe_ratio", len(daily), MinDaysForSharpe, "trading days"),
			lowSampleWarning("sortino_ratio", len(daily), MinDaysForSharpe, "trading days"))
	}

	pnls := make([]float64, len(state.TradePnLs))
	for i, c := range state.TradePnLs {
		pnls[i] = c.Dollars()
	}
	began := time.Now()
	result.RiskOfRuin = RunRiskOfRuin(pnls, RiskOfRuinConfig{
		Runs:           settings.MonteCarloRuns,
		SequenceLength: settings.MonteCarloSequenceLength,
		RuinThreshold:  settings.RuinDrawdownThreshold,
		Random:         settings.Random,
	})
	if settings.ObserveRiskOfRuin != nil {
		settings.ObserveRiskOfRuin(time.Since(began))
	}
	if result.RiskOfRuin.Warning != nil {
		result.Warnings = append(result.Warnings, *result.RiskOfRuin.Warning)
	}

	return result
}
