package analytics

import (
	"math"
	"sort"
)

const tradingDaysPerYear = 252

// WinRate returns winning trades as a percentage of all counted trades
func WinRate(s *AccumulatorState) float64 {
	if s.TotalCount == 0 {
		return 0
	}
	return float64(s.WinCount) / float64(s.TotalCount) * 100
}

// AverageWin returns the mean winning trade in dollars
func AverageWin(s *AccumulatorState) float64 {
	if s.WinCount == 0 {
		return 0
	}
	return s.WinSum.Dollars() / float64(s.WinCount)
}

// AverageLoss returns the mean losing trade in dollars as a positive number
func AverageLoss(s *AccumulatorState) float64 {
	if s.LossCount == 0 {
		return 0
	}
	return s.LossSum.Abs().Dollars() / float64(s.LossCount)
}

// RiskReward is average win over average loss
func RiskReward(s *AccumulatorState) Ratio {
	return safeRatio(AverageWin(s), AverageLoss(s))
}

// ProfitFactor is gross profit over gross loss
func ProfitFactor(s *AccumulatorState) Ratio {
	return safeRatio(s.WinSum.Dollars(), s.LossSum.Abs().Dollars())
}

// Expectancy is the probability-weighted dollar outcome of a trade
func Expectancy(s *AccumulatorState) float64 {
	if s.TotalCount == 0 {
		return 0
	}
	n := float64(s.TotalCount)
	winRate := float64(s.WinCount) / n
	lossRate := float64(s.LossCount) / n
	return winRate*AverageWin(s) - lossRate*AverageLoss(s)
}

// ExpectancyR expresses expectancy in units of the average loss
func ExpectancyR(s *AccumulatorState) Ratio {
	expectancy := Expectancy(s)
	avgLoss := AverageLoss(s)
	if avgLoss == 0 {
		return safeRatio(expectancy, 0)
	}
	return Ratio(expectancy / avgLoss)
}

// AverageRMultiple is the mean R over trades that recorded one
func AverageRMultiple(s *AccumulatorState) float64 {
	if s.RCount == 0 {
		return 0
	}
	return s.RSum / float64(s.RCount)
}

// KellyFraction is the continuous approximation mean/variance of per-trade P&L,
// clamped to [0, 1]. The values are sorted first so the float sums do not depend
// on input order.
func KellyFraction(s *AccumulatorState) float64 {
	if len(s.TradePnLs) == 0 {
		return 0
	}
	pnls := make([]float64, len(s.TradePnLs))
	for i, c := range s.TradePnLs {
		pnls[i] = c.Dollars()
	}
	sort.Float64s(pnls)
	mean := s.TotalPnL.Dollars() / float64(len(pnls))
	v := variance(pnls)
	if v == 0 {
		if mean > 0 {
			return 1
		}
		return 0
	}
	return clamp(mean/v, 0, 1)
}

// SharpeRatio annualizes daily excess return over its volatility by
// sqrt(min(252, days)). Zero volatility yields 0.
func SharpeRatio(daily []float64, riskFreeRate float64) float64 {
	if len(daily) == 0 {
		return 0
	}
	std := stddev(daily)
	if std == 0 {
		return 0
	}
	excess := average(daily) - riskFreeRate/tradingDaysPerYear
	return excess / std * annualization(len(daily))
}

// SortinoRatio is SharpeRatio with only days below the daily risk-free rate in
// the denominator. No downside days yields +Inf for a positive excess.
func SortinoRatio(daily []float64, riskFreeRate float64) Ratio {
	if len(daily) == 0 {
		return 0
	}
	target := riskFreeRate / tradingDaysPerYear
	excess := average(daily) - target
	dd := downsideDeviation(daily, target)
	if dd == 0 {
		return safeRatio(excess, 0)
	}
	return Ratio(excess / dd * annualization(len(daily)))
}

func annualization(days int) float64 {
	return math.Sqrt(math.Min(tradingDaysPerYear, float64(days)))
}

// ConsecutiveLossProbability returns lossRate^n as a percentage. It assumes
// trades are independent; it is not an empirical streak frequency.
func ConsecutiveLossProbability(s *AccumulatorState, n int) float64 {
	if s.TotalCount == 0 {
		return 0
	}
	lossRate := float64(s.LossCount) / float64(s.TotalCount)
	return math.Pow(lossRate, float64(n)) * 100
}

func dailyDollars(daily []DailyPnL) []float64 {
	out := make([]float64, len(daily))
	for i, d := range daily {
		out[i] = d.PnL.Dollars()
	}
	return out
}
