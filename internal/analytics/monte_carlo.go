package analytics

import (
	"math"

	"github.com/yourusername/edge-journal/internal/models"
)

// Monte Carlo defaults
const (
	DefaultMonteCarloRuns           = 2000
	DefaultMonteCarloSequenceLength = 100
	DefaultRuinDrawdownThreshold    = 0.30

	minStartingCapital      = 1000.0
	startingCapitalLossMult = 20.0
)

// Confidence grades how much history backs a simulation
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// RiskOfRuinConfig configures the risk-of-ruin simulation
type RiskOfRuinConfig struct {
	Runs           int
	SequenceLength int
	// RuinThreshold is the peak-to-trough fraction that counts as ruin
	RuinThreshold float64
	Random        RandomSource
}

// RiskOfRuinResult represents the risk-of-ruin outcome
type RiskOfRuinResult struct {
	Runs            int     `json:"runs"`
	SequenceLength  int     `json:"sequence_length"`
	RuinThreshold   float64 `json:"ruin_threshold"`
	SampleSize      int     `json:"sample_size"`
	StartingCapital float64 `json:"starting_capital"`
	RuinedRuns      int     `json:"ruined_runs"`
	// RiskOfRuin is the percentage of runs that hit ruin
	RiskOfRuin   float64                `json:"risk_of_ruin"`
	EndingEquity PercentileDistribution `json:"ending_equity"`
	Confidence   Confidence             `json:"confidence"`
	Warning      *Warning               `json:"warning,omitempty"`
}

// StartingCapital is the capital proxy used when no account size is known:
// max(1000, |total P&L| + 20 x average loss). It is a heuristic, not a measured
// account balance.
func StartingCapital(pnls []float64) float64 {
	total := 0.0
	lossSum := 0.0
	losses := 0
	for _, p := range pnls {
		total += p
		if p < 0 {
			lossSum += -p
			losses++
		}
	}
	avgLoss := 0.0
	if losses > 0 {
		avgLoss = lossSum / float64(losses)
	}
	return math.Max(minStartingCapital, math.Abs(total)+avgLoss*startingCapitalLossMult)
}

// RunRiskOfRuin bootstraps per-trade P&L into sequences and counts the runs that
// are ruined, either by equity reaching zero or by the drawdown from the running
// peak reaching the threshold. A ruined run stops at the ruining trade.
func RunRiskOfRuin(pnls []float64, cfg RiskOfRuinConfig) RiskOfRuinResult {
	if cfg.Runs <= 0 {
		cfg.Runs = DefaultMonteCarloRuns
	}
	if cfg.SequenceLength <= 0 {
		cfg.SequenceLength = DefaultMonteCarloSequenceLength
	}
	if cfg.RuinThreshold <= 0 {
		cfg.RuinThreshold = DefaultRuinDrawdownThreshold
	}
	if cfg.Random == nil {
		cfg.Random = NewRandomSource(0)
	}

	result := RiskOfRuinResult{
		Runs:           cfg.Runs,
		SequenceLength: cfg.SequenceLength,
		RuinThreshold:  cfg.RuinThreshold,
		SampleSize:     len(pnls),
		Confidence:     sampleConfidence(len(pnls)),
	}
	if len(pnls) < MinTradesForMonteCarlo {
		w := lowSampleWarning("risk_of_ruin", len(pnls), MinTradesForMonteCarlo, "trades")
		result.Warning = &w
	}
	if len(pnls) == 0 {
		return result
	}

	samples := make([]models.Cents, len(pnls))
	for i, p := range pnls {
		samples[i] = models.CentsFromDollars(p)
	}
	start := models.CentsFromDollars(StartingCapital(pnls))
	result.StartingCapital = start.Dollars()

	endings := make([]float64, cfg.Runs)
	for run := 0; run < cfg.Runs; run++ {
		equity, peak := start, start
		for i := 0; i < cfg.SequenceLength; i++ {
			equity += samples[cfg.Random.Intn(len(samples))]
			if equity > peak {
				peak = equity
			}
			if equity <= 0 || float64(peak-equity)/float64(peak) >= cfg.RuinThreshold {
				result.RuinedRuns++
				break
			}
		}
		endings[run] = equity.Dollars()
	}

	result.RiskOfRuin = float64(result.RuinedRuns) / float64(cfg.Runs) * 100
	result.EndingEquity = Percentiles(endings)
	return result
}

func sampleConfidence(n int) Confidence {
	switch {
	case n >= 100:
		return ConfidenceHigh
	case n >= MinTradesForMonteCarlo:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}
