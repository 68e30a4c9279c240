package analytics

import (
	"fmt"
	"time"

	"github.com/yourusername/edge-journal/internal/config"
)

// Settings configures ComputeStatistics
type Settings struct {
	RiskFreeRate             float64
	MonteCarloRuns           int
	MonteCarloSequenceLength int
	RuinDrawdownThreshold    float64
	KellyMultiplier          float64
	// Seed feeds the default random source; 0 seeds from the clock
	Seed     int64
	Location *time.Location
	// Random overrides the seeded source when set
	Random RandomSource
	// ObserveRiskOfRuin, when set, receives the wall time of the risk-of-ruin simulation
	ObserveRiskOfRuin func(elapsed time.Duration)
}

// DefaultSettings returns the engine defaults
func DefaultSettings() Settings {
	return Settings{
		MonteCarloRuns:           DefaultMonteCarloRuns,
		MonteCarloSequenceLength: DefaultMonteCarloSequenceLength,
		RuinDrawdownThreshold:    DefaultRuinDrawdownThreshold,
		KellyMultiplier:          1,
		Location:                 time.UTC,
	}
}

// withDefaults fills zero fields with their defaults
func (s Settings) withDefaults() Settings {
	d := DefaultSettings()
	if s.MonteCarloRuns <= 0 {
		s.MonteCarloRuns = d.MonteCarloRuns
	}
	if s.MonteCarloSequenceLength <= 0 {
		s.MonteCarloSequenceLength = d.MonteCarloSequenceLength
	}
	if s.RuinDrawdownThreshold <= 0 {
		s.RuinDrawdownThreshold = d.RuinDrawdownThreshold
	}
	if s.KellyMultiplier <= 0 {
		s.KellyMultiplier = d.KellyMultiplier
	}
	if s.Location == nil {
		s.Location = d.Location
	}
	if s.Random == nil {
		s.Random = NewRandomSource(s.Seed)
	}
	return s
}

// Validate validates settings supplied from outside the engine
func (s Settings) Validate() error {
	if s.RiskFreeRate < 0 || s.RiskFreeRate > 1 {
		return fmt.Errorf("risk free rate must be between 0 and 1")
	}
	if s.MonteCarloRuns < 0 || s.MonteCarloSequenceLength < 0 {
		return fmt.Errorf("monte carlo runs and sequence length cannot be negative")
	}
	if s.RuinDrawdownThreshold < 0 || s.RuinDrawdownThreshold > 1 {
		return fmt.Errorf("ruin drawdown threshold must be between 0 and 1")
	}
	if s.KellyMultiplier < 0 || s.KellyMultiplier > 1 {
		return fmt.Errorf("kelly multiplier must be between 0 and 1")
	}
	return nil
}

// SettingsFromConfig converts app config to engine settings
func SettingsFromConfig(cfg *config.AnalyticsConfig) (Settings, error) {
	if cfg == nil {
		return Settings{}, fmt.Errorf("analytics config is required")
	}
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return Settings{}, fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
	}

	s := Settings{
		RiskFreeRate:             cfg.RiskFreeRate,
		MonteCarloRuns:           cfg.MonteCarloRuns,
		MonteCarloSequenceLength: cfg.MonteCarloSequenceLength,
		RuinDrawdownThreshold:    cfg.RuinDrawdownThreshold,
		KellyMultiplier:          cfg.KellyMultiplier,
		Seed:                     cfg.Seed,
		Location:                 loc,
	}
	return s, s.Validate()
}
