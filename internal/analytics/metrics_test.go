package analytics

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRatioInfinityRules(t *testing.T) {
	winnersOnly := Accumulate(dailyTrades(100, 50), time.UTC)
	assert.True(t, ProfitFactor(winnersOnly).IsInf())
	assert.True(t, RiskReward(winnersOnly).IsInf())
	assert.True(t, ExpectancyR(winnersOnly).IsInf())

	flat := Accumulate(dailyTrades(0, 0), time.UTC)
	assert.Equal(t, Ratio(0), ProfitFactor(flat))
	assert.Equal(t, Ratio(0), RiskReward(flat))
	assert.Equal(t, Ratio(0), ExpectancyR(flat))

	empty := Accumulate(nil, time.UTC)
	assert.Equal(t, Ratio(0), ProfitFactor(empty))
	assert.Equal(t, 0.0, WinRate(empty))
	assert.Equal(t, 0.0, Expectancy(empty))
}

func TestDerivedMetrics(t *testing.T) {
	state := Accumulate(dailyTrades(200, -100, 100, -50), time.UTC)

	assert.InDelta(t, 50.0, WinRate(state), 1e-9)
	assert.InDelta(t, 150.0, AverageWin(state), 1e-9)
	assert.InDelta(t, 75.0, AverageLoss(state), 1e-9)
	assert.InDelta(t, 2.0, RiskReward(state).Float64(), 1e-9)
	assert.InDelta(t, 2.0, ProfitFactor(state).Float64(), 1e-9)
	assert.InDelta(t, 37.5, Expectancy(state), 1e-9)
	assert.InDelta(t, 0.5, ExpectancyR(state).Float64(), 1e-9)
	assert.InDelta(t, 25.0, ConsecutiveLossProbability(state, 2), 1e-9)
}

func TestKellyFraction(t *testing.T) {
	constantWinner := Accumulate(dailyTrades(10, 10, 10), time.UTC)
	assert.Equal(t, 1.0, KellyFraction(constantWinner))

	constantLoser := Accumulate(dailyTrades(-10, -10), time.UTC)
	assert.Equal(t, 0.0, KellyFraction(constantLoser))

	// mean 1, population variance 100
	mixed := Accumulate(dailyTrades(11, -9), time.UTC)
	assert.InDelta(t, 0.01, KellyFraction(mixed), 1e-12)

	negative := Accumulate(dailyTrades(5, -20), time.UTC)
	assert.Equal(t, 0.0, KellyFraction(negative))
}

func TestSharpeAndSortino(t *testing.T) {
	assert.Equal(t, 0.0, SharpeRatio([]float64{100, 100, 100}, 0))
	assert.Equal(t, 0.0, SharpeRatio(nil, 0))

	daily := []float64{100, -50, 100, -50}
	// mean 25, std 75, sqrt(4) = 2
	assert.InDelta(t, 25.0/75.0*2, SharpeRatio(daily, 0), 1e-12)
	// downside RMS over the two losing days is 50
	assert.InDelta(t, 25.0/50.0*2, SortinoRatio(daily, 0).Float64(), 1e-12)

	assert.True(t, SortinoRatio([]float64{10, 20}, 0).IsInf())
	assert.Equal(t, Ratio(0), SortinoRatio([]float64{0, 0}, 0))
}

func TestAnnualizationCapsAt252(t *testing.T) {
	assert.InDelta(t, math.Sqrt(252), annualization(1000), 1e-12)
	assert.InDelta(t, 3.0, annualization(9), 1e-12)
}

func TestRatioJSON(t *testing.T) {
	data, err := json.Marshal(struct {
		PF Ratio `json:"pf"`
		RR Ratio `json:"rr"`
	}{PF: Ratio(math.Inf(1)), RR: 1.5})
	require.NoError(t, err)
	assert.JSONEq(t, `{"pf":"Infinity","rr":1.5}`, string(data))

	var r Ratio
	require.NoError(t, json.Unmarshal([]byte(`"Infinity"`), &r))
	assert.True(t, r.IsInf())
	assert.Equal(t, "∞", r.String())
}

func TestEquityCurve(t *testing.T) {
	state := Accumulate(dailyTrades(100, -50, 200, -300, 25.55), time.UTC)
	curve := BuildEquityCurve(state.DailySeries())

	require.Len(t, curve, 5)
	assert.Equal(t, state.TotalPnL.Dollars(), curve.Final())
	assert.InDelta(t, -24.45, curve.Final(), 1e-9)

	pct, abs := curve.MaxDrawdown()
	// peak 250, trough -50
	assert.InDelta(t, 300.0, abs, 1e-9)
	assert.InDelta(t, 120.0, pct, 1e-9)

	csv := curve.ToCSV()
	assert.Contains(t, csv, "date,value,drawdown_pct,daily_pnl\n")
	assert.Contains(t, csv, "2024-01-01,100.00,0.00,100.00\n")
}

func TestMaxDrawdownIgnoresNonPositivePeak(t *testing.T) {
	curve := BuildEquityCurve(Accumulate(dailyTrades(-10, -20), time.UTC).DailySeries())
	pct, abs := curve.MaxDrawdown()
	assert.Equal(t, 0.0, pct)
	assert.InDelta(t, 30.0, abs, 1e-9)
}
