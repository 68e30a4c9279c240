package analytics

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/edge-journal/internal/models"
)

func TestAccumulateExactCentsLargeDataset(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	const n = 100_000

	records := make([]*models.TradeRecord, n)
	var want int64
	for i := 0; i < n; i++ {
		// values with two decimals, e.g. -512.37
		cents := rng.Int63n(200_000) - 100_000
		pnl := float64(cents) / 100
		want += cents
		records[i] = newTrade(pnl, baseDate.Add(time.Duration(i)*time.Minute))
	}

	state := Accumulate(records, time.UTC)
	assert.Equal(t, models.Cents(want), state.TotalPnL)
	assert.Equal(t, n, state.TotalCount)

	rng.Shuffle(len(records), func(i, j int) { records[i], records[j] = records[j], records[i] })
	shuffled := Accumulate(records, time.UTC)
	assert.Equal(t, state.TotalPnL, shuffled.TotalPnL)
	assert.Equal(t, state.Daily, shuffled.Daily)

	var sum models.Cents
	for _, d := range state.DailySeries() {
		sum += d.PnL
	}
	assert.Equal(t, state.TotalPnL, sum)
}

func TestAccumulateCountPartition(t *testing.T) {
	records := dailyTrades(100, -50, 0, 25.5, -0.01, 0, 10)
	state := Accumulate(records, time.UTC)

	assert.Equal(t, 3, state.WinCount)
	assert.Equal(t, 2, state.LossCount)
	assert.Equal(t, 2, state.BreakevenCount)
	assert.Equal(t, state.TotalCount, state.WinCount+state.LossCount+state.BreakevenCount)
	assert.Equal(t, models.Cents(13550), state.WinSum)
	assert.Equal(t, models.Cents(-5001), state.LossSum)
	assert.Equal(t, models.Cents(10000), state.BestTrade)
	assert.Equal(t, models.Cents(-5000), state.WorstTrade)
}

func TestAccumulateSkipsMissingAndNonFinitePnL(t *testing.T) {
	records := dailyTrades(100, 50)
	records = append(records,
		&models.TradeRecord{ID: uuid.New(), Date: baseDate},
		newTrade(0, baseDate),
		nil,
	)
	records[3].PnL = nil
	records = append(records, newTrade(0, baseDate))
	records[len(records)-1].PnL = floatPtr(math.NaN())

	state := Accumulate(records, time.UTC)
	assert.Equal(t, 2, state.TotalCount)
	assert.Equal(t, models.Cents(15000), state.TotalPnL)
}

func TestAccumulateUndatedTradesOnlyCountTowardsTotals(t *testing.T) {
	records := dailyTrades(100)
	undated := newTrade(-40, time.Time{})
	records = append(records, undated)

	state := Accumulate(records, time.UTC)
	assert.Equal(t, 2, state.TotalCount)
	assert.Equal(t, models.Cents(6000), state.TotalPnL)
	require.Len(t, state.Daily, 1)
	assert.Equal(t, models.Cents(10000), state.Daily["2024-01-01"])

	dayTotal := 0
	for _, b := range state.DayOfWeek {
		dayTotal += b.Count
	}
	assert.Equal(t, 1, dayTotal)
	assert.Equal(t, 2, state.Strategy["breakout"].Count)
}

func TestAccumulateBucketKeys(t *testing.T) {
	blank := newTrade(10, baseDate)
	blank.Symbol = "  "
	blank.Playbook = ""
	blank.Emotion = ""
	blank.AssetClass = ""
	blank.FollowedRules = false

	state := Accumulate([]*models.TradeRecord{blank, newTrade(20, baseDate)}, time.UTC)

	assert.Contains(t, state.Symbol, unknownSymbolKey)
	assert.Contains(t, state.Symbol, "ES")
	assert.Contains(t, state.Strategy, untaggedKey)
	assert.Contains(t, state.Emotion, untaggedKey)
	assert.Contains(t, state.Emotion, "calm")
	assert.Contains(t, state.AssetClass, otherAssetKey)
	assert.Contains(t, state.AssetClass, "futures")
	assert.Equal(t, 1, state.Rules[brokeRulesKey].Count)
	assert.Equal(t, 1, state.Rules[followedRulesKey].Count)
}

func TestAccumulateDayAndHourBuckets(t *testing.T) {
	monday := time.Date(2024, time.January, 1, 9, 15, 0, 0, time.UTC)
	records := []*models.TradeRecord{
		newTrade(10, monday),
		newTrade(-5, monday.Add(2*time.Hour)),
		newTrade(7, monday.AddDate(0, 0, 1)),
	}
	state := Accumulate(records, time.UTC)

	assert.Equal(t, 2, state.DayOfWeek[time.Monday].Count)
	assert.Equal(t, 1, state.DayOfWeek[time.Tuesday].Count)
	assert.Equal(t, 2, state.HourOfDay[9].Count)
	assert.Equal(t, 1, state.HourOfDay[11].Count)
	assert.Equal(t, 2, state.PlaybookDay["breakout"][time.Monday].Count)
}

func TestAccumulateUsesLocationForDayKeys(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// 02:00 UTC on Jan 2 is still Jan 1 in New York
	late := newTrade(10, time.Date(2024, time.January, 2, 2, 0, 0, 0, time.UTC))
	state := Accumulate([]*models.TradeRecord{late}, ny)
	assert.Contains(t, state.Daily, "2024-01-01")
}

func TestDurationBucket(t *testing.T) {
	tests := []struct {
		minutes float64
		want    string
	}{
		{0, "<5m"},
		{4.9, "<5m"},
		{5, "5-15m"},
		{15, "15-30m"},
		{45, "30-60m"},
		{60, "1-4h"},
		{239, "1-4h"},
		{240, "4h-1d"},
		{1440, "1d+"},
		{10_000, "1d+"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DurationLabels[durationBucket(tt.minutes)], "minutes=%v", tt.minutes)
	}
}

func TestStreaks(t *testing.T) {
	records := dailyTrades(10, 20, 30, -5, 0, -1, -2, -3, -4, 5, 6)
	// input order must not matter
	records[0], records[7] = records[7], records[0]

	state := Accumulate(records, time.UTC)
	assert.Equal(t, 3, state.Streaks.LongestWin)
	assert.Equal(t, 4, state.Streaks.LongestLoss)
	assert.Equal(t, 2, state.Streaks.Current)

	losing := Accumulate(dailyTrades(5, -1, -1), time.UTC)
	assert.Equal(t, -2, losing.Streaks.Current)

	flat := Accumulate(dailyTrades(5, 0), time.UTC)
	assert.Equal(t, 0, flat.Streaks.Current)
}

func TestDailyTotals(t *testing.T) {
	records := []*models.TradeRecord{
		newTrade(10, baseDate.AddDate(0, 0, 2)),
		newTrade(-3, baseDate),
		newTrade(5, baseDate.Add(time.Hour)),
	}
	daily := DailyTotals(records, time.UTC)
	require.Len(t, daily, 2)
	assert.Equal(t, "2024-01-01", daily[0].Key())
	assert.Equal(t, models.Cents(200), daily[0].PnL)
	assert.Equal(t, "2024-01-03", daily[1].Key())
	assert.Equal(t, models.Cents(1000), daily[1].PnL)
}
