package analytics

import (
	"sort"
	"time"

	"github.com/yourusername/edge-journal/internal/models"
)

// Hold-time bucket boundaries in minutes
var durationBoundaries = [...]float64{5, 15, 30, 60, 240, 1440}

// DurationLabels names the hold-time buckets
var DurationLabels = [...]string{"<5m", "5-15m", "15-30m", "30-60m", "1-4h", "4h-1d", "1d+"}

const numDurationBuckets = len(DurationLabels)

// DailyPnL is one calendar day of realized P&L
type DailyPnL struct {
	Date time.Time    `json:"date"`
	PnL  models.Cents `json:"pnl_cents"`
}

// Key returns the YYYY-MM-DD form of the day
func (d DailyPnL) Key() string {
	return d.Date.Format(dayKeyLayout)
}

type holdSample struct {
	minutes float64
	pnl     float64
}

// AccumulatorState holds everything gathered in the single pass over trades
type AccumulatorState struct {
	TotalPnL       models.Cents
	TotalFees      models.Cents
	WinSum         models.Cents
	LossSum        models.Cents
	WinCount       int
	LossCount      int
	BreakevenCount int
	TotalCount     int
	BestTrade      models.Cents
	WorstTrade     models.Cents
	RSum           float64
	RCount         int

	DayOfWeek   [7]Bucket
	HourOfDay   [24]Bucket
	Duration    [numDurationBuckets]Bucket
	Strategy    bucketMap
	Emotion     bucketMap
	Symbol      bucketMap
	AssetClass  bucketMap
	Side        bucketMap
	Rules       bucketMap
	PlaybookDay map[string]*[7]Bucket

	// Daily is keyed by YYYY-MM-DD in the accumulation location
	Daily     map[string]models.Cents
	TradePnLs []models.Cents
	Streaks   Streaks

	holds []holdSample
	loc   *time.Location
}

func newAccumulatorState(capacity int, loc *time.Location) *AccumulatorState {
	return &AccumulatorState{
		Strategy:    bucketMap{},
		Emotion:     bucketMap{},
		Symbol:      bucketMap{},
		AssetClass:  bucketMap{},
		Side:        bucketMap{},
		Rules:       bucketMap{},
		PlaybookDay: map[string]*[7]Bucket{},
		Daily:       map[string]models.Cents{},
		TradePnLs:   make([]models.Cents, 0, capacity),
		loc:         loc,
	}
}

// Accumulate runs the single pass over trades. The result does not depend on the
// order of records, except for the order of TradePnLs.
func Accumulate(records []*models.TradeRecord, loc *time.Location) *AccumulatorState {
	if loc == nil {
		loc = time.UTC
	}
	trades := normalize(records, loc)
	state := newAccumulatorState(len(trades), loc)
	for _, t := range trades {
		state.add(t)
	}
	state.Streaks = computeStreaks(trades)
	return state
}

func (s *AccumulatorState) add(t trade) {
	if s.TotalCount == 0 || t.pnl > s.BestTrade {
		s.BestTrade = t.pnl
	}
	if s.TotalCount == 0 || t.pnl < s.WorstTrade {
		s.WorstTrade = t.pnl
	}
	s.TotalCount++
	s.TotalPnL += t.pnl
	s.TotalFees += t.fees
	s.TradePnLs = append(s.TradePnLs, t.pnl)

	switch {
	case t.pnl > 0:
		s.WinCount++
		s.WinSum += t.pnl
	case t.pnl < 0:
		s.LossCount++
		s.LossSum += t.pnl
	default:
		s.BreakevenCount++
	}
	if t.hasR {
		s.RSum += t.r
		s.RCount++
	}

	s.Strategy.add(t.playbook, t)
	s.Emotion.add(t.emotion, t)
	s.Symbol.add(t.symbol, t)
	s.AssetClass.add(t.assetClass, t)
	s.Side.add(t.side, t)
	s.Rules.add(t.rules, t)

	if !t.hasDate {
		return
	}
	weekday := int(t.date.Weekday())
	s.DayOfWeek[weekday].add(t)
	s.HourOfDay[t.date.Hour()].add(t)
	s.Daily[t.dayKey] += t.pnl

	row, ok := s.PlaybookDay[t.playbook]
	if !ok {
		row = &[7]Bucket{}
		s.PlaybookDay[t.playbook] = row
	}
	row[weekday].add(t)

	if t.hasHold {
		s.Duration[durationBucket(t.holdMins)].add(t)
		s.holds = append(s.holds, holdSample{minutes: t.holdMins, pnl: t.pnl.Dollars()})
	}
}

func durationBucket(minutes float64) int {
	for i, limit := range durationBoundaries {
		if minutes < limit {
			return i
		}
	}
	return numDurationBuckets - 1
}

// DailySeries returns the daily P&L in chronological order
func (s *AccumulatorState) DailySeries() []DailyPnL {
	return sortedDaily(s.Daily, s.loc)
}

// DailyTotals aggregates trades into chronological daily P&L
func DailyTotals(records []*models.TradeRecord, loc *time.Location) []DailyPnL {
	if loc == nil {
		loc = time.UTC
	}
	daily := map[string]models.Cents{}
	for _, t := range normalize(records, loc) {
		if t.hasDate {
			daily[t.dayKey] += t.pnl
		}
	}
	return sortedDaily(daily, loc)
}

func sortedDaily(daily map[string]models.Cents, loc *time.Location) []DailyPnL {
	if loc == nil {
		loc = time.UTC
	}
	keys := make([]string, 0, len(daily))
	for key := range daily {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	out := make([]DailyPnL, 0, len(keys))
	for _, key := range keys {
		day, err := time.ParseInLocation(dayKeyLayout, key, loc)
		if err != nil {
			continue
		}
		out = append(out, DailyPnL{Date: day, PnL: daily[key]})
	}
	return out
}
