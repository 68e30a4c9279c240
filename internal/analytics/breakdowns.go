package analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/yourusername/edge-journal/internal/models"
)

// RollingPeriods are the trailing windows, in trading days, reported by default
var RollingPeriods = []int{7, 30, 90}

const minDurationSamples = 5

// Breakdowns groups the per-dimension bucket summaries
type Breakdowns struct {
	DayOfWeek     []BucketSummary `json:"day_of_week"`
	HourOfDay     []BucketSummary `json:"hour_of_day"`
	Strategy      []BucketSummary `json:"strategy"`
	Emotion       []BucketSummary `json:"emotion"`
	Symbol        []BucketSummary `json:"symbol"`
	AssetClass    []BucketSummary `json:"asset_class"`
	Side          []BucketSummary `json:"side"`
	RuleAdherence []BucketSummary `json:"rule_adherence"`
}

// BuildBreakdowns summarises every bucket dimension of the accumulator
func BuildBreakdowns(s *AccumulatorState) Breakdowns {
	b := Breakdowns{
		DayOfWeek:     make([]BucketSummary, 0, len(s.DayOfWeek)),
		HourOfDay:     make([]BucketSummary, 0, len(s.HourOfDay)),
		Strategy:      s.Strategy.summaries(),
		Emotion:       s.Emotion.summaries(),
		Symbol:        s.Symbol.summaries(),
		AssetClass:    s.AssetClass.summaries(),
		Side:          s.Side.summaries(),
		RuleAdherence: s.Rules.summaries(),
	}
	for i := range s.DayOfWeek {
		b.DayOfWeek = append(b.DayOfWeek, s.DayOfWeek[i].summary(time.Weekday(i).String()))
	}
	for i := range s.HourOfDay {
		b.HourOfDay = append(b.HourOfDay, s.HourOfDay[i].summary(fmt.Sprintf("%02d", i)))
	}
	return b
}

// DurationAnalysis describes how hold time relates to outcome
type DurationAnalysis struct {
	Trades        int             `json:"trades"`
	MeanMinutes   float64         `json:"mean_minutes"`
	MedianMinutes float64         `json:"median_minutes"`
	Buckets       []BucketSummary `json:"buckets"`
	// Correlation is Pearson(hold minutes, pnl); 0 below five samples
	Correlation float64 `json:"correlation"`
}

// AnalyzeDuration summarises hold times of trades with both open and close dates
func AnalyzeDuration(s *AccumulatorState) DurationAnalysis {
	holds := append([]holdSample{}, s.holds...)
	sort.Slice(holds, func(i, j int) bool {
		if holds[i].minutes != holds[j].minutes {
			return holds[i].minutes < holds[j].minutes
		}
		return holds[i].pnl < holds[j].pnl
	})
	minutes := make([]float64, len(holds))
	pnls := make([]float64, len(holds))
	for i, h := range holds {
		minutes[i] = h.minutes
		pnls[i] = h.pnl
	}
	a := DurationAnalysis{
		Trades:        len(s.holds),
		MeanMinutes:   average(minutes),
		MedianMinutes: median(minutes),
		Buckets:       make([]BucketSummary, 0, numDurationBuckets),
	}
	for i := range s.Duration {
		a.Buckets = append(a.Buckets, s.Duration[i].summary(DurationLabels[i]))
	}
	if len(s.holds) >= minDurationSamples {
		a.Correlation = pearson(minutes, pnls)
	}
	return a
}

// RollingWindow summarises the most recent trading days
type RollingWindow struct {
	Period     int     `json:"period"`
	Days       int     `json:"days"`
	PnL        float64 `json:"pnl"`
	WinRate    float64 `json:"win_rate"`
	Expectancy float64 `json:"expectancy"`
	Sharpe     float64 `json:"sharpe"`
}

// RollingWindows computes one window per period over the last N daily entries
func RollingWindows(daily []DailyPnL, periods []int) []RollingWindow {
	out := make([]RollingWindow, 0, len(periods))
	for _, period := range periods {
		out = append(out, rollingWindow(daily, period))
	}
	return out
}

func rollingWindow(daily []DailyPnL, period int) RollingWindow {
	w := RollingWindow{Period: period}
	if period <= 0 {
		return w
	}
	window := daily
	if len(window) > period {
		window = window[len(window)-period:]
	}
	w.Days = len(window)
	if len(window) < 2 {
		return w
	}

	var total, winSum, lossSum models.Cents
	wins, losses := 0, 0
	for _, d := range window {
		total += d.PnL
		switch {
		case d.PnL > 0:
			wins++
			winSum += d.PnL
		case d.PnL < 0:
			losses++
			lossSum += d.PnL
		}
	}
	n := float64(len(window))
	w.PnL = total.Dollars()
	w.WinRate = float64(wins) / n * 100
	avgWin, avgLoss := 0.0, 0.0
	if wins > 0 {
		avgWin = winSum.Dollars() / float64(wins)
	}
	if losses > 0 {
		avgLoss = lossSum.Abs().Dollars() / float64(losses)
	}
	w.Expectancy = float64(wins)/n*avgWin - float64(losses)/n*avgLoss

	values := dailyDollars(window)
	if std := stddev(values); std > 0 {
		w.Sharpe = average(values) / std * annualization(len(values))
	}
	return w
}

// MatrixCell is one playbook/weekday combination
type MatrixCell struct {
	PnL     float64 `json:"pnl"`
	Count   int     `json:"count"`
	Wins    int     `json:"wins"`
	WinRate float64 `json:"win_rate"`
}

// PlaybookDayMatrix maps playbook -> weekday name -> cell
type PlaybookDayMatrix map[string]map[string]MatrixCell

// BuildPlaybookDayMatrix lists the weekdays each playbook was traded on
func BuildPlaybookDayMatrix(s *AccumulatorState) PlaybookDayMatrix {
	matrix := make(PlaybookDayMatrix, len(s.PlaybookDay))
	for playbook, row := range s.PlaybookDay {
		days := map[string]MatrixCell{}
		for i := range row {
			b := &row[i]
			if b.Count == 0 {
				continue
			}
			days[time.Weekday(i).String()] = MatrixCell{
				PnL:     b.PnL.Dollars(),
				Count:   b.Count,
				Wins:    b.Wins,
				WinRate: b.WinRate(),
			}
		}
		matrix[playbook] = days
	}
	return matrix
}
