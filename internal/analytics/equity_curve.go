package analytics

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"

	"github.com/yourusername/edge-journal/internal/models"
)

// EquityPoint represents a day on the cumulative P&L curve
type EquityPoint struct {
	Time        time.Time `json:"time"`
	Value       float64   `json:"value"`
	DrawdownPct float64   `json:"drawdown_pct"`
	DailyPnL    float64   `json:"daily_pnl"`
}

// EquityCurve represents a time-series of equity points
type EquityCurve []EquityPoint

// BuildEquityCurve accumulates daily P&L in chronological order. The running sum is
// kept in cents so the last point equals the total exactly.
func BuildEquityCurve(daily []DailyPnL) EquityCurve {
	curve := make(EquityCurve, 0, len(daily))
	var cum, peak models.Cents
	for _, day := range daily {
		cum += day.PnL
		if cum > peak {
			peak = cum
		}
		curve = append(curve, EquityPoint{
			Time:        day.Date,
			Value:       cum.Dollars(),
			DrawdownPct: drawdownPct(peak, cum),
			DailyPnL:    day.PnL.Dollars(),
		})
	}
	return curve
}

func drawdownPct(peak, value models.Cents) float64 {
	if peak <= 0 || value >= peak {
		return 0
	}
	return float64(peak-value) / float64(peak) * 100
}

// MaxDrawdown returns the largest peak-to-trough decline as a percentage of a
// positive peak, and the largest absolute decline in dollars. The walk starts
// from a zero peak.
func (e EquityCurve) MaxDrawdown() (pct float64, abs float64) {
	peak := 0.0
	for _, p := range e {
		if p.Value > peak {
			peak = p.Value
		}
		if decline := peak - p.Value; decline > abs {
			abs = decline
		}
		if peak <= 0 {
			continue
		}
		if dd := (peak - p.Value) / peak * 100; dd > pct {
			pct = dd
		}
	}
	return pct, abs
}

// Final returns the last cumulative value
func (e EquityCurve) Final() float64 {
	if len(e) == 0 {
		return 0
	}
	return e[len(e)-1].Value
}

// ToCSV exports equity curve to CSV string
func (e EquityCurve) ToCSV() string {
	var buf bytes.Buffer
	buf.WriteString("date,value,drawdown_pct,daily_pnl\n")
	for _, point := range e {
		buf.WriteString(point.Time.Format(dayKeyLayout))
		buf.WriteString(",")
		buf.WriteString(formatFloat(point.Value))
		buf.WriteString(",")
		buf.WriteString(formatFloat(point.DrawdownPct))
		buf.WriteString(",")
		buf.WriteString(formatFloat(point.DailyPnL))
		buf.WriteString("\n")
	}
	return buf.String()
}

// ToJSON exports equity curve to JSON string
func (e EquityCurve) ToJSON() string {
	data, _ := json.Marshal(e)
	return string(data)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
