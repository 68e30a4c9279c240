package analytics

import "fmt"

// Minimum samples before a metric is considered meaningful
const (
	MinTradesForKelly      = 10
	MinDaysForSharpe       = 20
	MinTradesForMonteCarlo = 30
)

// Warning flags a metric computed from too few samples
type Warning struct {
	Metric  string `json:"metric"`
	Message string `json:"message"`
}

func lowSampleWarning(metric string, have, want int, unit string) Warning {
	return Warning{
		Metric:  metric,
		Message: fmt.Sprintf("only %d %s available, at least %d recommended; treat as low confidence", have, unit, want),
	}
}
