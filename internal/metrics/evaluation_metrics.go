package metrics

import "github.com/prometheus/client_golang/prometheus"

// Evaluation counter vectors
var (
	EvaluationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "evaluations_total",
		Help:      "Total number of evaluation walks by resulting status",
	}, []string{"status"})
	EvaluationStatusTransitionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "evaluation_status_transitions_total",
		Help:      "Total number of evaluation status changes",
	}, []string{"from", "to"})
)

// Evaluation gauge vectors
var (
	EvaluationCumPnL = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "evaluation_cum_pnl",
		Help:      "Cumulative P&L of each evaluation profile",
	}, []string{"profile_id"})
	EvaluationDrawdownProgress = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "evaluation_drawdown_progress_percent",
		Help:      "Current drawdown as a percentage of the allowed maximum",
	}, []string{"profile_id"})
	PredictionPassRate = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "prediction_pass_rate_percent",
		Help:      "Projected pass rate of each evaluation profile",
	}, []string{"profile_id"})
)

// RecordEvaluation records an evaluation walk result.
// status should be one of: "active", "passed", "failed"
func RecordEvaluation(profileID, status string, cumPnL, drawdownProgress float64) {
	EvaluationsTotal.WithLabelValues(status).Inc()
	EvaluationCumPnL.WithLabelValues(profileID).Set(cumPnL)
	EvaluationDrawdownProgress.WithLabelValues(profileID).Set(drawdownProgress)
}

// RecordStatusTransition records an evaluation changing status.
func RecordStatusTransition(from, to string) {
	EvaluationStatusTransitionsTotal.WithLabelValues(from, to).Inc()
}

// UpdatePredictionPassRate updates the projected pass rate for a profile.
func UpdatePredictionPassRate(profileID string, passRate float64) {
	PredictionPassRate.WithLabelValues(profileID).Set(passRate)
}
