// Package metrics provides centralized Prometheus metrics registry for the journal analytics.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "edge_journal"

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	StatisticsComputedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "statistics_computed_total",
		Help:      "Total number of statistics computations by cache outcome",
	}, []string{"cache"})
	TradesProcessedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "trades_processed_total",
		Help:      "Total number of trades fed through the accumulator",
	})
	LowSampleWarningsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "low_sample_warnings_total",
		Help:      "Total number of low-sample warnings by metric",
	}, []string{"metric"})
	SnapshotsSavedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "snapshots_saved_total",
		Help:      "Total number of persisted statistics snapshots",
	})
)

// Histogram metrics
var (
	StatisticsDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "statistics_duration_seconds",
		Help:      "Duration of statistics computations in seconds",
		Buckets:   prometheus.DefBuckets,
	})
	MonteCarloDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "monte_carlo_duration_seconds",
		Help:      "Duration of Monte Carlo simulations in seconds by kind",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
	}, []string{"kind"})
	RiskOfRuin = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "risk_of_ruin_percent",
		Help:      "Simulated risk of ruin percentages",
		Buckets:   []float64{1, 5, 10, 25, 50, 75, 100},
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(StatisticsComputedTotal)
		registry.MustRegister(TradesProcessedTotal)
		registry.MustRegister(LowSampleWarningsTotal)
		registry.MustRegister(SnapshotsSavedTotal)

		registry.MustRegister(StatisticsDuration)
		registry.MustRegister(MonteCarloDuration)
		registry.MustRegister(RiskOfRuin)

		registry.MustRegister(EvaluationsTotal)
		registry.MustRegister(EvaluationStatusTransitionsTotal)
		registry.MustRegister(EvaluationCumPnL)
		registry.MustRegister(EvaluationDrawdownProgress)
		registry.MustRegister(PredictionPassRate)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	return InitRegistry()
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordStatistics records a statistics computation.
func RecordStatistics(trades int, durationSeconds float64, cacheHit bool) {
	outcome := "miss"
	if cacheHit {
		outcome = "hit"
	}
	StatisticsComputedTotal.WithLabelValues(outcome).Inc()
	if cacheHit {
		return
	}
	TradesProcessedTotal.Add(float64(trades))
	StatisticsDuration.Observe(durationSeconds)
}

// RecordLowSampleWarning records a metric flagged as low confidence.
func RecordLowSampleWarning(metric string) {
	LowSampleWarningsTotal.WithLabelValues(metric).Inc()
}

// RecordRiskOfRuin records a risk-of-ruin result.
func RecordRiskOfRuin(percent float64) {
	RiskOfRuin.Observe(percent)
}

// Monte Carlo simulation kinds
const (
	KindRiskOfRuin = "risk_of_ruin"
	KindPrediction = "prediction"
)

// RecordMonteCarloDuration records a simulation run; kind is KindRiskOfRuin or KindPrediction.
func RecordMonteCarloDuration(kind string, durationSeconds float64) {
	MonteCarloDuration.WithLabelValues(kind).Observe(durationSeconds)
}

// RecordSnapshotSaved records a persisted snapshot.
func RecordSnapshotSaved() {
	SnapshotsSavedTotal.Inc()
}
