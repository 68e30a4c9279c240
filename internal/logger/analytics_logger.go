package logger

import (
	"github.com/sirupsen/logrus"
)

// AnalyticsLogger provides dedicated logging for statistics computations.
type AnalyticsLogger struct {
	*logrus.Entry
}

// NewAnalyticsLogger creates a new analytics logger.
func NewAnalyticsLogger(baseLogger *logrus.Logger) *AnalyticsLogger {
	return &AnalyticsLogger{
		Entry: baseLogger.WithField("component", "analytics"),
	}
}

// LogStatisticsComputed logs a completed statistics run.
func (al *AnalyticsLogger) LogStatisticsComputed(accountID string, trades int, totalPnL, winRate float64, durationMs float64, cacheHit bool) {
	al.WithFields(logrus.Fields{
		"account_id":  accountID,
		"trades":      trades,
		"total_pnl":   totalPnL,
		"win_rate":    winRate,
		"duration_ms": durationMs,
		"cache_hit":   cacheHit,
	}).Info("Statistics computed")
}

// LogLowSample logs a metric computed from too few samples.
func (al *AnalyticsLogger) LogLowSample(accountID, metric, message string) {
	al.WithFields(logrus.Fields{
		"account_id": accountID,
		"metric":     metric,
	}).Debug(message)
}

// LogRiskOfRuin logs the outcome of a risk-of-ruin simulation.
func (al *AnalyticsLogger) LogRiskOfRuin(accountID string, riskOfRuin, startingCapital float64, runs int, confidence string) {
	entry := al.WithFields(logrus.Fields{
		"account_id":       accountID,
		"risk_of_ruin":     riskOfRuin,
		"starting_capital": startingCapital,
		"runs":             runs,
		"confidence":       confidence,
	})
	if riskOfRuin >= 50 {
		entry.Warn("High risk of ruin")
		return
	}
	entry.Info("Risk of ruin simulated")
}

// LogSnapshotSaved logs a persisted statistics snapshot.
func (al *AnalyticsLogger) LogSnapshotSaved(accountID, snapshotID string) {
	al.WithFields(logrus.Fields{
		"account_id":  accountID,
		"snapshot_id": snapshotID,
	}).Debug("Statistics snapshot saved")
}
