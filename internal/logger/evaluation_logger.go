package logger

import (
	"github.com/sirupsen/logrus"
)

// EvaluationLogger provides dedicated logging for funded-account evaluations.
type EvaluationLogger struct {
	*logrus.Entry
}

// NewEvaluationLogger creates a new evaluation logger.
func NewEvaluationLogger(baseLogger *logrus.Logger) *EvaluationLogger {
	return &EvaluationLogger{
		Entry: baseLogger.WithField("component", "evaluation"),
	}
}

// LogEvaluation logs an evaluation walk result.
func (el *EvaluationLogger) LogEvaluation(profileID, profileName, status string, cumPnL, maxTrailingDD float64, daysTraded int) {
	el.WithFields(logrus.Fields{
		"profile_id":      profileID,
		"profile_name":    profileName,
		"status":          status,
		"cum_pnl":         cumPnL,
		"max_trailing_dd": maxTrailingDD,
		"days_traded":     daysTraded,
	}).Info("Evaluation computed")
}

// LogBreach logs a broken evaluation rule.
func (el *EvaluationLogger) LogBreach(profileID, profileName, reason string) {
	el.WithFields(logrus.Fields{
		"profile_id":   profileID,
		"profile_name": profileName,
		"reason":       reason,
	}).Warn("Evaluation rule breached")
}

// LogStatusTransition logs an evaluation changing status between refreshes.
func (el *EvaluationLogger) LogStatusTransition(profileID, profileName, oldStatus, newStatus string) {
	el.WithFields(logrus.Fields{
		"profile_id":   profileID,
		"profile_name": profileName,
		"old_status":   oldStatus,
		"new_status":   newStatus,
	}).Info("Evaluation status changed")
}

// LogPrediction logs an outcome projection.
func (el *EvaluationLogger) LogPrediction(profileID string, passRate, failRate, activeRate float64, runs int, confidence string, insufficient bool) {
	el.WithFields(logrus.Fields{
		"profile_id":   profileID,
		"pass_rate":    passRate,
		"fail_rate":    failRate,
		"active_rate":  activeRate,
		"runs":         runs,
		"confidence":   confidence,
		"insufficient": insufficient,
	}).Info("Evaluation outcome predicted")
}
