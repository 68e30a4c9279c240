package logger

import (
	"time"

	"github.com/sirupsen/logrus"
)

// AuditLogger provides dedicated audit trail logging.
type AuditLogger struct {
	*logrus.Entry
}

// NewAuditLogger creates a new audit logger.
func NewAuditLogger(baseLogger *logrus.Logger) *AuditLogger {
	return &AuditLogger{
		Entry: baseLogger.WithField("component", "audit"),
	}
}

// LogTradesImported logs a batch of trades written to the journal.
func (al *AuditLogger) LogTradesImported(accountID string, count int, timestamp time.Time) {
	al.WithFields(logrus.Fields{
		"account_id": accountID,
		"count":      count,
		"timestamp":  timestamp.Unix(),
	}).Info("Trades imported")
}

// LogProfileChange logs the creation or update of an evaluation profile.
func (al *AuditLogger) LogProfileChange(profileID, accountID, action string, active bool) {
	al.WithFields(logrus.Fields{
		"profile_id": profileID,
		"account_id": accountID,
		"action":     action,
		"active":     active,
	}).Info("Evaluation profile changed")
}
