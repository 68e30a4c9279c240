package logger

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestLogger() (*logrus.Logger, *bytes.Buffer) {
	log := logrus.New()
	buf := &bytes.Buffer{}
	log.SetOutput(buf)
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.DebugLevel)
	return log, buf
}

func parseLogOutput(buf *bytes.Buffer) map[string]interface{} {
	var logEntry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
		return nil
	}
	return logEntry
}

func TestAnalyticsLoggerStatisticsComputed(t *testing.T) {
	log, buf := setupTestLogger()
	NewAnalyticsLogger(log).LogStatisticsComputed("acct-1", 120, 1540.25, 55.5, 12.5, false)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "analytics", logEntry["component"])
	assert.Equal(t, "acct-1", logEntry["account_id"])
	assert.Equal(t, float64(120), logEntry["trades"])
	assert.Equal(t, "Statistics computed", logEntry["msg"])
}

func TestAnalyticsLoggerRiskOfRuinLevel(t *testing.T) {
	log, buf := setupTestLogger()
	analyticsLogger := NewAnalyticsLogger(log)

	analyticsLogger.LogRiskOfRuin("acct-1", 72.5, 5000, 2000, "medium")
	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "warning", logEntry["level"])

	buf.Reset()
	analyticsLogger.LogRiskOfRuin("acct-1", 1.5, 5000, 2000, "high")
	logEntry = parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "info", logEntry["level"])
}

func TestAnalyticsLoggerLowSample(t *testing.T) {
	log, buf := setupTestLogger()
	NewAnalyticsLogger(log).LogLowSample("acct-1", "sharpe_ratio", "only 5 trading days available")

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "sharpe_ratio", logEntry["metric"])
	assert.Equal(t, "debug", logEntry["level"])
}

func TestEvaluationLoggerBreach(t *testing.T) {
	log, buf := setupTestLogger()
	NewEvaluationLogger(log).LogBreach("p-1", "50K", "daily loss limit breached on 2024-03-05")

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "evaluation", logEntry["component"])
	assert.Equal(t, "warning", logEntry["level"])
	assert.Contains(t, logEntry["reason"], "2024-03-05")
}

func TestEvaluationLoggerStatusTransition(t *testing.T) {
	log, buf := setupTestLogger()
	NewEvaluationLogger(log).LogStatusTransition("p-1", "50K", "active", "passed")

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "active", logEntry["old_status"])
	assert.Equal(t, "passed", logEntry["new_status"])
}

func TestEvaluationLoggerPrediction(t *testing.T) {
	log, buf := setupTestLogger()
	NewEvaluationLogger(log).LogPrediction("p-1", 61.2, 30.1, 8.7, 5000, "high", false)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, 61.2, logEntry["pass_rate"])
	assert.Equal(t, false, logEntry["insufficient"])
}

func TestAuditLoggerTradesImported(t *testing.T) {
	log, buf := setupTestLogger()
	now := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	NewAuditLogger(log).LogTradesImported("acct-1", 42, now)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "audit", logEntry["component"])
	assert.Equal(t, float64(42), logEntry["count"])
	assert.Equal(t, float64(now.Unix()), logEntry["timestamp"])
}

func TestNewLoggerFormatters(t *testing.T) {
	buf := &bytes.Buffer{}
	prod := newLogger(buf, "debug", "production")
	assert.IsType(t, &logrus.JSONFormatter{}, prod.Formatter)
	assert.Equal(t, logrus.DebugLevel, prod.GetLevel())

	prod.Info("hello")
	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "hello", logEntry["msg"])

	dev := newLogger(&bytes.Buffer{}, "not-a-level", "development")
	assert.Equal(t, logrus.InfoLevel, dev.GetLevel())
}

func BenchmarkAnalyticsLoggerStatisticsComputed(b *testing.B) {
	log, buf := setupTestLogger()
	analyticsLogger := NewAnalyticsLogger(log)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf.Reset()
		analyticsLogger.LogStatisticsComputed("acct-1", 120, 1540.25, 55.5, 12.5, true)
	}
}
