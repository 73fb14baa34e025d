package logger

import (
	"github.com/sirupsen/logrus"
)

// AggregatorLogger provides dedicated logging for live score requests.
type AggregatorLogger struct {
	*logrus.Entry
}

// NewAggregatorLogger creates a new aggregator logger.
func NewAggregatorLogger(baseLogger *logrus.Logger) *AggregatorLogger {
	if baseLogger == nil {
		baseLogger = Discard()
	}
	return &AggregatorLogger{
		Entry: baseLogger.WithField("component", "aggregator"),
	}
}

// LogState logs a step of the fetch state machine.
func (al *AggregatorLogger) LogState(requestID, sport, state string) {
	al.WithFields(logrus.Fields{
		"request_id": requestID,
		"sport":      sport,
		"state":      state,
	}).Debug("Live scores state")
}

// LogFetchSuccess logs a successful upstream fetch.
func (al *AggregatorLogger) LogFetchSuccess(requestID, sport, provider string, matches int, durationMs int64) {
	al.WithFields(logrus.Fields{
		"request_id":  requestID,
		"sport":       sport,
		"provider":    provider,
		"matches":     matches,
		"duration_ms": durationMs,
		"state":       "success",
	}).Info("Live scores fetched")
}

// LogProviderFailure logs a failed upstream fetch.
func (al *AggregatorLogger) LogProviderFailure(requestID, sport, provider, code string, statusCode int, err error) {
	fields := logrus.Fields{
		"request_id": requestID,
		"sport":      sport,
		"provider":   provider,
		"error_code": code,
	}
	if statusCode > 0 {
		fields["status_code"] = statusCode
	}
	al.WithFields(fields).WithError(err).Warn("Live scores provider failed")
}

// LogFallback logs which fallback served the request.
func (al *AggregatorLogger) LogFallback(requestID, sport, source string, matches int, stale bool, ageMs int64) {
	al.WithFields(logrus.Fields{
		"request_id": requestID,
		"sport":      sport,
		"source":     source,
		"matches":    matches,
		"stale":      stale,
		"age_ms":     ageMs,
	}).Warn("Live scores served from fallback")
}
