// Package logger provides pass-level logging helpers.
package logger

import (
	"time"

	"github.com/sirupsen/logrus"
)

// PassLogger provides dedicated logging for computation pass events.
type PassLogger struct {
	*logrus.Entry
}

// NewPassLogger creates a new pass logger.
func NewPassLogger(baseLogger *logrus.Logger) *PassLogger {
	return &PassLogger{
		Entry: baseLogger.WithField("component", "pass"),
	}
}

// LogPassSummary logs the outcome of a full computation pass.
func (pl *PassLogger) LogPassSummary(passID string, records, pairs, groups int, duration time.Duration) {
	pl.WithFields(logrus.Fields{
		"pass_id":     passID,
		"records":     records,
		"pairs":       pairs,
		"groups":      groups,
		"duration_ms": duration.Milliseconds(),
	}).Info("Pass summary")
}

// LogOpportunity logs a positive-EV quote found during a pass.
func (pl *PassLogger) LogOpportunity(groupKey, bookKey, side string, evPercent float64, confidence string) {
	pl.WithFields(logrus.Fields{
		"group":      groupKey,
		"book":       bookKey,
		"side":       side,
		"ev_percent": evPercent,
		"confidence": confidence,
		"event_type": "opportunity",
	}).Info("Positive EV found")
}

// LogFeedError logs a failed feed refresh.
func (pl *PassLogger) LogFeedError(source string, err error) {
	pl.WithFields(logrus.Fields{
		"source":     source,
		"event_type": "feed_error",
	}).WithError(err).Warn("Feed refresh failed")
}
