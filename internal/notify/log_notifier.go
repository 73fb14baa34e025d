package notify

import (
	"context"

	"github.com/sirupsen/logrus"
)

// LogNotifier writes notifications to a logrus logger.
type LogNotifier struct {
	entry *logrus.Entry
}

// NewLogNotifier creates a notifier that logs with component=notify
func NewLogNotifier(logger *logrus.Logger) *LogNotifier {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &LogNotifier{entry: logger.WithField("component", "notify")}
}

// Notify logs message at a level matching the notification severity
func (n *LogNotifier) Notify(_ context.Context, message string, level Level) {
	e := n.entry.WithField("notification_level", string(level))
	switch level {
	case LevelError:
		e.Error(message)
	case LevelWarning:
		e.Warn(message)
	default:
		e.Info(message)
	}
}
