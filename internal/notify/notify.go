// Package notify delivers user-facing status messages produced while serving live scores.
package notify

import (
	"context"
	"time"
)

// Level is the severity of a notification.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notification is one delivered message.
type Notification struct {
	Level     Level     `json:"level"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// Notifier receives user-facing messages. Implementations must not block for long
// and must be safe for concurrent use.
type Notifier interface {
	Notify(ctx context.Context, message string, level Level)
}

// Func adapts a function to the Notifier interface.
type Func func(ctx context.Context, message string, level Level)

// Notify calls f.
func (f Func) Notify(ctx context.Context, message string, level Level) {
	f(ctx, message, level)
}

// Nop discards every notification.
var Nop Notifier = Func(func(context.Context, string, Level) {})

// Multi fans a notification out to several notifiers in order.
type Multi []Notifier

// Notify forwards to every non-nil notifier.
func (m Multi) Notify(ctx context.Context, message string, level Level) {
	for _, n := range m {
		if n != nil {
			n.Notify(ctx, message, level)
		}
	}
}
