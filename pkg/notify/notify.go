package notify

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("notify",
	fx.Provide(NewZapNotifier),
)

type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// Notifier is the transient user-facing notification surface. Calls are
// fire-and-forget; no return value is consumed.
type Notifier interface {
	Notify(title, description string, severity Severity)
}

type zapNotifier struct {
	log *zap.Logger
}

func NewZapNotifier(log *zap.Logger) Notifier {
	return &zapNotifier{log: log.Named("notify")}
}

func (n *zapNotifier) Notify(title, description string, severity Severity) {
	fields := []zap.Field{
		zap.String("title", title),
		zap.String("description", description),
	}
	switch severity {
	case SeverityError:
		n.log.Warn("notification", fields...)
	default:
		n.log.Info("notification", fields...)
	}
}

// Recorder captures notifications for assertions in tests.
type Recorder struct {
	Events []Event
}

type Event struct {
	Title       string
	Description string
	Severity    Severity
}

func (r *Recorder) Notify(title, description string, severity Severity) {
	r.Events = append(r.Events, Event{Title: title, Description: description, Severity: severity})
}
