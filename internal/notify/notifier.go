package notify

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/haulbook/haulbook/internal/workflow"
)

// Logger writes workflow events to a zerolog logger.
type Logger struct {
	log zerolog.Logger
}

// NewLogger creates a Logger notifier.
func NewLogger(l zerolog.Logger) *Logger {
	return &Logger{log: l}
}

// Notify implements workflow.Notifier.
func (n *Logger) Notify(_ context.Context, ev workflow.Event) {
	failed := ev.Kind == workflow.EventStageFailed || ev.Kind == workflow.EventFinalizeFailed
	level := zerolog.InfoLevel
	if failed {
		level = zerolog.WarnLevel
	}
	e := n.log.WithLevel(level)
	if failed {
		e = e.Str("detail", ev.Detail)
	}
	e = e.Str("event", string(ev.Kind)).
		Str("contract", ev.ContractNumber).
		Stringer("stage", ev.Stage)
	if ev.Obligation {
		e = e.Str("obligation_amount", ev.Amount.StringFixed(2))
	}
	e.Msg("workflow event")
}

// Multi dispatches events to several notifiers in order.
type Multi struct {
	notifiers []workflow.Notifier
}

// NewMulti constructs a Multi. Nil notifiers are skipped.
func NewMulti(notifiers ...workflow.Notifier) *Multi {
	return &Multi{notifiers: notifiers}
}

// Notify forwards the event to every notifier.
func (m *Multi) Notify(ctx context.Context, ev workflow.Event) {
	if m == nil {
		return
	}
	for _, n := range m.notifiers {
		if n != nil {
			n.Notify(ctx, ev)
		}
	}
}
