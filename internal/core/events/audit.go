package events

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/epic-events-crm/internal"
	"github.com/frahmantamala/epic-events-crm/pkg/logger"
)

// AuditLogger writes every published event as one structured log line.
type AuditLogger struct {
	logger *slog.Logger
}

func NewAuditLogger(lg *slog.Logger) *AuditLogger {
	return &AuditLogger{logger: lg.With("component", "audit")}
}

func (a *AuditLogger) Register(bus *EventBus) {
	bus.Subscribe(AllEvents, a.Handle)
}

func (a *AuditLogger) Handle(ctx context.Context, event Event) error {
	attrs := []any{
		"event_type", event.EventType(),
		"event_id", event.EventID(),
		"occurred_at", event.OccurredAt(),
	}
	lg, scoped := logger.Scoped(ctx)
	if scoped {
		lg = lg.With("component", "audit")
	} else {
		lg = a.logger
		if sessionID := internal.CollaboratorIDFromContext(ctx); sessionID != 0 {
			attrs = append(attrs, "session_collaborator_id", sessionID)
		}
	}
	if audit, ok := event.(*AuditEvent); ok {
		attrs = append(attrs, "actor_id", audit.ActorID)
		if audit.EntityKind != "" {
			attrs = append(attrs, "entity_kind", audit.EntityKind, "entity_id", audit.EntityID)
		}
	}
	if data, ok := event.Payload().(map[string]interface{}); ok {
		for k, v := range data {
			attrs = append(attrs, k, v)
		}
	}

	level := slog.LevelInfo
	if event.EventType() == EventTypePermissionDenied || event.EventType() == EventTypeLoginFailed {
		level = slog.LevelWarn
	}
	lg.Log(ctx, level, "audit", attrs...)
	return nil
}
