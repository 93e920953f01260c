package internal

import (
	"context"
	"time"
)

type ctxKey string

const ContextCollaboratorKey ctxKey = "collaboratorID"

func CollaboratorIDFromContext(ctx context.Context) int64 {
	if ctx == nil {
		return 0
	}
	if id, ok := ctx.Value(ContextCollaboratorKey).(int64); ok {
		return id
	}
	return 0
}

func ContextWithCollaboratorID(ctx context.Context, collaboratorID int64) context.Context {
	return context.WithValue(ctx, ContextCollaboratorKey, collaboratorID)
}

// WithTimeout returns a context with timeout, defaulting to 5 seconds if duration is zero or negative.
func WithTimeout(ctx context.Context, duration time.Duration) (context.Context, context.CancelFunc) {
	if duration <= 0 {
		duration = 5 * time.Second
	}
	return context.WithTimeout(ctx, duration)
}
