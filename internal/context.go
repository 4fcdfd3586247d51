package internal

import (
	"context"
	"time"
)

type ctxKey string

// ContextUserKey carries the authenticated account id through the
// request context so downstream consumers (audit trail) can attribute
// mutations without reaching back into the auth layer.
const ContextUserKey ctxKey = "userID"

func ContextWithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, ContextUserKey, userID)
}

// UserIDFromContext returns the authenticated account id, or an empty
// string for unauthenticated contexts.
func UserIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if userID, ok := ctx.Value(ContextUserKey).(string); ok {
		return userID
	}
	return ""
}

// WithTimeout bounds a storage call. Non-positive durations fall back
// to 5 seconds.
func WithTimeout(ctx context.Context, duration time.Duration) (context.Context, context.CancelFunc) {
	if duration <= 0 {
		duration = 5 * time.Second
	}
	return context.WithTimeout(ctx, duration)
}
