package internal

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type ctxKey string

const ContextOwnerKey ctxKey = "ownerID"

// OwnerFromContext returns the owner identity the request is scoped to.
func OwnerFromContext(ctx context.Context) (uuid.UUID, bool) {
	if ctx == nil {
		return uuid.Nil, false
	}
	if ownerID, ok := ctx.Value(ContextOwnerKey).(uuid.UUID); ok {
		return ownerID, true
	}
	return uuid.Nil, false
}

func ContextWithOwner(ctx context.Context, ownerID uuid.UUID) context.Context {
	return context.WithValue(ctx, ContextOwnerKey, ownerID)
}

// WithTimeout returns a context with timeout, defaulting to 5 seconds if
// duration is zero or negative.
func WithTimeout(ctx context.Context, duration time.Duration) (context.Context, context.CancelFunc) {
	if duration <= 0 {
		duration = 5 * time.Second
	}
	return context.WithTimeout(ctx, duration)
}
