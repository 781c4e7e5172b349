package adapter

import (
	"context"

	"github.com/google/uuid"
)

type sessionIDKey struct{}

// WithSessionID returns a context carrying the browser session ID.
func WithSessionID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, sessionIDKey{}, id)
}

// SessionIDFromContext extracts the browser session ID from ctx.
func SessionIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(sessionIDKey{}).(uuid.UUID)
	return id, ok && id != uuid.Nil
}
