// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"
)

// TokenSource supplies the bearer token for an outgoing request.
// It is consulted on every request, so a stored token change applies to the next call.
type TokenSource interface {
	// AccessToken returns the current token, or "" when none is stored.
	AccessToken(ctx context.Context) (string, error)
}

// TokenInspector reads metadata from an access token issued by the remote API.
type TokenInspector interface {
	// ExpiresAt returns the token expiry, or false when it cannot be determined.
	ExpiresAt(token string) (time.Time, bool)
}

// TokenRevoker clears the stored token after the remote API rejects it.
type TokenRevoker interface {
	// RevokeToken forgets the token of the session in ctx.
	RevokeToken(ctx context.Context) error
}
