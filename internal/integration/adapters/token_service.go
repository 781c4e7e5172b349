// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/anbu-gynaecare/webapp/internal/application/adapter"
	domainerror "github.com/anbu-gynaecare/webapp/internal/domain/error"
)

// jwtInspector reads claims from access tokens issued by the remote API.
// Tokens are never verified here; the remote API owns the signing key.
type jwtInspector struct {
	parser *jwt.Parser
}

// NewTokenInspector creates a token inspector for remote API JWTs.
func NewTokenInspector() adapter.TokenInspector {
	return &jwtInspector{parser: jwt.NewParser()}
}

// ExpiresAt returns the exp claim of token.
func (i *jwtInspector) ExpiresAt(token string) (time.Time, bool) {
	claims := jwt.RegisteredClaims{}
	if _, _, err := i.parser.ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time.UTC(), true
}

// sessionTokenSource reads the bearer token of the session carried by ctx.
type sessionTokenSource struct {
	sessions adapter.SessionRepository
	now      func() time.Time
}

// NewSessionTokenSource creates a token source backed by the session store.
// The returned value also implements adapter.TokenRevoker.
func NewSessionTokenSource(sessions adapter.SessionRepository) adapter.TokenSource {
	return &sessionTokenSource{sessions: sessions, now: time.Now}
}

// AccessToken returns the live token of the session in ctx, or "" when the
// request has no session or the session is signed out or expired.
func (s *sessionTokenSource) AccessToken(ctx context.Context) (string, error) {
	id, ok := adapter.SessionIDFromContext(ctx)
	if !ok {
		return "", nil
	}
	session, err := s.sessions.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerror.ErrSessionNotFound) {
			return "", nil
		}
		return "", err
	}
	if !session.IsAuthenticated(s.now()) {
		return "", nil
	}
	return session.AccessToken, nil
}

// RevokeToken signs out the session in ctx.
func (s *sessionTokenSource) RevokeToken(ctx context.Context) error {
	id, ok := adapter.SessionIDFromContext(ctx)
	if !ok {
		return nil
	}
	session, err := s.sessions.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerror.ErrSessionNotFound) {
			return nil
		}
		return err
	}
	if !session.HasToken() {
		return nil
	}
	session.SignOut()
	return s.sessions.Update(ctx, session)
}
