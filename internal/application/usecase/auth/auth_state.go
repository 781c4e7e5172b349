// Package auth contains authentication-related use cases.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/anbu-gynaecare/webapp/internal/application/adapter"
	"github.com/anbu-gynaecare/webapp/internal/domain/entity"
	domainerror "github.com/anbu-gynaecare/webapp/internal/domain/error"
)

// Status is the authentication state of a session.
type Status struct {
	Authenticated bool
	ExpiresAt     *time.Time
}

// AuthState derives authentication from the session store without calling
// the remote API.
type AuthState struct {
	sessions adapter.SessionRepository
	now      func() time.Time
}

// NewAuthState creates an AuthState.
func NewAuthState(sessions adapter.SessionRepository) *AuthState {
	return &AuthState{sessions: sessions, now: time.Now}
}

// CheckAuth re-reads the session in ctx. A missing session is unauthenticated.
func (a *AuthState) CheckAuth(ctx context.Context) (*Status, error) {
	id, ok := adapter.SessionIDFromContext(ctx)
	if !ok {
		return &Status{}, nil
	}
	session, err := a.sessions.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerror.ErrSessionNotFound) {
			return &Status{}, nil
		}
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	if !session.IsAuthenticated(a.now()) {
		return &Status{}, nil
	}
	status := &Status{Authenticated: true}
	if !session.ExpiresAt.IsZero() {
		expiresAt := session.ExpiresAt
		status.ExpiresAt = &expiresAt
	}
	return status, nil
}

// Authenticate returns nil when the session in ctx holds a live token. An
// anonymous session fails with ErrNotAuthenticated, a lapsed token with
// ErrSessionExpired, both as an AuthError.
func (a *AuthState) Authenticate(ctx context.Context) error {
	id, ok := adapter.SessionIDFromContext(ctx)
	if !ok {
		return notAuthenticated()
	}
	session, err := a.sessions.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerror.ErrSessionNotFound) {
			return notAuthenticated()
		}
		return fmt.Errorf("failed to read session: %w", err)
	}

	switch {
	case !session.HasToken():
		return notAuthenticated()
	case session.IsExpired(a.now()):
		return domainerror.NewAuthError(
			domainerror.ErrCodeSessionExpired,
			domainerror.MsgSessionExpired,
			domainerror.ErrSessionExpired,
		)
	}
	return nil
}

// IsAuthenticated reports whether the session in ctx holds a live token.
func (a *AuthState) IsAuthenticated(ctx context.Context) bool {
	return a.Authenticate(ctx) == nil
}

func notAuthenticated() error {
	return domainerror.NewAuthError(
		domainerror.ErrCodeNotAuthenticated,
		domainerror.MsgSessionExpired,
		domainerror.ErrNotAuthenticated,
	)
}

// SessionCloser releases the in-memory state held for a session.
type SessionCloser interface {
	Close(id uuid.UUID)
}

// SessionCaches groups the per-session caches and in-memory state dropped
// whenever the signed-in account changes.
type SessionCaches struct {
	User        adapter.UserAPI
	Logs        adapter.LogAPI
	Predictions adapter.PredictionAPI
	States      SessionCloser
}

// Clear drops every per-session cache of the session in ctx and releases its
// cart, trackers and pagination.
func (c SessionCaches) Clear(ctx context.Context) error {
	if id, ok := adapter.SessionIDFromContext(ctx); ok && c.States != nil {
		c.States.Close(id)
	}

	var errs []error
	if c.User != nil {
		errs = append(errs, c.User.ClearUserCache(ctx))
	}
	if c.Logs != nil {
		errs = append(errs, c.Logs.ClearLogsCache(ctx))
	}
	if c.Predictions != nil {
		errs = append(errs, c.Predictions.ClearPredictionsCache(ctx))
	}
	return errors.Join(errs...)
}

// sessionSigner stores an access token in the session of a request.
type sessionSigner struct {
	sessions  adapter.SessionRepository
	inspector adapter.TokenInspector
	ttl       time.Duration
	now       func() time.Time
}

// signIn stores token with its expiry: the token's exp claim when present,
// otherwise ttl from now.
func (s *sessionSigner) signIn(ctx context.Context, token string) (*entity.Session, error) {
	if token == "" {
		return nil, domainerror.ErrMissingToken
	}
	session, err := s.current(ctx)
	if err != nil {
		return nil, err
	}

	expiresAt, ok := time.Time{}, false
	if s.inspector != nil {
		expiresAt, ok = s.inspector.ExpiresAt(token)
	}
	if !ok {
		expiresAt = s.now().UTC().Add(s.ttl)
	}

	session.SignIn(token, expiresAt)
	if err := s.sessions.Update(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to store session token: %w", err)
	}
	return session, nil
}

func (s *sessionSigner) current(ctx context.Context) (*entity.Session, error) {
	id, ok := adapter.SessionIDFromContext(ctx)
	if !ok {
		return nil, missingSession(uuid.Nil)
	}
	session, err := s.sessions.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerror.ErrSessionNotFound) {
			return nil, missingSession(id)
		}
		return nil, fmt.Errorf("failed to read session: %w", err)
	}
	return session, nil
}

func missingSession(id uuid.UUID) error {
	return domainerror.NewAuthError(
		domainerror.ErrCodeMissingSession,
		"no session for this request",
		fmt.Errorf("%w: %s", domainerror.ErrSessionNotFound, id),
	)
}
