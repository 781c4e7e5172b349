package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/anbu-gynaecare/webapp/internal/application/adapter"
)

// LogoutUserOutput represents the output of user logout.
type LogoutUserOutput struct {
	Message string
}

// LogoutUserUseCase handles user logout logic.
type LogoutUserUseCase struct {
	caches SessionCaches
	signer *sessionSigner
}

// NewLogoutUserUseCase creates a new LogoutUserUseCase instance.
func NewLogoutUserUseCase(sessions adapter.SessionRepository, caches SessionCaches) *LogoutUserUseCase {
	return &LogoutUserUseCase{
		caches: caches,
		signer: &sessionSigner{sessions: sessions, now: time.Now},
	}
}

// Execute clears the session token, its caches and its cart.
// Logging out a session that is already signed out succeeds.
func (uc *LogoutUserUseCase) Execute(ctx context.Context) (*LogoutUserOutput, error) {
	session, err := uc.signer.current(ctx)
	if err != nil {
		return nil, err
	}

	if err := uc.caches.Clear(ctx); err != nil {
		slog.Warn("Failed to clear session caches on logout", "session_id", session.ID, "error", err)
	}

	if session.HasToken() {
		session.SignOut()
		if err := uc.signer.sessions.Update(ctx, session); err != nil {
			return nil, fmt.Errorf("failed to clear session token: %w", err)
		}
	}

	return &LogoutUserOutput{
		Message: "Successfully logged out",
	}, nil
}
