// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/anbu-gynaecare/webapp/internal/domain/entity"
)

// SessionRepository defines the interface for browser session persistence.
type SessionRepository interface {
	// Create stores a new session.
	Create(ctx context.Context, session *entity.Session) error

	// FindByID retrieves a session by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Session, error)

	// Update saves the token state of an existing session.
	Update(ctx context.Context, session *entity.Session) error

	// Delete removes a session.
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteIdleBefore removes sessions not updated since cutoff and returns how many were removed.
	DeleteIdleBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// OnboardingDraftRepository defines the interface for onboarding wizard drafts.
type OnboardingDraftRepository interface {
	// FindBySession retrieves the draft of a session.
	FindBySession(ctx context.Context, sessionID uuid.UUID) (*entity.OnboardingDraft, error)

	// Save creates or replaces the draft of a session.
	Save(ctx context.Context, draft *entity.OnboardingDraft) error

	// Delete removes the draft of a session.
	Delete(ctx context.Context, sessionID uuid.UUID) error
}
