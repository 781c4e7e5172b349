// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/anbu-gynaecare/webapp/internal/application/adapter"
	"github.com/anbu-gynaecare/webapp/internal/domain/entity"
	domainerror "github.com/anbu-gynaecare/webapp/internal/domain/error"
	"github.com/anbu-gynaecare/webapp/internal/integration/persistence/model"
)

// sessionRepository implements the adapter.SessionRepository interface.
type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository creates a new session repository instance.
func NewSessionRepository(db *gorm.DB) adapter.SessionRepository {
	return &sessionRepository{
		db: db,
	}
}

// Create creates a new session in the database.
func (r *sessionRepository) Create(ctx context.Context, session *entity.Session) error {
	return r.db.WithContext(ctx).Create(model.SessionFromEntity(session)).Error
}

// FindByID retrieves a session by its ID.
func (r *sessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Session, error) {
	var sessionModel model.SessionModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&sessionModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrSessionNotFound
		}
		return nil, result.Error
	}
	return sessionModel.ToEntity(), nil
}

// Update saves the token state of an existing session.
// Clearing the token also clears the expiry column.
func (r *sessionRepository) Update(ctx context.Context, session *entity.Session) error {
	m := model.SessionFromEntity(session)
	result := r.db.WithContext(ctx).
		Model(&model.SessionModel{}).
		Where("id = ?", session.ID).
		Updates(map[string]any{
			"access_token": m.AccessToken,
			"expires_at":   m.ExpiresAt,
			"updated_at":   m.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrSessionNotFound
	}
	return nil
}

// Delete removes a session and its onboarding draft.
func (r *sessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.OnboardingDraftModel{}, "session_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&model.SessionModel{}, "id = ?", id).Error
	})
}

// DeleteIdleBefore removes sessions not updated since cutoff, with their drafts.
func (r *sessionRepository) DeleteIdleBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	var removed int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		idle := tx.Model(&model.SessionModel{}).Select("id").Where("updated_at < ?", cutoff)
		if err := tx.Where("session_id IN (?)", idle).Delete(&model.OnboardingDraftModel{}).Error; err != nil {
			return err
		}
		result := tx.Where("updated_at < ?", cutoff).Delete(&model.SessionModel{})
		if result.Error != nil {
			return result.Error
		}
		removed = result.RowsAffected
		return nil
	})
	return removed, err
}
