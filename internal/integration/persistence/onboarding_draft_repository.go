package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/anbu-gynaecare/webapp/internal/application/adapter"
	"github.com/anbu-gynaecare/webapp/internal/domain/entity"
	"github.com/anbu-gynaecare/webapp/internal/integration/persistence/model"
)

// onboardingDraftRepository implements the adapter.OnboardingDraftRepository interface.
type onboardingDraftRepository struct {
	db *gorm.DB
}

// NewOnboardingDraftRepository creates a new onboarding draft repository instance.
func NewOnboardingDraftRepository(db *gorm.DB) adapter.OnboardingDraftRepository {
	return &onboardingDraftRepository{db: db}
}

// FindBySession retrieves the draft of a session, or nil when none is saved.
func (r *onboardingDraftRepository) FindBySession(ctx context.Context, sessionID uuid.UUID) (*entity.OnboardingDraft, error) {
	var draftModel model.OnboardingDraftModel
	result := r.db.WithContext(ctx).Where("session_id = ?", sessionID).First(&draftModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return draftModel.ToEntity(), nil
}

// Save creates or replaces the draft of a session.
func (r *onboardingDraftRepository) Save(ctx context.Context, draft *entity.OnboardingDraft) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_id"}},
			UpdateAll: true,
		}).
		Create(model.OnboardingDraftFromEntity(draft)).Error
}

// Delete removes the draft of a session.
func (r *onboardingDraftRepository) Delete(ctx context.Context, sessionID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.OnboardingDraftModel{}, "session_id = ?", sessionID).Error
}
