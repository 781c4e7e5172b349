package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/anbu-gynaecare/webapp/internal/domain/entity"
)

// OnboardingDraftModel represents the onboarding_drafts table in the database.
// List answers use text[] columns.
type OnboardingDraftModel struct {
	SessionID       uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Step            int            `gorm:"not null;default:0"`
	LastPeriodStart string         `gorm:"type:varchar(32)"`
	CycleLength     string         `gorm:"type:varchar(8)"`
	PeriodLength    string         `gorm:"type:varchar(8)"`
	FlowDescription string         `gorm:"type:varchar(20)"`
	Symptoms        pq.StringArray `gorm:"type:text[]"`
	Irregularities  pq.StringArray `gorm:"type:text[]"`
	Conditions      pq.StringArray `gorm:"type:text[]"`
	Goal            string         `gorm:"type:varchar(64)"`
	Stress          string         `gorm:"type:varchar(20)"`
	SleepQuality    string         `gorm:"type:varchar(20)"`
	Exercise        string         `gorm:"type:varchar(20)"`
	Diet            string         `gorm:"type:varchar(20)"`
	UpdatedAt       time.Time      `gorm:"not null"`
}

// TableName returns the table name for the OnboardingDraftModel.
func (OnboardingDraftModel) TableName() string {
	return "onboarding_drafts"
}

// ToEntity converts an OnboardingDraftModel to a domain OnboardingDraft entity.
func (m *OnboardingDraftModel) ToEntity() *entity.OnboardingDraft {
	return &entity.OnboardingDraft{
		SessionID: m.SessionID,
		Step:      m.Step,
		Answers: entity.OnboardingAnswers{
			LastPeriodStart: m.LastPeriodStart,
			CycleLength:     m.CycleLength,
			PeriodLength:    m.PeriodLength,
			FlowDescription: m.FlowDescription,
			Symptoms:        []string(m.Symptoms),
			Irregularities:  []string(m.Irregularities),
			Conditions:      []string(m.Conditions),
			Goal:            m.Goal,
			Stress:          m.Stress,
			SleepQuality:    m.SleepQuality,
			Exercise:        m.Exercise,
			Diet:            m.Diet,
		},
		UpdatedAt: m.UpdatedAt,
	}
}

// OnboardingDraftFromEntity creates an OnboardingDraftModel from a domain OnboardingDraft entity.
func OnboardingDraftFromEntity(draft *entity.OnboardingDraft) *OnboardingDraftModel {
	a := draft.Answers
	return &OnboardingDraftModel{
		SessionID:       draft.SessionID,
		Step:            draft.Step,
		LastPeriodStart: a.LastPeriodStart,
		CycleLength:     a.CycleLength,
		PeriodLength:    a.PeriodLength,
		FlowDescription: a.FlowDescription,
		Symptoms:        pq.StringArray(a.Symptoms),
		Irregularities:  pq.StringArray(a.Irregularities),
		Conditions:      pq.StringArray(a.Conditions),
		Goal:            a.Goal,
		Stress:          a.Stress,
		SleepQuality:    a.SleepQuality,
		Exercise:        a.Exercise,
		Diet:            a.Diet,
		UpdatedAt:       draft.UpdatedAt,
	}
}

// All returns every model managed by auto-migration.
func All() []any {
	return []any{&SessionModel{}, &OnboardingDraftModel{}}
}
