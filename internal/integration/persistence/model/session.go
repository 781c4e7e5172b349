// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/anbu-gynaecare/webapp/internal/domain/entity"
)

// SessionModel represents the sessions table in the database.
type SessionModel struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	AccessToken string     `gorm:"type:text"`
	ExpiresAt   *time.Time `gorm:"index"`
	CreatedAt   time.Time  `gorm:"not null"`
	UpdatedAt   time.Time  `gorm:"not null;index"`
}

// TableName returns the table name for the SessionModel.
func (SessionModel) TableName() string {
	return "sessions"
}

// ToEntity converts a SessionModel to a domain Session entity.
func (m *SessionModel) ToEntity() *entity.Session {
	session := &entity.Session{
		ID:          m.ID,
		AccessToken: m.AccessToken,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	if m.ExpiresAt != nil {
		session.ExpiresAt = *m.ExpiresAt
	}
	return session
}

// SessionFromEntity creates a SessionModel from a domain Session entity.
func SessionFromEntity(session *entity.Session) *SessionModel {
	m := &SessionModel{
		ID:          session.ID,
		AccessToken: session.AccessToken,
		CreatedAt:   session.CreatedAt,
		UpdatedAt:   session.UpdatedAt,
	}
	if !session.ExpiresAt.IsZero() {
		expiresAt := session.ExpiresAt
		m.ExpiresAt = &expiresAt
	}
	return m
}
