package entity

import (
	"time"

	domainerror "github.com/anbu-gynaecare/webapp/internal/domain/error"
)

// PeriodFlow is the flow intensity recorded in a cycle log.
type PeriodFlow string

const (
	PeriodFlowNone   PeriodFlow = "none"
	PeriodFlowLight  PeriodFlow = "light"
	PeriodFlowMedium PeriodFlow = "medium"
	PeriodFlowHeavy  PeriodFlow = "heavy"
)

// IsValid reports whether f is one of the known flow values.
func (f PeriodFlow) IsValid() bool {
	switch f {
	case PeriodFlowNone, PeriodFlowLight, PeriodFlowMedium, PeriodFlowHeavy:
		return true
	}
	return false
}

// Feeling is the mood recorded in a cycle log.
type Feeling string

const (
	FeelingMoody     Feeling = "moody"
	FeelingTired     Feeling = "tired"
	FeelingIrritable Feeling = "irritable"
	FeelingStressed  Feeling = "stressed"
	FeelingEnergetic Feeling = "energetic"
)

// IsValid reports whether f is one of the known feelings.
func (f Feeling) IsValid() bool {
	switch f {
	case FeelingMoody, FeelingTired, FeelingIrritable, FeelingStressed, FeelingEnergetic:
		return true
	}
	return false
}

// CycleLog is a single day's entry created from the tracking log modal.
// Logs are immutable once created.
type CycleLog struct {
	ID         string     `json:"id"`
	UserID     string     `json:"userId"`
	PeriodFlow PeriodFlow `json:"period_flow"`
	Feeling    Feeling    `json:"feeling"`
	Symptoms   []string   `json:"symptoms"`
	Date       string     `json:"date,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// Day returns the calendar day the log belongs to: its date when set,
// otherwise its creation time.
func (l CycleLog) Day() (time.Time, bool) {
	if l.Date != "" {
		if t, ok := ParseDate(l.Date); ok {
			return t, true
		}
	}
	if !l.CreatedAt.IsZero() {
		return l.CreatedAt, true
	}
	return time.Time{}, false
}

// LogInput is the payload for creating a cycle log.
type LogInput struct {
	PeriodFlow PeriodFlow `json:"period_flow"`
	Feeling    Feeling    `json:"feeling"`
	Symptoms   []string   `json:"symptoms"`
}

// Validate checks the payload before it is sent anywhere.
func (in LogInput) Validate() error {
	if in.PeriodFlow == "" {
		return domainerror.NewValidationError("period_flow", "Period flow is required")
	}
	if !in.PeriodFlow.IsValid() {
		return domainerror.NewValidationError("period_flow", "Period flow must be one of none, light, medium, heavy")
	}
	if in.Feeling == "" {
		return domainerror.NewValidationError("feeling", "Feeling/mood is required")
	}
	if !in.Feeling.IsValid() {
		return domainerror.NewValidationError("feeling", "Feeling must be one of moody, tired, irritable, stressed, energetic")
	}
	if in.Symptoms == nil {
		return domainerror.NewValidationError("symptoms", "Symptoms must be an array")
	}
	return nil
}
