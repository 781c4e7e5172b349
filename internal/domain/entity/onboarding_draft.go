package entity

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	domainerror "github.com/anbu-gynaecare/webapp/internal/domain/error"
)

// OnboardingSteps is the number of wizard steps, welcome and summary included.
const OnboardingSteps = 10

// OnboardingAnswers holds the wizard answers as the form collects them.
// Numeric answers stay strings until the draft is submitted.
type OnboardingAnswers struct {
	LastPeriodStart string   `json:"last_period_start"`
	CycleLength     string   `json:"cycle_length"`
	PeriodLength    string   `json:"period_length"`
	FlowDescription string   `json:"flow_description"`
	Symptoms        []string `json:"symptoms"`
	Irregularities  []string `json:"irregularities"`
	Conditions      []string `json:"conditions"`
	Goal            string   `json:"goal"`
	Stress          string   `json:"stress"`
	SleepQuality    string   `json:"sleep_quality"`
	Exercise        string   `json:"exercise"`
	Diet            string   `json:"diet"`
}

// OnboardingDraft is the saved progress of a session's onboarding wizard.
type OnboardingDraft struct {
	SessionID uuid.UUID
	Step      int
	Answers   OnboardingAnswers
	UpdatedAt time.Time
}

// NewOnboardingDraft creates an empty draft at the first step.
func NewOnboardingDraft(sessionID uuid.UUID) *OnboardingDraft {
	return &OnboardingDraft{
		SessionID: sessionID,
		UpdatedAt: time.Now().UTC(),
	}
}

// SetStep moves the wizard to step, clamped to the valid range.
func (d *OnboardingDraft) SetStep(step int) {
	switch {
	case step < 0:
		step = 0
	case step >= OnboardingSteps:
		step = OnboardingSteps - 1
	}
	d.Step = step
	d.UpdatedAt = time.Now().UTC()
}

// ToSettings converts the answers into a submission payload.
// Missing list answers become empty lists.
func (a OnboardingAnswers) ToSettings() (CycleSettings, error) {
	cycleLength, err := parseAnswerInt("cycle_length", a.CycleLength)
	if err != nil {
		return CycleSettings{}, err
	}
	periodLength, err := parseAnswerInt("period_length", a.PeriodLength)
	if err != nil {
		return CycleSettings{}, err
	}

	return CycleSettings{
		CycleLength:     cycleLength,
		PeriodLength:    periodLength,
		LastPeriodStart: strings.TrimSpace(a.LastPeriodStart),
		FlowDescription: FlowDescription(a.FlowDescription),
		Symptoms:        nonNil(a.Symptoms),
		Irregularities:  nonNil(a.Irregularities),
		Conditions:      nonNil(a.Conditions),
		Goal:            Goal(a.Goal),
		Stress:          StressLevel(a.Stress),
		SleepQuality:    SleepQuality(a.SleepQuality),
		Exercise:        ExerciseFrequency(a.Exercise),
		Diet:            Diet(a.Diet),
	}, nil
}

func parseAnswerInt(field, value string) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, domainerror.NewMissingFieldError(field)
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, domainerror.NewValidationError(field, field+" must be a whole number of days")
	}
	return n, nil
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
