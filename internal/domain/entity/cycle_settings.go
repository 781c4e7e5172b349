package entity

import (
	"time"

	domainerror "github.com/anbu-gynaecare/webapp/internal/domain/error"
)

// Cycle baseline bounds accepted by the remote API.
const (
	MinCycleLength  = 21
	MaxCycleLength  = 45
	MinPeriodLength = 3
	MaxPeriodLength = 8
)

// FlowDescription is the typical flow pattern given during onboarding.
type FlowDescription string

const (
	FlowDescriptionLight    FlowDescription = "light"
	FlowDescriptionMedium   FlowDescription = "medium"
	FlowDescriptionHeavy    FlowDescription = "heavy"
	FlowDescriptionVariable FlowDescription = "variable"
)

// Goal is the user's reason for tracking.
type Goal string

const (
	GoalGeneralHealth   Goal = "General Health Tracking"
	GoalFertilityWindow Goal = "Track Fertility Window"
	GoalConceive        Goal = "Trying to conceive"
	GoalAvoidPregnancy  Goal = "Avoid Pregnancy"
)

// StressLevel is a lifestyle factor.
type StressLevel string

const (
	StressLow      StressLevel = "low"
	StressModerate StressLevel = "moderate"
	StressHigh     StressLevel = "high"
)

// SleepQuality is a lifestyle factor.
type SleepQuality string

const (
	SleepPoor SleepQuality = "poor"
	SleepFair SleepQuality = "fair"
	SleepGood SleepQuality = "good"
)

// ExerciseFrequency is a lifestyle factor.
type ExerciseFrequency string

const (
	ExerciseRarely    ExerciseFrequency = "rarely"
	ExerciseSometimes ExerciseFrequency = "sometimes"
	ExerciseRegularly ExerciseFrequency = "regularly"
)

// Diet is a lifestyle factor.
type Diet string

const (
	DietBalance    Diet = "balance"
	DietVegetarian Diet = "vegetarian"
	DietVegan      Diet = "vegan"
	DietOther      Diet = "other"
)

// CycleSettings is the onboarding submission sent to POST /user-cycles.
// All twelve fields are required.
type CycleSettings struct {
	CycleLength     int               `json:"cycle_length"`
	PeriodLength    int               `json:"period_length"`
	LastPeriodStart string            `json:"last_period_start"`
	FlowDescription FlowDescription   `json:"flow_description"`
	Symptoms        []string          `json:"symptoms"`
	Irregularities  []string          `json:"irregularities"`
	Conditions      []string          `json:"conditions"`
	Goal            Goal              `json:"goal"`
	Stress          StressLevel       `json:"stress"`
	SleepQuality    SleepQuality      `json:"sleep_quality"`
	Exercise        ExerciseFrequency `json:"exercise"`
	Diet            Diet              `json:"diet"`
}

// IsValidCycleLength reports whether length lies in [21, 45].
func IsValidCycleLength(length int) bool {
	return length >= MinCycleLength && length <= MaxCycleLength
}

// IsValidPeriodLength reports whether length lies in [3, 8].
func IsValidPeriodLength(length int) bool {
	return length >= MinPeriodLength && length <= MaxPeriodLength
}

// IsValidPastDate reports whether date parses and is not after now.
func IsValidPastDate(date string, now time.Time) bool {
	t, ok := ParseDate(date)
	return ok && !t.After(now)
}

// Validate checks required fields in declaration order, then ranges and enums.
func (s CycleSettings) Validate(now time.Time) error {
	required := []struct {
		field   string
		missing bool
	}{
		{"cycle_length", s.CycleLength == 0},
		{"period_length", s.PeriodLength == 0},
		{"last_period_start", s.LastPeriodStart == ""},
		{"flow_description", s.FlowDescription == ""},
		{"symptoms", s.Symptoms == nil},
		{"irregularities", s.Irregularities == nil},
		{"conditions", s.Conditions == nil},
		{"goal", s.Goal == ""},
		{"stress", s.Stress == ""},
		{"sleep_quality", s.SleepQuality == ""},
		{"exercise", s.Exercise == ""},
		{"diet", s.Diet == ""},
	}
	for _, r := range required {
		if r.missing {
			return domainerror.NewMissingFieldError(r.field)
		}
	}

	if !IsValidCycleLength(s.CycleLength) {
		return domainerror.NewValidationError("cycle_length", "Cycle length must be between 21 and 45 days")
	}
	if !IsValidPeriodLength(s.PeriodLength) {
		return domainerror.NewValidationError("period_length", "Period length must be between 3 and 8 days")
	}
	if !IsValidPastDate(s.LastPeriodStart, now) {
		return domainerror.NewValidationError("last_period_start", "Last period start must be a past date (YYYY-MM-DD)")
	}

	switch s.FlowDescription {
	case FlowDescriptionLight, FlowDescriptionMedium, FlowDescriptionHeavy, FlowDescriptionVariable:
	default:
		return domainerror.NewValidationError("flow_description", "Unknown flow description")
	}
	switch s.Goal {
	case GoalGeneralHealth, GoalFertilityWindow, GoalConceive, GoalAvoidPregnancy:
	default:
		return domainerror.NewValidationError("goal", "Unknown goal")
	}
	switch s.Stress {
	case StressLow, StressModerate, StressHigh:
	default:
		return domainerror.NewValidationError("stress", "Unknown stress level")
	}
	switch s.SleepQuality {
	case SleepPoor, SleepFair, SleepGood:
	default:
		return domainerror.NewValidationError("sleep_quality", "Unknown sleep quality")
	}
	switch s.Exercise {
	case ExerciseRarely, ExerciseSometimes, ExerciseRegularly:
	default:
		return domainerror.NewValidationError("exercise", "Unknown exercise frequency")
	}
	switch s.Diet {
	case DietBalance, DietVegetarian, DietVegan, DietOther:
	default:
		return domainerror.NewValidationError("diet", "Unknown diet")
	}
	return nil
}
