package entity

import (
	"math"
	"time"
)

// CyclePrediction is a server-computed prediction of the next period start.
type CyclePrediction struct {
	ID            string    `json:"id,omitempty"`
	UserID        string    `json:"userId,omitempty"`
	PredictedDate string    `json:"predictedDate,omitempty"`
	Confidence    float64   `json:"confidence,omitempty"`
	CycleLength   int       `json:"cycle_length,omitempty"`
	PeriodLength  int       `json:"period_length,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// dateLayouts are the formats the remote API uses for dates.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseDate parses an API date string. Plain dates are taken as UTC midnight.
func ParseDate(value string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// DaysUntilPrediction returns the ceiling of the number of days between now and
// the predicted date. It is negative once the date has passed and -1 when the
// date cannot be parsed.
func DaysUntilPrediction(date string, now time.Time) int {
	predicted, ok := ParseDate(date)
	if !ok {
		return -1
	}
	const dayMillis = float64(24 * time.Hour / time.Millisecond)
	delta := float64(predicted.Sub(now).Milliseconds())
	return int(math.Ceil(delta / dayMillis))
}

// DaysUntil returns the days left until the predicted date, or -1 when the
// prediction has no date.
func (p CyclePrediction) DaysUntil(now time.Time) int {
	if p.PredictedDate == "" {
		return -1
	}
	return DaysUntilPrediction(p.PredictedDate, now)
}

// IsActive reports whether the prediction still lies ahead of now.
func (p CyclePrediction) IsActive(now time.Time) bool {
	return p.DaysUntil(now) > 0
}

// FormatPredictionDate renders a date as "Monday, January 2, 2006".
// Unparseable input is returned unchanged.
func FormatPredictionDate(date string) string {
	t, ok := ParseDate(date)
	if !ok {
		return date
	}
	return t.Format("Monday, January 2, 2006")
}
