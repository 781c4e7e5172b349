package entity

import "time"

// Days between ovulation and the next period, and the fertile window around it.
const (
	lutealPhaseDays     = 14
	fertileDaysBefore   = 4
	fertileDaysAfter    = 1
	defaultPeriodLength = 5
)

// CalendarDay is one cell of a month grid.
type CalendarDay struct {
	Day     int  `json:"day"`
	Today   bool `json:"today"`
	Logged  bool `json:"logged"`
	Period  bool `json:"period"`
	Fertile bool `json:"fertile"`
}

// CalendarMonth is a Sunday-first month grid.
type CalendarMonth struct {
	Year          int           `json:"year"`
	Month         time.Month    `json:"month"`
	MonthName     string        `json:"month_name"`
	LeadingBlanks int           `json:"leading_blanks"`
	Days          []CalendarDay `json:"days"`
}

// DaysInMonth returns the number of days in month.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// NewCalendarMonth lays out the grid for year and month, marking today.
func NewCalendarMonth(year int, month time.Month, today time.Time) *CalendarMonth {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	days := make([]CalendarDay, DaysInMonth(year, month))
	ty, tm, td := today.Date()
	for i := range days {
		days[i].Day = i + 1
		days[i].Today = ty == year && tm == month && td == i+1
	}
	return &CalendarMonth{
		Year:          first.Year(),
		Month:         first.Month(),
		MonthName:     first.Month().String(),
		LeadingBlanks: int(first.Weekday()),
		Days:          days,
	}
}

// Prev returns the year and month before c.
func (c *CalendarMonth) Prev() (int, time.Month) {
	t := time.Date(c.Year, c.Month-1, 1, 0, 0, 0, 0, time.UTC)
	return t.Year(), t.Month()
}

// Next returns the year and month after c.
func (c *CalendarMonth) Next() (int, time.Month) {
	t := time.Date(c.Year, c.Month+1, 1, 0, 0, 0, 0, time.UTC)
	return t.Year(), t.Month()
}

// MarkLogs flags the days on which a log exists.
func (c *CalendarMonth) MarkLogs(logs []CycleLog) {
	for _, l := range logs {
		if day, ok := l.Day(); ok {
			c.mark(day, func(d *CalendarDay) { d.Logged = true })
		}
	}
}

// MarkPrediction flags the predicted period days and the fertile window that
// precedes them.
func (c *CalendarMonth) MarkPrediction(p CyclePrediction) {
	start, ok := ParseDate(p.PredictedDate)
	if !ok {
		return
	}
	periodLength := p.PeriodLength
	if periodLength <= 0 {
		periodLength = defaultPeriodLength
	}
	for i := 0; i < periodLength; i++ {
		c.mark(start.AddDate(0, 0, i), func(d *CalendarDay) { d.Period = true })
	}

	ovulation := start.AddDate(0, 0, -lutealPhaseDays)
	for i := -fertileDaysBefore; i <= fertileDaysAfter; i++ {
		c.mark(ovulation.AddDate(0, 0, i), func(d *CalendarDay) { d.Fertile = true })
	}
}

func (c *CalendarMonth) mark(t time.Time, apply func(*CalendarDay)) {
	y, m, d := t.Date()
	if y != c.Year || m != c.Month || d < 1 || d > len(c.Days) {
		return
	}
	apply(&c.Days[d-1])
}
