// Package calendar builds the cycle calendar view.
package calendar

import (
	"context"
	"time"

	"github.com/anbu-gynaecare/webapp/internal/application/adapter"
	"github.com/anbu-gynaecare/webapp/internal/domain/entity"
)

// Builder lays out a month with the session's logs and predictions.
type Builder struct {
	logs        adapter.LogAPI
	predictions adapter.PredictionAPI
	now         func() time.Time
}

// NewBuilder creates a calendar builder.
func NewBuilder(logs adapter.LogAPI, predictions adapter.PredictionAPI) *Builder {
	return &Builder{logs: logs, predictions: predictions, now: time.Now}
}

// Month returns the grid for year and month. A zero year or month selects
// the current one; out-of-range months roll over into adjacent years.
func (b *Builder) Month(ctx context.Context, year int, month time.Month) (*entity.CalendarMonth, error) {
	today := b.now().UTC()
	if year == 0 || month == 0 {
		year, month = today.Year(), today.Month()
	}
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)

	logs, err := b.logs.GetCycleLogsWithCache(ctx, false)
	if err != nil {
		return nil, err
	}
	predictions, err := b.predictions.GetCyclePredictionsWithCache(ctx, false)
	if err != nil {
		return nil, err
	}

	cal := entity.NewCalendarMonth(first.Year(), first.Month(), today)
	cal.MarkLogs(logs)
	for _, p := range predictions {
		cal.MarkPrediction(p)
	}
	return cal, nil
}
