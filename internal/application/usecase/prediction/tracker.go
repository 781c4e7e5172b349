// Package prediction tracks a session's latest cycle prediction.
package prediction

import (
	"context"
	"time"

	"github.com/anbu-gynaecare/webapp/internal/application/adapter"
	"github.com/anbu-gynaecare/webapp/internal/application/async"
	"github.com/anbu-gynaecare/webapp/internal/domain/entity"
)

// Summary is the latest prediction with its countdown.
type Summary struct {
	Prediction *entity.CyclePrediction
	DaysUntil  int
	Active     bool
	Error      string
}

// Tracker holds the latest prediction of one session.
type Tracker struct {
	predictions adapter.PredictionAPI
	latest      *async.Fetcher[*entity.CyclePrediction]
	now         func() time.Time
}

// NewTracker creates a tracker. Latest fetches only when opts.Immediate is set.
func NewTracker(predictions adapter.PredictionAPI, opts async.FetcherOptions) *Tracker {
	t := &Tracker{predictions: predictions, now: time.Now}
	t.latest = async.NewFetcher(func(ctx context.Context) (*entity.CyclePrediction, error) {
		list, err := predictions.GetCyclePredictionsWithCache(ctx, false)
		if err != nil {
			return nil, err
		}
		if len(list) == 0 {
			return nil, nil
		}
		return &list[0], nil
	}, opts)
	return t
}

// Latest reads the predictions through the cache and returns the summary.
// A cleared cache or an earlier failure is picked up by the next call.
func (t *Tracker) Latest(ctx context.Context) Summary {
	_ = t.latest.Start(ctx)
	return t.summary()
}

// RefreshPrediction drops the cached predictions and fetches again.
func (t *Tracker) RefreshPrediction(ctx context.Context) (Summary, error) {
	if err := t.predictions.ClearPredictionsCache(ctx); err != nil {
		return t.summary(), err
	}
	err := t.latest.Run(ctx)
	return t.summary(), err
}

// State returns the underlying fetch state.
func (t *Tracker) State() async.FetchState[*entity.CyclePrediction] {
	return t.latest.State()
}

func (t *Tracker) summary() Summary {
	state := t.latest.State()
	s := Summary{Prediction: state.Data, DaysUntil: -1, Error: state.Error}
	if state.Data != nil {
		s.DaysUntil = state.Data.DaysUntil(t.now())
		s.Active = s.DaysUntil > 0
	}
	return s
}
