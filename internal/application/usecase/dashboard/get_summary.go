// Package dashboard contains dashboard-related use cases.
package dashboard

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/anbu-gynaecare/webapp/internal/application/adapter"
	"github.com/anbu-gynaecare/webapp/internal/domain/entity"
)

// RestockWindowDays is how close the next period must be for a restock reminder.
const RestockWindowDays = 7

// GetSummaryOutput represents the dashboard summary of a session.
type GetSummaryOutput struct {
	UserName        string
	Prediction      *entity.CyclePrediction
	DaysUntil       int
	FormattedDate   string
	LogCount        int
	RestockReminder bool
}

// GetSummaryUseCase assembles the dashboard from cached reads.
type GetSummaryUseCase struct {
	users       adapter.UserAPI
	logs        adapter.LogAPI
	predictions adapter.PredictionAPI
	now         func() time.Time
}

// NewGetSummaryUseCase creates a new GetSummaryUseCase instance.
func NewGetSummaryUseCase(users adapter.UserAPI, logs adapter.LogAPI, predictions adapter.PredictionAPI) *GetSummaryUseCase {
	return &GetSummaryUseCase{
		users:       users,
		logs:        logs,
		predictions: predictions,
		now:         time.Now,
	}
}

// Execute loads the profile, logs and predictions concurrently.
func (uc *GetSummaryUseCase) Execute(ctx context.Context) (*GetSummaryOutput, error) {
	var (
		user        *entity.User
		logs        []entity.CycleLog
		predictions []entity.CyclePrediction
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		user, err = uc.users.GetUserWithCache(gctx, false)
		return err
	})
	g.Go(func() error {
		var err error
		logs, err = uc.logs.GetCycleLogsWithCache(gctx, false)
		return err
	})
	g.Go(func() error {
		var err error
		predictions, err = uc.predictions.GetCyclePredictionsWithCache(gctx, false)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &GetSummaryOutput{LogCount: len(logs), DaysUntil: -1}
	if user != nil {
		out.UserName = user.Name
	}
	if len(predictions) > 0 {
		latest := predictions[0]
		out.Prediction = &latest
		out.DaysUntil = latest.DaysUntil(uc.now())
		out.FormattedDate = entity.FormatPredictionDate(latest.PredictedDate)
		out.RestockReminder = out.DaysUntil > 0 && out.DaysUntil <= RestockWindowDays
	}
	return out, nil
}
