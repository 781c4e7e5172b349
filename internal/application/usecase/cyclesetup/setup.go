// Package cyclesetup contains the onboarding wizard use cases.
package cyclesetup

import (
	"context"
	"log/slog"

	"github.com/anbu-gynaecare/webapp/internal/application/adapter"
	"github.com/anbu-gynaecare/webapp/internal/application/async"
	"github.com/anbu-gynaecare/webapp/internal/domain/entity"
)

// Setup submits onboarding cycle settings for one session.
type Setup struct {
	cycles      adapter.CycleAPI
	predictions adapter.PredictionAPI
	drafts      adapter.OnboardingDraftRepository
	submit      *async.Submitter[string]
}

// NewSetup creates a Setup.
func NewSetup(cycles adapter.CycleAPI, predictions adapter.PredictionAPI, drafts adapter.OnboardingDraftRepository) *Setup {
	s := &Setup{cycles: cycles, predictions: predictions, drafts: drafts}
	s.submit = async.NewSubmitter[string](async.SubmitterOptions{OnSuccess: s.afterSubmit})
	return s
}

// Submit sends settings. On success the cached predictions and the saved
// wizard draft of the session are dropped.
func (s *Setup) Submit(ctx context.Context, settings entity.CycleSettings) (string, error) {
	return s.submit.Submit(ctx, func(ctx context.Context) (string, error) {
		return s.cycles.SetUserCycle(ctx, settings)
	})
}

// State returns the submission state.
func (s *Setup) State() async.SubmitState {
	return s.submit.State()
}

func (s *Setup) afterSubmit(ctx context.Context) {
	if err := s.predictions.ClearPredictionsCache(ctx); err != nil {
		slog.Warn("Failed to clear predictions cache after cycle setup", "error", err)
	}
	id, ok := adapter.SessionIDFromContext(ctx)
	if !ok || s.drafts == nil {
		return
	}
	if err := s.drafts.Delete(ctx, id); err != nil {
		slog.Warn("Failed to delete onboarding draft", "session_id", id, "error", err)
	}
}
