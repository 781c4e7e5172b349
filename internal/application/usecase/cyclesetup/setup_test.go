package cyclesetup

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/anbu-gynaecare/webapp/internal/application/adapter"
	"github.com/anbu-gynaecare/webapp/internal/domain/entity"
	domainerror "github.com/anbu-gynaecare/webapp/internal/domain/error"
)

type memoryDrafts struct {
	drafts map[uuid.UUID]entity.OnboardingDraft
}

func newMemoryDrafts() *memoryDrafts {
	return &memoryDrafts{drafts: map[uuid.UUID]entity.OnboardingDraft{}}
}

func (m *memoryDrafts) FindBySession(ctx context.Context, id uuid.UUID) (*entity.OnboardingDraft, error) {
	d, ok := m.drafts[id]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

func (m *memoryDrafts) Save(ctx context.Context, d *entity.OnboardingDraft) error {
	m.drafts[d.SessionID] = *d
	return nil
}

func (m *memoryDrafts) Delete(ctx context.Context, id uuid.UUID) error {
	delete(m.drafts, id)
	return nil
}

type fakeCycles struct {
	got   *entity.CycleSettings
	err   error
	calls int
}

func (f *fakeCycles) SetUserCycle(ctx context.Context, settings entity.CycleSettings) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	if err := settings.Validate(time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)); err != nil {
		return "", err
	}
	f.got = &settings
	return "Cycle settings saved", nil
}

type fakePredictions struct {
	clears int
}

func (f *fakePredictions) GetCyclePredictionsWithCache(ctx context.Context, skip bool) ([]entity.CyclePrediction, error) {
	return nil, nil
}

func (f *fakePredictions) ClearPredictionsCache(ctx context.Context) error {
	f.clears++
	return nil
}

func completeAnswers() entity.OnboardingAnswers {
	return entity.OnboardingAnswers{
		LastPeriodStart: "2026-10-01",
		CycleLength:     "28",
		PeriodLength:    "5",
		FlowDescription: "medium",
		Symptoms:        []string{"cramps"},
		Goal:            string(entity.GoalGeneralHealth),
		Stress:          "low",
		SleepQuality:    "good",
		Exercise:        "sometimes",
		Diet:            "balance",
	}
}

func newFixture() (context.Context, uuid.UUID, *memoryDrafts, *fakeCycles, *fakePredictions, *Drafts) {
	id := uuid.New()
	ctx := adapter.WithSessionID(context.Background(), id)
	drafts := newMemoryDrafts()
	cycles := &fakeCycles{}
	predictions := &fakePredictions{}
	uc := NewDrafts(drafts, NewSetup(cycles, predictions, drafts))
	uc.now = func() time.Time { return time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC) }
	return ctx, id, drafts, cycles, predictions, uc
}

func TestDrafts_SaveMergesAndValidates(t *testing.T) {
	ctx, id, drafts, _, _, uc := newFixture()

	view, err := uc.Get(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.Stored || view.Step != 0 {
		t.Errorf("expected a fresh draft, got %+v", view)
	}

	view, err = uc.Save(ctx, 2, entity.OnboardingAnswers{CycleLength: "50", LastPeriodStart: "2026-10-01"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.Form.Errors["cycle_length"] == "" {
		t.Error("expected an out-of-range cycle length to be reported")
	}
	if !view.Form.Touched["cycle_length"] || view.Form.Touched["diet"] {
		t.Errorf("unexpected touched fields %v", view.Form.Touched)
	}

	view, err = uc.Save(ctx, 3, entity.OnboardingAnswers{CycleLength: "28", PeriodLength: "5"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(view.Form.Errors) != 0 {
		t.Errorf("expected no errors, got %v", view.Form.Errors)
	}
	stored := drafts.drafts[id]
	if stored.Step != 3 || stored.Answers.LastPeriodStart != "2026-10-01" || stored.Answers.CycleLength != "28" {
		t.Errorf("expected earlier answers kept, got %+v", stored)
	}

	view, _ = uc.Save(ctx, 99, entity.OnboardingAnswers{})
	if view.Step != entity.OnboardingSteps-1 {
		t.Errorf("expected step clamped, got %d", view.Step)
	}
}

func TestDrafts_SubmitClearsDraftAndPredictions(t *testing.T) {
	ctx, id, drafts, cycles, predictions, uc := newFixture()

	if _, err := uc.Save(ctx, 9, completeAnswers()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	confirmation, err := uc.Submit(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if confirmation != "Cycle settings saved" {
		t.Errorf("unexpected confirmation %q", confirmation)
	}
	if cycles.got == nil || cycles.got.CycleLength != 28 || cycles.got.Irregularities == nil {
		t.Errorf("unexpected submitted settings %+v", cycles.got)
	}
	if predictions.clears != 1 {
		t.Errorf("expected predictions cache cleared, got %d", predictions.clears)
	}
	if _, ok := drafts.drafts[id]; ok {
		t.Error("expected the draft deleted after submission")
	}
}

func TestDrafts_SubmitFailureKeepsDraft(t *testing.T) {
	ctx, id, drafts, cycles, predictions, uc := newFixture()
	cycles.err = &domainerror.HTTPError{Status: 500}

	_, _ = uc.Save(ctx, 9, completeAnswers())
	_, err := uc.Submit(ctx)
	if err == nil {
		t.Fatal("expected error")
	}
	if _, ok := drafts.drafts[id]; !ok {
		t.Error("expected the draft kept after a failed submission")
	}
	if predictions.clears != 0 {
		t.Error("expected no cache clear after a failed submission")
	}
}

func TestDrafts_SubmitIncomplete(t *testing.T) {
	ctx, _, _, cycles, _, uc := newFixture()

	_, err := uc.Submit(ctx)
	var validationErr *domainerror.ValidationError
	if !errors.As(err, &validationErr) || validationErr.Field != "cycle_length" {
		t.Fatalf("expected missing cycle_length, got %v", err)
	}
	if cycles.calls != 0 {
		t.Error("expected no remote call for an empty draft")
	}
}

func TestDrafts_RequiresSession(t *testing.T) {
	_, _, _, _, _, uc := newFixture()
	_, err := uc.Get(context.Background())
	var authErr *domainerror.AuthError
	if !errors.As(err, &authErr) {
		t.Errorf("expected auth error, got %v", err)
	}
}
