package cyclesetup

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/anbu-gynaecare/webapp/internal/application/adapter"
	"github.com/anbu-gynaecare/webapp/internal/application/async"
	"github.com/anbu-gynaecare/webapp/internal/domain/entity"
	domainerror "github.com/anbu-gynaecare/webapp/internal/domain/error"
)

// DraftView is a saved wizard draft with per-field errors.
type DraftView struct {
	Step   int
	Form   async.FormState[entity.OnboardingAnswers]
	Stored bool
}

// Drafts keeps the onboarding wizard progress of each session.
type Drafts struct {
	drafts adapter.OnboardingDraftRepository
	setup  *Setup
	now    func() time.Time
}

// NewDrafts creates a Drafts use case. setup receives converted drafts on submit.
func NewDrafts(drafts adapter.OnboardingDraftRepository, setup *Setup) *Drafts {
	return &Drafts{drafts: drafts, setup: setup, now: time.Now}
}

// Get returns the draft of the session in ctx, or an empty draft at step 0.
func (d *Drafts) Get(ctx context.Context) (*DraftView, error) {
	draft, stored, err := d.load(ctx)
	if err != nil {
		return nil, err
	}
	form := async.NewForm(draft.Answers)
	d.validate(form)
	return &DraftView{Step: draft.Step, Form: form.State(), Stored: stored}, nil
}

// Save merges answers into the draft and moves it to step. Fields that fail
// checks are reported in the form errors but still saved, so the wizard can
// come back to them.
func (d *Drafts) Save(ctx context.Context, step int, answers entity.OnboardingAnswers) (*DraftView, error) {
	draft, _, err := d.load(ctx)
	if err != nil {
		return nil, err
	}

	form := async.NewForm(draft.Answers)
	form.Update(func(values *entity.OnboardingAnswers) {
		mergeAnswers(values, answers)
	})
	markTouched(form, answers)
	d.validate(form)

	draft.Answers = form.Values()
	draft.SetStep(step)
	if err := d.drafts.Save(ctx, draft); err != nil {
		return nil, fmt.Errorf("failed to save onboarding draft: %w", err)
	}
	return &DraftView{Step: draft.Step, Form: form.State(), Stored: true}, nil
}

// Discard removes the draft of the session in ctx.
func (d *Drafts) Discard(ctx context.Context) error {
	id, err := sessionID(ctx)
	if err != nil {
		return err
	}
	return d.drafts.Delete(ctx, id)
}

// Submit converts the saved draft into cycle settings and submits them.
func (d *Drafts) Submit(ctx context.Context) (string, error) {
	draft, _, err := d.load(ctx)
	if err != nil {
		return "", err
	}
	settings, err := draft.Answers.ToSettings()
	if err != nil {
		return "", err
	}
	return d.setup.Submit(ctx, settings)
}

func (d *Drafts) load(ctx context.Context) (*entity.OnboardingDraft, bool, error) {
	id, err := sessionID(ctx)
	if err != nil {
		return nil, false, err
	}
	draft, err := d.drafts.FindBySession(ctx, id)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load onboarding draft: %w", err)
	}
	if draft == nil {
		return entity.NewOnboardingDraft(id), false, nil
	}
	return draft, true, nil
}

// validate reports answered fields that the remote API would reject.
func (d *Drafts) validate(form *async.Form[entity.OnboardingAnswers]) {
	values := form.Values()

	form.SetError("cycle_length", rangeError(values.CycleLength, entity.IsValidCycleLength,
		"Cycle length must be between 21 and 45 days"))
	form.SetError("period_length", rangeError(values.PeriodLength, entity.IsValidPeriodLength,
		"Period length must be between 3 and 8 days"))

	dateMsg := ""
	if start := strings.TrimSpace(values.LastPeriodStart); start != "" && !entity.IsValidPastDate(start, d.now()) {
		dateMsg = "Last period start must be a past date (YYYY-MM-DD)"
	}
	form.SetError("last_period_start", dateMsg)
}

func rangeError(value string, valid func(int) bool, message string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	n, err := strconv.Atoi(value)
	if err != nil || !valid(n) {
		return message
	}
	return ""
}

// mergeAnswers copies the answered fields of patch into values.
func mergeAnswers(values *entity.OnboardingAnswers, patch entity.OnboardingAnswers) {
	setString := func(dst *string, src string) {
		if src != "" {
			*dst = src
		}
	}
	setString(&values.LastPeriodStart, patch.LastPeriodStart)
	setString(&values.CycleLength, patch.CycleLength)
	setString(&values.PeriodLength, patch.PeriodLength)
	setString(&values.FlowDescription, patch.FlowDescription)
	setString(&values.Goal, patch.Goal)
	setString(&values.Stress, patch.Stress)
	setString(&values.SleepQuality, patch.SleepQuality)
	setString(&values.Exercise, patch.Exercise)
	setString(&values.Diet, patch.Diet)
	if patch.Symptoms != nil {
		values.Symptoms = patch.Symptoms
	}
	if patch.Irregularities != nil {
		values.Irregularities = patch.Irregularities
	}
	if patch.Conditions != nil {
		values.Conditions = patch.Conditions
	}
}

func markTouched(form *async.Form[entity.OnboardingAnswers], patch entity.OnboardingAnswers) {
	fields := map[string]bool{
		"last_period_start": patch.LastPeriodStart != "",
		"cycle_length":      patch.CycleLength != "",
		"period_length":     patch.PeriodLength != "",
		"flow_description":  patch.FlowDescription != "",
		"symptoms":          patch.Symptoms != nil,
		"irregularities":    patch.Irregularities != nil,
		"conditions":        patch.Conditions != nil,
		"goal":              patch.Goal != "",
		"stress":            patch.Stress != "",
		"sleep_quality":     patch.SleepQuality != "",
		"exercise":          patch.Exercise != "",
		"diet":              patch.Diet != "",
	}
	for field, touched := range fields {
		if touched {
			form.SetTouched(field, true)
		}
	}
}

func sessionID(ctx context.Context) (uuid.UUID, error) {
	id, ok := adapter.SessionIDFromContext(ctx)
	if !ok {
		return id, domainerror.NewAuthError(domainerror.ErrCodeMissingSession, "no session for this request", domainerror.ErrSessionNotFound)
	}
	return id, nil
}
