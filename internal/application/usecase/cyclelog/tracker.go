// Package cyclelog tracks a session's cycle logs.
package cyclelog

import (
	"context"
	"log/slog"

	"github.com/anbu-gynaecare/webapp/internal/application/adapter"
	"github.com/anbu-gynaecare/webapp/internal/application/async"
	"github.com/anbu-gynaecare/webapp/internal/domain/entity"
)

// Tracker holds the log lists of one session and creates new logs.
// Both lists are fetched on demand.
type Tracker struct {
	logs    adapter.LogAPI
	all     *async.Fetcher[[]entity.CycleLog]
	month   *async.Fetcher[[]entity.CycleLog]
	submit  *async.Submitter[*entity.CycleLog]
	history *async.Paginator[entity.CycleLog]
}

// NewTracker creates a tracker. opts.Immediate is ignored.
func NewTracker(logs adapter.LogAPI, opts async.FetcherOptions, pageSize int) *Tracker {
	opts.Immediate = false
	t := &Tracker{
		logs:   logs,
		submit: async.NewSubmitter[*entity.CycleLog](async.SubmitterOptions{}),
	}
	t.all = async.NewFetcher(func(ctx context.Context) ([]entity.CycleLog, error) {
		return logs.GetCycleLogsWithCache(ctx, false)
	}, opts)
	t.month = async.NewFetcher(func(ctx context.Context) ([]entity.CycleLog, error) {
		return logs.GetMonthlyLogsWithCache(ctx, false)
	}, opts)
	t.history = async.NewPaginator(t.fetchPage, pageSize)
	return t
}

// LoadLogs fetches the full log list.
func (t *Tracker) LoadLogs(ctx context.Context) (async.FetchState[[]entity.CycleLog], error) {
	err := t.all.Run(ctx)
	return t.all.State(), err
}

// LoadMonthlyLogs fetches the current month's logs.
func (t *Tracker) LoadMonthlyLogs(ctx context.Context) (async.FetchState[[]entity.CycleLog], error) {
	err := t.month.Run(ctx)
	return t.month.State(), err
}

// CreateLog records a log, then drops the cached lists and reloads the
// full list so the new entry is visible to this session.
func (t *Tracker) CreateLog(ctx context.Context, input entity.LogInput) (*entity.CycleLog, error) {
	created, err := t.submit.Submit(ctx, func(ctx context.Context) (*entity.CycleLog, error) {
		return t.logs.CreateCycleLog(ctx, input)
	})
	if err != nil {
		return nil, err
	}

	if err := t.logs.ClearLogsCache(ctx); err != nil {
		slog.Warn("Failed to clear logs cache after create", "error", err)
	}
	if err := t.all.Run(ctx); err != nil {
		slog.Warn("Failed to reload logs after create", "error", err)
	}
	return created, nil
}

// RefreshLogs drops the cached lists and reloads both.
func (t *Tracker) RefreshLogs(ctx context.Context) error {
	if err := t.logs.ClearLogsCache(ctx); err != nil {
		return err
	}
	if err := t.all.Run(ctx); err != nil {
		return err
	}
	return t.month.Run(ctx)
}

// LogsState returns the full list state.
func (t *Tracker) LogsState() async.FetchState[[]entity.CycleLog] {
	return t.all.State()
}

// MonthState returns the monthly list state.
func (t *Tracker) MonthState() async.FetchState[[]entity.CycleLog] {
	return t.month.State()
}

// SubmitState returns the state of log creation.
func (t *Tracker) SubmitState() async.SubmitState {
	return t.submit.State()
}

// History returns the paginated log history.
func (t *Tracker) History() *async.Paginator[entity.CycleLog] {
	return t.history
}

func (t *Tracker) fetchPage(ctx context.Context, page, pageSize int) ([]entity.CycleLog, int, error) {
	result, err := t.logs.GetCycleLogs(ctx, page, pageSize)
	if err != nil {
		return nil, 0, err
	}
	total := len(result.Logs)
	if result.Pagination != nil {
		total = result.Pagination.Total
	}
	return result.Logs, total, nil
}
