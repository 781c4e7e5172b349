package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/anbu-gynaecare/webapp/internal/domain/entity"
	domainerror "github.com/anbu-gynaecare/webapp/internal/domain/error"
)

type stubAPI struct {
	user        *entity.User
	logs        []entity.CycleLog
	predictions []entity.CyclePrediction
	userErr     error
}

func (s *stubAPI) GetUser(ctx context.Context) (*entity.User, error) { return s.user, s.userErr }
func (s *stubAPI) GetUserWithCache(ctx context.Context, skip bool) (*entity.User, error) {
	return s.user, s.userErr
}
func (s *stubAPI) ClearUserCache(ctx context.Context) error { return nil }
func (s *stubAPI) CreateCycleLog(ctx context.Context, input entity.LogInput) (*entity.CycleLog, error) {
	return nil, nil
}
func (s *stubAPI) GetCycleLogs(ctx context.Context, page, limit int) (*entity.LogPage, error) {
	return nil, nil
}
func (s *stubAPI) GetCycleLogsWithCache(ctx context.Context, skip bool) ([]entity.CycleLog, error) {
	return s.logs, nil
}
func (s *stubAPI) GetMonthlyLogsWithCache(ctx context.Context, skip bool) ([]entity.CycleLog, error) {
	return s.logs, nil
}
func (s *stubAPI) ClearLogsCache(ctx context.Context) error { return nil }
func (s *stubAPI) GetCyclePredictionsWithCache(ctx context.Context, skip bool) ([]entity.CyclePrediction, error) {
	return s.predictions, nil
}
func (s *stubAPI) ClearPredictionsCache(ctx context.Context) error { return nil }

func TestGetSummary(t *testing.T) {
	now := time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		predicted   string
		wantDays    int
		wantRestock bool
	}{
		{"tomorrow", "2026-10-18T09:00:00Z", 1, true},
		{"a week out", "2026-10-24T09:00:00Z", 7, true},
		{"eight days out", "2026-10-25T09:00:00Z", 8, false},
		{"already passed", "2026-10-10", -7, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &stubAPI{
				user:        &entity.User{Name: "Ada"},
				logs:        []entity.CycleLog{{ID: "a"}, {ID: "b"}},
				predictions: []entity.CyclePrediction{{ID: "p", PredictedDate: tt.predicted}},
			}
			uc := NewGetSummaryUseCase(api, api, api)
			uc.now = func() time.Time { return now }

			out, err := uc.Execute(context.Background())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if out.UserName != "Ada" || out.LogCount != 2 {
				t.Errorf("unexpected summary %+v", out)
			}
			if out.DaysUntil != tt.wantDays || out.RestockReminder != tt.wantRestock {
				t.Errorf("expected days=%d restock=%v, got days=%d restock=%v",
					tt.wantDays, tt.wantRestock, out.DaysUntil, out.RestockReminder)
			}
		})
	}
}

func TestGetSummary_NoPrediction(t *testing.T) {
	api := &stubAPI{user: &entity.User{Name: "Ada"}}
	out, err := NewGetSummaryUseCase(api, api, api).Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Prediction != nil || out.DaysUntil != -1 || out.RestockReminder {
		t.Errorf("unexpected summary %+v", out)
	}
}

func TestGetSummary_PropagatesFailure(t *testing.T) {
	api := &stubAPI{userErr: &domainerror.HTTPError{Status: 401}}
	_, err := NewGetSummaryUseCase(api, api, api).Execute(context.Background())
	if !domainerror.IsAuth(err) {
		t.Errorf("expected auth error, got %v", err)
	}
}
