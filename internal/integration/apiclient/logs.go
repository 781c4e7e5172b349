package apiclient

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/anbu-gynaecare/webapp/internal/application/adapter"
	"github.com/anbu-gynaecare/webapp/internal/domain/entity"
)

// LogService creates and lists cycle logs.
type LogService struct {
	client *Client
	cache  *resourceCache
}

// NewLogService creates a log service caching lists for ttl.
func NewLogService(client *Client, cache adapter.Cache, ttl time.Duration) *LogService {
	return &LogService{client: client, cache: newResourceCache(cache, ttl)}
}

var _ adapter.LogAPI = (*LogService)(nil)

// CreateCycleLog validates and records a daily log.
func (s *LogService) CreateCycleLog(ctx context.Context, input entity.LogInput) (*entity.CycleLog, error) {
	if err := input.Validate(); err != nil {
		return nil, fmt.Errorf("failed to create cycle log: %w", err)
	}

	var log entity.CycleLog
	if _, err := s.client.post(ctx, "/cycle-logs", input, &log); err != nil {
		return nil, fmt.Errorf("failed to create cycle log: %w", err)
	}
	return &log, nil
}

// GetCycleLogs lists logs. Page and limit are sent only when positive.
func (s *LogService) GetCycleLogs(ctx context.Context, page, limit int) (*entity.LogPage, error) {
	query := url.Values{}
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	var logs []entity.CycleLog
	env, err := s.client.get(ctx, "/cycle-logs", query, &logs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch cycle logs: %w", err)
	}
	if logs == nil {
		logs = []entity.CycleLog{}
	}
	return &entity.LogPage{Logs: logs, Pagination: env.Pagination}, nil
}

// GetMonthlyLogs lists the logs of the current month.
func (s *LogService) GetMonthlyLogs(ctx context.Context) ([]entity.CycleLog, error) {
	var logs []entity.CycleLog
	if _, err := s.client.get(ctx, "/cycle-logs/month", nil, &logs); err != nil {
		return nil, fmt.Errorf("failed to fetch monthly logs: %w", err)
	}
	if logs == nil {
		logs = []entity.CycleLog{}
	}
	return logs, nil
}

// GetCycleLogsWithCache returns the cached log list when fresh and non-empty.
func (s *LogService) GetCycleLogsWithCache(ctx context.Context, skipCache bool) ([]entity.CycleLog, error) {
	key, _ := sessionKey(ctx, keyLogs)
	return loadCached(ctx, s.cache, key, skipCache, nonEmpty[entity.CycleLog], s.allLogs)
}

// GetMonthlyLogsWithCache returns the cached monthly list when fresh and non-empty.
func (s *LogService) GetMonthlyLogsWithCache(ctx context.Context, skipCache bool) ([]entity.CycleLog, error) {
	key, _ := sessionKey(ctx, keyMonthlyLogs)
	return loadCached(ctx, s.cache, key, skipCache, nonEmpty[entity.CycleLog], s.GetMonthlyLogs)
}

// ClearLogsCache drops both log lists of the session in ctx.
func (s *LogService) ClearLogsCache(ctx context.Context) error {
	logsKey, ok := sessionKey(ctx, keyLogs)
	if !ok {
		return nil
	}
	monthKey, _ := sessionKey(ctx, keyMonthlyLogs)
	return s.cache.invalidate(ctx, logsKey, monthKey)
}

func (s *LogService) allLogs(ctx context.Context) ([]entity.CycleLog, error) {
	page, err := s.GetCycleLogs(ctx, 0, 0)
	if err != nil {
		return nil, err
	}
	return page.Logs, nil
}
