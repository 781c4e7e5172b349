package auth

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/anbu-gynaecare/webapp/internal/domain/entity"
	domainerror "github.com/anbu-gynaecare/webapp/internal/domain/error"
)

type memorySessions struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]entity.Session
}

func newMemorySessions() *memorySessions {
	return &memorySessions{sessions: map[uuid.UUID]entity.Session{}}
}

func (m *memorySessions) Create(ctx context.Context, s *entity.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = *s
	return nil
}

func (m *memorySessions) FindByID(ctx context.Context, id uuid.UUID) (*entity.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, domainerror.ErrSessionNotFound
	}
	return &s, nil
}

func (m *memorySessions) Update(ctx context.Context, s *entity.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[s.ID]; !ok {
		return domainerror.ErrSessionNotFound
	}
	m.sessions[s.ID] = *s
	return nil
}

func (m *memorySessions) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

func (m *memorySessions) DeleteIdleBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	return 0, nil
}

type fakeAuthAPI struct {
	result *entity.AuthResult
	err    error
	calls  int
}

func (f *fakeAuthAPI) Register(ctx context.Context, input entity.RegisterInput) (*entity.AuthResult, error) {
	f.calls++
	return f.result, f.err
}

func (f *fakeAuthAPI) Login(ctx context.Context, input entity.LoginInput) (*entity.AuthResult, error) {
	f.calls++
	return f.result, f.err
}

type fixedInspector struct {
	expiresAt time.Time
	ok        bool
}

func (i fixedInspector) ExpiresAt(token string) (time.Time, bool) {
	return i.expiresAt, i.ok
}

// countingCaches implements the cache-clearing part of the remote API adapters.
type countingCaches struct {
	user, logs, predictions int
}

func (c *countingCaches) GetUser(ctx context.Context) (*entity.User, error) { return nil, nil }
func (c *countingCaches) GetUserWithCache(ctx context.Context, skip bool) (*entity.User, error) {
	return nil, nil
}
func (c *countingCaches) ClearUserCache(ctx context.Context) error { c.user++; return nil }
func (c *countingCaches) CreateCycleLog(ctx context.Context, input entity.LogInput) (*entity.CycleLog, error) {
	return nil, nil
}
func (c *countingCaches) GetCycleLogs(ctx context.Context, page, limit int) (*entity.LogPage, error) {
	return nil, nil
}
func (c *countingCaches) GetCycleLogsWithCache(ctx context.Context, skip bool) ([]entity.CycleLog, error) {
	return nil, nil
}
func (c *countingCaches) GetMonthlyLogsWithCache(ctx context.Context, skip bool) ([]entity.CycleLog, error) {
	return nil, nil
}
func (c *countingCaches) ClearLogsCache(ctx context.Context) error { c.logs++; return nil }
func (c *countingCaches) GetCyclePredictionsWithCache(ctx context.Context, skip bool) ([]entity.CyclePrediction, error) {
	return nil, nil
}
func (c *countingCaches) ClearPredictionsCache(ctx context.Context) error {
	c.predictions++
	return nil
}

func (c *countingCaches) sessionCaches(states SessionCloser) SessionCaches {
	return SessionCaches{User: c, Logs: c, Predictions: c, States: states}
}

type recordingCloser struct {
	closed []uuid.UUID
}

func (r *recordingCloser) Close(id uuid.UUID) {
	r.closed = append(r.closed, id)
}
