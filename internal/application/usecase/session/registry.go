// Package session keeps the in-memory state of each browser session.
package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/anbu-gynaecare/webapp/internal/application/adapter"
	"github.com/anbu-gynaecare/webapp/internal/application/async"
	"github.com/anbu-gynaecare/webapp/internal/application/usecase/cart"
	"github.com/anbu-gynaecare/webapp/internal/application/usecase/cyclelog"
	"github.com/anbu-gynaecare/webapp/internal/application/usecase/cyclesetup"
	"github.com/anbu-gynaecare/webapp/internal/application/usecase/prediction"
	"github.com/anbu-gynaecare/webapp/internal/application/usecase/product"
)

// State is everything a session holds between requests.
type State struct {
	Cart       *cart.Cart
	Logs       *cyclelog.Tracker
	Prediction *prediction.Tracker
	Catalog    *product.Catalog
	Search     *product.Search
	Creator    *product.Creator
	Setup      *cyclesetup.Setup
	Drafts     *cyclesetup.Drafts
}

// Close stops background work owned by the state.
func (s *State) Close() {
	if s.Search != nil {
		s.Search.Close()
	}
}

// Services are the dependencies used to build a State.
type Services struct {
	Logs           adapter.LogAPI
	Predictions    adapter.PredictionAPI
	Products       adapter.ProductAPI
	Cycles         adapter.CycleAPI
	Drafts         adapter.OnboardingDraftRepository
	Fetch          async.FetcherOptions
	PageSize       int
	SearchDebounce time.Duration
}

// NewState builds the state of one session. ctx bounds background searches.
func (s Services) NewState(ctx context.Context) *State {
	setup := cyclesetup.NewSetup(s.Cycles, s.Predictions, s.Drafts)
	return &State{
		Cart:       cart.New(),
		Logs:       cyclelog.NewTracker(s.Logs, s.Fetch, s.PageSize),
		Prediction: prediction.NewTracker(s.Predictions, s.Fetch),
		Catalog:    product.NewCatalog(s.Products, s.Fetch),
		Search:     product.NewSearch(ctx, s.Products, s.SearchDebounce),
		Creator:    product.NewCreator(s.Products),
		Setup:      setup,
		Drafts:     cyclesetup.NewDrafts(s.Drafts, setup),
	}
}

// Factory builds the state of a session.
type Factory func(ctx context.Context) *State

type entry struct {
	state    *State
	cancel   context.CancelFunc
	lastUsed time.Time
}

// Registry maps session IDs to their state, creating it on first use.
type Registry struct {
	factory Factory
	now     func() time.Time

	mu      sync.Mutex
	entries map[uuid.UUID]*entry
}

// NewRegistry creates a registry using factory for new sessions.
func NewRegistry(factory Factory) *Registry {
	return &Registry{
		factory: factory,
		now:     time.Now,
		entries: make(map[uuid.UUID]*entry),
	}
}

// Get returns the state of id, creating it when absent.
func (r *Registry) Get(id uuid.UUID) *State {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.entries[id]; ok {
		e.lastUsed = r.now()
		return e.state
	}

	ctx, cancel := context.WithCancel(adapter.WithSessionID(context.Background(), id))
	e := &entry{
		state:    r.factory(ctx),
		cancel:   cancel,
		lastUsed: r.now(),
	}
	r.entries[id] = e
	return e.state
}

// Close releases the state of id. The next Get starts from scratch, so the
// cart is emptied.
func (r *Registry) Close(id uuid.UUID) {
	r.mu.Lock()
	e, ok := r.entries[id]
	delete(r.entries, id)
	r.mu.Unlock()

	if ok {
		e.release()
	}
}

// EvictIdle releases sessions unused since cutoff and returns how many were released.
func (r *Registry) EvictIdle(cutoff time.Time) int {
	r.mu.Lock()
	var idle []*entry
	for id, e := range r.entries {
		if e.lastUsed.Before(cutoff) {
			idle = append(idle, e)
			delete(r.entries, id)
		}
	}
	r.mu.Unlock()

	for _, e := range idle {
		e.release()
	}
	if len(idle) > 0 {
		slog.Info("Evicted idle session state", "count", len(idle))
	}
	return len(idle)
}

// CloseAll releases every session.
func (r *Registry) CloseAll() {
	r.EvictIdle(time.Unix(1<<62, 0))
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

func (e *entry) release() {
	e.state.Close()
	e.cancel()
}
