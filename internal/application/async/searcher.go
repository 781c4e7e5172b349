package async

import (
	"context"
	"strings"
	"sync"
	"time"

	domainerror "github.com/anbu-gynaecare/webapp/internal/domain/error"
)

// DefaultSearchDebounce is the quiet period used when none is given.
const DefaultSearchDebounce = 500 * time.Millisecond

// SearchFunc runs a query.
type SearchFunc[T any] func(ctx context.Context, query string) ([]T, error)

// SearchState is a point-in-time copy of a Searcher's state.
type SearchState[T any] struct {
	Query   string
	Results []T
	Loading bool
	Error   string
}

// Searcher debounces queries: only the last query of a burst reaches the
// search function, once the burst has been quiet for the debounce period.
type Searcher[T any] struct {
	fn       SearchFunc[T]
	debounce time.Duration
	ctx      context.Context
	cancel   context.CancelFunc

	mu      sync.Mutex
	timer   *time.Timer
	seq     uint64
	closed  bool
	query   string
	results []T
	loading bool
	errMsg  string
}

// NewSearcher creates a searcher. Queries run with a context derived from
// parent that is canceled by Close.
func NewSearcher[T any](parent context.Context, fn SearchFunc[T], debounce time.Duration) *Searcher[T] {
	if debounce <= 0 {
		debounce = DefaultSearchDebounce
	}
	ctx, cancel := context.WithCancel(parent)
	return &Searcher[T]{
		fn:       fn,
		debounce: debounce,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Search cancels any pending query and schedules query after the debounce
// period. A blank query clears the results immediately.
func (s *Searcher[T]) Search(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.seq++
	s.query = query

	if strings.TrimSpace(query) == "" {
		s.results = nil
		s.errMsg = ""
		s.loading = false
		return
	}

	seq := s.seq
	s.timer = time.AfterFunc(s.debounce, func() {
		s.execute(seq, query)
	})
}

// Close stops the pending timer and cancels an in-flight query.
func (s *Searcher[T]) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.cancel()
}

// State returns a copy of the current state.
func (s *Searcher[T]) State() SearchState[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	results := make([]T, len(s.results))
	copy(results, s.results)
	return SearchState[T]{
		Query:   s.query,
		Results: results,
		Loading: s.loading,
		Error:   s.errMsg,
	}
}

func (s *Searcher[T]) execute(seq uint64, query string) {
	s.mu.Lock()
	if s.closed || seq != s.seq {
		s.mu.Unlock()
		return
	}
	s.timer = nil
	s.loading = true
	s.errMsg = ""
	s.mu.Unlock()

	results, err := s.fn(s.ctx, query)

	s.mu.Lock()
	defer s.mu.Unlock()
	// A newer query owns the state now.
	if seq != s.seq {
		return
	}
	s.loading = false
	if err != nil {
		s.errMsg = domainerror.DisplayMessage(err)
		return
	}
	s.results = results
}
