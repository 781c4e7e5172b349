package async

import (
	"context"
	"sync"

	domainerror "github.com/anbu-gynaecare/webapp/internal/domain/error"
)

// SubmitFunc performs a mutating call.
type SubmitFunc[T any] func(ctx context.Context) (T, error)

// SubmitterOptions holds the callbacks of a Submitter.
type SubmitterOptions struct {
	OnSuccess func(ctx context.Context)
	OnError   func(ctx context.Context, message string)
}

// SubmitState is a point-in-time copy of a Submitter's state.
type SubmitState struct {
	Loading bool
	Error   string
}

// Submitter runs mutating calls once, without retries, and keeps the
// display message of the last failure. A call made while another one is
// pending is rejected with ErrSubmitPending and never reaches the remote API.
type Submitter[T any] struct {
	opts SubmitterOptions

	mu      sync.Mutex
	pending bool
	errMsg  string
}

// NewSubmitter creates a submitter with the given callbacks.
func NewSubmitter[T any](opts SubmitterOptions) *Submitter[T] {
	return &Submitter[T]{opts: opts}
}

// Submit runs fn. On failure it returns the zero value and the normalized
// error, whose message is also stored in the state.
func (s *Submitter[T]) Submit(ctx context.Context, fn SubmitFunc[T]) (T, error) {
	var zero T

	s.mu.Lock()
	if s.pending {
		s.mu.Unlock()
		return zero, domainerror.ErrSubmitPending
	}
	s.pending = true
	s.errMsg = ""
	s.mu.Unlock()

	result, err := fn(ctx)

	if err != nil {
		classified := domainerror.Classify(err)
		message := classified.Display()
		s.mu.Lock()
		s.pending = false
		s.errMsg = message
		s.mu.Unlock()
		if s.opts.OnError != nil {
			s.opts.OnError(ctx, message)
		}
		return zero, classified
	}

	s.mu.Lock()
	s.pending = false
	s.mu.Unlock()
	if s.opts.OnSuccess != nil {
		s.opts.OnSuccess(ctx)
	}
	return result, nil
}

// ClearError removes the stored error message.
func (s *Submitter[T]) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errMsg = ""
}

// State returns a copy of the current state.
func (s *Submitter[T]) State() SubmitState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return SubmitState{Loading: s.pending, Error: s.errMsg}
}
