// Package async provides goroutine-safe loading, error and retry state for
// operations that call the remote API on behalf of a browser session.
package async

import (
	"context"
	"log/slog"
	"sync"
	"time"

	domainerror "github.com/anbu-gynaecare/webapp/internal/domain/error"
)

// Status is the lifecycle state of an async operation.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Default read settings.
const (
	DefaultRetry      = 2
	DefaultRetryDelay = time.Second
)

// FetchFunc loads a value.
type FetchFunc[T any] func(ctx context.Context) (T, error)

// FetcherOptions configures a Fetcher.
type FetcherOptions struct {
	// Immediate makes Start run the fetch once.
	Immediate bool
	// Retry is the number of extra attempts after a failure.
	Retry int
	// RetryDelay is the fixed pause between attempts.
	RetryDelay time.Duration
}

// DefaultFetcherOptions returns immediate fetching with two retries one second apart.
func DefaultFetcherOptions() FetcherOptions {
	return FetcherOptions{
		Immediate:  true,
		Retry:      DefaultRetry,
		RetryDelay: DefaultRetryDelay,
	}
}

// FetchState is a point-in-time copy of a Fetcher's state.
type FetchState[T any] struct {
	Status     Status
	Data       T
	HasData    bool
	Error      string
	RetryCount int
}

// Loading reports whether a fetch is in flight.
func (s FetchState[T]) Loading() bool {
	return s.Status == StatusLoading
}

// Fetcher runs a read with bounded retries and keeps its latest outcome.
// Runs are serialized; state can be read concurrently at any time.
type Fetcher[T any] struct {
	fn    FetchFunc[T]
	opts  FetcherOptions
	sleep func(ctx context.Context, d time.Duration) error

	run sync.Mutex

	mu         sync.RWMutex
	status     Status
	data       T
	hasData    bool
	errMsg     string
	retryCount int
}

// NewFetcher creates a fetcher for fn. Negative retry counts are treated as zero.
func NewFetcher[T any](fn FetchFunc[T], opts FetcherOptions) *Fetcher[T] {
	if opts.Retry < 0 {
		opts.Retry = 0
	}
	return &Fetcher[T]{
		fn:     fn,
		opts:   opts,
		sleep:  sleepContext,
		status: StatusIdle,
	}
}

// Start runs the fetch once when the fetcher is immediate.
func (f *Fetcher[T]) Start(ctx context.Context) error {
	if !f.opts.Immediate {
		return nil
	}
	return f.Run(ctx)
}

// Run executes up to 1+Retry attempts, pausing RetryDelay between them.
// The returned error is the normalized error of the last attempt.
func (f *Fetcher[T]) Run(ctx context.Context) error {
	f.run.Lock()
	defer f.run.Unlock()

	f.mu.Lock()
	f.status = StatusLoading
	f.errMsg = ""
	f.retryCount = 0
	f.mu.Unlock()

	var lastErr error
	for attempt := 0; attempt <= f.opts.Retry; attempt++ {
		if attempt > 0 {
			if err := f.sleep(ctx, f.opts.RetryDelay); err != nil {
				lastErr = err
				break
			}
			f.mu.Lock()
			f.retryCount = attempt
			f.mu.Unlock()
		}

		data, err := f.fn(ctx)
		if err == nil {
			f.mu.Lock()
			f.status = StatusSuccess
			f.data = data
			f.hasData = true
			f.retryCount = 0
			f.mu.Unlock()
			return nil
		}
		lastErr = err

		slog.Debug("Fetch attempt failed",
			"attempt", attempt+1,
			"max_attempts", f.opts.Retry+1,
			"error", err,
		)
		if ctx.Err() != nil {
			break
		}
	}

	classified := domainerror.Classify(lastErr)
	f.mu.Lock()
	f.status = StatusError
	f.errMsg = classified.Display()
	f.mu.Unlock()
	return classified
}

// Retry resets the attempt counter and runs again regardless of state.
func (f *Fetcher[T]) Retry(ctx context.Context) error {
	return f.Run(ctx)
}

// State returns a copy of the current state.
func (f *Fetcher[T]) State() FetchState[T] {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return FetchState[T]{
		Status:     f.status,
		Data:       f.data,
		HasData:    f.hasData,
		Error:      f.errMsg,
		RetryCount: f.retryCount,
	}
}

// sleepContext waits for d or until ctx is done.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
