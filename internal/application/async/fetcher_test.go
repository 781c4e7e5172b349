package async

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	domainerror "github.com/anbu-gynaecare/webapp/internal/domain/error"
)

func noSleep(calls *int32) func(context.Context, time.Duration) error {
	return func(ctx context.Context, _ time.Duration) error {
		atomic.AddInt32(calls, 1)
		return ctx.Err()
	}
}

func TestFetcher_RetriesBoundedTimes(t *testing.T) {
	var calls, sleeps int32
	f := NewFetcher(func(ctx context.Context) (string, error) {
		atomic.AddInt32(&calls, 1)
		return "", &domainerror.HTTPError{Status: 503, Message: "unavailable"}
	}, FetcherOptions{Retry: 2, RetryDelay: time.Second})
	f.sleep = noSleep(&sleeps)

	err := f.Run(context.Background())

	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 3 {
		t.Errorf("expected 3 attempts, got %d", calls)
	}
	if sleeps != 2 {
		t.Errorf("expected 2 pauses, got %d", sleeps)
	}
	state := f.State()
	if state.Status != StatusError {
		t.Errorf("expected error status, got %s", state.Status)
	}
	if state.Error != domainerror.MsgServerError {
		t.Errorf("expected server message, got %q", state.Error)
	}
}

func TestFetcher_SuccessAfterFailureResetsCounter(t *testing.T) {
	var calls int32
	var sleeps int32
	f := NewFetcher(func(ctx context.Context) (int, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			return 0, errors.New("Network Error")
		}
		return 42, nil
	}, DefaultFetcherOptions())
	f.sleep = noSleep(&sleeps)

	if err := f.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	state := f.State()
	if state.Status != StatusSuccess || !state.HasData || state.Data != 42 {
		t.Errorf("unexpected state %+v", state)
	}
	if state.RetryCount != 0 {
		t.Errorf("expected retry count reset, got %d", state.RetryCount)
	}
	if state.Error != "" {
		t.Errorf("expected no error, got %q", state.Error)
	}
}

func TestFetcher_StopsWhenContextCanceled(t *testing.T) {
	var calls int32
	f := NewFetcher(func(ctx context.Context) (int, error) {
		atomic.AddInt32(&calls, 1)
		return 0, errors.New("boom")
	}, FetcherOptions{Retry: 5, RetryDelay: time.Hour})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- f.Run(ctx) }()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err == nil {
			t.Fatal("expected error after cancel")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	if calls != 1 {
		t.Errorf("expected a single attempt, got %d", calls)
	}
}

func TestFetcher_StartRespectsImmediate(t *testing.T) {
	var calls int32
	fn := func(ctx context.Context) (int, error) {
		atomic.AddInt32(&calls, 1)
		return 1, nil
	}

	manual := NewFetcher(fn, FetcherOptions{Immediate: false})
	_ = manual.Start(context.Background())
	if calls != 0 {
		t.Fatalf("expected no call for manual fetcher, got %d", calls)
	}
	if manual.State().Status != StatusIdle {
		t.Errorf("expected idle, got %s", manual.State().Status)
	}

	immediate := NewFetcher(fn, FetcherOptions{Immediate: true})
	_ = immediate.Start(context.Background())
	if calls != 1 {
		t.Errorf("expected one call, got %d", calls)
	}
}

func TestFetcher_RetryRunsAgainAfterSuccess(t *testing.T) {
	var calls int32
	f := NewFetcher(func(ctx context.Context) (int32, error) {
		return atomic.AddInt32(&calls, 1), nil
	}, FetcherOptions{})

	_ = f.Run(context.Background())
	_ = f.Retry(context.Background())

	if got := f.State().Data; got != 2 {
		t.Errorf("expected second result, got %d", got)
	}
}
