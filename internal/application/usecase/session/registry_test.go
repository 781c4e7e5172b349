package session

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/anbu-gynaecare/webapp/internal/application/adapter"
	"github.com/anbu-gynaecare/webapp/internal/application/usecase/cart"
	"github.com/anbu-gynaecare/webapp/internal/domain/entity"
)

func TestRegistry_PerSessionState(t *testing.T) {
	var contexts []context.Context
	r := NewRegistry(func(ctx context.Context) *State {
		contexts = append(contexts, ctx)
		return &State{Cart: cart.New()}
	})

	a, b := uuid.New(), uuid.New()
	r.Get(a).Cart.AddToCart(entity.Product{ID: "p1", Price: 100}, 2)

	if r.Get(a).Cart.Snapshot().ItemCount != 2 {
		t.Error("expected the same state for repeated Gets")
	}
	if r.Get(b).Cart.Snapshot().ItemCount != 0 {
		t.Error("expected sessions not to share a cart")
	}
	if r.Len() != 2 {
		t.Errorf("expected 2 sessions, got %d", r.Len())
	}
	if id, ok := adapter.SessionIDFromContext(contexts[0]); !ok || id != a {
		t.Error("expected the state context to carry the session ID")
	}

	r.Close(a)
	if contexts[0].Err() == nil {
		t.Error("expected the state context canceled on Close")
	}
	if r.Get(a).Cart.Snapshot().ItemCount != 0 {
		t.Error("expected a fresh cart after Close")
	}
}

func TestRegistry_EvictIdle(t *testing.T) {
	r := NewRegistry(func(ctx context.Context) *State { return &State{} })
	now := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return now }

	old, fresh := uuid.New(), uuid.New()
	r.Get(old)
	now = now.Add(2 * time.Hour)
	r.Get(fresh)

	if n := r.EvictIdle(now.Add(-time.Hour)); n != 1 {
		t.Fatalf("expected 1 eviction, got %d", n)
	}
	if r.Len() != 1 {
		t.Errorf("expected 1 live session, got %d", r.Len())
	}

	r.CloseAll()
	if r.Len() != 0 {
		t.Errorf("expected no live sessions, got %d", r.Len())
	}
}
