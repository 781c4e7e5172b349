package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/anbu-gynaecare/webapp/internal/application/adapter"
)

// Cache keys. Session-scoped keys are prefixed with the session ID.
const (
	keyUser        = "user"
	keyLogs        = "logs"
	keyMonthlyLogs = "logs:month"
	keyPredictions = "predictions"
	keyProducts    = "products:all"
)

// sessionKey scopes name to the session in ctx. It reports false when the
// request carries no session, in which case nothing is cached.
func sessionKey(ctx context.Context, name string) (string, bool) {
	id, ok := adapter.SessionIDFromContext(ctx)
	if !ok {
		return "", false
	}
	return fmt.Sprintf("session:%s:%s", id, name), true
}

// resourceCache pairs a Cache and a lifetime with concurrent miss collapsing.
type resourceCache struct {
	cache adapter.Cache
	ttl   time.Duration
	group singleflight.Group
}

func newResourceCache(cache adapter.Cache, ttl time.Duration) *resourceCache {
	return &resourceCache{cache: cache, ttl: ttl}
}

func (rc *resourceCache) invalidate(ctx context.Context, keys ...string) error {
	if rc.cache == nil {
		return nil
	}
	return rc.cache.Invalidate(ctx, keys...)
}

// loadCached returns the value under key when it is fresh and usable.
// Otherwise it fetches, stores and returns a new value; concurrent misses for
// the same key share one fetch. skipCache always fetches.
func loadCached[T any](
	ctx context.Context,
	rc *resourceCache,
	key string,
	skipCache bool,
	usable func(T) bool,
	fetch func(context.Context) (T, error),
) (T, error) {
	if rc.cache == nil || key == "" {
		return fetch(ctx)
	}

	if !skipCache {
		if value, ok := readCached(ctx, rc, key, usable); ok {
			return value, nil
		}
	}

	refresh := func() (any, error) {
		value, err := fetch(ctx)
		if err != nil {
			return value, err
		}
		writeCached(ctx, rc, key, value)
		return value, nil
	}

	if skipCache {
		value, err := refresh()
		typed, _ := value.(T)
		return typed, err
	}

	shared, err, _ := rc.group.Do(key, refresh)
	typed, _ := shared.(T)
	return typed, err
}

func readCached[T any](ctx context.Context, rc *resourceCache, key string, usable func(T) bool) (T, bool) {
	var value T
	raw, ok, err := rc.cache.Get(ctx, key)
	if err != nil {
		slog.Warn("Cache read failed, fetching from remote API", "key", key, "error", err)
		return value, false
	}
	if !ok {
		return value, false
	}
	if err := json.Unmarshal(raw, &value); err != nil {
		slog.Warn("Discarding undecodable cache entry", "key", key, "error", err)
		return value, false
	}
	if usable != nil && !usable(value) {
		return value, false
	}
	return value, true
}

func writeCached[T any](ctx context.Context, rc *resourceCache, key string, value T) {
	raw, err := json.Marshal(value)
	if err != nil {
		slog.Warn("Failed to encode cache entry", "key", key, "error", err)
		return
	}
	if err := rc.cache.Set(ctx, key, raw, rc.ttl); err != nil {
		slog.Warn("Cache write failed", "key", key, "error", err)
	}
}

// nonEmpty treats empty lists as cache misses.
func nonEmpty[T any](values []T) bool {
	return len(values) > 0
}
