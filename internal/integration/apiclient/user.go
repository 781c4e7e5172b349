package apiclient

import (
	"context"
	"fmt"
	"time"

	"github.com/anbu-gynaecare/webapp/internal/application/adapter"
	"github.com/anbu-gynaecare/webapp/internal/domain/entity"
)

// UserService reads the signed-in user's profile.
type UserService struct {
	client *Client
	cache  *resourceCache
}

// NewUserService creates a user service caching profiles for ttl.
func NewUserService(client *Client, cache adapter.Cache, ttl time.Duration) *UserService {
	return &UserService{client: client, cache: newResourceCache(cache, ttl)}
}

var _ adapter.UserAPI = (*UserService)(nil)

// GetUser fetches the profile from the remote API.
func (s *UserService) GetUser(ctx context.Context) (*entity.User, error) {
	var user entity.User
	if _, err := s.client.get(ctx, "/users/me", nil, &user); err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	return &user, nil
}

// GetUserWithCache returns the cached profile when fresh.
func (s *UserService) GetUserWithCache(ctx context.Context, skipCache bool) (*entity.User, error) {
	key, _ := sessionKey(ctx, keyUser)
	return loadCached(ctx, s.cache, key, skipCache, func(u *entity.User) bool { return u != nil }, s.GetUser)
}

// ClearUserCache drops the cached profile of the session in ctx.
func (s *UserService) ClearUserCache(ctx context.Context) error {
	key, ok := sessionKey(ctx, keyUser)
	if !ok {
		return nil
	}
	return s.cache.invalidate(ctx, key)
}
