// Package user contains profile use cases.
package user

import (
	"context"

	"github.com/anbu-gynaecare/webapp/internal/application/adapter"
	"github.com/anbu-gynaecare/webapp/internal/domain/entity"
)

// GetProfileUseCase returns the signed-in user's profile.
type GetProfileUseCase struct {
	users adapter.UserAPI
}

// NewGetProfileUseCase creates a new GetProfileUseCase instance.
func NewGetProfileUseCase(users adapter.UserAPI) *GetProfileUseCase {
	return &GetProfileUseCase{users: users}
}

// Execute returns the cached profile unless refresh is set.
func (uc *GetProfileUseCase) Execute(ctx context.Context, refresh bool) (*entity.User, error) {
	return uc.users.GetUserWithCache(ctx, refresh)
}
