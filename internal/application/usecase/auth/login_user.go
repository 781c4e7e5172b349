package auth

import (
	"context"
	"time"

	"github.com/anbu-gynaecare/webapp/internal/application/adapter"
	"github.com/anbu-gynaecare/webapp/internal/domain/entity"
)

// LoginUserOutput represents the output of user login.
type LoginUserOutput struct {
	User      *entity.User
	ExpiresAt time.Time
}

// LoginUserUseCase handles user login logic.
type LoginUserUseCase struct {
	authAPI adapter.AuthAPI
	caches  SessionCaches
	signer  *sessionSigner
}

// NewLoginUserUseCase creates a new LoginUserUseCase instance.
func NewLoginUserUseCase(
	authAPI adapter.AuthAPI,
	sessions adapter.SessionRepository,
	inspector adapter.TokenInspector,
	caches SessionCaches,
	sessionTTL time.Duration,
) *LoginUserUseCase {
	return &LoginUserUseCase{
		authAPI: authAPI,
		caches:  caches,
		signer: &sessionSigner{
			sessions:  sessions,
			inspector: inspector,
			ttl:       sessionTTL,
			now:       time.Now,
		},
	}
}

// Execute authenticates against the remote API and stores the token in the
// session. Caches and cart of a previous account in the same session are
// dropped.
func (uc *LoginUserUseCase) Execute(ctx context.Context, input entity.LoginInput) (*LoginUserOutput, error) {
	result, err := uc.authAPI.Login(ctx, input)
	if err != nil {
		return nil, err
	}

	// The session may have belonged to another account.
	if err := uc.caches.Clear(ctx); err != nil {
		return nil, err
	}
	session, err := uc.signer.signIn(ctx, result.AccessToken)
	if err != nil {
		return nil, err
	}

	return &LoginUserOutput{
		User:      &result.User,
		ExpiresAt: session.ExpiresAt,
	}, nil
}
