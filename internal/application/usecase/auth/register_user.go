package auth

import (
	"context"
	"time"

	"github.com/anbu-gynaecare/webapp/internal/application/adapter"
	"github.com/anbu-gynaecare/webapp/internal/domain/entity"
	domainerror "github.com/anbu-gynaecare/webapp/internal/domain/error"
)

// RegisterUserOutput represents the output of user registration.
type RegisterUserOutput struct {
	User      *entity.User
	ExpiresAt time.Time
}

// RegisterUserUseCase handles account registration.
type RegisterUserUseCase struct {
	authAPI adapter.AuthAPI
	caches  SessionCaches
	signer  *sessionSigner
}

// NewRegisterUserUseCase creates a new RegisterUserUseCase instance.
func NewRegisterUserUseCase(
	authAPI adapter.AuthAPI,
	sessions adapter.SessionRepository,
	inspector adapter.TokenInspector,
	caches SessionCaches,
	sessionTTL time.Duration,
) *RegisterUserUseCase {
	return &RegisterUserUseCase{
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

// Execute checks the email and password locally, registers the account and
// signs the session in with the returned token.
func (uc *RegisterUserUseCase) Execute(ctx context.Context, input entity.RegisterInput) (*RegisterUserOutput, error) {
	if !entity.IsValidEmail(input.Email) {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeInvalidEmail,
			"Please enter a valid email address",
			domainerror.ErrInvalidEmail,
		)
	}
	validation := entity.ValidatePassword(input.Password, entity.DefaultPasswordRequirements)
	if !validation.IsValid {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeWeakPassword,
			entity.PasswordErrorMessage(validation),
			domainerror.ErrWeakPassword,
		)
	}

	result, err := uc.authAPI.Register(ctx, input)
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

	return &RegisterUserOutput{
		User:      &result.User,
		ExpiresAt: session.ExpiresAt,
	}, nil
}
