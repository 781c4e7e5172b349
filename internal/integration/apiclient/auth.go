package apiclient

import (
	"context"
	"fmt"
	"strings"

	"github.com/anbu-gynaecare/webapp/internal/application/adapter"
	"github.com/anbu-gynaecare/webapp/internal/domain/entity"
	domainerror "github.com/anbu-gynaecare/webapp/internal/domain/error"
)

// AuthService calls the registration and login endpoints.
type AuthService struct {
	client *Client
}

// NewAuthService creates an auth service.
func NewAuthService(client *Client) *AuthService {
	return &AuthService{client: client}
}

var _ adapter.AuthAPI = (*AuthService)(nil)

// Register creates an account and returns the user with its access token.
func (s *AuthService) Register(ctx context.Context, input entity.RegisterInput) (*entity.AuthResult, error) {
	if err := validateRegister(input); err != nil {
		return nil, fmt.Errorf("registration failed: %w", err)
	}

	var result entity.AuthResult
	if _, err := s.client.post(ctx, registerPath, input, &result); err != nil {
		return nil, fmt.Errorf("registration failed: %w", err)
	}
	return &result, nil
}

// Login authenticates with email and password.
func (s *AuthService) Login(ctx context.Context, input entity.LoginInput) (*entity.AuthResult, error) {
	switch {
	case strings.TrimSpace(input.Email) == "":
		return nil, fmt.Errorf("login failed: %w", domainerror.NewMissingFieldError("email"))
	case input.Password == "":
		return nil, fmt.Errorf("login failed: %w", domainerror.NewMissingFieldError("password"))
	}

	var result entity.AuthResult
	if _, err := s.client.post(ctx, loginPath, input, &result); err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}
	return &result, nil
}

func validateRegister(input entity.RegisterInput) error {
	switch {
	case strings.TrimSpace(input.Name) == "":
		return domainerror.NewMissingFieldError("name")
	case strings.TrimSpace(input.Email) == "":
		return domainerror.NewMissingFieldError("email")
	case input.Password == "":
		return domainerror.NewMissingFieldError("password")
	case !entity.IsValidEmail(input.Email):
		return domainerror.NewAuthError(domainerror.ErrCodeInvalidEmail, "Please enter a valid email address", domainerror.ErrInvalidEmail)
	case input.Age < 0:
		return domainerror.NewValidationError("age", "Age must not be negative")
	}
	return nil
}
