package dto

import (
	"time"

	"github.com/anbu-gynaecare/webapp/internal/domain/entity"
)

// RegisterRequest represents the request body for user registration.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Age      int    `json:"age" binding:"omitempty,min=0,max=120"`
}

// LoginRequest represents the request body for user login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// PasswordRequest represents the request body for password checks.
type PasswordRequest struct {
	Password string `json:"password" binding:"required"`
}

// UserResponse represents a user in API responses.
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Age       int       `json:"age,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResponse represents the response for login and registration.
// The access token stays on the server.
type AuthResponse struct {
	User      UserResponse `json:"user"`
	ExpiresAt time.Time    `json:"expires_at"`
}

// SessionResponse represents the authentication state of the session.
type SessionResponse struct {
	Authenticated bool       `json:"authenticated"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
}

// PasswordValidationResponse represents the outcome of a password check.
type PasswordValidationResponse struct {
	IsValid         bool     `json:"is_valid"`
	Errors          []string `json:"errors"`
	Strength        string   `json:"strength"`
	Message         string   `json:"message,omitempty"`
	StrengthMessage string   `json:"strength_message"`
}

// ToUserResponse converts a User entity to a UserResponse DTO.
func ToUserResponse(user *entity.User) UserResponse {
	if user == nil {
		return UserResponse{}
	}
	return UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Age:       user.Age,
		CreatedAt: user.CreatedAt,
	}
}

// ToPasswordValidationResponse converts a PasswordValidation to its DTO.
func ToPasswordValidationResponse(v entity.PasswordValidation) PasswordValidationResponse {
	resp := PasswordValidationResponse{
		IsValid:         v.IsValid,
		Errors:          v.Errors,
		Strength:        string(v.Strength),
		StrengthMessage: entity.PasswordStrengthMessage(v.Strength),
	}
	if !v.IsValid {
		resp.Message = entity.PasswordErrorMessage(v)
	}
	return resp
}
