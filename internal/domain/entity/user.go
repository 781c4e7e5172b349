// Package entity defines the core business entities for the domain layer.
// Records are mirrored from the remote API; the web backend holds no
// authoritative copy of them.
package entity

import (
	"net/mail"
	"strings"
	"time"
)

// User represents the authenticated account as returned by the remote API.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Age       int       `json:"age"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// RegisterInput is the payload for account registration.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Age      int    `json:"age,omitempty"`
}

// LoginInput is the payload for login.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResult is the payload of a successful login or registration.
type AuthResult struct {
	User        User   `json:"user"`
	AccessToken string `json:"accessToken"`
}

// IsValidEmail reports whether email is a bare address.
func IsValidEmail(email string) bool {
	email = strings.TrimSpace(email)
	if email == "" {
		return false
	}
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}
