package error

import "errors"

// Session and authentication errors.
var (
	// ErrSessionNotFound is returned when a session ID does not match any stored session.
	ErrSessionNotFound = errors.New("session not found")

	// ErrNotAuthenticated is returned when a session holds no access token.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrSessionExpired is returned when the session's access token is past its expiry.
	ErrSessionExpired = errors.New("session has expired")

	// ErrWeakPassword is returned when the provided password does not meet requirements.
	ErrWeakPassword = errors.New("password does not meet minimum requirements")

	// ErrInvalidEmail is returned when the provided email format is invalid.
	ErrInvalidEmail = errors.New("invalid email format")

	// ErrMissingToken is returned when the remote API answers a login without a token.
	ErrMissingToken = errors.New("no access token in response")
)

// AuthErrorCode defines error codes for authentication errors.
// Format: AUTH-XXYYYY where XX is category and YYYY is specific error.
type AuthErrorCode string

const (
	// Registration errors (01XXXX)
	ErrCodeWeakPassword  AuthErrorCode = "AUTH-010003"
	ErrCodeInvalidEmail  AuthErrorCode = "AUTH-010004"
	ErrCodeMissingFields AuthErrorCode = "AUTH-010005"

	// Login errors (02XXXX)
	ErrCodeInvalidCredentials AuthErrorCode = "AUTH-020001"
	ErrCodeRateLimited        AuthErrorCode = "AUTH-020003"

	// Session errors (03XXXX)
	ErrCodeNotAuthenticated AuthErrorCode = "AUTH-030001"
	ErrCodeSessionExpired   AuthErrorCode = "AUTH-030002"
	ErrCodeMissingSession   AuthErrorCode = "AUTH-030003"
)

// AuthError represents an authentication error with code and message.
type AuthError struct {
	Code    AuthErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AuthError) Unwrap() error {
	return e.Err
}

// NewAuthError creates a new AuthError with the given code and message.
func NewAuthError(code AuthErrorCode, message string, err error) *AuthError {
	return &AuthError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
