// Package error defines domain-specific errors for the Anbu web backend.
package error

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind is the classification of an error that crossed the remote API boundary.
type Kind string

const (
	KindValidation    Kind = "validation"
	KindAuth          Kind = "auth"
	KindNetwork       Kind = "network"
	KindNotFound      Kind = "not_found"
	KindUnprocessable Kind = "unprocessable"
	KindServer        Kind = "server"
	KindUnknown       Kind = "unknown"
)

// ClientErrorCode defines error codes returned by the web backend.
// Format: CLIENT-XXYYYY where XX is category and YYYY is specific error.
type ClientErrorCode string

const (
	// Client-side validation (01XXXX)
	ErrCodeValidation    ClientErrorCode = "CLIENT-010001"
	ErrCodeMissingField  ClientErrorCode = "CLIENT-010002"
	ErrCodeInvalidValue  ClientErrorCode = "CLIENT-010003"
	ErrCodeSubmitPending ClientErrorCode = "CLIENT-010004"

	// Remote API (02XXXX)
	ErrCodeAuth          ClientErrorCode = "CLIENT-020001"
	ErrCodeNotFound      ClientErrorCode = "CLIENT-020002"
	ErrCodeUnprocessable ClientErrorCode = "CLIENT-020003"
	ErrCodeServer        ClientErrorCode = "CLIENT-020004"

	// Transport (03XXXX)
	ErrCodeNetwork ClientErrorCode = "CLIENT-030001"

	// Fallback (09XXXX)
	ErrCodeUnknown ClientErrorCode = "CLIENT-090001"
)

var kindCodes = map[Kind]ClientErrorCode{
	KindValidation:    ErrCodeValidation,
	KindAuth:          ErrCodeAuth,
	KindNetwork:       ErrCodeNetwork,
	KindNotFound:      ErrCodeNotFound,
	KindUnprocessable: ErrCodeUnprocessable,
	KindServer:        ErrCodeServer,
	KindUnknown:       ErrCodeUnknown,
}

// Code returns the error code associated with a kind.
func (k Kind) Code() ClientErrorCode {
	if code, ok := kindCodes[k]; ok {
		return code
	}
	return ErrCodeUnknown
}

// ErrSubmitPending is returned when a submission starts while another one
// from the same session is still in flight.
var ErrSubmitPending = errors.New("a submission is already in progress")

// ValidationError is returned when a payload fails client-side checks,
// before any request reaches the remote API.
type ValidationError struct {
	Code    ClientErrorCode
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a ValidationError for a field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Code:    ErrCodeInvalidValue,
		Field:   field,
		Message: message,
	}
}

// NewMissingFieldError creates a ValidationError naming a missing required field.
func NewMissingFieldError(field string) *ValidationError {
	return &ValidationError{
		Code:    ErrCodeMissingField,
		Field:   field,
		Message: "Missing required field: " + field,
	}
}

// HTTPError is returned when the remote API answers with a non-2xx status.
type HTTPError struct {
	Status  int
	Message string
	Body    []byte
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status code %d", e.Status)
}

// NetworkError is returned when the remote API could not be reached at all.
type NetworkError struct {
	Op  string
	URL string
	Err error
}

// Error implements the error interface.
func (e *NetworkError) Error() string {
	return "Network Error: " + e.Op + " " + e.URL + ": " + e.Err.Error()
}

// Unwrap returns the underlying transport error.
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ClientError is the normalized form of any error, ready to be shown to a user.
type ClientError struct {
	Kind    Kind
	Status  int
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ClientError) Error() string {
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ClientError) Unwrap() error {
	return e.Err
}

// IsAuth reports whether the error is an authentication failure.
func (e *ClientError) IsAuth() bool {
	return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
}

// IsNetwork reports whether the error is a connectivity failure.
func (e *ClientError) IsNetwork() bool {
	return e.Kind == KindNetwork
}

// Display returns the user-facing text for the error.
func (e *ClientError) Display() string {
	switch e.Kind {
	case KindAuth:
		return MsgSessionExpired
	case KindNotFound:
		return MsgNotFound
	case KindUnprocessable:
		return "Validation error: " + e.Message
	case KindServer:
		return MsgServerError
	case KindNetwork:
		return MsgNetworkError
	default:
		return capitalize(e.Message)
	}
}

// User-facing messages.
const (
	MsgSessionExpired = "Your session has expired. Please log in again."
	MsgNotFound       = "The requested resource was not found."
	MsgServerError    = "Server error. Please try again later."
	MsgNetworkError   = "Network error. Please check your connection."
	MsgUnexpected     = "An unexpected error occurred. Please try again."
)

// FieldError describes a single invalid field reported by the remote API.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// asHTTPError unwraps err looking for an HTTPError.
func asHTTPError(err error) (*HTTPError, bool) {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr, true
	}
	return nil, false
}
