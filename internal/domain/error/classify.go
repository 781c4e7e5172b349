package error

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"unicode"
	"unicode/utf8"
)

// networkMarkers are substrings that identify connectivity failures in error text.
var networkMarkers = []string{
	"Network",
	"ECONNREFUSED",
	"ETIMEDOUT",
	"connection refused",
	"no such host",
	"timeout",
}

// Classify converts any error into a ClientError.
// It never panics and accepts a nil error, which classifies as Unknown.
func Classify(err error) *ClientError {
	status := StatusCode(err)
	message := rawMessage(err)

	kind := KindUnknown
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		kind = KindAuth
	case status == http.StatusNotFound:
		kind = KindNotFound
	case status == http.StatusUnprocessableEntity:
		kind = KindUnprocessable
	case status >= http.StatusInternalServerError && isRemoteFailure(err):
		kind = KindServer
	case IsNetwork(err):
		kind = KindNetwork
	case isValidation(err):
		kind = KindValidation
	case status >= http.StatusInternalServerError:
		// Errors without any status default to 500 and read as server errors.
		kind = KindServer
	}

	return &ClientError{
		Kind:    kind,
		Status:  status,
		Message: message,
		Err:     err,
	}
}

// DisplayMessage returns the user-facing text for err.
func DisplayMessage(err error) string {
	return Classify(err).Display()
}

// StatusCode extracts the HTTP status of err, defaulting to 500.
// Client-side validation errors report 400.
func StatusCode(err error) int {
	if err == nil {
		return http.StatusInternalServerError
	}
	if httpErr, ok := asHTTPError(err); ok && httpErr.Status != 0 {
		return httpErr.Status
	}
	if isValidation(err) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// Message extracts the most specific human-readable message from err with
// its first letter capitalized for display.
func Message(err error) string {
	return capitalize(rawMessage(err))
}

func rawMessage(err error) string {
	if err == nil {
		return MsgUnexpected
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return MsgUnexpected
}

func capitalize(msg string) string {
	r, size := utf8.DecodeRuneInString(msg)
	return string(unicode.ToUpper(r)) + msg[size:]
}

// IsAuth reports whether err is an authentication failure (401 or 403).
func IsAuth(err error) bool {
	status := StatusCode(err)
	return status == http.StatusUnauthorized || status == http.StatusForbidden
}

// IsNetwork reports whether err is a connectivity failure.
func IsNetwork(err error) bool {
	if err == nil {
		return false
	}
	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return true
	}
	msg := err.Error()
	for _, marker := range networkMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// ParseValidationErrors extracts field errors from a local ValidationError or
// a remote API error body. A body may carry a nested "errors" array or a
// single "message".
func ParseValidationErrors(err error) []FieldError {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) && validationErr.Field != "" {
		return []FieldError{{Field: validationErr.Field, Message: validationErr.Message}}
	}

	httpErr, ok := asHTTPError(err)
	if !ok || len(httpErr.Body) == 0 {
		return nil
	}

	var body struct {
		Message any              `json:"message"`
		Errors  []map[string]any `json:"errors"`
	}
	if jsonErr := json.Unmarshal(httpErr.Body, &body); jsonErr != nil {
		return nil
	}

	if body.Errors != nil {
		fields := make([]FieldError, 0, len(body.Errors))
		for _, e := range body.Errors {
			fields = append(fields, FieldError{
				Field:   stringOr(e["field"], "unknown"),
				Message: stringOr(e["message"], "Validation error"),
			})
		}
		return fields
	}

	if msg, ok := body.Message.(string); ok && msg != "" {
		return []FieldError{{Field: "general", Message: msg}}
	}
	return nil
}

func isValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

func isRemoteFailure(err error) bool {
	_, ok := asHTTPError(err)
	return ok
}

func stringOr(v any, fallback string) string {
	if s, ok := v.(string); ok && s != "" {
		return s
	}
	return fallback
}
