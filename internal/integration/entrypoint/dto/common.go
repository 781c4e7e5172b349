// Package dto defines data transfer objects for API requests and responses.
package dto

import domainerror "github.com/anbu-gynaecare/webapp/internal/domain/error"

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string                   `json:"error"`
	Code    string                   `json:"code"`
	Details []domainerror.FieldError `json:"details,omitempty"`
}

// MessageResponse represents a generic message response.
type MessageResponse struct {
	Message string `json:"message"`
}

// DataResponse wraps a payload in the same envelope the remote API uses.
type DataResponse struct {
	Message string `json:"message,omitempty"`
	Data    any    `json:"data"`
}

// PaginationResponse describes the page of a list.
type PaginationResponse struct {
	Page       int `json:"page"`
	TotalPages int `json:"total_pages"`
}

// ListResponse wraps a paged list.
type ListResponse struct {
	Data       any                `json:"data"`
	Pagination PaginationResponse `json:"pagination"`
}

// FetchResponse mirrors the state of a background read.
type FetchResponse struct {
	Status string `json:"status"`
	Data   any    `json:"data"`
	Error  string `json:"error,omitempty"`
}
