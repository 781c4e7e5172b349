// Package apiclient calls the remote Anbu REST API on behalf of a browser session.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/anbu-gynaecare/webapp/internal/application/adapter"
	"github.com/anbu-gynaecare/webapp/internal/domain/entity"
	domainerror "github.com/anbu-gynaecare/webapp/internal/domain/error"
)

// RequestIDHeader carries the correlation ID of each outgoing request.
const RequestIDHeader = "X-Request-ID"

// maxErrorBody bounds how much of an error response is kept.
const maxErrorBody = 64 << 10

// Credential exchange endpoints.
const (
	loginPath    = "/auth/login"
	registerPath = "/auth/register"
)

// credentialPaths answer 401 for wrong credentials, which says nothing about
// the token the session already holds.
var credentialPaths = map[string]bool{
	loginPath:    true,
	registerPath: true,
}

// envelope is the response wrapper used by every remote endpoint.
type envelope struct {
	Message    string             `json:"message"`
	Data       json.RawMessage    `json:"data"`
	Pagination *entity.Pagination `json:"pagination,omitempty"`
}

// Client sends JSON requests to the remote API. The bearer token is read from
// the token source on every request, so no call can bypass it.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     adapter.TokenSource
}

// NewClient creates a client for baseURL.
func NewClient(baseURL string, timeout time.Duration, tokens adapter.TokenSource) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		tokens:     tokens,
	}
}

// get performs a GET and decodes the data field into out.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) (*envelope, error) {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

// post performs a POST with a JSON body and decodes the data field into out.
func (c *Client) post(ctx context.Context, path string, body, out any) (*envelope, error) {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) (*envelope, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	requestID := uuid.NewString()
	req.Header.Set(RequestIDHeader, requestID)

	if c.tokens != nil {
		token, err := c.tokens.AccessToken(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to read access token: %w", err)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	logger := slog.With("method", method, "path", path, "request_id", requestID)
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Warn("Remote API request failed", "error", err)
		return nil, &domainerror.NetworkError{Op: method, URL: target, Err: err}
	}
	defer resp.Body.Close()

	logger.Debug("Remote API responded",
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		httpErr := &domainerror.HTTPError{
			Status:  resp.StatusCode,
			Message: errorMessage(raw),
			Body:    raw,
		}
		if domainerror.IsAuth(httpErr) && !credentialPaths[path] {
			c.revoke(ctx, logger)
		}
		return nil, httpErr
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if out != nil && len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return nil, fmt.Errorf("failed to decode response data: %w", err)
		}
	}
	return &env, nil
}

// revoke clears the session token once the remote API rejects it.
func (c *Client) revoke(ctx context.Context, logger *slog.Logger) {
	revoker, ok := c.tokens.(adapter.TokenRevoker)
	if !ok {
		return
	}
	if err := revoker.RevokeToken(ctx); err != nil {
		logger.Warn("Failed to clear rejected token", "error", err)
	}
}

// errorMessage extracts the message of an error body. NestJS-style bodies may
// carry a list of messages, which are joined.
func errorMessage(raw []byte) string {
	var body struct {
		Message any    `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	switch msg := body.Message.(type) {
	case string:
		if msg != "" {
			return msg
		}
	case []any:
		parts := make([]string, 0, len(msg))
		for _, m := range msg {
			if s, ok := m.(string); ok {
				parts = append(parts, s)
			}
		}
		if len(parts) > 0 {
			return strings.Join(parts, ", ")
		}
	}
	return body.Error
}
