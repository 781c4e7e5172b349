// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	domainerror "github.com/anbu-gynaecare/webapp/internal/domain/error"
	"github.com/anbu-gynaecare/webapp/internal/integration/entrypoint/dto"
)

// attemptWindow counts the attempts of one client on one route.
type attemptWindow struct {
	attempts int
	resetAt  time.Time
}

// RateLimiter throttles credential submissions per client IP and route so
// that a burst of logins cannot hammer the remote API.
type RateLimiter struct {
	mu          sync.Mutex
	windows     map[string]*attemptWindow
	maxAttempts int
	window      time.Duration
	disabled    bool
	now         func() time.Time
}

// NewRateLimiter creates a limiter allowing maxAttempts per window.
// A non-positive maxAttempts disables limiting.
func NewRateLimiter(maxAttempts int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		windows:     make(map[string]*attemptWindow),
		maxAttempts: maxAttempts,
		window:      window,
		disabled:    maxAttempts <= 0,
		now:         time.Now,
	}
}

// Disable turns the limiter into a pass-through. Used by test environments.
func (rl *RateLimiter) Disable() {
	rl.mu.Lock()
	rl.disabled = true
	rl.mu.Unlock()
}

// Middleware returns a Gin middleware handler that enforces rate limiting.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		if clientIP == "" {
			clientIP = c.Request.RemoteAddr
		}

		if !rl.allow(clientIP + " " + c.FullPath()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Error: "Too many attempts. Please try again later.",
				Code:  string(domainerror.ErrCodeRateLimited),
			})
			return
		}

		c.Next()
	}
}

func (rl *RateLimiter) allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if rl.disabled {
		return true
	}

	now := rl.now()
	w, ok := rl.windows[key]
	if !ok || now.After(w.resetAt) {
		rl.windows[key] = &attemptWindow{attempts: 1, resetAt: now.Add(rl.window)}
		return true
	}
	if w.attempts >= rl.maxAttempts {
		return false
	}
	w.attempts++
	return true
}

// Cleanup drops windows that have ended. Called by the periodic sweeper.
func (rl *RateLimiter) Cleanup() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	removed := 0
	for key, w := range rl.windows {
		if now.After(w.resetAt) {
			delete(rl.windows, key)
			removed++
		}
	}
	return removed
}
