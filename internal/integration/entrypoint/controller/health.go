package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthChecker reports whether a dependency is reachable.
type HealthChecker func() bool

// HealthController handles health check endpoints.
type HealthController struct {
	database HealthChecker
	cache    HealthChecker
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Cache     string `json:"cache"`
	Timestamp string `json:"timestamp"`
}

// NewHealthController creates a new health controller instance.
// A nil cache checker reports the in-process cache.
func NewHealthController(database, cache HealthChecker) *HealthController {
	return &HealthController{
		database: database,
		cache:    cache,
	}
}

// Check handles GET /health requests.
// The session store is required; a degraded cache only changes the status text.
func (h *HealthController) Check(c *gin.Context) {
	dbStatus := connection(h.database)
	cacheStatus := "memory"
	if h.cache != nil {
		cacheStatus = connection(h.cache)
	}

	status, code := "ok", http.StatusOK
	switch {
	case dbStatus != "connected":
		status, code = "unavailable", http.StatusServiceUnavailable
	case cacheStatus == "disconnected":
		status = "degraded"
	}

	c.JSON(code, HealthResponse{
		Status:    status,
		Database:  dbStatus,
		Cache:     cacheStatus,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func connection(check HealthChecker) string {
	if check != nil && check() {
		return "connected"
	}
	return "disconnected"
}
