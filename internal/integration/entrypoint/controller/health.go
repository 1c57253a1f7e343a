// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthController handles health check endpoints.
type HealthController struct {
	dbHealthChecker func() bool
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Timestamp string `json:"timestamp"`
}

// NewHealthController creates a new health controller instance.
func NewHealthController(dbHealthChecker func() bool) *HealthController {
	return &HealthController{
		dbHealthChecker: dbHealthChecker,
	}
}

// Check handles GET /health requests. The API reports "degraded" with a 503
// while the database is unreachable.
func (h *HealthController) Check(c *gin.Context) {
	status, code, dbStatus := "ok", http.StatusOK, "connected"
	if h.dbHealthChecker == nil || !h.dbHealthChecker() {
		status, code, dbStatus = "degraded", http.StatusServiceUnavailable, "disconnected"
	}

	c.JSON(code, HealthResponse{
		Status:    status,
		Database:  dbStatus,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
