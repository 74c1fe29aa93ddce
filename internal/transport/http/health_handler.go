package http

import (
	"net/http"
	"time"

	"github.com/go-chi/render"

	"github.com/lukeuthy/phLaborMarketPredictiveAnalytics/internal/config"
)

// HealthHandler handles health-related HTTP requests
type HealthHandler struct {
	startedAt time.Time
}

// NewHealthHandler creates a new health handler
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{startedAt: time.Now()}
}

// HealthCheck handles GET /health
func (h *HealthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]interface{}{
		"status":  "healthy",
		"app":     config.AppName,
		"version": config.AppVersion,
		"uptime":  time.Since(h.startedAt).String(),
	})
}
