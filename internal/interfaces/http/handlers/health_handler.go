package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger is anything with a health probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	database Pinger
	cache    Pinger
	started  time.Time
	version  string
}

// NewHealthHandler creates the health handler.
func NewHealthHandler(database, cache Pinger, version string) *HealthHandler {
	return &HealthHandler{
		database: database,
		cache:    cache,
		started:  time.Now(),
		version:  version,
	}
}

// Live reports process liveness.
// GET /health
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":         "ok",
		"version":        h.version,
		"uptime_seconds": int64(time.Since(h.started).Seconds()),
	})
}

// Ready reports readiness of the backing services. The cache is reported but
// never fails readiness; the service runs without it.
// GET /health/ready
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	checks := gin.H{}
	status := http.StatusOK

	if err := h.database.Ping(ctx); err != nil {
		checks["database"] = gin.H{"status": "unhealthy", "error": err.Error()}
		status = http.StatusServiceUnavailable
	} else {
		checks["database"] = gin.H{"status": "healthy"}
	}

	if err := h.cache.Ping(ctx); err != nil {
		checks["cache"] = gin.H{"status": "degraded", "error": err.Error()}
	} else {
		checks["cache"] = gin.H{"status": "healthy"}
	}

	body := gin.H{"checks": checks}
	if status == http.StatusOK {
		body["status"] = "ready"
	} else {
		body["status"] = "not_ready"
	}
	c.JSON(status, body)
}
