package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/jordanlanch/alug/pkg/jobs"
	"github.com/labstack/echo/v4"
)

// Pinger is a dependency the health check probes
type Pinger interface {
	Ping(ctx context.Context) error
}

// PurgeReporter exposes the storage purge job's run statistics
type PurgeReporter interface {
	Stats() jobs.PurgeStats
}

// HealthHandler reports service and storage health
type HealthHandler struct {
	storage Pinger
	purges  PurgeReporter
}

// NewHealthHandler creates a health handler. storage may be nil when the
// configured driver has nothing to probe, purges when no purge job runs.
func NewHealthHandler(storage Pinger, purges PurgeReporter) *HealthHandler {
	return &HealthHandler{storage: storage, purges: purges}
}

// Health godoc
// @Summary Health check
// @Tags System
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health [get]
func (h *HealthHandler) Health(c echo.Context) error {
	status := map[string]interface{}{
		"status":  "ok",
		"storage": "ok",
	}
	if h.purges != nil {
		status["storage_purge"] = h.purges.Stats()
	}

	if h.storage != nil {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()
		if err := h.storage.Ping(ctx); err != nil {
			status["status"] = "degraded"
			status["storage"] = "unreachable"
			return c.JSON(http.StatusServiceUnavailable, status)
		}
	}

	return c.JSON(http.StatusOK, status)
}
