package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler serves the liveness and readiness probes.
type HealthHandler struct {
	db      Pinger
	logger  zerolog.Logger
	timeout time.Duration
}

func NewHealthHandler(db Pinger, logger zerolog.Logger) *HealthHandler {
	return &HealthHandler{db: db, logger: logger, timeout: 3 * time.Second}
}

// dependencyStatus never carries the underlying error; that is logged only.
type dependencyStatus struct {
	Status string `json:"status"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}

// Liveness godoc
//
// @Summary      Liveness probe
// @Tags         health
// @Produce      json
// @Success      200  {object}  Envelope
// @Router       /api/health [get]
func (h *HealthHandler) Liveness(c echo.Context) error {
	return Respond(c, http.StatusOK, "Server is running", nil)
}

// Readiness godoc
//
// @Summary      Readiness probe, pings PostgreSQL
// @Tags         health
// @Produce      json
// @Success      200  {object}  Envelope{data=readinessResponse}
// @Failure      503  {object}  Envelope{data=readinessResponse}
// @Router       /api/health/ready [get]
func (h *HealthHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	resp := readinessResponse{Status: "ok", Dependencies: map[string]dependencyStatus{}}
	if err := h.db.PingContext(ctx); err != nil {
		h.logger.Error().Err(err).Str("dependency", "postgres").Msg("readiness check failed")
		resp.Status = "degraded"
		resp.Dependencies["postgres"] = dependencyStatus{Status: "unhealthy"}
		return Respond(c, http.StatusServiceUnavailable, "Service is not ready", resp)
	}
	resp.Dependencies["postgres"] = dependencyStatus{Status: "ok"}

	return Respond(c, http.StatusOK, "Service is ready", resp)
}
