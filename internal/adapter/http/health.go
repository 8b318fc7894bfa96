package http

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/alwahis/ride-search/internal/adapter/http/response"
	"github.com/alwahis/ride-search/internal/infrastructure/logger"
)

// readyTimeout bounds the store ping of a readiness check.
const readyTimeout = 2 * time.Second

// Pinger is the part of a ride store a readiness check needs.
type Pinger interface {
	Name() string
	Ping(ctx context.Context) error
}

// HealthHandler serves liveness and readiness checks.
type HealthHandler struct {
	store Pinger
	log   *logger.Logger
}

// NewHealthHandler creates a HealthHandler checking store.
func NewHealthHandler(store Pinger, log *logger.Logger) *HealthHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &HealthHandler{store: store, log: log}
}

// Health handles GET /health
//
// @Summary Liveness check
// @Tags health
// @Produce json
// @Success 200 {object} response.HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c echo.Context) error {
	return response.Health(c)
}

// Ready handles GET /ready
//
// @Summary Readiness check
// @Description Pings the ride store.
// @Tags health
// @Produce json
// @Success 200 {object} response.HealthResponse
// @Failure 503 {object} response.ErrorBody "Ride store unreachable"
// @Router /ready [get]
func (h *HealthHandler) Ready(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), readyTimeout)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		h.log.For(c.Request().Context()).Warn().Err(err).Str("store", h.store.Name()).Msg("Readiness check failed")
		return response.NotReady(c)
	}
	return response.Ready(c, h.store.Name())
}
