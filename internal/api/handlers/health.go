// Package handlers implements the HTTP surface of bookswapd: the book
// listing CRUD endpoints, the auth endpoints delegating to the identity
// provider, and the health probes.
package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/NikhilTirunagiri/GMUBookSwap/internal/metrics"
	"github.com/NikhilTirunagiri/GMUBookSwap/internal/store"
)

// HealthHandler provides health and readiness endpoints.
type HealthHandler struct {
	store store.Store
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(s store.Store) *HealthHandler {
	return &HealthHandler{store: s}
}

// Healthz returns 200 if the process is running.
func (*HealthHandler) Healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Readyz returns 200 if the database is reachable, 503 otherwise. The
// result of each ping is mirrored into the database_up gauge.
func (h *HealthHandler) Readyz(c echo.Context) error {
	if err := h.store.Ping(c.Request().Context()); err != nil {
		metrics.DatabaseUp.Set(0)
		return c.JSON(
			http.StatusServiceUnavailable,
			map[string]string{"status": "unavailable"},
		)
	}
	metrics.DatabaseUp.Set(1)
	return c.JSON(http.StatusOK, map[string]string{"status": "ready"})
}
