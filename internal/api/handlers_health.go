// handlers_health.go - Health check handlers
package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HealthHandlerImpl implements the HealthHandler interface
type HealthHandlerImpl struct {
	store   PLCStore
	version string
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(store PLCStore, version string) HealthHandler {
	return &HealthHandlerImpl{
		store:   store,
		version: version,
	}
}

// HandleHealth returns server health status and the stored PLC count
func (h *HealthHandlerImpl) HandleHealth(c echo.Context) error {
	resp := map[string]interface{}{
		"status":  "ok",
		"version": h.version,
	}
	if plcs, err := h.store.List(c.Request().Context()); err == nil {
		resp["plcCount"] = len(plcs)
	}
	return c.JSON(http.StatusOK, resp)
}
