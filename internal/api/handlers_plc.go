// handlers_plc.go - PLC record and server group handlers
package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/plc-dashboard/backend/internal/normalize"
	"github.com/plc-dashboard/backend/internal/store"
)

// PLCHandlerImpl implements the PLCHandler interface
type PLCHandlerImpl struct {
	store PLCStore
}

// NewPLCHandler creates a new PLC handler instance
func NewPLCHandler(s PLCStore) PLCHandler {
	return &PLCHandlerImpl{store: s}
}

// HandleListPLCs returns every stored PLC in normalized form
func (h *PLCHandlerImpl) HandleListPLCs(c echo.Context) error {
	plcs, err := h.store.List(c.Request().Context())
	if err != nil {
		return NewInternalError("failed to list PLCs", err)
	}
	return c.JSON(http.StatusOK, plcs)
}

// HandleGetPLC returns one PLC by id
func (h *PLCHandlerImpl) HandleGetPLC(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return NewValidationError("id")
	}

	plc, err := h.store.Get(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return NewNotFoundError("plc", id)
		}
		return NewInternalError("failed to load PLC", err)
	}
	return c.JSON(http.StatusOK, plc)
}

// HandleDeletePLC removes a PLC record
func (h *PLCHandlerImpl) HandleDeletePLC(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return NewValidationError("id")
	}

	if err := h.store.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return NewNotFoundError("plc", id)
		}
		return NewInternalError("failed to delete PLC", err)
	}
	return c.NoContent(http.StatusNoContent)
}

// HandleListServerGroups returns the server-centric grouping of all PLCs
func (h *PLCHandlerImpl) HandleListServerGroups(c echo.Context) error {
	plcs, err := h.store.List(c.Request().Context())
	if err != nil {
		return NewInternalError("failed to list PLCs", err)
	}
	return c.JSON(http.StatusOK, normalize.GroupPLCsByServer(plcs))
}
