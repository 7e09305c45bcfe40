// handlers_export.go - CSV export handlers
package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/plc-dashboard/backend/internal/export"
	"github.com/plc-dashboard/backend/internal/models"
	"github.com/plc-dashboard/backend/internal/store"
)

// ExportHandlerImpl implements the ExportHandler interface
type ExportHandlerImpl struct {
	store PLCStore
}

// NewExportHandler creates a new export handler instance
func NewExportHandler(s PLCStore) ExportHandler {
	return &ExportHandlerImpl{store: s}
}

// HandleExportPLC streams one PLC's variable rows as CSV
func (h *ExportHandlerImpl) HandleExportPLC(c echo.Context) error {
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

	return h.writeCSV(c, fmt.Sprintf("%s-variables.csv", plc.PLCName), []models.NormalizedPLC{plc})
}

// HandleExportAll streams every stored PLC's variable rows as one CSV
func (h *ExportHandlerImpl) HandleExportAll(c echo.Context) error {
	plcs, err := h.store.List(c.Request().Context())
	if err != nil {
		return NewInternalError("failed to list PLCs", err)
	}
	return h.writeCSV(c, "plc-variables.csv", plcs)
}

func (h *ExportHandlerImpl) writeCSV(c echo.Context, filename string, plcs []models.NormalizedPLC) error {
	c.Response().Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename=%q`, filename))
	c.Response().WriteHeader(http.StatusOK)

	if err := export.WriteVariablesCSV(c.Response(), plcs); err != nil {
		return NewInternalError("failed to write CSV", err)
	}
	return nil
}
