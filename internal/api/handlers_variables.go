// handlers_variables.go - Variable browsing and description editing
package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/plc-dashboard/backend/internal/models"
	"github.com/plc-dashboard/backend/internal/normalize"
	"github.com/plc-dashboard/backend/internal/store"
)

// VariableHandlerImpl implements the VariableHandler interface
type VariableHandlerImpl struct {
	store PLCStore
}

// NewVariableHandler creates a new variable handler instance
func NewVariableHandler(s PLCStore) VariableHandler {
	return &VariableHandlerImpl{store: s}
}

// HandleListVariables returns a PLC's flattened variable list, optionally
// filtered by the q query parameter (case-insensitive substring match over
// address, register and description).
func (h *VariableHandlerImpl) HandleListVariables(c echo.Context) error {
	plc, apiErr := h.loadPLC(c)
	if apiErr != nil {
		return apiErr
	}

	vars := plc.Variables
	if q := c.QueryParam("q"); q != "" {
		vars = normalize.FilterVariables(vars, q)
	}
	if c.QueryParam("parents") == "true" {
		vars = normalize.ParentVariables(vars)
	}
	if vars == nil {
		vars = []models.NormalizedVariable{}
	}
	return c.JSON(http.StatusOK, vars)
}

// HandleListChildren returns the bit children of one parent variable
func (h *VariableHandlerImpl) HandleListChildren(c echo.Context) error {
	plc, apiErr := h.loadPLC(c)
	if apiErr != nil {
		return apiErr
	}

	varID := c.Param("varId")
	if varID == "" {
		return NewValidationError("varId")
	}

	children := normalize.ChildVariables(plc.Variables, varID)
	if children == nil {
		children = []models.NormalizedVariable{}
	}
	return c.JSON(http.StatusOK, children)
}

type updateDescriptionRequest struct {
	Description string `json:"description"`
}

// HandleUpdateDescription attaches a free-text description to one variable
// row and persists the change through the denormalized storage shape.
func (h *VariableHandlerImpl) HandleUpdateDescription(c echo.Context) error {
	plc, apiErr := h.loadPLC(c)
	if apiErr != nil {
		return apiErr
	}

	varID := c.Param("varId")
	if varID == "" {
		return NewValidationError("varId")
	}

	var req updateDescriptionRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid JSON body", err)
	}

	updated := setDescription(plc.Variables, varID, req.Description)
	if updated == nil {
		return NewNotFoundError("variable", varID)
	}

	if err := h.store.Save(c.Request().Context(), plc); err != nil {
		return NewInternalError("failed to save description", err)
	}
	return c.JSON(http.StatusOK, *updated)
}

// setDescription mutates the flat list in place and returns the updated row,
// or nil when no row matches. Materialized children under a parent are kept
// in sync so the response view does not go stale.
func setDescription(vars []models.NormalizedVariable, varID, description string) *models.NormalizedVariable {
	var updated *models.NormalizedVariable
	for i := range vars {
		if vars[i].ID == varID {
			vars[i].Description = description
			updated = &vars[i]
		}
		for j := range vars[i].Children {
			if vars[i].Children[j].ID == varID {
				vars[i].Children[j].Description = description
			}
		}
	}
	return updated
}

// loadPLC resolves the :id path parameter to a stored PLC
func (h *VariableHandlerImpl) loadPLC(c echo.Context) (models.NormalizedPLC, *APIError) {
	id := c.Param("id")
	if id == "" {
		return models.NormalizedPLC{}, NewValidationError("id")
	}

	plc, err := h.store.Get(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.NormalizedPLC{}, NewNotFoundError("plc", id)
		}
		return models.NormalizedPLC{}, NewInternalError("failed to load PLC", err)
	}
	return plc, nil
}
