// routes.go - Route registration helpers
package api

import (
	"github.com/labstack/echo/v4"

	"github.com/plc-dashboard/backend/internal/normalize"
)

// Dependencies holds all handler dependencies
type Dependencies struct {
	Store      PLCStore
	Normalizer *normalize.Normalizer
	Version    string
}

// Handlers holds all handler instances
type Handlers struct {
	Health   HealthHandler
	Config   ConfigHandler
	PLC      PLCHandler
	Variable VariableHandler
	Export   ExportHandler
	Values   *ValuesHandler
}

// NewHandlers creates all handler instances
func NewHandlers(deps *Dependencies) *Handlers {
	return &Handlers{
		Health:   NewHealthHandler(deps.Store, deps.Version),
		Config:   NewConfigHandler(deps.Store, deps.Normalizer),
		PLC:      NewPLCHandler(deps.Store),
		Variable: NewVariableHandler(deps.Store),
		Export:   NewExportHandler(deps.Store),
		Values:   NewValuesHandler(),
	}
}

// RegisterRoutes registers all API routes with the Echo instance
func RegisterRoutes(e *echo.Echo, h *Handlers) {
	e.HTTPErrorHandler = ErrorHandler

	apiGroup := e.Group("/api")

	// Health check
	apiGroup.GET("/health", h.Health.HandleHealth)

	// Value feed
	apiGroup.GET("/ws/values", h.Values.HandleWebSocket)

	// Configuration upload
	apiGroup.POST("/configs/upload", h.Config.HandleUploadConfig)

	// PLC records
	apiGroup.GET("/plcs", h.PLC.HandleListPLCs)
	apiGroup.GET("/plcs/:id", h.PLC.HandleGetPLC)
	apiGroup.DELETE("/plcs/:id", h.PLC.HandleDeletePLC)

	// Variables
	apiGroup.GET("/plcs/:id/variables", h.Variable.HandleListVariables)
	apiGroup.GET("/plcs/:id/variables/:varId/children", h.Variable.HandleListChildren)
	apiGroup.PUT("/plcs/:id/variables/:varId/description", h.Variable.HandleUpdateDescription)

	// CSV export
	apiGroup.GET("/plcs/:id/export.csv", h.Export.HandleExportPLC)
	apiGroup.GET("/export.csv", h.Export.HandleExportAll)

	// Server-centric view
	apiGroup.GET("/servers", h.PLC.HandleListServerGroups)
}
