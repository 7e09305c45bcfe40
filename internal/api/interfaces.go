// interfaces.go - Handler interface definitions for clean separation of concerns
package api

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/plc-dashboard/backend/internal/models"
)

// ConfigHandler handles configuration upload operations
type ConfigHandler interface {
	HandleUploadConfig(c echo.Context) error
}

// PLCHandler handles PLC record operations
type PLCHandler interface {
	HandleListPLCs(c echo.Context) error
	HandleGetPLC(c echo.Context) error
	HandleDeletePLC(c echo.Context) error
	HandleListServerGroups(c echo.Context) error
}

// VariableHandler handles variable browsing and description editing
type VariableHandler interface {
	HandleListVariables(c echo.Context) error
	HandleListChildren(c echo.Context) error
	HandleUpdateDescription(c echo.Context) error
}

// ExportHandler handles CSV export operations
type ExportHandler interface {
	HandleExportPLC(c echo.Context) error
	HandleExportAll(c echo.Context) error
}

// HealthHandler handles health check operations
type HealthHandler interface {
	HandleHealth(c echo.Context) error
}

// PLCStore defines the persistence operations the handlers need.
// This allows mocking in tests.
type PLCStore interface {
	Save(ctx context.Context, plc models.NormalizedPLC) error
	Get(ctx context.Context, id string) (models.NormalizedPLC, error)
	List(ctx context.Context) ([]models.NormalizedPLC, error)
	Delete(ctx context.Context, id string) error
	UpdateStatus(ctx context.Context, id string, status models.PLCStatus, connected bool, lastChecked time.Time) error
}
