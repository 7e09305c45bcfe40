// handlers_config.go - Configuration upload handlers
package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/plc-dashboard/backend/internal/normalize"
)

// ConfigHandlerImpl implements the ConfigHandler interface
type ConfigHandlerImpl struct {
	store PLCStore
	norm  *normalize.Normalizer
}

// NewConfigHandler creates a new configuration upload handler
func NewConfigHandler(store PLCStore, norm *normalize.Normalizer) ConfigHandler {
	return &ConfigHandlerImpl{store: store, norm: norm}
}

// HandleUploadConfig accepts a PLC configuration document either as a
// multipart "file" field or as a raw JSON body, normalizes every PLC entry
// and persists the results. Responds with the normalized records.
func (h *ConfigHandlerImpl) HandleUploadConfig(c echo.Context) error {
	data, apiErr := readConfigBody(c)
	if apiErr != nil {
		return apiErr
	}

	doc, err := normalize.ParseConfigDocument(data)
	if err != nil {
		return NewBadRequestError("invalid configuration document", err)
	}

	plcs, err := h.norm.NormalizeConfig(doc)
	if err != nil {
		if errors.Is(err, normalize.ErrMissingPLCs) {
			return NewBadRequestError("invalid configuration document", err)
		}
		return NewInternalError("failed to normalize configuration", err)
	}

	ctx := c.Request().Context()
	for _, plc := range plcs {
		if err := h.store.Save(ctx, plc); err != nil {
			return NewInternalError("failed to save PLC configuration", err)
		}
	}

	logrus.WithField("plcs", len(plcs)).Info("configuration uploaded")
	return c.JSON(http.StatusCreated, plcs)
}

// readConfigBody extracts the uploaded JSON from either upload style.
func readConfigBody(c echo.Context) ([]byte, *APIError) {
	if file, err := c.FormFile("file"); err == nil {
		src, err := file.Open()
		if err != nil {
			return nil, NewInternalError("failed to open uploaded file", err)
		}
		defer src.Close()

		data, err := io.ReadAll(src)
		if err != nil {
			return nil, NewInternalError("failed to read uploaded file", err)
		}
		return data, nil
	}

	data, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return nil, NewBadRequestError("failed to read request body", err)
	}
	if len(data) == 0 {
		return nil, NewValidationError("body")
	}
	return data, nil
}
