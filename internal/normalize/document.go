package normalize

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/plc-dashboard/backend/internal/models"
)

// ErrMissingPLCs is returned when an uploaded document has no plcs list.
// This is the only structural precondition the normalizer defends; full
// schema validation happens before this stage.
var ErrMissingPLCs = errors.New("configuration document must contain a \"plcs\" array")

// ParseConfigDocument decodes an uploaded JSON document, distinguishing a
// missing plcs key from a plcs value that is not an array so both fail with
// a descriptive error rather than partial processing.
func ParseConfigDocument(data []byte) (models.ConfigDocument, error) {
	var probe struct {
		PLCs json.RawMessage `json:"plcs"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return models.ConfigDocument{}, fmt.Errorf("parsing configuration document: %w", err)
	}
	if probe.PLCs == nil {
		return models.ConfigDocument{}, ErrMissingPLCs
	}

	var plcs []models.RawPLCConfig
	if err := json.Unmarshal(probe.PLCs, &plcs); err != nil {
		return models.ConfigDocument{}, fmt.Errorf("%w: %v", ErrMissingPLCs, err)
	}
	if plcs == nil {
		// Explicit null counts as missing.
		return models.ConfigDocument{}, ErrMissingPLCs
	}
	return models.ConfigDocument{PLCs: plcs}, nil
}
