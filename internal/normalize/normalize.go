package normalize

import (
	"time"

	"github.com/plc-dashboard/backend/internal/models"
)

// NormalizeMapping converts one address mapping into its flattened variable
// rows: a single row for bools and unrecognized kinds, or a parent followed
// by its sorted bit children for channels with bit metadata.
func (n *Normalizer) NormalizeMapping(m models.AddressMapping) []models.NormalizedVariable {
	parent := models.NormalizedVariable{
		ID:          m.OPCUARegAdd,
		Type:        models.KindOf(m.DataType),
		PLCRegAdd:   m.PLCRegAdd,
		OPCUARegAdd: m.OPCUARegAdd,
		Description: m.Description,
		DataType:    m.DataType,
		Metadata:    m.Metadata,
	}

	if parent.Type != models.KindChannel {
		// Bools and unrecognized kinds pass through as single rows.
		return []models.NormalizedVariable{parent}
	}

	children := ExpandBits(m)
	if len(children) == 0 && n.opts.SynthesizeMissingBits &&
		hasChannelSuffix(m.OPCUARegAdd, n.opts.ChannelSuffixes) {
		children = SynthesizeBits(m, n.opts.SynthesizedBitCount)
	}
	if len(children) == 0 {
		return []models.NormalizedVariable{parent}
	}

	parent.HasChildren = true
	parent.Children = children

	out := make([]models.NormalizedVariable, 0, 1+len(children))
	out = append(out, parent)
	out = append(out, children...)
	return out
}

// NormalizePLC normalizes a single raw PLC configuration under an existing
// identifier. Counts follow the original declared mappings: every bool
// mapping and every declared bit counts toward BoolCount, every channel
// mapping counts toward ChannelCount whether or not it has bits, while
// RegisterCount counts the flattened rows. The three are intentionally not
// reconciled.
func (n *Normalizer) NormalizePLC(cfg models.RawPLCConfig, id string, now time.Time) models.NormalizedPLC {
	var (
		variables    []models.NormalizedVariable
		boolCount    int
		channelCount int
	)

	for _, m := range cfg.AddressMappings {
		switch models.KindOf(m.DataType) {
		case models.KindBool:
			boolCount++
		case models.KindChannel:
			channelCount++
			if m.Metadata != nil {
				boolCount += len(m.Metadata.BitMappings)
			}
		}
		variables = append(variables, n.NormalizeMapping(m)...)
	}

	return models.NormalizedPLC{
		ID:            id,
		PLCName:       cfg.PLCName,
		PLCNo:         cfg.PLCNo,
		PLCIP:         cfg.PLCIP,
		OPCUAURL:      cfg.OPCUAURL,
		Status:        models.PLCStatusMaintenance,
		LastChecked:   now,
		IsConnected:   false,
		CreatedAt:     now,
		Variables:     variables,
		RegisterCount: len(variables),
		BoolCount:     boolCount,
		ChannelCount:  channelCount,
	}
}

// NormalizeConfig normalizes every PLC entry of an uploaded document,
// assigning each a fresh generated identifier. A document without a plcs
// list fails fast; everything else is assumed schema-validated upstream.
func (n *Normalizer) NormalizeConfig(doc models.ConfigDocument) ([]models.NormalizedPLC, error) {
	if doc.PLCs == nil {
		return nil, ErrMissingPLCs
	}

	now := time.Now()
	plcs := make([]models.NormalizedPLC, 0, len(doc.PLCs))
	for _, cfg := range doc.PLCs {
		plcs = append(plcs, n.NormalizePLC(cfg, n.opts.IDs.NewID(), now))
	}
	return plcs, nil
}
