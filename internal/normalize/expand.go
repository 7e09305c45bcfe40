package normalize

import (
	"fmt"
	"sort"
	"strings"

	"github.com/plc-dashboard/backend/internal/models"
)

// ExpandBits produces one bool child row per declared bit of a channel
// mapping, sorted ascending by bit position. A mapping without bit metadata
// yields an empty list; that is a childless channel, not an error.
func ExpandBits(m models.AddressMapping) []models.NormalizedVariable {
	if !m.HasBitMappings() {
		return nil
	}

	children := make([]models.NormalizedVariable, 0, len(m.Metadata.BitMappings))
	for _, bit := range m.Metadata.BitMappings {
		pos := bit.BitPosition
		children = append(children, models.NormalizedVariable{
			ID:          fmt.Sprintf("%s:%d", m.OPCUARegAdd, pos),
			Type:        models.KindBool,
			PLCRegAdd:   bit.Address,
			OPCUARegAdd: fmt.Sprintf("%s_bit%d", m.OPCUARegAdd, pos),
			Description: bit.Description,
			DataType:    models.DataTypeBool,
			ParentID:    m.OPCUARegAdd,
			BitPosition: intPtr(pos),
			IsBitRow:    true,
		})
	}

	sort.Slice(children, func(i, j int) bool {
		return *children[i].BitPosition < *children[j].BitPosition
	})
	return children
}

// SynthesizeBits builds count sequential bit rows (positions 0..count-1) with
// generic descriptions for a channel uploaded without bit metadata. Only the
// upload-creation path uses this fallback.
func SynthesizeBits(m models.AddressMapping, count int) []models.NormalizedVariable {
	children := make([]models.NormalizedVariable, 0, count)
	for pos := 0; pos < count; pos++ {
		children = append(children, models.NormalizedVariable{
			ID:          fmt.Sprintf("%s:%d", m.OPCUARegAdd, pos),
			Type:        models.KindBool,
			PLCRegAdd:   fmt.Sprintf("%s.%d", m.PLCRegAdd, pos),
			OPCUARegAdd: fmt.Sprintf("%s_bit%d", m.OPCUARegAdd, pos),
			Description: fmt.Sprintf("%s bit %d", m.OPCUARegAdd, pos),
			DataType:    models.DataTypeBool,
			ParentID:    m.OPCUARegAdd,
			BitPosition: intPtr(pos),
			IsBitRow:    true,
		})
	}
	return children
}

// hasChannelSuffix reports whether the logical name ends in one of the
// recognized multi-bit suffixes.
func hasChannelSuffix(opcuaRegAdd string, suffixes []string) bool {
	for _, s := range suffixes {
		if strings.HasSuffix(opcuaRegAdd, s) {
			return true
		}
	}
	return false
}

func intPtr(v int) *int { return &v }
