package normalize

import (
	"fmt"

	"github.com/plc-dashboard/backend/internal/models"
)

// Denormalize reconstructs the flat address_mappings shape from a normalized
// PLC. Only parent rows become mappings; bit children are folded back into
// their parent's bit_mappings record, recovered from the flat variable list
// by ParentID so the result never depends on the materialized Children field.
// Status, connection state and timestamps have no raw counterpart and are
// dropped.
func Denormalize(plc models.NormalizedPLC) models.RawPLCConfig {
	childIndex := BuildChildIndex(plc.Variables)

	var mappings []models.AddressMapping
	for _, v := range plc.Variables {
		if !v.IsParent() {
			continue
		}

		m := models.AddressMapping{
			PLCRegAdd:   v.PLCRegAdd,
			DataType:    v.DataType,
			OPCUARegAdd: v.OPCUARegAdd,
			Description: v.Description,
		}

		if v.Type == models.KindChannel && v.HasChildren {
			bits := make(map[string]models.BitMapping)
			for _, child := range childIndex[v.ID] {
				pos := 0
				if child.BitPosition != nil {
					pos = *child.BitPosition
				}
				bits[fmt.Sprintf("bit_%02d", pos)] = models.BitMapping{
					Address:     child.PLCRegAdd,
					Description: child.Description,
					BitPosition: pos,
				}
			}
			m.Metadata = &models.MappingMetadata{
				BitCount:    len(bits),
				BitMappings: bits,
			}
		}

		mappings = append(mappings, m)
	}

	plcNo := plc.PLCNo
	if plcNo == 0 {
		plcNo = 1
	}

	return models.RawPLCConfig{
		PLCName:         plc.PLCName,
		PLCNo:           plcNo,
		PLCIP:           plc.PLCIP,
		OPCUAURL:        plc.OPCUAURL,
		AddressMappings: mappings,
	}
}
