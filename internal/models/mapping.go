// Package models contains domain types for the PLC Configuration Dashboard.
package models

// DataType sentinel values. Anything else is treated as an unrecognized
// passthrough kind (see VariableKind).
const (
	DataTypeBool    = "bool"
	DataTypeChannel = "channel"
)

// BitMapping describes one bit within a channel register.
type BitMapping struct {
	Address     string `json:"address"`
	Description string `json:"description"`
	BitPosition int    `json:"bit_position"`
}

// MappingMetadata carries the optional bit-level detail of a channel register.
type MappingMetadata struct {
	BitCount    int                   `json:"bit_count,omitempty"`
	BitMappings map[string]BitMapping `json:"bit_mappings,omitempty"`
}

// AddressMapping is a declared correspondence between a physical PLC register
// and a logical OPC UA node name. This flat shape is the system of record.
type AddressMapping struct {
	PLCRegAdd   string           `json:"plc_reg_add"`
	DataType    string           `json:"data_type"`
	OPCUARegAdd string           `json:"opcua_reg_add"`
	Description string           `json:"description"`
	Metadata    *MappingMetadata `json:"metadata,omitempty"`
}

// HasBitMappings reports whether the mapping carries at least one declared bit.
func (m AddressMapping) HasBitMappings() bool {
	return m.Metadata != nil && len(m.Metadata.BitMappings) > 0
}

// RawPLCConfig is the upload/storage shape of a single PLC.
type RawPLCConfig struct {
	PLCName         string           `json:"plc_name"`
	PLCNo           int              `json:"plc_no"`
	PLCIP           string           `json:"plc_ip"`
	OPCUAURL        string           `json:"opcua_url"`
	AddressMappings []AddressMapping `json:"address_mappings"`
}

// ConfigDocument is the top-level uploaded JSON document.
type ConfigDocument struct {
	PLCs []RawPLCConfig `json:"plcs"`
}
