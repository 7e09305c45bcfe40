package models

// VariableKind classifies a normalized variable. Unknown data_type values map
// to KindOther so the passthrough branch is explicit rather than implicit.
type VariableKind string

const (
	KindBool    VariableKind = "bool"
	KindChannel VariableKind = "channel"
	KindOther   VariableKind = "other"
)

// KindOf maps a raw data_type string onto the closed kind enum.
func KindOf(dataType string) VariableKind {
	switch dataType {
	case DataTypeBool:
		return KindBool
	case DataTypeChannel:
		return KindChannel
	default:
		return KindOther
	}
}

// NormalizedVariable is the UI-facing unit of the variable tree. Parents and
// children live interleaved in one flat list; the tree is expressed through
// ParentID back-references. Children may additionally be materialized under
// the parent's Children field for display, but the flat list is authoritative.
type NormalizedVariable struct {
	ID          string               `json:"id"`
	Type        VariableKind         `json:"type"`
	PLCRegAdd   string               `json:"plc_reg_add"`
	OPCUARegAdd string               `json:"opcua_reg_add"`
	Description string               `json:"description"`
	DataType    string               `json:"data_type"`
	ParentID    string               `json:"parentId,omitempty"`
	BitPosition *int                 `json:"bitPosition,omitempty"`
	HasChildren bool                 `json:"hasChildren,omitempty"`
	Children    []NormalizedVariable `json:"children,omitempty"`
	IsBitRow    bool                 `json:"isBitRow,omitempty"`
	Metadata    *MappingMetadata     `json:"metadata,omitempty"`
}

// IsParent reports whether the variable is a top-level mapping row.
func (v NormalizedVariable) IsParent() bool {
	return v.ParentID == ""
}
