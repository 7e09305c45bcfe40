package models

import "time"

// PLCStatus represents the operational status of a PLC record.
type PLCStatus string

const (
	PLCStatusActive      PLCStatus = "active"
	PLCStatusMaintenance PLCStatus = "maintenance"
	PLCStatusError       PLCStatus = "error"
)

// NormalizedPLC is the UI-facing view of one PLC: its identity, connection
// state, and the flattened parent/child variable list.
//
// RegisterCount counts every flattened row (parents and bit children), while
// BoolCount and ChannelCount count declared mappings plus expanded bits, so
// BoolCount+ChannelCount is not guaranteed to equal RegisterCount. The counts
// mirror how the configuration was declared, not how it renders.
type NormalizedPLC struct {
	ID            string               `json:"id"`
	PLCName       string               `json:"plc_name"`
	PLCNo         int                  `json:"plc_no,omitempty"`
	PLCIP         string               `json:"plc_ip"`
	OPCUAURL      string               `json:"opcua_url"`
	Status        PLCStatus            `json:"status"`
	LastChecked   time.Time            `json:"last_checked"`
	IsConnected   bool                 `json:"is_connected"`
	CreatedAt     time.Time            `json:"created_at"`
	Variables     []NormalizedVariable `json:"variables"`
	RegisterCount int                  `json:"registerCount"`
	BoolCount     int                  `json:"boolCount"`
	ChannelCount  int                  `json:"channelCount"`
}
