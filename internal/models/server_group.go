package models

import "time"

// Server group aggregate status values.
const (
	GroupStatusConnected    = "connected"
	GroupStatusDisconnected = "disconnected"
)

// ServerGroup is a derived, unpersisted view grouping PLCs that share an
// OPC UA server URL. URLs are compared by exact string equality.
type ServerGroup struct {
	OPCUAURL       string          `json:"opcua_url"`
	PLCs           []NormalizedPLC `json:"plcs"`
	ConnectedCount int             `json:"connectedCount"`
	TotalCount     int             `json:"totalCount"`
	Status         string          `json:"status"`
	LastUpdated    time.Time       `json:"lastUpdated"`
}
