package models

// ValueUpdate is one simulated/live value sample for a variable, pushed to
// dashboard clients over the WebSocket feed.
type ValueUpdate struct {
	VariableID  string       `json:"variableId" msgpack:"variableId"`
	OPCUARegAdd string       `json:"opcua_reg_add" msgpack:"opcua_reg_add"`
	Kind        VariableKind `json:"kind" msgpack:"kind"`
	Value       interface{}  `json:"value" msgpack:"value"`
	TimestampMs int64        `json:"timestampMs" msgpack:"timestampMs"`
}
