// fixtures.go - Shared test fixtures for configuration documents
package testutil

import "github.com/plc-dashboard/backend/internal/models"

// SampleChannelMapping returns a channel register with three declared bits,
// matching the shapes seen in operator uploads.
func SampleChannelMapping() models.AddressMapping {
	return models.AddressMapping{
		PLCRegAdd:   "D100",
		DataType:    models.DataTypeChannel,
		OPCUARegAdd: "P1_IO_1_BC",
		Description: "Line 1 IO block",
		Metadata: &models.MappingMetadata{
			BitCount: 3,
			BitMappings: map[string]models.BitMapping{
				"bit_00": {Address: "D100.0", Description: "Conveyor run", BitPosition: 0},
				"bit_01": {Address: "D100.1", Description: "Conveyor fault", BitPosition: 1},
				"bit_02": {Address: "D100.2", Description: "Gate open", BitPosition: 2},
			},
		},
	}
}

// SampleBoolMapping returns a single-bit register mapping.
func SampleBoolMapping() models.AddressMapping {
	return models.AddressMapping{
		PLCRegAdd:   "M20",
		DataType:    models.DataTypeBool,
		OPCUARegAdd: "P1_ESTOP",
		Description: "Emergency stop",
	}
}

// SampleConfigDocument returns a one-PLC document with one bool and one
// three-bit channel mapping.
func SampleConfigDocument() models.ConfigDocument {
	return models.ConfigDocument{
		PLCs: []models.RawPLCConfig{
			{
				PLCName:  "Press-01",
				PLCNo:    1,
				PLCIP:    "10.0.0.11",
				OPCUAURL: "opc.tcp://10.0.0.11:4840",
				AddressMappings: []models.AddressMapping{
					SampleBoolMapping(),
					SampleChannelMapping(),
				},
			},
		},
	}
}
