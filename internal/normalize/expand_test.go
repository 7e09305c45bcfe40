package normalize

import (
	"fmt"
	"testing"

	"github.com/plc-dashboard/backend/internal/models"
)

func channelMapping(bits map[string]models.BitMapping) models.AddressMapping {
	m := models.AddressMapping{
		PLCRegAdd:   "D100",
		DataType:    models.DataTypeChannel,
		OPCUARegAdd: "P1_IO_1_BC",
		Description: "Line 1 IO block",
	}
	if bits != nil {
		m.Metadata = &models.MappingMetadata{
			BitCount:    len(bits),
			BitMappings: bits,
		}
	}
	return m
}

func threeBits() map[string]models.BitMapping {
	return map[string]models.BitMapping{
		"bit_02": {Address: "D100.2", Description: "Gate open", BitPosition: 2},
		"bit_00": {Address: "D100.0", Description: "Conveyor run", BitPosition: 0},
		"bit_01": {Address: "D100.1", Description: "Conveyor fault", BitPosition: 1},
	}
}

func TestExpandBits(t *testing.T) {
	children := ExpandBits(channelMapping(threeBits()))

	if len(children) != 3 {
		t.Fatalf("expected 3 children, got %d", len(children))
	}

	// Sorted ascending by bit position regardless of map iteration order
	for i, child := range children {
		if child.BitPosition == nil || *child.BitPosition != i {
			t.Errorf("child %d: expected bit position %d, got %v", i, i, child.BitPosition)
		}
		wantID := fmt.Sprintf("P1_IO_1_BC:%d", i)
		if child.ID != wantID {
			t.Errorf("child %d: expected id %s, got %s", i, wantID, child.ID)
		}
		wantOpc := fmt.Sprintf("P1_IO_1_BC_bit%d", i)
		if child.OPCUARegAdd != wantOpc {
			t.Errorf("child %d: expected opcua_reg_add %s, got %s", i, wantOpc, child.OPCUARegAdd)
		}
		if child.ParentID != "P1_IO_1_BC" {
			t.Errorf("child %d: expected parentId P1_IO_1_BC, got %s", i, child.ParentID)
		}
		if child.Type != models.KindBool {
			t.Errorf("child %d: expected bool kind, got %s", i, child.Type)
		}
		if !child.IsBitRow {
			t.Errorf("child %d: expected isBitRow", i)
		}
	}

	if children[0].PLCRegAdd != "D100.0" || children[0].Description != "Conveyor run" {
		t.Errorf("bit 0 did not carry its address/description: %+v", children[0])
	}
}

func TestExpandBits_NoMetadata(t *testing.T) {
	if got := ExpandBits(channelMapping(nil)); got != nil {
		t.Errorf("expected no children for a channel without bit metadata, got %d", len(got))
	}

	empty := channelMapping(map[string]models.BitMapping{})
	if got := ExpandBits(empty); got != nil {
		t.Errorf("expected no children for empty bit_mappings, got %d", len(got))
	}
}

func TestSynthesizeBits(t *testing.T) {
	m := channelMapping(nil)

	children := SynthesizeBits(m, 8)
	if len(children) != 8 {
		t.Fatalf("expected 8 synthesized bits, got %d", len(children))
	}
	for i, child := range children {
		if child.BitPosition == nil || *child.BitPosition != i {
			t.Errorf("bit %d: wrong position %v", i, child.BitPosition)
		}
		if child.ParentID != m.OPCUARegAdd {
			t.Errorf("bit %d: wrong parent %s", i, child.ParentID)
		}
		if child.Description == "" {
			t.Errorf("bit %d: expected a generic description", i)
		}
	}

	// The count is a tunable, not a constant
	if got := SynthesizeBits(m, 4); len(got) != 4 {
		t.Errorf("expected 4 synthesized bits, got %d", len(got))
	}
}

func TestHasChannelSuffix(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"P1_IO_1_BC", true},
		{"P2_STATUS_WORD", true},
		{"P3_LEVEL_CH", true},
		{"P1_ESTOP", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := hasChannelSuffix(tt.name, DefaultChannelSuffixes); got != tt.want {
			t.Errorf("hasChannelSuffix(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
