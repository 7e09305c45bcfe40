package normalize

import (
	"errors"
	"testing"
	"time"

	"github.com/plc-dashboard/backend/internal/models"
)

func boolMapping() models.AddressMapping {
	return models.AddressMapping{
		PLCRegAdd:   "M20",
		DataType:    models.DataTypeBool,
		OPCUARegAdd: "P1_ESTOP",
		Description: "Emergency stop",
	}
}

func testNormalizer() *Normalizer {
	return New(Options{IDs: NewSequenceSource("plc")})
}

func TestNormalizeMapping_BoolPassthrough(t *testing.T) {
	rows := testNormalizer().NormalizeMapping(boolMapping())

	if len(rows) != 1 {
		t.Fatalf("expected exactly one row, got %d", len(rows))
	}
	row := rows[0]
	if row.Type != models.KindBool {
		t.Errorf("expected bool kind, got %s", row.Type)
	}
	if row.HasChildren {
		t.Error("bool mapping must not have children")
	}
	if row.ParentID != "" {
		t.Errorf("bool mapping must not have a parent, got %q", row.ParentID)
	}
	if row.ID != "P1_ESTOP" {
		t.Errorf("parent id must derive from opcua_reg_add, got %q", row.ID)
	}
}

func TestNormalizeMapping_ChannelWithBits(t *testing.T) {
	rows := testNormalizer().NormalizeMapping(channelMapping(threeBits()))

	// 1 parent + K children
	if len(rows) != 4 {
		t.Fatalf("expected 4 rows (1 parent + 3 bits), got %d", len(rows))
	}

	parent := rows[0]
	if parent.Type != models.KindChannel || !parent.HasChildren {
		t.Errorf("expected channel parent with children, got %+v", parent)
	}
	if len(parent.Children) != 3 {
		t.Errorf("expected 3 materialized children, got %d", len(parent.Children))
	}
	for i, child := range rows[1:] {
		if child.ParentID != parent.ID {
			t.Errorf("row %d: parentId %q does not reference parent %q", i+1, child.ParentID, parent.ID)
		}
	}
}

func TestNormalizeMapping_ChildlessChannel(t *testing.T) {
	// No suffix synthesis configured: a channel without bits stays childless
	rows := New(Options{}).NormalizeMapping(models.AddressMapping{
		PLCRegAdd:   "D200",
		DataType:    models.DataTypeChannel,
		OPCUARegAdd: "P2_SPARE",
	})

	if len(rows) != 1 {
		t.Fatalf("expected a single row, got %d", len(rows))
	}
	if rows[0].HasChildren {
		t.Error("childless channel must have hasChildren unset")
	}
}

func TestNormalizeMapping_SuffixFallback(t *testing.T) {
	n := New(Options{
		SynthesizeMissingBits: true,
		SynthesizedBitCount:   8,
		ChannelSuffixes:       DefaultChannelSuffixes,
	})

	rows := n.NormalizeMapping(channelMapping(nil)) // name ends in _BC
	if len(rows) != 9 {
		t.Fatalf("expected parent + 8 synthesized bits, got %d rows", len(rows))
	}
	if !rows[0].HasChildren {
		t.Error("expected fallback to mark the parent as having children")
	}

	// Non-suffixed names never trigger the fallback
	plain := n.NormalizeMapping(models.AddressMapping{
		PLCRegAdd:   "D300",
		DataType:    models.DataTypeChannel,
		OPCUARegAdd: "P3_RAW",
	})
	if len(plain) != 1 {
		t.Errorf("expected no synthesis without a recognized suffix, got %d rows", len(plain))
	}
}

func TestNormalizeMapping_UnknownKind(t *testing.T) {
	rows := testNormalizer().NormalizeMapping(models.AddressMapping{
		PLCRegAdd:   "D400",
		DataType:    "float32",
		OPCUARegAdd: "P4_TEMP",
	})

	if len(rows) != 1 {
		t.Fatalf("expected a single passthrough row, got %d", len(rows))
	}
	if rows[0].Type != models.KindOther {
		t.Errorf("expected explicit other kind, got %s", rows[0].Type)
	}
	if rows[0].DataType != "float32" {
		t.Errorf("raw data_type must be preserved, got %q", rows[0].DataType)
	}
	if rows[0].HasChildren || rows[0].ParentID != "" {
		t.Error("unknown kind must be neither parent nor child")
	}
}

func TestNormalizePLC_CountAsymmetry(t *testing.T) {
	cfg := models.RawPLCConfig{
		PLCName:  "Press-01",
		PLCNo:    1,
		PLCIP:    "10.0.0.11",
		OPCUAURL: "opc.tcp://10.0.0.11:4840",
		AddressMappings: []models.AddressMapping{
			boolMapping(),
			channelMapping(threeBits()),
		},
	}

	plc := testNormalizer().NormalizePLC(cfg, "plc-1", time.Now())

	// 1 bool row + 1 channel parent + 3 bit rows
	if plc.RegisterCount != 5 {
		t.Errorf("expected registerCount 5, got %d", plc.RegisterCount)
	}
	// 1 declared bool + 3 declared bits
	if plc.BoolCount != 4 {
		t.Errorf("expected boolCount 4, got %d", plc.BoolCount)
	}
	if plc.ChannelCount != 1 {
		t.Errorf("expected channelCount 1, got %d", plc.ChannelCount)
	}
	if plc.BoolCount+plc.ChannelCount == plc.RegisterCount {
		t.Error("counts are expected to disagree with registerCount for this shape")
	}
}

func TestNormalizePLC_UploadDefaults(t *testing.T) {
	cfg := models.RawPLCConfig{PLCName: "Press-02", OPCUAURL: "opc.tcp://a:4840"}
	plc := testNormalizer().NormalizePLC(cfg, "plc-2", time.Now())

	if plc.Status != models.PLCStatusMaintenance {
		t.Errorf("uploads must start in maintenance, got %s", plc.Status)
	}
	if plc.IsConnected {
		t.Error("uploads must never start connected")
	}
}

func TestNormalizeConfig(t *testing.T) {
	doc := models.ConfigDocument{
		PLCs: []models.RawPLCConfig{
			{PLCName: "A", OPCUAURL: "opc.tcp://a:4840", AddressMappings: []models.AddressMapping{boolMapping()}},
			{PLCName: "B", OPCUAURL: "opc.tcp://b:4840"},
		},
	}

	plcs, err := testNormalizer().NormalizeConfig(doc)
	if err != nil {
		t.Fatalf("NormalizeConfig failed: %v", err)
	}
	if len(plcs) != 2 {
		t.Fatalf("expected 2 PLCs, got %d", len(plcs))
	}
	if plcs[0].ID != "plc-1" || plcs[1].ID != "plc-2" {
		t.Errorf("expected sequential ids, got %q and %q", plcs[0].ID, plcs[1].ID)
	}
}

func TestNormalizeConfig_MissingPLCs(t *testing.T) {
	_, err := testNormalizer().NormalizeConfig(models.ConfigDocument{})
	if !errors.Is(err, ErrMissingPLCs) {
		t.Fatalf("expected ErrMissingPLCs, got %v", err)
	}
}

func TestParentChildLinkage(t *testing.T) {
	doc := models.ConfigDocument{
		PLCs: []models.RawPLCConfig{{
			PLCName:  "Press-01",
			OPCUAURL: "opc.tcp://a:4840",
			AddressMappings: []models.AddressMapping{
				boolMapping(),
				channelMapping(threeBits()),
			},
		}},
	}

	plcs, err := testNormalizer().NormalizeConfig(doc)
	if err != nil {
		t.Fatal(err)
	}

	vars := plcs[0].Variables
	parents := make(map[string]models.NormalizedVariable)
	for _, v := range vars {
		if v.IsParent() {
			parents[v.ID] = v
		}
	}

	for _, v := range vars {
		if v.ParentID == "" {
			continue
		}
		parent, ok := parents[v.ParentID]
		if !ok {
			t.Errorf("child %s references missing parent %s", v.ID, v.ParentID)
			continue
		}
		if !parent.HasChildren {
			t.Errorf("parent %s of child %s is not marked hasChildren", parent.ID, v.ID)
		}
	}
}

func TestParseConfigDocument(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid", `{"plcs":[{"plc_name":"A","address_mappings":[]}]}`, false},
		{"empty list", `{"plcs":[]}`, false},
		{"missing plcs", `{}`, true},
		{"null plcs", `{"plcs":null}`, true},
		{"plcs not an array", `{"plcs":"not-an-array"}`, true},
		{"plcs an object", `{"plcs":{"plc_name":"A"}}`, true},
		{"not json", `plcs`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfigDocument([]byte(tt.input))
			if tt.wantErr && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestSequenceSource(t *testing.T) {
	ids := NewSequenceSource("x")
	if got := ids.NewID(); got != "x-1" {
		t.Errorf("expected x-1, got %s", got)
	}
	if got := ids.NewID(); got != "x-2" {
		t.Errorf("expected x-2, got %s", got)
	}
}
