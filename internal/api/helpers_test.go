// helpers_test.go - Shared setup for handler tests
package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/plc-dashboard/backend/internal/models"
	"github.com/plc-dashboard/backend/internal/normalize"
	"github.com/plc-dashboard/backend/internal/testutil"
)

// testNormalizer builds a normalizer with deterministic ids so handler
// responses are stable across runs.
func testNormalizer() *normalize.Normalizer {
	return normalize.New(normalize.Options{IDs: normalize.NewSequenceSource("plc")})
}

// seedPLC stores the sample one-PLC document and returns its normalized form.
// The stored PLC has id "plc-1", one bool variable ("P1_ESTOP") and one
// three-bit channel ("P1_IO_1_BC" with children :0 :1 :2).
func seedPLC(t *testing.T, ms *testutil.MockStore) models.NormalizedPLC {
	t.Helper()
	plcs, err := testNormalizer().NormalizeConfig(testutil.SampleConfigDocument())
	if err != nil {
		t.Fatalf("normalizing fixture: %v", err)
	}
	if err := ms.Save(context.Background(), plcs[0]); err != nil {
		t.Fatalf("seeding store: %v", err)
	}
	return plcs[0]
}

// secondPLC stores a second PLC on a different OPC UA server.
func secondPLC(t *testing.T, ms *testutil.MockStore) models.NormalizedPLC {
	t.Helper()
	norm := normalize.New(normalize.Options{IDs: normalize.NewSequenceSource("other")})
	plc := norm.NormalizePLC(models.RawPLCConfig{
		PLCName:  "Oven-02",
		PLCNo:    2,
		PLCIP:    "10.0.0.12",
		OPCUAURL: "opc.tcp://10.0.0.12:4840",
		AddressMappings: []models.AddressMapping{
			{PLCRegAdd: "M30", DataType: models.DataTypeBool, OPCUARegAdd: "P2_DOOR", Description: "Door closed"},
		},
	}, "other-1", time.Now())
	if err := ms.Save(context.Background(), plc); err != nil {
		t.Fatalf("seeding store: %v", err)
	}
	return plc
}

// newContext builds an echo context for a request, with optional path
// parameters given as alternating name/value pairs.
func newContext(e *echo.Echo, method, target, body string, params ...string) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	names := make([]string, 0, len(params)/2)
	values := make([]string, 0, len(params)/2)
	for i := 0; i+1 < len(params); i += 2 {
		names = append(names, params[i])
		values = append(values, params[i+1])
	}
	if len(names) > 0 {
		c.SetParamNames(names...)
		c.SetParamValues(values...)
	}
	return c, rec
}
