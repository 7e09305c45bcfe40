// Package export renders normalized PLC data as CSV for download.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/plc-dashboard/backend/internal/models"
)

// csvHeader is the column layout of exported variable rows.
var csvHeader = []string{
	"plc_name",
	"opcua_url",
	"variable_id",
	"type",
	"plc_reg_add",
	"opcua_reg_add",
	"description",
	"parent_id",
	"bit_position",
}

// WriteVariablesCSV writes every variable row of the given PLCs as CSV,
// one line per flattened row, parents and bit children alike.
func WriteVariablesCSV(w io.Writer, plcs []models.NormalizedPLC) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}

	for _, plc := range plcs {
		for _, v := range plc.Variables {
			bitPos := ""
			if v.BitPosition != nil {
				bitPos = fmt.Sprintf("%d", *v.BitPosition)
			}
			row := []string{
				plc.PLCName,
				plc.OPCUAURL,
				v.ID,
				string(v.Type),
				v.PLCRegAdd,
				v.OPCUARegAdd,
				v.Description,
				v.ParentID,
				bitPos,
			}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("writing CSV row: %w", err)
			}
		}
	}

	cw.Flush()
	return cw.Error()
}
