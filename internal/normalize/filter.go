package normalize

import (
	"strings"

	"github.com/plc-dashboard/backend/internal/models"
)

// FilterVariables returns the variables whose physical address, logical name
// or description contains the query, case-insensitively. A blank or
// whitespace-only query returns the input unchanged.
func FilterVariables(vars []models.NormalizedVariable, query string) []models.NormalizedVariable {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return vars
	}

	var out []models.NormalizedVariable
	for _, v := range vars {
		if strings.Contains(strings.ToLower(v.PLCRegAdd), q) ||
			strings.Contains(strings.ToLower(v.OPCUARegAdd), q) ||
			strings.Contains(strings.ToLower(v.Description), q) {
			out = append(out, v)
		}
	}
	return out
}

// ParentVariables returns all top-level rows (those without a ParentID).
func ParentVariables(vars []models.NormalizedVariable) []models.NormalizedVariable {
	var out []models.NormalizedVariable
	for _, v := range vars {
		if v.IsParent() {
			out = append(out, v)
		}
	}
	return out
}

// ChildVariables returns the rows whose ParentID equals the given id, in
// list order. Linear scan; inputs are bounded to low hundreds of rows.
func ChildVariables(vars []models.NormalizedVariable, parentID string) []models.NormalizedVariable {
	var out []models.NormalizedVariable
	for _, v := range vars {
		if v.ParentID == parentID {
			out = append(out, v)
		}
	}
	return out
}

// BuildChildIndex builds an on-demand parentId -> children index over the
// flat list, so callers never need the duplicated Children materialization.
func BuildChildIndex(vars []models.NormalizedVariable) map[string][]models.NormalizedVariable {
	idx := make(map[string][]models.NormalizedVariable)
	for _, v := range vars {
		if v.ParentID != "" {
			idx[v.ParentID] = append(idx[v.ParentID], v)
		}
	}
	return idx
}
