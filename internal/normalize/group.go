package normalize

import (
	"sort"

	"github.com/plc-dashboard/backend/internal/models"
)

// GroupPLCsByServer partitions PLCs by exact opcua_url equality into a
// server-centric view. No URL canonicalization happens; trailing slashes or
// case differences produce distinct groups. Output is sorted by URL so the
// view is stable across calls.
func GroupPLCsByServer(plcs []models.NormalizedPLC) []models.ServerGroup {
	byURL := make(map[string]*models.ServerGroup)
	for _, plc := range plcs {
		g, ok := byURL[plc.OPCUAURL]
		if !ok {
			g = &models.ServerGroup{
				OPCUAURL: plc.OPCUAURL,
				Status:   models.GroupStatusDisconnected,
			}
			byURL[plc.OPCUAURL] = g
		}

		g.PLCs = append(g.PLCs, plc)
		g.TotalCount++
		if plc.IsConnected {
			g.ConnectedCount++
			g.Status = models.GroupStatusConnected
		}
		if plc.LastChecked.After(g.LastUpdated) {
			g.LastUpdated = plc.LastChecked
		}
	}

	groups := make([]models.ServerGroup, 0, len(byURL))
	for _, g := range byURL {
		groups = append(groups, *g)
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].OPCUAURL < groups[j].OPCUAURL
	})
	return groups
}
