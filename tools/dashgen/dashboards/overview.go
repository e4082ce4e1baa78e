// Package dashboards assembles Grafana dashboard definitions from panel builders.
package dashboards

import (
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"

	"github.com/NikhilTirunagiri/GMUBookSwap/tools/dashgen/panels"
)

// BuildOverview constructs the BookSwap Overview dashboard with all
// metric rows.
func BuildOverview() *dashboard.DashboardBuilder {
	b := dashboard.NewDashboardBuilder("BookSwap Overview").
		Uid("bookswap-overview").
		Tags([]string{"bookswap", "bookswapd"}).
		Refresh("30s").
		Time("now-6h", "now").
		Timezone("browser").
		Editable().
		Tooltip(dashboard.DashboardCursorSyncCrosshair).
		WithVariable(datasourceVar())

	// Row 1: Overview.
	b.WithRow(dashboard.NewRowBuilder("Overview").
		WithPanel(panels.HealthzStat()).
		WithPanel(panels.ReadyzStat()).
		WithPanel(panels.DatabaseStat()).
		WithPanel(panels.UptimeStat()))

	// Row 2: HTTP.
	b.WithRow(dashboard.NewRowBuilder("HTTP").
		WithPanel(panels.RequestRate()).
		WithPanel(panels.LatencyPercentiles()).
		WithPanel(panels.ErrorRate()))

	// Row 3: Listings.
	b.WithRow(dashboard.NewRowBuilder("Listings").
		WithPanel(panels.ListingActivity()).
		WithPanel(panels.ListingsCreatedToday()))

	// Row 4: Identity.
	b.WithRow(dashboard.NewRowBuilder("Identity").
		WithPanel(panels.IdentityRequestRate()).
		WithPanel(panels.IdentityLatency()))

	// Row 5: Store.
	b.WithRow(dashboard.NewRowBuilder("Store").
		WithPanel(panels.StoreQueryRate()).
		WithPanel(panels.StoreErrorRate()))

	return b
}

func datasourceVar() *dashboard.DatasourceVariableBuilder {
	return dashboard.NewDatasourceVariableBuilder("datasource").
		Label("Datasource").
		Type("prometheus")
}
