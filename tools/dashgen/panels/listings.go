package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// ListingActivity returns a timeseries panel showing create, update, and
// delete rates for catalog listings.
func ListingActivity() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Listing Activity").
		Description("Catalog mutations per minute by operation").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(`rate(bookswap_listings_created_total[5m]) * 60`, "created/min", "A")).
		WithTarget(PromQuery(`rate(bookswap_listings_updated_total[5m]) * 60`, "updated/min", "B")).
		WithTarget(PromQuery(`rate(bookswap_listings_deleted_total[5m]) * 60`, "deleted/min", "C")).
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// ListingsCreatedToday returns a stat panel showing listings created in
// the past 24 hours.
func ListingsCreatedToday() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Created (24h)").
		Description("Listings created in the last 24 hours").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(`increase(bookswap_listings_created_total{job="bookswapd"}[24h])`, "", "A")).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemeThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeArea)
}
