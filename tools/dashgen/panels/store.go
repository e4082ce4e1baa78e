package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// StoreQueryRate returns a timeseries panel showing database queries per
// second by operation.
func StoreQueryRate() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Store Queries").
		Description("Database queries per second by operation").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(
			`sum(rate(bookswap_store_queries_total[5m])) by (operation)`,
			"{{operation}}",
			"A",
		)).
		Unit("reqps").
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// StoreErrorRate returns a timeseries panel showing failed database
// queries per minute.
func StoreErrorRate() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Store Errors / min").
		Description("Failed database queries per minute").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(`bookswap:store_errors:rate5m * 60`, "errors/min", "A")).
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenYellowRed(0.1, 1)).
		ColorScheme(ColorSchemeThresholds()).
		DrawStyle(common.GraphDrawStyleLine)
}
