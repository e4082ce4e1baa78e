package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// IdentityRequestRate returns a timeseries panel showing identity
// provider calls by operation and outcome.
func IdentityRequestRate() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Identity Calls").
		Description("Identity provider calls per second by operation and outcome").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(
			`sum(rate(bookswap_identity_requests_total[5m])) by (operation, outcome)`,
			"{{operation}} {{outcome}}",
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

// IdentityLatency returns a timeseries panel showing p50 and p95 identity
// provider call latencies. Every login, signup, and bearer check sits on
// this path.
func IdentityLatency() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Identity Latency").
		Description("Identity provider call duration percentiles").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(
			`histogram_quantile(0.50, sum(rate(bookswap_identity_request_duration_seconds_bucket{job="bookswapd"}[5m])) by (le))`,
			"p50",
			"A",
		)).
		WithTarget(PromQuery(
			`histogram_quantile(0.95, sum(rate(bookswap_identity_request_duration_seconds_bucket{job="bookswapd"}[5m])) by (le))`,
			"p95",
			"B",
		)).
		Unit("s").
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}
