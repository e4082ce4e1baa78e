package rules

// RecordingRules returns a PrometheusRule CR containing pre-computed rate
// expressions used by dashboards and alert rules.
func RecordingRules() PrometheusRule {
	return PrometheusRule{
		APIVersion: "monitoring.coreos.com/v1",
		Kind:       "PrometheusRule",
		Metadata: PrometheusRuleMetadata{
			Name: "bookswap-recording-rules",
			Labels: map[string]string{
				"prometheus": "system-rules-prometheus",
			},
		},
		Spec: PrometheusRuleSpec{
			Groups: []RuleGroup{
				{
					Name: "bookswap-recording",
					Rules: []Rule{
						{
							Record: "bookswap:http_requests:rate5m",
							Expr:   `sum(rate(bookswap_http_requests_total[5m]))`,
						},
						{
							Record: "bookswap:http_errors:rate5m",
							Expr:   `sum(rate(bookswap_http_requests_total{status=~"5.."}[5m]))`,
						},
						{
							Record: "bookswap:listings_created:rate5m",
							Expr:   `rate(bookswap_listings_created_total[5m])`,
						},
						{
							Record: "bookswap:identity_requests:rate5m",
							Expr:   `sum(rate(bookswap_identity_requests_total[5m]))`,
						},
						{
							Record: "bookswap:identity_errors:rate5m",
							Expr:   `sum(rate(bookswap_identity_requests_total{outcome="error"}[5m]))`,
						},
						{
							Record: "bookswap:store_errors:rate5m",
							Expr:   `sum(rate(bookswap_store_queries_total{outcome="error"}[5m]))`,
						},
					},
				},
			},
		},
	}
}
