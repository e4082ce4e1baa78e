package rules

// AlertRules returns a PrometheusRule CR containing alert rules for
// bookswapd operational monitoring.
func AlertRules() PrometheusRule {
	return PrometheusRule{
		APIVersion: "monitoring.coreos.com/v1",
		Kind:       "PrometheusRule",
		Metadata: PrometheusRuleMetadata{
			Name: "bookswap-alerts",
			Labels: map[string]string{
				"prometheus": "system-rules-prometheus",
			},
		},
		Spec: PrometheusRuleSpec{
			Groups: []RuleGroup{
				{
					Name: "bookswap-alerts",
					Rules: []Rule{
						{
							Alert: "BookswapDown",
							Expr:  `absent(up{job="bookswapd"})`,
							For:   "2m",
							Labels: map[string]string{
								"severity": "critical",
							},
							Annotations: map[string]string{
								"summary":     "BookSwap API is down",
								"description": "The bookswapd job has been absent for more than 2 minutes.",
							},
						},
						{
							Alert: "BookswapReadinessDown",
							Expr:  `bookswap_readyz_up == 0`,
							For:   "2m",
							Labels: map[string]string{
								"severity": "critical",
							},
							Annotations: map[string]string{
								"summary":     "BookSwap readiness check is failing",
								"description": "The readiness probe has been reporting not-ready for more than 2 minutes.",
							},
						},
						{
							Alert: "BookswapDatabaseDown",
							Expr:  `bookswap_database_up == 0`,
							For:   "2m",
							Labels: map[string]string{
								"severity": "critical",
							},
							Annotations: map[string]string{
								"summary":     "BookSwap database is unreachable",
								"description": "Database pings have been failing for more than 2 minutes. Listings cannot be read or written.",
							},
						},
						{
							Alert: "BookswapHighErrorRate",
							Expr:  `bookswap:http_errors:rate5m / bookswap:http_requests:rate5m > 0.05`,
							For:   "5m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "High HTTP error rate on BookSwap",
								"description": "More than 5% of HTTP requests are returning 5xx errors over the last 5 minutes.",
							},
						},
						{
							Alert: "BookswapIdentityErrors",
							Expr:  `bookswap:identity_errors:rate5m > 0.1`,
							For:   "5m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Identity provider calls are failing",
								"description": "Identity provider errors are occurring at more than 0.1/s. Logins, signups, and token checks are degraded.",
							},
						},
						{
							Alert: "BookswapIdentitySlow",
							Expr:  `histogram_quantile(0.95, sum(rate(bookswap_identity_request_duration_seconds_bucket[5m])) by (le)) > 2`,
							For:   "10m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Identity provider calls are slow",
								"description": "The p95 identity provider call duration has been above 2 seconds for 10 minutes. Every authenticated request sits on this path.",
							},
						},
						{
							Alert: "BookswapStoreErrors",
							Expr:  `bookswap:store_errors:rate5m > 0`,
							For:   "5m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Database queries are failing",
								"description": "The store has been reporting failed queries for more than 5 minutes.",
							},
						},
					},
				},
			},
		},
	}
}
