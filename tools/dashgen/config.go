package main

import "errors"

// KnownMetrics is the set of metric names exported by bookswapd plus
// recording rule names referenced in dashboards and alerts.
var KnownMetrics = map[string]bool{
	// HTTP metrics.
	"bookswap_http_request_duration_seconds": true,
	"bookswap_http_requests_total":           true,

	// Health metrics.
	"bookswap_database_up": true,
	"bookswap_healthz_up":  true,
	"bookswap_readyz_up":   true,

	// Listing metrics.
	"bookswap_listings_created_total": true,
	"bookswap_listings_updated_total": true,
	"bookswap_listings_deleted_total": true,

	// Identity provider metrics.
	"bookswap_identity_requests_total":           true,
	"bookswap_identity_request_duration_seconds": true,

	// Store metrics.
	"bookswap_store_queries_total": true,

	// Recording rules.
	"bookswap:http_requests:rate5m":     true,
	"bookswap:http_errors:rate5m":       true,
	"bookswap:listings_created:rate5m":  true,
	"bookswap:identity_requests:rate5m": true,
	"bookswap:identity_errors:rate5m":   true,
	"bookswap:store_errors:rate5m":      true,

	// Standard Prometheus metrics referenced in dashboards.
	"up":                         true,
	"process_start_time_seconds": true,
}

// Config controls which artifacts the generator produces and where they go.
type Config struct {
	OutputDir        string
	DashboardEnabled bool
	RulesEnabled     bool
}

// DefaultConfig returns a Config that generates all artifacts into ../../deploy
// (relative to tools/dashgen/).
func DefaultConfig() Config {
	return Config{
		OutputDir:        "../../deploy",
		DashboardEnabled: true,
		RulesEnabled:     true,
	}
}

// Validate checks that the config is usable.
func (c Config) Validate() error {
	if c.OutputDir == "" {
		return errors.New("output directory must be set")
	}
	if !c.DashboardEnabled && !c.RulesEnabled {
		return errors.New("at least one of dashboard or rules must be enabled")
	}
	return nil
}
