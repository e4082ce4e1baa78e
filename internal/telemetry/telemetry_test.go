package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NikhilTirunagiri/GMUBookSwap/internal/config"
)

func TestSetupDisabled(t *testing.T) {
	t.Parallel()

	shutdown, err := Setup(context.Background(), config.TelemetryConfig{Enabled: false}, "test")
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
}

func TestSetupEnabled(t *testing.T) {
	// grpc.NewClient connects lazily, so setup succeeds without a collector.
	shutdown, err := Setup(context.Background(), config.TelemetryConfig{
		Enabled:     true,
		Endpoint:    "localhost:4317",
		Insecure:    true,
		SampleRatio: 0.5,
		ServiceName: "bookswapd-test",
	}, "test")
	require.NoError(t, err)
	require.NotNil(t, shutdown)

	// Flush against a canceled context so the test does not wait on export.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_ = shutdown(ctx)
}
