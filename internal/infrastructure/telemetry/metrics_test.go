package telemetry_test

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vehiclefin/financing-offer/internal/infrastructure/telemetry"
	"github.com/vehiclefin/financing-offer/pkg/observability"
)

func TestRecorder_ExportsCounters(t *testing.T) {
	provider, handler, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName: "financing-offer-test",
		Registry:    prometheus.NewRegistry(),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	rec, err := telemetry.NewRecorder(provider.Meter("test"))
	require.NoError(t, err)

	ctx := context.Background()
	rec.SimulationRecorded(ctx, "AR", "accepted")
	rec.SimulationRecorded(ctx, "AR", "accepted")
	rec.SimulationRecorded(ctx, "CL", "rejected")
	rec.SettingsUpdated(ctx, "CL")

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(w.Result().Body)
	require.NoError(t, err)

	out := string(body)
	assert.Contains(t, out, "financing_simulations_total")
	assert.Contains(t, out, `outcome="accepted"`)
	assert.Contains(t, out, "financing_settings_updates_total")
}
