// Package telemetry records business metrics through OpenTelemetry.
package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/vehiclefin/financing-offer/internal/domain/port"
)

// Recorder implements port.MetricsRecorder.
type Recorder struct {
	simulations metric.Int64Counter
	updates     metric.Int64Counter
}

// NewRecorder creates the counters on meter.
func NewRecorder(meter metric.Meter) (*Recorder, error) {
	simulations, err := meter.Int64Counter("financing_simulations",
		metric.WithDescription("Financing simulations by country and outcome."))
	if err != nil {
		return nil, fmt.Errorf("create simulations counter: %w", err)
	}
	updates, err := meter.Int64Counter("financing_settings_updates",
		metric.WithDescription("Cap changes by country."))
	if err != nil {
		return nil, fmt.Errorf("create settings counter: %w", err)
	}
	return &Recorder{simulations: simulations, updates: updates}, nil
}

func (r *Recorder) SimulationRecorded(ctx context.Context, country, outcome string) {
	r.simulations.Add(ctx, 1, metric.WithAttributes(
		attribute.String("country", country),
		attribute.String("outcome", outcome),
	))
}

func (r *Recorder) SettingsUpdated(ctx context.Context, country string) {
	r.updates.Add(ctx, 1, metric.WithAttributes(attribute.String("country", country)))
}

var _ port.MetricsRecorder = (*Recorder)(nil)
