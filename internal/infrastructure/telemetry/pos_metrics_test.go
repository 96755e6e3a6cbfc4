package telemetry_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"
	"go.uber.org/zap"

	"github.com/retailpos/backend/internal/infrastructure/telemetry"
)

func TestNewRegisterMetrics(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")

	rm, err := telemetry.NewRegisterMetrics(telemetry.RegisterMetricsConfig{
		Meter:  meter,
		Logger: zap.NewNop(),
	})

	require.NoError(t, err)
	require.NotNil(t, rm)
}

func TestNewRegisterMetrics_NilMeter(t *testing.T) {
	rm, err := telemetry.NewRegisterMetrics(telemetry.RegisterMetricsConfig{
		Logger: zap.NewNop(),
	})

	require.Error(t, err)
	assert.Nil(t, rm)
	assert.ErrorIs(t, err, telemetry.ErrMeterNil)
}

func TestRegisterMetrics_Record(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")
	rm, err := telemetry.NewRegisterMetrics(telemetry.RegisterMetricsConfig{Meter: meter})
	require.NoError(t, err)

	ctx := context.Background()

	// Should not panic
	rm.RecordScan(ctx, "wedge", telemetry.ScanOutcomeCatalog)
	rm.RecordScan(ctx, "camera", telemetry.ScanOutcomeUnresolved)
	rm.RecordSale(ctx, decimal.RequireFromString("10.99"))
	rm.RecordOpenSessions(ctx, 3)
}

func TestNewTracerProvider_Disabled(t *testing.T) {
	tp, err := telemetry.NewTracerProvider(context.Background(), telemetry.Config{Enabled: false}, zap.NewNop())
	require.NoError(t, err)
	require.NotNil(t, tp)
	assert.False(t, tp.IsEnabled())
	assert.NoError(t, tp.Shutdown(context.Background()))
	assert.NotNil(t, tp.Tracer("test"))
}

func TestNewMeterProvider_Disabled(t *testing.T) {
	mp, err := telemetry.NewMeterProvider(context.Background(), telemetry.MetricsConfig{Enabled: false}, zap.NewNop())
	require.NoError(t, err)
	require.NotNil(t, mp)
	assert.False(t, mp.IsEnabled())
	assert.NoError(t, mp.Shutdown(context.Background()))
}
