package telemetry

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// ErrMeterNil is returned when a metrics helper is built without a meter.
var ErrMeterNil = errors.New("NewRegisterMetrics: meter cannot be nil")

// RegisterMetrics tracks what happens at the register: scans, completed
// sales, and how many customer sessions are open.
type RegisterMetrics struct {
	meter  metric.Meter
	logger *zap.Logger

	scansTotal      *Counter
	salesTotal      *Counter
	saleAmountTotal *Counter

	openSessions *Gauge
}

// RegisterMetricsConfig holds configuration for register metrics.
type RegisterMetricsConfig struct {
	Meter  metric.Meter
	Logger *zap.Logger
}

// NewRegisterMetrics creates a new RegisterMetrics instance.
func NewRegisterMetrics(cfg RegisterMetricsConfig) (*RegisterMetrics, error) {
	if cfg.Meter == nil {
		return nil, ErrMeterNil
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	rm := &RegisterMetrics{
		meter:  cfg.Meter,
		logger: logger,
	}

	var err error

	rm.scansTotal, err = NewCounter(
		cfg.Meter,
		"pos_scans_total",
		"Total number of barcode scans processed",
		"{scans}",
	)
	if err != nil {
		return nil, err
	}

	rm.salesTotal, err = NewCounter(
		cfg.Meter,
		"pos_sales_total",
		"Total number of completed sales",
		"{sales}",
	)
	if err != nil {
		return nil, err
	}

	rm.saleAmountTotal, err = NewCounter(
		cfg.Meter,
		"pos_sale_amount_total",
		"Total sale amount in cents",
		"{cents}",
	)
	if err != nil {
		return nil, err
	}

	rm.openSessions, err = NewGauge(
		cfg.Meter,
		"pos_open_sessions",
		"Number of customer sessions currently open",
		"{sessions}",
	)
	if err != nil {
		return nil, err
	}

	return rm, nil
}

// ScanOutcome labels how a scan was resolved.
type ScanOutcome string

const (
	ScanOutcomeCatalog    ScanOutcome = "catalog"
	ScanOutcomeTemporary  ScanOutcome = "temporary"
	ScanOutcomeUnresolved ScanOutcome = "unresolved"
)

// RecordScan records a processed barcode scan
func (rm *RegisterMetrics) RecordScan(ctx context.Context, source string, outcome ScanOutcome) {
	rm.scansTotal.Inc(ctx,
		AttrScanSource.String(source),
		AttrScanOutcome.String(string(outcome)),
	)
}

// RecordSale records a completed sale and its amount
func (rm *RegisterMetrics) RecordSale(ctx context.Context, amount decimal.Decimal) {
	rm.salesTotal.Inc(ctx)
	cents := amount.Mul(decimal.NewFromInt(100)).IntPart()
	rm.saleAmountTotal.Add(ctx, cents)
}

// RecordOpenSessions records how many sessions are open right now
func (rm *RegisterMetrics) RecordOpenSessions(ctx context.Context, count int) {
	rm.openSessions.Record(ctx, int64(count))
}
