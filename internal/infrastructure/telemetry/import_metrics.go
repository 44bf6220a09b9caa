package telemetry

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// ErrMeterNil is returned when a metrics set is built without a meter
var ErrMeterNil = errors.New("telemetry: meter cannot be nil")

// Metric label keys. Span attributes use the dotted keys in tracing.go.
const (
	labelResult    = attribute.Key("result")
	labelErrorKind = attribute.Key("error_kind")
	labelChannel   = attribute.Key("channel")
)

// ImportMetrics counts order imports and how long they take
type ImportMetrics struct {
	importsTotal  *Counter
	failuresTotal *Counter
	lineItems     *Histogram
	duration      *Histogram
}

// NewImportMetrics registers the order import instruments on meter
func NewImportMetrics(meter metric.Meter) (*ImportMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}

	im := &ImportMetrics{}
	var err error

	im.importsTotal, err = NewCounter(meter,
		"storefront_order_import_total",
		"Order import attempts by result",
		"{imports}",
	)
	if err != nil {
		return nil, err
	}

	im.failuresTotal, err = NewCounter(meter,
		"storefront_order_import_failures_total",
		"Failed order imports by error kind",
		"{imports}",
	)
	if err != nil {
		return nil, err
	}

	im.lineItems, err = NewHistogram(meter, HistogramOpts{
		Name:        "storefront_order_import_line_items",
		Description: "Line items per imported order",
		Unit:        "{items}",
		Boundaries:  []float64{1, 2, 5, 10, 25, 50, 100},
	})
	if err != nil {
		return nil, err
	}

	im.duration, err = NewHistogram(meter, HistogramOpts{
		Name:        "storefront_order_import_duration_seconds",
		Description: "Time spent building an order from an import payload",
		Unit:        "s",
		Boundaries:  []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
	})
	if err != nil {
		return nil, err
	}

	return im, nil
}

// RecordSuccess records a committed import
func (im *ImportMetrics) RecordSuccess(ctx context.Context, channel string, lineItems int, elapsed time.Duration) {
	attrs := []attribute.KeyValue{labelResult.String("success"), labelChannel.String(channel)}
	im.importsTotal.Inc(ctx, attrs...)
	im.lineItems.Observe(ctx, float64(lineItems), labelChannel.String(channel))
	im.duration.RecordDuration(ctx, elapsed, attrs...)
}

// RecordFailure records a failed import with its error kind
func (im *ImportMetrics) RecordFailure(ctx context.Context, kind string, elapsed time.Duration) {
	if kind == "" {
		kind = "INTERNAL"
	}
	im.importsTotal.Inc(ctx, labelResult.String("failure"))
	im.failuresTotal.Inc(ctx, labelErrorKind.String(kind))
	im.duration.RecordDuration(ctx, elapsed, labelResult.String("failure"))
}
