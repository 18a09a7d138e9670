package visible

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var meter = otel.Meter("roadview.visible")

var (
	cullTotal      metric.Int64Counter
	cullKept       metric.Int64Histogram
	decimateRounds metric.Int64Counter

	metricsOnce sync.Once
	metricsErr  error
)

// initMetrics initializes the metrics. Safe to call multiple times.
func initMetrics() error {
	metricsOnce.Do(func() {
		var err error

		cullTotal, err = meter.Int64Counter(
			"visible_cull_total",
			metric.WithDescription("Total number of culling passes"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		cullKept, err = meter.Int64Histogram(
			"visible_cull_kept_edges",
			metric.WithDescription("Edges kept per culling pass"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		decimateRounds, err = meter.Int64Counter(
			"visible_decimation_rounds_total",
			metric.WithDescription("Road type tiers discarded by decimation"),
		)
		if err != nil {
			metricsErr = err
			return
		}
	})
	return metricsErr
}

func recordCull(ctx context.Context, s Stats) {
	if err := initMetrics(); err != nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.Bool("coarse", s.Coarse),
		attribute.Bool("truncated", s.Truncated),
	)
	cullTotal.Add(ctx, 1, attrs)
	cullKept.Record(ctx, int64(s.Kept), attrs)
	if s.Rounds > 0 {
		decimateRounds.Add(ctx, int64(s.Rounds))
	}
}
