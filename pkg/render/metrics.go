package render

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var meter = otel.Meter("roadview.render")

var (
	frameLatency    metric.Float64Histogram
	edgesDrawn      metric.Int64Counter
	calloutsDropped metric.Int64Counter

	metricsOnce sync.Once
	metricsErr  error
)

// initMetrics initializes the metrics. Safe to call multiple times.
func initMetrics() error {
	metricsOnce.Do(func() {
		var err error

		frameLatency, err = meter.Float64Histogram(
			"render_frame_duration_seconds",
			metric.WithDescription("Duration of one paint"),
			metric.WithUnit("s"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		edgesDrawn, err = meter.Int64Counter(
			"render_edges_drawn_total",
			metric.WithDescription("Total number of edges stroked"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		calloutsDropped, err = meter.Int64Counter(
			"render_callouts_dropped_total",
			metric.WithDescription("Callouts skipped for lack of space"),
		)
		if err != nil {
			metricsErr = err
			return
		}
	})
	return metricsErr
}

// recordFrame records metrics for one paint.
func recordFrame(ctx context.Context, s Stats) {
	if err := initMetrics(); err != nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("band", s.Band.String()))
	frameLatency.Record(ctx, s.Duration.Seconds(), attrs)
	edgesDrawn.Add(ctx, int64(s.Edges), attrs)
}

func recordCalloutDropped(ctx context.Context) {
	if err := initMetrics(); err != nil {
		return
	}
	calloutsDropped.Add(ctx, 1)
}
