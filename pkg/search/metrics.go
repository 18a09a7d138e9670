package search

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var meter = otel.Meter("roadview.search")

var (
	resolutions metric.Int64Counter

	metricsOnce sync.Once
	metricsErr  error
)

// initMetrics initializes the metrics. Safe to call multiple times.
func initMetrics() error {
	metricsOnce.Do(func() {
		resolutions, metricsErr = meter.Int64Counter(
			"search_resolutions_total",
			metric.WithDescription("Queries resolved, by the matcher that accepted them"),
		)
	})
	return metricsErr
}

func recordResolution(ctx context.Context, matcher string) {
	if err := initMetrics(); err != nil {
		return
	}
	resolutions.Add(ctx, 1, metric.WithAttributes(attribute.String("matcher", matcher)))
}
