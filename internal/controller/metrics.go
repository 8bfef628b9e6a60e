package controller

import (
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// Metric instruments — initialized once via InitMetrics().
var (
	requestCounter    metric.Int64Counter
	requestHistogram  metric.Float64Histogram
	errorCounter      metric.Int64Counter
	supersededCounter metric.Int64Counter
	efficiencyGauge   metric.Float64Gauge
)

// InitMetrics registers the cycle request instruments on the global meter
// provider. Call this once at startup (after observability.InitMetrics).
func InitMetrics() error {
	meter := otel.Meter("cycle")

	var err error

	requestCounter, err = meter.Int64Counter("cycle.requests.total",
		metric.WithDescription("Total number of cycle requests sent to the backend"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return fmt.Errorf("creating request counter: %w", err)
	}

	requestHistogram, err = meter.Float64Histogram("cycle.request.duration",
		metric.WithDescription("Duration of cycle requests in milliseconds"),
		metric.WithUnit("ms"),
		metric.WithExplicitBucketBoundaries(10, 50, 100, 250, 500, 1000, 2500, 5000, 10000),
	)
	if err != nil {
		return fmt.Errorf("creating request histogram: %w", err)
	}

	errorCounter, err = meter.Int64Counter("cycle.errors.total",
		metric.WithDescription("Total number of failed cycle requests"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return fmt.Errorf("creating error counter: %w", err)
	}

	supersededCounter, err = meter.Int64Counter("cycle.superseded.total",
		metric.WithDescription("Total number of cycle requests dropped because a newer one started"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return fmt.Errorf("creating superseded counter: %w", err)
	}

	efficiencyGauge, err = meter.Float64Gauge("cycle.last_efficiency",
		metric.WithDescription("Thermal efficiency of the last rendered cycle"),
		metric.WithUnit("%"),
	)
	if err != nil {
		return fmt.Errorf("creating efficiency gauge: %w", err)
	}

	return nil
}
