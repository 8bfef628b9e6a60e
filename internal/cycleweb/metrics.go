package cycleweb

import (
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

var (
	submitCounter metric.Int64Counter
	errorCounter  metric.Int64Counter
)

// InitMetrics registers the form submission instruments. Call this once at
// startup (after observability.InitMetrics).
func InitMetrics() error {
	meter := otel.Meter("cycleweb")

	var err error

	submitCounter, err = meter.Int64Counter("cycleweb.submissions.total",
		metric.WithDescription("Total number of input form submissions"),
		metric.WithUnit("{submission}"),
	)
	if err != nil {
		return fmt.Errorf("creating submission counter: %w", err)
	}

	errorCounter, err = meter.Int64Counter("cycleweb.errors.total",
		metric.WithDescription("Total number of form submissions the front-end could not serve"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return fmt.Errorf("creating error counter: %w", err)
	}

	return nil
}
