package controller

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"steam-cycle-viewer/internal/cycle"
	"steam-cycle-viewer/internal/observability"
	"steam-cycle-viewer/internal/view"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// ErrSuperseded is returned by a request that lost its view to a newer one.
var ErrSuperseded = errors.New("request superseded by a newer one")

var tracer = otel.Tracer("cycle")

// Calculator is the backend the controller sends inputs to.
type Calculator interface {
	Calculate(ctx context.Context, kind cycle.Kind, in cycle.Inputs) (cycle.Result, error)
}

// Controller turns raw inputs into backend requests and renders the replies
// into a View. Every GenerateDiagram call takes a new request token; only
// the holder of the latest token may write to the view, and starting a
// request cancels the one before it.
type Controller struct {
	backend Calculator
	view    view.View

	mu     sync.Mutex
	latest uint64
	cancel context.CancelFunc
}

// New returns a controller rendering into v.
func New(backend Calculator, v view.View) *Controller {
	return &Controller{backend: backend, view: v}
}

// GenerateTS requests the temperature-entropy diagram.
func (c *Controller) GenerateTS(ctx context.Context, raw cycle.RawInputs) error {
	return c.GenerateDiagram(ctx, cycle.KindTS, raw)
}

// GeneratePV requests the pressure-volume diagram.
func (c *Controller) GeneratePV(ctx context.Context, raw cycle.RawInputs) error {
	return c.GenerateDiagram(ctx, cycle.KindPV, raw)
}

// ValidateInputs reports whether all three fields are filled in. When one
// is missing it shows the error in the view, which supersedes any request
// still in flight.
func (c *Controller) ValidateInputs(raw cycle.RawInputs) bool {
	if len(raw.Missing()) == 0 {
		return true
	}

	_, token := c.begin(context.Background())
	defer c.finish(token)

	c.validate(token, raw)
	return false
}

// validate shows the missing-inputs error under token and returns the names
// of the empty fields.
func (c *Controller) validate(token uint64, raw cycle.RawInputs) []string {
	missing := raw.Missing()
	if len(missing) > 0 {
		c.apply(token, func(v view.View) { v.ShowError(view.MsgMissingInputs) })
	}
	return missing
}

// GenerateDiagram validates raw, sends it to the backend endpoint for kind
// and renders the reply. Whatever goes wrong after validation, the user sees
// view.MsgRequestFailed; the returned error carries the cause.
func (c *Controller) GenerateDiagram(ctx context.Context, kind cycle.Kind, raw cycle.RawInputs) error {
	ctx, token := c.begin(ctx)
	defer c.finish(token)

	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, fmt.Sprintf("cycle.generate.%s", kind),
		trace.WithAttributes(
			attribute.String("cycle.kind", string(kind)),
			attribute.String("request.id", requestID),
			attribute.Int64("cycle.token", int64(token)),
		),
	)
	defer span.End()

	// --- 1. Validate and parse ---
	if missing := c.validate(token, raw); len(missing) > 0 {
		span.SetStatus(codes.Error, "missing inputs")
		logger.Info("cycle inputs missing",
			zap.Strings("fields", missing),
			zap.String("request_id", requestID),
		)
		return fmt.Errorf("%w: %v", cycle.ErrMissingInput, missing)
	}

	inputs, err := raw.Parse()
	if err != nil {
		c.apply(token, func(v view.View) { v.ShowError(view.MsgInvalidInputs) })
		span.SetStatus(codes.Error, "invalid inputs")
		logger.Info("cycle inputs invalid",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		return err
	}

	span.SetAttributes(
		attribute.Float64("cycle.boiler_pressure", inputs.BoilerPressure),
		attribute.Float64("cycle.boiler_temp", inputs.BoilerTemp),
		attribute.Float64("cycle.condenser_pressure", inputs.CondenserPressure),
	)

	if !c.apply(token, func(v view.View) { v.ShowLoading() }) {
		return c.superseded(ctx, span, logger, kind, token)
	}

	// --- 2. Call the backend (timed for histogram) ---
	start := time.Now()
	result, err := c.backend.Calculate(ctx, kind, inputs)
	if err == nil {
		err = result.Validate()
	}
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0 // ms

	attrs := metric.WithAttributes(attribute.String("kind", string(kind)))
	requestCounter.Add(ctx, 1, attrs)
	requestHistogram.Record(ctx, elapsed, attrs)

	if err != nil {
		if !c.isLatest(token) {
			return c.superseded(ctx, span, logger, kind, token)
		}

		span.RecordError(err)
		span.SetStatus(codes.Error, "cycle request failed")
		errorCounter.Add(ctx, 1, attrs)
		logger.Error("cycle request failed",
			zap.String("kind", string(kind)),
			zap.Error(err),
			zap.String("request_id", requestID),
			zap.Float64("duration_ms", elapsed),
		)

		c.apply(token, func(v view.View) { v.ShowError(view.MsgRequestFailed) })
		return fmt.Errorf("generate %s diagram: %w", kind, err)
	}

	// --- 3. Render ---
	metrics, hasMetrics := result.Metrics()
	rendered := c.apply(token, func(v view.View) {
		if result.HasDiagram() {
			v.RenderDiagram(*result.Diagram)
		} else {
			v.RestoreDiagram()
		}
		if hasMetrics {
			v.RenderResults(metrics)
		}
	})
	if !rendered {
		return c.superseded(ctx, span, logger, kind, token)
	}

	if hasMetrics {
		efficiencyGauge.Record(ctx, metrics.Efficiency, attrs)
	}

	span.AddEvent("cycle.rendered", trace.WithAttributes(
		attribute.Bool("diagram", result.HasDiagram()),
		attribute.Bool("metrics", hasMetrics),
		attribute.Float64("duration_ms", elapsed),
	))
	span.SetStatus(codes.Ok, "")

	logger.Info("cycle rendered",
		zap.String("kind", string(kind)),
		zap.Bool("diagram", result.HasDiagram()),
		zap.Bool("metrics", hasMetrics),
		zap.String("request_id", requestID),
		zap.Float64("duration_ms", elapsed),
	)

	return nil
}

// begin issues a new token and cancels the request holding the previous one.
func (c *Controller) begin(parent context.Context) (context.Context, uint64) {
	ctx, cancel := context.WithCancel(parent)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancel != nil {
		c.cancel()
	}
	c.latest++
	c.cancel = cancel

	return ctx, c.latest
}

func (c *Controller) finish(token uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.latest == token && c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

func (c *Controller) isLatest(token uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.latest == token
}

// apply runs render against the view while token is still the latest.
// The lock is held across render so a newer request cannot interleave.
func (c *Controller) apply(token uint64, render func(view.View)) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.latest != token {
		return false
	}
	render(c.view)
	return true
}

func (c *Controller) superseded(ctx context.Context, span trace.Span, logger *zap.Logger, kind cycle.Kind, token uint64) error {
	supersededCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", string(kind))))
	span.AddEvent("cycle.superseded")
	logger.Info("cycle request superseded",
		zap.String("kind", string(kind)),
		zap.Uint64("token", token),
		zap.String("request_id", observability.RequestIDFromContext(ctx)),
	)
	return ErrSuperseded
}
