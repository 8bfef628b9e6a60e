package cycleweb

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"steam-cycle-viewer/internal/controller"
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

var tracer = otel.Tracer("cycleweb")

// Generator runs one diagram request against the panel.
type Generator interface {
	GenerateDiagram(ctx context.Context, kind cycle.Kind, raw cycle.RawInputs) error
}

// Handler serves the input form and the panel it renders into. The panel is
// shared by every browser talking to this process.
type Handler struct {
	gen   Generator
	panel *view.Panel

	mu     sync.RWMutex
	inputs cycle.RawInputs // last submitted, echoed back into the form
}

// NewHandler returns a handler driving gen and rendering panel.
func NewHandler(gen Generator, panel *view.Panel) *Handler {
	return &Handler{gen: gen, panel: panel}
}

// Index handles GET /
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "cycleweb.index")
	defer span.End()

	h.writePage(ctx, span, w, http.StatusOK)
}

// GenerateTS handles POST /cycle/generate-ts
func (h *Handler) GenerateTS(w http.ResponseWriter, r *http.Request) {
	h.generate(w, r, cycle.KindTS)
}

// GeneratePV handles POST /cycle/generate-pv
func (h *Handler) GeneratePV(w http.ResponseWriter, r *http.Request) {
	h.generate(w, r, cycle.KindPV)
}

// Regions handles GET /cycle/regions — the two output regions without the
// surrounding page.
func (h *Handler) Regions(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "cycleweb.regions")
	defer span.End()

	var buf bytes.Buffer
	if err := view.RenderRegions(&buf, h.panel.Snapshot()); err != nil {
		observability.RecordError(ctx, span, observability.LoggerWithTrace(ctx), errorCounter, "regions", "failed to render regions", err, http.StatusInternalServerError, w)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// generate runs the controller for kind and answers with the updated page.
// The status reflects the outcome: 422 for input errors, 502 when the
// backend call failed, 200 otherwise.
func (h *Handler) generate(w http.ResponseWriter, r *http.Request, kind cycle.Kind) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	opName := fmt.Sprintf("generate.%s", kind)

	ctx, span := tracer.Start(ctx, "cycleweb."+opName,
		trace.WithAttributes(
			attribute.String("cycle.kind", string(kind)),
			attribute.String("request.id", observability.RequestIDFromContext(ctx)),
		),
	)
	defer span.End()

	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, opName, "invalid form body", err, http.StatusBadRequest, w)
		return
	}

	raw := rawInputsFromForm(r.PostForm)
	h.mu.Lock()
	h.inputs = raw
	h.mu.Unlock()

	submitCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", string(kind))))

	status := http.StatusOK
	err := h.gen.GenerateDiagram(ctx, kind, raw)
	switch {
	case err == nil, errors.Is(err, controller.ErrSuperseded):
	case errors.Is(err, cycle.ErrMissingInput), errors.Is(err, cycle.ErrInvalidNumber):
		status = http.StatusUnprocessableEntity
	default:
		status = http.StatusBadGateway
	}
	if err != nil {
		span.SetAttributes(attribute.String("cycle.outcome", err.Error()))
	}

	logger.Debug("cycle form handled",
		zap.String("kind", string(kind)),
		zap.Int("status", status),
		zap.String("request_id", observability.RequestIDFromContext(ctx)),
	)

	h.writePage(ctx, span, w, status)
}

func (h *Handler) writePage(ctx context.Context, span trace.Span, w http.ResponseWriter, status int) {
	h.mu.RLock()
	data := view.PageData{
		Inputs:  h.inputs,
		Kinds:   cycle.Kinds,
		Regions: h.panel.Snapshot(),
	}
	h.mu.RUnlock()

	var buf bytes.Buffer
	if err := view.RenderPage(&buf, data); err != nil {
		observability.RecordError(ctx, span, observability.LoggerWithTrace(ctx), errorCounter, "page", "failed to render page", err, http.StatusInternalServerError, w)
		return
	}

	if status == http.StatusOK {
		span.SetStatus(codes.Ok, "")
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}
