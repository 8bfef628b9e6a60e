package observability

import (
	"context"
	"testing"

	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

func TestServiceName(t *testing.T) {
	t.Run("default", func(t *testing.T) {
		t.Setenv("OTEL_SERVICE_NAME", "")
		if got := ServiceName(); got != "steam-cycle-viewer" {
			t.Fatalf("expected %q, got %q", "steam-cycle-viewer", got)
		}
	})

	t.Run("from env", func(t *testing.T) {
		t.Setenv("OTEL_SERVICE_NAME", "cycle-frontend")
		if got := ServiceName(); got != "cycle-frontend" {
			t.Fatalf("expected %q, got %q", "cycle-frontend", got)
		}
	})
}

func TestNewResourceCarriesServiceName(t *testing.T) {
	t.Setenv("OTEL_SERVICE_NAME", "cycle-frontend")

	res, err := newResource(context.Background())
	if err != nil {
		t.Fatalf("building resource: %v", err)
	}

	got, ok := res.Set().Value(semconv.ServiceNameKey)
	if !ok || got.AsString() != "cycle-frontend" {
		t.Fatalf("expected service.name %q, got %q", "cycle-frontend", got.AsString())
	}
}
