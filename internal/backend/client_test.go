package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"steam-cycle-viewer/internal/cycle"
	"steam-cycle-viewer/internal/observability"
)

func TestCalculatePostsInputsToKindEndpoint(t *testing.T) {
	var (
		gotPath   string
		gotMethod string
		gotType   string
		gotID     string
		gotBody   map[string]any
	)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		gotType = r.Header.Get("Content-Type")
		gotID = r.Header.Get("X-Request-ID")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decoding request body: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"efficiency":35.4567,"turbine_work":800.1,"pump_work":10.2,"heat_added":2200.456}`))
	}))
	defer srv.Close()

	ctx := observability.ContextWithRequestID(context.Background(), "req-42")
	in := cycle.Inputs{BoilerPressure: 15, BoilerTemp: 500, CondenserPressure: 0.1}

	result, err := New(srv.URL+"/").Calculate(ctx, cycle.KindTS, in)
	if err != nil {
		t.Fatalf("calculate: %v", err)
	}

	if gotMethod != http.MethodPost {
		t.Fatalf("expected method %q, got %q", http.MethodPost, gotMethod)
	}
	if gotPath != "/generate-ts" {
		t.Fatalf("expected path %q, got %q", "/generate-ts", gotPath)
	}
	if gotType != "application/json" {
		t.Fatalf("expected Content-Type application/json, got %q", gotType)
	}
	if gotID != "req-42" {
		t.Fatalf("expected X-Request-ID %q, got %q", "req-42", gotID)
	}

	want := map[string]float64{"boiler_pressure": 15, "boiler_temp": 500, "condenser_pressure": 0.1}
	if len(gotBody) != len(want) {
		t.Fatalf("expected %d body fields, got %#v", len(want), gotBody)
	}
	for k, v := range want {
		if gotBody[k] != v {
			t.Fatalf("body field %s: expected %v, got %#v", k, v, gotBody[k])
		}
	}

	if result.Efficiency == nil || *result.Efficiency != 35.4567 {
		t.Fatalf("expected efficiency 35.4567, got %#v", result.Efficiency)
	}
	if result.Diagram != nil {
		t.Fatalf("did not expect a diagram, got %q", *result.Diagram)
	}
}

func TestCalculateUsesPVEndpoint(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	if _, err := New(srv.URL).Calculate(context.Background(), cycle.KindPV, cycle.Inputs{}); err != nil {
		t.Fatalf("calculate: %v", err)
	}
	if gotPath != "/generate-pv" {
		t.Fatalf("expected path %q, got %q", "/generate-pv", gotPath)
	}
}

func TestCalculateNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := New(srv.URL).Calculate(context.Background(), cycle.KindTS, cycle.Inputs{})

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected *StatusError, got %v", err)
	}
	if statusErr.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, statusErr.StatusCode)
	}
}

func TestCalculateMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"efficiency":`))
	}))
	defer srv.Close()

	if _, err := New(srv.URL).Calculate(context.Background(), cycle.KindTS, cycle.Inputs{}); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestCalculateRejectsUnknownKind(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	if _, err := New(srv.URL).Calculate(context.Background(), cycle.Kind("hs"), cycle.Inputs{}); err == nil {
		t.Fatal("expected error for unknown kind")
	}
	if calls != 0 {
		t.Fatalf("expected no backend calls, got %d", calls)
	}
}

func TestCalculateCancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(srv.URL).Calculate(ctx, cycle.KindTS, cycle.Inputs{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
