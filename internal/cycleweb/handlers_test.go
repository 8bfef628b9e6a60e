package cycleweb

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"steam-cycle-viewer/internal/backend"
	"steam-cycle-viewer/internal/controller"
	"steam-cycle-viewer/internal/testutil"
	"steam-cycle-viewer/internal/view"

	"github.com/go-chi/chi/v5"
)

func TestMain(m *testing.M) {
	if err := controller.InitMetrics(); err != nil {
		panic(err)
	}
	if err := InitMetrics(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

var pngData = base64.StdEncoding.EncodeToString([]byte("\x89PNG\r\n\x1a\nbody"))

func validForm() url.Values {
	return url.Values{
		FieldBoilerPressure:    {"15"},
		FieldBoilerTemp:        {"500"},
		FieldCondenserPressure: {"0.1"},
	}
}

// newRouter wires the handler to a real controller and a stub backend.
func newRouter(t *testing.T, stub http.HandlerFunc) (http.Handler, *view.Panel) {
	t.Helper()

	srv := testutil.NewBackend(t, stub)
	panel := view.NewPanel()
	h := NewHandler(controller.New(backend.New(srv.URL), panel), panel)

	r := chi.NewRouter()
	RegisterRoutes(r, h)
	return r, panel
}

func TestIndexRendersEmptyForm(t *testing.T) {
	router, _ := newRouter(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("backend must not be called")
	})

	w := testutil.ExecuteRequest(httptest.NewRequest(http.MethodGet, "/", nil), router)

	testutil.CheckResponseCode(t, http.StatusOK, w.Code)
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("expected HTML, got %q", ct)
	}
	for _, id := range []string{FieldBoilerPressure, FieldBoilerTemp, FieldCondenserPressure, "diagramContainer", "results"} {
		if !strings.Contains(w.Body.String(), `id="`+id+`"`) {
			t.Fatalf("expected element %q on page", id)
		}
	}
}

func TestGenerateTSRendersBackendResult(t *testing.T) {
	var gotPath string
	var gotBody map[string]float64

	router, panel := newRouter(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		testutil.WriteJSON(w, http.StatusOK, map[string]any{
			"diagram":      pngData,
			"efficiency":   35.4567,
			"turbine_work": 800.1,
			"pump_work":    10.2,
			"heat_added":   2200.456,
		})
	})

	w := testutil.ExecuteRequest(testutil.NewFormRequest("/cycle/generate-ts", validForm()), router)

	testutil.CheckResponseCode(t, http.StatusOK, w.Code)
	if gotPath != "/generate-ts" {
		t.Fatalf("expected backend path %q, got %q", "/generate-ts", gotPath)
	}
	want := map[string]float64{"boiler_pressure": 15, "boiler_temp": 500, "condenser_pressure": 0.1}
	for k, v := range want {
		if gotBody[k] != v {
			t.Fatalf("backend body %s: expected %v, got %v", k, v, gotBody[k])
		}
	}

	body := w.Body.String()
	for _, s := range []string{"data:image/png;base64," + pngData, "35.46 %", "2200.46 kJ/kg", `value="0.1"`} {
		if !strings.Contains(body, s) {
			t.Fatalf("expected page to contain %q", s)
		}
	}
	if got := panel.Snapshot().Phase; got != view.PhaseResults {
		t.Fatalf("expected phase %q, got %q", view.PhaseResults, got)
	}
}

func TestGeneratePVUsesPVEndpoint(t *testing.T) {
	var gotPath string
	router, _ := newRouter(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		testutil.WriteJSON(w, http.StatusOK, map[string]any{"diagram": pngData})
	})

	w := testutil.ExecuteRequest(testutil.NewFormRequest("/cycle/generate-pv", validForm()), router)

	testutil.CheckResponseCode(t, http.StatusOK, w.Code)
	if gotPath != "/generate-pv" {
		t.Fatalf("expected backend path %q, got %q", "/generate-pv", gotPath)
	}
}

func TestGenerateMissingFieldIsUnprocessable(t *testing.T) {
	calls := 0
	router, _ := newRouter(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
	})

	form := validForm()
	form.Del(FieldBoilerTemp)
	w := testutil.ExecuteRequest(testutil.NewFormRequest("/cycle/generate-ts", form), router)

	testutil.CheckResponseCode(t, http.StatusUnprocessableEntity, w.Code)
	if calls != 0 {
		t.Fatalf("expected no backend calls, got %d", calls)
	}
	if !strings.Contains(w.Body.String(), view.MsgMissingInputs) {
		t.Fatal("expected missing-inputs message on page")
	}
}

func TestGenerateBackendFailureIsBadGateway(t *testing.T) {
	router, panel := newRouter(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "CoolProp failed", http.StatusInternalServerError)
	})

	w := testutil.ExecuteRequest(testutil.NewFormRequest("/cycle/generate-ts", validForm()), router)

	testutil.CheckResponseCode(t, http.StatusBadGateway, w.Code)
	body := w.Body.String()
	if !strings.Contains(body, view.MsgRequestFailed) {
		t.Fatal("expected generic failure message on page")
	}
	if strings.Contains(body, "CoolProp failed") {
		t.Fatal("backend error detail must not reach the page")
	}
	if got := panel.Snapshot().Results; got != "" {
		t.Fatalf("expected empty results, got %q", got)
	}
}

func TestRegionsReturnsFragment(t *testing.T) {
	router, panel := newRouter(t, func(w http.ResponseWriter, r *http.Request) {})
	panel.ShowLoading()

	w := testutil.ExecuteRequest(httptest.NewRequest(http.MethodGet, "/cycle/regions", nil), router)

	testutil.CheckResponseCode(t, http.StatusOK, w.Code)
	body := w.Body.String()
	if strings.Contains(body, "<html") {
		t.Fatal("expected a fragment, got a full page")
	}
	if !strings.Contains(body, "Calculating... Please wait.") {
		t.Fatalf("expected loading message, got %q", body)
	}
}
