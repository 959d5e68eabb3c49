package observability

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsNilIsNoop(t *testing.T) {
	var m *Metrics
	m.ObserveAPI("GET", "/health", 200, time.Millisecond)
	m.ApiInflightInc()
	m.ApiInflightDec()
	m.IncFeedback("ok")
	m.IncPlan("ok")
	m.AddPlanNodes("sujet", 3)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("nil metrics handler status=%d", rec.Code)
	}
}

func TestMetricsCountIngestResults(t *testing.T) {
	m := NewMetrics()
	m.IncPlan("ok")
	m.IncPlan("ok")
	m.IncPlan("conflict")
	m.AddPlanNodes("action", 4)
	m.AddPlanNodes("action", 0)
	m.IncFeedback("invalid")

	if got := testutil.ToFloat64(m.planIngest.WithLabelValues("ok")); got != 2 {
		t.Fatalf("ingest_plan_total{ok}=%v", got)
	}
	if got := testutil.ToFloat64(m.planIngest.WithLabelValues("conflict")); got != 1 {
		t.Fatalf("ingest_plan_total{conflict}=%v", got)
	}
	if got := testutil.ToFloat64(m.planNodes.WithLabelValues("action")); got != 4 {
		t.Fatalf("ingest_plan_nodes_total{action}=%v", got)
	}
	if got := testutil.ToFloat64(m.feedbackIngest.WithLabelValues("invalid")); got != 1 {
		t.Fatalf("ingest_feedback_total{invalid}=%v", got)
	}
}

func TestMetricsHandlerExposesAPIMetrics(t *testing.T) {
	m := NewMetrics()
	m.ObserveAPI("POST", "/api/plans", 409, 20*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d", rec.Code)
	}
	body := rec.Body.String()
	want := `planbridge_http_requests_total{method="POST",route="/api/plans",status="409"} 1`
	if !strings.Contains(body, want) {
		t.Fatalf("missing %q in exposition:\n%s", want, body)
	}
}
