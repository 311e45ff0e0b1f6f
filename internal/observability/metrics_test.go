package observability

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsRecordsDomainSeries(t *testing.T) {
	m := New()
	m.ObserveAnalysis("rules", "low")
	m.ObserveAnalysis("rules", "low")
	m.ObserveBackend("openai", 30*time.Millisecond, nil)
	m.ObserveBackend("openai", time.Second, context.DeadlineExceeded)
	m.ObserveBackend("openai", time.Second, errors.New("boom"))
	m.ObserveActivity("journal_entry", 50)
	m.ObserveActivity("journal_entry", 0)
	m.IncProgressConflict()
	m.ObserveQuizAnswer(true)

	if got := testutil.ToFloat64(m.analyses.WithLabelValues("rules", "low")); got != 2 {
		t.Fatalf("analyses: %v", got)
	}
	for status, want := range map[string]float64{"ok": 1, "timeout": 1, "error": 1} {
		if got := testutil.ToFloat64(m.backendRequests.WithLabelValues("openai", status)); got != want {
			t.Fatalf("backend %s: %v", status, got)
		}
	}
	if got := testutil.ToFloat64(m.xpAwarded.WithLabelValues("journal_entry")); got != 50 {
		t.Fatalf("xp: %v", got)
	}
	if got := testutil.ToFloat64(m.activities.WithLabelValues("journal_entry")); got != 2 {
		t.Fatalf("activities: %v", got)
	}
	if got := testutil.ToFloat64(m.progressConflicts); got != 1 {
		t.Fatalf("conflicts: %v", got)
	}
}

func TestMetricsHandlerExposesSeries(t *testing.T) {
	m := New()
	m.ObserveAPI("GET", "/api/progress", "200", 10*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status: %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `emolit_api_requests_total{method="GET",route="/api/progress",status="200"} 1`) {
		t.Fatalf("missing api series:\n%s", rec.Body.String())
	}
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.ObserveAPI("GET", "/", "200", time.Millisecond)
	m.ObserveAnalysis("rules", "low")
	m.ApiInflightInc()
	m.ApiInflightDec()
	m.IncProgressConflict()
	if err := m.RegisterDBStats(nil, "x"); err != nil {
		t.Fatalf("RegisterDBStats: %v", err)
	}
}
