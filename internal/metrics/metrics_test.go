package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCountersIncrement(t *testing.T) {
	before := testutil.ToFloat64(SendAttempts.WithLabelValues(ResultFailure))
	SendAttempts.WithLabelValues(ResultFailure).Inc()
	if v := testutil.ToFloat64(SendAttempts.WithLabelValues(ResultFailure)); v != before+1 {
		t.Fatalf("expected SendAttempts to grow by 1, got %v -> %v", before, v)
	}

	before = testutil.ToFloat64(Dispatches.WithLabelValues(OutcomeSent))
	Dispatches.WithLabelValues(OutcomeSent).Inc()
	if v := testutil.ToFloat64(Dispatches.WithLabelValues(OutcomeSent)); v != before+1 {
		t.Fatalf("expected Dispatches to grow by 1, got %v -> %v", before, v)
	}
}

func TestMetricsHandler(t *testing.T) {
	HTTPRateLimited.Inc()

	rec := httptest.NewRecorder()
	MetricsHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), "notifymail_http_rate_limited_total") {
		t.Fatalf("metrics output misses notifymail_http_rate_limited_total")
	}
}
