// Package metrics exposes Prometheus counters for notification dispatch.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Dispatch outcomes.
const (
	OutcomeSent                 = "sent"
	OutcomeInvalidRecipient     = "invalid_recipient"
	OutcomeInvalidConfiguration = "invalid_configuration"
	OutcomeTransportError       = "transport_error"
	OutcomeCanceled             = "canceled"
)

// Attempt results.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

var (
	SendAttempts = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "notifymail_send_attempts_total",
		Help: "Total number of transport attempts by result",
	}, []string{"result"})
	Dispatches = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "notifymail_dispatch_total",
		Help: "Total number of dispatch calls by outcome",
	}, []string{"outcome"})
	HTTPRateLimited = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "notifymail_http_rate_limited_total",
		Help: "Total number of HTTP requests rejected by the rate limiter",
	})
)

func init() {
	prometheus.MustRegister(SendAttempts)
	prometheus.MustRegister(Dispatches)
	prometheus.MustRegister(HTTPRateLimited)
}

// MetricsHandler returns an http.Handler exposing Prometheus metrics.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
