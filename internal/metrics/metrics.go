package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Outbound calls to the exchange API.
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "p2pdesk_api_requests_total",
			Help: "Total number of exchange API requests (by endpoint, method and status).",
		},
		[]string{"endpoint", "method", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "p2pdesk_api_request_duration_seconds",
			Help:    "Duration of exchange API requests in seconds.",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 15), // 1ms → ~16s
		},
		[]string{"endpoint", "method"},
	)

	// Exchange form submissions by outcome.
	ExchangeSubmissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "p2pdesk_exchange_submissions_total",
			Help: "Exchange submissions by result.",
		},
		[]string{"result"}, // ok | invalid | zero | throttled | error
	)

	// Requests served by the sandbox API.
	SandboxRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "p2pdesk_sandbox_requests_total",
			Help: "Requests served by the sandbox API (by route and status).",
		},
		[]string{"route", "status"},
	)
)

// ObserveDuration records the time since start on a histogram vec.
func ObserveDuration(h *prometheus.HistogramVec, start time.Time, labels ...string) {
	h.WithLabelValues(labels...).Observe(time.Since(start).Seconds())
}
