package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	IdentityRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "identity_requests_total",
			Help: "Total number of identity service requests",
		},
		[]string{"method", "path"},
	)

	IdentityRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "identity_requests_in_flight",
			Help: "Number of identity service requests currently being processed",
		},
	)

	IdentityRequestDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "identity_request_duration_seconds",
			Help:    "Duration of identity service requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)
