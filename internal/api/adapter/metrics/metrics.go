package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for backend calls.
const (
	OutcomeSuccess   = "success"
	OutcomeRejected  = "rejected"
	OutcomeTransport = "transport_error"
)

var (
	// Registry holds the client's Prometheus collectors.
	Registry = prometheus.NewRegistry()

	backendCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "defensa_civil",
			Subsystem: "backend",
			Name:      "calls_total",
			Help:      "Total number of calls made to the civil-defense backend.",
		},
		[]string{"operation", "method", "outcome"},
	)

	backendDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "defensa_civil",
			Subsystem: "backend",
			Name:      "call_duration_seconds",
			Help:      "Duration of calls to the civil-defense backend.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 10), // 10ms to ~5s
		},
		[]string{"operation"},
	)
)

func init() {
	Registry.MustRegister(
		backendCalls,
		backendDuration,
		collectors.NewGoCollector(),
	)
}

// Handler exposes the registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// RecordCall counts one backend call and observes its latency.
func RecordCall(operation, method, outcome string, duration time.Duration) {
	if operation == "" {
		operation = "unknown"
	}
	backendCalls.WithLabelValues(operation, method, outcome).Inc()
	backendDuration.WithLabelValues(operation).Observe(duration.Seconds())
}
