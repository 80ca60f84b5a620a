package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ClientMetrics records request counts and latencies for API calls. It
// satisfies timing.MetricsRecorder.
type ClientMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewClientMetrics registers the client metrics on the provided registerer.
// A nil registerer yields a recorder that discards observations.
func NewClientMetrics(reg prometheus.Registerer) *ClientMetrics {
	if reg == nil {
		return &ClientMetrics{}
	}
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "timekeeper",
		Subsystem: "client",
		Name:      "requests_total",
		Help:      "API requests by operation, method and status.",
	}, []string{"operation", "method", "status"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "timekeeper",
		Subsystem: "client",
		Name:      "request_duration_seconds",
		Help:      "Duration of API requests in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation", "method"})
	reg.MustRegister(requests, duration)
	return &ClientMetrics{
		requests: requests,
		duration: duration,
	}
}

// Observe records one finished call. A status of 0 means no response was
// received.
func (m *ClientMetrics) Observe(operation, method string, status int, d time.Duration) {
	if m == nil || m.requests == nil || m.duration == nil {
		return
	}
	operation = normalizeLabel(operation)
	method = normalizeLabel(method)
	m.requests.WithLabelValues(operation, method, statusLabel(status)).Inc()
	m.duration.WithLabelValues(operation, method).Observe(d.Seconds())
}

func statusLabel(status int) string {
	if status <= 0 {
		return "error"
	}
	return strconv.Itoa(status)
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
