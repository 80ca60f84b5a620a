// Package metrics exports Prometheus instrumentation for the timing client.
//
//	reg := prometheus.NewRegistry()
//	client, err := timing.NewClient(token, timing.WithMetrics(metrics.NewClientMetrics(reg)))
package metrics
