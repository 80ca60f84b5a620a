package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/timekeeper/timing"
)

var _ timing.MetricsRecorder = (*ClientMetrics)(nil)

func TestClientMetricsCountsByStatus(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewClientMetrics(reg)

	m.Observe("projects.get", "GET", 200, 120*time.Millisecond)
	m.Observe("projects.get", "GET", 200, 80*time.Millisecond)
	m.Observe("projects.get", "GET", 404, 10*time.Millisecond)
	m.Observe("time_entries.stop", "PUT", 0, time.Second)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("projects.get", "GET", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("projects.get", "GET", "404")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("time_entries.stop", "PUT", "error")))
	assert.Equal(t, 3, testutil.CollectAndCount(m.requests))

	mfs, err := reg.Gather()
	require.NoError(t, err)

	hist := findMetric(mfs, "timekeeper_client_request_duration_seconds", "operation", "projects.get")
	require.NotNil(t, hist)
	assert.Equal(t, uint64(3), hist.GetHistogram().GetSampleCount())
	assert.InDelta(t, 0.21, hist.GetHistogram().GetSampleSum(), 1e-9)
}

func TestClientMetricsEmptyLabels(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewClientMetrics(reg)

	m.Observe("", "", 500, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("unknown", "unknown", "500")))
}

func TestClientMetricsNilSafe(t *testing.T) {
	assert.NotPanics(t, func() {
		NewClientMetrics(nil).Observe("projects.list", "GET", 200, time.Millisecond)
	})
	assert.NotPanics(t, func() {
		var m *ClientMetrics
		m.Observe("projects.list", "GET", 200, time.Millisecond)
	})
}

func findMetric(mfs []*dto.MetricFamily, name, label, value string) *dto.Metric {
	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
		for _, metric := range mf.GetMetric() {
			for _, lp := range metric.GetLabel() {
				if lp.GetName() == label && lp.GetValue() == value {
					return metric
				}
			}
		}
	}
	return nil
}
