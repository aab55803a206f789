package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounterIncrement(t *testing.T) {
	r := NewRegistry()

	r.IncrementCounter("requests_total", nil, "total requests")
	r.IncrementCounter("requests_total", nil, "total requests")
	r.AddToCounter("requests_total", 3, nil, "total requests")

	all := r.GetAllMetrics()
	counters := all["counters"].(map[string]*Metric)
	require.Contains(t, counters, "requests_total")
	assert.Equal(t, float64(5), counters["requests_total"].Value)
	assert.Equal(t, Counter, counters["requests_total"].Type)
}

func TestCounterLabelsProduceSeparateSeries(t *testing.T) {
	r := NewRegistry()

	r.IncrementCounter("http_requests_total", map[string]string{"method": "GET"}, "")
	r.IncrementCounter("http_requests_total", map[string]string{"method": "POST"}, "")
	r.IncrementCounter("http_requests_total", map[string]string{"method": "GET"}, "")

	counters := r.GetAllMetrics()["counters"].(map[string]*Metric)
	assert.Equal(t, float64(2), counters["http_requests_total_method:GET"].Value)
	assert.Equal(t, float64(1), counters["http_requests_total_method:POST"].Value)
}

func TestMetricKeyOrdersLabels(t *testing.T) {
	a := metricKey("m", map[string]string{"a": "1", "b": "2"})
	b := metricKey("m", map[string]string{"b": "2", "a": "1"})
	assert.Equal(t, a, b)
}

func TestTimerStatistics(t *testing.T) {
	r := NewRegistry()

	for _, ms := range []int{10, 20, 30, 40, 50} {
		r.RecordTimer("op_duration", time.Duration(ms)*time.Millisecond, nil, "")
	}

	timers := r.GetAllMetrics()["timers"].(map[string]*TimerMetric)
	timer := timers["op_duration"]
	require.NotNil(t, timer)

	assert.Equal(t, int64(5), timer.Count)
	assert.InDelta(t, 150, timer.Sum, 0.01)
	assert.InDelta(t, 10, timer.Min, 0.01)
	assert.InDelta(t, 50, timer.Max, 0.01)
	assert.InDelta(t, 30, timer.Average, 0.01)
}

func TestTimerPercentileNeedsEnoughSamples(t *testing.T) {
	r := NewRegistry()

	for i := 1; i <= 9; i++ {
		r.RecordTimer("op", time.Duration(i)*time.Millisecond, nil, "")
	}
	timers := r.GetAllMetrics()["timers"].(map[string]*TimerMetric)
	assert.Zero(t, timers["op"].P95)

	r.RecordTimer("op", 10*time.Millisecond, nil, "")
	timers = r.GetAllMetrics()["timers"].(map[string]*TimerMetric)
	assert.Greater(t, timers["op"].P95, float64(0))
}

func TestGauge(t *testing.T) {
	r := NewRegistry()

	r.SetGauge("queue_depth", 7, nil, "pending items")
	r.SetGauge("queue_depth", 3, nil, "pending items")

	gauges := r.GetAllMetrics()["gauges"].(map[string]*Metric)
	assert.Equal(t, float64(3), gauges["queue_depth"].Value)
	assert.Equal(t, Gauge, gauges["queue_depth"].Type)
}

func TestGetAllMetricsIncludesUptime(t *testing.T) {
	r := NewRegistry()

	all := r.GetAllMetrics()
	assert.Contains(t, all, "uptime_ms")
	assert.Contains(t, all, "timestamp")
}

func TestConcurrentAccess(t *testing.T) {
	r := NewRegistry()

	done := make(chan struct{})
	for i := 0; i < 10; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 100; j++ {
				r.IncrementCounter("concurrent_total", nil, "")
				r.RecordTimer("concurrent_duration", time.Millisecond, nil, "")
				r.GetAllMetrics()
			}
		}()
	}
	for i := 0; i < 10; i++ {
		<-done
	}

	counters := r.GetAllMetrics()["counters"].(map[string]*Metric)
	assert.Equal(t, float64(1000), counters["concurrent_total"].Value)
}
