package endpoint

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsCollector provides Prometheus metrics for endpoint requests. One
// collector can be shared by many endpoints; every series carries an
// endpoint label. It is safe for concurrent use and all methods are no-ops on
// a nil collector.
type MetricsCollector struct {
	requestsTotal     *prometheus.CounterVec
	requestDuration   *prometheus.HistogramVec
	requestsInFlight  *prometheus.GaugeVec
	selectorCacheSize *prometheus.GaugeVec

	registry *prometheus.Registry
}

var (
	defaultMetricsOnce sync.Once
	defaultMetrics     *MetricsCollector
)

// DefaultMetricsCollector returns the process-wide collector registered on
// prometheus.DefaultRegisterer, creating it on first use.
func DefaultMetricsCollector() *MetricsCollector {
	defaultMetricsOnce.Do(func() {
		defaultMetrics = NewMetricsCollectorWithRegistry(prometheus.DefaultRegisterer)
	})
	return defaultMetrics
}

// NewMetricsCollectorWithRegistry creates a collector using supplied registerer.
func NewMetricsCollectorWithRegistry(registry prometheus.Registerer) *MetricsCollector {
	mc := &MetricsCollector{
		requestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "endpoint_requests_total",
				Help: "Total number of settled endpoint requests",
			},
			[]string{"endpoint", "outcome"},
		),
		requestDuration: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "endpoint_request_duration_seconds",
				Help:    "Duration of endpoint requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"endpoint", "outcome"},
		),
		requestsInFlight: promauto.With(registry).NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "endpoint_requests_in_flight",
				Help: "Number of endpoint requests currently in flight",
			},
			[]string{"endpoint"},
		),
		selectorCacheSize: promauto.With(registry).NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "endpoint_selector_cache_size",
				Help: "Number of memoized key selectors",
			},
			[]string{"endpoint"},
		),
	}
	if r, ok := registry.(*prometheus.Registry); ok {
		mc.registry = r
	}

	return mc
}

// RecordRequest records a settled request and its duration.
func (mc *MetricsCollector) RecordRequest(endpoint, outcome string, duration time.Duration) {
	if mc == nil {
		return
	}

	mc.requestsTotal.WithLabelValues(endpoint, outcome).Inc()
	mc.requestDuration.WithLabelValues(endpoint, outcome).Observe(duration.Seconds())
}

// RecordRequestStart increments in-flight gauge.
func (mc *MetricsCollector) RecordRequestStart(endpoint string) {
	if mc == nil {
		return
	}

	mc.requestsInFlight.WithLabelValues(endpoint).Inc()
}

// RecordRequestEnd decrements in-flight gauge.
func (mc *MetricsCollector) RecordRequestEnd(endpoint string) {
	if mc == nil {
		return
	}

	mc.requestsInFlight.WithLabelValues(endpoint).Dec()
}

// RecordSelectorCacheSize sets the memoized selector count.
func (mc *MetricsCollector) RecordSelectorCacheSize(endpoint string, size int) {
	if mc == nil {
		return
	}

	mc.selectorCacheSize.WithLabelValues(endpoint).Set(float64(size))
}

// GetRegistry exposes the underlying prometheus registry, or nil when the
// collector was built on a Registerer that is not a *prometheus.Registry.
func (mc *MetricsCollector) GetRegistry() *prometheus.Registry {
	if mc == nil {
		return nil
	}
	return mc.registry
}
