// Package prometheus exposes the service's metrics: HTTP traffic, map-data
// assembly, boundary resolution, and cache effectiveness.
package prometheus

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Boundary fetch result label values.
const (
	ResultOK          = "ok"
	ResultNotFound    = "not_found"
	ResultMalformed   = "malformed"
	ResultUnsupported = "unsupported"
	ResultError       = "error"
)

// Metrics owns the service's Prometheus registry and instruments.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	MapDataRequestsTotal prometheus.Counter
	MapRecordsFolded     prometheus.Gauge

	BoundaryFetchesTotal  *prometheus.CounterVec
	BoundaryFetchDuration prometheus.Histogram

	CacheHitsTotal   prometheus.Counter
	CacheMissesTotal prometheus.Counter
}

// NewMetrics builds and registers every instrument under the given
// namespace, along with the standard process and Go runtime collectors.
func NewMetrics(namespace string) *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)

	m := &Metrics{
		registry: registry,

		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),

		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),

		MapDataRequestsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "map_data_requests_total",
			Help:      "Requests for the folded map data set.",
		}),

		MapRecordsFolded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "map_records_folded",
			Help:      "Territory records produced by the most recent fold.",
		}),

		BoundaryFetchesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "boundary_fetches_total",
			Help:      "Boundary document fetches by result.",
		}, []string{"result"}),

		BoundaryFetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "boundary_fetch_duration_seconds",
			Help:      "Boundary fetch and normalization latency.",
			Buckets:   prometheus.DefBuckets,
		}),

		CacheHitsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_hits_total",
			Help:      "Map data cache hits.",
		}),

		CacheMissesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_misses_total",
			Help:      "Map data cache misses.",
		}),
	}

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.MapDataRequestsTotal,
		m.MapRecordsFolded,
		m.BoundaryFetchesTotal,
		m.BoundaryFetchDuration,
		m.CacheHitsTotal,
		m.CacheMissesTotal,
	)
	return m
}

// Handler returns the exposition endpoint handler.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveBoundaryFetch records one boundary fetch outcome.
func (m *Metrics) ObserveBoundaryFetch(result string, duration time.Duration) {
	m.BoundaryFetchesTotal.WithLabelValues(result).Inc()
	m.BoundaryFetchDuration.Observe(duration.Seconds())
}

// IncMapDataRequests counts one request for the folded map data set.
func (m *Metrics) IncMapDataRequests() { m.MapDataRequestsTotal.Inc() }

// SetRecordsFolded publishes the size of the most recent fold.
func (m *Metrics) SetRecordsFolded(n int) { m.MapRecordsFolded.Set(float64(n)) }

// IncCacheHit counts one map data cache hit.
func (m *Metrics) IncCacheHit() { m.CacheHitsTotal.Inc() }

// IncCacheMiss counts one map data cache miss.
func (m *Metrics) IncCacheMiss() { m.CacheMissesTotal.Inc() }
