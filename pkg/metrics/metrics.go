// Package metrics exposes prometheus instrumentation for the catalog and
// traversal engine.
package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds all metrics for the application
type Registry struct {
	// HTTP metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Catalog metrics
	CatalogNodesTotal    prometheus.Gauge
	CatalogEdgesTotal    prometheus.Gauge
	CatalogDanglingEdges prometheus.Gauge
	CatalogReloadsTotal  *prometheus.CounterVec

	// Traversal metrics
	TraversalsTotal   *prometheus.CounterVec
	TraversalDuration prometheus.Histogram
	ChainSize         prometheus.Histogram

	registry *prometheus.Registry
}

var (
	defaultRegistry *Registry
	once            sync.Once
)

// NewRegistry creates a fresh metrics registry
func NewRegistry() *Registry {
	r := &Registry{registry: prometheus.NewRegistry()}

	r.HTTPRequestsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "chaintrace_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	r.HTTPRequestDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chaintrace_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	r.HTTPRequestsInFlight = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "chaintrace_http_requests_in_flight",
			Help: "Current number of HTTP requests being processed",
		},
	)

	r.CatalogNodesTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "chaintrace_catalog_nodes_total",
			Help: "Number of nodes in the loaded catalog",
		},
	)

	r.CatalogEdgesTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "chaintrace_catalog_edges_total",
			Help: "Number of resolvable edges in the loaded catalog",
		},
	)

	r.CatalogDanglingEdges = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "chaintrace_catalog_dangling_edges",
			Help: "Number of edges whose target is absent from the catalog",
		},
	)

	r.CatalogReloadsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "chaintrace_catalog_reloads_total",
			Help: "Catalog reload attempts by outcome",
		},
		[]string{"status"},
	)

	r.TraversalsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "chaintrace_traversals_total",
			Help: "Chain traversals by outcome (found or empty)",
		},
		[]string{"result"},
	)

	r.TraversalDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "chaintrace_traversal_duration_seconds",
			Help:    "Chain traversal latency in seconds",
			Buckets: []float64{.00001, .0001, .001, .01, .1, 1},
		},
	)

	r.ChainSize = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "chaintrace_chain_size",
			Help:    "Number of steps per computed chain",
			Buckets: []float64{1, 2, 5, 10, 25, 50, 100, 250},
		},
	)

	return r
}

// DefaultRegistry returns the process-wide registry instance
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// RecordHTTPRequest records an HTTP request with its duration
func (r *Registry) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	r.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	r.HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// RecordTraversal records one chain traversal
func (r *Registry) RecordTraversal(steps int, duration time.Duration) {
	result := "found"
	if steps == 0 {
		result = "empty"
	}
	r.TraversalsTotal.WithLabelValues(result).Inc()
	r.TraversalDuration.Observe(duration.Seconds())
	r.ChainSize.Observe(float64(steps))
}

// UpdateCatalogMetrics refreshes catalog gauges after a load or reload
func (r *Registry) UpdateCatalogMetrics(nodes, edges, dangling int) {
	r.CatalogNodesTotal.Set(float64(nodes))
	r.CatalogEdgesTotal.Set(float64(edges))
	r.CatalogDanglingEdges.Set(float64(dangling))
}

// RecordCatalogReload records a reload attempt
func (r *Registry) RecordCatalogReload(success bool) {
	status := "success"
	if !success {
		status = "failure"
	}
	r.CatalogReloadsTotal.WithLabelValues(status).Inc()
}

// Handler returns the prometheus scrape handler for this registry
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
