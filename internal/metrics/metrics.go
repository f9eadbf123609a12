// Package metrics exposes store and HTTP counters to Prometheus.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for store operations.
const (
	OutcomeOK        = "ok"
	OutcomeRejected  = "rejected"
	OutcomeNotFound  = "not_found"
	OutcomeError     = "error"
	OutcomeForbidden = "forbidden"
)

// Metrics holds every collector. A nil *Metrics records nothing.
type Metrics struct {
	registry prometheus.Gatherer

	// store operations
	OperationsTotal   *prometheus.CounterVec
	OperationDuration *prometheus.HistogramVec
	PostsTotal        prometheus.Gauge
	AccountsTotal     prometheus.Gauge
	SearchCacheHits   *prometheus.CounterVec

	// HTTP
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// New registers the collectors on a fresh registry, so tests can build as many as they like.
func New(namespace string) *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		OperationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "store_operations_total",
				Help:      "Store operations by store, operation and outcome",
			},
			[]string{"store", "operation", "outcome"},
		),
		OperationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "store_operation_duration_seconds",
				Help:      "Store operation duration in seconds, simulated latency included",
				Buckets:   []float64{0.001, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
			},
			[]string{"store", "operation"},
		),
		PostsTotal: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "posts",
				Help:      "Number of posts in the collection",
			},
		),
		AccountsTotal: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "accounts",
				Help:      "Number of registered accounts",
			},
		),
		SearchCacheHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "search_cache_lookups_total",
				Help:      "Search cache lookups by result",
			},
			[]string{"result"},
		),
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"method", "path"},
		),
	}
}

// RecordOperation counts one store operation.
func (m *Metrics) RecordOperation(store, operation, outcome string, duration time.Duration) {
	if m == nil {
		return
	}
	m.OperationsTotal.WithLabelValues(store, operation, outcome).Inc()
	m.OperationDuration.WithLabelValues(store, operation).Observe(duration.Seconds())
}

func (m *Metrics) SetPosts(n int) {
	if m == nil {
		return
	}
	m.PostsTotal.Set(float64(n))
}

func (m *Metrics) SetAccounts(n int) {
	if m == nil {
		return
	}
	m.AccountsTotal.Set(float64(n))
}

func (m *Metrics) RecordSearch(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.SearchCacheHits.WithLabelValues(result).Inc()
}

// Middleware records HTTP request metrics by route pattern.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		m.HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		m.HTTPRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
