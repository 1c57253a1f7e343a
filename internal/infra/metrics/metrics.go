// Package metrics exposes Prometheus instrumentation for the API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/expense-tracker/backend/internal/application/adapter"
)

const namespace = "expense_tracker"

// Metrics owns the collectors and the registry they are registered on.
type Metrics struct {
	registry        *prometheus.Registry
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	expenseWrites   *prometheus.CounterVec
	budgetAlerts    *prometheus.CounterVec
}

// New creates the collectors on a fresh registry, including the Go and
// process collectors.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: registry,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		expenseWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "expense_writes_total",
			Help:      "Committed expense changes by operation.",
		}, []string{"operation"}),
		budgetAlerts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "budget_alerts_total",
			Help:      "Budget alerts raised, split by whether an email was queued.",
		}, []string{"email_queued"}),
	}

	registry.MustRegister(m.requests, m.requestDuration, m.expenseWrites, m.budgetAlerts)
	return m
}

// RecordExpenseWrite implements adapter.MetricsRecorder.
func (m *Metrics) RecordExpenseWrite(operation string) {
	m.expenseWrites.WithLabelValues(operation).Inc()
}

// RecordBudgetAlert implements adapter.MetricsRecorder.
func (m *Metrics) RecordBudgetAlert(queued bool) {
	m.budgetAlerts.WithLabelValues(strconv.FormatBool(queued)).Inc()
}

// Middleware records request counts and latency. Routes are labelled by
// their template so path parameters do not explode cardinality.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		m.requests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.requestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

var _ adapter.MetricsRecorder = (*Metrics)(nil)
