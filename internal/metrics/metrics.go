// Package metrics holds the Prometheus instruments exported at /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics is created once per process; tests build their own instance so
// each gets a fresh registry.
//
// Metrics:
//   - portfolio_http_requests_total{method,route,status}
//   - portfolio_http_request_duration_seconds{method,route}
//   - portfolio_catalog_views_total{cache}   cache = hit|miss
//   - portfolio_catalog_empty_views_total
//   - portfolio_newsletter_subscriptions_total{result}
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequests      *prometheus.CounterVec
	HTTPDuration      *prometheus.HistogramVec
	CatalogViews      *prometheus.CounterVec
	CatalogEmptyViews prometheus.Counter
	Subscriptions     *prometheus.CounterVec
}

// New registers every instrument on a new registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		HTTPRequests: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portfolio_http_requests_total",
				Help: "HTTP requests by method, route template and status code",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "portfolio_http_request_duration_seconds",
				Help:    "HTTP request latency by method and route template",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
			},
			[]string{"method", "route"},
		),
		CatalogViews: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portfolio_catalog_views_total",
				Help: "Catalog views served, by cache outcome",
			},
			[]string{"cache"},
		),
		CatalogEmptyViews: f.NewCounter(prometheus.CounterOpts{
			Name: "portfolio_catalog_empty_views_total",
			Help: "Catalog views where no project matched the filter",
		}),
		Subscriptions: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portfolio_newsletter_subscriptions_total",
				Help: "Newsletter signups by result (created, duplicate, invalid, error)",
			},
			[]string{"result"},
		),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry, mostly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
