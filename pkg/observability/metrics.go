package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds all Prometheus metrics for the application
type Collector struct {
	registry *prometheus.Registry

	// HTTP metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Business metrics
	AgentsCreated  prometheus.Counter
	AgentsUpdated  prometheus.Counter
	AgentsDeleted  prometheus.Counter
	CatalogImports prometheus.Counter
	CatalogExports prometheus.Counter

	// Overlay metrics
	OverlayWrites      prometheus.Counter
	OverlayWriteErrors prometheus.Counter
}

// NewCollector creates a metrics collector on a private registry with the
// given namespace.
func NewCollector(namespace string) *Collector {
	registry := prometheus.NewRegistry()

	c := &Collector{
		registry: registry,
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		AgentsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "agents_created_total",
			Help:      "Total number of agents created",
		}),
		AgentsUpdated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "agents_updated_total",
			Help:      "Total number of agents updated",
		}),
		AgentsDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "agents_deleted_total",
			Help:      "Total number of agents deleted",
		}),
		CatalogImports: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_imports_total",
			Help:      "Total number of successful catalog imports",
		}),
		CatalogExports: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_exports_total",
			Help:      "Total number of catalog exports",
		}),
		OverlayWrites: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "overlay_writes_total",
			Help:      "Total number of overlay slot replacements",
		}),
		OverlayWriteErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "overlay_write_errors_total",
			Help:      "Total number of rejected overlay writes",
		}),
	}

	registry.MustRegister(
		c.HTTPRequests,
		c.HTTPDuration,
		c.AgentsCreated,
		c.AgentsUpdated,
		c.AgentsDeleted,
		c.CatalogImports,
		c.CatalogExports,
		c.OverlayWrites,
		c.OverlayWriteErrors,
	)

	return c
}

// Handler returns an HTTP handler exposing the collector's registry.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
