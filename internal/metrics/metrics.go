package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors of the dashboard service
type Metrics struct {
	registry *prometheus.Registry

	// Inbound dashboard API
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Outbound calls to the Bugninja backend
	UpstreamRequestsTotal   *prometheus.CounterVec
	UpstreamRequestDuration *prometheus.HistogramVec

	// Paginated list fetch outcomes
	ListFetchesTotal *prometheus.CounterVec
}

// New creates a Metrics instance with all collectors registered on a private registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	httpRequestsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bugninja_dashboard_http_requests_total",
			Help: "Total number of dashboard HTTP requests by method, route and status",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bugninja_dashboard_http_request_duration_seconds",
			Help:    "Dashboard HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	upstreamRequestsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bugninja_dashboard_upstream_requests_total",
			Help: "Total number of backend API calls by method and outcome",
		},
		[]string{"method", "outcome"},
	)

	upstreamRequestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bugninja_dashboard_upstream_request_duration_seconds",
			Help:    "Backend API call duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	listFetchesTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bugninja_dashboard_list_fetches_total",
			Help: "Total number of paginated list fetches by resource and outcome",
		},
		[]string{"resource", "outcome"},
	)

	registry.MustRegister(
		httpRequestsTotal,
		httpRequestDuration,
		upstreamRequestsTotal,
		upstreamRequestDuration,
		listFetchesTotal,
	)

	return &Metrics{
		registry:                registry,
		HTTPRequestsTotal:       httpRequestsTotal,
		HTTPRequestDuration:     httpRequestDuration,
		UpstreamRequestsTotal:   upstreamRequestsTotal,
		UpstreamRequestDuration: upstreamRequestDuration,
		ListFetchesTotal:        listFetchesTotal,
	}
}

// Registry returns the Prometheus registry for this metrics instance
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordHTTPRequest records one inbound request.
func (m *Metrics) RecordHTTPRequest(method, route, status string, seconds float64) {
	m.HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(seconds)
}

// RecordUpstream records one backend call. Outcome is a status code, "timeout" or "network_error".
func (m *Metrics) RecordUpstream(method, outcome string, seconds float64) {
	m.UpstreamRequestsTotal.WithLabelValues(method, outcome).Inc()
	m.UpstreamRequestDuration.WithLabelValues(method).Observe(seconds)
}

// RecordListFetch records the outcome of a paginated list fetch.
func (m *Metrics) RecordListFetch(resource, outcome string) {
	m.ListFetchesTotal.WithLabelValues(resource, outcome).Inc()
}
