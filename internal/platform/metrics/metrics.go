package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds Prometheus counters and gauges for the stereo-pair daemon.
type Metrics struct {
	registry          *prometheus.Registry
	requestsTotal     prometheus.Counter
	errorsTotal       prometheus.Counter
	runsTotal         prometheus.Counter
	runsFailedTotal   prometheus.Counter
	linksCreatedTotal prometheus.Counter
	linkFailuresTotal prometheus.Counter
	wiredLinks        prometheus.Gauge
}

// New creates and registers Prometheus metrics for the daemon.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	requestsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "stereopair_http_requests_total",
		Help: "Total number of HTTP requests received",
	})
	errorsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "stereopair_http_errors_total",
		Help: "Total number of HTTP responses with error status (4xx or 5xx)",
	})
	runsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "stereopair_runs_total",
		Help: "Total number of wiring runs attempted",
	})
	runsFailedTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "stereopair_runs_failed_total",
		Help: "Total number of wiring runs that aborted",
	})
	linksCreatedTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "stereopair_links_created_total",
		Help: "Total number of port links successfully created",
	})
	linkFailuresTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "stereopair_link_failures_total",
		Help: "Total number of port link attempts that failed",
	})
	wiredLinks := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "stereopair_wired_links",
		Help: "Number of links created by the most recent completed run",
	})

	registry.MustRegister(
		requestsTotal,
		errorsTotal,
		runsTotal,
		runsFailedTotal,
		linksCreatedTotal,
		linkFailuresTotal,
		wiredLinks,
	)

	return &Metrics{
		registry:          registry,
		requestsTotal:     requestsTotal,
		errorsTotal:       errorsTotal,
		runsTotal:         runsTotal,
		runsFailedTotal:   runsFailedTotal,
		linksCreatedTotal: linksCreatedTotal,
		linkFailuresTotal: linkFailuresTotal,
		wiredLinks:        wiredLinks,
	}
}

// IncRequests increments the total request counter.
func (m *Metrics) IncRequests() {
	m.requestsTotal.Inc()
}

// IncErrors increments the HTTP error counter.
func (m *Metrics) IncErrors() {
	m.errorsTotal.Inc()
}

// IncRuns increments the wiring-run counter.
func (m *Metrics) IncRuns() {
	m.runsTotal.Inc()
}

// IncRunsFailed increments the aborted-run counter.
func (m *Metrics) IncRunsFailed() {
	m.runsFailedTotal.Inc()
}

// AddLinksCreated adds n to the created-links counter.
func (m *Metrics) AddLinksCreated(n int) {
	m.linksCreatedTotal.Add(float64(n))
}

// AddLinkFailures adds n to the failed-links counter.
func (m *Metrics) AddLinkFailures(n int) {
	m.linkFailuresTotal.Add(float64(n))
}

// SetWiredLinks sets the wired-links gauge.
func (m *Metrics) SetWiredLinks(n int) {
	m.wiredLinks.Set(float64(n))
}

// Handler returns an http.Handler that serves Prometheus metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
