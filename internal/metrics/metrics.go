package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Reload outcomes used as the "result" label.
const (
	ReloadApplied   = "applied"
	ReloadUnchanged = "unchanged"
	ReloadRejected  = "rejected" // file parsed but failed validation
	ReloadFailed    = "failed"   // file could not be read or parsed
)

// Metrics holds the sidenav Prometheus collectors on an isolated registry,
// so tests can build as many instances as they like.
type Metrics struct {
	Registry *prometheus.Registry

	ReloadsTotal         *prometheus.CounterVec
	ViolationsLastReload prometheus.Gauge
	Sections             prometheus.Gauge
	Revisions            prometheus.Gauge
	LookupsTotal         *prometheus.CounterVec
	RequestsTotal        *prometheus.CounterVec
	RequestDuration      *prometheus.HistogramVec
	RevisionsCollected   prometheus.Counter

	BuildInfo *prometheus.GaugeVec
}

// New creates a Metrics instance with all collectors registered.
func New(version, goVersion string) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Metrics{
		Registry: reg,

		ReloadsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sidenav_reloads_total",
				Help: "Navigation file reload attempts by outcome.",
			},
			[]string{"result"},
		),
		ViolationsLastReload: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "sidenav_validation_violations",
			Help: "Number of validation violations found by the most recent reload attempt.",
		}),
		Sections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "sidenav_sections",
			Help: "Number of sidebar sections in the active revision.",
		}),
		Revisions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "sidenav_revisions",
			Help: "Number of revisions held in memory.",
		}),
		LookupsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sidenav_section_lookups_total",
				Help: "Sidebar section lookups by result.",
			},
			[]string{"result"},
		),
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sidenav_http_requests_total",
				Help: "HTTP requests by method, route and status code.",
			},
			[]string{"method", "route", "code"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sidenav_http_request_duration_seconds",
				Help:    "HTTP request latency in seconds.",
				Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12), // 0.5ms to ~1s
			},
			[]string{"method", "route"},
		),
		RevisionsCollected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sidenav_revisions_collected_total",
			Help: "Superseded revisions removed by the garbage collector.",
		}),

		BuildInfo: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "sidenav_info",
				Help: "Build information, always 1.",
			},
			[]string{"version", "go_version"},
		),
	}

	reg.MustRegister(
		m.ReloadsTotal,
		m.ViolationsLastReload,
		m.Sections,
		m.Revisions,
		m.LookupsTotal,
		m.RequestsTotal,
		m.RequestDuration,
		m.RevisionsCollected,
		m.BuildInfo,
	)

	m.BuildInfo.WithLabelValues(version, goVersion).Set(1)

	return m
}

// ObserveReload records the outcome of one reload attempt.
func (m *Metrics) ObserveReload(result string, violations int) {
	if m == nil {
		return
	}
	m.ReloadsTotal.WithLabelValues(result).Inc()
	if result != ReloadFailed {
		m.ViolationsLastReload.Set(float64(violations))
	}
}

// ObserveLookup counts a section lookup.
func (m *Metrics) ObserveLookup(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.LookupsTotal.WithLabelValues("hit").Inc()
		return
	}
	m.LookupsTotal.WithLabelValues("miss").Inc()
}

// Handler serves the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
