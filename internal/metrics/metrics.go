// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	AvailabilityRequests *prometheus.CounterVec
	UpstreamDuration     *prometheus.HistogramVec
	LaunchOutcomes       *prometheus.CounterVec
	UnknownOfferKinds    *prometheus.CounterVec
}

// New registers all collectors on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		AvailabilityRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "streamscout",
			Name:      "availability_requests_total",
			Help:      "Availability lookups by outcome.",
		}, []string{"outcome"}),
		UpstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "streamscout",
			Name:      "upstream_request_duration_seconds",
			Help:      "Latency of upstream metadata requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint"}),
		LaunchOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "streamscout",
			Name:      "launch_outcomes_total",
			Help:      "Terminal launch outcomes by device platform.",
		}, []string{"platform", "outcome"}),
		UnknownOfferKinds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "streamscout",
			Name:      "unknown_offer_kinds_total",
			Help:      "Upstream offer buckets that did not map to a known kind.",
		}, []string{"bucket"}),
	}
	m.registry.MustRegister(
		m.AvailabilityRequests,
		m.UpstreamDuration,
		m.LaunchOutcomes,
		m.UnknownOfferKinds,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveAvailability(outcome string) {
	if m == nil {
		return
	}
	m.AvailabilityRequests.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveUpstream(endpoint string, started time.Time) {
	if m == nil {
		return
	}
	m.UpstreamDuration.WithLabelValues(endpoint).Observe(time.Since(started).Seconds())
}

func (m *Metrics) ObserveLaunch(platform, outcome string) {
	if m == nil {
		return
	}
	m.LaunchOutcomes.WithLabelValues(platform, outcome).Inc()
}

func (m *Metrics) ObserveUnknownKind(bucket string) {
	if m == nil {
		return
	}
	m.UnknownOfferKinds.WithLabelValues(bucket).Inc()
}
