// Package metrics exposes business metrics through Prometheus.
package metrics

import (
	"net/http"
	"time"

	"neighborhood/internal/domain/service"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "neighborhood"

// Recorder owns a private registry so tests can create as many as they need.
type Recorder struct {
	registry        *prometheus.Registry
	portalDecisions *prometheus.CounterVec
	approvals       *prometheus.CounterVec
	uploads         *prometheus.CounterVec
	refetchSeconds  prometheus.Histogram
}

var _ service.MetricsRecorder = (*Recorder)(nil)

// NewRecorder registers the marketplace collectors plus the Go and process collectors.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		portalDecisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "portal_access_decisions_total",
			Help:      "Portal entry decisions by portal and outcome.",
		}, []string{"portal", "decision"}),
		approvals: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "seller_application_decisions_total",
			Help:      "Seller application approve and reject attempts by outcome.",
		}, []string{"action", "outcome"}),
		uploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "uploads_total",
			Help:      "Object storage uploads by bucket and outcome.",
		}, []string{"bucket", "outcome"}),
		refetchSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "admin_dashboard_refetch_seconds",
			Help:      "Latency of admin dashboard full re-fetches.",
			Buckets:   prometheus.DefBuckets,
		}),
	}

	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.portalDecisions,
		r.approvals,
		r.uploads,
		r.refetchSeconds,
	)

	return r
}

// NewMetricsRecorder exposes the Recorder as the domain interface.
func NewMetricsRecorder(r *Recorder) service.MetricsRecorder {
	return r
}

func (r *Recorder) PortalDecision(portal, decision string) {
	r.portalDecisions.WithLabelValues(portal, decision).Inc()
}

func (r *Recorder) ApprovalOutcome(action, outcome string) {
	r.approvals.WithLabelValues(action, outcome).Inc()
}

func (r *Recorder) Upload(bucket, outcome string) {
	r.uploads.WithLabelValues(bucket, outcome).Inc()
}

func (r *Recorder) ObserveRefetch(d time.Duration) {
	r.refetchSeconds.Observe(d.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}
