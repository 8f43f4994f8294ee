// Package monitoring exposes Prometheus metrics for the compliance service.
package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the service's Prometheus collectors. Construct one per
// process with NewMetrics; tests pass their own registry to avoid duplicate
// registration.
type Metrics struct {
	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
	complianceChecks *prometheus.CounterVec
	checkDuration    prometheus.Histogram
	cacheHits        prometheus.Counter
	cacheMisses      prometheus.Counter
	auditEvents      *prometheus.CounterVec
}

// NewMetrics registers the service collectors with the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bizcomply",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, path, and status.",
		}, []string{"method", "path", "status"}),

		httpDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "bizcomply",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and path.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),

		complianceChecks: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bizcomply",
			Name:      "compliance_checks_total",
			Help:      "Compliance evaluations by industry and resulting risk level.",
		}, []string{"industry", "risk_level"}),

		checkDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "bizcomply",
			Name:      "compliance_check_duration_seconds",
			Help:      "End-to-end compliance evaluation latency.",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}),

		cacheHits: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "bizcomply",
			Name:      "cache_hits_total",
			Help:      "Cache lookups that returned a value.",
		}),

		cacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "bizcomply",
			Name:      "cache_misses_total",
			Help:      "Cache lookups that missed or failed.",
		}),

		auditEvents: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bizcomply",
			Name:      "audit_events_total",
			Help:      "Audit events by publish outcome.",
		}, []string{"outcome"}),
	}
}

// ObserveHTTPRequest records one completed HTTP request.
func (m *Metrics) ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	m.httpRequests.WithLabelValues(method, path, status).Inc()
	m.httpDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// ObserveComplianceCheck records one evaluation outcome.
func (m *Metrics) ObserveComplianceCheck(industry, riskLevel string, duration time.Duration) {
	m.complianceChecks.WithLabelValues(industry, riskLevel).Inc()
	m.checkDuration.Observe(duration.Seconds())
}

// CacheHit increments the cache hit counter.
func (m *Metrics) CacheHit() { m.cacheHits.Inc() }

// CacheMiss increments the cache miss counter.
func (m *Metrics) CacheMiss() { m.cacheMisses.Inc() }

// AuditEventPublished records a successful audit event publish.
func (m *Metrics) AuditEventPublished() { m.auditEvents.WithLabelValues("published").Inc() }

// AuditEventDropped records a failed or skipped audit event publish.
func (m *Metrics) AuditEventDropped() { m.auditEvents.WithLabelValues("dropped").Inc() }
