package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ReportMetrics records durations and cache behavior for report computations.
type ReportMetrics struct {
	duration  *prometheus.HistogramVec
	cacheHit  *prometheus.CounterVec
	cacheMiss *prometheus.CounterVec
	failure   *prometheus.CounterVec
}

// NewReportMetrics registers the report metrics on the provided registerer.
func NewReportMetrics(reg prometheus.Registerer) *ReportMetrics {
	if reg == nil {
		return &ReportMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "report_duration_seconds",
		Help:    "Duration of report computations in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"report"})
	cacheHit := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "report_cache_hit",
		Help: "Report results served from cache.",
	}, []string{"report"})
	cacheMiss := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "report_cache_miss",
		Help: "Report results computed from the event store.",
	}, []string{"report"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "report_failure",
		Help: "Report computations that returned an adapter error.",
	}, []string{"report"})
	reg.MustRegister(duration, cacheHit, cacheMiss, failure)
	return &ReportMetrics{
		duration:  duration,
		cacheHit:  cacheHit,
		cacheMiss: cacheMiss,
		failure:   failure,
	}
}

// ObserveDuration records the duration for the named report.
func (r *ReportMetrics) ObserveDuration(report string, duration time.Duration) {
	if r == nil || r.duration == nil {
		return
	}
	r.duration.WithLabelValues(normalizeLabel(report)).Observe(duration.Seconds())
}

// IncCacheHit increments the cache hit counter for the named report.
func (r *ReportMetrics) IncCacheHit(report string) {
	if r == nil || r.cacheHit == nil {
		return
	}
	r.cacheHit.WithLabelValues(normalizeLabel(report)).Inc()
}

// IncCacheMiss increments the cache miss counter for the named report.
func (r *ReportMetrics) IncCacheMiss(report string) {
	if r == nil || r.cacheMiss == nil {
		return
	}
	r.cacheMiss.WithLabelValues(normalizeLabel(report)).Inc()
}

// IncFailure increments the failure counter for the named report.
func (r *ReportMetrics) IncFailure(report string) {
	if r == nil || r.failure == nil {
		return
	}
	r.failure.WithLabelValues(normalizeLabel(report)).Inc()
}

func normalizeLabel(report string) string {
	if report == "" {
		return "unknown"
	}
	return report
}
