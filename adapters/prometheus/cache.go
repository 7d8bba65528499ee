package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/codewandler/tcache-go/core/cache"
	"github.com/codewandler/tcache-go/core/metrics"
)

// cacheMetrics implements cache.Metrics using Prometheus.
type cacheMetrics struct {
	hits         *prometheus.CounterVec
	misses       *prometheus.CounterVec
	evictions    *prometheus.CounterVec
	expirations  *prometheus.CounterVec
	entries      *prometheus.GaugeVec
	loadDuration *prometheus.HistogramVec
}

// NewCacheMetrics creates a new Prometheus implementation of cache.Metrics.
// All series carry a "cache" label, so one instance can serve several
// stores.
func NewCacheMetrics(reg prometheus.Registerer) cache.Metrics {
	m := &cacheMetrics{
		hits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tcache_hits_total",
			Help: "Total number of cache hits",
		}, []string{"cache"}),

		misses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tcache_misses_total",
			Help: "Total number of cache misses",
		}, []string{"cache"}),

		evictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tcache_evictions_total",
			Help: "Total number of entries evicted under capacity pressure",
		}, []string{"cache"}),

		expirations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tcache_expirations_total",
			Help: "Total number of expired entries removed",
		}, []string{"cache"}),

		entries: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "tcache_entries",
			Help: "Current number of stored entries",
		}, []string{"cache"}),

		loadDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tcache_load_duration_seconds",
			Help:    "Factory execution time on cache miss in seconds",
			Buckets: defaultBuckets,
		}, []string{"cache"}),
	}

	reg.MustRegister(
		m.hits,
		m.misses,
		m.evictions,
		m.expirations,
		m.entries,
		m.loadDuration,
	)

	return m
}

func (m *cacheMetrics) Hit(name string) {
	m.hits.WithLabelValues(name).Inc()
}

func (m *cacheMetrics) Miss(name string) {
	m.misses.WithLabelValues(name).Inc()
}

func (m *cacheMetrics) Eviction(name string) {
	m.evictions.WithLabelValues(name).Inc()
}

func (m *cacheMetrics) Expiration(name string) {
	m.expirations.WithLabelValues(name).Inc()
}

func (m *cacheMetrics) Entries(name string, n int) {
	m.entries.WithLabelValues(name).Set(float64(n))
}

func (m *cacheMetrics) LoadDuration(name string) metrics.Timer {
	return newTimer(m.loadDuration.WithLabelValues(name))
}

var _ cache.Metrics = (*cacheMetrics)(nil)
