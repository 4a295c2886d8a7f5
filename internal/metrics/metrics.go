// Package metrics exposes cache registry state and lookup traffic to Prometheus.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"objectcache/internal/cache"
)

const namespace = "objectcache"

// Metrics holds the registry every collector is registered with.
type Metrics struct {
	Registry *prometheus.Registry

	LookupHits   prometheus.Counter
	LookupMisses prometheus.Counter
}

// New creates a private registry holding the cacher collector for m and the
// lookup counters.
func New(m *cache.Manager) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(NewCacherCollector(m))

	factory := promauto.With(reg)
	return &Metrics{
		Registry: reg,
		LookupHits: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lookup_hits_total",
			Help:      "Total number of lookups served from the cache",
		}),
		LookupMisses: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lookup_misses_total",
			Help:      "Total number of lookups loaded from the database",
		}),
	}
}

func (m *Metrics) Hit()  { m.LookupHits.Inc() }
func (m *Metrics) Miss() { m.LookupMisses.Inc() }

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

// CacherCollector reports every registered cacher at scrape time.
type CacherCollector struct {
	manager *cache.Manager
	entries *prometheus.Desc
	timeout *prometheus.Desc
}

func NewCacherCollector(m *cache.Manager) *CacherCollector {
	return &CacherCollector{
		manager: m,
		entries: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "cacher", "entries"),
			"Entries stored in the cacher, including stale ones not yet evicted",
			[]string{"cacher"}, nil,
		),
		timeout: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "cacher", "timeout"),
			"Configured cacher timeout in its unit; 0 never expires",
			[]string{"cacher", "unit"}, nil,
		),
	}
}

func (c *CacherCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.entries
	ch <- c.timeout
}

func (c *CacherCollector) Collect(ch chan<- prometheus.Metric) {
	for _, info := range c.manager.Caches() {
		ch <- prometheus.MustNewConstMetric(c.entries, prometheus.GaugeValue, float64(info.Size), info.ID)
		ch <- prometheus.MustNewConstMetric(c.timeout, prometheus.GaugeValue, float64(info.Timeout), info.ID, info.TimeoutType.String())
	}
}
