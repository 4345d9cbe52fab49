// Package metrics exports Prometheus collectors for the price pipeline.
package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the pipeline collectors. All methods are nil-safe so
// components can run without metrics wired (tests, tools).
type Metrics struct {
	requestsTotal  *prometheus.CounterVec
	requestLatency prometheus.Histogram
	cacheOps       *prometheus.CounterVec
	searchAttempts *prometheus.CounterVec
	searchFailures *prometheus.CounterVec
	extractionPath *prometheus.CounterVec
}

var (
	once     sync.Once
	instance *Metrics
)

// New returns the process-wide Metrics, registering collectors exactly once.
func New() *Metrics {
	once.Do(func() {
		instance = &Metrics{
			requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: "pricetool_requests_total",
				Help: "Total price requests by HTTP status",
			}, []string{"status"}),

			requestLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
				Name:    "pricetool_request_latency_seconds",
				Help:    "End-to-end price request latency",
				Buckets: prometheus.DefBuckets,
			}),

			cacheOps: prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: "pricetool_cache_ops_total",
				Help: "Cache lookups by namespace and outcome",
			}, []string{"namespace", "outcome"}),

			searchAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: "pricetool_search_attempts_total",
				Help: "Outbound shopping-search attempts",
			}, []string{"provider"}),

			searchFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: "pricetool_search_failures_total",
				Help: "Failed shopping-search attempts",
			}, []string{"provider"}),

			extractionPath: prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: "pricetool_extraction_total",
				Help: "Extractions by path (ai or fallback)",
			}, []string{"path"}),
		}

		prometheus.MustRegister(
			instance.requestsTotal,
			instance.requestLatency,
			instance.cacheOps,
			instance.searchAttempts,
			instance.searchFailures,
			instance.extractionPath,
		)
	})
	return instance
}

func (m *Metrics) ObserveRequest(status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requestsTotal.WithLabelValues(strconv.Itoa(status)).Inc()
	m.requestLatency.Observe(elapsed.Seconds())
}

func (m *Metrics) CacheHit(namespace string) {
	if m == nil {
		return
	}
	m.cacheOps.WithLabelValues(namespace, "hit").Inc()
}

func (m *Metrics) CacheMiss(namespace string) {
	if m == nil {
		return
	}
	m.cacheOps.WithLabelValues(namespace, "miss").Inc()
}

func (m *Metrics) SearchAttempt(provider string) {
	if m == nil {
		return
	}
	m.searchAttempts.WithLabelValues(provider).Inc()
}

func (m *Metrics) SearchFailure(provider string) {
	if m == nil {
		return
	}
	m.searchFailures.WithLabelValues(provider).Inc()
}

// ExtractionPath records which extraction path produced the result set:
// "ai" or "fallback".
func (m *Metrics) ExtractionPath(path string) {
	if m == nil {
		return
	}
	m.extractionPath.WithLabelValues(path).Inc()
}

// Handler returns the Prometheus scrape handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
