package infrastructure

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"weatherdash.app/internal/ports"
)

const metricsNamespace = "weatherdash"

// PrometheusMetricsCollector implements ports.MetricsCollector on top of
// prometheus counters and keeps a small in-process tally for the JSON summary.
type PrometheusMetricsCollector struct {
	classifications  *prometheus.CounterVec
	conversions      *prometheus.CounterVec
	providerRequests *prometheus.CounterVec
	providerLatency  *prometheus.HistogramVec
	cacheRequests    *prometheus.CounterVec
	cacheHitRatio    *prometheus.GaugeVec

	mu      sync.RWMutex
	tally   metricsTally
	started time.Time
}

type metricsTally struct {
	classifications  map[string]int64
	unrecognized     int64
	conversions      map[string]int64
	providerRequests map[string]int64
	providerFailures map[string]int64
	cacheHits        map[string]int64
	cacheMisses      map[string]int64
}

// NewPrometheusMetricsCollector registers the dashboard metrics on reg.
// A nil reg uses the default prometheus registerer.
func NewPrometheusMetricsCollector(reg prometheus.Registerer) *PrometheusMetricsCollector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &PrometheusMetricsCollector{
		classifications: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "condition_classifications_total",
				Help:      "Weather codes classified into a background class",
			},
			[]string{"class", "recognized"},
		),
		conversions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "unit_conversions_total",
				Help:      "Temperatures converted for display",
			},
			[]string{"unit"},
		),
		providerRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "provider_requests_total",
				Help:      "Requests sent to the weather provider",
			},
			[]string{"endpoint", "success"},
		),
		providerLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Name:      "provider_request_duration_seconds",
				Help:      "Weather provider request latency",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"endpoint"},
		),
		cacheRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "cache_requests_total",
				Help:      "Cache lookups by result",
			},
			[]string{"cache", "result"},
		),
		cacheHitRatio: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: metricsNamespace,
				Name:      "cache_hit_ratio",
				Help:      "Cache hit ratio (hits/total lookups)",
			},
			[]string{"cache"},
		),
		tally: metricsTally{
			classifications:  make(map[string]int64),
			conversions:      make(map[string]int64),
			providerRequests: make(map[string]int64),
			providerFailures: make(map[string]int64),
			cacheHits:        make(map[string]int64),
			cacheMisses:      make(map[string]int64),
		},
		started: time.Now(),
	}
}

func (m *PrometheusMetricsCollector) RecordClassification(class string, recognized bool) {
	m.classifications.WithLabelValues(class, strconv.FormatBool(recognized)).Inc()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.tally.classifications[class]++
	if !recognized {
		m.tally.unrecognized++
	}
}

func (m *PrometheusMetricsCollector) RecordUnitConversion(unit string) {
	m.conversions.WithLabelValues(unit).Inc()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.tally.conversions[unit]++
}

func (m *PrometheusMetricsCollector) RecordProviderRequest(endpoint string, success bool, duration time.Duration) {
	m.providerRequests.WithLabelValues(endpoint, strconv.FormatBool(success)).Inc()
	m.providerLatency.WithLabelValues(endpoint).Observe(duration.Seconds())

	m.mu.Lock()
	defer m.mu.Unlock()
	m.tally.providerRequests[endpoint]++
	if !success {
		m.tally.providerFailures[endpoint]++
	}
}

func (m *PrometheusMetricsCollector) RecordCacheHit(cache string) {
	m.cacheRequests.WithLabelValues(cache, "hit").Inc()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.tally.cacheHits[cache]++
	m.updateHitRatio(cache)
}

func (m *PrometheusMetricsCollector) RecordCacheMiss(cache string) {
	m.cacheRequests.WithLabelValues(cache, "miss").Inc()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.tally.cacheMisses[cache]++
	m.updateHitRatio(cache)
}

// updateHitRatio must be called while holding the mutex.
func (m *PrometheusMetricsCollector) updateHitRatio(cache string) {
	hits := m.tally.cacheHits[cache]
	total := hits + m.tally.cacheMisses[cache]
	if total > 0 {
		m.cacheHitRatio.WithLabelValues(cache).Set(float64(hits) / float64(total))
	}
}

// Summary returns a JSON-friendly copy of the recorded counters
func (m *PrometheusMetricsCollector) Summary() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var total int64
	for _, n := range m.tally.classifications {
		total += n
	}

	return map[string]interface{}{
		"uptime_seconds": int64(time.Since(m.started).Seconds()),
		"classifications": map[string]interface{}{
			"total":        total,
			"unrecognized": m.tally.unrecognized,
			"by_class":     copyCounts(m.tally.classifications),
		},
		"unit_conversions": copyCounts(m.tally.conversions),
		"provider": map[string]interface{}{
			"requests": copyCounts(m.tally.providerRequests),
			"failures": copyCounts(m.tally.providerFailures),
		},
		"cache_lookups": map[string]interface{}{
			"hits":   copyCounts(m.tally.cacheHits),
			"misses": copyCounts(m.tally.cacheMisses),
		},
	}
}

func copyCounts(src map[string]int64) map[string]int64 {
	dst := make(map[string]int64, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// operationCounter is implemented by cache backends that count reads and writes
type operationCounter interface {
	Operations() int64
}

// MetricsReporter aggregates the collector summary with cache backend statistics
type MetricsReporter struct {
	collector    *PrometheusMetricsCollector
	cacheMetrics ports.CacheMetrics
	cacheType    string
}

// MetricsReporterConfig holds configuration for creating the metrics reporter
type MetricsReporterConfig struct {
	Collector    *PrometheusMetricsCollector
	CacheMetrics ports.CacheMetrics
	CacheType    string
}

// NewMetricsReporter creates a new metrics reporter
func NewMetricsReporter(config MetricsReporterConfig) *MetricsReporter {
	return &MetricsReporter{
		collector:    config.Collector,
		cacheMetrics: config.CacheMetrics,
		cacheType:    config.CacheType,
	}
}

// GetMetrics returns aggregated metrics from all monitored components
func (m *MetricsReporter) GetMetrics(ctx context.Context) (map[string]interface{}, error) {
	metrics := map[string]interface{}{}
	if m.collector != nil {
		metrics = m.collector.Summary()
	}

	if m.cacheMetrics != nil {
		cacheStats := m.cacheMetrics.GetStats()
		metrics["cache"] = map[string]interface{}{
			"type":      m.cacheType,
			"hits":      cacheStats.Hits,
			"misses":    cacheStats.Misses,
			"total_ops": cacheStats.TotalOps,
			"hit_ratio": cacheStats.HitRatio,
			"updated":   cacheStats.LastUpdated,
		}
		if counter, ok := m.cacheMetrics.(operationCounter); ok {
			metrics["cache"].(map[string]interface{})["operations"] = counter.Operations()
		}
	}

	return metrics, nil
}

var _ ports.MetricsCollector = (*PrometheusMetricsCollector)(nil)
