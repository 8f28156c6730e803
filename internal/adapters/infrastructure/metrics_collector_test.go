package infrastructure

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"weatherdash.app/internal/ports"
)

type staticCacheMetrics struct {
	stats ports.CacheStats
}

func (s staticCacheMetrics) GetStats() ports.CacheStats               { return s.stats }
func (s staticCacheMetrics) RecordHit()                                {}
func (s staticCacheMetrics) RecordMiss()                               {}
func (s staticCacheMetrics) RecordOperation(_ string, _ time.Duration) {}

func TestPrometheusMetricsCollector_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector := NewPrometheusMetricsCollector(reg)

	collector.RecordClassification("clear-day", true)
	collector.RecordClassification("clear-day", true)
	collector.RecordClassification("default", false)
	collector.RecordUnitConversion("F")
	collector.RecordProviderRequest("forecast", true, 120*time.Millisecond)
	collector.RecordProviderRequest("forecast", false, 2*time.Second)
	collector.RecordCacheHit("location_search")
	collector.RecordCacheMiss("location_search")
	collector.RecordCacheMiss("location_search")

	assert.Equal(t, 2.0, testutil.ToFloat64(collector.classifications.WithLabelValues("clear-day", "true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.classifications.WithLabelValues("default", "false")))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.conversions.WithLabelValues("F")))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.providerRequests.WithLabelValues("forecast", "false")))
	assert.Equal(t, 2.0, testutil.ToFloat64(collector.cacheRequests.WithLabelValues("location_search", "miss")))
	assert.InDelta(t, 1.0/3.0, testutil.ToFloat64(collector.cacheHitRatio.WithLabelValues("location_search")), 1e-9)

	count, err := testutil.GatherAndCount(reg, "weatherdash_provider_request_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestPrometheusMetricsCollector_SeparateRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		NewPrometheusMetricsCollector(prometheus.NewRegistry())
		NewPrometheusMetricsCollector(prometheus.NewRegistry())
	})
}

func TestMetricsReporter_GetMetrics(t *testing.T) {
	collector := NewPrometheusMetricsCollector(prometheus.NewRegistry())
	collector.RecordClassification("rain", true)
	collector.RecordClassification("default", false)
	collector.RecordUnitConversion("C")
	collector.RecordProviderRequest("search", false, time.Millisecond)

	reporter := NewMetricsReporter(MetricsReporterConfig{
		Collector:    collector,
		CacheMetrics: staticCacheMetrics{stats: ports.CacheStats{Hits: 3, Misses: 1, TotalOps: 4, HitRatio: 0.75}},
		CacheType:    "memory",
	})

	metrics, err := reporter.GetMetrics(context.Background())
	require.NoError(t, err)

	classifications := metrics["classifications"].(map[string]interface{})
	assert.Equal(t, int64(2), classifications["total"])
	assert.Equal(t, int64(1), classifications["unrecognized"])
	assert.Equal(t, map[string]int64{"C": 1}, metrics["unit_conversions"])

	provider := metrics["provider"].(map[string]interface{})
	assert.Equal(t, map[string]int64{"search": 1}, provider["failures"])

	cache := metrics["cache"].(map[string]interface{})
	assert.Equal(t, "memory", cache["type"])
	assert.Equal(t, 0.75, cache["hit_ratio"])
}

type countingCacheMetrics struct {
	staticCacheMetrics
	ops int64
}

func (c countingCacheMetrics) Operations() int64 { return c.ops }

func TestMetricsReporter_ReportsCacheOperations(t *testing.T) {
	reporter := NewMetricsReporter(MetricsReporterConfig{
		Collector:    NewPrometheusMetricsCollector(prometheus.NewRegistry()),
		CacheMetrics: countingCacheMetrics{ops: 7},
		CacheType:    "redis",
	})

	metrics, err := reporter.GetMetrics(context.Background())
	require.NoError(t, err)

	cache := metrics["cache"].(map[string]interface{})
	assert.Equal(t, int64(7), cache["operations"])

	reporter = NewMetricsReporter(MetricsReporterConfig{CacheMetrics: staticCacheMetrics{}})
	metrics, err = reporter.GetMetrics(context.Background())
	require.NoError(t, err)
	assert.NotContains(t, metrics["cache"], "operations")
}

func TestMetricsReporter_WithoutCache(t *testing.T) {
	reporter := NewMetricsReporter(MetricsReporterConfig{Collector: NewPrometheusMetricsCollector(prometheus.NewRegistry())})

	metrics, err := reporter.GetMetrics(context.Background())
	require.NoError(t, err)
	assert.NotContains(t, metrics, "cache")
	assert.Contains(t, metrics, "uptime_seconds")
}
