package infrastructure

import (
	"context"
	"time"

	"weatherdash.app/internal/ports"
)

const healthCheckTimeout = 3 * time.Second

// Pinger is implemented by dependencies that can report liveness
type Pinger interface {
	Ping(ctx context.Context) error
}

// WeatherAPIHealthChecker checks that the forecast provider answers
type WeatherAPIHealthChecker struct {
	provider Pinger
	name     string
}

// NewWeatherAPIHealthChecker creates a new weather API health checker
func NewWeatherAPIHealthChecker(provider Pinger, name string) *WeatherAPIHealthChecker {
	return &WeatherAPIHealthChecker{provider: provider, name: name}
}

// Check performs a lightweight search request against the provider
func (w *WeatherAPIHealthChecker) Check(ctx context.Context) ports.HealthStatus {
	status := ports.HealthStatus{
		Component: "weatherAPI",
		Status:    ports.HealthStatusHealthy,
		Details: map[string]interface{}{
			"provider":  w.name,
			"connected": true,
		},
	}

	if w.provider == nil {
		status.Status = ports.HealthStatusUnhealthy
		status.Error = "weather provider is not available"
		status.Details["connected"] = false
		return status
	}

	latency, err := ping(ctx, w.provider)
	status.Details["latency_ms"] = latency.Milliseconds()
	if err != nil {
		status.Status = ports.HealthStatusUnhealthy
		status.Error = err.Error()
		status.Details["connected"] = false
	}
	return status
}

// CacheHealthChecker checks the suggestion cache backend.
// A failing cache only degrades the service since search falls back to the provider.
type CacheHealthChecker struct {
	cache     ports.CachePinger
	cacheType string
	metrics   ports.CacheMetrics
}

// NewCacheHealthChecker creates a new cache health checker
func NewCacheHealthChecker(cache ports.CachePinger, cacheType string, metrics ports.CacheMetrics) *CacheHealthChecker {
	return &CacheHealthChecker{cache: cache, cacheType: cacheType, metrics: metrics}
}

func (c *CacheHealthChecker) Check(ctx context.Context) ports.HealthStatus {
	status := ports.HealthStatus{
		Component: "cache",
		Status:    ports.HealthStatusHealthy,
		Details: map[string]interface{}{
			"type": c.cacheType,
		},
	}

	if c.cache == nil {
		status.Status = ports.HealthStatusDegraded
		status.Error = "cache is disabled"
		return status
	}

	latency, err := ping(ctx, c.cache)
	status.Details["latency_ms"] = latency.Milliseconds()
	if err != nil {
		status.Status = ports.HealthStatusDegraded
		status.Error = err.Error()
	}

	if c.metrics != nil {
		status.Details["hit_ratio"] = c.metrics.GetStats().HitRatio
	}
	return status
}

func ping(ctx context.Context, p Pinger) (time.Duration, error) {
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	start := time.Now()
	err := p.Ping(ctx)
	return time.Since(start), err
}
