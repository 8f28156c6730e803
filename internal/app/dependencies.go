package app

import (
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"weatherdash.app/internal/adapters/external"
	"weatherdash.app/internal/adapters/infrastructure"
	"weatherdash.app/internal/config"
	"weatherdash.app/internal/ports"
)

type DependencyContainer struct {
	config *config.Config
	ports  *ports.ApplicationPorts

	registry     *prometheus.Registry
	collector    *infrastructure.PrometheusMetricsCollector
	weatherAPI   *external.WeatherAPIProviderAdapter
	cacheBackend external.CacheBackend
	cacheType    config.CacheType
	fileLogger   *infrastructure.FileLoggerAdapter
}

func NewDependencyContainer(cfg *config.Config) (*DependencyContainer, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	container := &DependencyContainer{
		config:   cfg,
		registry: prometheus.NewRegistry(),
	}

	if err := container.initializePorts(); err != nil {
		_ = container.Cleanup()
		return nil, fmt.Errorf("initialize ports: %w", err)
	}

	return container, nil
}

func (c *DependencyContainer) initializePorts() error {
	slog.Info("Initializing ports...")

	c.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	c.collector = infrastructure.NewPrometheusMetricsCollector(c.registry)

	var logger ports.Logger = infrastructure.NewSlogLoggerAdapter(nil)

	// Provider traffic additionally goes to a JSON lines file when enabled
	providerLogger := logger
	if c.config.Weather.EnableLogging && c.config.Weather.LogFilePath != "" {
		fileLogger, err := infrastructure.NewFileLoggerAdapter(c.config.Weather.LogFilePath)
		if err != nil {
			slog.Warn("Failed to create file logger, provider logs go to slog only", "error", err)
		} else {
			c.fileLogger = fileLogger
			providerLogger = infrastructure.NewMultiLogger(logger, fileLogger)
			slog.Info("File logging enabled", "path", c.config.Weather.LogFilePath)
		}
	}

	c.weatherAPI = external.NewWeatherAPIProviderAdapter(external.WeatherAPIProviderParams{
		APIKey:  c.config.Weather.APIKey,
		BaseURL: c.config.Weather.BaseURL,
		Timeout: c.config.Weather.Timeout(),
		Logger:  logger,
		Metrics: c.collector,
	})

	var weatherProvider ports.WeatherProvider = c.weatherAPI
	if c.config.Weather.EnableLogging {
		weatherProvider = external.NewWeatherProviderLoggingDecorator(c.weatherAPI, providerLogger)
		slog.Info("Weather provider logging enabled")
	}

	if err := c.initializeCache(); err != nil {
		return err
	}

	c.ports = &ports.ApplicationPorts{
		WeatherProvider: weatherProvider,
		LocationCache:   external.NewLocationCacheAdapter(c.cacheBackend),
		CacheProvider:   c.cacheBackend,
		CacheMetrics:    c.cacheBackend,
		ConfigProvider:  infrastructure.NewConfigProviderAdapter(c.config),
		Logger:          logger,
		Metrics:         c.collector,
	}

	slog.Info("Ports initialized successfully")
	return nil
}

// initializeCache falls back to the in-process cache when redis cannot be reached;
// suggestions are an optimisation and must not block start-up.
func (c *DependencyContainer) initializeCache() error {
	cacheFactory := external.NewCacheProviderFactory()

	backend, err := cacheFactory.CreateCacheProvider(&c.config.Cache)
	if err != nil {
		if c.config.Cache.Type != config.CacheTypeRedis {
			return fmt.Errorf("create cache provider: %w", err)
		}
		slog.Warn("Redis unavailable, falling back to memory cache",
			"redis_addr", c.config.Cache.Redis.Addr,
			"error", err)
		c.cacheBackend = external.NewMemoryCacheProvider()
		c.cacheType = config.CacheTypeMemory
		return nil
	}

	c.cacheBackend = backend
	c.cacheType = c.config.Cache.Type
	slog.Info("Cache provider initialized",
		"type", c.cacheType.String(),
		"redis_addr", c.config.Cache.Redis.Addr)
	return nil
}

func (c *DependencyContainer) ApplicationPorts() *ports.ApplicationPorts {
	return c.ports
}

// Registry returns the prometheus registry served on /metrics
func (c *DependencyContainer) Registry() *prometheus.Registry {
	return c.registry
}

// Cleanup releases the redis connection and the provider log file
func (c *DependencyContainer) Cleanup() error {
	var firstErr error

	if closer, ok := c.cacheBackend.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			firstErr = fmt.Errorf("close cache: %w", err)
		}
	}

	if c.fileLogger != nil {
		if err := c.fileLogger.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close log file: %w", err)
		}
	}

	return firstErr
}
