package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"weatherdash.app/internal/adapters/api"
	"weatherdash.app/internal/adapters/infrastructure"
	"weatherdash.app/internal/config"
	"weatherdash.app/internal/core/forecast"
	"weatherdash.app/internal/core/search"
	"weatherdash.app/internal/core/units"
	"weatherdash.app/internal/ports"
)

type Application struct {
	config *config.Config

	// Use Cases
	dashboardUseCase *forecast.UseCase
	searchUseCase    *search.UseCase

	// Adapters
	httpServer *http.Server
	router     *gin.Engine

	// Infrastructure
	deps  *DependencyContainer
	ports *ports.ApplicationPorts
}

func NewApplication() (*Application, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	deps, err := NewDependencyContainer(cfg)
	if err != nil {
		return nil, fmt.Errorf("create dependency container: %w", err)
	}

	app, err := NewApplicationWithDependencies(cfg, deps)
	if err != nil {
		_ = deps.Cleanup()
		return nil, err
	}
	return app, nil
}

// NewApplicationWithDependencies creates an application with provided dependencies
func NewApplicationWithDependencies(cfg *config.Config, deps *DependencyContainer) (*Application, error) {
	app := &Application{
		config: cfg,
		deps:   deps,
		ports:  deps.ApplicationPorts(),
	}

	if err := app.initializeUseCases(); err != nil {
		return nil, fmt.Errorf("initialize use cases: %w", err)
	}

	if err := app.initializeAdapters(); err != nil {
		return nil, fmt.Errorf("initialize adapters: %w", err)
	}

	return app, nil
}

func (a *Application) initializeUseCases() error {
	slog.Info("Initializing use cases...")

	dashboardUseCase, err := forecast.NewUseCase(forecast.UseCaseDependencies{
		Provider:   a.ports.WeatherProvider,
		Config:     a.ports.ConfigProvider,
		Logger:     a.ports.Logger,
		Metrics:    a.ports.Metrics,
		Preference: units.NewPreference(a.config.Display.DefaultUnit),
	})
	if err != nil {
		return fmt.Errorf("create dashboard use case: %w", err)
	}
	a.dashboardUseCase = dashboardUseCase

	var cache ports.LocationCache
	if a.config.Search.EnableCache {
		cache = a.ports.LocationCache
	}

	searchUseCase, err := search.NewUseCase(search.UseCaseDependencies{
		Searcher: a.ports.WeatherProvider,
		Cache:    cache,
		Config:   a.ports.ConfigProvider,
		Logger:   a.ports.Logger,
		Metrics:  a.ports.Metrics,
	})
	if err != nil {
		return fmt.Errorf("create search use case: %w", err)
	}
	a.searchUseCase = searchUseCase

	slog.Info("Use cases initialized successfully")
	return nil
}

func (a *Application) initializeAdapters() error {
	slog.Info("Initializing adapters...")

	cacheType := a.deps.cacheType.String()

	metricsReporter := infrastructure.NewMetricsReporter(infrastructure.MetricsReporterConfig{
		Collector:    a.deps.collector,
		CacheMetrics: a.ports.CacheMetrics,
		CacheType:    cacheType,
	})

	systemHealthChecker := infrastructure.NewSystemHealthChecker(infrastructure.SystemHealthCheckerConfig{
		WeatherAPIChecker: infrastructure.NewWeatherAPIHealthChecker(a.deps.weatherAPI, a.deps.weatherAPI.GetProviderName()),
		CacheChecker:      infrastructure.NewCacheHealthChecker(a.deps.cacheBackend, cacheType, a.ports.CacheMetrics),
		ConfigProvider:    a.ports.ConfigProvider,
	})

	httpAdapter, err := api.NewHTTPServerAdapter(api.ServerOptions{
		Config: api.ServerConfig{
			Port: a.config.Server.Port,
		},
		DashboardUseCase: a.dashboardUseCase,
		SearchUseCase:    a.searchUseCase,
		ConfigProvider:   a.ports.ConfigProvider,
		MetricsReporter:  metricsReporter,
		HealthChecker:    systemHealthChecker,
		Logger:           a.ports.Logger,
		Gatherer:         a.deps.Registry(),
	})
	if err != nil {
		return fmt.Errorf("create HTTP adapter: %w", err)
	}

	a.router = httpAdapter.GetRouter()
	a.httpServer = httpAdapter.NewHTTPServer()

	slog.Info("Adapters initialized successfully")
	return nil
}

func (a *Application) Start(ctx context.Context) error {
	slog.Info("Starting HTTP server", "port", a.config.Server.Port)
	if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("HTTP server error: %w", err)
	}
	return nil
}

func (a *Application) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down application...")

	if err := a.httpServer.Shutdown(ctx); err != nil {
		slog.Error("Error shutting down HTTP server", "error", err)
		return fmt.Errorf("shutdown HTTP server: %w", err)
	}

	if err := a.deps.Cleanup(); err != nil {
		slog.Warn("Error releasing resources", "error", err)
	}

	slog.Info("Application shutdown complete")
	return nil
}

// Config returns the application configuration
func (a *Application) Config() *config.Config {
	return a.config
}

// GetRouter returns the Gin router for testing
func (a *Application) GetRouter() *gin.Engine {
	return a.router
}

// GetDashboardUseCase returns the dashboard use case for testing
func (a *Application) GetDashboardUseCase() *forecast.UseCase {
	return a.dashboardUseCase
}

// GetSearchUseCase returns the search use case for testing
func (a *Application) GetSearchUseCase() *search.UseCase {
	return a.searchUseCase
}
