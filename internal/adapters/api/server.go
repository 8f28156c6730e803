// Package api provides HTTP adapters for the hexagonal architecture
// These adapters handle incoming HTTP requests and translate them to use cases
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"weatherdash.app/internal/core/condition"
	"weatherdash.app/internal/core/forecast"
	"weatherdash.app/internal/core/search"
	"weatherdash.app/internal/core/units"
	"weatherdash.app/internal/ports"
	"weatherdash.app/pkg/errors"
)

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Port int
}

// HTTPServerAdapter implements HTTP server using Gin framework
type HTTPServerAdapter struct {
	router           *gin.Engine
	config           ServerConfig
	dashboardUseCase DashboardUseCase
	searchUseCase    SearchUseCase
	configProvider   ports.ConfigProvider
	metricsReporter  MetricsReporter
	healthChecker    ports.SystemHealthChecker
	logger           ports.Logger
	gatherer         prometheus.Gatherer
}

// Use case interfaces that the HTTP adapter depends on
type DashboardUseCase interface {
	GetDashboard(ctx context.Context, request forecast.DashboardRequest) (*forecast.Dashboard, error)
	CurrentUnit() units.Unit
	ToggleUnit() units.Unit
	DescribeCondition(code int, phase condition.DayPhase, iconSize string) (forecast.Condition, condition.DisplayAsset)
	Convert(tempC float64, unit units.Unit) int
}

type SearchUseCase interface {
	Suggest(ctx context.Context, request search.SearchRequest) ([]search.Suggestion, error)
}

type MetricsReporter interface {
	GetMetrics(ctx context.Context) (map[string]interface{}, error)
}

// ServerOptions represents options for creating the HTTP server
type ServerOptions struct {
	Config           ServerConfig
	DashboardUseCase DashboardUseCase
	SearchUseCase    SearchUseCase
	ConfigProvider   ports.ConfigProvider
	MetricsReporter  MetricsReporter
	HealthChecker    ports.SystemHealthChecker
	Logger           ports.Logger
	// Gatherer backs /metrics; nil means the default prometheus registry
	Gatherer prometheus.Gatherer
}

// NewHTTPServerAdapter creates a new HTTP server adapter
func NewHTTPServerAdapter(opts ServerOptions) (*HTTPServerAdapter, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid server options: %w", err)
	}

	if err := RegisterValidators(); err != nil {
		return nil, fmt.Errorf("register validators: %w", err)
	}

	router := gin.New()
	router.Use(gin.Recovery(), requestIDMiddleware(), requestLogMiddleware(opts.Logger))

	gatherer := opts.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	server := &HTTPServerAdapter{
		router:           router,
		config:           opts.Config,
		dashboardUseCase: opts.DashboardUseCase,
		searchUseCase:    opts.SearchUseCase,
		configProvider:   opts.ConfigProvider,
		metricsReporter:  opts.MetricsReporter,
		healthChecker:    opts.HealthChecker,
		logger:           opts.Logger,
		gatherer:         gatherer,
	}

	server.setupRoutes()
	return server, nil
}

// Validate checks if all required dependencies are provided
func (opts *ServerOptions) Validate() error {
	if opts.DashboardUseCase == nil {
		return errors.NewValidationError("dashboard use case is required")
	}
	if opts.SearchUseCase == nil {
		return errors.NewValidationError("search use case is required")
	}
	if opts.ConfigProvider == nil {
		return errors.NewValidationError("config provider is required")
	}
	if opts.MetricsReporter == nil {
		return errors.NewValidationError("metrics reporter is required")
	}
	if opts.HealthChecker == nil {
		return errors.NewValidationError("health checker is required")
	}
	if opts.Logger == nil {
		return errors.NewValidationError("logger is required")
	}
	return nil
}

// setupRoutes configures all HTTP routes
func (s *HTTPServerAdapter) setupRoutes() {
	api := s.router.Group("/api")
	{
		api.GET("/dashboard", s.getDashboard)
		api.GET("/search", s.searchLocations)
		api.GET("/condition", s.getCondition)
		api.GET("/convert", s.convertTemperature)
		api.GET("/unit", s.getUnit)
		api.POST("/unit/toggle", s.toggleUnit)
		api.GET("/config", s.getClientConfig)
		api.GET("/health", s.getHealth)
		api.GET("/metrics", s.getMetrics)
	}

	s.router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})))
}

// GetRouter returns the router for testing purposes
func (s *HTTPServerAdapter) GetRouter() *gin.Engine {
	return s.router
}

// NewHTTPServer wraps the router with the server timeouts used in production
func (s *HTTPServerAdapter) NewHTTPServer() *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}
