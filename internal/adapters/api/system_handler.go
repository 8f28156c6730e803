package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"weatherdash.app/internal/ports"
)

// HealthResponse is the aggregated health document
type HealthResponse struct {
	Status     string                        `json:"status"`
	Components map[string]ports.HealthStatus `json:"components"`
}

// getHealth handles GET /api/health requests
func (s *HTTPServerAdapter) getHealth(c *gin.Context) {
	results := s.healthChecker.CheckAll(c.Request.Context())

	status := ports.HealthStatusHealthy
	for _, component := range results {
		if component.Status == ports.HealthStatusUnhealthy {
			status = ports.HealthStatusUnhealthy
			break
		}
		if component.Status == ports.HealthStatusDegraded {
			status = ports.HealthStatusDegraded
		}
	}

	code := http.StatusOK
	if status == ports.HealthStatusUnhealthy {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, HealthResponse{Status: status, Components: results})
}

// getMetrics handles GET /api/metrics requests
func (s *HTTPServerAdapter) getMetrics(c *gin.Context) {
	slog.Debug("Metrics endpoint called")

	metrics, err := s.metricsReporter.GetMetrics(c.Request.Context())
	if err != nil {
		slog.Error("Error getting metrics", "error", err)
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, metrics)
}

// ClientConfigResponse carries the settings a dashboard client needs
type ClientConfigResponse struct {
	DefaultUnit          string `json:"default_unit"`
	CurrentUnit          string `json:"current_unit"`
	IconBaseURL          string `json:"icon_base_url"`
	CurrentIconSize      string `json:"current_icon_size"`
	SlotIconSize         string `json:"slot_icon_size"`
	ForecastDays         int    `json:"forecast_days"`
	SearchMinQueryLength int    `json:"search_min_query_length"`
	SearchDebounceMs     int64  `json:"search_debounce_ms"`
}

// getClientConfig handles GET /api/config requests
func (s *HTTPServerAdapter) getClientConfig(c *gin.Context) {
	display := s.configProvider.GetDisplayConfig()
	searchConfig := s.configProvider.GetSearchConfig()

	c.JSON(http.StatusOK, ClientConfigResponse{
		DefaultUnit:          display.DefaultUnit,
		CurrentUnit:          s.dashboardUseCase.CurrentUnit().Label(),
		IconBaseURL:          display.IconBaseURL,
		CurrentIconSize:      display.CurrentIconSize,
		SlotIconSize:         display.SlotIconSize,
		ForecastDays:         s.configProvider.GetForecastConfig().Days,
		SearchMinQueryLength: searchConfig.MinQueryLength,
		SearchDebounceMs:     searchConfig.DebounceDelay.Milliseconds(),
	})
}
