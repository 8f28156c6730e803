// Package external provides adapters for external services
// These adapters implement ports for the weather provider and the suggestion caches.
package external

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"weatherdash.app/internal/ports"
	"weatherdash.app/pkg/errors"
)

const (
	weatherAPITimeLayout = "2006-01-02 15:04"
	weatherAPIDateLayout = "2006-01-02"

	// weatherAPINoMatchingLocation is the provider error code for an unknown q parameter
	weatherAPINoMatchingLocation = 1006

	endpointForecast = "forecast"
	endpointSearch   = "search"
)

// WeatherAPIProviderAdapter implements WeatherProvider port for WeatherAPI.com
type WeatherAPIProviderAdapter struct {
	apiKey  string
	baseURL string
	client  HTTPClient
	logger  ports.Logger
	metrics ports.MetricsCollector
	now     func() time.Time
}

// WeatherAPIProviderParams holds parameters for creating WeatherAPI provider
type WeatherAPIProviderParams struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
	Logger  ports.Logger
	Metrics ports.MetricsCollector
	// Client overrides the default http.Client
	Client HTTPClient
}

// HTTPClient interface for HTTP requests (for testing)
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type weatherAPICondition struct {
	Text string `json:"text"`
	Code int    `json:"code"`
}

type weatherAPIForecastResponse struct {
	Location struct {
		Name      string  `json:"name"`
		Region    string  `json:"region"`
		Country   string  `json:"country"`
		Lat       float64 `json:"lat"`
		Lon       float64 `json:"lon"`
		TzID      string  `json:"tz_id"`
		LocalTime string  `json:"localtime"`
	} `json:"location"`
	Current struct {
		LastUpdated string              `json:"last_updated"`
		TempC       float64             `json:"temp_c"`
		FeelsLikeC  float64             `json:"feelslike_c"`
		IsDay       int                 `json:"is_day"`
		Condition   weatherAPICondition `json:"condition"`
		Humidity    float64             `json:"humidity"`
		WindKph     float64             `json:"wind_kph"`
		PressureMb  float64             `json:"pressure_mb"`
		VisKm       float64             `json:"vis_km"`
		UV          float64             `json:"uv"`
	} `json:"current"`
	Forecast struct {
		ForecastDay []struct {
			Date string `json:"date"`
			Day  struct {
				MaxTempC          float64             `json:"maxtemp_c"`
				MinTempC          float64             `json:"mintemp_c"`
				DailyChanceOfRain int                 `json:"daily_chance_of_rain"`
				Condition         weatherAPICondition `json:"condition"`
			} `json:"day"`
			Astro struct {
				Sunrise string `json:"sunrise"`
				Sunset  string `json:"sunset"`
			} `json:"astro"`
			Hour []struct {
				Time         string              `json:"time"`
				TempC        float64             `json:"temp_c"`
				IsDay        int                 `json:"is_day"`
				Condition    weatherAPICondition `json:"condition"`
				ChanceOfRain int                 `json:"chance_of_rain"`
			} `json:"hour"`
		} `json:"forecastday"`
	} `json:"forecast"`
}

type weatherAPISearchResult struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name"`
	Region  string  `json:"region"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

type weatherAPIErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// NewWeatherAPIProviderAdapter creates a new WeatherAPI provider adapter
func NewWeatherAPIProviderAdapter(params WeatherAPIProviderParams) *WeatherAPIProviderAdapter {
	client := params.Client
	if client == nil {
		timeout := params.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}

	return &WeatherAPIProviderAdapter{
		apiKey:  params.APIKey,
		baseURL: params.BaseURL,
		client:  client,
		logger:  params.Logger,
		metrics: params.Metrics,
		now:     time.Now,
	}
}

// GetForecast retrieves current conditions and a multi-day forecast from WeatherAPI.com
func (p *WeatherAPIProviderAdapter) GetForecast(ctx context.Context, city string, days int) (*ports.ForecastData, error) {
	if city == "" {
		return nil, errors.NewValidationError("city cannot be empty")
	}
	if days < 1 {
		return nil, errors.NewValidationError("forecast days must be positive")
	}

	query := url.Values{}
	query.Set("key", p.apiKey)
	query.Set("q", city)
	query.Set("days", fmt.Sprintf("%d", days))
	query.Set("aqi", "no")
	query.Set("alerts", "no")

	var apiResp weatherAPIForecastResponse
	if err := p.get(ctx, endpointForecast, "/forecast.json", query, &apiResp); err != nil {
		return nil, err
	}

	return p.toForecastData(&apiResp), nil
}

// SearchLocations returns locations matching a partial city name
func (p *WeatherAPIProviderAdapter) SearchLocations(ctx context.Context, query string) ([]ports.LocationSuggestionData, error) {
	if query == "" {
		return nil, errors.NewValidationError("search query cannot be empty")
	}

	params := url.Values{}
	params.Set("key", p.apiKey)
	params.Set("q", query)

	var results []weatherAPISearchResult
	if err := p.get(ctx, endpointSearch, "/search.json", params, &results); err != nil {
		return nil, err
	}

	locations := make([]ports.LocationSuggestionData, 0, len(results))
	for _, r := range results {
		locations = append(locations, ports.LocationSuggestionData{
			ID:      r.ID,
			Name:    r.Name,
			Region:  r.Region,
			Country: r.Country,
			Lat:     r.Lat,
			Lon:     r.Lon,
		})
	}
	return locations, nil
}

// GetProviderName returns the name of this weather provider
func (p *WeatherAPIProviderAdapter) GetProviderName() string {
	return "weatherapi"
}

// Ping checks that the provider answers; used by the health checker
func (p *WeatherAPIProviderAdapter) Ping(ctx context.Context) error {
	_, err := p.SearchLocations(ctx, "London")
	return err
}

func (p *WeatherAPIProviderAdapter) get(ctx context.Context, endpoint, path string, query url.Values, out interface{}) (err error) {
	start := time.Now()
	defer func() {
		if p.metrics != nil {
			p.metrics.RecordProviderRequest(endpoint, err == nil, time.Since(start))
		}
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return errors.NewExternalAPIError("failed to build WeatherAPI request", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return errors.NewExternalAPIError("failed to call WeatherAPI", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil && p.logger != nil {
			p.logger.Warn("Failed to close WeatherAPI response body", ports.F("error", closeErr))
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return p.decodeError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.NewExternalAPIError("failed to decode WeatherAPI response", err)
	}
	return nil
}

// decodeError maps a non-200 WeatherAPI response onto an application error.
// An unknown location comes back as HTTP 400 with error code 1006.
func (p *WeatherAPIProviderAdapter) decodeError(resp *http.Response) error {
	var apiErr weatherAPIErrorResponse
	_ = json.NewDecoder(resp.Body).Decode(&apiErr)

	message := apiErr.Error.Message
	if message == "" {
		message = fmt.Sprintf("WeatherAPI returned status %d", resp.StatusCode)
	}

	switch {
	case apiErr.Error.Code == weatherAPINoMatchingLocation, resp.StatusCode == http.StatusNotFound:
		return errors.NewNotFoundError(message)
	case resp.StatusCode == http.StatusBadRequest && apiErr.Error.Code == 0:
		return errors.NewValidationError(message)
	default:
		return errors.NewExternalAPIError(message, nil)
	}
}

func (p *WeatherAPIProviderAdapter) toForecastData(apiResp *weatherAPIForecastResponse) *ports.ForecastData {
	loc := loadLocation(apiResp.Location.TzID)

	data := &ports.ForecastData{
		Location: ports.LocationData{
			Name:       apiResp.Location.Name,
			Region:     apiResp.Location.Region,
			Country:    apiResp.Location.Country,
			Lat:        apiResp.Location.Lat,
			Lon:        apiResp.Location.Lon,
			TimezoneID: apiResp.Location.TzID,
			LocalTime:  parseInLocation(weatherAPITimeLayout, apiResp.Location.LocalTime, loc),
		},
		Current: ports.CurrentData{
			TempC:        apiResp.Current.TempC,
			FeelsLikeC:   apiResp.Current.FeelsLikeC,
			IsDay:        apiResp.Current.IsDay,
			Condition:    ports.ConditionData(apiResp.Current.Condition),
			Humidity:     apiResp.Current.Humidity,
			WindKph:      apiResp.Current.WindKph,
			PressureMb:   apiResp.Current.PressureMb,
			VisibilityKm: apiResp.Current.VisKm,
			UV:           apiResp.Current.UV,
			LastUpdated:  parseInLocation(weatherAPITimeLayout, apiResp.Current.LastUpdated, loc),
		},
		FetchedAt: p.now(),
	}

	for _, fd := range apiResp.Forecast.ForecastDay {
		day := ports.DayData{
			Date:         parseInLocation(weatherAPIDateLayout, fd.Date, loc),
			MaxTempC:     fd.Day.MaxTempC,
			MinTempC:     fd.Day.MinTempC,
			Condition:    ports.ConditionData(fd.Day.Condition),
			ChanceOfRain: fd.Day.DailyChanceOfRain,
			Sunrise:      fd.Astro.Sunrise,
			Sunset:       fd.Astro.Sunset,
		}
		for _, h := range fd.Hour {
			day.Hours = append(day.Hours, ports.HourData{
				Time:         parseInLocation(weatherAPITimeLayout, h.Time, loc),
				TempC:        h.TempC,
				IsDay:        h.IsDay,
				Condition:    ports.ConditionData(h.Condition),
				ChanceOfRain: h.ChanceOfRain,
			})
		}
		data.Days = append(data.Days, day)
	}

	return data
}

// loadLocation resolves an IANA zone, falling back to UTC so wall-clock hours are preserved
func loadLocation(tzID string) *time.Location {
	if tzID == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(tzID)
	if err != nil {
		return time.UTC
	}
	return loc
}

func parseInLocation(layout, value string, loc *time.Location) time.Time {
	if value == "" {
		return time.Time{}
	}
	t, err := time.ParseInLocation(layout, value, loc)
	if err != nil {
		return time.Time{}
	}
	return t
}
