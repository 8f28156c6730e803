package ports

import (
	"context"
	"time"
)

// LocationData describes the place a forecast was resolved to
type LocationData struct {
	Name       string
	Region     string
	Country    string
	Lat        float64
	Lon        float64
	TimezoneID string
	LocalTime  time.Time
}

// ConditionData is the provider's condition text and numeric code
type ConditionData struct {
	Text string
	Code int
}

// CurrentData represents current conditions. Temperatures are Celsius.
type CurrentData struct {
	TempC        float64
	FeelsLikeC   float64
	IsDay        int
	Condition    ConditionData
	Humidity     float64
	WindKph      float64
	PressureMb   float64
	VisibilityKm float64
	UV           float64
	LastUpdated  time.Time
}

// HourData is one hourly forecast entry
type HourData struct {
	Time         time.Time
	TempC        float64
	IsDay        int
	Condition    ConditionData
	ChanceOfRain int
}

// DayData is one daily forecast entry with its hours
type DayData struct {
	Date         time.Time
	MaxTempC     float64
	MinTempC     float64
	Condition    ConditionData
	ChanceOfRain int
	Sunrise      string
	Sunset       string
	Hours        []HourData
}

// ForecastData bundles location, current conditions and forecast days
type ForecastData struct {
	Location  LocationData
	Current   CurrentData
	Days      []DayData
	FetchedAt time.Time
}

// LocationSuggestionData is one match returned by a location search
type LocationSuggestionData struct {
	ID      int64
	Name    string
	Region  string
	Country string
	Lat     float64
	Lon     float64
}

// CacheStats represents cache performance metrics
type CacheStats struct {
	Hits        int64
	Misses      int64
	TotalOps    int64
	HitRatio    float64
	LastUpdated time.Time
}

// ForecastProvider defines the contract for forecast data providers
type ForecastProvider interface {
	GetForecast(ctx context.Context, city string, days int) (*ForecastData, error)
	GetProviderName() string
}

// LocationSearcher defines the contract for city autocomplete lookups
type LocationSearcher interface {
	SearchLocations(ctx context.Context, query string) ([]LocationSuggestionData, error)
}

// WeatherProvider is a provider that serves both forecasts and location search
type WeatherProvider interface {
	ForecastProvider
	LocationSearcher
}

// LocationCache defines the contract for caching location suggestions
type LocationCache interface {
	Get(ctx context.Context, key string) ([]LocationSuggestionData, error)
	Set(ctx context.Context, key string, locations []LocationSuggestionData, ttl time.Duration) error
}
