package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"weatherdash.app/internal/core/units"
	"weatherdash.app/pkg/errors"
)

const (
	maxRedisDB         = 15
	maxCacheTTLMinutes = 1440
	maxPortNumber      = 65535
	maxForecastDays    = 14
	maxDebounce        = 5 * time.Second
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "warning": true, "error": true,
}

// Config represents the application configuration structure
type Config struct {
	Server     ServerConfig  `split_words:"true"`
	Weather    WeatherConfig `split_words:"true"`
	Search     SearchConfig  `split_words:"true"`
	Cache      CacheConfig   `split_words:"true"`
	Display    DisplayConfig `split_words:"true"`
	LogLevel   string        `envconfig:"LOG_LEVEL" default:"info"`
	AppBaseURL string        `envconfig:"APP_URL" default:"http://localhost:8080"`
}

type ServerConfig struct {
	Port int `envconfig:"SERVER_PORT" default:"8080"`
}

type WeatherConfig struct {
	APIKey         string `envconfig:"WEATHER_API_KEY"`
	BaseURL        string `envconfig:"WEATHER_API_BASE_URL" default:"https://api.weatherapi.com/v1"`
	ForecastDays   int    `envconfig:"WEATHER_FORECAST_DAYS" default:"3"`
	TimeoutSeconds int    `envconfig:"WEATHER_TIMEOUT_SECONDS" default:"10"`
	EnableLogging  bool   `envconfig:"WEATHER_ENABLE_LOGGING" default:"true"`
	LogFilePath    string `envconfig:"WEATHER_LOG_FILE_PATH" default:"logs/weather_provider.log"`
}

// Timeout returns the HTTP client timeout for provider calls
func (w WeatherConfig) Timeout() time.Duration {
	return time.Duration(w.TimeoutSeconds) * time.Second
}

type SearchConfig struct {
	MinQueryLength  int           `envconfig:"SEARCH_MIN_QUERY_LENGTH" default:"3"`
	EnableCache     bool          `envconfig:"SEARCH_ENABLE_CACHE" default:"true"`
	CacheTTLMinutes int           `envconfig:"SEARCH_CACHE_TTL_MINUTES" default:"60"`
	Debounce        time.Duration `envconfig:"SEARCH_DEBOUNCE" default:"300ms"`
}

// CacheTTL returns the suggestion cache TTL
func (s SearchConfig) CacheTTL() time.Duration {
	return time.Duration(s.CacheTTLMinutes) * time.Minute
}

// CacheType represents the type of cache to use
type CacheType int

const (
	CacheTypeUnknown CacheType = iota
	CacheTypeMemory
	CacheTypeRedis
)

// String returns the string representation of cache type
func (c CacheType) String() string {
	switch c {
	case CacheTypeMemory:
		return "memory"
	case CacheTypeRedis:
		return "redis"
	default:
		return "unknown"
	}
}

// IsValid checks if the cache type is valid
func (c CacheType) IsValid() bool {
	return c == CacheTypeMemory || c == CacheTypeRedis
}

// CacheTypeFromString converts string to CacheType enum
func CacheTypeFromString(s string) CacheType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "memory":
		return CacheTypeMemory
	case "redis":
		return CacheTypeRedis
	default:
		return CacheTypeUnknown
	}
}

// UnmarshalText implements encoding.TextUnmarshaler for envconfig
func (c *CacheType) UnmarshalText(text []byte) error {
	*c = CacheTypeFromString(string(text))
	return nil
}

// MarshalText implements encoding.TextMarshaler
func (c CacheType) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

type CacheConfig struct {
	Type  CacheType   `envconfig:"CACHE_TYPE" default:"memory"`
	Redis RedisConfig `split_words:"true"`
}

type RedisConfig struct {
	Addr         string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password     string `envconfig:"REDIS_PASSWORD" default:""`
	DB           int    `envconfig:"REDIS_DB" default:"0"`
	DialTimeout  int    `envconfig:"REDIS_DIAL_TIMEOUT" default:"5"`
	ReadTimeout  int    `envconfig:"REDIS_READ_TIMEOUT" default:"3"`
	WriteTimeout int    `envconfig:"REDIS_WRITE_TIMEOUT" default:"3"`
}

type DisplayConfig struct {
	DefaultUnit     units.Unit `envconfig:"DISPLAY_DEFAULT_UNIT" default:"C"`
	IconBaseURL     string     `envconfig:"DISPLAY_ICON_BASE_URL" default:"https://openweathermap.org/img/wn"`
	CurrentIconSize string     `envconfig:"DISPLAY_CURRENT_ICON_SIZE" default:"4x"`
	SlotIconSize    string     `envconfig:"DISPLAY_SLOT_ICON_SIZE" default:"2x"`
}

func LoadConfig() (*Config, error) {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, errors.NewConfigurationError("error processing config", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Weather.Validate(); err != nil {
		return err
	}
	if err := c.Search.Validate(); err != nil {
		return err
	}
	if err := c.Cache.Validate(); err != nil {
		return err
	}
	if err := c.Display.Validate(); err != nil {
		return err
	}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return errors.NewConfigurationError("LOG_LEVEL must be one of: debug, info, warn, error", nil)
	}
	if err := c.validateAppBaseURL(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateAppBaseURL() error {
	if c.AppBaseURL == "" {
		return errors.NewConfigurationError("APP_URL cannot be empty", nil)
	}
	if !isHTTPURL(c.AppBaseURL) {
		return errors.NewConfigurationError("APP_URL must start with http:// or https://", nil)
	}
	return nil
}

func (s *ServerConfig) Validate() error {
	if s.Port < 1 || s.Port > maxPortNumber {
		return errors.NewConfigurationError("SERVER_PORT must be between 1 and 65535", nil)
	}
	return nil
}

func (w *WeatherConfig) Validate() error {
	if w.APIKey == "" {
		return errors.NewConfigurationError("WEATHER_API_KEY must be configured", nil)
	}
	if w.BaseURL == "" {
		return errors.NewConfigurationError("WEATHER_API_BASE_URL cannot be empty", nil)
	}
	if !isHTTPURL(w.BaseURL) {
		return errors.NewConfigurationError("WEATHER_API_BASE_URL must start with http:// or https://", nil)
	}
	if w.ForecastDays < 1 || w.ForecastDays > maxForecastDays {
		return errors.NewConfigurationError(
			fmt.Sprintf("WEATHER_FORECAST_DAYS must be between 1 and %d", maxForecastDays), nil)
	}
	if w.TimeoutSeconds < 1 {
		return errors.NewConfigurationError("WEATHER_TIMEOUT_SECONDS must be at least 1 second", nil)
	}
	if w.EnableLogging && w.LogFilePath == "" {
		return errors.NewConfigurationError("WEATHER_LOG_FILE_PATH cannot be empty when logging is enabled", nil)
	}
	return nil
}

func (s *SearchConfig) Validate() error {
	if s.MinQueryLength < 1 {
		return errors.NewConfigurationError("SEARCH_MIN_QUERY_LENGTH must be at least 1", nil)
	}
	if s.CacheTTLMinutes < 1 || s.CacheTTLMinutes > maxCacheTTLMinutes {
		return errors.NewConfigurationError("SEARCH_CACHE_TTL_MINUTES must be between 1 and 1440 minutes", nil)
	}
	if s.Debounce < 0 || s.Debounce > maxDebounce {
		return errors.NewConfigurationError("SEARCH_DEBOUNCE must be between 0 and 5s", nil)
	}
	return nil
}

func (c *CacheConfig) Validate() error {
	if !c.Type.IsValid() {
		return errors.NewConfigurationError("CACHE_TYPE must be one of: memory, redis", nil)
	}

	if c.Type == CacheTypeRedis {
		return c.Redis.Validate()
	}

	return nil
}

func (r *RedisConfig) Validate() error {
	if r.Addr == "" {
		return errors.NewConfigurationError("REDIS_ADDR cannot be empty when using Redis cache", nil)
	}
	if r.DB < 0 || r.DB > maxRedisDB {
		return errors.NewConfigurationError("REDIS_DB must be between 0 and 15", nil)
	}
	if r.DialTimeout < 1 {
		return errors.NewConfigurationError("REDIS_DIAL_TIMEOUT must be at least 1 second", nil)
	}
	if r.ReadTimeout < 1 {
		return errors.NewConfigurationError("REDIS_READ_TIMEOUT must be at least 1 second", nil)
	}
	if r.WriteTimeout < 1 {
		return errors.NewConfigurationError("REDIS_WRITE_TIMEOUT must be at least 1 second", nil)
	}
	return nil
}

func (d *DisplayConfig) Validate() error {
	if d.IconBaseURL == "" || !isHTTPURL(d.IconBaseURL) {
		return errors.NewConfigurationError("DISPLAY_ICON_BASE_URL must start with http:// or https://", nil)
	}
	if d.CurrentIconSize == "" || d.SlotIconSize == "" {
		return errors.NewConfigurationError("DISPLAY icon sizes cannot be empty", nil)
	}
	return nil
}

func isHTTPURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
