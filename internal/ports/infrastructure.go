package ports

import (
	"time"
)

// ForecastConfig represents forecast service configuration
type ForecastConfig struct {
	Days int
}

// SearchConfig represents location search configuration
type SearchConfig struct {
	MinQueryLength int
	EnableCache    bool
	CacheTTL       time.Duration
	DebounceDelay  time.Duration
}

// DisplayConfig represents presentation settings handed to clients
type DisplayConfig struct {
	DefaultUnit     string
	IconBaseURL     string
	CurrentIconSize string
	SlotIconSize    string
}

// AppConfig represents application configuration
type AppConfig struct {
	BaseURL string
}

// ServerConfig represents server configuration
type ServerConfig struct {
	Port int
}

// CacheConfig represents cache configuration
type CacheConfig struct {
	Type  string
	Redis RedisConfig
}

// RedisConfig represents Redis configuration
type RedisConfig struct {
	Addr         string
	Password     string
	DB           int
	DialTimeout  int
	ReadTimeout  int
	WriteTimeout int
}

// ConfigProvider defines the contract for configuration management
type ConfigProvider interface {
	GetForecastConfig() ForecastConfig
	GetSearchConfig() SearchConfig
	GetDisplayConfig() DisplayConfig
	GetAppConfig() AppConfig
	GetServerConfig() ServerConfig
	GetCacheConfig() CacheConfig
}

// Logger defines the contract for structured logging
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
}

// Field represents a log field
type Field struct {
	Key   string
	Value interface{}
}

// F creates a log field
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// MetricsCollector defines the contract for metrics collection
type MetricsCollector interface {
	RecordClassification(class string, recognized bool)
	RecordUnitConversion(unit string)
	RecordProviderRequest(endpoint string, success bool, duration time.Duration)
	RecordCacheHit(cache string)
	RecordCacheMiss(cache string)
}
