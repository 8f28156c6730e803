package infrastructure

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"weatherdash.app/internal/config"
	"weatherdash.app/internal/core/units"
	"weatherdash.app/internal/ports"
)

func TestConfigProviderAdapter(t *testing.T) {
	cfg := &config.Config{
		Server:  config.ServerConfig{Port: 9090},
		Weather: config.WeatherConfig{ForecastDays: 5},
		Search: config.SearchConfig{
			MinQueryLength:  2,
			EnableCache:     true,
			CacheTTLMinutes: 15,
			Debounce:        250 * time.Millisecond,
		},
		Cache: config.CacheConfig{
			Type:  config.CacheTypeRedis,
			Redis: config.RedisConfig{Addr: "redis:6379", DB: 2, DialTimeout: 5, ReadTimeout: 3, WriteTimeout: 3},
		},
		Display: config.DisplayConfig{
			DefaultUnit:     units.Fahrenheit,
			IconBaseURL:     "https://icons.example.com/wn",
			CurrentIconSize: "4x",
			SlotIconSize:    "2x",
		},
		AppBaseURL: "https://weather.example.com",
	}

	provider := NewConfigProviderAdapter(cfg)

	assert.Equal(t, ports.ForecastConfig{Days: 5}, provider.GetForecastConfig())
	assert.Equal(t, ports.SearchConfig{
		MinQueryLength: 2,
		EnableCache:    true,
		CacheTTL:       15 * time.Minute,
		DebounceDelay:  250 * time.Millisecond,
	}, provider.GetSearchConfig())
	assert.Equal(t, ports.DisplayConfig{
		DefaultUnit:     "F",
		IconBaseURL:     "https://icons.example.com/wn",
		CurrentIconSize: "4x",
		SlotIconSize:    "2x",
	}, provider.GetDisplayConfig())
	assert.Equal(t, "https://weather.example.com", provider.GetAppConfig().BaseURL)
	assert.Equal(t, 9090, provider.GetServerConfig().Port)

	cacheConfig := provider.GetCacheConfig()
	assert.Equal(t, "redis", cacheConfig.Type)
	assert.Equal(t, "redis:6379", cacheConfig.Redis.Addr)
	assert.Equal(t, 2, cacheConfig.Redis.DB)
}
