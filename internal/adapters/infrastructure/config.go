package infrastructure

import (
	"weatherdash.app/internal/config"
	"weatherdash.app/internal/ports"
)

// ConfigProviderAdapter implements the ConfigProvider port
type ConfigProviderAdapter struct {
	config *config.Config
}

// NewConfigProviderAdapter creates a new config provider adapter
func NewConfigProviderAdapter(cfg *config.Config) *ConfigProviderAdapter {
	return &ConfigProviderAdapter{
		config: cfg,
	}
}

// GetForecastConfig returns forecast configuration
func (c *ConfigProviderAdapter) GetForecastConfig() ports.ForecastConfig {
	return ports.ForecastConfig{
		Days: c.config.Weather.ForecastDays,
	}
}

// GetSearchConfig returns location search configuration
func (c *ConfigProviderAdapter) GetSearchConfig() ports.SearchConfig {
	return ports.SearchConfig{
		MinQueryLength: c.config.Search.MinQueryLength,
		EnableCache:    c.config.Search.EnableCache,
		CacheTTL:       c.config.Search.CacheTTL(),
		DebounceDelay:  c.config.Search.Debounce,
	}
}

// GetDisplayConfig returns presentation settings
func (c *ConfigProviderAdapter) GetDisplayConfig() ports.DisplayConfig {
	return ports.DisplayConfig{
		DefaultUnit:     c.config.Display.DefaultUnit.Label(),
		IconBaseURL:     c.config.Display.IconBaseURL,
		CurrentIconSize: c.config.Display.CurrentIconSize,
		SlotIconSize:    c.config.Display.SlotIconSize,
	}
}

// GetAppConfig returns application configuration
func (c *ConfigProviderAdapter) GetAppConfig() ports.AppConfig {
	return ports.AppConfig{
		BaseURL: c.config.AppBaseURL,
	}
}

// GetServerConfig returns server configuration
func (c *ConfigProviderAdapter) GetServerConfig() ports.ServerConfig {
	return ports.ServerConfig{
		Port: c.config.Server.Port,
	}
}

// GetCacheConfig returns cache configuration
func (c *ConfigProviderAdapter) GetCacheConfig() ports.CacheConfig {
	return ports.CacheConfig{
		Type: c.config.Cache.Type.String(),
		Redis: ports.RedisConfig{
			Addr:         c.config.Cache.Redis.Addr,
			Password:     c.config.Cache.Redis.Password,
			DB:           c.config.Cache.Redis.DB,
			DialTimeout:  c.config.Cache.Redis.DialTimeout,
			ReadTimeout:  c.config.Cache.Redis.ReadTimeout,
			WriteTimeout: c.config.Cache.Redis.WriteTimeout,
		},
	}
}

var _ ports.ConfigProvider = (*ConfigProviderAdapter)(nil)
