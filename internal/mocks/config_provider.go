package mocks

import (
	"github.com/stretchr/testify/mock"
	"weatherdash.app/internal/ports"
)

// ConfigProvider is a mock type for the ports.ConfigProvider interface
type ConfigProvider struct {
	mock.Mock
}

func (m *ConfigProvider) GetForecastConfig() ports.ForecastConfig {
	return m.Called().Get(0).(ports.ForecastConfig)
}

func (m *ConfigProvider) GetSearchConfig() ports.SearchConfig {
	return m.Called().Get(0).(ports.SearchConfig)
}

func (m *ConfigProvider) GetDisplayConfig() ports.DisplayConfig {
	return m.Called().Get(0).(ports.DisplayConfig)
}

func (m *ConfigProvider) GetAppConfig() ports.AppConfig {
	return m.Called().Get(0).(ports.AppConfig)
}

func (m *ConfigProvider) GetServerConfig() ports.ServerConfig {
	return m.Called().Get(0).(ports.ServerConfig)
}

func (m *ConfigProvider) GetCacheConfig() ports.CacheConfig {
	return m.Called().Get(0).(ports.CacheConfig)
}

// NewConfigProvider creates a new instance of ConfigProvider and asserts expectations on cleanup
func NewConfigProvider(t interface {
	mock.TestingT
	Cleanup(func())
}) *ConfigProvider {
	m := &ConfigProvider{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
