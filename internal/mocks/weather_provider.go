// Package mocks holds testify-based test doubles for the ports package.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"weatherdash.app/internal/ports"
)

// WeatherProvider is a mock type for the ports.WeatherProvider interface
type WeatherProvider struct {
	mock.Mock
}

// GetForecast provides a mock function with given fields: ctx, city, days
func (m *WeatherProvider) GetForecast(ctx context.Context, city string, days int) (*ports.ForecastData, error) {
	ret := m.Called(ctx, city, days)

	var data *ports.ForecastData
	if v := ret.Get(0); v != nil {
		data = v.(*ports.ForecastData)
	}
	return data, ret.Error(1)
}

// SearchLocations provides a mock function with given fields: ctx, query
func (m *WeatherProvider) SearchLocations(ctx context.Context, query string) ([]ports.LocationSuggestionData, error) {
	ret := m.Called(ctx, query)

	var data []ports.LocationSuggestionData
	if v := ret.Get(0); v != nil {
		data = v.([]ports.LocationSuggestionData)
	}
	return data, ret.Error(1)
}

// GetProviderName provides a mock function with no fields
func (m *WeatherProvider) GetProviderName() string {
	ret := m.Called()
	return ret.String(0)
}

// NewWeatherProvider creates a new instance of WeatherProvider and asserts expectations on cleanup
func NewWeatherProvider(t interface {
	mock.TestingT
	Cleanup(func())
}) *WeatherProvider {
	m := &WeatherProvider{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

// LocationCache is a mock type for the ports.LocationCache interface
type LocationCache struct {
	mock.Mock
}

// Get provides a mock function with given fields: ctx, key
func (m *LocationCache) Get(ctx context.Context, key string) ([]ports.LocationSuggestionData, error) {
	ret := m.Called(ctx, key)

	var data []ports.LocationSuggestionData
	if v := ret.Get(0); v != nil {
		data = v.([]ports.LocationSuggestionData)
	}
	return data, ret.Error(1)
}

// Set provides a mock function with given fields: ctx, key, locations, ttl
func (m *LocationCache) Set(ctx context.Context, key string, locations []ports.LocationSuggestionData, ttl time.Duration) error {
	ret := m.Called(ctx, key, locations, ttl)
	return ret.Error(0)
}

// NewLocationCache creates a new instance of LocationCache and asserts expectations on cleanup
func NewLocationCache(t interface {
	mock.TestingT
	Cleanup(func())
}) *LocationCache {
	m := &LocationCache{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
