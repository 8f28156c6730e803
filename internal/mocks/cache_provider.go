package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// CacheProvider is a mock type for the ports.CacheProvider interface
type CacheProvider struct {
	mock.Mock
}

func (m *CacheProvider) Get(ctx context.Context, key string) ([]byte, error) {
	ret := m.Called(ctx, key)

	var data []byte
	if v := ret.Get(0); v != nil {
		data = v.([]byte)
	}
	return data, ret.Error(1)
}

func (m *CacheProvider) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return m.Called(ctx, key, value, ttl).Error(0)
}

func (m *CacheProvider) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *CacheProvider) Exists(ctx context.Context, key string) (bool, error) {
	ret := m.Called(ctx, key)
	return ret.Bool(0), ret.Error(1)
}

func (m *CacheProvider) Clear(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// NewCacheProvider creates a new instance of CacheProvider and asserts expectations on cleanup
func NewCacheProvider(t interface {
	mock.TestingT
	Cleanup(func())
}) *CacheProvider {
	m := &CacheProvider{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
