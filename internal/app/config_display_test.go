package app

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"weatherdash.app/internal/config"
)

func TestConfigDisplayer_PrintConfigMasksSecrets(t *testing.T) {
	var buf bytes.Buffer
	cfg := testConfig("https://api.weatherapi.com/v1")
	cfg.Weather.APIKey = "abcdefghijklmnop"
	cfg.Cache = config.CacheConfig{Type: config.CacheTypeRedis, Redis: config.RedisConfig{Addr: "redis:6379", Password: "hunter22"}}

	NewConfigDisplayer(&buf).PrintConfig(cfg)

	out := buf.String()
	assert.Contains(t, out, "API Key: abcd************")
	assert.NotContains(t, out, "abcdefghijklmnop")
	assert.Contains(t, out, "Redis Password: hu******")
	assert.Contains(t, out, "Default Unit: C")
	assert.Contains(t, out, "Debounce: 300ms")
}

func TestConfigDisplayer_PrintAllEnvVars(t *testing.T) {
	t.Setenv("WEATHER_API_KEY", "secret-value")
	t.Setenv("WEATHERDASH_TEST_PLAIN", "visible")

	var buf bytes.Buffer
	NewConfigDisplayer(&buf).PrintAllEnvVars()

	out := buf.String()
	assert.Contains(t, out, "WEATHERDASH_TEST_PLAIN=visible")
	assert.NotContains(t, out, "secret-value")
}

func TestConfigDisplayer_MaskString(t *testing.T) {
	cd := NewConfigDisplayer(&bytes.Buffer{})
	assert.Equal(t, "****", cd.maskString(""))
	assert.Equal(t, "****", cd.maskString("abcd"))
	assert.Equal(t, "a****", cd.maskString("abcde"))
	assert.True(t, cd.isSensitive("redis_password"))
	assert.False(t, cd.isSensitive("SERVER_PORT"))
}
