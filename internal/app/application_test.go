package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"weatherdash.app/internal/adapters/api"
	"weatherdash.app/internal/config"
	"weatherdash.app/internal/core/units"
)

type fakeWeatherAPI struct {
	server   *httptest.Server
	searches atomic.Int32
}

func newFakeWeatherAPI(t *testing.T) *fakeWeatherAPI {
	t.Helper()

	fixture, err := os.ReadFile(filepath.Join("..", "adapters", "external", "testdata", "forecast_london.json"))
	require.NoError(t, err)

	fake := &fakeWeatherAPI{}
	mux := http.NewServeMux()
	mux.HandleFunc("/forecast.json", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("q") != "London" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":{"code":1006,"message":"No matching location found."}}`))
			return
		}
		_, _ = w.Write(fixture)
	})
	mux.HandleFunc("/search.json", func(w http.ResponseWriter, r *http.Request) {
		fake.searches.Add(1)
		_, _ = w.Write([]byte(`[{"id":2801268,"name":"London","region":"City of London, Greater London","country":"United Kingdom","lat":51.52,"lon":-0.11}]`))
	})

	fake.server = httptest.NewServer(mux)
	t.Cleanup(fake.server.Close)
	return fake
}

func testConfig(baseURL string) *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Port: 0},
		Weather: config.WeatherConfig{
			APIKey:         "test-key",
			BaseURL:        baseURL,
			ForecastDays:   3,
			TimeoutSeconds: 2,
		},
		Search: config.SearchConfig{
			MinQueryLength:  3,
			EnableCache:     true,
			CacheTTLMinutes: 60,
			Debounce:        300 * time.Millisecond,
		},
		Cache: config.CacheConfig{Type: config.CacheTypeMemory},
		Display: config.DisplayConfig{
			DefaultUnit:     units.Celsius,
			IconBaseURL:     "https://openweathermap.org/img/wn",
			CurrentIconSize: "4x",
			SlotIconSize:    "2x",
		},
		LogLevel:   "info",
		AppBaseURL: "http://localhost:8080",
	}
}

func newTestApplication(t *testing.T, cfg *config.Config) *Application {
	t.Helper()

	deps, err := NewDependencyContainer(cfg)
	require.NoError(t, err)

	application, err := NewApplicationWithDependencies(cfg, deps)
	require.NoError(t, err)
	t.Cleanup(func() { _ = deps.Cleanup() })
	return application
}

func serve(application *Application, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	application.GetRouter().ServeHTTP(w, httptest.NewRequest(method, target, nil))
	return w
}

func TestApplication_DashboardEndToEnd(t *testing.T) {
	fake := newFakeWeatherAPI(t)
	application := newTestApplication(t, testConfig(fake.server.URL))

	w := serve(application, http.MethodGet, "/api/dashboard?city=London")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var dashboard api.DashboardResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &dashboard))
	assert.Equal(t, "London, City of London, Greater London, United Kingdom", dashboard.Location.DisplayName)
	assert.Equal(t, 14, dashboard.Current.Temperature)
	assert.Equal(t, "02d", dashboard.Current.Condition.IconCode)
	assert.Equal(t, "cloudy-day", dashboard.Background)
	assert.Len(t, dashboard.Daily, 2)
	require.Len(t, dashboard.Today, 3)
	assert.Equal(t, "50n", dashboard.Today[2].Condition.IconCode)

	w = serve(application, http.MethodGet, "/api/dashboard?city=Atlantis")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = serve(application, http.MethodGet, "/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `weatherdash_provider_requests_total{endpoint="forecast",success="true"} 1`)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}

func TestApplication_SearchIsCached(t *testing.T) {
	fake := newFakeWeatherAPI(t)
	application := newTestApplication(t, testConfig(fake.server.URL))

	for i := 0; i < 3; i++ {
		w := serve(application, http.MethodGet, "/api/search?q=lon")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"label":"London, City of London, Greater London, United Kingdom"`)
	}
	assert.Equal(t, int32(1), fake.searches.Load())

	var metrics map[string]interface{}
	require.NoError(t, json.Unmarshal(serve(application, http.MethodGet, "/api/metrics").Body.Bytes(), &metrics))
	cache := metrics["cache"].(map[string]interface{})
	assert.Equal(t, "memory", cache["type"])
	assert.Equal(t, float64(2), cache["hits"])
	// one miss, two hits and the write after the miss
	assert.GreaterOrEqual(t, cache["operations"], float64(3))
}

func TestApplication_SearchCacheDisabled(t *testing.T) {
	fake := newFakeWeatherAPI(t)
	cfg := testConfig(fake.server.URL)
	cfg.Search.EnableCache = false
	application := newTestApplication(t, cfg)

	serve(application, http.MethodGet, "/api/search?q=lon")
	serve(application, http.MethodGet, "/api/search?q=lon")
	assert.Equal(t, int32(2), fake.searches.Load())
}

func TestApplication_RedisCache(t *testing.T) {
	mr := miniredis.RunT(t)
	fake := newFakeWeatherAPI(t)

	cfg := testConfig(fake.server.URL)
	cfg.Cache = config.CacheConfig{
		Type:  config.CacheTypeRedis,
		Redis: config.RedisConfig{Addr: mr.Addr(), DialTimeout: 1, ReadTimeout: 1, WriteTimeout: 1},
	}
	application := newTestApplication(t, cfg)

	serve(application, http.MethodGet, "/api/search?q=lon")
	assert.True(t, mr.Exists("weatherdash:search:lon"))

	var health api.HealthResponse
	require.NoError(t, json.Unmarshal(serve(application, http.MethodGet, "/api/health").Body.Bytes(), &health))
	assert.Equal(t, "redis", health.Components["cache"].Details["type"])
	assert.Equal(t, "healthy", health.Components["cache"].Status)
}

func TestApplication_RedisUnavailableFallsBackToMemory(t *testing.T) {
	fake := newFakeWeatherAPI(t)
	cfg := testConfig(fake.server.URL)
	cfg.Cache = config.CacheConfig{
		Type:  config.CacheTypeRedis,
		Redis: config.RedisConfig{Addr: "127.0.0.1:1", DialTimeout: 1, ReadTimeout: 1, WriteTimeout: 1},
	}

	deps, err := NewDependencyContainer(cfg)
	require.NoError(t, err)
	assert.Equal(t, config.CacheTypeMemory, deps.cacheType)
	assert.NoError(t, deps.Cleanup())
}

func TestApplication_UnitToggleIsProcessWide(t *testing.T) {
	fake := newFakeWeatherAPI(t)
	application := newTestApplication(t, testConfig(fake.server.URL))

	w := serve(application, http.MethodPost, "/api/unit/toggle")
	require.Equal(t, http.StatusOK, w.Code)

	var dashboard api.DashboardResponse
	require.NoError(t, json.Unmarshal(serve(application, http.MethodGet, "/api/dashboard?city=London").Body.Bytes(), &dashboard))
	assert.Equal(t, "F", dashboard.Unit)
	assert.Equal(t, 58, dashboard.Current.Temperature)
}

func TestApplication_FileLogging(t *testing.T) {
	fake := newFakeWeatherAPI(t)
	cfg := testConfig(fake.server.URL)
	cfg.Weather.EnableLogging = true
	cfg.Weather.LogFilePath = filepath.Join(t.TempDir(), "logs", "weather_provider.log")
	application := newTestApplication(t, cfg)

	serve(application, http.MethodGet, "/api/dashboard?city=London")
	require.NoError(t, application.deps.Cleanup())

	content, err := os.ReadFile(cfg.Weather.LogFilePath)
	require.NoError(t, err)
	assert.Contains(t, string(content), `"message":"Weather API request completed"`)
	assert.Contains(t, string(content), `"city":"London"`)
}

func TestApplication_Shutdown(t *testing.T) {
	fake := newFakeWeatherAPI(t)
	application := newTestApplication(t, testConfig(fake.server.URL))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, application.Shutdown(ctx))
}

func TestNewApplication_FromEnvironment(t *testing.T) {
	t.Run("MissingAPIKey", func(t *testing.T) {
		t.Setenv("WEATHER_API_KEY", "")

		application, err := NewApplication()
		assert.Error(t, err)
		assert.Nil(t, application)
	})

	t.Run("Valid", func(t *testing.T) {
		t.Setenv("WEATHER_API_KEY", "test-api-key")
		t.Setenv("WEATHER_LOG_FILE_PATH", filepath.Join(t.TempDir(), "provider.log"))
		t.Setenv("DISPLAY_DEFAULT_UNIT", "F")
		t.Setenv("CACHE_TYPE", "memory")

		application, err := NewApplication()
		require.NoError(t, err)
		assert.Equal(t, units.Fahrenheit, application.GetDashboardUseCase().CurrentUnit())
		assert.NotNil(t, application.GetSearchUseCase())
		assert.Equal(t, "test-api-key", application.Config().Weather.APIKey)
		assert.NoError(t, application.deps.Cleanup())
	})
}
