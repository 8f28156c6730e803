package forecast

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"weatherdash.app/internal/core/condition"
	"weatherdash.app/internal/core/units"
	"weatherdash.app/internal/mocks"
	"weatherdash.app/internal/ports"
	"weatherdash.app/pkg/errors"
)

const testIconBase = "https://openweathermap.org/img/wn"

type testDeps struct {
	provider *mocks.WeatherProvider
	config   *mocks.ConfigProvider
	logger   *mocks.Logger
	metrics  *mocks.MetricsCollector
	pref     *units.Preference
}

func newTestUseCase(t *testing.T) (*UseCase, testDeps) {
	t.Helper()

	deps := testDeps{
		provider: mocks.NewWeatherProvider(t),
		config:   mocks.NewConfigProvider(t),
		logger:   mocks.NewLogger(),
		metrics:  mocks.NewMetricsCollector(),
		pref:     units.NewPreference(units.Celsius),
	}
	deps.config.On("GetForecastConfig").Return(ports.ForecastConfig{Days: 3}).Maybe()
	deps.config.On("GetDisplayConfig").Return(ports.DisplayConfig{
		DefaultUnit:     "C",
		IconBaseURL:     testIconBase,
		CurrentIconSize: "4x",
		SlotIconSize:    "2x",
	}).Maybe()

	uc, err := NewUseCase(UseCaseDependencies{
		Provider:   deps.provider,
		Config:     deps.config,
		Logger:     deps.logger,
		Metrics:    deps.metrics,
		Preference: deps.pref,
	})
	require.NoError(t, err)
	return uc, deps
}

// forecastFixture returns three days starting Saturday 2026-10-17; the first
// day is sunny in daylight and rainy at night.
func forecastFixture() *ports.ForecastData {
	start := time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)

	hours := make([]ports.HourData, 0, 24)
	for h := 0; h < 24; h++ {
		isDay := 0
		code := 1195
		if h >= 6 && h < 19 {
			isDay = 1
			code = 1000
		}
		hours = append(hours, ports.HourData{
			Time:         start.Add(time.Duration(h) * time.Hour),
			TempC:        10 + float64(h)/2,
			IsDay:        isDay,
			Condition:    ports.ConditionData{Text: "Hour", Code: code},
			ChanceOfRain: h,
		})
	}

	return &ports.ForecastData{
		Location: ports.LocationData{
			Name: "London", Region: "City of London, Greater London", Country: "United Kingdom",
			TimezoneID: "Europe/London", LocalTime: start.Add(14 * time.Hour),
		},
		Current: ports.CurrentData{
			TempC: 21.3, FeelsLikeC: 20.5, IsDay: 1,
			Condition: ports.ConditionData{Text: "Sunny", Code: 1000},
			Humidity:  55, WindKph: 11.2, PressureMb: 1016, VisibilityKm: 10, UV: 4,
		},
		Days: []ports.DayData{
			{Date: start, MaxTempC: 22.6, MinTempC: 9.4, Condition: ports.ConditionData{Text: "Sunny", Code: 1000},
				Sunrise: "07:25 AM", Sunset: "06:01 PM", Hours: hours},
			{Date: start.AddDate(0, 0, 1), MaxTempC: 15, MinTempC: 8,
				Condition: ports.ConditionData{Text: "Patchy rain nearby", Code: 1063}},
			{Date: start.AddDate(0, 0, 2), MaxTempC: 3, MinTempC: -2,
				Condition: ports.ConditionData{Text: "Light snow", Code: 1213}},
		},
		FetchedAt: start.Add(14 * time.Hour),
	}
}

func TestNewUseCase_MissingDependencies(t *testing.T) {
	full := UseCaseDependencies{
		Provider:   mocks.NewWeatherProvider(t),
		Config:     mocks.NewConfigProvider(t),
		Logger:     mocks.NewLogger(),
		Metrics:    mocks.NewMetricsCollector(),
		Preference: units.NewPreference(units.Celsius),
	}

	tests := []struct {
		name   string
		mutate func(d *UseCaseDependencies)
	}{
		{"NoProvider", func(d *UseCaseDependencies) { d.Provider = nil }},
		{"NoConfig", func(d *UseCaseDependencies) { d.Config = nil }},
		{"NoLogger", func(d *UseCaseDependencies) { d.Logger = nil }},
		{"NoMetrics", func(d *UseCaseDependencies) { d.Metrics = nil }},
		{"NoPreference", func(d *UseCaseDependencies) { d.Preference = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps := full
			tt.mutate(&deps)
			uc, err := NewUseCase(deps)
			assert.Nil(t, uc)
			assert.True(t, errors.IsValidationError(err))
		})
	}
}

func TestGetDashboard_Success(t *testing.T) {
	uc, deps := newTestUseCase(t)
	deps.provider.On("GetForecast", mock.Anything, "London", 3).Return(forecastFixture(), nil)

	dashboard, err := uc.GetDashboard(context.Background(), DashboardRequest{City: "  London "})
	require.NoError(t, err)

	assert.Equal(t, "London, City of London, Greater London, United Kingdom", dashboard.Location.DisplayName())
	assert.Equal(t, units.Celsius, dashboard.Unit)
	assert.Equal(t, 21, dashboard.Current.Temperature)
	assert.Equal(t, 21, dashboard.Current.FeelsLike)
	assert.Equal(t, "Sunny", dashboard.Current.Condition.Text)
	assert.Equal(t, "01d", dashboard.Current.Condition.IconCode)
	assert.Equal(t, testIconBase+"/01d@4x.png", dashboard.Current.Condition.IconURL)
	assert.Equal(t, string(condition.BackgroundClearDay), dashboard.Background)
	assert.Equal(t, condition.BackgroundClearDay.URL(), dashboard.BackgroundURL)
	assert.Equal(t, "07:25 AM", dashboard.Current.Sunrise)
	assert.Equal(t, "06:01 PM", dashboard.Current.Sunset)

	require.Len(t, dashboard.Hourly, 24)
	assert.Equal(t, "0:00", dashboard.Hourly[0].Label)
	assert.Equal(t, "10n", dashboard.Hourly[0].Condition.IconCode)
	assert.Equal(t, testIconBase+"/10n@2x.png", dashboard.Hourly[0].Condition.IconURL)
	assert.Equal(t, "01d", dashboard.Hourly[12].Condition.IconCode)

	require.Len(t, dashboard.Highlights, len(HighlightHours))
	for i, slot := range dashboard.Highlights {
		assert.Equal(t, HighlightHours[i], slot.Time.Hour())
	}

	require.Len(t, dashboard.Daily, 3)
	assert.Equal(t, "SATURDAY", dashboard.Daily[0].DayName)
	assert.Equal(t, "SAT", dashboard.Daily[0].ShortName)
	assert.Equal(t, 23, dashboard.Daily[0].MaxTemp)
	assert.Equal(t, 9, dashboard.Daily[0].MinTemp)
	assert.Equal(t, "10d", dashboard.Daily[1].Condition.IconCode)
	assert.Equal(t, "13d", dashboard.Daily[2].Condition.IconCode)
	assert.Equal(t, -2, dashboard.Daily[2].MinTemp)
}

func TestGetDashboard_TodayPeriods(t *testing.T) {
	uc, deps := newTestUseCase(t)
	deps.provider.On("GetForecast", mock.Anything, "London", 3).Return(forecastFixture(), nil)

	dashboard, err := uc.GetDashboard(context.Background(), DashboardRequest{City: "London"})
	require.NoError(t, err)

	require.Len(t, dashboard.Today, 3)
	assert.Equal(t, "Morning", dashboard.Today[0].Name)
	assert.Equal(t, 9, dashboard.Today[0].Time.Hour())
	assert.Equal(t, "01d", dashboard.Today[0].Condition.IconCode)
	assert.Equal(t, "Afternoon", dashboard.Today[1].Name)
	assert.Equal(t, "01d", dashboard.Today[1].Condition.IconCode)
	assert.Equal(t, "Evening", dashboard.Today[2].Name)
	assert.Equal(t, "10n", dashboard.Today[2].Condition.IconCode)
	// 10 + 21/2 = 20.5 rounds away from zero
	assert.Equal(t, 21, dashboard.Today[2].Temperature)
}

func TestGetDashboard_EveningUsesNightIconEvenWhenProviderSaysDay(t *testing.T) {
	uc, deps := newTestUseCase(t)
	data := forecastFixture()
	data.Days[0].Hours[21].IsDay = 1
	data.Days[0].Hours[21].Condition.Code = 1000
	deps.provider.On("GetForecast", mock.Anything, "London", 3).Return(data, nil)

	dashboard, err := uc.GetDashboard(context.Background(), DashboardRequest{City: "London"})
	require.NoError(t, err)

	assert.Equal(t, "01n", dashboard.Today[2].Condition.IconCode)
	assert.Equal(t, "01d", dashboard.Hourly[21].Condition.IconCode)
}

func TestGetDashboard_Fahrenheit(t *testing.T) {
	uc, deps := newTestUseCase(t)
	deps.provider.On("GetForecast", mock.Anything, "London", 3).Return(forecastFixture(), nil)

	dashboard, err := uc.GetDashboard(context.Background(), DashboardRequest{City: "London", Unit: "f"})
	require.NoError(t, err)

	assert.Equal(t, units.Fahrenheit, dashboard.Unit)
	assert.Equal(t, "F", dashboard.UnitLabel())
	assert.Equal(t, 70, dashboard.Current.Temperature)
	assert.Equal(t, 28, dashboard.Daily[2].MinTemp)
	assert.Zero(t, deps.metrics.UnitConversions["C"])
	assert.Positive(t, deps.metrics.UnitConversions["F"])
}

func TestGetDashboard_UsesPreferenceWhenUnitOmitted(t *testing.T) {
	uc, deps := newTestUseCase(t)
	deps.provider.On("GetForecast", mock.Anything, "London", 3).Return(forecastFixture(), nil)

	assert.Equal(t, units.Fahrenheit, uc.ToggleUnit())
	assert.Equal(t, units.Fahrenheit, uc.CurrentUnit())

	dashboard, err := uc.GetDashboard(context.Background(), DashboardRequest{City: "London"})
	require.NoError(t, err)
	assert.Equal(t, units.Fahrenheit, dashboard.Unit)
	assert.Equal(t, 70, dashboard.Current.Temperature)
	assert.Zero(t, deps.metrics.UnitConversions["C"])
}

func TestGetDashboard_NightBackground(t *testing.T) {
	tests := []struct {
		name string
		code int
		want condition.Background
	}{
		{"ClearNight", 1000, condition.BackgroundClearNight},
		{"CloudyNight", 1006, condition.BackgroundClearNight},
		{"Rain", 1195, condition.BackgroundRain},
		{"Unknown", 4242, condition.BackgroundDefault},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, deps := newTestUseCase(t)
			data := forecastFixture()
			data.Current.IsDay = 0
			data.Current.Condition.Code = tt.code
			deps.provider.On("GetForecast", mock.Anything, "London", 3).Return(data, nil)

			dashboard, err := uc.GetDashboard(context.Background(), DashboardRequest{City: "London"})
			require.NoError(t, err)
			assert.Equal(t, string(tt.want), dashboard.Background)
		})
	}
}

func TestGetDashboard_InvalidRequest(t *testing.T) {
	tests := []struct {
		name    string
		request DashboardRequest
	}{
		{"EmptyCity", DashboardRequest{City: "   "}},
		{"ControlCharacters", DashboardRequest{City: "Lon\x00don"}},
		{"BadUnit", DashboardRequest{City: "London", Unit: "K"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, _ := newTestUseCase(t)

			dashboard, err := uc.GetDashboard(context.Background(), tt.request)
			assert.Nil(t, dashboard)
			assert.True(t, errors.IsValidationError(err))
		})
	}
}

func TestGetDashboard_ProviderErrors(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		checkType func(error) bool
	}{
		{"NotFoundKept", errors.NewNotFoundError("No matching location found."), errors.IsNotFoundError},
		{"ValidationKept", errors.NewValidationError("bad query"), errors.IsValidationError},
		{"OtherWrappedAsExternal", stderrors.New("connection refused"), errors.IsExternalAPIError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, deps := newTestUseCase(t)
			deps.provider.On("GetForecast", mock.Anything, "Atlantis", 3).Return(nil, tt.err)

			dashboard, err := uc.GetDashboard(context.Background(), DashboardRequest{City: "Atlantis"})
			assert.Nil(t, dashboard)
			require.Error(t, err)
			assert.True(t, tt.checkType(err))
			assert.NotEmpty(t, deps.logger.Messages("ERROR"))
		})
	}
}

func TestGetDashboard_EmptyForecast(t *testing.T) {
	uc, deps := newTestUseCase(t)
	data := forecastFixture()
	data.Days = nil
	deps.provider.On("GetForecast", mock.Anything, "London", 3).Return(data, nil)

	dashboard, err := uc.GetDashboard(context.Background(), DashboardRequest{City: "London"})
	assert.Nil(t, dashboard)
	assert.True(t, errors.IsExternalAPIError(err))
}

func TestGetDashboard_RecordsClassifications(t *testing.T) {
	uc, deps := newTestUseCase(t)
	data := forecastFixture()
	data.Current.Condition.Code = 9999
	deps.provider.On("GetForecast", mock.Anything, "London", 3).Return(data, nil)

	_, err := uc.GetDashboard(context.Background(), DashboardRequest{City: "London"})
	require.NoError(t, err)

	// current + 24 hours + 3 periods + 3 days
	assert.Equal(t, 31, deps.metrics.TotalClassifications())
	assert.Equal(t, 1, deps.metrics.Unrecognized)
}

func TestDescribeCondition(t *testing.T) {
	uc, _ := newTestUseCase(t)

	cond, asset := uc.DescribeCondition(1087, condition.Night, "")
	assert.Equal(t, "11n", cond.IconCode)
	assert.Equal(t, "thunder", cond.Class)
	assert.Equal(t, "night", cond.Phase)
	assert.Equal(t, testIconBase+"/11n@2x.png", cond.IconURL)
	assert.Equal(t, condition.BackgroundThunder, asset.Background)

	cond, _ = uc.DescribeCondition(1009, condition.Day, "4x")
	assert.Equal(t, testIconBase+"/04d@4x.png", cond.IconURL)
}

func TestConvert(t *testing.T) {
	uc, deps := newTestUseCase(t)

	assert.Equal(t, 212, uc.Convert(100, units.Fahrenheit))
	assert.Equal(t, -40, uc.Convert(-40, units.Celsius))
	assert.Equal(t, 1, deps.metrics.UnitConversions["F"])
	assert.Equal(t, 1, deps.metrics.UnitConversions["C"])
}
