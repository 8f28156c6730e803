package forecast

import (
	"context"
	"fmt"

	"weatherdash.app/internal/core/condition"
	"weatherdash.app/internal/core/units"
	"weatherdash.app/internal/ports"
	"weatherdash.app/pkg/errors"
)

type UseCase struct {
	provider   ports.ForecastProvider
	config     ports.ConfigProvider
	logger     ports.Logger
	metrics    ports.MetricsCollector
	preference *units.Preference
}

type UseCaseDependencies struct {
	Provider   ports.ForecastProvider
	Config     ports.ConfigProvider
	Logger     ports.Logger
	Metrics    ports.MetricsCollector
	Preference *units.Preference
}

func NewUseCase(deps UseCaseDependencies) (*UseCase, error) {
	if deps.Provider == nil {
		return nil, errors.NewValidationError("forecast provider is required")
	}
	if deps.Config == nil {
		return nil, errors.NewValidationError("config is required")
	}
	if deps.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}
	if deps.Metrics == nil {
		return nil, errors.NewValidationError("metrics is required")
	}
	if deps.Preference == nil {
		return nil, errors.NewValidationError("unit preference is required")
	}

	return &UseCase{
		provider:   deps.Provider,
		config:     deps.Config,
		logger:     deps.Logger,
		metrics:    deps.Metrics,
		preference: deps.Preference,
	}, nil
}

// GetDashboard fetches the forecast for a city and derives the dashboard view model.
// Nothing is kept between calls: every successful call replaces what the client shows.
func (uc *UseCase) GetDashboard(ctx context.Context, request DashboardRequest) (*Dashboard, error) {
	if err := request.IsValid(); err != nil {
		return nil, errors.NewValidationError("invalid dashboard request: " + err.Error())
	}
	request.Normalize()

	unit, err := uc.resolveUnit(request.Unit)
	if err != nil {
		return nil, err
	}

	uc.logger.Debug("Getting dashboard for city",
		ports.F("city", request.City),
		ports.F("unit", unit.Label()))

	days := uc.config.GetForecastConfig().Days
	data, err := uc.provider.GetForecast(ctx, request.City, days)
	if err != nil {
		uc.logger.Error("Failed to get forecast",
			ports.F("city", request.City),
			ports.F("error", err))
		if errors.IsNotFoundError(err) || errors.IsValidationError(err) {
			return nil, fmt.Errorf("get forecast for city %s: %w", request.City, err)
		}
		return nil, errors.NewExternalAPIError("forecast provider failed", err)
	}
	if data == nil || len(data.Days) == 0 {
		return nil, errors.NewExternalAPIError("forecast provider returned no forecast days", nil)
	}

	dashboard := uc.build(data, unit)

	uc.logger.Debug("Dashboard built",
		ports.F("city", request.City),
		ports.F("location", dashboard.Location.DisplayName()),
		ports.F("class", dashboard.Current.Condition.Class),
		ports.F("background", dashboard.Background))
	return dashboard, nil
}

// CurrentUnit returns the process-wide unit preference
func (uc *UseCase) CurrentUnit() units.Unit {
	return uc.preference.Current()
}

// ToggleUnit flips the process-wide unit preference
func (uc *UseCase) ToggleUnit() units.Unit {
	unit := uc.preference.Toggle()
	uc.logger.Info("Temperature unit toggled", ports.F("unit", unit.Label()))
	return unit
}

// DescribeCondition classifies a single code for the given phase with icons of the given size
func (uc *UseCase) DescribeCondition(code int, phase condition.DayPhase, iconSize string) (Condition, condition.DisplayAsset) {
	asset := condition.Classify(condition.WeatherCode(code), phase)
	uc.metrics.RecordClassification(asset.Class.String(), asset.Recognized)

	display := uc.config.GetDisplayConfig()
	if iconSize == "" {
		iconSize = display.SlotIconSize
	}

	return Condition{
		Code:     code,
		Class:    asset.Class.String(),
		Phase:    phase.String(),
		IconCode: asset.IconCode,
		IconURL:  condition.IconURL(display.IconBaseURL, asset.IconCode, iconSize),
	}, asset
}

// Convert converts one Celsius reading to the display value for the unit
func (uc *UseCase) Convert(tempC float64, unit units.Unit) int {
	uc.metrics.RecordUnitConversion(unit.Label())
	return units.ToDisplay(tempC, unit)
}

func (uc *UseCase) resolveUnit(raw string) (units.Unit, error) {
	if raw == "" {
		return uc.preference.Current(), nil
	}
	unit, err := units.ParseUnit(raw)
	if err != nil {
		return units.Celsius, errors.NewValidationError(err.Error())
	}
	return unit, nil
}

func (uc *UseCase) build(data *ports.ForecastData, unit units.Unit) *Dashboard {
	display := uc.config.GetDisplayConfig()
	today := data.Days[0]

	currentCondition, asset := uc.DescribeCondition(
		data.Current.Condition.Code,
		condition.PhaseFromIsDay(data.Current.IsDay),
		display.CurrentIconSize)
	currentCondition.Text = data.Current.Condition.Text

	dashboard := &Dashboard{
		Location: Location{
			Name:       data.Location.Name,
			Region:     data.Location.Region,
			Country:    data.Location.Country,
			TimezoneID: data.Location.TimezoneID,
			LocalTime:  data.Location.LocalTime,
		},
		Unit: unit,
		Current: Current{
			Temperature:  uc.Convert(data.Current.TempC, unit),
			FeelsLike:    uc.Convert(data.Current.FeelsLikeC, unit),
			Condition:    currentCondition,
			Humidity:     data.Current.Humidity,
			WindKph:      data.Current.WindKph,
			PressureMb:   data.Current.PressureMb,
			VisibilityKm: data.Current.VisibilityKm,
			UV:           data.Current.UV,
			Sunrise:      today.Sunrise,
			Sunset:       today.Sunset,
		},
		Background:    string(asset.Background),
		BackgroundURL: asset.BackgroundURL(),
		FetchedAt:     data.FetchedAt,
	}

	for _, hour := range today.Hours {
		slot := uc.hourSlot(hour, unit)
		dashboard.Hourly = append(dashboard.Hourly, slot)
		if isHighlightHour(hour.Time.Hour()) {
			dashboard.Highlights = append(dashboard.Highlights, slot)
		}
	}

	for _, period := range TodayPeriods {
		hour, ok := findHour(today.Hours, period.Hour)
		if !ok {
			continue
		}
		phase := condition.Night
		if period.Day {
			phase = condition.Day
		}
		cond, _ := uc.DescribeCondition(hour.Condition.Code, phase, display.SlotIconSize)
		cond.Text = hour.Condition.Text
		dashboard.Today = append(dashboard.Today, PeriodSlot{
			Name:        period.Name,
			Time:        hour.Time,
			Temperature: uc.Convert(hour.TempC, unit),
			Condition:   cond,
		})
	}

	for _, day := range data.Days {
		dashboard.Daily = append(dashboard.Daily, uc.daySummary(day, unit))
	}

	return dashboard
}

func (uc *UseCase) hourSlot(hour ports.HourData, unit units.Unit) HourSlot {
	cond, _ := uc.DescribeCondition(hour.Condition.Code, condition.PhaseFromIsDay(hour.IsDay), "")
	cond.Text = hour.Condition.Text
	return HourSlot{
		Time:         hour.Time,
		Label:        hourLabel(hour.Time),
		Temperature:  uc.Convert(hour.TempC, unit),
		Condition:    cond,
		ChanceOfRain: hour.ChanceOfRain,
	}
}

// daySummary always uses the day icon for the daily forecast
func (uc *UseCase) daySummary(day ports.DayData, unit units.Unit) DaySummary {
	cond, _ := uc.DescribeCondition(day.Condition.Code, condition.Day, "")
	cond.Text = day.Condition.Text
	name, short := dayNames(day.Date)
	return DaySummary{
		Date:         day.Date,
		DayName:      name,
		ShortName:    short,
		MaxTemp:      uc.Convert(day.MaxTempC, unit),
		MinTemp:      uc.Convert(day.MinTempC, unit),
		Condition:    cond,
		ChanceOfRain: day.ChanceOfRain,
	}
}

func findHour(hours []ports.HourData, hour int) (ports.HourData, bool) {
	for _, h := range hours {
		if h.Time.Hour() == hour {
			return h, true
		}
	}
	return ports.HourData{}, false
}
