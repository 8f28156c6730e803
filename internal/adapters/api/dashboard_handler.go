package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"weatherdash.app/internal/core/condition"
	"weatherdash.app/internal/core/forecast"
	"weatherdash.app/internal/core/units"
	"weatherdash.app/pkg/errors"
)

type dashboardQuery struct {
	City string `form:"city" binding:"required"`
	Unit string `form:"unit" binding:"omitempty,unit"`
}

type conditionQuery struct {
	Code  *int   `form:"code" binding:"required"`
	IsDay *int   `form:"is_day" binding:"omitempty,oneof=0 1"`
	Size  string `form:"size" binding:"omitempty,oneof=1x 2x 4x"`
}

type convertQuery struct {
	TempC *float64 `form:"temp_c" binding:"required,finite"`
	Unit  string   `form:"unit" binding:"omitempty,unit"`
}

// ConditionResponse is a classified condition with its icon
type ConditionResponse struct {
	Code     int    `json:"code"`
	Text     string `json:"text,omitempty"`
	Class    string `json:"class"`
	Phase    string `json:"phase"`
	IconCode string `json:"icon_code"`
	IconURL  string `json:"icon_url"`
}

// LocationResponse describes the resolved place
type LocationResponse struct {
	Name        string `json:"name"`
	Region      string `json:"region"`
	Country     string `json:"country"`
	DisplayName string `json:"display_name"`
	Timezone    string `json:"timezone"`
	LocalTime   string `json:"local_time"`
}

// CurrentResponse holds the current conditions in the requested unit
type CurrentResponse struct {
	Temperature  int               `json:"temperature"`
	FeelsLike    int               `json:"feels_like"`
	Condition    ConditionResponse `json:"condition"`
	Humidity     float64           `json:"humidity"`
	WindKph      float64           `json:"wind_kph"`
	PressureMb   float64           `json:"pressure_mb"`
	VisibilityKm float64           `json:"visibility_km"`
	UV           float64           `json:"uv"`
	Sunrise      string            `json:"sunrise"`
	Sunset       string            `json:"sunset"`
}

// HourResponse is one hourly slot
type HourResponse struct {
	Time         string            `json:"time"`
	Label        string            `json:"label"`
	Temperature  int               `json:"temperature"`
	Condition    ConditionResponse `json:"condition"`
	ChanceOfRain int               `json:"chance_of_rain"`
}

// PeriodResponse is one of today's morning/afternoon/evening slots
type PeriodResponse struct {
	Name        string            `json:"name"`
	Time        string            `json:"time"`
	Temperature int               `json:"temperature"`
	Condition   ConditionResponse `json:"condition"`
}

// DayResponse summarises one forecast day
type DayResponse struct {
	Date         string            `json:"date"`
	DayName      string            `json:"day_name"`
	ShortName    string            `json:"short_name"`
	MaxTemp      int               `json:"max_temp"`
	MinTemp      int               `json:"min_temp"`
	Condition    ConditionResponse `json:"condition"`
	ChanceOfRain int               `json:"chance_of_rain"`
}

// DashboardResponse represents the HTTP response for the dashboard
type DashboardResponse struct {
	Location      LocationResponse `json:"location"`
	Unit          string           `json:"unit"`
	Current       CurrentResponse  `json:"current"`
	Background    string           `json:"background"`
	BackgroundURL string           `json:"background_url"`
	Hourly        []HourResponse   `json:"hourly"`
	Highlights    []HourResponse   `json:"highlights"`
	Today         []PeriodResponse `json:"today"`
	Daily         []DayResponse    `json:"daily"`
	FetchedAt     string           `json:"fetched_at"`
}

// AssetResponse is the full classification of a single code
type AssetResponse struct {
	ConditionResponse
	Recognized    bool   `json:"recognized"`
	Background    string `json:"background"`
	BackgroundURL string `json:"background_url"`
}

// ConvertResponse is a single converted temperature
type ConvertResponse struct {
	TempC   float64 `json:"temp_c"`
	Unit    string  `json:"unit"`
	Value   int     `json:"value"`
	Display string  `json:"display"`
}

// UnitResponse reports the process-wide unit
type UnitResponse struct {
	Unit   string `json:"unit"`
	Symbol string `json:"symbol"`
}

const (
	timeLayout = "2006-01-02 15:04"
	dateLayout = "2006-01-02"
)

// getDashboard handles GET /api/dashboard requests
func (s *HTTPServerAdapter) getDashboard(c *gin.Context) {
	var query dashboardQuery
	if err := bindQuery(c, &query); err != nil {
		s.handleError(c, err)
		return
	}

	slog.Debug("Getting dashboard for city", "city", query.City, "unit", query.Unit)

	dashboard, err := s.dashboardUseCase.GetDashboard(c.Request.Context(), forecast.DashboardRequest{
		City: query.City,
		Unit: query.Unit,
	})
	if err != nil {
		slog.Error("Dashboard use case error", "error", err, "city", query.City)
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toDashboardResponse(dashboard))
}

// getCondition handles GET /api/condition requests
func (s *HTTPServerAdapter) getCondition(c *gin.Context) {
	var query conditionQuery
	if err := bindQuery(c, &query); err != nil {
		s.handleError(c, err)
		return
	}

	phase := condition.Day
	if query.IsDay != nil {
		phase = condition.PhaseFromIsDay(*query.IsDay)
	}

	described, asset := s.dashboardUseCase.DescribeCondition(*query.Code, phase, query.Size)
	c.JSON(http.StatusOK, AssetResponse{
		ConditionResponse: toConditionResponse(described),
		Recognized:        asset.Recognized,
		Background:        string(asset.Background),
		BackgroundURL:     asset.BackgroundURL(),
	})
}

// convertTemperature handles GET /api/convert requests
func (s *HTTPServerAdapter) convertTemperature(c *gin.Context) {
	var query convertQuery
	if err := bindQuery(c, &query); err != nil {
		s.handleError(c, err)
		return
	}

	unit := s.dashboardUseCase.CurrentUnit()
	if query.Unit != "" {
		parsed, err := units.ParseUnit(query.Unit)
		if err != nil {
			s.handleError(c, errors.NewValidationError("unit must be C or F"))
			return
		}
		unit = parsed
	}

	value := s.dashboardUseCase.Convert(*query.TempC, unit)
	c.JSON(http.StatusOK, ConvertResponse{
		TempC:   *query.TempC,
		Unit:    unit.Label(),
		Value:   value,
		Display: formatTemperature(value, unit),
	})
}

// getUnit handles GET /api/unit requests
func (s *HTTPServerAdapter) getUnit(c *gin.Context) {
	c.JSON(http.StatusOK, toUnitResponse(s.dashboardUseCase.CurrentUnit()))
}

// toggleUnit handles POST /api/unit/toggle requests
func (s *HTTPServerAdapter) toggleUnit(c *gin.Context) {
	c.JSON(http.StatusOK, toUnitResponse(s.dashboardUseCase.ToggleUnit()))
}

func toUnitResponse(unit units.Unit) UnitResponse {
	return UnitResponse{Unit: unit.Label(), Symbol: "°" + unit.Label()}
}

func formatTemperature(value int, unit units.Unit) string {
	return fmt.Sprintf("%d°%s", value, unit.Label())
}

func toConditionResponse(c forecast.Condition) ConditionResponse {
	return ConditionResponse{
		Code:     c.Code,
		Text:     c.Text,
		Class:    c.Class,
		Phase:    c.Phase,
		IconCode: c.IconCode,
		IconURL:  c.IconURL,
	}
}

func toHourResponses(slots []forecast.HourSlot) []HourResponse {
	out := make([]HourResponse, 0, len(slots))
	for _, slot := range slots {
		out = append(out, HourResponse{
			Time:         slot.Time.Format(timeLayout),
			Label:        slot.Label,
			Temperature:  slot.Temperature,
			Condition:    toConditionResponse(slot.Condition),
			ChanceOfRain: slot.ChanceOfRain,
		})
	}
	return out
}

func toDashboardResponse(d *forecast.Dashboard) DashboardResponse {
	today := make([]PeriodResponse, 0, len(d.Today))
	for _, p := range d.Today {
		today = append(today, PeriodResponse{
			Name:        p.Name,
			Time:        p.Time.Format(timeLayout),
			Temperature: p.Temperature,
			Condition:   toConditionResponse(p.Condition),
		})
	}

	daily := make([]DayResponse, 0, len(d.Daily))
	for _, day := range d.Daily {
		daily = append(daily, DayResponse{
			Date:         day.Date.Format(dateLayout),
			DayName:      day.DayName,
			ShortName:    day.ShortName,
			MaxTemp:      day.MaxTemp,
			MinTemp:      day.MinTemp,
			Condition:    toConditionResponse(day.Condition),
			ChanceOfRain: day.ChanceOfRain,
		})
	}

	return DashboardResponse{
		Location: LocationResponse{
			Name:        d.Location.Name,
			Region:      d.Location.Region,
			Country:     d.Location.Country,
			DisplayName: d.Location.DisplayName(),
			Timezone:    d.Location.TimezoneID,
			LocalTime:   d.Location.LocalTime.Format(timeLayout),
		},
		Unit: d.UnitLabel(),
		Current: CurrentResponse{
			Temperature:  d.Current.Temperature,
			FeelsLike:    d.Current.FeelsLike,
			Condition:    toConditionResponse(d.Current.Condition),
			Humidity:     d.Current.Humidity,
			WindKph:      d.Current.WindKph,
			PressureMb:   d.Current.PressureMb,
			VisibilityKm: d.Current.VisibilityKm,
			UV:           d.Current.UV,
			Sunrise:      d.Current.Sunrise,
			Sunset:       d.Current.Sunset,
		},
		Background:    d.Background,
		BackgroundURL: d.BackgroundURL,
		Hourly:        toHourResponses(d.Hourly),
		Highlights:    toHourResponses(d.Highlights),
		Today:         today,
		Daily:         daily,
		FetchedAt:     d.FetchedAt.UTC().Format(time.RFC3339),
	}
}
