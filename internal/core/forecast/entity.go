package forecast

import (
	"fmt"
	"strings"
	"time"

	"weatherdash.app/internal/core/units"
	"weatherdash.app/pkg/validation"
)

// HighlightHours are the hours shown in the compact 3-hour strip
var HighlightHours = []int{0, 3, 6, 9, 12, 15, 18, 21}

// Period is a named part of today's forecast with the hour it is sampled at
type Period struct {
	Name string
	Hour int
	Day  bool
}

// TodayPeriods are sampled from the first forecast day. Evening always uses the night icon.
var TodayPeriods = []Period{
	{Name: "Morning", Hour: 9, Day: true},
	{Name: "Afternoon", Hour: 15, Day: true},
	{Name: "Evening", Hour: 21, Day: false},
}

// DashboardRequest represents a request for a city's dashboard
type DashboardRequest struct {
	City string
	// Unit is optional; empty means the process-wide preference
	Unit string
}

// IsValid validates dashboard request
func (r *DashboardRequest) IsValid() error {
	city, ok := validation.TrimAndValidate(r.City)
	if !ok {
		return fmt.Errorf("city cannot be empty")
	}
	if !validation.IsValidQuery(city) {
		return fmt.Errorf("city must be at most %d printable characters", validation.MaxQueryLength)
	}
	if validation.IsNotEmpty(r.Unit) && !validation.IsValidUnit(r.Unit) {
		return fmt.Errorf("unit must be C or F")
	}
	return nil
}

// Normalize trims request fields for consistent processing
func (r *DashboardRequest) Normalize() {
	r.City = strings.TrimSpace(r.City)
	r.Unit = strings.TrimSpace(r.Unit)
}

// Location is where the dashboard was resolved to
type Location struct {
	Name       string
	Region     string
	Country    string
	TimezoneID string
	LocalTime  time.Time
}

// DisplayName returns "Name, Region, Country" skipping empty parts
func (l Location) DisplayName() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{l.Name, l.Region, l.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// Condition is a provider condition with its derived presentation
type Condition struct {
	Text     string
	Code     int
	Class    string
	Phase    string
	IconCode string
	IconURL  string
}

// Current holds current conditions in display units
type Current struct {
	Temperature  int
	FeelsLike    int
	Condition    Condition
	Humidity     float64
	WindKph      float64
	PressureMb   float64
	VisibilityKm float64
	UV           float64
	Sunrise      string
	Sunset       string
}

// HourSlot is one hourly forecast entry in display units
type HourSlot struct {
	Time         time.Time
	Label        string
	Temperature  int
	Condition    Condition
	ChanceOfRain int
}

// PeriodSlot is a named part of today (morning, afternoon, evening)
type PeriodSlot struct {
	Name        string
	Time        time.Time
	Temperature int
	Condition   Condition
}

// DaySummary is one daily forecast entry in display units
type DaySummary struct {
	Date         time.Time
	DayName      string
	ShortName    string
	MaxTemp      int
	MinTemp      int
	Condition    Condition
	ChanceOfRain int
}

// Dashboard is the fully derived view model for a city
type Dashboard struct {
	Location      Location
	Unit          units.Unit
	Current       Current
	Background    string
	BackgroundURL string
	Hourly        []HourSlot
	Highlights    []HourSlot
	Today         []PeriodSlot
	Daily         []DaySummary
	FetchedAt     time.Time
}

// UnitLabel returns "C" or "F"
func (d *Dashboard) UnitLabel() string {
	return d.Unit.Label()
}

// String returns a one-line summary of the dashboard
func (d *Dashboard) String() string {
	return fmt.Sprintf("%s: %d°%s, %s",
		d.Location.DisplayName(), d.Current.Temperature, d.Unit.Label(), d.Current.Condition.Text)
}

// hourLabel formats an hour slot label like "9:00"
func hourLabel(t time.Time) string {
	return fmt.Sprintf("%d:00", t.Hour())
}

// dayNames returns the upper-case weekday and its three-letter abbreviation
func dayNames(date time.Time) (string, string) {
	name := strings.ToUpper(date.Weekday().String())
	return name, name[:3]
}

func isHighlightHour(hour int) bool {
	for _, h := range HighlightHours {
		if h == hour {
			return true
		}
	}
	return false
}
