package condition

import "fmt"

// WeatherCode is a WeatherAPI.com condition code such as 1000 (Sunny) or 1195 (Heavy rain)
type WeatherCode int

// DayPhase tells whether an observation falls in daylight
type DayPhase int

const (
	Day DayPhase = iota
	Night
)

// PhaseFromIsDay converts the provider's is_day flag (1 = day) to a DayPhase
func PhaseFromIsDay(isDay int) DayPhase {
	if isDay == 1 {
		return Day
	}
	return Night
}

// String returns the string representation of the day phase
func (p DayPhase) String() string {
	if p == Night {
		return "night"
	}
	return "day"
}

// suffix is the icon code suffix for the phase
func (p DayPhase) suffix() string {
	if p == Night {
		return "n"
	}
	return "d"
}

// Class is the semantic category a weather code belongs to
type Class int

const (
	Clear Class = iota
	PartlyCloudy
	Cloudy
	Overcast
	Fog
	RainLike
	SnowLike
	ThunderLike
)

// String returns the string representation of the class
func (c Class) String() string {
	switch c {
	case PartlyCloudy:
		return "partly_cloudy"
	case Cloudy:
		return "cloudy"
	case Overcast:
		return "overcast"
	case Fog:
		return "fog"
	case RainLike:
		return "rain"
	case SnowLike:
		return "snow"
	case ThunderLike:
		return "thunder"
	default:
		return "clear"
	}
}

// MarshalText implements encoding.TextMarshaler
func (c Class) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// IconPrefix returns the two-digit icon prefix for the class
func (c Class) IconPrefix() string {
	switch c {
	case PartlyCloudy:
		return "02"
	case Cloudy:
		return "03"
	case Overcast:
		return "04"
	case Fog:
		return "50"
	case RainLike:
		return "10"
	case SnowLike:
		return "13"
	case ThunderLike:
		return "11"
	default:
		return "01"
	}
}

// Classes lists every class in declaration order
func Classes() []Class {
	return []Class{Clear, PartlyCloudy, Cloudy, Overcast, Fog, RainLike, SnowLike, ThunderLike}
}

// Background identifies one of the fixed full-screen backdrop images
type Background string

const (
	BackgroundDefault    Background = "default"
	BackgroundClearDay   Background = "clear-day"
	BackgroundClearNight Background = "clear-night"
	BackgroundCloudyDay  Background = "cloudy-day"
	BackgroundRain       Background = "rain"
	BackgroundSnow       Background = "snow"
	BackgroundThunder    Background = "thunder"
	BackgroundFog        Background = "fog"
)

var backgroundURLs = map[Background]string{
	BackgroundDefault:    "https://images.unsplash.com/photo-1579546929518-9e396f3cc809?auto=format&fit=crop&w=2000&q=80",
	BackgroundClearDay:   "https://images.unsplash.com/photo-1601297183305-6df142704ea2?auto=format&fit=crop&w=2000&q=80",
	BackgroundClearNight: "https://images.unsplash.com/photo-1534088568595-a066f410bcda?auto=format&fit=crop&w=2000&q=80",
	BackgroundCloudyDay:  "https://images.unsplash.com/photo-1501630834273-4b5604d2ee31?auto=format&fit=crop&w=2000&q=80",
	BackgroundRain:       "https://images.unsplash.com/photo-1515694346937-94d85e41e6f0?auto=format&fit=crop&w=2000&q=80",
	BackgroundSnow:       "https://images.unsplash.com/photo-1477601374064-48d8855a065c?auto=format&fit=crop&w=2000&q=80",
	BackgroundThunder:    "https://images.unsplash.com/photo-1605727216801-e27ce1d0cc28?auto=format&fit=crop&w=2000&q=80",
	BackgroundFog:        "https://images.unsplash.com/photo-1485236715568-ddc5ee6ca227?auto=format&fit=crop&w=2000&q=80",
}

// URL returns the image URL for the background, or the default image for unknown ids
func (b Background) URL() string {
	if url, ok := backgroundURLs[b]; ok {
		return url
	}
	return backgroundURLs[BackgroundDefault]
}

// DisplayAsset is the derived presentation of a (code, phase) pair
type DisplayAsset struct {
	Code       WeatherCode
	Phase      DayPhase
	Class      Class
	Recognized bool
	Background Background
	IconCode   string
}

// BackgroundURL returns the backdrop image URL
func (a DisplayAsset) BackgroundURL() string {
	return a.Background.URL()
}

// IconURL builds an icon URL from the template {base}/{iconCode}@{size}.png
func IconURL(base, iconCode, size string) string {
	return fmt.Sprintf("%s/%s@%s.png", base, iconCode, size)
}
