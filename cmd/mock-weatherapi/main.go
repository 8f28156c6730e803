// Command mock-weatherapi serves a deterministic subset of the WeatherAPI.com
// forecast and search endpoints for local development.
package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

type city struct {
	Name     string
	Region   string
	Country  string
	Lat      float64
	Lon      float64
	TZ       string
	BaseTemp float64
	Codes    []int
}

var cities = []city{
	{Name: "London", Region: "City of London, Greater London", Country: "United Kingdom", Lat: 51.52, Lon: -0.11, TZ: "Europe/London", BaseTemp: 13, Codes: []int{1003, 1183, 1009, 1030}},
	{Name: "Paris", Region: "Ile-de-France", Country: "France", Lat: 48.87, Lon: 2.33, TZ: "Europe/Paris", BaseTemp: 16, Codes: []int{1000, 1000, 1003, 1063}},
	{Name: "Berlin", Region: "Berlin", Country: "Germany", Lat: 52.52, Lon: 13.4, TZ: "Europe/Berlin", BaseTemp: 10, Codes: []int{1009, 1006, 1189, 1009}},
	{Name: "Kyiv", Region: "Kyyivs'ka Oblast'", Country: "Ukraine", Lat: 50.43, Lon: 30.52, TZ: "Europe/Kyiv", BaseTemp: 8, Codes: []int{1006, 1213, 1009, 1000}},
	{Name: "Oslo", Region: "Oslo", Country: "Norway", Lat: 59.91, Lon: 10.75, TZ: "Europe/Oslo", BaseTemp: -2, Codes: []int{1066, 1219, 1000, 1135}},
	{Name: "San Francisco", Region: "California", Country: "United States of America", Lat: 37.78, Lon: -122.42, TZ: "America/Los_Angeles", BaseTemp: 17, Codes: []int{1135, 1003, 1000, 1273}},
	{Name: "San Diego", Region: "California", Country: "United States of America", Lat: 32.72, Lon: -117.16, TZ: "America/Los_Angeles", BaseTemp: 21, Codes: []int{1000, 1000, 1003, 1000}},
}

func apiError(c *gin.Context, status, code int, message string) {
	c.JSON(status, gin.H{"error": gin.H{"code": code, "message": message}})
}

func findCity(q string) (city, bool) {
	q = strings.ToLower(strings.TrimSpace(q))
	for _, ct := range cities {
		if strings.ToLower(ct.Name) == q {
			return ct, true
		}
	}
	return city{}, false
}

func requireKey(c *gin.Context) bool {
	if c.Query("key") == "" {
		apiError(c, http.StatusUnauthorized, 1002, "API key is invalid or not provided.")
		return false
	}
	return true
}

func forecastHandler(c *gin.Context) {
	if !requireKey(c) {
		return
	}

	q := c.Query("q")
	switch strings.ToLower(q) {
	case "":
		apiError(c, http.StatusBadRequest, 1003, "Parameter q is missing.")
		return
	case "servererror":
		apiError(c, http.StatusInternalServerError, 9999, "Internal application error.")
		return
	}

	ct, ok := findCity(q)
	if !ok {
		apiError(c, http.StatusBadRequest, 1006, "No matching location found.")
		return
	}

	days, err := strconv.Atoi(c.DefaultQuery("days", "1"))
	if err != nil || days < 1 {
		days = 1
	}
	if days > 14 {
		days = 14
	}

	loc, err := time.LoadLocation(ct.TZ)
	if err != nil {
		loc = time.UTC
	}
	now := time.Now().In(loc)
	c.JSON(http.StatusOK, buildForecast(ct, now, days))
}

func isDay(hour int) int {
	if hour >= 7 && hour < 19 {
		return 1
	}
	return 0
}

func conditionText(code int) string {
	switch code {
	case 1000:
		return "Sunny"
	case 1003:
		return "Partly cloudy"
	case 1006:
		return "Cloudy"
	case 1009:
		return "Overcast"
	case 1030:
		return "Mist"
	case 1135:
		return "Fog"
	case 1063:
		return "Patchy rain nearby"
	case 1183:
		return "Light rain"
	case 1189:
		return "Moderate rain"
	case 1066, 1213:
		return "Light snow"
	case 1219:
		return "Moderate snow"
	case 1273:
		return "Patchy light rain with thunder"
	default:
		return "Unknown"
	}
}

func buildForecast(ct city, now time.Time, days int) gin.H {
	const timeLayout = "2006-01-02 15:04"
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	temp := func(dayIndex, hour int) float64 {
		// coolest before dawn, warmest mid afternoon
		swing := float64(6 - abs(hour-15)/2)
		return ct.BaseTemp + swing - float64(dayIndex)
	}
	code := func(dayIndex, hour int) int {
		return ct.Codes[(dayIndex+hour/6)%len(ct.Codes)]
	}

	forecastDays := make([]gin.H, 0, days)
	for d := 0; d < days; d++ {
		date := midnight.AddDate(0, 0, d)

		hours := make([]gin.H, 0, 24)
		maxT, minT := temp(d, 0), temp(d, 0)
		for h := 0; h < 24; h++ {
			t := temp(d, h)
			if t > maxT {
				maxT = t
			}
			if t < minT {
				minT = t
			}
			hours = append(hours, gin.H{
				"time":           date.Add(time.Duration(h) * time.Hour).Format(timeLayout),
				"temp_c":         t,
				"is_day":         isDay(h),
				"condition":      gin.H{"text": conditionText(code(d, h)), "code": code(d, h)},
				"chance_of_rain": (h * 7 * (d + 1)) % 100,
			})
		}

		forecastDays = append(forecastDays, gin.H{
			"date": date.Format("2006-01-02"),
			"day": gin.H{
				"maxtemp_c":            maxT,
				"mintemp_c":            minT,
				"daily_chance_of_rain": (d * 30) % 100,
				"condition":            gin.H{"text": conditionText(code(d, 12)), "code": code(d, 12)},
			},
			"astro": gin.H{"sunrise": "07:00 AM", "sunset": "07:00 PM"},
			"hour":  hours,
		})
	}

	currentCode := code(0, now.Hour())
	return gin.H{
		"location": gin.H{
			"name":      ct.Name,
			"region":    ct.Region,
			"country":   ct.Country,
			"lat":       ct.Lat,
			"lon":       ct.Lon,
			"tz_id":     ct.TZ,
			"localtime": now.Format(timeLayout),
		},
		"current": gin.H{
			"last_updated": now.Truncate(15 * time.Minute).Format(timeLayout),
			"temp_c":       temp(0, now.Hour()),
			"feelslike_c":  temp(0, now.Hour()) - 1.5,
			"is_day":       isDay(now.Hour()),
			"condition":    gin.H{"text": conditionText(currentCode), "code": currentCode},
			"humidity":     70,
			"wind_kph":     12.2,
			"pressure_mb":  1014,
			"vis_km":       10,
			"uv":           3,
		},
		"forecast": gin.H{"forecastday": forecastDays},
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func searchHandler(c *gin.Context) {
	if !requireKey(c) {
		return
	}

	q := strings.ToLower(strings.TrimSpace(c.Query("q")))
	if q == "" {
		apiError(c, http.StatusBadRequest, 1003, "Parameter q is missing.")
		return
	}

	results := make([]gin.H, 0)
	for i, ct := range cities {
		if strings.Contains(strings.ToLower(ct.Name), q) {
			results = append(results, gin.H{
				"id":      1000 + i,
				"name":    ct.Name,
				"region":  ct.Region,
				"country": ct.Country,
				"lat":     ct.Lat,
				"lon":     ct.Lon,
				"url":     strings.ToLower(strings.ReplaceAll(ct.Name, " ", "-")),
			})
		}
	}
	c.JSON(http.StatusOK, results)
}

func newRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/forecast.json", forecastHandler)
	r.GET("/search.json", searchHandler)
	return r
}

func main() {
	gin.SetMode(gin.ReleaseMode)

	port := os.Getenv("MOCK_WEATHERAPI_PORT")
	if port == "" {
		port = "8081"
	}

	slog.Info("Mock WeatherAPI server starting", "port", port)
	if err := newRouter().Run(fmt.Sprintf(":%s", port)); err != nil {
		slog.Error("Failed to start server", "error", err)
		os.Exit(1)
	}
}
