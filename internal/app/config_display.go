package app

import (
	"io"
	"log"
	"os"
	"sort"
	"strings"

	"weatherdash.app/internal/config"
)

// ConfigDisplayer handles configuration and environment variable display
type ConfigDisplayer struct {
	out *log.Logger
}

// NewConfigDisplayer creates a configuration displayer writing to w
func NewConfigDisplayer(w io.Writer) *ConfigDisplayer {
	return &ConfigDisplayer{out: log.New(w, "", 0)}
}

// PrintConfig prints all fields in the configuration with secrets masked
func (cd *ConfigDisplayer) PrintConfig(cfg *config.Config) {
	cd.out.Println("==== APPLICATION CONFIGURATION ====")

	cd.out.Printf("SERVER:\n")
	cd.out.Printf("  Port: %d\n", cfg.Server.Port)

	cd.out.Printf("\nWEATHER API:\n")
	cd.out.Printf("  API Key: %s\n", cd.maskString(cfg.Weather.APIKey))
	cd.out.Printf("  Base URL: %s\n", cfg.Weather.BaseURL)
	cd.out.Printf("  Forecast Days: %d\n", cfg.Weather.ForecastDays)
	cd.out.Printf("  Timeout: %s\n", cfg.Weather.Timeout())
	cd.out.Printf("  Logging: %t (%s)\n", cfg.Weather.EnableLogging, cfg.Weather.LogFilePath)

	cd.out.Printf("\nSEARCH:\n")
	cd.out.Printf("  Min Query Length: %d\n", cfg.Search.MinQueryLength)
	cd.out.Printf("  Cache: %t (TTL %s)\n", cfg.Search.EnableCache, cfg.Search.CacheTTL())
	cd.out.Printf("  Debounce: %s\n", cfg.Search.Debounce)

	cd.out.Printf("\nCACHE:\n")
	cd.out.Printf("  Type: %s\n", cfg.Cache.Type)
	if cfg.Cache.Type == config.CacheTypeRedis {
		cd.out.Printf("  Redis Addr: %s\n", cfg.Cache.Redis.Addr)
		cd.out.Printf("  Redis Password: %s\n", cd.maskString(cfg.Cache.Redis.Password))
		cd.out.Printf("  Redis DB: %d\n", cfg.Cache.Redis.DB)
	}

	cd.out.Printf("\nDISPLAY:\n")
	cd.out.Printf("  Default Unit: %s\n", cfg.Display.DefaultUnit.Label())
	cd.out.Printf("  Icon Base URL: %s\n", cfg.Display.IconBaseURL)
	cd.out.Printf("  Icon Sizes: current %s, slots %s\n", cfg.Display.CurrentIconSize, cfg.Display.SlotIconSize)

	cd.out.Printf("\nLOG LEVEL: %s\n", cfg.LogLevel)
	cd.out.Printf("APP BASE URL: %s\n", cfg.AppBaseURL)

	cd.out.Println("===================================")
}

// PrintAllEnvVars prints all environment variables available to the application
func (cd *ConfigDisplayer) PrintAllEnvVars() {
	cd.out.Println("==== ENVIRONMENT VARIABLES ====")

	envVars := os.Environ()
	sort.Strings(envVars)

	for _, env := range envVars {
		pair := strings.SplitN(env, "=", 2)
		if len(pair) != 2 {
			continue
		}

		key := pair[0]
		value := pair[1]

		if cd.isSensitive(key) {
			value = cd.maskString(value)
		}

		cd.out.Printf("%s=%s\n", key, value)
	}

	cd.out.Println("===============================")
}

// maskString masks sensitive information like passwords and API keys
func (cd *ConfigDisplayer) maskString(s string) string {
	if len(s) <= 4 {
		return "****"
	}
	visible := len(s) / 4
	return s[:visible] + strings.Repeat("*", len(s)-visible)
}

// isSensitive checks if an environment variable key is considered sensitive
func (cd *ConfigDisplayer) isSensitive(key string) bool {
	sensitiveKeys := []string{
		"API_KEY", "PASSWORD", "SECRET", "TOKEN", "KEY", "PASS", "PWD",
	}

	key = strings.ToUpper(key)
	for _, sensitive := range sensitiveKeys {
		if strings.Contains(key, sensitive) {
			return true
		}
	}

	return false
}
