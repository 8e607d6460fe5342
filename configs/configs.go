// Package configs provides application configuration loaded from environment variables.
// All configuration is externalized via environment variables for 12-factor app compliance.
package configs

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// AppConfig holds all collector configuration.
// Load it once at startup using AppLoad().
type AppConfig struct {
	// StorePath is the path of the SQLite price store file.
	StorePath string

	// Market contains settings for the upstream published price page.
	Market MarketConfig

	// Collector contains settings for the scheduled collection run.
	Collector CollectorConfig
}

// MarketConfig holds settings for the upstream market price source.
type MarketConfig struct {
	// BaseURL is the site root the resolved workbook path is joined onto.
	BaseURL string

	// ListingURL is the page listing the currently published workbook.
	ListingURL string

	// RequestsPerSecond limits outbound requests against the site.
	RequestsPerSecond float64

	// RequestTimeoutSeconds bounds a single page or file request.
	RequestTimeoutSeconds int
}

// CollectorConfig holds settings for the daily collection schedule.
type CollectorConfig struct {
	// ScheduleHour is the hour of day (0-23) to run the daily collection.
	// Uses Asia/Tokyo timezone. Default: 7.
	ScheduleHour int
}

// AppLoad loads all collector configuration from environment variables.
// It attempts to load a .env file first (for local development).
// Call this once at application startup.
func AppLoad() *AppConfig {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	scheduleHour := getEnvInt("COLLECT_SCHEDULE_HOUR", 7)
	if scheduleHour < 0 || scheduleHour > 23 {
		scheduleHour = 7
	}

	return &AppConfig{
		StorePath: getEnv("STORE_PATH", "yasai.db"),
		Market: MarketConfig{
			BaseURL:               getEnv("MARKET_BASE_URL", "https://www.city.kofu.yamanashi.jp"),
			ListingURL:            getEnv("MARKET_LISTING_URL", "https://www.city.kofu.yamanashi.jp/shijo/shikyo/yasai.html"),
			RequestsPerSecond:     getEnvFloat("MARKET_REQUESTS_PER_SECOND", 1),
			RequestTimeoutSeconds: getEnvInt("MARKET_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Collector: CollectorConfig{
			ScheduleHour: scheduleHour,
		},
	}
}

// getEnv returns the environment variable value or a default.
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvInt returns the environment variable as int or a default.
func getEnvInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvFloat returns the environment variable as float64 or a default.
func getEnvFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}
