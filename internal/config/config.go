// Package config provides configuration loaded from environment
// variables, shared by the CLI commands.
package config

import (
	"os"
	"strconv"
)

// Config holds all runtime settings.
type Config struct {
	// Scrape targets
	ClubURL  string
	ClubName string
	BaseURL  string

	// Output
	OutputFile string

	// Serve mode
	RESTPort           string
	WSPort             string
	RefreshHour        int
	EnableDailyRefresh bool

	// Optional Redis (snapshot cache + event streams)
	RedisURL string
}

// Load reads configuration from the environment with defaults.
func Load() Config {
	return Config{
		ClubURL:            getEnv("CLUB_URL", "https://ratingviewer.nl/lists/latest/clubs/020027"),
		ClubName:           getEnv("CLUB_NAME", "JSV SISSA"),
		BaseURL:            getEnv("BASE_URL", "https://ratingviewer.nl"),
		OutputFile:         getEnv("OUTPUT_FILE", "sissa_ratings.json"),
		RESTPort:           getEnv("REST_PORT", "8080"),
		WSPort:             getEnv("WS_PORT", "8081"),
		RefreshHour:        getEnvInt("REFRESH_HOUR", 3),
		EnableDailyRefresh: getEnv("ENABLE_DAILY_REFRESH", "true") == "true",
		RedisURL:           getEnv("REDIS_URL", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
