package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the application configuration, loaded from the environment.
type Config struct {
	Port      string
	JWTSecret string

	// External service base URLs.
	GeocodeURL      string
	GraphHopperURL  string
	ORSURL          string
	TripStoreURL    string
	TrackerStoreURL string

	// Local geocode cache database.
	CacheDBPath string

	// Route recomputation debounce window.
	DebounceWindow time.Duration

	// Backing-service health poll interval.
	HealthInterval time.Duration
}

// Load reads configuration from environment variables with sane defaults.
func Load() *Config {
	cfg := &Config{
		Port:            getEnv("PORT", ":8080"),
		JWTSecret:       getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		GeocodeURL:      getEnv("GEOCODE_URL", "http://localhost:5000"),
		GraphHopperURL:  getEnv("GRAPHHOPPER_URL", "http://localhost:5000"),
		ORSURL:          getEnv("ORS_URL", ""),
		TripStoreURL:    getEnv("TRIP_STORE_URL", "http://localhost:3000"),
		TrackerStoreURL: getEnv("TRACKER_STORE_URL", "http://localhost:3000"),
		CacheDBPath:     getEnv("CACHE_DB_PATH", "./data/geocode_cache.db"),
		DebounceWindow:  getDurationMS("DEBOUNCE_MS", 1000),
		HealthInterval:  getDurationMS("HEALTH_INTERVAL_MS", 30000),
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDurationMS(key string, fallbackMS int) time.Duration {
	if v := os.Getenv(key); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			return time.Duration(ms) * time.Millisecond
		}
	}
	return time.Duration(fallbackMS) * time.Millisecond
}
