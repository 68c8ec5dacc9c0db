package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	// OpenWeatherAPIKey authenticates every outbound provider call. It is
	// injected into the client constructor, never read from globals downstream.
	OpenWeatherAPIKey string

	// HTTPTimeout bounds each outbound provider call.
	HTTPTimeout time.Duration

	// DefaultLocation is searched at startup when the geolocation path is
	// unavailable or fails.
	DefaultLocation string

	// StartupLat/StartupLon, when both set, are reverse-geocoded at startup
	// before falling back to DefaultLocation.
	StartupLat *float64
	StartupLon *float64

	// RefreshInterval controls the periodic re-run of the last search.
	// Zero disables the refresh job.
	RefreshInterval time.Duration

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.OpenWeatherAPIKey = os.Getenv("OPENWEATHER_API_KEY")
	if cfg.OpenWeatherAPIKey == "" {
		return nil, fmt.Errorf("OPENWEATHER_API_KEY is required")
	}

	timeoutStr := getenvDefault("HTTP_TIMEOUT", "10s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	cfg.DefaultLocation = getenvDefault("DEFAULT_LOCATION", "Oslo")

	cfg.StartupLat, err = getenvFloat("STARTUP_LAT")
	if err != nil {
		return nil, err
	}
	cfg.StartupLon, err = getenvFloat("STARTUP_LON")
	if err != nil {
		return nil, err
	}

	refreshStr := getenvDefault("REFRESH_INTERVAL", "15m")
	refresh, err := time.ParseDuration(refreshStr)
	if err != nil {
		return nil, fmt.Errorf("invalid REFRESH_INTERVAL: %w", err)
	}
	cfg.RefreshInterval = refresh

	cfg.Port = getenvDefault("PORT", "8080")

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvFloat(key string) (*float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", key, err)
	}
	return &f, nil
}
