package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/runfinder/route-recommender/internal/weather"
)

type AppConfig struct {
	OpenWeatherAPIKey string
	WeatherAPIKey     string
	GeocoderAPIKey    string

	// FetchInterval controls how often we refresh weather for each location.
	FetchInterval time.Duration

	// HTTPTimeout bounds outbound provider calls.
	HTTPTimeout time.Duration

	// Locations to keep weather warm for.
	Locations []weather.Location

	// In-memory weather store retention.
	StoreMaxHistory int           // max number of snapshots per location (0 = unlimited)
	StoreMaxAge     time.Duration // max age of snapshots (0 = unlimited)

	// CatalogPath is the JSON seed file for the route catalog.
	CatalogPath string

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.OpenWeatherAPIKey = os.Getenv("OPENWEATHER_API_KEY")
	cfg.WeatherAPIKey = os.Getenv("WEATHERAPI_API_KEY")
	cfg.GeocoderAPIKey = os.Getenv("GEOCODER_API_KEY")

	// Refresh interval: default 15 minutes.
	intervalStr := getenvDefault("FETCH_INTERVAL", "15m")
	interval, err := time.ParseDuration(intervalStr)
	if err != nil {
		return nil, fmt.Errorf("invalid FETCH_INTERVAL: %w", err)
	}
	cfg.FetchInterval = interval

	timeoutStr := getenvDefault("HTTP_TIMEOUT", "10s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	// Store retention.
	cfg.StoreMaxHistory = getenvInt("STORE_MAX_HISTORY", 96) // roughly 24h at 15-minute intervals

	maxAgeStr := getenvDefault("STORE_MAX_AGE", "24h")
	maxAge, err := time.ParseDuration(maxAgeStr)
	if err != nil {
		return nil, fmt.Errorf("invalid STORE_MAX_AGE: %w", err)
	}
	cfg.StoreMaxAge = maxAge

	cfg.CatalogPath = getenvDefault("CATALOG_PATH", "routes.json")
	cfg.Port = getenvDefault("PORT", "8080")

	locs, err := loadLocations()
	if err != nil {
		return nil, err
	}
	cfg.Locations = locs

	return cfg, nil
}

func loadLocations() ([]weather.Location, error) {
	city := os.Getenv("WEATHER_LOCATION_CITY")
	country := os.Getenv("WEATHER_LOCATION_COUNTRY")
	if city == "" && country == "" {
		return nil, nil
	}

	cities := strings.Split(city, ",")
	countries := strings.Split(country, ",")
	if len(cities) != len(countries) {
		return nil, fmt.Errorf("number of cities and countries must be the same")
	}
	var locs []weather.Location
	for i := range cities {
		locs = append(locs, weather.Location{
			City:    strings.TrimSpace(cities[i]),
			Country: strings.TrimSpace(countries[i]),
		})
	}

	return locs, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}
