package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/kelvins/geocoder"
	"github.com/runfinder/route-recommender/internal/weather"
	"github.com/sony/gobreaker"
)

// OpenMeteoProvider implements the weather.Provider interface for Open-Meteo.
// Open-Meteo does not require an API key, but it only accepts coordinates,
// so city/country locations are resolved through the Google geocoding API.
type OpenMeteoProvider struct {
	name    string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker

	mu     sync.Mutex
	coords map[string][2]float64 // location key -> lat, lon
}

func NewOpenMeteoProvider(client *http.Client, geocoderAPIKey string) *OpenMeteoProvider {
	geocoder.ApiKey = geocoderAPIKey

	return &OpenMeteoProvider{
		name:    "openmeteo",
		baseURL: "https://api.open-meteo.com/v1/forecast",
		httpCfg: defaultHTTPConfig(client),
		circuit: newCircuitBreaker("openmeteo"),
		coords:  make(map[string][2]float64),
	}
}

func (p *OpenMeteoProvider) Name() string {
	return p.name
}

func (p *OpenMeteoProvider) Fetch(ctx context.Context, loc weather.Location) (weather.ProviderReading, error) {
	lat, lon, err := p.resolveCoords(loc)
	if err != nil {
		return weather.ProviderReading{}, fmt.Errorf("openmeteo: resolve coordinates for %s: %w", loc.Key(), err)
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("latitude", fmt.Sprintf("%f", lat))
		values.Set("longitude", fmt.Sprintf("%f", lon))
		values.Set("current_weather", "true")

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		req, err := http.NewRequest(http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		return req, nil
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return weather.ProviderReading{}, err
	}
	defer resp.Body.Close()

	var payload struct {
		CurrentWeather struct {
			Temperature float64 `json:"temperature"`
			WindSpeed   float64 `json:"windspeed"` // km/h by default
			Time        string  `json:"time"`
			WeatherCode int     `json:"weathercode"`
		} `json:"current_weather"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.ProviderReading{}, err
	}

	ts, err := time.Parse(time.RFC3339, payload.CurrentWeather.Time)
	if err != nil {
		ts = time.Now().UTC()
	} else {
		ts = ts.UTC()
	}

	cond := mapOpenMeteoCondition(payload.CurrentWeather.WeatherCode)

	return weather.ProviderReading{
		ProviderName: p.name,
		Timestamp:    ts,
		TemperatureC: payload.CurrentWeather.Temperature,
		// Open-Meteo current_weather has no humidity; aggregation averages
		// what providers do supply.
		WindSpeedKmh: payload.CurrentWeather.WindSpeed,
		Condition:    cond,
	}, nil
}

// resolveCoords returns cached coordinates for the location, geocoding on first use.
func (p *OpenMeteoProvider) resolveCoords(loc weather.Location) (float64, float64, error) {
	if loc.Lat != nil && loc.Lon != nil {
		return *loc.Lat, *loc.Lon, nil
	}

	key := loc.Key()

	p.mu.Lock()
	defer p.mu.Unlock()

	if c, ok := p.coords[key]; ok {
		return c[0], c[1], nil
	}

	resolved, err := geocoder.Geocoding(geocoder.Address{
		City:    loc.City,
		Country: loc.Country,
	})
	if err != nil {
		return 0, 0, err
	}

	p.coords[key] = [2]float64{resolved.Latitude, resolved.Longitude}
	return resolved.Latitude, resolved.Longitude, nil
}

func mapOpenMeteoCondition(code int) weather.Condition {
	// Mapping based on Open-Meteo weather codes (simplified).
	switch {
	case code == 0:
		return weather.ConditionClear
	case code >= 1 && code <= 3:
		return weather.ConditionCloudy
	case code >= 45 && code <= 48:
		return weather.ConditionMist
	case (code >= 51 && code <= 67) || (code >= 80 && code <= 82):
		return weather.ConditionRain
	case code >= 71 && code <= 77:
		return weather.ConditionSnow
	case code >= 95:
		return weather.ConditionStorm
	default:
		return weather.ConditionUnknown
	}
}
