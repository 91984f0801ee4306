package weather

import (
	"time"
)

// Condition represents a normalized high-level weather condition.
type Condition string

const (
	ConditionUnknown Condition = "unknown"
	ConditionClear   Condition = "clear"
	ConditionCloudy  Condition = "cloudy"
	ConditionRain    Condition = "rain"
	ConditionSnow    Condition = "snow"
	ConditionStorm   Condition = "storm"
	ConditionMist    Condition = "mist"
)

// Description returns a short display label for the condition.
func (c Condition) Description() string {
	switch c {
	case ConditionClear:
		return "Clear sky"
	case ConditionCloudy:
		return "Cloudy"
	case ConditionRain:
		return "Rain"
	case ConditionSnow:
		return "Snow"
	case ConditionStorm:
		return "Thunderstorm"
	case ConditionMist:
		return "Mist"
	default:
		return "Unknown"
	}
}

// Icon returns the display token shown on the weather card.
// The recommendation engine treats it as opaque.
func (c Condition) Icon() string {
	switch c {
	case ConditionClear:
		return "☀️"
	case ConditionCloudy:
		return "⛅"
	case ConditionRain:
		return "🌧️"
	case ConditionSnow:
		return "❄️"
	case ConditionStorm:
		return "⛈️"
	case ConditionMist:
		return "🌫️"
	default:
		return "🌤️"
	}
}

// Location represents a logical place for which we track weather.
// City/Country must be provided; coordinates are optional and may be
// resolved by providers that need them.
type Location struct {
	City    string   `json:"city"`
	Country string   `json:"country"`
	Lat     *float64 `json:"lat,omitempty"`
	Lon     *float64 `json:"lon,omitempty"`
}

// Key returns a canonical string key for indexing this location in stores.
func (l Location) Key() string {
	return l.City + ":" + l.Country
}

// Snapshot is the normalized, aggregated weather view at a point in time.
// It carries exactly the attribute set the recommendation scorer consumes,
// plus the derived running advisory.
type Snapshot struct {
	Location     Location  `json:"location"`
	Timestamp    time.Time `json:"timestamp"` // always UTC
	TemperatureC float64   `json:"temperatureC"`
	HumidityPct  float64   `json:"humidityPercent"`
	WindSpeedKmh float64   `json:"windSpeedKmh"`
	Condition    Condition `json:"condition"`
	Description  string    `json:"description"`
	Icon         string    `json:"icon"`

	// Advisory is derived deterministically from the numeric fields.
	Advisory     Advisory `json:"advisory"`
	AdvisoryText string   `json:"advisoryText"`

	// Providers contributing to this snapshot.
	Providers []ProviderContribution `json:"providers,omitempty"`
}

// ProviderContribution describes data coming from a single provider used in aggregation.
type ProviderContribution struct {
	ProviderName string    `json:"provider"`
	Timestamp    time.Time `json:"timestamp"`
}
