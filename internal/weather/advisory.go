package weather

// Advisory classifies current conditions into one running advisory.
type Advisory string

const (
	AdvisoryHeat     Advisory = "heat_caution"
	AdvisoryCold     Advisory = "cold_caution"
	AdvisoryWind     Advisory = "wind_caution"
	AdvisoryHumidity Advisory = "humidity_caution"
	AdvisoryGood     Advisory = "good_conditions"
)

// Advisory thresholds. Evaluated in priority order; first match wins.
const (
	HeatThresholdC       = 32.0
	ColdThresholdC       = 2.0
	WindThresholdKmh     = 30.0
	HumidityThresholdPct = 85.0
)

// DeriveAdvisory maps the numeric weather fields to exactly one advisory.
// It is a pure, total function: every input yields one of the five values.
func DeriveAdvisory(temperatureC, windSpeedKmh, humidityPct float64) Advisory {
	switch {
	case temperatureC >= HeatThresholdC:
		return AdvisoryHeat
	case temperatureC <= ColdThresholdC:
		return AdvisoryCold
	case windSpeedKmh >= WindThresholdKmh:
		return AdvisoryWind
	case humidityPct >= HumidityThresholdPct:
		return AdvisoryHumidity
	default:
		return AdvisoryGood
	}
}

// Text returns the human-readable running advice for the advisory.
func (a Advisory) Text() string {
	switch a {
	case AdvisoryHeat:
		return "High temperature: run early or late, hydrate well and prefer shaded routes"
	case AdvisoryCold:
		return "Near-freezing temperature: warm up thoroughly and watch for ice"
	case AdvisoryWind:
		return "Strong wind: consider sheltered routes and shorten your run"
	case AdvisoryHumidity:
		return "High humidity or rain likely: slow your pace and prefer covered routes"
	case AdvisoryGood:
		return "Great conditions for a run, enjoy!"
	default:
		return "Great conditions for a run, enjoy!"
	}
}
