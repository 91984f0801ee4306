package weather

import "time"

// AggregateReadings combines multiple provider readings into a single Snapshot.
// Numeric fields are averaged; conditions are selected by majority (or first if tied).
// The derived display fields and running advisory are filled from the result.
func AggregateReadings(loc Location, readings []ProviderReading) Snapshot {
	if len(readings) == 0 {
		snap := Snapshot{
			Location:  loc,
			Timestamp: time.Now().UTC(),
			Condition: ConditionUnknown,
		}
		return finalize(snap)
	}

	var (
		sumTemp     float64
		sumHumidity float64
		sumWind     float64
	)

	conditionCounts := make(map[Condition]int)
	providers := make([]ProviderContribution, 0, len(readings))
	var newestTS time.Time

	for _, r := range readings {
		sumTemp += r.TemperatureC
		sumHumidity += r.HumidityPct
		sumWind += r.WindSpeedKmh

		conditionCounts[r.Condition]++

		if r.Timestamp.After(newestTS) {
			newestTS = r.Timestamp
		}

		providers = append(providers, ProviderContribution{
			ProviderName: r.ProviderName,
			Timestamp:    r.Timestamp,
		})
	}

	n := float64(len(readings))

	// Pick majority condition. Walking the readings in input order keeps the
	// tie-break deterministic: only a strictly higher count displaces the
	// earliest seen condition.
	bestCond := ConditionUnknown
	bestCount := 0
	for _, r := range readings {
		if count := conditionCounts[r.Condition]; count > bestCount {
			bestCount = count
			bestCond = r.Condition
		}
	}

	if newestTS.IsZero() {
		newestTS = time.Now().UTC()
	}

	snap := Snapshot{
		Location:     loc,
		Timestamp:    newestTS,
		TemperatureC: sumTemp / n,
		HumidityPct:  sumHumidity / n,
		WindSpeedKmh: sumWind / n,
		Condition:    bestCond,
		Providers:    providers,
	}
	return finalize(snap)
}

// finalize fills the fields derived from the normalized values.
func finalize(snap Snapshot) Snapshot {
	snap.Description = snap.Condition.Description()
	snap.Icon = snap.Condition.Icon()
	snap.Advisory = DeriveAdvisory(snap.TemperatureC, snap.WindSpeedKmh, snap.HumidityPct)
	snap.AdvisoryText = snap.Advisory.Text()
	return snap
}
