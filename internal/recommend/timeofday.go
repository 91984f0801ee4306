package recommend

import "fmt"

// TimeOfDay buckets the local wall-clock hour into the four ranges the
// scorer distinguishes.
type TimeOfDay string

const (
	Morning   TimeOfDay = "morning"   // [5, 12)
	Afternoon TimeOfDay = "afternoon" // [12, 17)
	Evening   TimeOfDay = "evening"   // [17, 21)
	Night     TimeOfDay = "night"     // [21, 5)
)

// TimeOfDayFromHour maps a local hour (0-23) to its bucket.
func TimeOfDayFromHour(hour int) TimeOfDay {
	switch {
	case hour >= 5 && hour < 12:
		return Morning
	case hour >= 12 && hour < 17:
		return Afternoon
	case hour >= 17 && hour < 21:
		return Evening
	default:
		return Night
	}
}

// ParseTimeOfDay validates a client-supplied bucket name.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t := TimeOfDay(s)
	if !t.Valid() {
		return "", fmt.Errorf("%w: unknown time of day %q", ErrInvalidRequest, s)
	}
	return t, nil
}

// Valid reports whether t is one of the four defined buckets.
func (t TimeOfDay) Valid() bool {
	switch t {
	case Morning, Afternoon, Evening, Night:
		return true
	default:
		return false
	}
}
