package recommend

import (
	"errors"

	"github.com/runfinder/route-recommender/internal/catalog"
)

var (
	// ErrInvalidRequest is returned for a malformed request (count < 1 or an
	// unknown time-of-day bucket), before any upstream read is attempted.
	ErrInvalidRequest = errors.New("invalid recommendation request")
)

// Type labels why a route was suggested.
type Type string

const (
	TypePerfectMatch Type = "perfect_match"
	TypePopular      Type = "popular"
	TypeChallenge    Type = "challenge"
	TypeExploration  Type = "exploration"
	TypeSafeNight    Type = "safe_night"
	TypeGeneral      Type = "general"
)

// TypeInfo is the display label and badge style for a recommendation type.
type TypeInfo struct {
	Label string `json:"label"`
	Badge string `json:"badge"`
}

// Info returns the display record for the type. The switch enumerates every
// defined type so a new category without a label is caught in review; unknown
// values fall back to the general style like any other display code would.
func (t Type) Info() TypeInfo {
	switch t {
	case TypePerfectMatch:
		return TypeInfo{Label: "Perfect match", Badge: "green"}
	case TypePopular:
		return TypeInfo{Label: "Popular route", Badge: "blue"}
	case TypeChallenge:
		return TypeInfo{Label: "Challenge", Badge: "red"}
	case TypeExploration:
		return TypeInfo{Label: "Explore somewhere new", Badge: "purple"}
	case TypeSafeNight:
		return TypeInfo{Label: "Safe night run", Badge: "indigo"}
	case TypeGeneral:
		return TypeInfo{Label: "Recommended", Badge: "gray"}
	default:
		return TypeInfo{Label: "Recommended", Badge: "gray"}
	}
}

// Recommendation is the engine's output for a single route. It is built fresh
// per request and never cached or persisted.
type Recommendation struct {
	Route      catalog.Route `json:"route"`
	Type       Type          `json:"recommendationType"`
	Confidence float64       `json:"confidenceScore"`
	Reason     string        `json:"reason,omitempty"`
}
