package recommend

import (
	"math"
	"strings"

	"github.com/runfinder/route-recommender/internal/catalog"
	"github.com/runfinder/route-recommender/internal/profile"
	"github.com/runfinder/route-recommender/internal/weather"
)

// Sub-score weights. They must sum to 1.0 so confidence stays in [0,1].
const (
	weatherWeight    = 0.35
	timeWeight       = 0.20
	preferenceWeight = 0.30
	popularityWeight = 0.15
)

// Category cutoffs. Tunable defaults, not contracts.
const (
	perfectMatchThreshold = 0.85
	popularThreshold      = 0.80
	tailoredThreshold     = 0.50
	noveltyThreshold      = 0.30
	conditionsOKThreshold = 0.60
	nightFitThreshold     = 0.80
)

// neutralFit is the sub-score for routes with no tags relevant to the signal.
const neutralFit = 0.6

// ratingDampingCount is the rating count at which popularity stops being
// damped: a route needs this many ratings before its average counts in full.
const ratingDampingCount = 20.0

// reasonDominanceGap is the minimum spread between the strongest and weakest
// sub-score before a reason is worth showing.
const reasonDominanceGap = 0.1

// Preference component weights, renormalized over the signals present.
const (
	distanceComponentWeight   = 0.40
	difficultyComponentWeight = 0.25
	featureComponentWeight    = 0.35
)

// subScores holds the four independent fitness signals for one route.
type subScores struct {
	weather    float64
	time       float64
	preference float64
	popularity float64

	// nightTagBonus records that the route earned the night boost from a
	// night-safety tag, which category assignment needs later.
	nightTagBonus bool
}

// ScoreRoute computes the confidence, category and reason for a single route.
// It is a pure function of its inputs.
func ScoreRoute(r catalog.Route, snap weather.Snapshot, tod TimeOfDay, p *profile.Profile) Recommendation {
	s := subScores{
		weather:    weatherFit(r, snap.Advisory),
		preference: preferenceFit(r, p),
		popularity: popularityScore(r),
	}
	s.time, s.nightTagBonus = timeFit(r, tod)

	confidence := clamp01(weatherWeight*s.weather +
		timeWeight*s.time +
		preferenceWeight*s.preference +
		popularityWeight*s.popularity)

	return Recommendation{
		Route:      r,
		Type:       classify(r, tod, s, confidence),
		Confidence: confidence,
		Reason:     dominantReason(s, tod),
	}
}

// weatherFit scores how well the route suits current conditions. Shaded or
// covered routes do better under heat and humidity cautions, sheltered routes
// under wind; exposed routes do worse in all three.
func weatherFit(r catalog.Route, adv weather.Advisory) float64 {
	switch adv {
	case weather.AdvisoryHeat, weather.AdvisoryHumidity:
		if r.HasFeature("shaded", "covered") {
			return 0.9
		}
		if r.HasFeature("exposed", "unshaded") {
			return 0.3
		}
	case weather.AdvisoryWind:
		if r.HasFeature("sheltered", "covered") {
			return 0.8
		}
		if r.HasFeature("exposed") {
			return 0.4
		}
	case weather.AdvisoryCold:
		if r.HasFeature("covered", "sheltered") {
			return 0.8
		}
	}
	return neutralFit
}

// timeFit scores the route for the current time bucket and reports whether a
// night-safety tag produced the boost.
func timeFit(r catalog.Route, tod TimeOfDay) (float64, bool) {
	switch tod {
	case Night:
		if r.HasFeature("well-lit", "safe-night") {
			return 0.9, true
		}
	case Morning, Afternoon:
		if r.HasFeature("scenic") {
			return 0.85, false
		}
	case Evening:
		if r.HasFeature("well-lit") {
			return 0.7, false
		}
	}
	return neutralFit, false
}

// preferenceFit scores the route against the user's profile. Guests (or
// profiles carrying only dislikes) score 1.0 so personalization never
// penalizes users without history. Component weights are renormalized over
// the signals actually present.
func preferenceFit(r catalog.Route, p *profile.Profile) float64 {
	if !p.HasSignals() {
		return 1.0
	}

	var weighted, total float64

	if p.PreferredDistance != nil {
		weighted += distanceComponentWeight * distanceCloseness(r.DistanceKm, *p.PreferredDistance)
		total += distanceComponentWeight
	}

	if p.PreferredDifficulty != nil {
		weighted += difficultyComponentWeight * difficultyMatch(r.Difficulty, *p.PreferredDifficulty)
		total += difficultyComponentWeight
	}

	if len(p.LikedFeatures) > 0 {
		weighted += featureComponentWeight * featureOverlap(r.Features, p.LikedFeatures)
		total += featureComponentWeight
	}

	if total == 0 {
		return 1.0
	}
	return clamp01(weighted / total)
}

// distanceCloseness decays linearly from 1.0 at the preferred midpoint.
func distanceCloseness(distanceKm float64, pref profile.DistanceRange) float64 {
	mid := pref.MidpointKm()
	if mid <= 0 {
		return neutralFit
	}
	return clamp01(1 - math.Abs(distanceKm-mid)/mid)
}

// difficultyMatch gives full credit for an exact match and half for an
// adjacent level.
func difficultyMatch(got, want catalog.Difficulty) float64 {
	switch d := int(got) - int(want); {
	case d == 0:
		return 1.0
	case d == 1 || d == -1:
		return 0.5
	default:
		return 0.0
	}
}

// normalizeTag canonicalizes a feature tag for comparison.
func normalizeTag(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// featureOverlap is the Jaccard overlap between the route's tags and the
// user's liked tags, case-insensitive.
func featureOverlap(features, liked []string) float64 {
	set := make(map[string]struct{}, len(features))
	for _, f := range features {
		set[normalizeTag(f)] = struct{}{}
	}

	likedSet := make(map[string]struct{}, len(liked))
	for _, f := range liked {
		likedSet[normalizeTag(f)] = struct{}{}
	}

	intersection := 0
	for f := range likedSet {
		if _, ok := set[f]; ok {
			intersection++
		}
	}

	union := len(set) + len(likedSet) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// popularityScore is the damped rating signal: a high average from a handful
// of ratings cannot produce a high score.
func popularityScore(r catalog.Route) float64 {
	damping := math.Min(1, float64(r.TotalRatings)/ratingDampingCount)
	return clamp01(r.AvgRating / 5 * damping)
}

// classify assigns a recommendation category. Rules are evaluated in fixed
// priority order so classification is reproducible for identical inputs.
func classify(r catalog.Route, tod TimeOfDay, s subScores, confidence float64) Type {
	switch {
	case confidence >= perfectMatchThreshold:
		return TypePerfectMatch
	case tod == Night && s.nightTagBonus && s.time >= nightFitThreshold:
		return TypeSafeNight
	case s.popularity >= popularThreshold && s.preference < tailoredThreshold:
		return TypePopular
	case r.Difficulty >= catalog.DifficultyHard && s.preference >= tailoredThreshold:
		return TypeChallenge
	case s.preference < noveltyThreshold && s.weather >= conditionsOKThreshold:
		return TypeExploration
	default:
		return TypeGeneral
	}
}

// dominantReason names the strongest sub-score, or returns "" when no single
// factor clearly dominates. Ties resolve in fixed component order.
func dominantReason(s subScores, tod TimeOfDay) string {
	components := []struct {
		score  float64
		reason string
	}{
		{s.weather, "well suited to current conditions"},
		{s.time, timeReason(tod)},
		{s.preference, "closely matches your preferences"},
		{s.popularity, "highly rated by other runners"},
	}

	best := 0
	lowest := components[0].score
	for i, c := range components {
		if c.score > components[best].score {
			best = i
		}
		if c.score < lowest {
			lowest = c.score
		}
	}

	if components[best].score-lowest <= reasonDominanceGap {
		return ""
	}
	return components[best].reason
}

func timeReason(tod TimeOfDay) string {
	if tod == Night {
		return "a safe choice for night running"
	}
	return "great for this time of day"
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
