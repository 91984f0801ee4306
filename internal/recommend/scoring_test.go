package recommend

import (
	"testing"

	"github.com/runfinder/route-recommender/internal/catalog"
	"github.com/runfinder/route-recommender/internal/profile"
	"github.com/runfinder/route-recommender/internal/weather"
)

func testRoute(id string, features ...string) catalog.Route {
	return catalog.Route{
		ID:                   id,
		Name:                 "route " + id,
		DistanceKm:           8,
		EstimatedDurationMin: 50,
		Difficulty:           catalog.DifficultyModerate,
		AvgRating:            4.0,
		TotalRatings:         40,
		Features:             features,
	}
}

func snapshotWithAdvisory(adv weather.Advisory) weather.Snapshot {
	return weather.Snapshot{Advisory: adv, AdvisoryText: adv.Text()}
}

// TestConfidenceBounds checks that the combination formula cannot leave [0,1]
// for any mix of tags, advisories, profiles and rating counts.
func TestConfidenceBounds(t *testing.T) {
	routes := []catalog.Route{
		testRoute("r1"),
		testRoute("r2", "shaded", "scenic"),
		testRoute("r3", "exposed"),
		testRoute("r4", "well-lit", "flat"),
	}
	routes[0].AvgRating, routes[0].TotalRatings = 5.0, 0
	routes[2].AvgRating, routes[2].TotalRatings = 5.0, 500

	hard := catalog.DifficultyHard
	profiles := []*profile.Profile{
		nil,
		{},
		{
			PreferredDistance:   &profile.DistanceRange{MinKm: 3, MaxKm: 5},
			PreferredDifficulty: &hard,
			LikedFeatures:       []string{"scenic", "trail"},
		},
	}

	advisories := []weather.Advisory{
		weather.AdvisoryGood, weather.AdvisoryHeat, weather.AdvisoryCold,
		weather.AdvisoryWind, weather.AdvisoryHumidity,
	}
	buckets := []TimeOfDay{Morning, Afternoon, Evening, Night}

	for _, r := range routes {
		for _, p := range profiles {
			for _, adv := range advisories {
				for _, tod := range buckets {
					rec := ScoreRoute(r, snapshotWithAdvisory(adv), tod, p)
					if rec.Confidence < 0 || rec.Confidence > 1 {
						t.Fatalf("confidence %v out of bounds for route %s (adv=%s tod=%s)",
							rec.Confidence, r.ID, adv, tod)
					}
				}
			}
		}
	}
}

// TestPopularityDamping verifies that a lucky average from a tiny sample
// scores strictly lower than a solid average from a large one.
func TestPopularityDamping(t *testing.T) {
	lucky := testRoute("lucky")
	lucky.AvgRating, lucky.TotalRatings = 5.0, 1

	solid := testRoute("solid")
	solid.AvgRating, solid.TotalRatings = 4.5, 50

	if popularityScore(lucky) >= popularityScore(solid) {
		t.Fatalf("expected damped popularity %v < %v",
			popularityScore(lucky), popularityScore(solid))
	}
}

// TestShadedBeatsExposedInHeat reproduces the reference scenario: in hot and
// humid weather a shaded route must outrank a marginally better-rated but
// fully exposed one.
func TestShadedBeatsExposedInHeat(t *testing.T) {
	snap := weather.Snapshot{
		TemperatureC: 34,
		HumidityPct:  90,
		WindSpeedKmh: 5,
	}
	snap.Advisory = weather.DeriveAdvisory(snap.TemperatureC, snap.WindSpeedKmh, snap.HumidityPct)
	if snap.Advisory != weather.AdvisoryHeat {
		t.Fatalf("expected heat advisory, got %s", snap.Advisory)
	}

	shaded := testRoute("shaded", "shaded", "covered")
	shaded.AvgRating, shaded.TotalRatings = 4.8, 40

	exposed := testRoute("exposed", "exposed")
	exposed.AvgRating, exposed.TotalRatings = 4.9, 40

	shadedRec := ScoreRoute(shaded, snap, Afternoon, nil)
	exposedRec := ScoreRoute(exposed, snap, Afternoon, nil)

	if shadedRec.Confidence <= exposedRec.Confidence {
		t.Fatalf("expected shaded route (%v) to outrank exposed route (%v)",
			shadedRec.Confidence, exposedRec.Confidence)
	}
}

func TestGuestPreferenceFitIsNeutral(t *testing.T) {
	r := testRoute("r1", "scenic")

	if got := preferenceFit(r, nil); got != 1.0 {
		t.Fatalf("guest preferenceFit = %v, want 1.0", got)
	}

	// A profile carrying only dislikes has no taste signal either.
	p := &profile.Profile{DislikedRouteIDs: []string{"other"}}
	if got := preferenceFit(r, p); got != 1.0 {
		t.Fatalf("dislikes-only preferenceFit = %v, want 1.0", got)
	}
}

func TestFeatureOverlap(t *testing.T) {
	// Two tags shared out of four distinct: Jaccard 2/4.
	features := []string{"scenic", "shaded", "flat"}
	liked := []string{"Scenic", " SHADED ", "trail"}

	if got := featureOverlap(features, liked); got != 0.5 {
		t.Fatalf("featureOverlap = %v, want 0.5", got)
	}

	if got := featureOverlap([]string{"flat"}, []string{"hilly"}); got != 0 {
		t.Fatalf("disjoint overlap = %v, want 0", got)
	}

	if got := featureOverlap(nil, nil); got != 0 {
		t.Fatalf("empty overlap = %v, want 0", got)
	}
}

func TestCategoryAssignment(t *testing.T) {
	mismatch := &profile.Profile{
		PreferredDistance:   &profile.DistanceRange{MinKm: 4, MaxKm: 6},
		PreferredDifficulty: func() *catalog.Difficulty { d := catalog.DifficultyEasy; return &d }(),
		LikedFeatures:       []string{"trail"},
	}

	t.Run("perfect match", func(t *testing.T) {
		r := testRoute("pm", "shaded")
		r.AvgRating, r.TotalRatings = 4.9, 40
		rec := ScoreRoute(r, snapshotWithAdvisory(weather.AdvisoryHeat), Afternoon, nil)
		if rec.Type != TypePerfectMatch {
			t.Fatalf("got %s (confidence %v), want perfect_match", rec.Type, rec.Confidence)
		}
	})

	t.Run("safe night", func(t *testing.T) {
		r := testRoute("sn", "well-lit")
		r.AvgRating, r.TotalRatings = 3.0, 10
		rec := ScoreRoute(r, snapshotWithAdvisory(weather.AdvisoryGood), Night, nil)
		if rec.Type != TypeSafeNight {
			t.Fatalf("got %s (confidence %v), want safe_night", rec.Type, rec.Confidence)
		}
	})

	t.Run("popular when not tailored", func(t *testing.T) {
		r := testRoute("pop")
		r.DistanceKm = 15
		r.Difficulty = catalog.DifficultyHard
		r.AvgRating, r.TotalRatings = 4.5, 100
		rec := ScoreRoute(r, snapshotWithAdvisory(weather.AdvisoryGood), Afternoon, mismatch)
		if rec.Type != TypePopular {
			t.Fatalf("got %s, want popular", rec.Type)
		}
	})

	t.Run("challenge for tailored hard route", func(t *testing.T) {
		expert := catalog.DifficultyExpert
		p := &profile.Profile{
			PreferredDistance:   &profile.DistanceRange{MinKm: 8, MaxKm: 12},
			PreferredDifficulty: &expert,
			LikedFeatures:       []string{"trail"},
		}
		r := testRoute("ch", "hilly", "trail")
		r.DistanceKm = 10
		r.Difficulty = catalog.DifficultyExpert
		rec := ScoreRoute(r, snapshotWithAdvisory(weather.AdvisoryGood), Morning, p)
		if rec.Type != TypeChallenge {
			t.Fatalf("got %s, want challenge", rec.Type)
		}
	})

	t.Run("exploration for novel conditions-appropriate route", func(t *testing.T) {
		r := testRoute("ex")
		r.DistanceKm = 15
		r.Difficulty = catalog.DifficultyHard
		r.AvgRating, r.TotalRatings = 3.0, 40
		rec := ScoreRoute(r, snapshotWithAdvisory(weather.AdvisoryGood), Morning, mismatch)
		if rec.Type != TypeExploration {
			t.Fatalf("got %s, want exploration", rec.Type)
		}
	})

	t.Run("general fallback", func(t *testing.T) {
		p := &profile.Profile{
			PreferredDistance: &profile.DistanceRange{MinKm: 8, MaxKm: 12},
		}
		r := testRoute("gen")
		r.DistanceKm = 16
		r.AvgRating, r.TotalRatings = 2.0, 40
		rec := ScoreRoute(r, snapshotWithAdvisory(weather.AdvisoryGood), Morning, p)
		if rec.Type != TypeGeneral {
			t.Fatalf("got %s, want general", rec.Type)
		}
	})
}

func TestReasonNamesDominantFactor(t *testing.T) {
	r := testRoute("r1")
	r.AvgRating, r.TotalRatings = 5.0, 0 // zero popularity

	rec := ScoreRoute(r, snapshotWithAdvisory(weather.AdvisoryGood), Morning, nil)
	if rec.Reason != "closely matches your preferences" {
		t.Fatalf("expected preference-dominant reason, got %q", rec.Reason)
	}
}

func TestReasonEmptyWhenBalanced(t *testing.T) {
	p := &profile.Profile{
		PreferredDistance: &profile.DistanceRange{MinKm: 8, MaxKm: 12},
	}
	r := testRoute("r1")
	r.DistanceKm = 14                      // distance closeness 0.6
	r.AvgRating, r.TotalRatings = 2.75, 40 // popularity 0.55

	rec := ScoreRoute(r, snapshotWithAdvisory(weather.AdvisoryGood), Morning, p)
	if rec.Reason != "" {
		t.Fatalf("expected empty reason for balanced sub-scores, got %q", rec.Reason)
	}
}
