package recommend

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/runfinder/route-recommender/internal/catalog"
	"github.com/runfinder/route-recommender/internal/profile"
	"github.com/runfinder/route-recommender/internal/weather"
)

// Engine generates route recommendations for the user it was bound to at
// construction. It holds no mutable state: every call is independent and
// deterministic given identical inputs.
type Engine struct {
	userID   string
	catalog  catalog.Catalog
	profiles profile.Store
}

// NewEngine binds a user for the lifetime of the engine instance.
func NewEngine(userID string, cat catalog.Catalog, profiles profile.Store) *Engine {
	return &Engine{
		userID:   userID,
		catalog:  cat,
		profiles: profiles,
	}
}

// GenerateRecommendations scores every eligible route against the supplied
// weather snapshot and time bucket and returns the top count, ordered.
//
// An empty catalog yields an empty result, not an error. A failed catalog
// read is fatal for the request (wrapped catalog.ErrUnavailable); a failed
// profile read downgrades the user to guest.
func (e *Engine) GenerateRecommendations(ctx context.Context, snap weather.Snapshot, tod TimeOfDay, count int) ([]Recommendation, error) {
	if count < 1 {
		return nil, fmt.Errorf("%w: count must be at least 1, got %d", ErrInvalidRequest, count)
	}
	if !tod.Valid() {
		return nil, fmt.Errorf("%w: unknown time of day %q", ErrInvalidRequest, tod)
	}

	// Catalog and profile reads are independent; issue them concurrently.
	var (
		wg     sync.WaitGroup
		routes []catalog.Route
		catErr error
		prof   *profile.Profile
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		routes, catErr = e.catalog.ListEligible(ctx)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		if e.profiles == nil {
			return
		}
		p, err := e.profiles.Load(ctx, e.userID)
		if err != nil {
			// Personalization is an enhancement, not a requirement.
			log.Printf("INFO: profile load failed for %s, treating as guest: %v", e.userID, err)
			return
		}
		prof = p
	}()

	wg.Wait()

	if catErr != nil {
		return nil, fmt.Errorf("list eligible routes: %w", catErr)
	}

	if len(routes) == 0 {
		return []Recommendation{}, nil
	}

	scored := make([]Recommendation, 0, len(routes))
	for _, r := range routes {
		// Hard filter, not a penalty.
		if prof.Dislikes(r.ID) {
			continue
		}
		scored = append(scored, ScoreRoute(r, snap, tod, prof))
	}

	return Select(scored, count), nil
}
