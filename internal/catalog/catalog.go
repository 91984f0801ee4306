package catalog

import (
	"context"
	"errors"
	"strings"
	"sync"
)

var (
	// ErrUnavailable is returned when the backing route store cannot be reached.
	ErrUnavailable = errors.New("route catalog unavailable")
)

// Difficulty is the ordinal difficulty of a route, from easy (1) to expert (4).
type Difficulty int

const (
	DifficultyEasy Difficulty = iota + 1
	DifficultyModerate
	DifficultyHard
	DifficultyExpert
)

func (d Difficulty) String() string {
	switch d {
	case DifficultyEasy:
		return "easy"
	case DifficultyModerate:
		return "moderate"
	case DifficultyHard:
		return "hard"
	case DifficultyExpert:
		return "expert"
	default:
		return "unknown"
	}
}

// Route is a static catalog entry describing a running route.
type Route struct {
	ID                   string     `json:"id" validate:"required"`
	Name                 string     `json:"name" validate:"required"`
	Description          string     `json:"description"`
	DistanceKm           float64    `json:"distanceKm" validate:"gt=0"`
	EstimatedDurationMin int        `json:"estimatedDurationMin" validate:"gt=0"`
	Difficulty           Difficulty `json:"difficultyLevel" validate:"min=1,max=4"`
	AvgRating            float64    `json:"avgRating" validate:"gte=0,lte=5"`
	TotalRatings         int        `json:"totalRatings" validate:"gte=0"`

	// Features are short tag strings ("scenic", "well-lit", "flat").
	// Matching is case-insensitive; presentation order is preserved.
	Features []string `json:"features,omitempty"`

	Disabled bool `json:"disabled,omitempty"`
	Archived bool `json:"archived,omitempty"`
}

// HasFeature reports whether the route carries any of the given tags.
func (r Route) HasFeature(tags ...string) bool {
	for _, f := range r.Features {
		for _, t := range tags {
			if strings.EqualFold(strings.TrimSpace(f), t) {
				return true
			}
		}
	}
	return false
}

// Catalog is the contract the recommendation engine reads routes through.
type Catalog interface {
	// ListEligible returns all routes open for recommendation.
	// Order is not guaranteed.
	ListEligible(ctx context.Context) ([]Route, error)
}

// MemoryCatalog is a concurrency-safe in-memory route catalog.
type MemoryCatalog struct {
	mu     sync.RWMutex
	routes []Route
}

// NewMemoryCatalog creates a catalog seeded with the given routes.
func NewMemoryCatalog(routes []Route) *MemoryCatalog {
	c := &MemoryCatalog{}
	c.routes = append(c.routes, routes...)
	return c
}

// Add appends a route to the catalog.
func (c *MemoryCatalog) Add(r Route) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.routes = append(c.routes, r)
}

// ListEligible returns routes that are neither disabled nor archived.
func (c *MemoryCatalog) ListEligible(ctx context.Context) ([]Route, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	eligible := make([]Route, 0, len(c.routes))
	for _, r := range c.routes {
		if r.Disabled || r.Archived {
			continue
		}
		eligible = append(eligible, r)
	}
	return eligible, nil
}
