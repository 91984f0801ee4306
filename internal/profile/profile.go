package profile

import (
	"context"
	"sync"

	"github.com/runfinder/route-recommender/internal/catalog"
)

// DistanceRange is a preferred running distance band in kilometers.
type DistanceRange struct {
	MinKm float64 `json:"minKm"`
	MaxKm float64 `json:"maxKm"`
}

// MidpointKm returns the center of the range.
func (r DistanceRange) MidpointKm() float64 {
	return (r.MinKm + r.MaxKm) / 2
}

// Profile holds a user's preference signals. A nil *Profile means the user
// has no preference data at all (guest), which is distinct from a present
// profile whose individual fields happen to be unset.
type Profile struct {
	PreferredDistance   *DistanceRange      `json:"preferredDistance,omitempty"`
	PreferredDifficulty *catalog.Difficulty `json:"preferredDifficulty,omitempty"`
	LikedFeatures       []string            `json:"likedFeatures,omitempty"`
	DislikedRouteIDs    []string            `json:"dislikedRouteIds,omitempty"`
}

// HasSignals reports whether any positive preference signal is present.
// Dislikes alone do not count: they are hard filters, not taste signals.
func (p *Profile) HasSignals() bool {
	if p == nil {
		return false
	}
	return p.PreferredDistance != nil || p.PreferredDifficulty != nil || len(p.LikedFeatures) > 0
}

// Dislikes reports whether the given route id is hard-excluded. Nil-safe.
func (p *Profile) Dislikes(routeID string) bool {
	if p == nil {
		return false
	}
	for _, id := range p.DislikedRouteIDs {
		if id == routeID {
			return true
		}
	}
	return false
}

// Store is the contract for loading preference profiles.
// A (nil, nil) result means the user has no stored profile.
type Store interface {
	Load(ctx context.Context, userID string) (*Profile, error)
}

// MemoryStore is a concurrency-safe in-memory profile store.
type MemoryStore struct {
	mu       sync.RWMutex
	profiles map[string]*Profile
}

// NewMemoryStore creates an empty profile store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{profiles: make(map[string]*Profile)}
}

// Save stores or replaces the profile for a user.
func (s *MemoryStore) Save(userID string, p *Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[userID] = p
}

// Load returns the stored profile for a user, or nil if none exists.
func (s *MemoryStore) Load(ctx context.Context, userID string) (*Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profiles[userID], nil
}
