package weather

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"
)

// ErrUnavailable is returned when no provider could supply current conditions
// and no previously stored snapshot exists for the location.
var ErrUnavailable = errors.New("weather data unavailable")

// Service orchestrates fetching from multiple providers and persisting snapshots.
type Service struct {
	store     Store
	providers []Provider
}

// NewService creates a new Service.
func NewService(store Store, providers []Provider) *Service {
	return &Service{
		store:     store,
		providers: providers,
	}
}

// FetchAndStore fetches data from all providers concurrently for the given location,
// aggregates successful readings, and stores a snapshot.
func (s *Service) FetchAndStore(ctx context.Context, loc Location) error {
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		readings []ProviderReading
	)

	if len(s.providers) == 0 {
		log.Printf("ERROR: no providers available to fetch weather data for %s", loc.Key())
		return fmt.Errorf("no weather providers configured")
	}

	for _, p := range s.providers {
		p := p
		wg.Add(1)
		go func() {
			defer wg.Done()

			r, err := p.Fetch(ctx, loc)
			if err != nil {
				// Log and continue; we want partial success when possible.
				log.Printf("provider %s fetch failed for %s: %v", p.Name(), loc.Key(), err)
				return
			}

			mu.Lock()
			readings = append(readings, r)
			mu.Unlock()
		}()
	}

	wg.Wait()

	if len(readings) == 0 {
		// No providers succeeded; do not overwrite last good snapshot.
		log.Printf("no successful provider readings for %s; keeping last good snapshot if any", loc.Key())
		return nil
	}

	snapshot := AggregateReadings(loc, readings)
	if snapshot.Timestamp.IsZero() {
		snapshot.Timestamp = time.Now().UTC()
	}
	s.store.SaveSnapshot(loc, snapshot)
	return nil
}

// Current returns the latest stored snapshot for the location, fetching on
// demand when nothing is stored yet. Callers use this to resolve conditions
// before asking the recommendation engine for routes.
func (s *Service) Current(ctx context.Context, loc Location) (Snapshot, error) {
	snap, err := s.store.GetLatest(loc)
	if err == nil {
		return snap, nil
	}

	if err := s.FetchAndStore(ctx, loc); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	snap, err = s.store.GetLatest(loc)
	if err != nil {
		return Snapshot{}, fmt.Errorf("%w: no provider returned data for %s", ErrUnavailable, loc.Key())
	}
	return snap, nil
}

// GetLatest delegates to the underlying store.
func (s *Service) GetLatest(loc Location) (Snapshot, error) {
	return s.store.GetLatest(loc)
}

// GetRange delegates to the underlying store.
func (s *Service) GetRange(loc Location, from, to time.Time) ([]Snapshot, error) {
	return s.store.GetRange(loc, from, to)
}
