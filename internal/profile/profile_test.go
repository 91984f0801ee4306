package profile

import (
	"context"
	"testing"
)

func TestMemoryStoreLoad(t *testing.T) {
	s := NewMemoryStore()

	p, err := s.Load(context.Background(), "unknown")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p != nil {
		t.Fatal("expected nil profile for unknown user")
	}

	saved := &Profile{LikedFeatures: []string{"scenic"}}
	s.Save("runner-1", saved)

	p, err = s.Load(context.Background(), "runner-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p == nil || len(p.LikedFeatures) != 1 {
		t.Fatalf("expected stored profile back, got %v", p)
	}
}

func TestProfileNilSafety(t *testing.T) {
	var p *Profile

	if p.HasSignals() {
		t.Fatal("nil profile must report no signals")
	}
	if p.Dislikes("any") {
		t.Fatal("nil profile must not dislike anything")
	}
}

func TestHasSignalsIgnoresDislikes(t *testing.T) {
	p := &Profile{DislikedRouteIDs: []string{"r1"}}
	if p.HasSignals() {
		t.Fatal("dislikes alone are not a taste signal")
	}
	if !p.Dislikes("r1") {
		t.Fatal("expected dislike to register")
	}

	p.LikedFeatures = []string{"flat"}
	if !p.HasSignals() {
		t.Fatal("liked features are a taste signal")
	}
}
