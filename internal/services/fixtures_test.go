package services

import (
	"context"
	"lng-supply-optimizer/internal/domain"
	"math"
	"sync"
	"testing"
)

// Triangle T-A-B with every directed leg present.
// T>A>B>T and T>B>A>T are both 300 nm.
func testLegs() []domain.RouteLeg {
	return []domain.RouteLeg{
		{Origin: "T", Destination: "A", DistanceNM: 100},
		{Origin: "A", Destination: "B", DistanceNM: 50},
		{Origin: "B", Destination: "T", DistanceNM: 150},
		{Origin: "T", Destination: "B", DistanceNM: 150},
		{Origin: "B", Destination: "A", DistanceNM: 50},
		{Origin: "A", Destination: "T", DistanceNM: 100},
	}
}

func testVessel(name string, capacity float64) domain.Vessel {
	return domain.Vessel{Name: name, CapacityM3: capacity, SpeedKnots: 10}
}

// Parameters that zero out every optional cost and loss.
func zeroParams() domain.ScenarioParams {
	return domain.ScenarioParams{
		SCFLNG:          1,
		SCFMGO:          1,
		FillingFraction: 1,
		AnalysisYear:    2025,
		BaseYear:        2025,
	}
}

func testSnapshot(vessels ...domain.Vessel) domain.ReferenceSnapshot {
	return domain.ReferenceSnapshot{
		Vessels: vessels,
		Legs:    testLegs(),
		ORU:     map[string]float64{},
	}
}

func testScenario() domain.Scenario {
	return domain.Scenario{
		Terminal:  "T",
		Locations: []string{"A", "B"},
		Params:    zeroParams(),
		Demand:    domain.Demand{"A": 1, "B": 1},
	}
}

func testRequest(sc domain.Scenario) SearchRequest {
	return SearchRequest{
		Terminal:  sc.Terminal,
		Locations: sc.Locations,
		Demand:    sc.Demand,
		Params:    sc.Params,
	}
}

func almostEqual(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-6*math.Max(1, math.Abs(want)) {
		t.Fatalf("%s = %v, want %v", name, got, want)
	}
}

// Counts reference loads so tests can tell a recompute from a cache hit.
type countingReference struct {
	snap  domain.ReferenceSnapshot
	mu    sync.Mutex
	loads int
}

func (r *countingReference) ListVessels(ctx context.Context) ([]domain.Vessel, error) {
	r.mu.Lock()
	r.loads++
	r.mu.Unlock()
	return r.snap.Vessels, nil
}

func (r *countingReference) ListRouteLegs(ctx context.Context) ([]domain.RouteLeg, error) {
	return r.snap.Legs, nil
}

func (r *countingReference) ListORUCapex(ctx context.Context) ([]domain.ORUCapex, error) {
	out := make([]domain.ORUCapex, 0, len(r.snap.ORU))
	for loc, usd := range r.snap.ORU {
		out = append(out, domain.ORUCapex{Location: loc, CapexUSD: usd})
	}
	return out, nil
}

func (r *countingReference) Loads() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loads
}
