package services

import (
	"lng-supply-optimizer/internal/domain"
	"testing"
)

type outcomeCounter map[string]int

func (c outcomeCounter) RecordRun(mode string, reused bool) {}
func (c outcomeCounter) RecordCandidate(outcome string)     { c[outcome]++ }

func TestSearchTwoLocationsOneVessel(t *testing.T) {
	sc := testScenario()
	snap := testSnapshot(testVessel("V", 10000))

	results, err := Search(snap, testRequest(sc), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(results))
	}

	for _, r := range results {
		almostEqual(t, "TotalCostPerMMBTU", r.TotalCostPerMMBTU, r.CapexPerMMBTU+r.OpexPerMMBTU)
		almostEqual(t, "TotalDistanceNM", r.TotalDistanceNM, 300)
		// Two tank blocks; the only opex is ORU maintenance on them.
		almostEqual(t, "TotalCapexUSD", r.TotalCapexUSD, 2*TankBlockCostUSD)
		almostEqual(t, "TotalOpexUSDPerYear", r.TotalOpexUSDPerYear, 2*TankBlockCostUSD*ORUMaintenanceRatio)
		almostEqual(t, "RequiredCapacityM3", r.RequiredCapacityM3, 200)
		if r.Vessel != "V" {
			t.Fatalf("vessel = %q, want V", r.Vessel)
		}
	}

	if results[0].Route[1] == results[1].Route[1] {
		t.Fatalf("expected both orderings, got %v and %v", results[0].Route, results[1].Route)
	}
}

func TestSearchRanksCheaperRouteFirst(t *testing.T) {
	sc := testScenario()
	sc.Params.LNGPriceUSD = 1

	// T>A>B>T is 300 nm with half of it in ballast; T>B>A>T is 550 nm
	// with only the 100 nm return in ballast.
	snap := testSnapshot()
	snap.Legs = []domain.RouteLeg{
		{Origin: "T", Destination: "A", DistanceNM: 100},
		{Origin: "A", Destination: "B", DistanceNM: 50},
		{Origin: "B", Destination: "T", DistanceNM: 150},
		{Origin: "T", Destination: "B", DistanceNM: 400},
		{Origin: "B", Destination: "A", DistanceNM: 50},
		{Origin: "A", Destination: "T", DistanceNM: 100},
	}
	v := testVessel("V", 10000)
	v.FuelLaden = 1
	v.FuelBallast = 10
	snap.Vessels = []domain.Vessel{v}

	results, err := Search(snap, testRequest(sc), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(results))
	}

	want := domain.Route{"T", "B", "A", "T"}
	for i := range want {
		if results[0].Route[i] != want[i] {
			t.Fatalf("top route = %v, want %v", results[0].Route, want)
		}
	}
	if results[0].TotalCostPerMMBTU >= results[1].TotalCostPerMMBTU {
		t.Fatalf("top cost %v not below runner-up %v", results[0].TotalCostPerMMBTU, results[1].TotalCostPerMMBTU)
	}

	maintenance := 2 * TankBlockCostUSD * ORUMaintenanceRatio
	almostEqual(t, "top TotalDistanceNM", results[0].TotalDistanceNM, 550)
	almostEqual(t, "top TotalOpexUSDPerYear", results[0].TotalOpexUSDPerYear, 365.0*145/55+maintenance)
	almostEqual(t, "runner-up TotalOpexUSDPerYear", results[1].TotalOpexUSDPerYear, 2007.5+maintenance)
	almostEqual(t, "top TotalCapexUSD", results[0].TotalCapexUSD, 2*TankBlockCostUSD)
}

func TestSearchExcludesInfeasibleCandidates(t *testing.T) {
	sc := testScenario()
	snap := testSnapshot(testVessel("tiny", 100), testVessel("big", 10000))
	counter := outcomeCounter{}

	results, err := Search(snap, testRequest(sc), counter)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 feasible candidates, got %d", len(results))
	}
	for _, r := range results {
		if r.Vessel != "big" {
			t.Fatalf("infeasible vessel %q ranked", r.Vessel)
		}
		if r.RequiredCapacityM3 > r.VesselCapacityM3 {
			t.Fatalf("required %v exceeds capacity %v", r.RequiredCapacityM3, r.VesselCapacityM3)
		}
	}
	if counter[OutcomeOverCapacity] != 2 || counter[OutcomeFeasible] != 2 {
		t.Fatalf("outcomes = %v", counter)
	}
}

func TestSearchSkipsMissingLegs(t *testing.T) {
	sc := testScenario()
	snap := testSnapshot(testVessel("V", 10000))
	legs := make([]domain.RouteLeg, 0, len(snap.Legs))
	for _, l := range snap.Legs {
		if l.Origin == "A" && l.Destination == "B" {
			continue
		}
		legs = append(legs, l)
	}
	snap.Legs = legs

	results, err := Search(snap, testRequest(sc), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(results))
	}
	if got := results[0].Route; got[1] != "B" || got[2] != "A" {
		t.Fatalf("route = %v, want T>B>A>T", got)
	}
}

func TestSearchNoFeasibleCandidatesIsEmpty(t *testing.T) {
	sc := testScenario()
	sc.Params.BoilOffFraction = 0.9

	results, err := Search(testSnapshot(testVessel("V", 10000)), testRequest(sc), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected no candidates, got %d", len(results))
	}
	if TopCandidate(results) != nil {
		t.Fatal("expected nil top candidate")
	}
}

func TestSearchTerminalORUOnlyForSmallVessels(t *testing.T) {
	sc := testScenario()
	snap := testSnapshot(testVessel("small", 10000), testVessel("large", 30000))
	snap.ORU = map[string]float64{"T": 5_000_000}

	results, err := Search(snap, testRequest(sc), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 4 {
		t.Fatalf("expected 4 candidates, got %d", len(results))
	}
	// Without the terminal ORU the large vessel is cheaper.
	for _, r := range results[:2] {
		if r.Vessel != "large" {
			t.Fatalf("ranked %v before the large vessel", r.Vessel)
		}
	}
	almostEqual(t, "small capex", results[2].TotalCapexUSD, 2*TankBlockCostUSD+5_000_000)
}

func TestRankCandidatesIsStable(t *testing.T) {
	cands := []domain.CandidateResult{
		{Vessel: "first", TotalCostPerMMBTU: 2},
		{Vessel: "cheap", TotalCostPerMMBTU: 1},
		{Vessel: "second", TotalCostPerMMBTU: 2},
		{Vessel: "third", TotalCostPerMMBTU: 2},
	}

	RankCandidates(cands)

	want := []string{"cheap", "first", "second", "third"}
	for i, w := range want {
		if cands[i].Vessel != w {
			t.Fatalf("position %d = %q, want %q", i, cands[i].Vessel, w)
		}
	}

	top := TopCandidate(cands)
	if top == nil || top.Vessel != "cheap" {
		t.Fatalf("top = %+v, want cheap", top)
	}
}

func TestEvaluateCandidateInflatesVesselCosts(t *testing.T) {
	params := zeroParams()
	params.InflationRate = 0.1
	params.AnalysisYear = 2027
	params.BaseYear = 2025

	v := testVessel("V", 30000)
	v.CharterRateUSD = 1000

	c, err := EvaluateCandidate(v, domain.Route{"T", "A", "B", "T"}, NewDistanceIndex(testLegs()), map[string]float64{}, domain.Demand{"A": 1, "B": 1}, params)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	capex := 2 * TankBlockCostUSD * 1.21
	almostEqual(t, "TotalCapexUSD", c.TotalCapexUSD, capex)
	almostEqual(t, "TotalOpexUSDPerYear", c.TotalOpexUSDPerYear, 1000*1.21*365+capex*ORUMaintenanceRatio)
}
