package services

import (
	"errors"
	"fmt"
	"lng-supply-optimizer/internal/domain"
	"lng-supply-optimizer/internal/ports"
)

// Candidate outcomes reported to the metrics recorder.
const (
	OutcomeFeasible        = "feasible"
	OutcomeMissingLeg      = "missing_leg"
	OutcomeOverCapacity    = "over_capacity"
	OutcomeBoilOffOverflow = "boil_off_overflow"
	OutcomeInvalidVessel   = "invalid_vessel"
)

// Inputs for one single-vessel search.
type SearchRequest struct {
	Terminal  string
	Locations []string
	Demand    domain.Demand
	Params    domain.ScenarioParams
	// Vessels restricts the search; nil means every vessel in the snapshot.
	Vessels []domain.Vessel
}

// EvaluateCandidate prices one vessel on one route. Infeasible pairs return
// one of ErrMissingLeg, ErrCapacityExceeded, ErrBoilOffOverflow or ErrInvalidVessel.
func EvaluateCandidate(
	vessel domain.Vessel,
	route domain.Route,
	idx DistanceIndex,
	oru map[string]float64,
	demand domain.Demand,
	params domain.ScenarioParams,
) (domain.CandidateResult, error) {
	lg, err := ComputeLogistics(vessel, route, idx, demand, params)
	if err != nil {
		return domain.CandidateResult{}, err
	}
	if err := CheckFeasibility(vessel, lg); err != nil {
		return domain.CandidateResult{}, err
	}

	capex := ComputeCapex(vessel, route[0], lg, oru, params)
	opex := ComputeOpex(vessel.Inflate(params.InflationFactor()), lg, capex.TotalUSD, params)

	return domain.CandidateResult{
		Vessel:              vessel.Name,
		Route:               route,
		TotalDistanceNM:     lg.TotalDistanceNM,
		RoundTripDays:       lg.RoundTripDays,
		BufferDays:          lg.BufferDays,
		DemandM3PerDay:      lg.DemandM3,
		DemandBBTUD:         lg.DemandBBTUD,
		RequiredCapacityM3:  lg.RequiredCapacityM3,
		VesselCapacityM3:    vessel.CapacityM3,
		TotalCapexUSD:       capex.TotalUSD,
		CapexPerMMBTU:       capex.PerMMBTU,
		TotalOpexUSDPerYear: opex.TotalUSDPerYear,
		OpexPerMMBTU:        opex.PerMMBTU,
		TotalCostPerMMBTU:   capex.PerMMBTU + opex.PerMMBTU,
		FuelCostMGOPerYear:  opex.FuelCostMGOUSD,
	}, nil
}

// Search evaluates every vessel against every ordering of the requested
// locations and returns the feasible candidates ranked by cost.
// Zero feasible candidates is an empty result, not an error.
func Search(
	snap domain.ReferenceSnapshot,
	req SearchRequest,
	rec ports.MetricsRecorder,
) ([]domain.CandidateResult, error) {
	routes, err := EnumerateRoutes(req.Terminal, req.Locations)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	vessels := req.Vessels
	if vessels == nil {
		vessels = snap.Vessels
	}

	idx := NewDistanceIndex(snap.Legs)
	out := make([]domain.CandidateResult, 0, len(routes)*len(vessels))

	for _, v := range vessels {
		for _, r := range routes {
			cand, err := EvaluateCandidate(v, r, idx, snap.ORU, req.Demand, req.Params)
			if err != nil {
				outcome, ok := infeasibleOutcome(err)
				if !ok {
					return nil, fmt.Errorf("search: vessel %q route %v: %w", v.Name, r, err)
				}
				record(rec, outcome)
				continue
			}
			record(rec, OutcomeFeasible)
			out = append(out, cand)
		}
	}

	RankCandidates(out)
	return out, nil
}

func infeasibleOutcome(err error) (string, bool) {
	switch {
	case errors.Is(err, ErrMissingLeg):
		return OutcomeMissingLeg, true
	case errors.Is(err, ErrCapacityExceeded):
		return OutcomeOverCapacity, true
	case errors.Is(err, ErrBoilOffOverflow):
		return OutcomeBoilOffOverflow, true
	case errors.Is(err, ErrInvalidVessel):
		return OutcomeInvalidVessel, true
	}
	return "", false
}

func record(rec ports.MetricsRecorder, outcome string) {
	if rec != nil {
		rec.RecordCandidate(outcome)
	}
}
