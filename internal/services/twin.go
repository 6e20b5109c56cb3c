package services

import (
	"errors"
	"fmt"
	"lng-supply-optimizer/internal/domain"
	"lng-supply-optimizer/internal/ports"
)

// SearchTwin splits total demand between two vessel slots for each ratio,
// evaluates each slot as an independent single-vessel search, and pairs the
// best route of each slot into combined deployments.
func SearchTwin(
	snap domain.ReferenceSnapshot,
	req SearchRequest,
	cfg *domain.TwinConfig,
	rec ports.MetricsRecorder,
) (*domain.TwinResults, error) {
	if cfg == nil {
		return nil, errors.New("search twin: config must be non-nil")
	}

	splits, err := cfg.Splits()
	if err != nil {
		return nil, fmt.Errorf("search twin: %w", err)
	}

	pool := snap.VesselsNamed(cfg.VesselNames)
	totalBBTUD := 0.0
	for _, loc := range req.Locations {
		totalBBTUD += req.Demand[loc]
	}

	res := &domain.TwinResults{
		Vessel1: []domain.TwinSlotResult{},
		Vessel2: []domain.TwinSlotResult{},
		Total:   []domain.TwinCombinedResult{},
	}

	for _, split := range splits {
		best1 := make(map[string]domain.CandidateResult, len(pool))
		best2 := make(map[string]domain.CandidateResult, len(pool))

		for _, v := range pool {
			slot1, err := searchSlot(snap, req, v, split.Share1, rec)
			if err != nil {
				return nil, fmt.Errorf("search twin: ratio %s vessel 1: %w", split.Label, err)
			}
			slot2, err := searchSlot(snap, req, v, split.Share2, rec)
			if err != nil {
				return nil, fmt.Errorf("search twin: ratio %s vessel 2: %w", split.Label, err)
			}

			for _, c := range slot1 {
				res.Vessel1 = append(res.Vessel1, domain.TwinSlotResult{Ratio: split.Label, Share: split.Share1, CandidateResult: c})
			}
			for _, c := range slot2 {
				res.Vessel2 = append(res.Vessel2, domain.TwinSlotResult{Ratio: split.Label, Share: split.Share2, CandidateResult: c})
			}
			if len(slot1) > 0 {
				best1[v.Name] = slot1[0]
			}
			if len(slot2) > 0 {
				best2[v.Name] = slot2[0]
			}
		}

		for _, v1 := range pool {
			for _, v2 := range pool {
				if cfg.EnforceSameVessel && v1.Name != v2.Name {
					continue
				}
				c1, ok1 := best1[v1.Name]
				c2, ok2 := best2[v2.Name]
				if !ok1 || !ok2 {
					continue
				}
				res.Total = append(res.Total, combineTwin(split.Label, c1, c2, req, snap.ORU, cfg.ShareTerminalORU, totalBBTUD))
			}
		}
	}

	rankTwinSlots(res.Vessel1)
	rankTwinSlots(res.Vessel2)
	rankTwinCombined(res.Total)

	return res, nil
}

// TopTwin returns the best combined deployment, or nil when none is feasible.
func TopTwin(res *domain.TwinResults) *domain.TwinCombinedResult {
	if res == nil || len(res.Total) == 0 {
		return nil
	}
	top := res.Total[0]
	return &top
}

func searchSlot(
	snap domain.ReferenceSnapshot,
	req SearchRequest,
	vessel domain.Vessel,
	share float64,
	rec ports.MetricsRecorder,
) ([]domain.CandidateResult, error) {
	slotReq := req
	slotReq.Demand = scaleDemand(req.Demand, share)
	slotReq.Vessels = []domain.Vessel{vessel}
	return Search(snap, slotReq, rec)
}

func scaleDemand(d domain.Demand, share float64) domain.Demand {
	out := make(domain.Demand, len(d))
	for loc, v := range d {
		out[loc] = v * share
	}
	return out
}

// combineTwin merges two slot candidates into one deployment priced over the
// full demand. With shareTerminalORU, a terminal ORU charged to both slots is
// counted once.
func combineTwin(
	ratio string,
	c1, c2 domain.CandidateResult,
	req SearchRequest,
	oru map[string]float64,
	shareTerminalORU bool,
	totalBBTUD float64,
) domain.TwinCombinedResult {
	capex := c1.TotalCapexUSD + c2.TotalCapexUSD
	opex := c1.TotalOpexUSDPerYear + c2.TotalOpexUSDPerYear

	shared := false
	if shareTerminalORU &&
		c1.VesselCapacityM3 < SmallVesselThresholdM3 &&
		c2.VesselCapacityM3 < SmallVesselThresholdM3 {
		if terminalORU := oru[req.Terminal]; terminalORU > 0 {
			capex -= terminalORU
			opex -= terminalORU * ORUMaintenanceRatio
			shared = true
		}
	}

	out := domain.TwinCombinedResult{
		Ratio:               ratio,
		Vessel1:             c1,
		Vessel2:             c2,
		SharedTerminalORU:   shared,
		TotalCapexUSD:       capex,
		TotalOpexUSDPerYear: opex,
	}
	if totalBBTUD > 0 {
		out.CapexPerMMBTU = capex / (totalBBTUD * DaysPerYear * DeliveryHorizonYears * MMBTUPerBBTU)
		out.OpexPerMMBTU = opex / (totalBBTUD * DaysPerYear * MMBTUPerBBTU)
	}
	out.TotalCostPerMMBTU = out.CapexPerMMBTU + out.OpexPerMMBTU
	return out
}
