package services

import (
	"cmp"
	"lng-supply-optimizer/internal/domain"
	"slices"
)

// RankCandidates sorts by total cost per MMBTU, ascending. The sort is stable:
// equal costs keep their enumeration order.
func RankCandidates(cands []domain.CandidateResult) {
	slices.SortStableFunc(cands, func(a, b domain.CandidateResult) int {
		return cmp.Compare(a.TotalCostPerMMBTU, b.TotalCostPerMMBTU)
	})
}

// TopCandidate returns the first ranked candidate, or nil when none are feasible.
func TopCandidate(cands []domain.CandidateResult) *domain.CandidateResult {
	if len(cands) == 0 {
		return nil
	}
	top := cands[0]
	return &top
}

func rankTwinSlots(slots []domain.TwinSlotResult) {
	slices.SortStableFunc(slots, func(a, b domain.TwinSlotResult) int {
		return cmp.Compare(a.TotalCostPerMMBTU, b.TotalCostPerMMBTU)
	})
}

func rankTwinCombined(combined []domain.TwinCombinedResult) {
	slices.SortStableFunc(combined, func(a, b domain.TwinCombinedResult) int {
		return cmp.Compare(a.TotalCostPerMMBTU, b.TotalCostPerMMBTU)
	})
}
