package cache

import (
	"encoding/json"
	"fmt"
	"lng-supply-optimizer/internal/domain"
	"lng-supply-optimizer/internal/services"
)

// Immutable part of a run record. The reuse counter and timestamps are
// stored alongside so bumping reuse never rewrites the results.
type runPayload struct {
	Scenario    domain.Scenario            `json:"scenario"`
	Results     []domain.CandidateResult   `json:"results,omitempty"`
	Top         *domain.CandidateResult    `json:"top,omitempty"`
	TwinResults *domain.TwinResults        `json:"twin_results,omitempty"`
	TwinTop     *domain.TwinCombinedResult `json:"twin_top,omitempty"`
}

func encodePayload(rec *domain.RunRecord) ([]byte, error) {
	b, err := json.Marshal(runPayload{
		Scenario:    rec.Scenario,
		Results:     rec.Results,
		Top:         rec.Top,
		TwinResults: rec.TwinResults,
		TwinTop:     rec.TwinTop,
	})
	if err != nil {
		return nil, fmt.Errorf("encode run payload: %w", err)
	}
	return b, nil
}

func decodePayload(key string, b []byte) (*domain.RunRecord, error) {
	var p runPayload
	if err := json.Unmarshal(b, &p); err != nil {
		return nil, fmt.Errorf("decode run payload %s: %w", key, err)
	}
	return &domain.RunRecord{
		Key:         key,
		Scenario:    p.Scenario,
		Results:     p.Results,
		Top:         p.Top,
		TwinResults: p.TwinResults,
		TwinTop:     p.TwinTop,
	}, nil
}

func runMode(rec *domain.RunRecord) string {
	if rec.IsTwin() {
		return services.ModeTwin
	}
	return services.ModeSingle
}
