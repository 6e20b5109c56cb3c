package domain

import "time"

// Persisted outcome of one canonical scenario request.
// Results and Top are immutable after creation; only ReuseCount changes.
type RunRecord struct {
	Key         string              `json:"key"`
	Scenario    Scenario            `json:"scenario"`
	Results     []CandidateResult   `json:"results,omitempty"`
	Top         *CandidateResult    `json:"top,omitempty"`
	TwinResults *TwinResults        `json:"twin_results,omitempty"`
	TwinTop     *TwinCombinedResult `json:"twin_top,omitempty"`
	ReuseCount  int                 `json:"reuse_count"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// IsTwin reports whether the record was produced by the twin-vessel model.
func (r *RunRecord) IsTwin() bool { return r.Scenario.Twin != nil }
