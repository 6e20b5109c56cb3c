package services

import (
	"context"
	"errors"
	"fmt"
	"lng-supply-optimizer/internal/domain"
	"lng-supply-optimizer/internal/platform/obs"
	"lng-supply-optimizer/internal/ports"
	"log"
	"time"
)

// Run modes reported to the metrics recorder.
const (
	ModeSingle = "single"
	ModeTwin   = "twin"
)

// Optimizer serves scenarios through the run cache: identical canonical
// requests are computed once and re-served from the store afterwards.
type Optimizer struct {
	Reference    ports.ReferenceRepository
	Store        ports.RunStore
	Metrics      ports.MetricsRecorder
	MaxLocations int
	Now          func() time.Time
}

// Outcome of Optimize.
type OptimizeResult struct {
	Key    string
	Reused bool
	Record *domain.RunRecord
}

// Optimize validates sc, then returns the cached run for its canonical key or
// computes, stores and returns a new one. A failed computation is never cached.
func (o *Optimizer) Optimize(ctx context.Context, sc domain.Scenario) (_ *OptimizeResult, err error) {
	defer obs.Time(ctx, "optimizer.Optimize")(&err)

	if o.Reference == nil || o.Store == nil {
		return nil, fmt.Errorf("optimize: %w: reference repository and run store are required", ErrEngine)
	}

	if err := ValidateScenario(sc, o.MaxLocations); err != nil {
		return nil, fmt.Errorf("optimize: %w", err)
	}

	key, err := RunKey(sc)
	if err != nil {
		return nil, fmt.Errorf("optimize: %w: %w", ErrEngine, err)
	}

	mode := ModeSingle
	if sc.Twin != nil {
		mode = ModeTwin
	}

	_, err = o.Store.Get(ctx, key)
	switch {
	case err == nil:
		return o.reuse(ctx, key, mode)
	case !errors.Is(err, ports.ErrRunNotFound):
		return nil, fmt.Errorf("optimize: %w: get run %s: %w", ErrEngine, key, err)
	}

	rec, err := o.compute(ctx, key, sc)
	if err != nil {
		return nil, fmt.Errorf("optimize: %w: %w", ErrEngine, err)
	}

	stored, created, err := o.Store.Create(ctx, rec)
	if err != nil {
		return nil, fmt.Errorf("optimize: %w: create run %s: %w", ErrEngine, key, err)
	}
	if !created {
		// A concurrent identical request stored the record first.
		log.Printf("run_key=%s op=optimizer.Create conflict=true", key)
		return o.reuse(ctx, key, mode)
	}

	o.recordRun(mode, false)
	return &OptimizeResult{Key: key, Reused: false, Record: stored}, nil
}

// GetRun returns a stored run without touching its reuse counter.
func (o *Optimizer) GetRun(ctx context.Context, key string) (*domain.RunRecord, error) {
	rec, err := o.Store.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("get run %s: %w", key, err)
	}
	return rec, nil
}

func (o *Optimizer) reuse(ctx context.Context, key, mode string) (*OptimizeResult, error) {
	rec, err := o.Store.IncrementReuse(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("optimize: %w: increment reuse %s: %w", ErrEngine, key, err)
	}
	o.recordRun(mode, true)
	return &OptimizeResult{Key: key, Reused: true, Record: rec}, nil
}

func (o *Optimizer) compute(ctx context.Context, key string, sc domain.Scenario) (*domain.RunRecord, error) {
	snap, err := LoadSnapshot(ctx, o.Reference)
	if err != nil {
		return nil, err
	}

	req := SearchRequest{
		Terminal:  sc.Terminal,
		Locations: sc.Locations,
		Demand:    sc.Demand,
		Params:    sc.Params,
	}

	now := time.Now
	if o.Now != nil {
		now = o.Now
	}
	ts := now().UTC()

	rec := &domain.RunRecord{
		Key:       key,
		Scenario:  sc,
		CreatedAt: ts,
		UpdatedAt: ts,
	}

	if sc.Twin != nil {
		twin, err := SearchTwin(snap, req, sc.Twin, o.Metrics)
		if err != nil {
			return nil, err
		}
		rec.TwinResults = twin
		rec.TwinTop = TopTwin(twin)
		return rec, nil
	}

	results, err := Search(snap, req, o.Metrics)
	if err != nil {
		return nil, err
	}
	rec.Results = results
	rec.Top = TopCandidate(results)
	return rec, nil
}

func (o *Optimizer) recordRun(mode string, reused bool) {
	if o.Metrics != nil {
		o.Metrics.RecordRun(mode, reused)
	}
}
