package services

import (
	"context"
	"fmt"
	"lng-supply-optimizer/internal/domain"
	"lng-supply-optimizer/internal/platform/obs"
	"lng-supply-optimizer/internal/ports"

	"golang.org/x/sync/errgroup"
)

// LoadSnapshot reads vessels, route legs and ORU capex concurrently and
// freezes them into a snapshot for one run.
func LoadSnapshot(ctx context.Context, repo ports.ReferenceRepository) (_ domain.ReferenceSnapshot, err error) {
	defer obs.Time(ctx, "reference.LoadSnapshot")(&err)

	var (
		vessels []domain.Vessel
		legs    []domain.RouteLeg
		oru     []domain.ORUCapex
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, err := repo.ListVessels(gctx)
		if err != nil {
			return fmt.Errorf("list vessels: %w", err)
		}
		vessels = v
		return nil
	})
	g.Go(func() error {
		l, err := repo.ListRouteLegs(gctx)
		if err != nil {
			return fmt.Errorf("list route legs: %w", err)
		}
		legs = l
		return nil
	})
	g.Go(func() error {
		o, err := repo.ListORUCapex(gctx)
		if err != nil {
			return fmt.Errorf("list oru capex: %w", err)
		}
		oru = o
		return nil
	})
	if err := g.Wait(); err != nil {
		return domain.ReferenceSnapshot{}, fmt.Errorf("load snapshot: %w", err)
	}

	oruByLocation := make(map[string]float64, len(oru))
	for _, o := range oru {
		oruByLocation[o.Location] = o.CapexUSD
	}

	return domain.ReferenceSnapshot{
		Vessels: vessels,
		Legs:    legs,
		ORU:     oruByLocation,
	}, nil
}
