package reference

import (
	"context"
	"lng-supply-optimizer/internal/domain"
)

// StaticRepository serves a dataset held in memory. Callers get copies.
type StaticRepository struct {
	data domain.ReferenceDataset
}

func NewStaticRepository(data domain.ReferenceDataset) *StaticRepository {
	return &StaticRepository{data: data}
}

func (r *StaticRepository) ListVessels(ctx context.Context) ([]domain.Vessel, error) {
	return append([]domain.Vessel(nil), r.data.Vessels...), nil
}

func (r *StaticRepository) ListRouteLegs(ctx context.Context) ([]domain.RouteLeg, error) {
	return append([]domain.RouteLeg(nil), r.data.Routes...), nil
}

func (r *StaticRepository) ListORUCapex(ctx context.Context) ([]domain.ORUCapex, error) {
	return append([]domain.ORUCapex(nil), r.data.ORU...), nil
}
