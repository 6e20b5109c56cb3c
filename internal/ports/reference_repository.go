package ports

import (
	"context"
	"lng-supply-optimizer/internal/domain"
)

// Port: read-only reference datasets supplied by the collaborator boundary.
// The three lists are independent and may be loaded concurrently.
type ReferenceRepository interface {
	// Return every candidate vessel.
	ListVessels(ctx context.Context) ([]domain.Vessel, error)
	// Return every directed route leg.
	ListRouteLegs(ctx context.Context) ([]domain.RouteLeg, error)
	// Return ORU capital cost records.
	ListORUCapex(ctx context.Context) ([]domain.ORUCapex, error)
}
