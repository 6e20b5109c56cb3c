package ports

import (
	"context"
	"errors"
	"lng-supply-optimizer/internal/domain"
)

// ErrRunNotFound is returned by RunStore.Get when no record exists for the key.
var ErrRunNotFound = errors.New("run record not found")

// Port: persistence for run records keyed by the canonical run key.
type RunStore interface {
	// Return the record stored under key, or ErrRunNotFound.
	Get(ctx context.Context, key string) (*domain.RunRecord, error)
	// Insert rec unless its key already exists. On conflict the existing
	// record is returned with created=false; it is never overwritten.
	Create(ctx context.Context, rec *domain.RunRecord) (stored *domain.RunRecord, created bool, err error)
	// Increment the reuse counter of key by one and return the updated record.
	IncrementReuse(ctx context.Context, key string) (*domain.RunRecord, error)
}
