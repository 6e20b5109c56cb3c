package cache

import (
	"context"
	"errors"
	"lng-supply-optimizer/internal/domain"
	"lng-supply-optimizer/internal/ports"
	"sync"
	"time"
)

// In-process run store for the CLI and tests. Safe for concurrent use.
type MemoryRunStore struct {
	mu      sync.RWMutex
	records map[string]domain.RunRecord
	Now     func() time.Time
}

func NewMemoryRunStore() *MemoryRunStore {
	return &MemoryRunStore{records: make(map[string]domain.RunRecord), Now: time.Now}
}

func (s *MemoryRunStore) Get(_ context.Context, key string) (*domain.RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[key]
	if !ok {
		return nil, ports.ErrRunNotFound
	}
	return &rec, nil
}

func (s *MemoryRunStore) Create(_ context.Context, rec *domain.RunRecord) (*domain.RunRecord, bool, error) {
	if rec == nil || rec.Key == "" {
		return nil, false, errors.New("insert run record: key must not be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.records[rec.Key]; ok {
		return &existing, false, nil
	}

	stored := *rec
	stored.ReuseCount = 0
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = s.now()
	}
	stored.UpdatedAt = stored.CreatedAt
	s.records[rec.Key] = stored

	return &stored, true, nil
}

func (s *MemoryRunStore) IncrementReuse(_ context.Context, key string) (*domain.RunRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[key]
	if !ok {
		return nil, ports.ErrRunNotFound
	}
	rec.ReuseCount++
	rec.UpdatedAt = s.now()
	s.records[key] = rec

	return &rec, nil
}

func (s *MemoryRunStore) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}
