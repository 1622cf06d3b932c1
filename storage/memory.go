package storage

import (
	"context"
	"sync"

	"github.com/giygas/medreview-api/interfaces"
	"github.com/giygas/medreview-api/models"
	"github.com/google/uuid"
)

var _ interfaces.ReportStore = (*MemoryStore)(nil)

// MemoryStore keeps assessments for the lifetime of the process
type MemoryStore struct {
	mu          sync.RWMutex
	assessments map[uuid.UUID]models.Assessment
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{assessments: make(map[uuid.UUID]models.Assessment)}
}

func (s *MemoryStore) Save(ctx context.Context, a *models.Assessment) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.assessments[a.ID] = *a
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, id uuid.UUID) (*models.Assessment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.assessments[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &a, nil
}

func (s *MemoryStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.assessments), nil
}

func (s *MemoryStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *MemoryStore) Close() {}
