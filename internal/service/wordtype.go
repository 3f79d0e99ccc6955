package service

import (
	"context"
	"fmt"
	"time"

	"linguista/internal/domain"
	"linguista/internal/repository"

	"github.com/google/uuid"
)

// WordTypeService manages the shared catalogue of word types
type WordTypeService struct {
	types repository.WordTypeRepository
	now   func() time.Time
}

// NewWordTypeService creates a new word type service
func NewWordTypeService(types repository.WordTypeRepository) *WordTypeService {
	return &WordTypeService{types: types, now: time.Now}
}

// List returns every word type, most used first
func (s *WordTypeService) List(ctx context.Context) ([]domain.WordType, error) {
	return s.types.List(ctx)
}

// Import upserts types by name and returns how many were stored
func (s *WordTypeService) Import(ctx context.Context, types []domain.WordType) (int, error) {
	for i := range types {
		t := &types[i]
		if t.ID == uuid.Nil {
			t.ID = uuid.New()
		}
		if t.Created.IsZero() {
			t.Created = s.now()
		}
		if _, err := domain.WordTypeSlug.Fill(t); err != nil {
			return i, fmt.Errorf("import %s: %w", t.Name, err)
		}
		if err := s.types.Upsert(ctx, t); err != nil {
			return i, fmt.Errorf("import %s: %w", t.Name, err)
		}
	}
	return len(types), nil
}
