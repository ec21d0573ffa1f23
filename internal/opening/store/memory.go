package store

import (
	"context"
	"fmt"
	"sync"

	"buyeralike/internal/opening/models"
	id "buyeralike/pkg/domain"
	"buyeralike/pkg/platform/sentinel"
)

// InMemory keeps the opening read model in a map.
type InMemory struct {
	mu       sync.RWMutex
	openings map[id.OpeningID]models.Opening
}

func NewInMemory() *InMemory {
	return &InMemory{openings: make(map[id.OpeningID]models.Opening)}
}

// Apply upserts o and returns the status it replaced, or "" when o is new.
func (s *InMemory) Apply(_ context.Context, o *models.Opening) (models.Status, error) {
	if o == nil {
		return "", fmt.Errorf("opening is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	previous := s.openings[o.ID].Status
	s.openings[o.ID] = *o
	return previous, nil
}

func (s *InMemory) FindByID(_ context.Context, openingID id.OpeningID) (*models.Opening, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.openings[openingID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &o, nil
}
