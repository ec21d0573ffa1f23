package group

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"buyeralike/internal/partnership/models"
	id "buyeralike/pkg/domain"
	"buyeralike/pkg/platform/sentinel"
)

// InMemory is a map-backed group store for tests and dev mode.
type InMemory struct {
	mu     sync.RWMutex
	groups map[id.GroupID]*models.PartnershipGroup
}

func NewInMemory() *InMemory {
	return &InMemory{groups: make(map[id.GroupID]*models.PartnershipGroup)}
}

func (s *InMemory) Create(_ context.Context, g *models.PartnershipGroup) error {
	if g == nil {
		return fmt.Errorf("group is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.groups[g.ID]; exists {
		return fmt.Errorf("group %s: %w", g.ID, sentinel.ErrConflict)
	}
	s.groups[g.ID] = g.Clone()
	return nil
}

func (s *InMemory) FindByID(_ context.Context, groupID id.GroupID) (*models.PartnershipGroup, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.groups[groupID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return g.Clone(), nil
}

// FindByIDForUpdate is FindByID; the in-memory transaction lock serialises writers.
func (s *InMemory) FindByIDForUpdate(ctx context.Context, groupID id.GroupID) (*models.PartnershipGroup, error) {
	return s.FindByID(ctx, groupID)
}

func (s *InMemory) Update(_ context.Context, g *models.PartnershipGroup) error {
	if g == nil {
		return fmt.Errorf("group is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.groups[g.ID]; !ok {
		return sentinel.ErrNotFound
	}
	s.groups[g.ID] = g.Clone()
	return nil
}

func (s *InMemory) ListByOpening(_ context.Context, openingID id.OpeningID) ([]*models.PartnershipGroup, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.PartnershipGroup
	for _, g := range s.groups {
		if g.OpeningID == openingID {
			out = append(out, g.Clone())
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID.String() < out[j].ID.String()
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// LockOpening is a no-op: in-memory transactions are already serialised.
func (s *InMemory) LockOpening(context.Context, id.OpeningID) error {
	return nil
}

// Snapshot captures the current groups; the returned func restores them.
func (s *InMemory) Snapshot() (restore func()) {
	s.mu.RLock()
	saved := make(map[id.GroupID]*models.PartnershipGroup, len(s.groups))
	for k, v := range s.groups {
		saved[k] = v.Clone()
	}
	s.mu.RUnlock()
	return func() {
		s.mu.Lock()
		s.groups = saved
		s.mu.Unlock()
	}
}
