package partnership

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"buyeralike/internal/partnership/models"
	id "buyeralike/pkg/domain"
	"buyeralike/pkg/platform/sentinel"
)

// InMemory is a map-backed partnership store. It enforces the same uniqueness
// rules as the Postgres partial indexes and hands out copies only.
type InMemory struct {
	mu      sync.RWMutex
	records map[id.PartnershipID]*models.Partnership
}

func NewInMemory() *InMemory {
	return &InMemory{records: make(map[id.PartnershipID]*models.Partnership)}
}

func (s *InMemory) Create(_ context.Context, p *models.Partnership) error {
	if p == nil {
		return fmt.Errorf("partnership is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.records[p.ID]; exists {
		return fmt.Errorf("partnership %s: %w", p.ID, sentinel.ErrConflict)
	}
	if err := s.checkUniqueLocked(p); err != nil {
		return err
	}
	s.records[p.ID] = p.Clone()
	return nil
}

func (s *InMemory) FindByID(_ context.Context, pid id.PartnershipID) (*models.Partnership, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.records[pid]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return p.Clone(), nil
}

// FindByIDForUpdate is FindByID; the in-memory transaction lock already
// serialises writers.
func (s *InMemory) FindByIDForUpdate(ctx context.Context, pid id.PartnershipID) (*models.Partnership, error) {
	return s.FindByID(ctx, pid)
}

func (s *InMemory) FindGeneralInterest(_ context.Context, userID id.UserID, openingID id.OpeningID) (*models.Partnership, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.records {
		if p.UserID == userID && p.OpeningID == openingID && p.IsGeneralInterest() {
			return p.Clone(), nil
		}
	}
	return nil, sentinel.ErrNotFound
}

// FindActiveForUserOpening returns the user's most advanced live record for the
// opening: accepted before pending before interested, newest first.
func (s *InMemory) FindActiveForUserOpening(_ context.Context, userID id.UserID, openingID id.OpeningID) (*models.Partnership, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var best *models.Partnership
	for _, p := range s.records {
		if p.UserID != userID || p.OpeningID != openingID || !p.Status.IsActive() {
			continue
		}
		if best == nil || outranks(p, best) {
			best = p
		}
	}
	if best == nil {
		return nil, sentinel.ErrNotFound
	}
	return best.Clone(), nil
}

func (s *InMemory) FindActiveForUserGroup(_ context.Context, userID id.UserID, groupID id.GroupID) (*models.Partnership, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.records {
		if p.UserID == userID && p.InGroup(groupID) && isGroupActive(p.Status) {
			return p.Clone(), nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemory) CountAcceptedInGroup(_ context.Context, groupID id.GroupID) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, p := range s.records {
		if p.InGroup(groupID) && p.Status == models.StatusAcceptedIntoGroup {
			count++
		}
	}
	return count, nil
}

func (s *InMemory) CountAcceptedByGroups(_ context.Context, groupIDs []id.GroupID) (map[id.GroupID]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	counts := make(map[id.GroupID]int, len(groupIDs))
	for _, gid := range groupIDs {
		counts[gid] = 0
	}
	for _, p := range s.records {
		if !p.HasGroup() || p.Status != models.StatusAcceptedIntoGroup {
			continue
		}
		if _, wanted := counts[*p.GroupID]; wanted {
			counts[*p.GroupID]++
		}
	}
	return counts, nil
}

func (s *InMemory) Update(_ context.Context, p *models.Partnership) error {
	if p == nil {
		return fmt.Errorf("partnership is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[p.ID]; !ok {
		return sentinel.ErrNotFound
	}
	if err := s.checkUniqueLocked(p); err != nil {
		return err
	}
	s.records[p.ID] = p.Clone()
	return nil
}

// BulkUpdateStatus moves every record of groupID in from to to and returns the
// moved records. Records no longer in from are untouched.
func (s *InMemory) BulkUpdateStatus(_ context.Context, groupID id.GroupID, from, to models.PartnershipStatus, now time.Time) ([]*models.Partnership, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var moved []*models.Partnership
	for _, p := range s.records {
		if p.InGroup(groupID) && p.Status == from {
			p.Status = to
			p.UpdatedAt = now
			moved = append(moved, p.Clone())
		}
	}
	sortByCreated(moved)
	return moved, nil
}

func (s *InMemory) ListByGroup(_ context.Context, groupID id.GroupID) ([]*models.Partnership, error) {
	return s.list(func(p *models.Partnership) bool { return p.InGroup(groupID) }), nil
}

func (s *InMemory) ListByUser(_ context.Context, userID id.UserID) ([]*models.Partnership, error) {
	return s.list(func(p *models.Partnership) bool { return p.UserID == userID }), nil
}

func (s *InMemory) ListAll(_ context.Context) ([]*models.Partnership, error) {
	return s.list(func(*models.Partnership) bool { return true }), nil
}

// Snapshot captures the current records; the returned func restores them.
func (s *InMemory) Snapshot() (restore func()) {
	s.mu.RLock()
	saved := make(map[id.PartnershipID]*models.Partnership, len(s.records))
	for k, v := range s.records {
		saved[k] = v.Clone()
	}
	s.mu.RUnlock()
	return func() {
		s.mu.Lock()
		s.records = saved
		s.mu.Unlock()
	}
}

func (s *InMemory) list(match func(*models.Partnership) bool) []*models.Partnership {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Partnership
	for _, p := range s.records {
		if match(p) {
			out = append(out, p.Clone())
		}
	}
	sortByCreated(out)
	return out
}

// checkUniqueLocked enforces the two per-user uniqueness rules against every
// other record. Caller holds the write lock.
func (s *InMemory) checkUniqueLocked(candidate *models.Partnership) error {
	for _, existing := range s.records {
		if existing.ID == candidate.ID || existing.UserID != candidate.UserID || existing.OpeningID != candidate.OpeningID {
			continue
		}
		if candidate.IsGeneralInterest() && existing.IsGeneralInterest() {
			return fmt.Errorf("general interest already exists: %w", sentinel.ErrConflict)
		}
		if candidate.HasGroup() && isGroupActive(candidate.Status) &&
			existing.InGroup(*candidate.GroupID) && isGroupActive(existing.Status) {
			return fmt.Errorf("active group relationship already exists: %w", sentinel.ErrConflict)
		}
	}
	return nil
}

func isGroupActive(s models.PartnershipStatus) bool {
	return s == models.StatusPendingGroupJoin || s == models.StatusAcceptedIntoGroup
}

var statusRank = map[models.PartnershipStatus]int{
	models.StatusAcceptedIntoGroup: 3,
	models.StatusPendingGroupJoin:  2,
	models.StatusInterested:        1,
}

func outranks(a, b *models.Partnership) bool {
	if statusRank[a.Status] != statusRank[b.Status] {
		return statusRank[a.Status] > statusRank[b.Status]
	}
	return a.CreatedAt.After(b.CreatedAt)
}

func sortByCreated(records []*models.Partnership) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].CreatedAt.Equal(records[j].CreatedAt) {
			return records[i].ID.String() < records[j].ID.String()
		}
		return records[i].CreatedAt.Before(records[j].CreatedAt)
	})
}
