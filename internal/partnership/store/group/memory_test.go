package group

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"buyeralike/internal/partnership/models"
	id "buyeralike/pkg/domain"
	"buyeralike/pkg/platform/sentinel"
)

type GroupStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
	now   time.Time
}

func TestGroupStoreSuite(t *testing.T) {
	suite.Run(t, new(GroupStoreSuite))
}

func (s *GroupStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
	s.now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
}

func (s *GroupStoreSuite) newGroup(opening id.OpeningID, created time.Time) *models.PartnershipGroup {
	g, err := models.NewGroup(id.GroupID(uuid.New()), opening, id.UserID(uuid.New()), "Group", "", nil, created)
	s.Require().NoError(err)
	return g
}

func (s *GroupStoreSuite) TestCreateAndFind() {
	s.Run("finds a created group", func() {
		g := s.newGroup(id.OpeningID(uuid.New()), s.now)
		s.Require().NoError(s.store.Create(s.ctx, g))

		found, err := s.store.FindByIDForUpdate(s.ctx, g.ID)
		s.Require().NoError(err)
		s.Equal(g.Name, found.Name)
		s.Equal(models.GroupStatusForming, found.Status)
	})

	s.Run("rejects a duplicate ID", func() {
		g := s.newGroup(id.OpeningID(uuid.New()), s.now)
		s.Require().NoError(s.store.Create(s.ctx, g))
		s.ErrorIs(s.store.Create(s.ctx, g), sentinel.ErrConflict)
	})

	s.Run("returns ErrNotFound for unknown IDs", func() {
		_, err := s.store.FindByID(s.ctx, id.GroupID(uuid.New()))
		s.ErrorIs(err, sentinel.ErrNotFound)
		s.ErrorIs(s.store.Update(s.ctx, s.newGroup(id.OpeningID(uuid.New()), s.now)), sentinel.ErrNotFound)
	})
}

func (s *GroupStoreSuite) TestListByOpeningOrdersByCreation() {
	opening := id.OpeningID(uuid.New())
	later := s.newGroup(opening, s.now.Add(time.Hour))
	earlier := s.newGroup(opening, s.now)
	s.Require().NoError(s.store.Create(s.ctx, later))
	s.Require().NoError(s.store.Create(s.ctx, earlier))
	s.Require().NoError(s.store.Create(s.ctx, s.newGroup(id.OpeningID(uuid.New()), s.now)))

	groups, err := s.store.ListByOpening(s.ctx, opening)
	s.Require().NoError(err)
	s.Require().Len(groups, 2)
	s.Equal(earlier.ID, groups[0].ID)
	s.Equal(later.ID, groups[1].ID)
}

func (s *GroupStoreSuite) TestSnapshotRestore() {
	g := s.newGroup(id.OpeningID(uuid.New()), s.now)
	s.Require().NoError(s.store.Create(s.ctx, g))

	restore := s.store.Snapshot()
	g.ApplyStatus(models.GroupStatusCancelled, s.now)
	s.Require().NoError(s.store.Update(s.ctx, g))
	restore()

	found, err := s.store.FindByID(s.ctx, g.ID)
	s.Require().NoError(err)
	s.Equal(models.GroupStatusForming, found.Status)
}
