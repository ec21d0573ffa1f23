package service

import (
	"github.com/prometheus/client_golang/prometheus/testutil"

	"buyeralike/internal/notification"
	"buyeralike/internal/partnership/models"
	id "buyeralike/pkg/domain"
	dErrors "buyeralike/pkg/domain-errors"
)

func (s *ServiceSuite) TestCreateGroup() {
	s.Run("re-targets the creator's general interest", func() {
		founder := newUser()
		interest, err := s.service.ExpressInterest(s.ctx, founder, s.opening.ID)
		s.Require().NoError(err)

		details, err := s.service.CreateGroup(s.ctx, founder, s.opening.ID, models.CreateGroupRequest{
			Name:        "  Riverside crew  ",
			Description: "Two families",
			MaxMembers:  intPtr(3),
		})
		s.Require().NoError(err)
		s.Equal("Riverside crew", details.Group.Name)
		s.Equal(models.GroupStatusForming, details.Group.Status)
		s.Equal(founder, details.Group.CreatorID)
		s.Equal(1, details.AcceptedCount)

		creator := s.stored(interest.ID)
		s.Equal(models.StatusAcceptedIntoGroup, creator.Status)
		s.True(creator.IsCreator())
		s.True(creator.InGroup(details.Group.ID))
		s.Len(s.notifier.byEvent(notification.EventGroupCreated), 1)
	})

	s.Run("a founder already in a group gets a separate creator record", func() {
		g, founder := s.createGroup(nil)
		second, err := s.service.CreateGroup(s.ctx, founder, s.opening.ID, models.CreateGroupRequest{Name: "Second"})
		s.Require().NoError(err)
		s.NotEqual(g.ID, second.Group.ID)

		mine, err := s.service.GetMyPartnerships(s.ctx, founder)
		s.Require().NoError(err)
		s.Len(mine, 2)
		for _, p := range mine {
			s.Equal(models.StatusAcceptedIntoGroup, p.Status)
			s.True(p.IsCreator())
		}
	})

	s.Run("requires an active partnership for the opening", func() {
		_, err := s.service.CreateGroup(s.ctx, newUser(), s.opening.ID, models.CreateGroupRequest{Name: "Outsiders"})
		s.requireCode(err, dErrors.CodeForbidden)
	})

	s.Run("validates the request", func() {
		user := newUser()
		_, err := s.service.ExpressInterest(s.ctx, user, s.opening.ID)
		s.Require().NoError(err)

		_, err = s.service.CreateGroup(s.ctx, user, s.opening.ID, models.CreateGroupRequest{Name: "   "})
		s.requireCode(err, dErrors.CodeInvalidArgument)
		_, err = s.service.CreateGroup(s.ctx, user, s.opening.ID, models.CreateGroupRequest{Name: "Tiny", MaxMembers: intPtr(0)})
		s.requireCode(err, dErrors.CodeInvalidArgument)
	})
}

func (s *ServiceSuite) TestTerminalStatusCascades() {
	g, founder := s.createGroup(nil)
	m1 := s.admit(g)
	m2 := s.admit(g)
	pending := s.requestJoin(g.ID)
	actor := models.Actor{UserID: founder}

	change, err := s.service.SetStatus(s.ctx, actor, g.ID, "completed")
	s.Require().NoError(err)
	s.Equal(models.GroupStatusForming, change.PreviousStatus)
	s.Equal(models.GroupStatusCompleted, change.Group.Status)
	s.Len(change.Cascaded, 3)
	for _, p := range change.Cascaded {
		s.Equal(models.StatusGroupCompleted, p.Status)
		s.Equal(s.now, p.UpdatedAt)
	}
	s.Equal(0, s.countAccepted(g.ID))
	s.Equal(models.StatusPendingGroupJoin, s.stored(pending.ID).Status, "only accepted members cascade")

	s.ElementsMatch([]id.UserID{m1.UserID, m2.UserID}, recipientsOf(s.notifier.byEvent(notification.EventGroupCompleted)))
	s.Equal(3.0, testutil.ToFloat64(s.metrics.Transitions.WithLabelValues(operationSetStatus, string(models.StatusGroupCompleted))))

	_, err = s.service.Leave(s.ctx, m1.UserID, m1.ID)
	s.requireCode(err, dErrors.CodeInvalidState)
	_, err = s.service.DecideJoinRequest(s.ctx, actor, pending.ID, models.DecisionAccept)
	s.requireCode(err, dErrors.CodeInvalidState)
	_, err = s.service.RequestJoinGroup(s.ctx, newUser(), g.ID)
	s.requireCode(err, dErrors.CodeInvalidState)

	again, err := s.service.SetStatus(s.ctx, actor, g.ID, "completed")
	s.Require().NoError(err, "re-applying a terminal status is allowed")
	s.Empty(again.Cascaded)

	_, err = s.service.SetStatus(s.ctx, actor, g.ID, "active")
	s.requireCode(err, dErrors.CodeInvalidState)
	_, err = s.service.SetStatus(s.ctx, actor, g.ID, "cancelled")
	s.requireCode(err, dErrors.CodeInvalidState)
}

func (s *ServiceSuite) TestCancelCascades() {
	g, founder := s.createGroup(nil)
	member := s.admit(g)

	change, err := s.service.SetStatus(s.ctx, models.Actor{UserID: newUser(), Admin: true}, g.ID, "cancelled")
	s.Require().NoError(err)
	s.Len(change.Cascaded, 2)
	s.Equal(models.StatusGroupCancelled, s.stored(member.ID).Status)
	s.ElementsMatch([]id.UserID{founder, member.UserID}, recipientsOf(s.notifier.byEvent(notification.EventGroupCancelled)))
}

func (s *ServiceSuite) TestNonTerminalStatusChange() {
	g, founder := s.createGroup(nil)
	member := s.admit(g)
	s.requestJoin(g.ID)
	actor := models.Actor{UserID: founder}

	change, err := s.service.SetStatus(s.ctx, actor, g.ID, "closed_to_new_partners")
	s.Require().NoError(err)
	s.Equal(models.GroupStatusClosedToNewPartners, change.Group.Status)
	s.Empty(change.Cascaded)
	s.Equal([]id.UserID{member.UserID}, recipientsOf(s.notifier.byEvent(notification.EventGroupStatusChanged)))

	_, err = s.service.RequestJoinGroup(s.ctx, newUser(), g.ID)
	s.requireCode(err, dErrors.CodeInvalidState)

	_, err = s.service.SetStatus(s.ctx, actor, g.ID, "closed_to_new_partners")
	s.Require().NoError(err)
	s.Len(s.notifier.byEvent(notification.EventGroupStatusChanged), 1, "unchanged status sends nothing")

	_, err = s.service.SetStatus(s.ctx, actor, g.ID, "forming")
	s.Require().NoError(err, "non-terminal groups may move freely")
	s.requestJoin(g.ID)
}

func (s *ServiceSuite) TestSetStatusRejections() {
	g, _ := s.createGroup(nil)

	_, err := s.service.SetStatus(s.ctx, models.Actor{UserID: newUser()}, g.ID, "active")
	s.requireCode(err, dErrors.CodeForbidden)

	_, err = s.service.SetStatus(s.ctx, models.Actor{UserID: g.CreatorID}, g.ID, "archived")
	s.requireCode(err, dErrors.CodeInvalidArgument)

	_, err = s.service.SetStatus(s.ctx, models.Actor{UserID: g.CreatorID}, id.GroupID{}, "active")
	s.requireCode(err, dErrors.CodeInvalidArgument)

	stored, err := s.groups.FindByID(s.ctx, g.ID)
	s.Require().NoError(err)
	s.Equal(models.GroupStatusForming, stored.Status)
}
