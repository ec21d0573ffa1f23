package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"golang.org/x/sync/errgroup"

	"buyeralike/internal/notification"
	openingmodels "buyeralike/internal/opening/models"
	openingstore "buyeralike/internal/opening/store"
	"buyeralike/internal/partnership/metrics"
	"buyeralike/internal/partnership/models"
	groupstore "buyeralike/internal/partnership/store/group"
	partnershipstore "buyeralike/internal/partnership/store/partnership"
	id "buyeralike/pkg/domain"
	dErrors "buyeralike/pkg/domain-errors"
	"buyeralike/pkg/requestcontext"
)

type recordingNotifier struct {
	mu   sync.Mutex
	sent []notification.Notification
}

func (r *recordingNotifier) Notify(_ context.Context, n notification.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, n)
	return nil
}

func (r *recordingNotifier) byEvent(event notification.EventType) []notification.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []notification.Notification
	for _, n := range r.sent {
		if n.EventType == event {
			out = append(out, n)
		}
	}
	return out
}

func recipientsOf(ns []notification.Notification) []id.UserID {
	out := make([]id.UserID, 0, len(ns))
	for _, n := range ns {
		out = append(out, n.RecipientID)
	}
	return out
}

// =============================================================================
// Partnership Service Test Suite
// =============================================================================
// Runs against the in-memory stores and transaction runner so invariants are
// checked through the same code paths the Postgres wiring uses.

type ServiceSuite struct {
	suite.Suite
	ctx          context.Context
	now          time.Time
	partnerships *partnershipstore.InMemory
	groups       *groupstore.InMemory
	openings     *openingstore.InMemory
	notifier     *recordingNotifier
	metrics      *metrics.Metrics
	service      *Service
	creator      id.UserID
	opening      *openingmodels.Opening
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.now = time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)
	s.ctx = requestcontext.WithTime(context.Background(), s.now)
	s.partnerships = partnershipstore.NewInMemory()
	s.groups = groupstore.NewInMemory()
	s.openings = openingstore.NewInMemory()
	s.notifier = &recordingNotifier{}
	s.metrics = metrics.NewWith(prometheus.NewRegistry())
	s.service = New(s.partnerships, s.groups, s.openings,
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithMetrics(s.metrics),
		WithNotifier(s.notifier),
	)
	s.creator = newUser()
	s.opening = s.seedOpening(s.creator, openingmodels.StatusVerified)
}

func newUser() id.UserID {
	return id.UserID(uuid.New())
}

func intPtr(n int) *int {
	return &n
}

func (s *ServiceSuite) seedOpening(creator id.UserID, status openingmodels.Status) *openingmodels.Opening {
	o := &openingmodels.Opening{
		ID:        id.OpeningID(uuid.New()),
		CreatorID: creator,
		Title:     "Riverside duplex",
		Status:    status,
	}
	_, err := s.openings.Apply(context.Background(), o)
	s.Require().NoError(err)
	return o
}

// createGroup has a fresh user express interest in the suite opening and
// found a group with maxMembers.
func (s *ServiceSuite) createGroup(maxMembers *int) (*models.PartnershipGroup, id.UserID) {
	founder := newUser()
	_, err := s.service.ExpressInterest(s.ctx, founder, s.opening.ID)
	s.Require().NoError(err)
	details, err := s.service.CreateGroup(s.ctx, founder, s.opening.ID, models.CreateGroupRequest{
		Name:       "Weekend partners",
		MaxMembers: maxMembers,
	})
	s.Require().NoError(err)
	return details.Group, founder
}

func (s *ServiceSuite) requestJoin(groupID id.GroupID) *models.Partnership {
	p, err := s.service.RequestJoinGroup(s.ctx, newUser(), groupID)
	s.Require().NoError(err)
	return p
}

func (s *ServiceSuite) admit(g *models.PartnershipGroup) *models.Partnership {
	p := s.requestJoin(g.ID)
	accepted, err := s.service.DecideJoinRequest(s.ctx, models.Actor{UserID: g.CreatorID}, p.ID, models.DecisionAccept)
	s.Require().NoError(err)
	return accepted
}

func (s *ServiceSuite) stored(pid id.PartnershipID) *models.Partnership {
	p, err := s.partnerships.FindByID(context.Background(), pid)
	s.Require().NoError(err)
	return p
}

func (s *ServiceSuite) countAccepted(groupID id.GroupID) int {
	n, err := s.partnerships.CountAcceptedInGroup(context.Background(), groupID)
	s.Require().NoError(err)
	return n
}

func (s *ServiceSuite) requireCode(err error, code dErrors.Code) {
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, code), "expected %s, got %v", code, err)
}

// assertUniqueness checks both per-user uniqueness rules over every record.
func (s *ServiceSuite) assertUniqueness() {
	all, err := s.partnerships.ListAll(context.Background())
	s.Require().NoError(err)

	type userOpening struct {
		user    id.UserID
		opening id.OpeningID
	}
	type userGroup struct {
		user  id.UserID
		group id.GroupID
	}
	general := map[userOpening]int{}
	live := map[userGroup]int{}
	for _, p := range all {
		if p.IsGeneralInterest() {
			general[userOpening{p.UserID, p.OpeningID}]++
		}
		if p.HasGroup() && (p.Status == models.StatusPendingGroupJoin || p.Status == models.StatusAcceptedIntoGroup) {
			live[userGroup{p.UserID, *p.GroupID}]++
		}
	}
	for key, n := range general {
		s.LessOrEqual(n, 1, "duplicate general interest for %v", key)
	}
	for key, n := range live {
		s.LessOrEqual(n, 1, "duplicate live group record for %v", key)
	}
}

// =============================================================================
// Lifecycle scenarios
// =============================================================================

func (s *ServiceSuite) TestInterestToAcceptance() {
	g, err := models.NewGroup(id.GroupID(uuid.New()), s.opening.ID, s.creator, "Seeded group", "", intPtr(2), s.now)
	s.Require().NoError(err)
	s.Require().NoError(s.groups.Create(s.ctx, g))
	user := newUser()

	interest, err := s.service.ExpressInterest(s.ctx, user, s.opening.ID)
	s.Require().NoError(err)
	s.Equal(models.StatusInterested, interest.Status)
	s.Nil(interest.GroupID)

	pending, err := s.service.RequestJoinGroup(s.ctx, user, g.ID)
	s.Require().NoError(err)
	s.Equal(interest.ID, pending.ID, "general interest is re-targeted, not duplicated")
	s.Equal(models.StatusPendingGroupJoin, pending.Status)
	s.Require().NotNil(pending.GroupID)
	s.Equal(g.ID, *pending.GroupID)

	accepted, err := s.service.DecideJoinRequest(s.ctx, models.Actor{UserID: s.creator}, pending.ID, models.DecisionAccept)
	s.Require().NoError(err)
	s.Equal(models.StatusAcceptedIntoGroup, accepted.Status)
	s.Equal(1, s.countAccepted(g.ID))

	mine, err := s.service.GetMyPartnerships(s.ctx, user)
	s.Require().NoError(err)
	s.Len(mine, 1)

	s.ElementsMatch([]id.UserID{user, s.creator}, recipientsOf(s.notifier.byEvent(notification.EventInterestExpressed)))
	s.ElementsMatch([]id.UserID{user, s.creator}, recipientsOf(s.notifier.byEvent(notification.EventJoinRequested)))
	s.ElementsMatch([]id.UserID{user, s.creator}, recipientsOf(s.notifier.byEvent(notification.EventJoinAccepted)))
	for _, n := range s.notifier.byEvent(notification.EventJoinAccepted) {
		s.Equal(notification.EntityPartnership, n.RelatedEntityType)
		s.Equal(pending.ID.String(), n.RelatedEntityID)
		s.Equal(s.now, n.OccurredAt)
	}
	s.Equal(1.0, testutil.ToFloat64(s.metrics.Transitions.WithLabelValues(operationDecideJoinRequest, string(models.StatusAcceptedIntoGroup))))
}

func (s *ServiceSuite) TestAcceptIntoFullGroupLeavesRequestPending() {
	g, founder := s.createGroup(intPtr(1))
	s.Equal(1, s.countAccepted(g.ID), "creator counts toward capacity")

	p := s.requestJoin(g.ID)
	_, err := s.service.DecideJoinRequest(s.ctx, models.Actor{UserID: founder}, p.ID, models.DecisionAccept)
	s.requireCode(err, dErrors.CodeCapacityExceeded)

	s.Equal(models.StatusPendingGroupJoin, s.stored(p.ID).Status)
	s.Equal(1, s.countAccepted(g.ID))
	s.Equal(1.0, testutil.ToFloat64(s.metrics.CapacityRejections))
	s.Empty(s.notifier.byEvent(notification.EventJoinAccepted))
}

func (s *ServiceSuite) TestConcurrentAcceptsNeverExceedCapacity() {
	g, founder := s.createGroup(intPtr(2))
	const contenders = 6
	requests := make([]*models.Partnership, contenders)
	for i := range requests {
		requests[i] = s.requestJoin(g.ID)
	}

	var accepted, rejected atomic.Int32
	var eg errgroup.Group
	for _, p := range requests {
		eg.Go(func() error {
			_, err := s.service.DecideJoinRequest(s.ctx, models.Actor{UserID: founder}, p.ID, models.DecisionAccept)
			switch {
			case err == nil:
				accepted.Add(1)
			case dErrors.HasCode(err, dErrors.CodeCapacityExceeded):
				rejected.Add(1)
			default:
				return err
			}
			return nil
		})
	}
	s.Require().NoError(eg.Wait())

	s.Equal(int32(1), accepted.Load())
	s.Equal(int32(contenders-1), rejected.Load())
	s.Equal(2, s.countAccepted(g.ID))
}

func (s *ServiceSuite) TestLeaveFreesCapacity() {
	g, founder := s.createGroup(intPtr(2))
	member := s.admit(g)
	waiting := s.requestJoin(g.ID)
	actor := models.Actor{UserID: founder}

	_, err := s.service.DecideJoinRequest(s.ctx, actor, waiting.ID, models.DecisionAccept)
	s.requireCode(err, dErrors.CodeCapacityExceeded)

	left, err := s.service.Leave(s.ctx, member.UserID, member.ID)
	s.Require().NoError(err)
	s.Equal(models.StatusLeftGroup, left.Status)
	s.ElementsMatch([]id.UserID{member.UserID, founder}, recipientsOf(s.notifier.byEvent(notification.EventMemberLeft)))

	_, err = s.service.DecideJoinRequest(s.ctx, actor, waiting.ID, models.DecisionAccept)
	s.Require().NoError(err)
	s.Equal(2, s.countAccepted(g.ID))
}

func (s *ServiceSuite) TestDeclineAndWithdraw() {
	g, founder := s.createGroup(nil)

	s.Run("decline moves the request to declined", func() {
		p := s.requestJoin(g.ID)
		declined, err := s.service.DecideJoinRequest(s.ctx, models.Actor{UserID: founder}, p.ID, models.DecisionDecline)
		s.Require().NoError(err)
		s.Equal(models.StatusDeclinedByGroup, declined.Status)

		_, err = s.service.DecideJoinRequest(s.ctx, models.Actor{UserID: founder}, p.ID, models.DecisionAccept)
		s.requireCode(err, dErrors.CodeInvalidState)
	})

	s.Run("admin decisions notify the group creator", func() {
		p := s.requestJoin(g.ID)
		admin := models.Actor{UserID: newUser(), Admin: true}
		_, err := s.service.DecideJoinRequest(s.ctx, admin, p.ID, models.DecisionAccept)
		s.Require().NoError(err)

		var rcpts []id.UserID
		for _, n := range s.notifier.byEvent(notification.EventJoinAccepted) {
			if n.RelatedEntityID == p.ID.String() {
				rcpts = append(rcpts, n.RecipientID)
			}
		}
		s.ElementsMatch([]id.UserID{p.UserID, admin.UserID, founder}, rcpts)
	})

	s.Run("pending requests can be declined after the group ends", func() {
		ended, endedFounder := s.createGroup(nil)
		p := s.requestJoin(ended.ID)
		_, err := s.service.SetStatus(s.ctx, models.Actor{UserID: endedFounder}, ended.ID, "cancelled")
		s.Require().NoError(err)
		s.Equal(models.StatusPendingGroupJoin, s.stored(p.ID).Status)

		_, err = s.service.DecideJoinRequest(s.ctx, models.Actor{UserID: endedFounder}, p.ID, models.DecisionAccept)
		s.requireCode(err, dErrors.CodeInvalidState)

		declined, err := s.service.DecideJoinRequest(s.ctx, models.Actor{UserID: endedFounder}, p.ID, models.DecisionDecline)
		s.Require().NoError(err)
		s.Equal(models.StatusDeclinedByGroup, declined.Status)
		s.Equal(models.StatusDeclinedByGroup, s.stored(p.ID).Status)
	})

	s.Run("withdraw a pending request notifies the group creator", func() {
		p := s.requestJoin(g.ID)
		withdrawn, err := s.service.Withdraw(s.ctx, p.UserID, p.ID)
		s.Require().NoError(err)
		s.Equal(models.StatusWithdrawnInterest, withdrawn.Status)
		s.ElementsMatch([]id.UserID{p.UserID, founder}, recipientsOf(s.notifier.byEvent(notification.EventInterestWithdrawn)))
	})

	s.Run("withdraw general interest", func() {
		user := newUser()
		p, err := s.service.ExpressInterest(s.ctx, user, s.opening.ID)
		s.Require().NoError(err)
		withdrawn, err := s.service.Withdraw(s.ctx, user, p.ID)
		s.Require().NoError(err)
		s.Equal(models.StatusWithdrawnInterest, withdrawn.Status)
	})

	s.Run("accepted members must leave instead of withdraw", func() {
		member := s.admit(g)
		_, err := s.service.Withdraw(s.ctx, member.UserID, member.ID)
		s.requireCode(err, dErrors.CodeInvalidState)
	})
}

func (s *ServiceSuite) TestUniquenessAcrossInterleavings() {
	g1, _ := s.createGroup(nil)
	g2, _ := s.createGroup(nil)
	user := newUser()

	first, err := s.service.ExpressInterest(s.ctx, user, s.opening.ID)
	s.Require().NoError(err)
	_, err = s.service.ExpressInterest(s.ctx, user, s.opening.ID)
	s.requireCode(err, dErrors.CodeConflict)

	joined, err := s.service.RequestJoinGroup(s.ctx, user, g1.ID)
	s.Require().NoError(err)
	s.Equal(first.ID, joined.ID)
	_, err = s.service.RequestJoinGroup(s.ctx, user, g1.ID)
	s.requireCode(err, dErrors.CodeConflict)

	again, err := s.service.ExpressInterest(s.ctx, user, s.opening.ID)
	s.Require().NoError(err, "the general interest slot is free again after re-targeting")
	second, err := s.service.RequestJoinGroup(s.ctx, user, g2.ID)
	s.Require().NoError(err)
	s.Equal(again.ID, second.ID)

	_, err = s.service.Withdraw(s.ctx, user, joined.ID)
	s.Require().NoError(err)
	rejoin, err := s.service.RequestJoinGroup(s.ctx, user, g1.ID)
	s.Require().NoError(err)
	s.NotEqual(joined.ID, rejoin.ID)

	_, err = s.service.ExpressInterest(s.ctx, user, s.opening.ID)
	s.Require().NoError(err)
	s.assertUniqueness()

	mine, err := s.service.GetMyPartnerships(s.ctx, user)
	s.Require().NoError(err)
	s.Len(mine, 4)
}

func (s *ServiceSuite) TestRejectedOperations() {
	g, founder := s.createGroup(nil)
	member := s.admit(g)
	stranger := newUser()

	s.Run("invalid arguments", func() {
		_, err := s.service.ExpressInterest(s.ctx, id.UserID{}, s.opening.ID)
		s.requireCode(err, dErrors.CodeInvalidArgument)
		_, err = s.service.RequestJoinGroup(s.ctx, stranger, id.GroupID{})
		s.requireCode(err, dErrors.CodeInvalidArgument)
		_, err = s.service.DecideJoinRequest(s.ctx, models.Actor{UserID: founder}, member.ID, models.JoinDecision("maybe"))
		s.requireCode(err, dErrors.CodeInvalidArgument)
		_, err = s.service.Leave(s.ctx, member.UserID, id.PartnershipID{})
		s.requireCode(err, dErrors.CodeInvalidArgument)
	})

	s.Run("unknown records", func() {
		_, err := s.service.ExpressInterest(s.ctx, stranger, id.OpeningID(uuid.New()))
		s.requireCode(err, dErrors.CodeNotFound)
		_, err = s.service.RequestJoinGroup(s.ctx, stranger, id.GroupID(uuid.New()))
		s.requireCode(err, dErrors.CodeNotFound)
		_, err = s.service.Withdraw(s.ctx, stranger, id.PartnershipID(uuid.New()))
		s.requireCode(err, dErrors.CodeNotFound)
		_, err = s.service.GetGroup(s.ctx, id.GroupID(uuid.New()))
		s.requireCode(err, dErrors.CodeNotFound)
	})

	s.Run("forbidden actors", func() {
		p := s.requestJoin(g.ID)
		_, err := s.service.DecideJoinRequest(s.ctx, models.Actor{UserID: stranger}, p.ID, models.DecisionAccept)
		s.requireCode(err, dErrors.CodeForbidden)
		s.Equal(models.StatusPendingGroupJoin, s.stored(p.ID).Status)

		_, err = s.service.Withdraw(s.ctx, stranger, p.ID)
		s.requireCode(err, dErrors.CodeForbidden)
		_, err = s.service.Leave(s.ctx, stranger, member.ID)
		s.requireCode(err, dErrors.CodeForbidden)

		admitted, err := s.service.DecideJoinRequest(s.ctx, models.Actor{UserID: stranger, Admin: true}, p.ID, models.DecisionAccept)
		s.Require().NoError(err, "admins may decide for any group")
		s.Equal(models.StatusAcceptedIntoGroup, admitted.Status)
	})

	s.Run("invalid source states", func() {
		interest, err := s.service.ExpressInterest(s.ctx, stranger, s.opening.ID)
		s.Require().NoError(err)
		_, err = s.service.Leave(s.ctx, stranger, interest.ID)
		s.requireCode(err, dErrors.CodeInvalidState)
		_, err = s.service.DecideJoinRequest(s.ctx, models.Actor{UserID: founder}, interest.ID, models.DecisionAccept)
		s.requireCode(err, dErrors.CodeInvalidState)

		creatorRecord, err := s.partnerships.FindActiveForUserGroup(s.ctx, founder, g.ID)
		s.Require().NoError(err)
		_, err = s.service.Leave(s.ctx, founder, creatorRecord.ID)
		s.requireCode(err, dErrors.CodeInvalidState)
	})

	s.Run("non-qualifying opening", func() {
		pending := s.seedOpening(s.creator, openingmodels.StatusPending)
		_, err := s.service.ExpressInterest(s.ctx, stranger, pending.ID)
		s.requireCode(err, dErrors.CodeInvalidState)
	})
}

func (s *ServiceSuite) TestNotificationFailureNeverFailsTheOperation() {
	failing := &failingNotifier{}
	svc := New(s.partnerships, s.groups, s.openings,
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithNotifier(failing),
	)

	p, err := svc.ExpressInterest(s.ctx, newUser(), s.opening.ID)
	s.Require().NoError(err)
	s.Equal(models.StatusInterested, s.stored(p.ID).Status)
	s.Equal(int32(2), failing.calls.Load())
}

type failingNotifier struct {
	calls atomic.Int32
}

func (f *failingNotifier) Notify(context.Context, notification.Notification) error {
	f.calls.Add(1)
	return notification.ErrBufferFull
}

func (s *ServiceSuite) TestQueries() {
	g1, _ := s.createGroup(intPtr(4))
	g2, _ := s.createGroup(nil)
	s.admit(g1)
	pending := s.requestJoin(g1.ID)

	s.Run("group with roster", func() {
		details, err := s.service.GetGroup(s.ctx, g1.ID)
		s.Require().NoError(err)
		s.Equal(g1.ID, details.Group.ID)
		s.Len(details.Members, 3)
		s.Equal(2, details.AcceptedCount)
	})

	s.Run("groups for opening with counts", func() {
		summaries, err := s.service.GetGroupsForOpening(s.ctx, s.opening.ID)
		s.Require().NoError(err)
		s.Require().Len(summaries, 2)
		counts := map[id.GroupID]int{}
		for _, summary := range summaries {
			counts[summary.Group.ID] = summary.AcceptedCount
		}
		s.Equal(map[id.GroupID]int{g1.ID: 2, g2.ID: 1}, counts)
	})

	s.Run("all partnerships requires admin", func() {
		_, err := s.service.GetAllPartnerships(s.ctx, models.Actor{UserID: pending.UserID})
		s.requireCode(err, dErrors.CodeForbidden)

		all, err := s.service.GetAllPartnerships(s.ctx, models.Actor{UserID: newUser(), Admin: true})
		s.Require().NoError(err)
		s.Len(all, 4)
	})
}
