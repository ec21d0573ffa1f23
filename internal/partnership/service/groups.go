package service

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"buyeralike/internal/notification"
	"buyeralike/internal/partnership/models"
	id "buyeralike/pkg/domain"
	dErrors "buyeralike/pkg/domain-errors"
	"buyeralike/pkg/requestcontext"
)

// CreateGroup founds a group for an opening. The caller must already hold an
// active partnership for the opening and becomes the group's creator member,
// bypassing the capacity guard.
func (s *Service) CreateGroup(ctx context.Context, userID id.UserID, openingID id.OpeningID, req models.CreateGroupRequest) (_ *models.GroupDetails, err error) {
	ctx, finish := s.observe(ctx, operationCreateGroup,
		attribute.String("user_id", userID.String()),
		attribute.String("opening_id", openingID.String()))
	defer func() { finish(err) }()

	if err := requireUserID(userID); err != nil {
		return nil, err
	}
	if err := requireOpeningID(openingID); err != nil {
		return nil, err
	}
	g, err := models.NewGroup(id.GroupID(uuid.New()), openingID, userID, req.Name, req.Description, req.MaxMembers, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}
	if _, err := s.qualifyingOpening(ctx, openingID); err != nil {
		return nil, err
	}

	box := &outbox{}
	var creator *models.Partnership
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		_, err := s.partnerships.FindActiveForUserOpening(txCtx, userID, openingID)
		if isNotFound(err) {
			return dErrors.New(dErrors.CodeForbidden, "express interest in the opening before creating a group")
		}
		if err != nil {
			return wrapPartnershipErr(err, "failed to look up partnership")
		}

		p, err := s.foundGroup(txCtx, g)
		if err != nil {
			return err
		}
		box.add(txCtx, notification.EventGroupCreated, "Group created: "+g.Name,
			notification.EntityGroup, g.ID.String(), []id.UserID{userID})
		creator = p
		return nil
	})
	if err != nil {
		return nil, wrapTxErr(err)
	}

	s.completeTransition(ctx, operationCreateGroup, creator, box, "group_id", g.ID.String())
	return &models.GroupDetails{Group: g, Members: []*models.Partnership{creator}, AcceptedCount: 1}, nil
}

// foundGroup persists g and admits its creator: the creator's general interest
// record is re-targeted when present, otherwise a creator record is created.
// Must run inside a transaction.
func (s *Service) foundGroup(ctx context.Context, g *models.PartnershipGroup) (*models.Partnership, error) {
	if err := s.groups.Create(ctx, g); err != nil {
		return nil, wrapGroupErr(err, "failed to create group")
	}

	now := requestcontext.Now(ctx)
	p, err := s.partnerships.FindGeneralInterest(ctx, g.CreatorID, g.OpeningID)
	switch {
	case err == nil:
		p.ApplyCreatorAdmission(g.ID, now)
		err = s.partnerships.Update(ctx, p)
	case isNotFound(err):
		p = models.NewCreatorMembership(id.PartnershipID(uuid.New()), g.CreatorID, g.OpeningID, g.ID, now)
		err = s.partnerships.Create(ctx, p)
	default:
		return nil, wrapPartnershipErr(err, "failed to look up interest")
	}
	if err != nil {
		return nil, wrapPartnershipErr(err, "failed to admit group creator")
	}
	return p, nil
}

// SetStatus changes a group's status. A live group may move to any of the
// nine statuses. completed and cancelled are final: afterwards only the same
// status may be applied again, which re-runs the cascade, and any other value
// is rejected with CodeInvalidState. Both cascade to every accepted member in
// one bulk update.
func (s *Service) SetStatus(ctx context.Context, actor models.Actor, groupID id.GroupID, status string) (_ *models.StatusChange, err error) {
	ctx, finish := s.observe(ctx, operationSetStatus,
		attribute.String("actor_id", actor.UserID.String()),
		attribute.String("group_id", groupID.String()),
		attribute.String("status", status))
	defer func() { finish(err) }()

	if err := requireUserID(actor.UserID); err != nil {
		return nil, err
	}
	if err := requireGroupID(groupID); err != nil {
		return nil, err
	}
	next, err := models.ParseGroupStatus(status)
	if err != nil {
		return nil, err
	}

	box := &outbox{}
	var change *models.StatusChange
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		g, err := s.groups.FindByIDForUpdate(txCtx, groupID)
		if err != nil {
			return wrapGroupErr(err, "failed to load group")
		}
		if !actor.CanManage(g) {
			return dErrors.New(dErrors.CodeForbidden, "only the group creator can change its status")
		}
		if err := g.CanSetStatus(next); err != nil {
			return err
		}

		now := requestcontext.Now(txCtx)
		previous := g.Status
		g.ApplyStatus(next, now)
		if err := s.groups.Update(txCtx, g); err != nil {
			return wrapGroupErr(err, "failed to update group status")
		}
		change = &models.StatusChange{Group: g, PreviousStatus: previous}

		memberStatus, terminal := next.CascadeStatus()
		if terminal {
			moved, err := s.partnerships.BulkUpdateStatus(txCtx, g.ID, models.StatusAcceptedIntoGroup, memberStatus, now)
			if err != nil {
				return wrapPartnershipErr(err, "failed to cascade group status")
			}
			change.Cascaded = moved
			event := notification.EventGroupCompleted
			if next == models.GroupStatusCancelled {
				event = notification.EventGroupCancelled
			}
			box.add(txCtx, event, "Group "+g.Name+" is now "+string(next),
				notification.EntityGroup, g.ID.String(), memberIDs(moved), actor.UserID)
			return nil
		}

		if previous == next {
			return nil
		}
		members, err := s.partnerships.ListByGroup(txCtx, g.ID)
		if err != nil {
			return wrapPartnershipErr(err, "failed to list group members")
		}
		box.add(txCtx, notification.EventGroupStatusChanged, "Group "+g.Name+" is now "+string(next),
			notification.EntityGroup, g.ID.String(), memberIDs(acceptedOnly(members)), actor.UserID)
		return nil
	})
	if err != nil {
		return nil, wrapTxErr(err)
	}

	if memberStatus, terminal := next.CascadeStatus(); terminal {
		s.metrics.IncrementTransitions(operationSetStatus, string(memberStatus), len(change.Cascaded))
		s.metrics.ObserveCascade(len(change.Cascaded))
	}
	s.logTransition(ctx, operationSetStatus,
		"group_id", groupID.String(),
		"actor_id", actor.UserID.String(),
		"previous_status", string(change.PreviousStatus),
		"status", string(next),
		"cascaded", len(change.Cascaded),
	)
	s.dispatch(ctx, box)
	return change, nil
}

func memberIDs(records []*models.Partnership) []id.UserID {
	out := make([]id.UserID, 0, len(records))
	for _, p := range records {
		out = append(out, p.UserID)
	}
	return out
}

func acceptedOnly(records []*models.Partnership) []*models.Partnership {
	var out []*models.Partnership
	for _, p := range records {
		if p.Status == models.StatusAcceptedIntoGroup {
			out = append(out, p)
		}
	}
	return out
}
