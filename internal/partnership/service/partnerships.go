package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"buyeralike/internal/notification"
	openingmodels "buyeralike/internal/opening/models"
	"buyeralike/internal/partnership/models"
	id "buyeralike/pkg/domain"
	dErrors "buyeralike/pkg/domain-errors"
	"buyeralike/pkg/requestcontext"
)

// ExpressInterest records a user's general interest in a qualifying opening.
func (s *Service) ExpressInterest(ctx context.Context, userID id.UserID, openingID id.OpeningID) (_ *models.Partnership, err error) {
	ctx, finish := s.observe(ctx, operationExpressInterest,
		attribute.String("user_id", userID.String()),
		attribute.String("opening_id", openingID.String()))
	defer func() { finish(err) }()

	if err := requireUserID(userID); err != nil {
		return nil, err
	}
	if err := requireOpeningID(openingID); err != nil {
		return nil, err
	}
	opening, err := s.qualifyingOpening(ctx, openingID)
	if err != nil {
		return nil, err
	}

	box := &outbox{}
	var created *models.Partnership
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		_, findErr := s.partnerships.FindGeneralInterest(txCtx, userID, openingID)
		if findErr == nil {
			return dErrors.New(dErrors.CodeConflict, "interest already expressed for this opening")
		}
		if !isNotFound(findErr) {
			return wrapPartnershipErr(findErr, "failed to look up interest")
		}

		p := models.NewGeneralInterest(id.PartnershipID(uuid.New()), userID, openingID, requestcontext.Now(txCtx))
		if err := s.partnerships.Create(txCtx, p); err != nil {
			return translate(err, "partnership not found", "interest already expressed for this opening", "failed to record interest")
		}
		box.add(txCtx, notification.EventInterestExpressed, "New partnership interest in "+opening.Title,
			notification.EntityPartnership, p.ID.String(), []id.UserID{userID, opening.CreatorID})
		created = p
		return nil
	})
	if err != nil {
		return nil, wrapTxErr(err)
	}

	s.completeTransition(ctx, operationExpressInterest, created, box)
	return created, nil
}

// RequestJoinGroup asks to join a forming group. A general interest record for
// the group's opening is re-targeted; otherwise a new pending record is created.
func (s *Service) RequestJoinGroup(ctx context.Context, userID id.UserID, groupID id.GroupID) (_ *models.Partnership, err error) {
	ctx, finish := s.observe(ctx, operationRequestJoinGroup,
		attribute.String("user_id", userID.String()),
		attribute.String("group_id", groupID.String()))
	defer func() { finish(err) }()

	if err := requireUserID(userID); err != nil {
		return nil, err
	}
	if err := requireGroupID(groupID); err != nil {
		return nil, err
	}

	box := &outbox{}
	var pending *models.Partnership
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		g, err := s.groups.FindByIDForUpdate(txCtx, groupID)
		if err != nil {
			return wrapGroupErr(err, "failed to load group")
		}
		if err := g.CanAcceptJoinRequests(); err != nil {
			return err
		}
		if _, err := s.qualifyingOpening(txCtx, g.OpeningID); err != nil {
			return err
		}

		_, err = s.partnerships.FindActiveForUserGroup(txCtx, userID, g.ID)
		if err == nil {
			return dErrors.New(dErrors.CodeConflict, "already requested or joined this group")
		}
		if !isNotFound(err) {
			return wrapPartnershipErr(err, "failed to look up group membership")
		}

		now := requestcontext.Now(txCtx)
		p, err := s.partnerships.FindGeneralInterest(txCtx, userID, g.OpeningID)
		switch {
		case err == nil:
			if err := p.CanRequestJoin(); err != nil {
				return err
			}
			p.ApplyJoinRequest(g.ID, now)
			err = s.partnerships.Update(txCtx, p)
		case isNotFound(err):
			p = models.NewJoinRequest(id.PartnershipID(uuid.New()), userID, g.OpeningID, g.ID, now)
			err = s.partnerships.Create(txCtx, p)
		default:
			return wrapPartnershipErr(err, "failed to look up interest")
		}
		if err != nil {
			return translate(err, "partnership not found", "already requested or joined this group", "failed to record join request")
		}

		box.add(txCtx, notification.EventJoinRequested, "Join request for "+g.Name,
			notification.EntityPartnership, p.ID.String(), []id.UserID{userID, g.CreatorID})
		pending = p
		return nil
	})
	if err != nil {
		return nil, wrapTxErr(err)
	}

	s.completeTransition(ctx, operationRequestJoinGroup, pending, box, "group_id", groupID.String())
	return pending, nil
}

// DecideJoinRequest accepts or declines a pending join request. Only the group
// creator or an admin may decide. Acceptance goes through the capacity guard
// and needs a live group; a decline always applies to a pending request.
func (s *Service) DecideJoinRequest(ctx context.Context, actor models.Actor, partnershipID id.PartnershipID, decision models.JoinDecision) (_ *models.Partnership, err error) {
	ctx, finish := s.observe(ctx, operationDecideJoinRequest,
		attribute.String("actor_id", actor.UserID.String()),
		attribute.String("partnership_id", partnershipID.String()),
		attribute.String("decision", string(decision)))
	defer func() { finish(err) }()

	if err := requireUserID(actor.UserID); err != nil {
		return nil, err
	}
	if err := requirePartnershipID(partnershipID); err != nil {
		return nil, err
	}
	if !decision.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvalidArgument, "decision must be accept or decline")
	}

	// The group is locked before the record; read the record once to find it.
	current, err := s.partnerships.FindByID(ctx, partnershipID)
	if err != nil {
		return nil, wrapPartnershipErr(err, "failed to load partnership")
	}
	if !current.HasGroup() {
		return nil, dErrors.New(dErrors.CodeInvalidState, "partnership is not awaiting a join decision")
	}
	groupID := *current.GroupID

	box := &outbox{}
	var decided *models.Partnership
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		g, err := s.groups.FindByIDForUpdate(txCtx, groupID)
		if err != nil {
			return wrapGroupErr(err, "failed to load group")
		}
		if !actor.CanManage(g) {
			return dErrors.New(dErrors.CodeForbidden, "only the group creator can decide join requests")
		}
		p, err := s.partnerships.FindByIDForUpdate(txCtx, partnershipID)
		if err != nil {
			return wrapPartnershipErr(err, "failed to load partnership")
		}
		if !p.InGroup(g.ID) {
			return dErrors.New(dErrors.CodeInvalidState, "partnership no longer targets this group")
		}
		if err := p.CanDecide(); err != nil {
			return err
		}

		now := requestcontext.Now(txCtx)
		event := notification.EventJoinDeclined
		message := "Join request declined for " + g.Name
		if decision == models.DecisionAccept {
			if err := g.CanAdmitMembers(); err != nil {
				return err
			}
			if err := s.ensureCapacity(txCtx, g); err != nil {
				return err
			}
			p.ApplyAccept(now)
			event = notification.EventJoinAccepted
			message = "Join request accepted for " + g.Name
		} else {
			p.ApplyDecline(now)
		}
		if err := s.partnerships.Update(txCtx, p); err != nil {
			return wrapPartnershipErr(err, "failed to record decision")
		}

		box.add(txCtx, event, message, notification.EntityPartnership, p.ID.String(),
			[]id.UserID{p.UserID, actor.UserID, g.CreatorID})
		decided = p
		return nil
	})
	if err != nil {
		return nil, wrapTxErr(err)
	}

	s.completeTransition(ctx, operationDecideJoinRequest, decided, box,
		"group_id", groupID.String(), "actor_id", actor.UserID.String())
	return decided, nil
}

// Withdraw ends the user's own interest or pending join request.
func (s *Service) Withdraw(ctx context.Context, userID id.UserID, partnershipID id.PartnershipID) (_ *models.Partnership, err error) {
	ctx, finish := s.observe(ctx, operationWithdraw,
		attribute.String("user_id", userID.String()),
		attribute.String("partnership_id", partnershipID.String()))
	defer func() { finish(err) }()

	return s.exitPartnership(ctx, operationWithdraw, userID, partnershipID,
		(*models.Partnership).CanWithdraw,
		(*models.Partnership).ApplyWithdraw,
		notification.EventInterestWithdrawn, "Partnership interest withdrawn")
}

// Leave removes the user from a group they were accepted into. The freed slot
// is immediately available to the capacity guard.
func (s *Service) Leave(ctx context.Context, userID id.UserID, partnershipID id.PartnershipID) (_ *models.Partnership, err error) {
	ctx, finish := s.observe(ctx, operationLeave,
		attribute.String("user_id", userID.String()),
		attribute.String("partnership_id", partnershipID.String()))
	defer func() { finish(err) }()

	return s.exitPartnership(ctx, operationLeave, userID, partnershipID,
		(*models.Partnership).CanLeave,
		(*models.Partnership).ApplyLeave,
		notification.EventMemberLeft, "A member left the group")
}

// exitPartnership runs a self-service transition into a terminal status and
// notifies the user and, for group records, the group creator.
func (s *Service) exitPartnership(
	ctx context.Context,
	operation string,
	userID id.UserID,
	partnershipID id.PartnershipID,
	validate func(*models.Partnership) error,
	apply func(*models.Partnership, time.Time),
	event notification.EventType,
	message string,
) (*models.Partnership, error) {
	if err := requireUserID(userID); err != nil {
		return nil, err
	}
	if err := requirePartnershipID(partnershipID); err != nil {
		return nil, err
	}

	box := &outbox{}
	var updated *models.Partnership
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		p, err := s.partnerships.FindByIDForUpdate(txCtx, partnershipID)
		if err != nil {
			return wrapPartnershipErr(err, "failed to load partnership")
		}
		if p.UserID != userID {
			return dErrors.New(dErrors.CodeForbidden, "partnership belongs to another user")
		}
		if err := validate(p); err != nil {
			return err
		}

		notify := []id.UserID{userID}
		if p.HasGroup() {
			g, err := s.groups.FindByID(txCtx, *p.GroupID)
			if err != nil {
				return wrapGroupErr(err, "failed to load group")
			}
			notify = append(notify, g.CreatorID)
		}

		apply(p, requestcontext.Now(txCtx))
		if err := s.partnerships.Update(txCtx, p); err != nil {
			return wrapPartnershipErr(err, "failed to update partnership")
		}
		box.add(txCtx, event, message, notification.EntityPartnership, p.ID.String(), notify)
		updated = p
		return nil
	})
	if err != nil {
		return nil, wrapTxErr(err)
	}

	s.completeTransition(ctx, operation, updated, box)
	return updated, nil
}

func (s *Service) qualifyingOpening(ctx context.Context, openingID id.OpeningID) (*openingmodels.Opening, error) {
	opening, err := s.openings.FindByID(ctx, openingID)
	if err != nil {
		return nil, wrapOpeningErr(err, "failed to load opening")
	}
	if !opening.IsQualifying() {
		return nil, dErrors.New(dErrors.CodeInvalidState, "opening is not open for partnerships")
	}
	return opening, nil
}

// completeTransition runs the post-commit side effects of a single-record
// transition.
func (s *Service) completeTransition(ctx context.Context, operation string, p *models.Partnership, box *outbox, attributes ...any) {
	s.metrics.IncrementTransitions(operation, string(p.Status), 1)
	s.logTransition(ctx, operation, append(attributes,
		"partnership_id", p.ID.String(),
		"user_id", p.UserID.String(),
		"status", string(p.Status),
	)...)
	s.dispatch(ctx, box)
}
