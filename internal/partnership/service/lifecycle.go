package service

import (
	"context"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"buyeralike/internal/notification"
	openingmodels "buyeralike/internal/opening/models"
	"buyeralike/internal/partnership/models"
	id "buyeralike/pkg/domain"
	dErrors "buyeralike/pkg/domain-errors"
	"buyeralike/pkg/requestcontext"
)

const (
	provisionedGroupSuffix = " partners"
	maxGroupNameBytes      = 200
)

// OnOpeningApproved provisions the opening creator's group when the opening
// enters a qualifying status. It is idempotent: when the creator already holds
// a group-bound active record nothing changes. Result.Group is left nil when
// that record sits in a group someone else founded.
//
// Provisioning failures are reported through the result and a notification to
// the creator, never as an error; the error return covers invalid input only.
func (s *Service) OnOpeningApproved(ctx context.Context, opening *openingmodels.Opening) (_ *models.ProvisionResult, err error) {
	if opening == nil {
		return nil, dErrors.New(dErrors.CodeInvalidArgument, "opening is required")
	}
	ctx, finish := s.observe(ctx, operationOnOpeningApproved,
		attribute.String("opening_id", opening.ID.String()),
		attribute.String("creator_id", opening.CreatorID.String()))
	defer func() { finish(err) }()

	if err := requireOpeningID(opening.ID); err != nil {
		return nil, err
	}
	if err := requireUserID(opening.CreatorID); err != nil {
		return nil, err
	}
	if !opening.IsQualifying() {
		return nil, dErrors.New(dErrors.CodeInvalidState, "opening is not in a qualifying status")
	}

	var capacity *int
	if s.defaultGroupCapacity > 0 {
		c := s.defaultGroupCapacity
		capacity = &c
	}

	result := &models.ProvisionResult{}
	box := &outbox{}
	txErr := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.groups.LockOpening(txCtx, opening.ID); err != nil {
			return wrapGroupErr(err, "failed to lock opening")
		}

		active, err := s.partnerships.FindActiveForUserOpening(txCtx, opening.CreatorID, opening.ID)
		if err != nil && !isNotFound(err) {
			return wrapPartnershipErr(err, "failed to look up creator partnership")
		}
		if err == nil && active.HasGroup() {
			g, err := s.groups.FindByID(txCtx, *active.GroupID)
			if err != nil {
				return wrapGroupErr(err, "failed to load existing group")
			}
			result.Outcome = models.ProvisionExisting
			result.Partnership = active
			if g.CreatorID == opening.CreatorID {
				result.Group = g
			}
			return nil
		}

		g, err := models.NewGroup(id.GroupID(uuid.New()), opening.ID, opening.CreatorID,
			provisionedGroupName(opening.Title), "", capacity, requestcontext.Now(txCtx))
		if err != nil {
			return err
		}
		p, err := s.foundGroup(txCtx, g)
		if err != nil {
			return err
		}
		box.add(txCtx, notification.EventGroupEstablished, "Your group "+g.Name+" is ready",
			notification.EntityGroup, g.ID.String(), []id.UserID{opening.CreatorID})
		result.Outcome = models.ProvisionCreated
		result.Group = g
		result.Partnership = p
		return nil
	})

	if txErr != nil {
		txErr = wrapTxErr(txErr)
		s.logger.ErrorContext(ctx, "group provisioning failed",
			"opening_id", opening.ID.String(),
			"creator_id", opening.CreatorID.String(),
			"error", txErr,
		)
		s.metrics.IncrementProvisioning(string(models.ProvisionFailed))
		failed := &outbox{}
		failed.add(ctx, notification.EventGroupProvisioningFailed,
			"We could not set up a partnership group for "+opening.Title,
			notification.EntityOpening, opening.ID.String(), []id.UserID{opening.CreatorID})
		s.dispatch(ctx, failed)
		return &models.ProvisionResult{Outcome: models.ProvisionFailed, Err: txErr}, nil
	}

	s.metrics.IncrementProvisioning(string(result.Outcome))
	if result.Outcome == models.ProvisionCreated {
		s.metrics.IncrementTransitions(operationOnOpeningApproved, string(result.Partnership.Status), 1)
	}
	s.logTransition(ctx, operationOnOpeningApproved,
		"opening_id", opening.ID.String(),
		"creator_id", opening.CreatorID.String(),
		"group_id", result.Partnership.GroupID.String(),
		"outcome", string(result.Outcome),
	)
	s.dispatch(ctx, box)
	return result, nil
}

// provisionedGroupName derives a group name from the opening title, trimming
// the title on a rune boundary so the name fits the length limit.
func provisionedGroupName(title string) string {
	limit := maxGroupNameBytes - len(provisionedGroupSuffix)
	for len(title) > limit {
		_, size := utf8.DecodeLastRuneInString(title)
		title = title[:len(title)-size]
	}
	return title + provisionedGroupSuffix
}
