package service

import (
	"context"

	"buyeralike/internal/partnership/models"
	dErrors "buyeralike/pkg/domain-errors"
)

// ensureCapacity admits one more accepted member into g or fails with
// CodeCapacityExceeded. g must have been loaded with FindByIDForUpdate in the
// same transaction so concurrent admissions count one after another.
func (s *Service) ensureCapacity(ctx context.Context, g *models.PartnershipGroup) error {
	if g.MaxMembers == nil {
		return nil
	}
	accepted, err := s.partnerships.CountAcceptedInGroup(ctx, g.ID)
	if err != nil {
		return wrapPartnershipErr(err, "failed to count group members")
	}
	if !g.HasRoomFor(accepted) {
		s.metrics.IncrementCapacityRejections()
		return dErrors.New(dErrors.CodeCapacityExceeded, "group is full")
	}
	return nil
}
