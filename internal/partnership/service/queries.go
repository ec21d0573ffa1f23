package service

import (
	"context"

	"buyeralike/internal/partnership/models"
	id "buyeralike/pkg/domain"
	dErrors "buyeralike/pkg/domain-errors"
)

// GetGroup returns a group with every record that references it.
func (s *Service) GetGroup(ctx context.Context, groupID id.GroupID) (*models.GroupDetails, error) {
	if err := requireGroupID(groupID); err != nil {
		return nil, err
	}
	g, err := s.groups.FindByID(ctx, groupID)
	if err != nil {
		return nil, wrapGroupErr(err, "failed to load group")
	}
	members, err := s.partnerships.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, wrapPartnershipErr(err, "failed to list group members")
	}
	return &models.GroupDetails{
		Group:         g,
		Members:       members,
		AcceptedCount: len(acceptedOnly(members)),
	}, nil
}

// GetGroupsForOpening lists an opening's groups with their accepted counts.
func (s *Service) GetGroupsForOpening(ctx context.Context, openingID id.OpeningID) ([]*models.GroupSummary, error) {
	if err := requireOpeningID(openingID); err != nil {
		return nil, err
	}
	groups, err := s.groups.ListByOpening(ctx, openingID)
	if err != nil {
		return nil, wrapGroupErr(err, "failed to list groups")
	}
	ids := make([]id.GroupID, 0, len(groups))
	for _, g := range groups {
		ids = append(ids, g.ID)
	}
	counts, err := s.partnerships.CountAcceptedByGroups(ctx, ids)
	if err != nil {
		return nil, wrapPartnershipErr(err, "failed to count group members")
	}

	out := make([]*models.GroupSummary, 0, len(groups))
	for _, g := range groups {
		out = append(out, &models.GroupSummary{Group: g, AcceptedCount: counts[g.ID]})
	}
	return out, nil
}

func (s *Service) GetMyPartnerships(ctx context.Context, userID id.UserID) ([]*models.Partnership, error) {
	if err := requireUserID(userID); err != nil {
		return nil, err
	}
	records, err := s.partnerships.ListByUser(ctx, userID)
	if err != nil {
		return nil, wrapPartnershipErr(err, "failed to list partnerships")
	}
	return records, nil
}

// GetAllPartnerships lists every record. Admin only.
func (s *Service) GetAllPartnerships(ctx context.Context, actor models.Actor) ([]*models.Partnership, error) {
	if !actor.Admin {
		return nil, dErrors.New(dErrors.CodeForbidden, "admin access required")
	}
	records, err := s.partnerships.ListAll(ctx)
	if err != nil {
		return nil, wrapPartnershipErr(err, "failed to list partnerships")
	}
	return records, nil
}
