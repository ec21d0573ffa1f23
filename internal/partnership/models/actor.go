package models

import (
	id "buyeralike/pkg/domain"
)

// Actor is the authenticated caller of a role-gated operation.
type Actor struct {
	UserID id.UserID
	Admin  bool
}

// CanManage reports whether the actor may decide requests and change status on g.
func (a Actor) CanManage(g *PartnershipGroup) bool {
	return a.Admin || g.CreatorID == a.UserID
}

// JoinDecision is the outcome chosen by a group manager for a pending request.
type JoinDecision string

const (
	DecisionAccept  JoinDecision = "accept"
	DecisionDecline JoinDecision = "decline"
)

func (d JoinDecision) IsValid() bool {
	return d == DecisionAccept || d == DecisionDecline
}
