package models

import (
	"time"

	id "buyeralike/pkg/domain"
	dErrors "buyeralike/pkg/domain-errors"
)

// PartnershipStatus is the lifecycle status of one user's relationship to an opening.
type PartnershipStatus string

const (
	StatusInterested        PartnershipStatus = "interested"
	StatusPendingGroupJoin  PartnershipStatus = "pending_group_join"
	StatusAcceptedIntoGroup PartnershipStatus = "accepted_into_group"
	StatusDeclinedByGroup   PartnershipStatus = "declined_by_group"
	StatusWithdrawnInterest PartnershipStatus = "withdrawn_interest"
	StatusLeftGroup         PartnershipStatus = "left_group"
	StatusGroupCompleted    PartnershipStatus = "group_completed"
	StatusGroupCancelled    PartnershipStatus = "group_cancelled"
)

// RoleCreator is the only role tag with behavioural meaning.
const RoleCreator = "creator"

// partnershipTransitions lists every permitted source -> target edge.
// interested -> accepted_into_group exists only for a creator founding a group.
var partnershipTransitions = map[PartnershipStatus][]PartnershipStatus{
	StatusInterested:        {StatusPendingGroupJoin, StatusWithdrawnInterest, StatusAcceptedIntoGroup},
	StatusPendingGroupJoin:  {StatusAcceptedIntoGroup, StatusDeclinedByGroup, StatusWithdrawnInterest},
	StatusAcceptedIntoGroup: {StatusLeftGroup, StatusGroupCompleted, StatusGroupCancelled},
}

func (s PartnershipStatus) String() string {
	return string(s)
}

func (s PartnershipStatus) IsValid() bool {
	switch s {
	case StatusInterested, StatusPendingGroupJoin, StatusAcceptedIntoGroup,
		StatusDeclinedByGroup, StatusWithdrawnInterest, StatusLeftGroup,
		StatusGroupCompleted, StatusGroupCancelled:
		return true
	}
	return false
}

// IsActive reports whether the status still counts as a live relationship.
func (s PartnershipStatus) IsActive() bool {
	return s == StatusInterested || s == StatusPendingGroupJoin || s == StatusAcceptedIntoGroup
}

func (s PartnershipStatus) IsTerminal() bool {
	return s.IsValid() && !s.IsActive()
}

func (s PartnershipStatus) CanTransitionTo(next PartnershipStatus) bool {
	for _, allowed := range partnershipTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ActiveStatuses is the set that participates in the per-user uniqueness rules.
func ActiveStatuses() []PartnershipStatus {
	return []PartnershipStatus{StatusInterested, StatusPendingGroupJoin, StatusAcceptedIntoGroup}
}

// Partnership is one user's relationship (intent or membership) to one opening,
// optionally scoped to a group.
//
// Invariants:
//   - At most one groupless record in interested per (UserID, OpeningID)
//   - At most one pending/accepted record per (UserID, OpeningID, GroupID)
//   - accepted_into_group always carries a GroupID
//   - Records are never deleted; they end in a terminal status
type Partnership struct {
	ID          id.PartnershipID  `json:"id"`
	UserID      id.UserID         `json:"user_id"`
	OpeningID   id.OpeningID      `json:"opening_id"`
	GroupID     *id.GroupID       `json:"partnership_group_id,omitempty"`
	Status      PartnershipStatus `json:"status"`
	RoleInGroup string            `json:"role_in_group,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// NewGeneralInterest creates a groupless record in interested.
func NewGeneralInterest(pid id.PartnershipID, userID id.UserID, openingID id.OpeningID, now time.Time) *Partnership {
	return &Partnership{
		ID:        pid,
		UserID:    userID,
		OpeningID: openingID,
		Status:    StatusInterested,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewJoinRequest creates a record pending admission into a group.
func NewJoinRequest(pid id.PartnershipID, userID id.UserID, openingID id.OpeningID, groupID id.GroupID, now time.Time) *Partnership {
	return &Partnership{
		ID:        pid,
		UserID:    userID,
		OpeningID: openingID,
		GroupID:   &groupID,
		Status:    StatusPendingGroupJoin,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewCreatorMembership creates the founding member record of a group.
func NewCreatorMembership(pid id.PartnershipID, userID id.UserID, openingID id.OpeningID, groupID id.GroupID, now time.Time) *Partnership {
	return &Partnership{
		ID:          pid,
		UserID:      userID,
		OpeningID:   openingID,
		GroupID:     &groupID,
		Status:      StatusAcceptedIntoGroup,
		RoleInGroup: RoleCreator,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (p *Partnership) HasGroup() bool {
	return p.GroupID != nil && !p.GroupID.IsNil()
}

// InGroup reports whether the record references groupID.
func (p *Partnership) InGroup(groupID id.GroupID) bool {
	return p.HasGroup() && *p.GroupID == groupID
}

func (p *Partnership) IsCreator() bool {
	return p.RoleInGroup == RoleCreator
}

// IsGeneralInterest reports whether this is the user's groupless interest record.
func (p *Partnership) IsGeneralInterest() bool {
	return !p.HasGroup() && p.Status == StatusInterested
}

// CanRequestJoin checks that a general interest record may be re-targeted to a group.
func (p *Partnership) CanRequestJoin() error {
	if !p.IsGeneralInterest() {
		return dErrors.New(dErrors.CodeInvalidState, "only a general interest record can be re-targeted to a group")
	}
	return nil
}

// ApplyJoinRequest re-targets the record to groupID as a pending join request.
// Call CanRequestJoin first.
func (p *Partnership) ApplyJoinRequest(groupID id.GroupID, now time.Time) {
	p.GroupID = &groupID
	p.Status = StatusPendingGroupJoin
	p.UpdatedAt = now
}

// ApplyCreatorAdmission re-targets the record to groupID as its founding member.
// The capacity guard is bypassed: the creator always counts toward the limit.
func (p *Partnership) ApplyCreatorAdmission(groupID id.GroupID, now time.Time) {
	p.GroupID = &groupID
	p.Status = StatusAcceptedIntoGroup
	p.RoleInGroup = RoleCreator
	p.UpdatedAt = now
}

// CanDecide checks that a join decision may be taken on this record.
func (p *Partnership) CanDecide() error {
	if p.Status != StatusPendingGroupJoin {
		return dErrors.New(dErrors.CodeInvalidState, "partnership is not awaiting a join decision")
	}
	return nil
}

func (p *Partnership) ApplyAccept(now time.Time) {
	p.Status = StatusAcceptedIntoGroup
	p.UpdatedAt = now
}

func (p *Partnership) ApplyDecline(now time.Time) {
	p.Status = StatusDeclinedByGroup
	p.UpdatedAt = now
}

// CanWithdraw allows withdrawal from interest or a pending join request only.
func (p *Partnership) CanWithdraw() error {
	if !p.Status.CanTransitionTo(StatusWithdrawnInterest) {
		return dErrors.New(dErrors.CodeInvalidState, "only interest or a pending join request can be withdrawn; use leave for accepted members")
	}
	return nil
}

func (p *Partnership) ApplyWithdraw(now time.Time) {
	p.Status = StatusWithdrawnInterest
	p.UpdatedAt = now
}

// CanLeave allows accepted members other than the group creator to leave.
func (p *Partnership) CanLeave() error {
	if !p.Status.CanTransitionTo(StatusLeftGroup) {
		return dErrors.New(dErrors.CodeInvalidState, "only accepted members can leave a group")
	}
	if p.IsCreator() {
		return dErrors.New(dErrors.CodeInvalidState, "the group creator cannot leave; end the group instead")
	}
	return nil
}

func (p *Partnership) ApplyLeave(now time.Time) {
	p.Status = StatusLeftGroup
	p.UpdatedAt = now
}

// Clone returns a deep copy so stores never share mutable state with callers.
func (p *Partnership) Clone() *Partnership {
	if p == nil {
		return nil
	}
	cp := *p
	if p.GroupID != nil {
		g := *p.GroupID
		cp.GroupID = &g
	}
	return &cp
}
