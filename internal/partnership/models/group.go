package models

import (
	"strings"
	"time"

	id "buyeralike/pkg/domain"
	dErrors "buyeralike/pkg/domain-errors"
)

// GroupStatus is the flat lifecycle status of a partnership group.
type GroupStatus string

const (
	GroupStatusForming             GroupStatus = "forming"
	GroupStatusClosedToNewPartners GroupStatus = "closed_to_new_partners"
	GroupStatusDocumentGathering   GroupStatus = "document_gathering"
	GroupStatusApprovalsComplete   GroupStatus = "approvals_complete"
	GroupStatusActive              GroupStatus = "active"
	GroupStatusOnHold              GroupStatus = "on_hold"
	GroupStatusDispute             GroupStatus = "dispute"
	GroupStatusCompleted           GroupStatus = "completed"
	GroupStatusCancelled           GroupStatus = "cancelled"
)

const maxGroupNameLength = 200

func (s GroupStatus) String() string {
	return string(s)
}

func (s GroupStatus) IsValid() bool {
	switch s {
	case GroupStatusForming, GroupStatusClosedToNewPartners, GroupStatusDocumentGathering,
		GroupStatusApprovalsComplete, GroupStatusActive, GroupStatusOnHold,
		GroupStatusDispute, GroupStatusCompleted, GroupStatusCancelled:
		return true
	}
	return false
}

func (s GroupStatus) IsTerminal() bool {
	return s == GroupStatusCompleted || s == GroupStatusCancelled
}

// CascadeStatus maps a terminal group status onto the member status it forces.
func (s GroupStatus) CascadeStatus() (PartnershipStatus, bool) {
	switch s {
	case GroupStatusCompleted:
		return StatusGroupCompleted, true
	case GroupStatusCancelled:
		return StatusGroupCancelled, true
	}
	return "", false
}

// ParseGroupStatus validates a raw status value.
func ParseGroupStatus(raw string) (GroupStatus, error) {
	s := GroupStatus(strings.TrimSpace(raw))
	if !s.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidArgument, "unrecognised group status: "+raw)
	}
	return s, nil
}

// PartnershipGroup is a capacity-bounded set of partnerships around one opening.
// Membership is not embedded: partnerships reference the group by ID.
//
// Invariants:
//   - Accepted members never exceed MaxMembers when it is set
//   - While non-terminal, CreatorID holds an accepted record with the creator role
//   - completed and cancelled are terminal; the only change allowed afterwards is
//     re-applying the same status
type PartnershipGroup struct {
	ID          id.GroupID   `json:"id"`
	OpeningID   id.OpeningID `json:"opening_id"`
	CreatorID   id.UserID    `json:"creator_id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	MaxMembers  *int         `json:"max_members,omitempty"`
	Status      GroupStatus  `json:"status"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// NewGroup validates and builds a group in forming.
func NewGroup(groupID id.GroupID, openingID id.OpeningID, creatorID id.UserID, name, description string, maxMembers *int, now time.Time) (*PartnershipGroup, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, dErrors.New(dErrors.CodeInvalidArgument, "group name is required")
	}
	if len(name) > maxGroupNameLength {
		return nil, dErrors.New(dErrors.CodeInvalidArgument, "group name must be 200 characters or less")
	}
	if maxMembers != nil && *maxMembers < 1 {
		return nil, dErrors.New(dErrors.CodeInvalidArgument, "max members must be at least 1")
	}
	var limit *int
	if maxMembers != nil {
		m := *maxMembers
		limit = &m
	}
	return &PartnershipGroup{
		ID:          groupID,
		OpeningID:   openingID,
		CreatorID:   creatorID,
		Name:        name,
		Description: strings.TrimSpace(description),
		MaxMembers:  limit,
		Status:      GroupStatusForming,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

func (g *PartnershipGroup) IsTerminal() bool {
	return g.Status.IsTerminal()
}

// CanAcceptJoinRequests allows new join requests only while forming.
func (g *PartnershipGroup) CanAcceptJoinRequests() error {
	if g.Status != GroupStatusForming {
		return dErrors.New(dErrors.CodeInvalidState, "group is not accepting members")
	}
	return nil
}

// CanAdmitMembers allows accepting pending requests until the group ends.
// Declines are always allowed so stale requests can be cleared.
func (g *PartnershipGroup) CanAdmitMembers() error {
	if g.IsTerminal() {
		return dErrors.New(dErrors.CodeInvalidState, "group has ended")
	}
	return nil
}

// HasRoomFor reports whether one more member fits given the current accepted count.
func (g *PartnershipGroup) HasRoomFor(accepted int) bool {
	return g.MaxMembers == nil || accepted < *g.MaxMembers
}

// CanSetStatus checks a status change. Non-terminal groups may move to any
// status; terminal groups only accept their own status again.
func (g *PartnershipGroup) CanSetStatus(next GroupStatus) error {
	if !next.IsValid() {
		return dErrors.New(dErrors.CodeInvalidArgument, "unrecognised group status: "+string(next))
	}
	if g.IsTerminal() && next != g.Status {
		return dErrors.New(dErrors.CodeInvalidState, "group has ended with status "+string(g.Status))
	}
	return nil
}

func (g *PartnershipGroup) ApplyStatus(next GroupStatus, now time.Time) {
	g.Status = next
	g.UpdatedAt = now
}

func (g *PartnershipGroup) Clone() *PartnershipGroup {
	if g == nil {
		return nil
	}
	cp := *g
	if g.MaxMembers != nil {
		m := *g.MaxMembers
		cp.MaxMembers = &m
	}
	return &cp
}
