package models

import (
	"strings"

	id "buyeralike/pkg/domain"
	dErrors "buyeralike/pkg/domain-errors"
)

// Status is the moderation status owned by the opening subsystem.
type Status string

const (
	StatusPending    Status = "pending"
	StatusApproved   Status = "approved"
	StatusRejected   Status = "rejected"
	StatusClosed     Status = "closed"
	StatusVerified   Status = "verified"
	StatusUnverified Status = "unverified"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusClosed, StatusVerified, StatusUnverified:
		return true
	}
	return false
}

// IsQualifying reports whether partnership activity is permitted under s.
func (s Status) IsQualifying() bool {
	return s == StatusVerified || s == StatusUnverified
}

// BecameQualifying reports the edge from a non-qualifying (or unknown) status
// into a qualifying one.
func BecameQualifying(previous, current Status) bool {
	return !previous.IsQualifying() && current.IsQualifying()
}

func ParseStatus(raw string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	if !s.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidArgument, "unrecognised opening status: "+raw)
	}
	return s, nil
}

// Opening is the read model of an external listing that partnerships form around.
type Opening struct {
	ID        id.OpeningID `json:"id"`
	CreatorID id.UserID    `json:"creator_id"`
	Title     string       `json:"title"`
	Status    Status       `json:"status"`
}

func (o *Opening) IsQualifying() bool {
	return o.Status.IsQualifying()
}
