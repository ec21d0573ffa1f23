// Package domain holds typed identifiers shared across modules.
//
// Each identifier wraps a uuid.UUID in its own named type so a GroupID can
// never be passed where a PartnershipID is expected. Parse* functions are the
// trust boundary: they reject empty, malformed and nil UUIDs.
package domain

import (
	"github.com/google/uuid"

	dErrors "buyeralike/pkg/domain-errors"
)

type (
	UserID        uuid.UUID
	OpeningID     uuid.UUID
	PartnershipID uuid.UUID
	GroupID       uuid.UUID
)

func (id UserID) String() string        { return uuid.UUID(id).String() }
func (id OpeningID) String() string     { return uuid.UUID(id).String() }
func (id PartnershipID) String() string { return uuid.UUID(id).String() }
func (id GroupID) String() string       { return uuid.UUID(id).String() }

func (id UserID) IsNil() bool        { return uuid.UUID(id) == uuid.Nil }
func (id OpeningID) IsNil() bool     { return uuid.UUID(id) == uuid.Nil }
func (id PartnershipID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id GroupID) IsNil() bool       { return uuid.UUID(id) == uuid.Nil }

func (id UserID) MarshalText() ([]byte, error)        { return uuid.UUID(id).MarshalText() }
func (id OpeningID) MarshalText() ([]byte, error)     { return uuid.UUID(id).MarshalText() }
func (id PartnershipID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }
func (id GroupID) MarshalText() ([]byte, error)       { return uuid.UUID(id).MarshalText() }

func (id *UserID) UnmarshalText(b []byte) error        { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *OpeningID) UnmarshalText(b []byte) error     { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *PartnershipID) UnmarshalText(b []byte) error { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *GroupID) UnmarshalText(b []byte) error       { return (*uuid.UUID)(id).UnmarshalText(b) }

func ParseUserID(s string) (UserID, error) {
	u, err := parseUUID(s, "user ID")
	return UserID(u), err
}

func ParseOpeningID(s string) (OpeningID, error) {
	u, err := parseUUID(s, "opening ID")
	return OpeningID(u), err
}

func ParsePartnershipID(s string) (PartnershipID, error) {
	u, err := parseUUID(s, "partnership ID")
	return PartnershipID(u), err
}

func ParseGroupID(s string) (GroupID, error) {
	u, err := parseUUID(s, "group ID")
	return GroupID(u), err
}

func parseUUID(s, label string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidArgument, label+" is required")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.Wrap(err, dErrors.CodeInvalidArgument, "invalid "+label)
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidArgument, label+" cannot be nil")
	}
	return u, nil
}
