package service

import (
	"errors"

	id "buyeralike/pkg/domain"
	dErrors "buyeralike/pkg/domain-errors"
	"buyeralike/pkg/platform/sentinel"
)

// translate maps store sentinels to domain codes. Domain errors pass through;
// anything else becomes CodeInternal with msg.
func translate(err error, notFound, conflict, msg string) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, notFound)
	case errors.Is(err, sentinel.ErrConflict):
		return dErrors.New(dErrors.CodeConflict, conflict)
	case errors.Is(err, sentinel.ErrUnavailable):
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "storage unavailable")
	}
	var de *dErrors.Error
	if errors.As(err, &de) {
		return err
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, msg)
}

func wrapPartnershipErr(err error, msg string) error {
	return translate(err, "partnership not found", "an active partnership already exists", msg)
}

func wrapGroupErr(err error, msg string) error {
	return translate(err, "group not found", "group already exists", msg)
}

func wrapOpeningErr(err error, msg string) error {
	return translate(err, "opening not found", "opening conflict", msg)
}

// wrapTxErr classifies errors escaping RunInTx, such as begin or commit failures.
func wrapTxErr(err error) error {
	return translate(err, "record not found", "concurrent update conflict", "transaction failed")
}

func requireUserID(userID id.UserID) error {
	if userID.IsNil() {
		return dErrors.New(dErrors.CodeInvalidArgument, "user ID is required")
	}
	return nil
}

func requireOpeningID(openingID id.OpeningID) error {
	if openingID.IsNil() {
		return dErrors.New(dErrors.CodeInvalidArgument, "opening ID is required")
	}
	return nil
}

func requireGroupID(groupID id.GroupID) error {
	if groupID.IsNil() {
		return dErrors.New(dErrors.CodeInvalidArgument, "group ID is required")
	}
	return nil
}

func requirePartnershipID(pid id.PartnershipID) error {
	if pid.IsNil() {
		return dErrors.New(dErrors.CodeInvalidArgument, "partnership ID is required")
	}
	return nil
}

func isNotFound(err error) bool {
	return errors.Is(err, sentinel.ErrNotFound)
}
