package service

import (
	"context"
	"time"

	"buyeralike/internal/notification"
	openingmodels "buyeralike/internal/opening/models"
	"buyeralike/internal/partnership/models"
	id "buyeralike/pkg/domain"
)

// PartnershipStore persists partnership records. Implementations enforce the
// per-user uniqueness rules and return sentinel.ErrConflict on violation.
type PartnershipStore interface {
	Create(ctx context.Context, p *models.Partnership) error
	FindByID(ctx context.Context, pid id.PartnershipID) (*models.Partnership, error)
	FindByIDForUpdate(ctx context.Context, pid id.PartnershipID) (*models.Partnership, error)
	FindGeneralInterest(ctx context.Context, userID id.UserID, openingID id.OpeningID) (*models.Partnership, error)
	FindActiveForUserOpening(ctx context.Context, userID id.UserID, openingID id.OpeningID) (*models.Partnership, error)
	FindActiveForUserGroup(ctx context.Context, userID id.UserID, groupID id.GroupID) (*models.Partnership, error)
	CountAcceptedInGroup(ctx context.Context, groupID id.GroupID) (int, error)
	CountAcceptedByGroups(ctx context.Context, groupIDs []id.GroupID) (map[id.GroupID]int, error)
	Update(ctx context.Context, p *models.Partnership) error
	BulkUpdateStatus(ctx context.Context, groupID id.GroupID, from, to models.PartnershipStatus, now time.Time) ([]*models.Partnership, error)
	ListByGroup(ctx context.Context, groupID id.GroupID) ([]*models.Partnership, error)
	ListByUser(ctx context.Context, userID id.UserID) ([]*models.Partnership, error)
	ListAll(ctx context.Context) ([]*models.Partnership, error)
}

// GroupStore persists partnership groups.
type GroupStore interface {
	Create(ctx context.Context, g *models.PartnershipGroup) error
	FindByID(ctx context.Context, groupID id.GroupID) (*models.PartnershipGroup, error)
	FindByIDForUpdate(ctx context.Context, groupID id.GroupID) (*models.PartnershipGroup, error)
	Update(ctx context.Context, g *models.PartnershipGroup) error
	ListByOpening(ctx context.Context, openingID id.OpeningID) ([]*models.PartnershipGroup, error)
	LockOpening(ctx context.Context, openingID id.OpeningID) error
}

// OpeningReader reads the opening read model.
type OpeningReader interface {
	FindByID(ctx context.Context, openingID id.OpeningID) (*openingmodels.Opening, error)
}

// Notifier hands lifecycle notifications to the delivery pipeline.
type Notifier interface {
	Notify(ctx context.Context, n notification.Notification) error
}

// StoreTx runs fn atomically. Stores called with txCtx take part in the
// transaction.
type StoreTx interface {
	RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error
}
