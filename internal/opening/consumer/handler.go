// Package consumer applies opening status events to the read model and
// triggers group provisioning when an opening becomes qualifying.
package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"buyeralike/internal/opening/models"
	partnershipmodels "buyeralike/internal/partnership/models"
	kafkaconsumer "buyeralike/internal/platform/kafka/consumer"
	id "buyeralike/pkg/domain"
	dErrors "buyeralike/pkg/domain-errors"
	"buyeralike/pkg/requestcontext"
)

// StatusEvent is the payload of an opening status change.
type StatusEvent struct {
	OpeningID string `json:"opening_id"`
	CreatorID string `json:"creator_id"`
	Title     string `json:"title"`
	Status    string `json:"status"`
}

// OpeningStore upserts the read model and reports the replaced status.
type OpeningStore interface {
	Apply(ctx context.Context, o *models.Opening) (models.Status, error)
}

// Provisioner reacts to an opening entering a qualifying status.
type Provisioner interface {
	OnOpeningApproved(ctx context.Context, o *models.Opening) (*partnershipmodels.ProvisionResult, error)
}

type Handler struct {
	store       OpeningStore
	provisioner Provisioner
	logger      *slog.Logger
}

func NewHandler(store OpeningStore, provisioner Provisioner, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{store: store, provisioner: provisioner, logger: logger}
}

// Handle applies one event. Malformed events and read-model failures are
// returned; provisioning problems are logged only, since the opening's own
// status change has already been recorded.
func (h *Handler) Handle(ctx context.Context, msg *kafkaconsumer.Message) error {
	ctx = requestcontext.WithRequestID(ctx, fmt.Sprintf("%s/%d/%d", msg.Topic, msg.Partition, msg.Offset))

	opening, err := ParseStatusEvent(msg.Value)
	if err != nil {
		return err
	}

	previous, err := h.store.Apply(ctx, opening)
	if err != nil {
		return fmt.Errorf("apply opening %s: %w", opening.ID, err)
	}
	if !models.BecameQualifying(previous, opening.Status) {
		return nil
	}

	result, err := h.provisioner.OnOpeningApproved(ctx, opening)
	if err != nil {
		h.logger.ErrorContext(ctx, "opening approval rejected",
			"opening_id", opening.ID.String(),
			"status", string(opening.Status),
			"error", err,
		)
		return nil
	}
	if result.Outcome == partnershipmodels.ProvisionFailed {
		h.logger.WarnContext(ctx, "group provisioning failed",
			"opening_id", opening.ID.String(),
			"error", result.Err,
		)
		return nil
	}
	h.logger.InfoContext(ctx, "opening approved",
		"opening_id", opening.ID.String(),
		"previous_status", string(previous),
		"status", string(opening.Status),
		"outcome", string(result.Outcome),
	)
	return nil
}

// ParseStatusEvent decodes and validates a status event payload.
func ParseStatusEvent(payload []byte) (*models.Opening, error) {
	var event StatusEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInvalidArgument, "invalid opening status event")
	}
	openingID, err := id.ParseOpeningID(event.OpeningID)
	if err != nil {
		return nil, err
	}
	creatorID, err := id.ParseUserID(event.CreatorID)
	if err != nil {
		return nil, err
	}
	status, err := models.ParseStatus(event.Status)
	if err != nil {
		return nil, err
	}
	return &models.Opening{
		ID:        openingID,
		CreatorID: creatorID,
		Title:     strings.TrimSpace(event.Title),
		Status:    status,
	}, nil
}
