package service

import (
	"context"

	"buyeralike/internal/notification"
	id "buyeralike/pkg/domain"
	"buyeralike/pkg/requestcontext"
)

// outbox collects notifications during a transaction for delivery after commit.
type outbox struct {
	pending []notification.Notification
}

// add queues one notification per distinct recipient. Nil recipients and
// recipients listed in skip are dropped.
func (o *outbox) add(ctx context.Context, event notification.EventType, message string, entity notification.EntityType, entityID string, recipients []id.UserID, skip ...id.UserID) {
	seen := make(map[id.UserID]struct{}, len(recipients)+len(skip))
	for _, u := range skip {
		seen[u] = struct{}{}
	}
	occurredAt := requestcontext.Now(ctx)
	requestID := requestcontext.RequestID(ctx)
	for _, recipient := range recipients {
		if recipient.IsNil() {
			continue
		}
		if _, dup := seen[recipient]; dup {
			continue
		}
		seen[recipient] = struct{}{}
		o.pending = append(o.pending, notification.Notification{
			RecipientID:       recipient,
			EventType:         event,
			Message:           message,
			RelatedEntityType: entity,
			RelatedEntityID:   entityID,
			OccurredAt:        occurredAt,
			RequestID:         requestID,
		})
	}
}

// dispatch hands queued notifications to the notifier. Failures are logged and
// never returned.
func (s *Service) dispatch(ctx context.Context, box *outbox) {
	if s.notifier == nil || box == nil {
		return
	}
	for _, n := range box.pending {
		if err := s.notifier.Notify(ctx, n); err != nil {
			s.logger.WarnContext(ctx, "notification delivery failed",
				"event_type", string(n.EventType),
				"recipient_id", n.RecipientID.String(),
				"related_entity_id", n.RelatedEntityID,
				"request_id", n.RequestID,
				"error", err,
			)
		}
	}
}
