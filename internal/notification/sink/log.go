package sink

import (
	"context"
	"log/slog"

	"buyeralike/internal/notification"
)

// Log writes notifications to a structured logger. Used when no broker is configured.
type Log struct {
	logger *slog.Logger
}

func NewLog(logger *slog.Logger) *Log {
	return &Log{logger: logger}
}

func (l *Log) Deliver(ctx context.Context, n notification.Notification) error {
	l.logger.InfoContext(ctx, "notification",
		"recipient_id", n.RecipientID.String(),
		"event_type", n.EventType,
		"message", n.Message,
		"related_entity_type", n.RelatedEntityType,
		"related_entity_id", n.RelatedEntityID,
		"request_id", n.RequestID,
		"log_type", "notification",
	)
	return nil
}
