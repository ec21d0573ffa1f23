package sink

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"buyeralike/internal/notification"
)

const defaultStreamMaxLen = 100_000

// RedisStream appends notifications to a capped Redis stream for
// downstream delivery workers.
type RedisStream struct {
	client redis.Cmdable
	stream string
	maxLen int64
}

func NewRedisStream(client redis.Cmdable, stream string, maxLen int64) *RedisStream {
	if maxLen <= 0 {
		maxLen = defaultStreamMaxLen
	}
	return &RedisStream{client: client, stream: stream, maxLen: maxLen}
}

func (r *RedisStream) Deliver(ctx context.Context, n notification.Notification) error {
	err := r.client.XAdd(ctx, &redis.XAddArgs{
		Stream: r.stream,
		MaxLen: r.maxLen,
		Approx: true,
		Values: map[string]any{
			"recipient_id":        n.RecipientID.String(),
			"event_type":          string(n.EventType),
			"message":             n.Message,
			"related_entity_type": string(n.RelatedEntityType),
			"related_entity_id":   n.RelatedEntityID,
			"occurred_at":         n.OccurredAt.UTC().Format(time.RFC3339Nano),
			"request_id":          n.RequestID,
		},
	}).Err()
	if err != nil {
		return fmt.Errorf("xadd %s: %w", r.stream, err)
	}
	return nil
}
