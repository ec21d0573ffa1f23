package sink

import (
	"context"
	"encoding/json"
	"fmt"

	"buyeralike/internal/notification"
)

// RecordProducer publishes one keyed record to a topic.
type RecordProducer interface {
	Produce(ctx context.Context, topic string, key, value []byte) error
}

// Kafka publishes notifications as JSON records keyed by recipient, so one
// user's notifications stay ordered within a partition.
type Kafka struct {
	producer RecordProducer
	topic    string
}

func NewKafka(producer RecordProducer, topic string) *Kafka {
	return &Kafka{producer: producer, topic: topic}
}

func (k *Kafka) Deliver(ctx context.Context, n notification.Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}
	return k.producer.Produce(ctx, k.topic, []byte(n.RecipientID.String()), payload)
}
