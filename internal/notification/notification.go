// Package notification delivers partnership lifecycle events to users.
//
// Delivery is best-effort: Publisher.Notify never blocks the caller and a
// failing sink never surfaces to the operation that produced the event.
package notification

import (
	"context"
	"time"

	id "buyeralike/pkg/domain"
)

// EventType names a lifecycle event.
type EventType string

const (
	EventInterestExpressed       EventType = "interest_expressed"
	EventJoinRequested           EventType = "join_requested"
	EventJoinAccepted            EventType = "join_accepted"
	EventJoinDeclined            EventType = "join_declined"
	EventInterestWithdrawn       EventType = "interest_withdrawn"
	EventMemberLeft              EventType = "member_left"
	EventGroupCreated            EventType = "group_created"
	EventGroupStatusChanged      EventType = "group_status_changed"
	EventGroupCompleted          EventType = "group_completed"
	EventGroupCancelled          EventType = "group_cancelled"
	EventGroupEstablished        EventType = "group_established"
	EventGroupProvisioningFailed EventType = "group_provisioning_failed"
)

// EntityType names the kind of record a notification points at.
type EntityType string

const (
	EntityPartnership EntityType = "partnership"
	EntityGroup       EntityType = "partnership_group"
	EntityOpening     EntityType = "opening"
)

// Notification is one message for one recipient.
type Notification struct {
	RecipientID       id.UserID  `json:"recipient_id"`
	EventType         EventType  `json:"event_type"`
	Message           string     `json:"message"`
	RelatedEntityType EntityType `json:"related_entity_type"`
	RelatedEntityID   string     `json:"related_entity_id"`
	OccurredAt        time.Time  `json:"occurred_at"`
	RequestID         string     `json:"request_id,omitempty"`
}

// Sink is a delivery backend (Kafka topic, Redis stream, log).
type Sink interface {
	Deliver(ctx context.Context, n Notification) error
}
