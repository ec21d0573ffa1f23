package sink

import (
	"context"
	"sync"

	"buyeralike/internal/notification"
	id "buyeralike/pkg/domain"
)

// Memory records delivered notifications for tests and local runs.
type Memory struct {
	mu    sync.Mutex
	items []notification.Notification
	err   error
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Deliver(_ context.Context, n notification.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.items = append(m.items, n)
	return nil
}

// FailWith makes subsequent deliveries return err; nil restores delivery.
func (m *Memory) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func (m *Memory) All() []notification.Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]notification.Notification, len(m.items))
	copy(out, m.items)
	return out
}

// For returns notifications addressed to recipient.
func (m *Memory) For(recipient id.UserID) []notification.Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []notification.Notification
	for _, n := range m.items {
		if n.RecipientID == recipient {
			out = append(out, n)
		}
	}
	return out
}
