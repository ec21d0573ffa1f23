package notification

import (
	"sync"
	"time"
)

// breaker stops delivery attempts while the sink keeps failing. After the
// cooldown one delivery is let through; its outcome closes or re-opens it.
type breaker struct {
	mu sync.Mutex

	threshold int
	cooldown  time.Duration
	now       func() time.Time

	failures  int
	open      bool
	openUntil time.Time
	probing   bool
}

func newBreaker(threshold int, cooldown time.Duration) *breaker {
	if threshold <= 0 {
		threshold = 5
	}
	if cooldown <= 0 {
		cooldown = 30 * time.Second
	}
	return &breaker{threshold: threshold, cooldown: cooldown, now: time.Now}
}

// allow reports whether a delivery may be attempted.
func (b *breaker) allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.open {
		return true
	}
	if b.probing || b.now().Before(b.openUntil) {
		return false
	}
	b.probing = true
	return true
}

// success closes the breaker. Returns true if it was open.
func (b *breaker) success() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	wasOpen := b.open
	b.failures = 0
	b.open = false
	b.probing = false
	return wasOpen
}

// failure counts a failed delivery. Returns true if this opened the breaker.
func (b *breaker) failure() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.failures++
	if b.probing {
		b.probing = false
		b.openUntil = b.now().Add(b.cooldown)
		return false
	}
	if !b.open && b.failures >= b.threshold {
		b.open = true
		b.openUntil = b.now().Add(b.cooldown)
		return true
	}
	return false
}

func (b *breaker) isOpen() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.open
}
