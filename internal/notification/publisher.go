package notification

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// ErrBufferFull is returned by Notify when the delivery buffer is saturated.
var ErrBufferFull = errors.New("notification buffer full")

const (
	defaultBufferSize   = 1024
	defaultDrainTimeout = 5 * time.Second
)

// Publisher queues notifications and delivers them to a Sink on a background
// worker. Notify never waits on the sink.
type Publisher struct {
	sink         Sink
	inbox        chan Notification
	breaker      *breaker
	logger       *slog.Logger
	metrics      *Metrics
	drainTimeout time.Duration
}

type PublisherOption func(*Publisher)

func WithLogger(logger *slog.Logger) PublisherOption {
	return func(p *Publisher) {
		p.logger = logger
	}
}

func WithMetrics(m *Metrics) PublisherOption {
	return func(p *Publisher) {
		p.metrics = m
	}
}

// WithBufferSize bounds the number of queued notifications.
func WithBufferSize(n int) PublisherOption {
	return func(p *Publisher) {
		if n > 0 {
			p.inbox = make(chan Notification, n)
		}
	}
}

// WithBreaker configures the consecutive failures that open the breaker and
// how long it stays open.
func WithBreaker(threshold int, cooldown time.Duration) PublisherOption {
	return func(p *Publisher) {
		p.breaker = newBreaker(threshold, cooldown)
	}
}

// WithDrainTimeout bounds how long Run keeps delivering queued items after shutdown.
func WithDrainTimeout(d time.Duration) PublisherOption {
	return func(p *Publisher) {
		p.drainTimeout = d
	}
}

func NewPublisher(sink Sink, opts ...PublisherOption) *Publisher {
	p := &Publisher{
		sink:         sink,
		inbox:        make(chan Notification, defaultBufferSize),
		breaker:      newBreaker(0, 0),
		logger:       slog.Default(),
		drainTimeout: defaultDrainTimeout,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Notify enqueues n for delivery. It returns ErrBufferFull instead of blocking.
func (p *Publisher) Notify(_ context.Context, n Notification) error {
	select {
	case p.inbox <- n:
		p.metrics.setQueueDepth(len(p.inbox))
		return nil
	default:
		p.metrics.incBufferDropped()
		return ErrBufferFull
	}
}

// Run delivers queued notifications until ctx is cancelled, then drains what
// is left within the drain timeout.
func (p *Publisher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			p.drain()
			return nil
		case n := <-p.inbox:
			p.deliver(ctx, n)
		}
	}
}

func (p *Publisher) drain() {
	ctx, cancel := context.WithTimeout(context.Background(), p.drainTimeout)
	defer cancel()
	for {
		select {
		case <-ctx.Done():
			if left := len(p.inbox); left > 0 {
				p.logger.Warn("notification drain timed out", "undelivered", left)
			}
			return
		case n := <-p.inbox:
			p.deliver(ctx, n)
		default:
			return
		}
	}
}

func (p *Publisher) deliver(ctx context.Context, n Notification) {
	p.metrics.setQueueDepth(len(p.inbox))
	if !p.breaker.allow() {
		p.metrics.incBreakerDropped()
		return
	}
	if err := p.sink.Deliver(ctx, n); err != nil {
		p.metrics.incFailed(n.EventType)
		if p.breaker.failure() {
			p.metrics.setBreakerState(true)
			p.logger.Warn("notification sink unhealthy, circuit opened", "error", err)
		}
		p.logger.Warn("notification delivery failed",
			"event_type", n.EventType,
			"recipient_id", n.RecipientID.String(),
			"related_entity_id", n.RelatedEntityID,
			"request_id", n.RequestID,
			"error", err,
		)
		return
	}
	if p.breaker.success() {
		p.metrics.setBreakerState(false)
		p.logger.Info("notification sink recovered, circuit closed")
	}
	p.metrics.incDelivered(n.EventType)
}
