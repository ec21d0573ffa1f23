package notification_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"

	"buyeralike/internal/notification"
	"buyeralike/internal/notification/sink"
	id "buyeralike/pkg/domain"
)

type PublisherSuite struct {
	suite.Suite
	sink    *sink.Memory
	metrics *notification.Metrics
	logger  *slog.Logger
}

func TestPublisherSuite(t *testing.T) {
	suite.Run(t, new(PublisherSuite))
}

func (s *PublisherSuite) SetupTest() {
	s.sink = sink.NewMemory()
	s.metrics = notification.NewMetricsWith(prometheus.NewRegistry())
	s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (s *PublisherSuite) newNotification(event notification.EventType) notification.Notification {
	return notification.Notification{
		RecipientID:       id.UserID(uuid.New()),
		EventType:         event,
		Message:           "hello",
		RelatedEntityType: notification.EntityGroup,
		RelatedEntityID:   uuid.NewString(),
		OccurredAt:        time.Now(),
	}
}

func (s *PublisherSuite) start(p *notification.Publisher) (stop func()) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = p.Run(ctx)
	}()
	return func() {
		cancel()
		<-done
	}
}

func (s *PublisherSuite) TestDeliversInOrder() {
	p := notification.NewPublisher(s.sink, notification.WithLogger(s.logger), notification.WithMetrics(s.metrics))
	stop := s.start(p)
	defer stop()

	first := s.newNotification(notification.EventJoinRequested)
	second := s.newNotification(notification.EventJoinAccepted)
	s.Require().NoError(p.Notify(context.Background(), first))
	s.Require().NoError(p.Notify(context.Background(), second))

	s.Require().Eventually(func() bool { return len(s.sink.All()) == 2 }, time.Second, 5*time.Millisecond)
	got := s.sink.All()
	s.Equal(first.EventType, got[0].EventType)
	s.Equal(second.EventType, got[1].EventType)
	s.Equal(float64(1), promtest.ToFloat64(s.metrics.Delivered.WithLabelValues(string(notification.EventJoinAccepted))))
}

func (s *PublisherSuite) TestNotifyNeverBlocks() {
	p := notification.NewPublisher(s.sink, notification.WithBufferSize(1), notification.WithMetrics(s.metrics))

	s.Require().NoError(p.Notify(context.Background(), s.newNotification(notification.EventGroupCreated)))
	err := p.Notify(context.Background(), s.newNotification(notification.EventGroupCreated))
	s.ErrorIs(err, notification.ErrBufferFull)
	s.Equal(float64(1), promtest.ToFloat64(s.metrics.BufferDropped))
}

func (s *PublisherSuite) TestBreakerDropsWhileSinkIsDown() {
	s.sink.FailWith(errors.New("broker unreachable"))
	p := notification.NewPublisher(s.sink,
		notification.WithLogger(s.logger),
		notification.WithMetrics(s.metrics),
		notification.WithBreaker(2, time.Hour),
	)
	stop := s.start(p)
	defer stop()

	for i := 0; i < 5; i++ {
		s.Require().NoError(p.Notify(context.Background(), s.newNotification(notification.EventMemberLeft)))
	}

	s.Require().Eventually(func() bool {
		return promtest.ToFloat64(s.metrics.BreakerDropped) == 3
	}, time.Second, 5*time.Millisecond)
	s.Equal(float64(2), promtest.ToFloat64(s.metrics.DeliveryFailed.WithLabelValues(string(notification.EventMemberLeft))))
	s.Equal(float64(1), promtest.ToFloat64(s.metrics.BreakerState))
	s.Empty(s.sink.All())
}

func (s *PublisherSuite) TestDrainsQueueOnShutdown() {
	p := notification.NewPublisher(s.sink, notification.WithLogger(s.logger))
	for i := 0; i < 3; i++ {
		s.Require().NoError(p.Notify(context.Background(), s.newNotification(notification.EventGroupCompleted)))
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s.Require().NoError(p.Run(ctx))
	s.Len(s.sink.All(), 3)
}
