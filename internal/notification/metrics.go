package notification

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus metrics for notification delivery.
type Metrics struct {
	Delivered      *prometheus.CounterVec
	DeliveryFailed *prometheus.CounterVec
	BufferDropped  prometheus.Counter
	BreakerDropped prometheus.Counter
	BreakerState   prometheus.Gauge
	QueueDepth     prometheus.Gauge
}

// NewMetrics registers notification metrics with the default registry.
func NewMetrics() *Metrics {
	return NewMetricsWith(prometheus.DefaultRegisterer)
}

// NewMetricsWith registers notification metrics with reg.
func NewMetricsWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Delivered: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "partnership_notifications_delivered_total",
			Help: "Notifications delivered to the sink, by event type",
		}, []string{"event_type"}),
		DeliveryFailed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "partnership_notifications_failed_total",
			Help: "Notifications the sink rejected, by event type",
		}, []string{"event_type"}),
		BufferDropped: factory.NewCounter(prometheus.CounterOpts{
			Name: "partnership_notifications_buffer_dropped_total",
			Help: "Notifications dropped because the publisher buffer was full",
		}),
		BreakerDropped: factory.NewCounter(prometheus.CounterOpts{
			Name: "partnership_notifications_breaker_dropped_total",
			Help: "Notifications dropped while the circuit breaker was open",
		}),
		BreakerState: factory.NewGauge(prometheus.GaugeOpts{
			Name: "partnership_notifications_breaker_state",
			Help: "Circuit breaker state (0=closed/healthy, 1=open/unhealthy)",
		}),
		QueueDepth: factory.NewGauge(prometheus.GaugeOpts{
			Name: "partnership_notifications_queue_depth",
			Help: "Notifications waiting in the publisher buffer",
		}),
	}
}

func (m *Metrics) incDelivered(event EventType) {
	if m != nil {
		m.Delivered.WithLabelValues(string(event)).Inc()
	}
}

func (m *Metrics) incFailed(event EventType) {
	if m != nil {
		m.DeliveryFailed.WithLabelValues(string(event)).Inc()
	}
}

func (m *Metrics) incBufferDropped() {
	if m != nil {
		m.BufferDropped.Inc()
	}
}

func (m *Metrics) incBreakerDropped() {
	if m != nil {
		m.BreakerDropped.Inc()
	}
}

func (m *Metrics) setBreakerState(open bool) {
	if m == nil {
		return
	}
	if open {
		m.BreakerState.Set(1)
	} else {
		m.BreakerState.Set(0)
	}
}

func (m *Metrics) setQueueDepth(n int) {
	if m != nil {
		m.QueueDepth.Set(float64(n))
	}
}
