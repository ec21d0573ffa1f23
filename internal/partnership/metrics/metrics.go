package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the partnership module.
// Tracks transitions, capacity rejections, cascades and provisioning outcomes.
type Metrics struct {
	Transitions        *prometheus.CounterVec
	CapacityRejections prometheus.Counter
	CascadeSize        prometheus.Histogram
	Provisioning       *prometheus.CounterVec
	OperationDuration  *prometheus.HistogramVec
}

// New creates a Metrics instance registered with the default registry.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith creates a Metrics instance registered with reg.
func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Transitions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "partnership_transitions_total",
			Help: "Partnership records moved into a status, by operation",
		}, []string{"operation", "status"}),
		CapacityRejections: factory.NewCounter(prometheus.CounterOpts{
			Name: "partnership_capacity_rejections_total",
			Help: "Join acceptances rejected because the group was full",
		}),
		CascadeSize: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "partnership_cascade_size",
			Help:    "Members moved by a terminal group status change",
			Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100},
		}),
		Provisioning: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "partnership_group_provisioning_total",
			Help: "Orchestrator provisioning attempts, by outcome (created/existing/failed)",
		}, []string{"outcome"}),
		OperationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "partnership_operation_duration_seconds",
			Help:    "Duration of partnership service operations",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"operation"}),
	}
}

// IncrementTransitions records n records moved into status by operation.
func (m *Metrics) IncrementTransitions(operation, status string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.Transitions.WithLabelValues(operation, status).Add(float64(n))
}

func (m *Metrics) IncrementCapacityRejections() {
	if m != nil {
		m.CapacityRejections.Inc()
	}
}

func (m *Metrics) ObserveCascade(size int) {
	if m != nil {
		m.CascadeSize.Observe(float64(size))
	}
}

func (m *Metrics) IncrementProvisioning(outcome string) {
	if m != nil {
		m.Provisioning.WithLabelValues(outcome).Inc()
	}
}

// ObserveOperation records the duration of an operation.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveOperation(operation string, start time.Time) {
	if m != nil {
		m.OperationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	}
}
