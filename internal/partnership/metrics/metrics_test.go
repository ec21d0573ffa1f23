package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	t.Run("records transitions and rejections", func(t *testing.T) {
		m := NewWith(prometheus.NewRegistry())

		m.IncrementTransitions("decide", "accepted_into_group", 1)
		m.IncrementTransitions("set_status", "group_completed", 3)
		m.IncrementTransitions("set_status", "group_completed", 0)
		m.IncrementCapacityRejections()
		m.IncrementProvisioning("created")
		m.ObserveCascade(3)
		m.ObserveOperation("decide", time.Now())

		assert.Equal(t, 1.0, testutil.ToFloat64(m.Transitions.WithLabelValues("decide", "accepted_into_group")))
		assert.Equal(t, 3.0, testutil.ToFloat64(m.Transitions.WithLabelValues("set_status", "group_completed")))
		assert.Equal(t, 1.0, testutil.ToFloat64(m.CapacityRejections))
		assert.Equal(t, 1.0, testutil.ToFloat64(m.Provisioning.WithLabelValues("created")))
	})

	t.Run("nil metrics are a no-op", func(t *testing.T) {
		var m *Metrics
		assert.NotPanics(t, func() {
			m.IncrementTransitions("withdraw", "withdrawn_interest", 1)
			m.IncrementCapacityRejections()
			m.ObserveCascade(1)
			m.IncrementProvisioning("failed")
			m.ObserveOperation("leave", time.Now())
		})
	})
}
