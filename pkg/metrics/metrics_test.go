package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Observe(t *testing.T) {
	m := NewWithRegistry("scheduling", prometheus.NewRegistry())

	m.ObserveSlots(4, 2)
	m.ObserveSlots(1, 0)
	m.ObserveCandidateCheck("rejected")
	m.ObserveDBQuery("select", 0.01, errors.New("boom"))
	m.ObserveBookingCreated("public")

	assert.Equal(t, 5.0, testutil.ToFloat64(m.SlotsGenerated.WithLabelValues("scheduling", "available")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.SlotsGenerated.WithLabelValues("scheduling", "unavailable")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CandidateChecks.WithLabelValues("scheduling", "rejected")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DBQueryErrors.WithLabelValues("scheduling", "select")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BookingsCreated.WithLabelValues("scheduling", "public")))
}

func TestMetrics_NilReceiver(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveSlots(1, 1)
		m.ObserveHTTPRequest("GET", "/x", "200", 0.1)
		m.ObserveDBQuery("select", 0.1, nil)
		m.SetDBConnections(1, 1, 0)
		m.ObserveCandidateCheck("accepted")
		m.ObserveBookingCreated("staff")
	})
	assert.Empty(t, m.ServiceName())
}
