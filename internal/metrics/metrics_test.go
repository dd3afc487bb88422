package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsRecord(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.SetState(4)
	m.ObserveConnectivity(true)
	m.ObserveConnectivity(false)
	m.ObserveConnectivity(false)
	m.ObserveCredentialsLoad(false)
	m.IncrementRegistration("success")
	m.ObserveStep("register", time.Now().Add(-time.Second))

	assert.Equal(t, 4.0, testutil.ToFloat64(m.State))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ConnectivityTotal.WithLabelValues("healthy")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.ConnectivityTotal.WithLabelValues("unhealthy")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CredentialsTotal.WithLabelValues("miss")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.CredentialsTotal.WithLabelValues("hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RegistrationTotal.WithLabelValues("success")))

	count, err := testutil.GatherAndCount(reg, "trader_bootstrap_step_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.SetState(1)
		m.ObserveConnectivity(true)
		m.ObserveCredentialsLoad(true)
		m.IncrementRegistration("success")
		m.ObserveStep("load", time.Now())
	})
}

func TestNewRegistersOnce(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)
	assert.Panics(t, func() { New(reg) }, "duplicate registration should panic")
}
