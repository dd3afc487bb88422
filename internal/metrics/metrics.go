package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the bootstrap instruments. A nil *Metrics records nothing.
type Metrics struct {
	State             prometheus.Gauge
	ConnectivityTotal *prometheus.CounterVec
	CredentialsTotal  *prometheus.CounterVec
	RegistrationTotal *prometheus.CounterVec
	StepDuration      *prometheus.HistogramVec
}

// New registers the instruments with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		State: f.NewGauge(prometheus.GaugeOpts{
			Name: "trader_bootstrap_state",
			Help: "Current bootstrap state (0=init .. 4=ready, 5=aborted)",
		}),
		ConnectivityTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "trader_connectivity_checks_total",
			Help: "Exchange health checks by result",
		}, []string{"result"}),
		CredentialsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "trader_credentials_loads_total",
			Help: "Credential cache lookups by result",
		}, []string{"result"}),
		RegistrationTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "trader_registrations_total",
			Help: "Team registrations by outcome",
		}, []string{"outcome"}),
		StepDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "trader_bootstrap_step_duration_seconds",
			Help:    "Duration of each bootstrap step",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"step"}),
	}
}

// SetState records the sequencer state.
func (m *Metrics) SetState(state int) {
	if m == nil {
		return
	}
	m.State.Set(float64(state))
}

// ObserveConnectivity counts a health check.
func (m *Metrics) ObserveConnectivity(ok bool) {
	if m == nil {
		return
	}
	m.ConnectivityTotal.WithLabelValues(result(ok, "healthy", "unhealthy")).Inc()
}

// ObserveCredentialsLoad counts a cache lookup.
func (m *Metrics) ObserveCredentialsLoad(found bool) {
	if m == nil {
		return
	}
	m.CredentialsTotal.WithLabelValues(result(found, "hit", "miss")).Inc()
}

// IncrementRegistration counts a registration attempt by outcome code.
func (m *Metrics) IncrementRegistration(outcome string) {
	if m == nil {
		return
	}
	m.RegistrationTotal.WithLabelValues(outcome).Inc()
}

// ObserveStep records how long a step took.
func (m *Metrics) ObserveStep(step string, start time.Time) {
	if m == nil {
		return
	}
	m.StepDuration.WithLabelValues(step).Observe(time.Since(start).Seconds())
}

func result(ok bool, yes, no string) string {
	if ok {
		return yes
	}
	return no
}
