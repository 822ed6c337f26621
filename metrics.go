package fsmx

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespace = "fsmx"
)

// Metrics holds the Prometheus collectors shared by machines. All methods are
// safe on a nil receiver.
type Metrics struct {
	triggers   *prometheus.CounterVec
	registered *prometheus.CounterVec
	pending    *prometheus.GaugeVec
	duration   *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg. A nil reg
// leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		triggers: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "triggers_total",
				Help:      "Total number of processed triggers by result",
			},
			[]string{"machine", "result"},
		),
		registered: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "transitions_registered_total",
				Help:      "Total number of registered transitions",
			},
			[]string{"machine"},
		),
		pending: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "triggers_pending",
				Help:      "Triggers accepted but not yet decided by the state queue",
			},
			[]string{"machine"},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "trigger_duration_seconds",
				Help:      "Time from trigger submission to decision",
				Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
			},
			[]string{"machine"},
		),
	}
}

func (m *Metrics) triggerAccepted(machine string) {
	if m == nil {
		return
	}
	m.pending.WithLabelValues(machine).Inc()
}

func (m *Metrics) triggerRejected(machine string) {
	if m == nil {
		return
	}
	m.pending.WithLabelValues(machine).Dec()
}

func (m *Metrics) triggerDecided(machine string, res Result, started time.Time) {
	if m == nil {
		return
	}
	m.pending.WithLabelValues(machine).Dec()
	m.triggers.WithLabelValues(machine, res.String()).Inc()
	m.duration.WithLabelValues(machine).Observe(time.Since(started).Seconds())
}

func (m *Metrics) transitionRegistered(machine string) {
	if m == nil {
		return
	}
	m.registered.WithLabelValues(machine).Inc()
}
