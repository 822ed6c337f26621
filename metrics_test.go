package fsmx

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)

	m := New[string, string]("idle", WithID("worker"), WithMetrics(metrics))
	defer m.Close()
	m.MustAdd(NewTransition("start", "idle", "running"))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_, err := m.Fire(ctx, "start")
	require.NoError(t, err)
	_, err = m.Fire(ctx, "start")
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.triggers.WithLabelValues("worker", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.triggers.WithLabelValues("worker", "failure")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.registered.WithLabelValues("worker")))
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.pending.WithLabelValues("worker")))
	assert.Equal(t, 1, testutil.CollectAndCount(metrics.duration, "fsmx_trigger_duration_seconds"))

	count, err := testutil.GatherAndCount(reg, "fsmx_triggers_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestMetricsRejectedTrigger(t *testing.T) {
	metrics := NewMetrics(nil)
	m := New[string, string]("idle", WithID("closed"), WithMetrics(metrics))
	require.NoError(t, m.Close())

	p := m.Trigger("start")
	assert.ErrorIs(t, p.Err(), ErrMachineClosed)
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.pending.WithLabelValues("closed")))
}

func TestNilMetrics(t *testing.T) {
	var metrics *Metrics
	assert.NotPanics(t, func() {
		metrics.triggerAccepted("m")
		metrics.triggerRejected("m")
		metrics.triggerDecided("m", Success, time.Now())
		metrics.transitionRegistered("m")
	})
}
