package realtime

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/comalice/fsmx"
)

func TestTickRunsQueuedTasksInOrder(t *testing.T) {
	l := NewLoop(Config{})
	var got []int
	for i := 0; i < 5; i++ {
		require.NoError(t, l.Submit(func() { got = append(got, i) }))
	}
	assert.Equal(t, 5, l.Len())

	assert.Equal(t, 5, l.Tick())
	assert.Equal(t, []int{0, 1, 2, 3, 4}, got)
	assert.Equal(t, 0, l.Tick())
}

func TestMaxTasksPerTick(t *testing.T) {
	l := NewLoop(Config{MaxTasksPerTick: 2})
	ran := 0
	for i := 0; i < 5; i++ {
		require.NoError(t, l.Submit(func() { ran++ }))
	}

	assert.Equal(t, 2, l.Tick())
	assert.Equal(t, 2, ran)
	assert.Equal(t, 3, l.Len())
	assert.Equal(t, 3, l.Drain())
	assert.Equal(t, 5, ran)
}

func TestTasksQueuedDuringTickWait(t *testing.T) {
	l := NewLoop(Config{})
	var got []string
	require.NoError(t, l.Submit(func() {
		got = append(got, "first")
		_ = l.Submit(func() { got = append(got, "nested") })
	}))

	assert.Equal(t, 1, l.Tick())
	assert.Equal(t, []string{"first"}, got)
	assert.Equal(t, 1, l.Tick())
	assert.Equal(t, []string{"first", "nested"}, got)
}

func TestDrainRunsNestedTasks(t *testing.T) {
	l := NewLoop(Config{})
	depth := 0
	var submit func()
	submit = func() {
		depth++
		if depth < 4 {
			_ = l.Submit(submit)
		}
	}
	require.NoError(t, l.Submit(submit))
	assert.Equal(t, 4, l.Drain())
	assert.Equal(t, 4, depth)
}

func TestPanickingTask(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	l := NewLoop(Config{}, WithLogger(zap.New(core)))
	after := false
	require.NoError(t, l.Submit(func() { panic("boom") }))
	require.NoError(t, l.Submit(func() { after = true }))

	assert.Equal(t, 2, l.Tick())
	assert.True(t, after)
	assert.Equal(t, 1, logs.FilterMessage("task panicked").Len())
}

func TestClose(t *testing.T) {
	l := NewLoop(Config{})
	ran := false
	require.NoError(t, l.Submit(func() { ran = true }))
	require.NoError(t, l.Close())

	assert.ErrorIs(t, l.Submit(func() {}), ErrLoopClosed)
	assert.Equal(t, 1, l.Drain())
	assert.True(t, ran)
}

func TestRunTicksUntilCanceled(t *testing.T) {
	l := NewLoop(Config{TickRate: time.Millisecond})
	ctx, cancel := context.WithCancel(context.Background())

	ran := make(chan struct{})
	require.NoError(t, l.Submit(func() { close(ran) }))

	errc := make(chan error, 1)
	go func() { errc <- l.Run(ctx) }()

	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("task not run by ticker")
	}
	cancel()
	assert.ErrorIs(t, <-errc, context.Canceled)
}

func TestMachineEffectsRunOnLoopOwner(t *testing.T) {
	l := NewLoop(Config{})
	m := fsmx.New[string, string]("red", fsmx.WithEffects(l))
	defer m.Close()
	m.MustAdd(fsmx.NewTransition("TIMER", "red", "green"))

	var mu sync.Mutex
	var got []string
	mark := func(s string) {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, s)
	}

	p := m.Trigger("TIMER",
		fsmx.WithExecution(func() { mark("execution") }),
		fsmx.WithCompletion(func(r fsmx.Result) { mark("completion:" + r.String()) }),
	)

	// state is decided by the machine; effects wait for the loop
	assert.Equal(t, "green", m.CurrentState())
	_, ok := p.Result()
	assert.False(t, ok)

	l.Drain()
	res, ok := p.Result()
	require.True(t, ok)
	assert.Equal(t, fsmx.Success, res)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"execution", "completion:success"}, got)
}

func TestClosedLoopRejectsMachineEffects(t *testing.T) {
	l := NewLoop(Config{})
	require.NoError(t, l.Close())

	m := fsmx.New[string, string]("red", fsmx.WithEffects(l))
	defer m.Close()
	m.MustAdd(fsmx.NewTransition("TIMER", "red", "green"))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_, err := m.Fire(ctx, "TIMER")
	assert.ErrorIs(t, err, fsmx.ErrEffectsRejected)
	assert.ErrorIs(t, err, ErrLoopClosed)
}
