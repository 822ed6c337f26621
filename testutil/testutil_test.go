package testutil

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/comalice/fsmx"
)

func TestRecorder(t *testing.T) {
	var r Recorder
	r.Mark("a")()
	r.Add("b")
	assert.Equal(t, []string{"a", "b"}, r.Events())

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Add("x")
		}()
	}
	wg.Wait()
	assert.Equal(t, 52, r.Len())

	r.Reset()
	assert.Empty(t, r.Events())
}

func TestCycleAndAwait(t *testing.T) {
	m := fsmx.New[int, string](0)
	defer m.Close()
	Cycle(m, "tick", 3)

	for _, want := range []int{1, 2, 0} {
		assert.Equal(t, fsmx.Success, Await(t, m.Trigger("tick")))
		assert.Equal(t, want, m.CurrentState())
	}
}
