// Package testutil holds helpers shared by fsmx tests and benchmarks.
package testutil

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/comalice/fsmx"
)

// DefaultTimeout bounds Await.
const DefaultTimeout = 2 * time.Second

// Recorder collects labels in the order hooks ran. It is safe for concurrent use.
type Recorder struct {
	mu     sync.Mutex
	events []string
}

// Mark returns a hook that records label when called.
func (r *Recorder) Mark(label string) func() {
	return func() { r.Add(label) }
}

// Add records label.
func (r *Recorder) Add(label string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, label)
}

// Events returns a copy of the recorded labels.
func (r *Recorder) Events() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

// Len returns the number of recorded labels.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

// Reset clears the recording.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}

// Await waits up to DefaultTimeout for p and fails the test if it does not resolve.
func Await(tb testing.TB, p *fsmx.Pending) fsmx.Result {
	tb.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), DefaultTimeout)
	defer cancel()
	res, err := p.Await(ctx)
	if err != nil {
		tb.Fatalf("trigger did not resolve: %v", err)
	}
	return res
}

// Cycle registers n states 0..n-1 joined in a ring by event.
func Cycle[E comparable](m *fsmx.Machine[int, E], event E, n int) {
	for i := 0; i < n; i++ {
		m.MustAdd(fsmx.NewTransition(event, i, (i+1)%n))
	}
}
