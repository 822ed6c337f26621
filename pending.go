package fsmx

import (
	"context"
	"sync"
)

// Pending is the result of a trigger that may not have been processed yet.
// It resolves on the effect executor right after the completion callback, so
// once Done is closed every effect of the trigger has been run by a sequential
// executor.
type Pending struct {
	done   chan struct{}
	once   sync.Once
	result Result
	err    error
}

func newPending() *Pending {
	return &Pending{done: make(chan struct{})}
}

func (p *Pending) resolve(res Result, err error) {
	p.once.Do(func() {
		p.result = res
		p.err = err
		close(p.done)
	})
}

// Done is closed once the trigger has resolved.
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Await blocks until the trigger resolves or ctx ends. The error is non-nil only
// when ctx ended first, the trigger was not accepted (ErrMachineClosed) or the
// effect executor refused its completion (ErrEffectsRejected).
func (p *Pending) Await(ctx context.Context) (Result, error) {
	select {
	case <-p.done:
		return p.result, p.err
	case <-ctx.Done():
		return Failure, ctx.Err()
	}
}

// Result returns the outcome without blocking; ok is false while unresolved.
func (p *Pending) Result() (res Result, ok bool) {
	select {
	case <-p.done:
		return p.result, true
	default:
		return Failure, false
	}
}

// Err reports why the trigger was rejected, or nil.
func (p *Pending) Err() error {
	select {
	case <-p.done:
		return p.err
	default:
		return nil
	}
}
