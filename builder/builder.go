// Package builder assembles fsmx machines with a fluent API:
//
//	m, err := builder.New[State, Event](Idle).
//		From(Idle).On(Start, Running, builder.Post(logStart)).
//		From(Running).On(Stop, Idle).
//		Build(fsmx.WithID("worker"))
package builder

import (
	"errors"
	"fmt"

	"github.com/comalice/fsmx"
)

// Pre is shorthand for fsmx.WithPreAction.
func Pre(fn func()) fsmx.TransitionOption { return fsmx.WithPreAction(fn) }

// Post is shorthand for fsmx.WithPostAction.
func Post(fn func()) fsmx.TransitionOption { return fsmx.WithPostAction(fn) }

// Builder collects transitions for a machine. Errors are reported by Build.
type Builder[S, E comparable] struct {
	initial     S
	from        S
	hasFrom     bool
	transitions []fsmx.Transition[S, E]
	errs        []error
}

// New creates a Builder for a machine starting in initial.
func New[S, E comparable](initial S) *Builder[S, E] {
	return &Builder[S, E]{initial: initial}
}

// From selects the source state for the following On calls.
func (b *Builder[S, E]) From(state S) *Builder[S, E] {
	b.from = state
	b.hasFrom = true
	return b
}

// On adds a transition on event from the selected state to to.
func (b *Builder[S, E]) On(event E, to S, opts ...fsmx.TransitionOption) *Builder[S, E] {
	if !b.hasFrom {
		b.errs = append(b.errs, fmt.Errorf("transition on %v to %v: no source state selected", event, to))
		return b
	}
	b.transitions = append(b.transitions, fsmx.NewTransition(event, b.from, to, opts...))
	return b
}

// Transitions returns the transitions added so far.
func (b *Builder[S, E]) Transitions() []fsmx.Transition[S, E] {
	return append([]fsmx.Transition[S, E](nil), b.transitions...)
}

// Build creates the machine and registers every transition. All problems are
// reported together; no machine is returned when there is any.
func (b *Builder[S, E]) Build(opts ...fsmx.Option) (*fsmx.Machine[S, E], error) {
	if len(b.errs) > 0 {
		return nil, errors.Join(b.errs...)
	}
	m := fsmx.New[S, E](b.initial, opts...)
	var errs []error
	for _, t := range b.transitions {
		if err := m.Add(t); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		_ = m.Close()
		return nil, errors.Join(errs...)
	}
	return m, nil
}

// MustBuild is like Build but panics on error.
func (b *Builder[S, E]) MustBuild(opts ...fsmx.Option) *fsmx.Machine[S, E] {
	m, err := b.Build(opts...)
	if err != nil {
		panic(fmt.Sprintf("builder: %v", err))
	}
	return m
}
