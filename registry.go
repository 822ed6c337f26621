package fsmx

import "slices"

type transitionKey[S, E comparable] struct {
	event  E
	source S
}

// registry is owned by the machine's registry queue; it is never touched elsewhere.
type registry[S, E comparable] struct {
	byEvent map[E][]Transition[S, E]
	keys    map[transitionKey[S, E]]struct{}
	order   []Transition[S, E]
}

func newRegistry[S, E comparable]() *registry[S, E] {
	return &registry[S, E]{
		byEvent: make(map[E][]Transition[S, E]),
		keys:    make(map[transitionKey[S, E]]struct{}),
	}
}

// add stores t unless its (event, source) pair is already taken.
func (r *registry[S, E]) add(t Transition[S, E]) error {
	key := transitionKey[S, E]{event: t.event, source: t.source}
	if _, exists := r.keys[key]; exists {
		return &ConfigurationError{Event: t.event, Source: t.source, Err: ErrDuplicateTransition}
	}
	r.keys[key] = struct{}{}
	r.byEvent[t.event] = append(r.byEvent[t.event], t)
	r.order = append(r.order, t)
	return nil
}

// lookup returns a copy of the transitions registered for event.
func (r *registry[S, E]) lookup(event E) []Transition[S, E] {
	return slices.Clone(r.byEvent[event])
}

func (r *registry[S, E]) all() []Transition[S, E] {
	return slices.Clone(r.order)
}
