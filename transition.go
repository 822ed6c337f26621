package fsmx

// Transition maps (event, source) to a destination, with optional hooks run
// around the state change. It is immutable once built.
type Transition[S, E comparable] struct {
	event       E
	source      S
	destination S
	hooks
}

type hooks struct {
	pre  func()
	post func()
}

// TransitionOption configures a Transition.
type TransitionOption func(*hooks)

// WithPreAction sets a hook submitted to the effect executor before the state changes.
func WithPreAction(fn func()) TransitionOption {
	return func(h *hooks) {
		h.pre = fn
	}
}

// WithPostAction sets a hook submitted to the effect executor after the state changes.
func WithPostAction(fn func()) TransitionOption {
	return func(h *hooks) {
		h.post = fn
	}
}

// NewTransition builds a transition taken on event while in from, ending in to.
func NewTransition[S, E comparable](event E, from, to S, opts ...TransitionOption) Transition[S, E] {
	t := Transition[S, E]{
		event:       event,
		source:      from,
		destination: to,
	}
	for _, opt := range opts {
		opt(&t.hooks)
	}
	return t
}

// Event returns the event that takes the transition.
func (t Transition[S, E]) Event() E { return t.event }

// Source returns the state the transition leaves.
func (t Transition[S, E]) Source() S { return t.source }

// Destination returns the state the transition enters.
func (t Transition[S, E]) Destination() S { return t.destination }

// ExecutePreAction runs the pre-action, if any, on the calling goroutine.
func (t Transition[S, E]) ExecutePreAction() {
	if t.pre != nil {
		t.pre()
	}
}

// ExecutePostAction runs the post-action, if any, on the calling goroutine.
func (t Transition[S, E]) ExecutePostAction() {
	if t.post != nil {
		t.post()
	}
}
