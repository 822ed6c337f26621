package fsmx

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/comalice/fsmx/dispatch"
)

// Machine is a thread-safe state machine over caller-defined states S and events E.
type Machine[S, E comparable] struct {
	id        string
	logger    *zap.Logger
	metrics   *Metrics
	publisher Publisher

	registry  *registry[S, E]
	registryQ *dispatch.Queue

	current S // owned by stateQ
	stateQ  *dispatch.Queue

	effects      dispatch.Executor
	ownedEffects *dispatch.Queue // nil when the caller supplied the executor

	closed atomic.Bool
}

// New creates a machine in state initial. Unless WithEffects is given, hooks run
// on a serial queue owned by the machine and drained by Close.
func New[S, E comparable](initial S, opts ...Option) *Machine[S, E] {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.id == "" {
		o.id = uuid.NewString()
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	logger := o.logger.With(zap.String("machine", o.id))

	m := &Machine[S, E]{
		id:        o.id,
		logger:    logger,
		metrics:   o.metrics,
		publisher: o.publisher,
		registry:  newRegistry[S, E](),
		registryQ: dispatch.NewQueue(dispatch.WithLabel(o.id+".registry"), dispatch.WithLogger(logger)),
		current:   initial,
		stateQ:    dispatch.NewQueue(dispatch.WithLabel(o.id+".state"), dispatch.WithLogger(logger)),
		effects:   o.effects,
	}
	if m.effects == nil {
		m.ownedEffects = dispatch.NewQueue(dispatch.WithLabel(o.id+".effects"), dispatch.WithLogger(logger))
		m.effects = m.ownedEffects
	}
	return m
}

// ID returns the machine identifier.
func (m *Machine[S, E]) ID() string {
	return m.id
}

// CurrentState returns a consistent snapshot of the current state. It waits
// for the trigger being decided, if any, but not for queued effects.
func (m *Machine[S, E]) CurrentState() S {
	var s S
	if err := m.stateQ.Sync(func() { s = m.current }); err != nil {
		// closed: the worker drains and stops writing
		m.stateQ.Wait()
		return m.current
	}
	return s
}

// Add registers t. It returns a *ConfigurationError wrapping
// ErrDuplicateTransition if a transition with the same event and source
// already exists; the table is left unchanged in that case.
func (m *Machine[S, E]) Add(t Transition[S, E]) error {
	var err error
	if qerr := m.registryQ.Sync(func() { err = m.registry.add(t) }); qerr != nil {
		return ErrMachineClosed
	}
	if err != nil {
		return err
	}
	m.metrics.transitionRegistered(m.id)
	m.logger.Debug("transition registered",
		zap.Any("event", t.event),
		zap.Any("from", t.source),
		zap.Any("to", t.destination),
	)
	return nil
}

// MustAdd is like Add but panics on error.
func (m *Machine[S, E]) MustAdd(t Transition[S, E]) {
	if err := m.Add(t); err != nil {
		panic(fmt.Sprintf("fsmx: %v", err))
	}
}

// Transitions returns the registered transitions in registration order.
func (m *Machine[S, E]) Transitions() []Transition[S, E] {
	var ts []Transition[S, E]
	if err := m.registryQ.Sync(func() { ts = m.registry.all() }); err != nil {
		m.registryQ.Wait()
		return m.registry.all()
	}
	return ts
}

// Trigger fires event without blocking. The candidate transitions are read from
// the registry now; matching against the current state, the state change and
// all hooks happen later, in the order triggers were submitted.
func (m *Machine[S, E]) Trigger(event E, opts ...TriggerOption) *Pending {
	var to triggerOptions
	for _, opt := range opts {
		opt(&to)
	}
	p := newPending()

	var candidates []Transition[S, E]
	if err := m.registryQ.Sync(func() { candidates = m.registry.lookup(event) }); err != nil {
		p.resolve(Failure, ErrMachineClosed)
		return p
	}

	started := time.Now()
	m.metrics.triggerAccepted(m.id)
	if err := m.stateQ.Submit(func() { m.process(event, candidates, to, p, started) }); err != nil {
		m.metrics.triggerRejected(m.id)
		p.resolve(Failure, ErrMachineClosed)
	}
	return p
}

// Fire triggers event and waits for its outcome.
func (m *Machine[S, E]) Fire(ctx context.Context, event E, opts ...TriggerOption) (Result, error) {
	return m.Trigger(event, opts...).Await(ctx)
}

// process runs on the state queue.
func (m *Machine[S, E]) process(event E, candidates []Transition[S, E], to triggerOptions, p *Pending, started time.Time) {
	from := m.current

	var matched []Transition[S, E]
	for _, t := range candidates {
		if t.source == from {
			matched = append(matched, t)
		}
	}
	// More than one match cannot happen while Add rejects duplicates; it is
	// treated like no match.
	if len(matched) != 1 {
		m.complete(event, from, from, Failure, to.completion, p, started)
		return
	}

	t := matched[0]
	m.submitEffect(t.ExecutePreAction)
	if to.execution != nil {
		m.submitEffect(to.execution)
	}
	m.current = t.destination
	m.logger.Debug("transition taken",
		zap.Any("event", event),
		zap.Any("from", from),
		zap.Any("to", t.destination),
	)
	m.submitEffect(t.ExecutePostAction)
	m.complete(event, from, t.destination, Success, to.completion, p, started)
}

func (m *Machine[S, E]) complete(event E, from, to S, res Result, completion func(Result), p *Pending, started time.Time) {
	m.metrics.triggerDecided(m.id, res, started)
	m.publish(Record{
		MachineID: m.id,
		Event:     fmt.Sprint(event),
		From:      fmt.Sprint(from),
		To:        fmt.Sprint(to),
		Result:    res,
		Timestamp: time.Now(),
	})

	err := m.effects.Submit(func() {
		defer p.resolve(res, nil)
		if completion != nil {
			completion(res)
		}
	})
	if err != nil {
		// Rejected before running: the callback is dropped and the caller
		// learns it from the Pending. A task that ran already resolved p.
		m.logger.Error("completion failed", zap.Error(err))
		p.resolve(res, fmt.Errorf("%w: %w", ErrEffectsRejected, err))
	}
}

func (m *Machine[S, E]) submitEffect(fn func()) {
	if err := m.effects.Submit(fn); err != nil {
		m.logger.Error("effect failed", zap.Error(err))
	}
}

func (m *Machine[S, E]) publish(rec Record) {
	if m.publisher == nil {
		return
	}
	if err := m.publisher.Publish(context.Background(), rec); err != nil {
		m.logger.Warn("publish failed", zap.Error(err), zap.String("event", rec.Event))
	}
}

// Snapshot captures the current state and the transition table.
func (m *Machine[S, E]) Snapshot() Snapshot {
	ts := m.Transitions()
	edges := make([]Edge, 0, len(ts))
	for _, t := range ts {
		edges = append(edges, Edge{
			Event: fmt.Sprint(t.event),
			From:  fmt.Sprint(t.source),
			To:    fmt.Sprint(t.destination),
		})
	}
	return Snapshot{
		MachineID: m.id,
		Current:   fmt.Sprint(m.CurrentState()),
		Edges:     edges,
		Timestamp: time.Now(),
	}
}

// Close stops accepting registrations and triggers, lets every accepted
// trigger finish, and drains the machine-owned effect queue. A caller-supplied
// effect executor is left open and may still hold queued effects. Close must not
// be called from a hook running on the machine-owned effect queue.
func (m *Machine[S, E]) Close() error {
	first := m.closed.CompareAndSwap(false, true)
	_ = m.registryQ.Close()
	_ = m.stateQ.Close()
	if m.ownedEffects != nil {
		_ = m.ownedEffects.Close()
	}
	if first {
		m.logger.Debug("machine closed")
	}
	return nil
}
