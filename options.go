package fsmx

import (
	"go.uber.org/zap"

	"github.com/comalice/fsmx/dispatch"
)

type options struct {
	id        string
	effects   dispatch.Executor
	logger    *zap.Logger
	metrics   *Metrics
	publisher Publisher
}

// Option configures a Machine.
type Option func(*options)

// WithID names the machine in logs, metrics, records and snapshots.
func WithID(id string) Option {
	return func(o *options) {
		o.id = id
	}
}

// WithEffects sets the executor that runs hooks and completion callbacks.
// It must be sequential. The machine does not close it; keep it open until
// Close returns, since effects it rejects are dropped and the trigger's Pending
// resolves with ErrEffectsRejected. With dispatch.Immediate hooks run on the
// state queue and must not call back into the machine.
func WithEffects(exec dispatch.Executor) Option {
	return func(o *options) {
		o.effects = exec
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithMetrics records machine activity in m.
func WithMetrics(m *Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// WithPublisher forwards a Record for every decided trigger to p.
func WithPublisher(p Publisher) Option {
	return func(o *options) {
		o.publisher = p
	}
}

// TriggerOption configures a single trigger.
type TriggerOption func(*triggerOptions)

type triggerOptions struct {
	execution  func()
	completion func(Result)
}

// WithExecution sets a block run on the effect executor between the
// pre-action and the post-action of the matched transition.
func WithExecution(fn func()) TriggerOption {
	return func(o *triggerOptions) {
		o.execution = fn
	}
}

// WithCompletion sets a callback run on the effect executor with the outcome.
// It is called exactly once for every accepted trigger.
func WithCompletion(fn func(Result)) TriggerOption {
	return func(o *triggerOptions) {
		o.completion = fn
	}
}
