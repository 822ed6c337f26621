package realtime

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ErrLoopClosed is returned by Submit after Close.
var ErrLoopClosed = errors.New("realtime: loop closed")

// Config configures a Loop.
type Config struct {
	TickRate        time.Duration // Run's tick interval (default 16.67ms, 60 FPS)
	MaxTasksPerTick int           // 0 means no limit
}

// Loop is a sequential executor pumped by its owner.
type Loop struct {
	cfg    Config
	logger *zap.Logger

	batchMu sync.Mutex
	batch   []task
	seq     uint64
	closed  bool

	tickMu sync.Mutex // serializes Tick and Drain
}

// Option configures a Loop.
type Option func(*Loop)

// WithLogger sets the logger for recovered panics and tick tracing.
func WithLogger(logger *zap.Logger) Option {
	return func(l *Loop) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// NewLoop creates a Loop.
func NewLoop(cfg Config, opts ...Option) *Loop {
	if cfg.TickRate <= 0 {
		cfg.TickRate = 16667 * time.Microsecond // 60 FPS
	}
	l := &Loop{
		cfg:    cfg,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Submit queues fn for a later tick.
func (l *Loop) Submit(fn func()) error {
	l.batchMu.Lock()
	defer l.batchMu.Unlock()
	if l.closed {
		return ErrLoopClosed
	}
	l.seq++
	l.batch = append(l.batch, task{seq: l.seq, fn: fn})
	return nil
}

// Len returns the number of queued tasks.
func (l *Loop) Len() int {
	l.batchMu.Lock()
	defer l.batchMu.Unlock()
	return len(l.batch)
}

// Run ticks at the configured rate on the calling goroutine until ctx ends,
// then drains what is left and returns ctx.Err().
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.cfg.TickRate)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			l.Drain()
			return ctx.Err()
		case <-ticker.C:
			l.Tick()
		}
	}
}

// Close rejects further submissions. Queued tasks stay until the next Tick or Drain.
func (l *Loop) Close() error {
	l.batchMu.Lock()
	defer l.batchMu.Unlock()
	l.closed = true
	return nil
}
