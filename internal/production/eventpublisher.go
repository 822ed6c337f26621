package production

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/comalice/fsmx"
)

// ChannelPublisher forwards records to a Go channel.
// Publish never blocks: records are dropped while the channel is full.
type ChannelPublisher struct {
	mu      sync.RWMutex
	ch      chan<- fsmx.Record
	closed  bool
	dropped atomic.Uint64
}

// NewChannelPublisher creates a ChannelPublisher with the given output channel.
func NewChannelPublisher(ch chan<- fsmx.Record) *ChannelPublisher {
	return &ChannelPublisher{ch: ch}
}

func (p *ChannelPublisher) Publish(ctx context.Context, rec fsmx.Record) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return errors.New("publisher closed")
	}
	select {
	case p.ch <- rec:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		p.dropped.Add(1)
		return nil
	}
}

// Dropped returns the number of records dropped on backpressure.
func (p *ChannelPublisher) Dropped() uint64 {
	return p.dropped.Load()
}

// Close closes the output channel. Later publishes return an error.
func (p *ChannelPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.closed {
		p.closed = true
		close(p.ch)
	}
	return nil
}

// LoggingPublisher writes every record to a zap logger. Successful transitions
// are logged at info level, failed triggers at debug level.
type LoggingPublisher struct {
	logger *zap.Logger
}

// NewLoggingPublisher creates a LoggingPublisher.
func NewLoggingPublisher(logger *zap.Logger) *LoggingPublisher {
	return &LoggingPublisher{logger: logger}
}

func (p *LoggingPublisher) Publish(_ context.Context, rec fsmx.Record) error {
	fields := []zap.Field{
		zap.String("machine", rec.MachineID),
		zap.String("event", rec.Event),
		zap.String("from", rec.From),
		zap.String("to", rec.To),
		zap.Time("timestamp", rec.Timestamp),
	}
	if rec.Result == fsmx.Success {
		p.logger.Info("transition", fields...)
	} else {
		p.logger.Debug("trigger failed", fields...)
	}
	return nil
}

// MultiPublisher publishes each record to every publisher in order.
type MultiPublisher []fsmx.Publisher

func (m MultiPublisher) Publish(ctx context.Context, rec fsmx.Record) error {
	var errs []error
	for _, p := range m {
		if err := p.Publish(ctx, rec); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
