package extensibility

import (
	"sync"
	"time"
)

// EventSource produces events on a channel. The channel is closed when the
// source is exhausted.
type EventSource[E any] interface {
	Events() <-chan E
}

// ChannelEventSource is an EventSource backed by a caller-owned channel.
type ChannelEventSource[E any] struct {
	ch chan E
}

// NewChannelEventSource creates a new ChannelEventSource with the given channel.
// The channel should be buffered if backpressure handling is needed.
func NewChannelEventSource[E any](ch chan E) *ChannelEventSource[E] {
	return &ChannelEventSource[E]{ch: ch}
}

// Events returns the receive-only channel for events.
func (s *ChannelEventSource[E]) Events() <-chan E {
	return s.ch
}

// Send blocks until ev is accepted by the channel.
func (s *ChannelEventSource[E]) Send(ev E) {
	s.ch <- ev
}

// TimerEventSource emits the same event every period.
// Ticks are dropped while the buffer is full.
type TimerEventSource[E any] struct {
	ch       chan E
	event    E
	ticker   *time.Ticker
	stop     chan struct{}
	stopOnce sync.Once
}

// NewTimerEventSource starts a TimerEventSource that emits event every d.
func NewTimerEventSource[E any](event E, d time.Duration) *TimerEventSource[E] {
	t := &TimerEventSource[E]{
		ch:     make(chan E, 10),
		event:  event,
		ticker: time.NewTicker(d),
		stop:   make(chan struct{}),
	}
	go t.run()
	return t
}

func (t *TimerEventSource[E]) run() {
	defer close(t.ch)
	defer t.ticker.Stop()
	for {
		select {
		case <-t.ticker.C:
			select {
			case t.ch <- t.event:
			default:
			}
		case <-t.stop:
			return
		}
	}
}

// Events returns the event channel.
func (t *TimerEventSource[E]) Events() <-chan E {
	return t.ch
}

// Stop stops the ticker and closes the channel. It is safe to call twice.
func (t *TimerEventSource[E]) Stop() {
	t.stopOnce.Do(func() { close(t.stop) })
}
