package dispatch

import (
	"sync"

	"github.com/eapache/queue"
	"go.uber.org/zap"
)

// Queue is a serial executor. A worker goroutine is started when work arrives
// and exits once the queue is empty, so an idle Queue holds no goroutine.
// Panics are recovered per task; later tasks still run.
type Queue struct {
	label   string
	logger  *zap.Logger
	onPanic PanicHandler

	mu      sync.Mutex
	tasks   *queue.Queue
	running bool
	closed  bool
	wg      sync.WaitGroup
}

// QueueOption configures a Queue.
type QueueOption func(*Queue)

// WithLabel names the queue in logs and panic reports.
func WithLabel(label string) QueueOption {
	return func(q *Queue) {
		q.label = label
	}
}

// WithLogger sets the logger used to report recovered panics.
func WithLogger(logger *zap.Logger) QueueOption {
	return func(q *Queue) {
		if logger != nil {
			q.logger = logger
		}
	}
}

// WithPanicHandler registers a callback for recovered panics.
func WithPanicHandler(fn PanicHandler) QueueOption {
	return func(q *Queue) {
		q.onPanic = fn
	}
}

// NewQueue creates an empty serial queue.
func NewQueue(opts ...QueueOption) *Queue {
	q := &Queue{
		label:  "queue",
		logger: zap.NewNop(),
		tasks:  queue.New(),
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Label returns the queue label.
func (q *Queue) Label() string {
	return q.label
}

// Submit enqueues task without waiting for it.
func (q *Queue) Submit(task func()) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return ErrQueueClosed
	}
	q.tasks.Add(task)
	if !q.running {
		q.running = true
		q.wg.Add(1)
		go q.drain()
	}
	return nil
}

// Sync enqueues task and blocks until it has run. Calling Sync from a task
// running on the same queue deadlocks.
func (q *Queue) Sync(task func()) error {
	done := make(chan struct{})
	if err := q.Submit(func() {
		defer close(done)
		task()
	}); err != nil {
		return err
	}
	<-done
	return nil
}

// Len reports the number of tasks waiting to run.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.tasks.Length()
}

// Close stops accepting work and waits until every queued task has run.
// It is safe to call more than once.
func (q *Queue) Close() error {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
	q.wg.Wait()
	return nil
}

// Wait blocks until the worker is idle. Only meaningful after Close.
func (q *Queue) Wait() {
	q.wg.Wait()
}

func (q *Queue) drain() {
	defer q.wg.Done()
	for {
		q.mu.Lock()
		if q.tasks.Length() == 0 {
			q.running = false
			q.mu.Unlock()
			return
		}
		task := q.tasks.Remove().(func())
		q.mu.Unlock()

		if perr := run(q.label, q.logger, task); perr != nil && q.onPanic != nil {
			q.onPanic(perr)
		}
	}
}
