// Package dispatch provides serialized execution contexts.
//
// An Executor runs submitted tasks one at a time, in submission order, and never
// re-enters itself. Queue is the goroutine-backed implementation used for the
// registry, state and default effect contexts of an fsmx.Machine. Immediate runs
// tasks on the submitting goroutine and is only sequential when its caller is.
package dispatch

import (
	"errors"
	"fmt"
	"runtime/debug"

	"go.uber.org/zap"
)

var (
	// ErrQueueClosed is returned when submitting to a closed executor.
	ErrQueueClosed = errors.New("dispatch: queue closed")
)

// Executor is a FIFO, non-reentrant task queue.
type Executor interface {
	Submit(task func()) error
}

// PanicError carries a value recovered from a panicking task.
type PanicError struct {
	Label string
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	if e.Label == "" {
		return fmt.Sprintf("dispatch: task panicked: %v", e.Value)
	}
	return fmt.Sprintf("dispatch: task on %q panicked: %v", e.Label, e.Value)
}

// PanicHandler observes panics recovered from tasks.
type PanicHandler func(*PanicError)

// Immediate runs each task synchronously on the submitting goroutine.
// A panicking task is recovered and reported as a *PanicError.
var Immediate Executor = immediate{}

type immediate struct{}

func (immediate) Submit(task func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Label: "immediate", Value: r, Stack: debug.Stack()}
		}
	}()
	task()
	return nil
}

// run executes task, turning a panic into a *PanicError.
func run(label string, logger *zap.Logger, task func()) (perr *PanicError) {
	defer func() {
		if r := recover(); r != nil {
			perr = &PanicError{Label: label, Value: r, Stack: debug.Stack()}
			logger.Error("task panicked",
				zap.String("queue", label),
				zap.Any("panic", r),
				zap.ByteString("stack", perr.Stack),
			)
		}
	}()
	task()
	return nil
}
