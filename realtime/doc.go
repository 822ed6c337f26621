// Package realtime provides a main-loop effect executor for fsmx machines.
//
// A Loop queues effects submitted by a machine's state queue and runs them only
// when its owner pumps it, either at a fixed tick rate with Run or explicitly
// with Tick and Drain. Everything a machine hands to the Loop therefore runs on
// the goroutine that owns it, the way UI toolkits and game loops expect
// callbacks on their main thread.
//
// # Example Usage
//
//	loop := realtime.NewLoop(realtime.Config{TickRate: 16667 * time.Microsecond})
//	m := fsmx.New[State, Event](Idle, fsmx.WithEffects(loop))
//	go produceEvents(m)
//	_ = loop.Run(ctx) // effects run here, on this goroutine
//
// # Ordering
//
// Tasks carry sequence numbers assigned at submission. Each tick runs up to
// MaxTasksPerTick tasks in sequence order; tasks submitted while a tick runs
// wait for the next tick. Tick, Drain and Run must not be called from a task.
package realtime
