// Package extensibility connects external event producers to machines.
//
// An EventSource exposes a receive-only channel of events. Feed drains any
// number of sources into a machine's Trigger until the sources close, the
// context ends or the machine is closed.
package extensibility
