// Package fsmx is a function-oriented finite state machine.
//
// A Machine holds a current state and a registry of transitions keyed by event.
// Registration is synchronous; triggering is not. Three serial contexts keep it
// race free: the registry queue owns the transition table, the state queue owns
// the current state and decides every trigger in submission order, and the
// effect executor runs caller hooks (pre-action, execution block, post-action,
// completion) in the order the state queue submits them.
//
//	m := fsmx.New[State, Event](Idle)
//	_ = m.Add(fsmx.NewTransition(Start, Idle, Running))
//	res, _ := m.Fire(ctx, Start)
package fsmx

import (
	"context"
	"fmt"
	"time"
)

// Result is the outcome of a trigger.
type Result int

const (
	// Failure means no single transition matched the event from the current state.
	Failure Result = iota
	// Success means the matched transition ran and the state changed.
	Success
)

func (r Result) String() string {
	switch r {
	case Success:
		return "success"
	case Failure:
		return "failure"
	default:
		return fmt.Sprintf("Result(%d)", int(r))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (r Result) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Result) UnmarshalText(text []byte) error {
	switch string(text) {
	case "success":
		*r = Success
	case "failure":
		*r = Failure
	default:
		return fmt.Errorf("unknown result %q", text)
	}
	return nil
}

// Record describes one processed trigger. States and events are rendered with %v.
type Record struct {
	MachineID string    `json:"machineID" yaml:"machineID"`
	Event     string    `json:"event" yaml:"event"`
	From      string    `json:"from" yaml:"from"`
	To        string    `json:"to" yaml:"to"`
	Result    Result    `json:"result" yaml:"result"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}

// Publisher receives a Record for every trigger the state queue decides.
// It is called on the state queue and must not block.
type Publisher interface {
	Publish(ctx context.Context, rec Record) error
}

// Edge is one registered transition rendered for export.
type Edge struct {
	Event string `json:"event" yaml:"event"`
	From  string `json:"from" yaml:"from"`
	To    string `json:"to" yaml:"to"`
}

// Snapshot is the serializable view of a machine: its current state and table.
type Snapshot struct {
	MachineID string    `json:"machineID" yaml:"machineID"`
	Current   string    `json:"current" yaml:"current"`
	Edges     []Edge    `json:"edges" yaml:"edges"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}

// States returns every state named by the snapshot, current state first,
// then in order of first appearance in Edges.
func (s Snapshot) States() []string {
	seen := map[string]bool{s.Current: true}
	states := []string{s.Current}
	for _, e := range s.Edges {
		for _, id := range [...]string{e.From, e.To} {
			if !seen[id] {
				seen[id] = true
				states = append(states, id)
			}
		}
	}
	return states
}
