package primitives

import (
	"errors"
	"fmt"

	"github.com/comalice/fsmx"
)

// MachineConfig defines a complete transition table.
type MachineConfig struct {
	ID          string             `json:"id" yaml:"id"`
	Initial     string             `json:"initial" yaml:"initial"`
	Transitions []TransitionConfig `json:"transitions" yaml:"transitions"`
}

// Validate validates the configuration:
// - Non-empty ID and Initial
// - Every transition validates
// - No two transitions share an (event, from) pair
// - Initial is used by some transition, unless there are none
func (m *MachineConfig) Validate() error {
	if m.ID == "" {
		return errors.New("machine ID is required")
	}
	if err := validateID(m.ID); err != nil {
		return fmt.Errorf("machine ID: %w", err)
	}
	if m.Initial == "" {
		return errors.New("initial state is required")
	}
	if err := validateID(m.Initial); err != nil {
		return fmt.Errorf("initial state: %w", err)
	}

	type key struct{ event, from string }
	seen := make(map[key]int, len(m.Transitions))
	for i := range m.Transitions {
		t := &m.Transitions[i]
		if err := t.Validate(); err != nil {
			return fmt.Errorf("transition %d: %w", i, err)
		}
		k := key{t.Event, t.From}
		if prev, ok := seen[k]; ok {
			return fmt.Errorf("transition %d duplicates transition %d: %w", i, prev, &fsmx.ConfigurationError{
				Event:  t.Event,
				Source: t.From,
				Err:    fsmx.ErrDuplicateTransition,
			})
		}
		seen[k] = i
	}

	if len(m.Transitions) > 0 && !m.hasState(m.Initial) {
		return fmt.Errorf("initial state %q not used by any transition", m.Initial)
	}
	return nil
}

func (m *MachineConfig) hasState(id string) bool {
	for _, t := range m.Transitions {
		if t.From == id || t.To == id {
			return true
		}
	}
	return false
}

// States returns every state in the table, initial first, then in order of
// first appearance.
func (m *MachineConfig) States() []string {
	seen := map[string]bool{m.Initial: true}
	states := []string{m.Initial}
	for _, t := range m.Transitions {
		for _, id := range [...]string{t.From, t.To} {
			if !seen[id] {
				seen[id] = true
				states = append(states, id)
			}
		}
	}
	return states
}

// Events returns the distinct events in order of first appearance.
func (m *MachineConfig) Events() []string {
	seen := make(map[string]bool)
	var events []string
	for _, t := range m.Transitions {
		if !seen[t.Event] {
			seen[t.Event] = true
			events = append(events, t.Event)
		}
	}
	return events
}
