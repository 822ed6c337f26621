package primitives

import (
	"errors"
	"fmt"

	"github.com/comalice/fsmx"
)

// ActionMap resolves hook names used in Pre and Post.
type ActionMap map[string]func()

// Build validates cfg and returns a machine with every transition registered.
// The machine ID is cfg.ID unless opts override it.
func Build(cfg MachineConfig, actions ActionMap, opts ...fsmx.Option) (*fsmx.Machine[string, string], error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	transitions := make([]fsmx.Transition[string, string], 0, len(cfg.Transitions))
	var errs []error
	for i, tc := range cfg.Transitions {
		var topts []fsmx.TransitionOption
		missing := false
		for _, hook := range []struct {
			name string
			opt  func(func()) fsmx.TransitionOption
		}{
			{tc.Pre, fsmx.WithPreAction},
			{tc.Post, fsmx.WithPostAction},
		} {
			if hook.name == "" {
				continue
			}
			fn, ok := actions[hook.name]
			if !ok {
				errs = append(errs, fmt.Errorf("transition %d: action %q not registered", i, hook.name))
				missing = true
				continue
			}
			topts = append(topts, hook.opt(fn))
		}
		if missing {
			continue
		}
		transitions = append(transitions, fsmx.NewTransition(tc.Event, tc.From, tc.To, topts...))
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	m := fsmx.New[string, string](cfg.Initial, append([]fsmx.Option{fsmx.WithID(cfg.ID)}, opts...)...)
	for _, t := range transitions {
		if err := m.Add(t); err != nil {
			_ = m.Close()
			return nil, err
		}
	}
	return m, nil
}

// MachineBuilder builds a MachineConfig fluently.
type MachineBuilder struct {
	config MachineConfig
}

// NewMachineBuilder creates a new MachineBuilder.
func NewMachineBuilder(id, initial string) *MachineBuilder {
	return &MachineBuilder{config: MachineConfig{ID: id, Initial: initial}}
}

// StateBuilder adds transitions leaving one state.
type StateBuilder struct {
	mb   *MachineBuilder
	from string
}

// State selects the source state for the following transitions.
func (b *MachineBuilder) State(id string) *StateBuilder {
	return &StateBuilder{mb: b, from: id}
}

// Transition adds event: from -> to.
func (s *StateBuilder) Transition(event, to string) *StateBuilder {
	return s.TransitionWith(TransitionConfig{Event: event, To: to})
}

// TransitionWith adds tc with its From set to the selected state.
func (s *StateBuilder) TransitionWith(tc TransitionConfig) *StateBuilder {
	tc.From = s.from
	s.mb.config.Transitions = append(s.mb.config.Transitions, tc)
	return s
}

// State switches to another source state.
func (s *StateBuilder) State(id string) *StateBuilder {
	return s.mb.State(id)
}

// Build returns the configuration. It is not validated.
func (b *MachineBuilder) Build() MachineConfig {
	cfg := b.config
	cfg.Transitions = append([]TransitionConfig(nil), b.config.Transitions...)
	return cfg
}
