package fsmx

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateTransition is wrapped by ConfigurationError when an (event, source)
	// pair is registered twice.
	ErrDuplicateTransition = errors.New("duplicate transition")
	// ErrMachineClosed is returned by operations on a closed machine.
	ErrMachineClosed = errors.New("machine closed")
	// ErrEffectsRejected is reported by a Pending whose completion callback the
	// effect executor refused to run.
	ErrEffectsRejected = errors.New("effect executor rejected completion")
)

// ConfigurationError reports a transition table that would make lookup ambiguous.
type ConfigurationError struct {
	Event  any
	Source any
	Err    error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("transition for event %v from state %v: %v", e.Event, e.Source, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}
