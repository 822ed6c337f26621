package primitives

import (
	"errors"
	"fmt"
)

// TransitionConfig defines a single transition triggered by Event while in From.
type TransitionConfig struct {
	Event string `json:"event" yaml:"event"`
	From  string `json:"from" yaml:"from"`
	To    string `json:"to" yaml:"to"`
	Pre   string `json:"pre,omitempty" yaml:"pre,omitempty"`   // ActionMap key
	Post  string `json:"post,omitempty" yaml:"post,omitempty"` // ActionMap key
}

// Validate checks that every field holds a usable identifier.
func (t *TransitionConfig) Validate() error {
	if t.Event == "" {
		return errors.New("event is required")
	}
	if t.From == "" {
		return errors.New("from is required")
	}
	if t.To == "" {
		return errors.New("to is required")
	}
	for _, f := range []struct{ name, value string }{
		{"event", t.Event},
		{"from", t.From},
		{"to", t.To},
		{"pre", t.Pre},
		{"post", t.Post},
	} {
		if f.value == "" {
			continue
		}
		if err := validateID(f.value); err != nil {
			return fmt.Errorf("%s: %w", f.name, err)
		}
	}
	return nil
}

// validateID allows alphanumerics plus _ - . and :.
func validateID(id string) error {
	for i, r := range id {
		if !((r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') ||
			r == '_' || r == '-' || r == '.' || r == ':') {
			return fmt.Errorf("invalid identifier %q: invalid character '%c' at index %d", id, r, i)
		}
	}
	return nil
}
