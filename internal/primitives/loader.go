package primitives

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// LoadYAML decodes and validates a YAML table. Unknown fields are rejected.
func LoadYAML(r io.Reader) (MachineConfig, error) {
	var cfg MachineConfig
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return MachineConfig{}, fmt.Errorf("yaml decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return MachineConfig{}, err
	}
	return cfg, nil
}

// LoadJSON decodes and validates a JSON table. Unknown fields are rejected.
func LoadJSON(r io.Reader) (MachineConfig, error) {
	var cfg MachineConfig
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return MachineConfig{}, fmt.Errorf("json decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return MachineConfig{}, err
	}
	return cfg, nil
}

// LoadFile loads a table, choosing the decoder by extension (.yaml, .yml, .json).
func LoadFile(path string) (MachineConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return MachineConfig{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return LoadYAML(f)
	case ".json":
		return LoadJSON(f)
	default:
		return MachineConfig{}, fmt.Errorf("unsupported table format %q", ext)
	}
}
