package production

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/comalice/fsmx"
)

// Persister stores machine snapshots by machine ID.
type Persister interface {
	Save(ctx context.Context, snapshot fsmx.Snapshot) error
	Load(ctx context.Context, machineID string) (fsmx.Snapshot, error)
}

// JSONPersister is a file-based persister using JSON serialization.
type JSONPersister struct {
	dir string
}

// NewJSONPersister creates a JSONPersister, ensuring the directory exists.
func NewJSONPersister(dir string) (*JSONPersister, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return &JSONPersister{dir: dir}, nil
}

func (p *JSONPersister) Save(ctx context.Context, snapshot fsmx.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	return writeSnapshot(p.dir, snapshot.MachineID, ".json", data)
}

func (p *JSONPersister) Load(ctx context.Context, machineID string) (fsmx.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return fsmx.Snapshot{}, err
	}
	data, err := readSnapshot(p.dir, machineID, ".json")
	if err != nil {
		return fsmx.Snapshot{}, err
	}

	var snapshot fsmx.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return fsmx.Snapshot{}, fmt.Errorf("json unmarshal: %w", err)
	}
	snapshot.MachineID = machineID
	return snapshot, nil
}

// YAMLPersister is a file-based persister using YAML serialization.
type YAMLPersister struct {
	dir string
}

// NewYAMLPersister creates a YAMLPersister, ensuring the directory exists.
func NewYAMLPersister(dir string) (*YAMLPersister, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return &YAMLPersister{dir: dir}, nil
}

func (p *YAMLPersister) Save(ctx context.Context, snapshot fsmx.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := yaml.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("yaml marshal: %w", err)
	}
	return writeSnapshot(p.dir, snapshot.MachineID, ".yaml", data)
}

func (p *YAMLPersister) Load(ctx context.Context, machineID string) (fsmx.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return fsmx.Snapshot{}, err
	}
	data, err := readSnapshot(p.dir, machineID, ".yaml")
	if err != nil {
		return fsmx.Snapshot{}, err
	}

	var snapshot fsmx.Snapshot
	if err := yaml.Unmarshal(data, &snapshot); err != nil {
		return fsmx.Snapshot{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	snapshot.MachineID = machineID
	return snapshot, nil
}

func writeSnapshot(dir, machineID, ext string, data []byte) error {
	if machineID == "" {
		return errors.New("snapshot has no machine ID")
	}
	fn := filepath.Join(dir, machineID+ext)
	if err := os.WriteFile(fn, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", fn, err)
	}
	return nil
}

func readSnapshot(dir, machineID, ext string) ([]byte, error) {
	fn := filepath.Join(dir, machineID+ext)
	data, err := os.ReadFile(fn)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("machine %q: %w", machineID, os.ErrNotExist)
		}
		return nil, fmt.Errorf("read %s: %w", fn, err)
	}
	return data, nil
}

// Restore creates a string-keyed machine from a snapshot: its ID, its current
// state as the initial state and every edge as a hookless transition.
func Restore(snapshot fsmx.Snapshot, opts ...fsmx.Option) (*fsmx.Machine[string, string], error) {
	if snapshot.Current == "" {
		return nil, errors.New("snapshot has no current state")
	}
	opts = append([]fsmx.Option{fsmx.WithID(snapshot.MachineID)}, opts...)
	m := fsmx.New[string, string](snapshot.Current, opts...)
	for _, e := range snapshot.Edges {
		if err := m.Add(fsmx.NewTransition(e.Event, e.From, e.To)); err != nil {
			_ = m.Close()
			return nil, fmt.Errorf("restore %s: %w", snapshot.MachineID, err)
		}
	}
	return m, nil
}
