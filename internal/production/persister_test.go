package production

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comalice/fsmx"
)

func testSnapshot() fsmx.Snapshot {
	return fsmx.Snapshot{
		MachineID: "traffic",
		Current:   "green",
		Edges: []fsmx.Edge{
			{Event: "TIMER", From: "red", To: "green"},
			{Event: "TIMER", From: "green", To: "yellow"},
			{Event: "TIMER", From: "yellow", To: "red"},
		},
		Timestamp: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func assertSnapshotEqual(t *testing.T, want, got fsmx.Snapshot) {
	t.Helper()
	assert.True(t, want.Timestamp.Equal(got.Timestamp), "timestamp %v != %v", want.Timestamp, got.Timestamp)
	want.Timestamp, got.Timestamp = time.Time{}, time.Time{}
	assert.Equal(t, want, got)
}

func TestPersisters(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		ext  string
		new  func(dir string) (Persister, error)
	}{
		{"json", ".json", func(dir string) (Persister, error) { return NewJSONPersister(dir) }},
		{"yaml", ".yaml", func(dir string) (Persister, error) { return NewYAMLPersister(dir) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "snapshots")
			p, err := tt.new(dir)
			require.NoError(t, err)

			snap := testSnapshot()
			require.NoError(t, p.Save(ctx, snap))
			assert.FileExists(t, filepath.Join(dir, "traffic"+tt.ext))

			loaded, err := p.Load(ctx, "traffic")
			require.NoError(t, err)
			assertSnapshotEqual(t, snap, loaded)

			_, err = p.Load(ctx, "missing")
			assert.ErrorIs(t, err, os.ErrNotExist)

			assert.Error(t, p.Save(ctx, fsmx.Snapshot{Current: "a"}))
		})
	}
}

func TestPersisterCanceledContext(t *testing.T) {
	p, err := NewJSONPersister(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, p.Save(ctx, testSnapshot()), context.Canceled)
	_, err = p.Load(ctx, "traffic")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRestore(t *testing.T) {
	src := fsmx.New[string, string]("red", fsmx.WithID("traffic"))
	src.MustAdd(fsmx.NewTransition("TIMER", "red", "green"))
	src.MustAdd(fsmx.NewTransition("TIMER", "green", "yellow"))
	src.MustAdd(fsmx.NewTransition("TIMER", "yellow", "red"))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_, err := src.Fire(ctx, "TIMER")
	require.NoError(t, err)
	require.NoError(t, src.Close())

	p, err := NewYAMLPersister(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, p.Save(ctx, src.Snapshot()))
	snap, err := p.Load(ctx, "traffic")
	require.NoError(t, err)

	m, err := Restore(snap)
	require.NoError(t, err)
	defer m.Close()

	assert.Equal(t, "traffic", m.ID())
	assert.Equal(t, "green", m.CurrentState())
	res, err := m.Fire(ctx, "TIMER")
	require.NoError(t, err)
	assert.Equal(t, fsmx.Success, res)
	assert.Equal(t, "yellow", m.CurrentState())
}

func TestRestoreRejectsDuplicates(t *testing.T) {
	snap := testSnapshot()
	snap.Edges = append(snap.Edges, fsmx.Edge{Event: "TIMER", From: "red", To: "yellow"})

	_, err := Restore(snap)
	assert.ErrorIs(t, err, fsmx.ErrDuplicateTransition)

	_, err = Restore(fsmx.Snapshot{MachineID: "m"})
	assert.Error(t, err)
}
