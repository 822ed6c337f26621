package primitives

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const trafficYAML = `
id: traffic
initial: red
transitions:
  - {event: TIMER, from: red, to: green, post: log}
  - {event: TIMER, from: green, to: yellow}
  - {event: TIMER, from: yellow, to: red}
`

const trafficJSON = `{
  "id": "traffic",
  "initial": "red",
  "transitions": [
    {"event": "TIMER", "from": "red", "to": "green", "post": "log"},
    {"event": "TIMER", "from": "green", "to": "yellow"},
    {"event": "TIMER", "from": "yellow", "to": "red"}
  ]
}`

func TestLoadYAML(t *testing.T) {
	cfg, err := LoadYAML(strings.NewReader(trafficYAML))
	require.NoError(t, err)
	assert.Equal(t, "traffic", cfg.ID)
	assert.Equal(t, "red", cfg.Initial)
	require.Len(t, cfg.Transitions, 3)
	assert.Equal(t, TransitionConfig{Event: "TIMER", From: "red", To: "green", Post: "log"}, cfg.Transitions[0])
}

func TestLoadYAMLRejectsUnknownFields(t *testing.T) {
	_, err := LoadYAML(strings.NewReader("id: m\ninitial: a\nguard: x\n"))
	assert.Error(t, err)
}

func TestLoadJSON(t *testing.T) {
	cfg, err := LoadJSON(strings.NewReader(trafficJSON))
	require.NoError(t, err)

	fromYAML, err := LoadYAML(strings.NewReader(trafficYAML))
	require.NoError(t, err)
	assert.Equal(t, fromYAML, cfg)
}

func TestLoadJSONRejectsUnknownFields(t *testing.T) {
	_, err := LoadJSON(strings.NewReader(`{"id":"m","initial":"a","states":{}}`))
	assert.Error(t, err)
}

func TestLoadJSONValidates(t *testing.T) {
	_, err := LoadJSON(strings.NewReader(`{"id":"m"}`))
	assert.ErrorContains(t, err, "initial state is required")
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "traffic.yml")
	jsonPath := filepath.Join(dir, "traffic.json")
	require.NoError(t, os.WriteFile(yamlPath, []byte(trafficYAML), 0o644))
	require.NoError(t, os.WriteFile(jsonPath, []byte(trafficJSON), 0o644))

	a, err := LoadFile(yamlPath)
	require.NoError(t, err)
	b, err := LoadFile(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	_, err = LoadFile(filepath.Join(dir, "traffic.toml"))
	assert.Error(t, err)

	_, err = LoadFile(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
