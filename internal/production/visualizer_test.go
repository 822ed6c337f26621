package production

import (
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comalice/fsmx"
)

func TestExportDOT(t *testing.T) {
	v := &DefaultVisualizer{}
	dot := v.ExportDOT(testSnapshot())

	assert.True(t, strings.HasPrefix(dot, `digraph "traffic" {`))
	assert.Contains(t, dot, `"green" [style="rounded,filled", fillcolor=lightblue];`)
	assert.Contains(t, dot, "  \"red\";\n")
	assert.Contains(t, dot, `"red" -> "green" [label="TIMER"];`)
	assert.Contains(t, dot, `"yellow" -> "red" [label="TIMER"];`)
	assert.True(t, strings.HasSuffix(dot, "}\n"))

	// edges keep registration order
	assert.Less(t, strings.Index(dot, `"red" -> "green"`), strings.Index(dot, `"green" -> "yellow"`))
}

func TestExportDOTEmpty(t *testing.T) {
	v := &DefaultVisualizer{}
	dot := v.ExportDOT(fsmx.Snapshot{Current: "idle"})
	assert.Contains(t, dot, `digraph "fsm" {`)
	assert.Contains(t, dot, `"idle" [style="rounded,filled"`)
	assert.NotContains(t, dot, "->")
}

func TestExportJSON(t *testing.T) {
	v := &DefaultVisualizer{}
	data, err := v.ExportJSON(testSnapshot())
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "traffic", got["machineID"])
	assert.Equal(t, "green", got["current"])
	assert.Len(t, got["edges"], 3)
}
