package production

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/comalice/fsmx"
)

// DefaultVisualizer renders snapshots for Graphviz and JSON consumers.
type DefaultVisualizer struct{}

// ExportDOT generates Graphviz DOT source for the snapshot. The current state
// is filled; edges keep registration order.
func (v *DefaultVisualizer) ExportDOT(s fsmx.Snapshot) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "digraph %q {\n", graphName(s))
	buf.WriteString(`  rankdir=LR;
  node [shape=box, fontsize=10, style=rounded];
  edge [fontsize=9];
`)

	for _, id := range s.States() {
		if id == s.Current {
			fmt.Fprintf(&buf, "  %q [style=\"rounded,filled\", fillcolor=lightblue];\n", id)
			continue
		}
		fmt.Fprintf(&buf, "  %q;\n", id)
	}
	for _, e := range s.Edges {
		fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", e.From, e.To, e.Event)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// ExportJSON serializes the snapshot to indented JSON.
func (v *DefaultVisualizer) ExportJSON(s fsmx.Snapshot) ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

func graphName(s fsmx.Snapshot) string {
	if s.MachineID == "" {
		return "fsm"
	}
	return s.MachineID
}
