package devtools

import (
	"fmt"
	"sort"
	"strings"
)

// ExportDOT renders a journal as a Graphviz digraph: one node per recorded
// state, joined by edges labelled with the action that produced the next
// state. Field keys are sorted so output is deterministic.
func ExportDOT(storeID string, initial map[string]any, journal []Entry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "digraph %q {\n", storeID)
	b.WriteString("  rankdir=LR;\n")
	b.WriteString("  node [shape=box];\n")

	fmt.Fprintf(&b, "  s0 [label=%q];\n", formatState(initial))
	for i, entry := range journal {
		fmt.Fprintf(&b, "  s%d [label=%q];\n", i+1, formatState(entry.State))
	}
	for i, entry := range journal {
		fmt.Fprintf(&b, "  s%d -> s%d [label=%q];\n", i, i+1, entry.Action.Type)
	}

	b.WriteString("}\n")
	return b.String()
}

func formatState(state map[string]any) string {
	keys := make([]string, 0, len(state))
	for k := range state {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%v", k, state[k])
	}
	return strings.Join(parts, " ")
}
