package statetree

import (
	"bytes"
	"fmt"
)

// DOT renders the machine's state tree as Graphviz DOT source, highlighting
// the current state. Intended for debugging and design review, not for the
// hot path.
func (m *Machine) DOT() string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "digraph %q {\n", m.id)
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  node [shape=box, fontsize=10, style=rounded];\n")

	current := ""
	if m.current != nil {
		current = m.current.Path()
	}
	for _, root := range m.roots {
		renderDOTState(&buf, root, current, 1)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func renderDOTState(buf *bytes.Buffer, s *State, current string, depth int) {
	indent := indentFor(depth)
	path := s.Path()

	if len(s.children) > 0 {
		fmt.Fprintf(buf, "%ssubgraph \"cluster_%s\" {\n", indent, path)
		fmt.Fprintf(buf, "%s  label=%q;\n", indent, s.name)
		fmt.Fprintf(buf, "%s  %q [label=%q shape=ellipse%s];\n", indent, path, s.name, dotStyle(path == current))
		for _, child := range s.children {
			renderDOTState(buf, child, current, depth+1)
		}
		fmt.Fprintf(buf, "%s}\n", indent)
		return
	}

	fmt.Fprintf(buf, "%s%q [label=%q%s];\n", indent, path, s.name, dotStyle(path == current))
}

func dotStyle(active bool) string {
	if active {
		return " style=filled fillcolor=lightgreen"
	}
	return ""
}

func indentFor(depth int) string {
	out := ""
	for i := 0; i < depth; i++ {
		out += "  "
	}
	return out
}
