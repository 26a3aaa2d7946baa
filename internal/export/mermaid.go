package export

import (
	"fmt"
	"strings"

	"github.com/jask/penguindash/internal/reactive"
)

// MermaidGraph renders the reactive graph as a Mermaid flowchart. Inputs are
// parallelograms, computeds rectangles and effects subroutines; edges point
// from a source to the node that reads it. Run counts are shown when nonzero.
func MermaidGraph(nodes []reactive.NodeInfo) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")
	ids := make(map[string]string, len(nodes))
	for _, n := range nodes {
		ids[n.Name] = mermaidID(n)
	}
	for _, n := range nodes {
		label := n.Name
		if n.Runs > 0 {
			label = fmt.Sprintf("%s <br/> runs: %d", n.Name, n.Runs)
		}
		opener, closer := "[", "]"
		switch n.Kind {
		case reactive.KindInput:
			opener, closer = "[/", "/]"
		case reactive.KindEffect:
			opener, closer = "[[", "]]"
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", ids[n.Name], opener, label, closer)
	}
	for _, n := range nodes {
		for _, src := range n.Sources {
			from, ok := ids[src]
			if !ok {
				continue
			}
			fmt.Fprintf(&sb, "    %s --> %s\n", from, ids[n.Name])
		}
	}
	sb.WriteString("    classDef input fill:#313244,stroke:#89b4fa\n")
	sb.WriteString("    classDef effect fill:#313244,stroke:#a6e3a1\n")
	for _, n := range nodes {
		switch n.Kind {
		case reactive.KindInput:
			fmt.Fprintf(&sb, "    class %s input\n", ids[n.Name])
		case reactive.KindEffect:
			fmt.Fprintf(&sb, "    class %s effect\n", ids[n.Name])
		}
	}
	return sb.String()
}

// mermaidID keeps ids unique per node and free of characters Mermaid treats
// as syntax.
func mermaidID(n reactive.NodeInfo) string {
	var b strings.Builder
	for _, r := range n.Name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return fmt.Sprintf("n%d_%s", n.ID, b.String())
}
