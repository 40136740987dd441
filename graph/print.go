package graph

import (
	"bufio"
	"fmt"
	"io"
)

// WriteGraphviz writes the graph to w in graphviz dot format.
// End nodes are linked to their owning Merge with a dashed edge to make the
// merge-readiness relation visible alongside the successor edges.
func (g *Graph) WriteGraphviz(w io.Writer) error {
	bufw := bufio.NewWriter(w)
	bufw.WriteString("digraph cfg {\n")
	for id := range g.nodes {
		n := &g.nodes[id]
		label := fmt.Sprintf("#%d %s", id, n.kind)
		switch {
		case n.kind == KindInvoke && n.target != nil:
			label = fmt.Sprintf("#%d Invoke %s", id, n.target.Name)
		case n.kind == KindInvoke:
			label = fmt.Sprintf("#%d Invoke (unresolved)", id)
		case ID(id) == g.entry && n.kind != KindStart:
			label += " (entry)"
		}
		bufw.WriteString(fmt.Sprintf("  n%d [label=%q]\n", id, label))
	}
	for id := range g.nodes {
		n := &g.nodes[id]
		for _, succ := range n.succs {
			bufw.WriteString(fmt.Sprintf("  n%d -> n%d\n", id, succ))
		}
		if n.kind == KindEnd && n.merge != None {
			bufw.WriteString(fmt.Sprintf("  n%d -> n%d [style=dashed]\n", id, n.merge))
		}
	}
	bufw.WriteString("}\n")
	return bufw.Flush()
}
