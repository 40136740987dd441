package walk

import "github.com/nickng/callwalk/graph"

// nodeDeque is a deque of node IDs for the pending walk front.
//
// The front of the deque is the tail of the slice, so the hot operations
// (pushFront for newly discovered successors, popFront for the next node)
// are an append and a truncation. pushBack, used only for ready merges,
// shifts the slice; merges are rare enough that this does not matter.
type nodeDeque struct {
	nodes []graph.ID
}

func (d *nodeDeque) pushFront(id graph.ID) {
	d.nodes = append(d.nodes, id)
}

func (d *nodeDeque) pushBack(id graph.ID) {
	d.nodes = append(d.nodes, graph.None)
	copy(d.nodes[1:], d.nodes)
	d.nodes[0] = id
}

func (d *nodeDeque) popFront() (graph.ID, bool) {
	if len(d.nodes) == 0 {
		return graph.None, false
	}
	id := d.nodes[len(d.nodes)-1]
	d.nodes = d.nodes[:len(d.nodes)-1]
	return id, true
}
