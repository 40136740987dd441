package graph

import (
	"fmt"
	"go/token"
)

// ID is a dense arena index identifying one fixed node of a Graph.
type ID int

// None is the ID of no node.
const None ID = -1

// Kind classifies a fixed node. The taxonomy is closed: every node a walk
// may dequeue belongs to exactly one Kind, and KindInvalid (the zero value)
// marks a node that violates the taxonomy.
type Kind uint8

const (
	KindInvalid   Kind = iota
	KindStart          // unique entry, one successor
	KindPlain          // generic fixed node, one successor
	KindInvoke         // call site; resolved iff it carries a CallTarget
	KindSplit          // control split (if/switch), two or more successors
	KindMerge          // non-loop join of forward paths, one successor
	KindEnd            // terminator of a branch arm, feeds its owning Merge
	KindLoopBegin      // loop header
	KindLoopEnd        // loop back-edge terminator, no successors
	KindSink           // control sink (return, panic), no successors
)

var kindNames = [...]string{
	KindInvalid:   "Invalid",
	KindStart:     "Start",
	KindPlain:     "Plain",
	KindInvoke:    "Invoke",
	KindSplit:     "Split",
	KindMerge:     "Merge",
	KindEnd:       "End",
	KindLoopBegin: "LoopBegin",
	KindLoopEnd:   "LoopEnd",
	KindSink:      "Sink",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// CallTarget is a statically resolved call descriptor attached to an Invoke
// node. An Invoke without a CallTarget is an indirect or intrinsic call.
type CallTarget struct {
	Name string    // Qualified name of the callee.
	Pos  token.Pos // Source position of the call site.
}

// node is the arena entry for one fixed node.
type node struct {
	kind   Kind
	succs  []ID
	target *CallTarget // KindInvoke only.
	merge  ID          // KindEnd only: owning merge.
	ends   []ID        // KindMerge only: forward End predecessors.
}

// Graph is a read-only fixed-node control-flow graph with one designated
// entry node. Use a Builder to construct one.
type Graph struct {
	nodes   []node
	entry   ID
	invokes int // Resolved invoke nodes, excluding the entry.
}

// NumNodes returns the number of fixed nodes in the graph.
func (g *Graph) NumNodes() int {
	return len(g.nodes)
}

// Start returns the entry node of the graph.
func (g *Graph) Start() ID {
	return g.entry
}

// Kind returns the kind of node id.
func (g *Graph) Kind(id ID) Kind {
	return g.nodes[id].kind
}

// Succs returns the ordered successors of node id.
// The returned slice is owned by the graph and must not be modified.
func (g *Graph) Succs(id ID) []ID {
	return g.nodes[id].succs
}

// Target returns the call descriptor of an Invoke node, or nil if the call
// target is not statically resolved (or id is not an Invoke).
func (g *Graph) Target(id ID) *CallTarget {
	return g.nodes[id].target
}

// MergeOf returns the owning Merge of an End node, or None.
func (g *Graph) MergeOf(end ID) ID {
	return g.nodes[end].merge
}

// ForwardEnds returns the forward End predecessors of a Merge node.
// The returned slice is owned by the graph and must not be modified.
func (g *Graph) ForwardEnds(merge ID) []ID {
	return g.nodes[merge].ends
}

// InvokeCount returns the number of resolved call sites in the graph,
// excluding the entry node. A complete walk discovers exactly this many
// call sites.
func (g *Graph) InvokeCount() int {
	return g.invokes
}
