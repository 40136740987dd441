// Package graph provides a fixed-node control-flow graph representation for
// call-site discovery.
//
// A Graph holds the control-flow skeleton of one function body: the fixed
// nodes, their successor edges, and the structural relations a dominance
// walk needs (an End node's owning Merge, a Merge node's forward End
// predecessors). Floating (data-only) nodes are not represented; only nodes
// whose position in execution order is fixed appear in the graph.
//
// Graphs are built with a Builder and are read-only afterwards. Nodes are
// identified by dense arena indices (ID), so per-walk state such as visited
// marking is held outside the graph in a BitMap and the same Graph can be
// walked by any number of independent walkers.
package graph
