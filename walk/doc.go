// Package walk discovers call sites in a fixed-node control-flow graph in
// dominator-respecting order.
//
// A Walker visits every fixed node reachable from the graph's entry exactly
// once and returns the resolved call sites it encountered, in the order
// control flow would first reach them. Exploration is depth-first from the
// entry, but a Merge node is deferred until every forward path into it has
// been visited, approximating a reverse-postorder visit without computing
// dominator trees. Downstream inlining decisions depend on this order and
// on the completeness guarantee: every resolved call reachable from entry
// appears exactly once in the result.
package walk
