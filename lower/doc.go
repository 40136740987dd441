// Package lower builds fixed-node control-flow graphs from SSA function
// bodies.
//
// Each ssa.BasicBlock is lowered to a chain of fixed nodes: joins become
// Merge nodes fed by one End per incoming forward edge, loop headers become
// LoopBegin nodes, back edges become LoopEnd nodes, branches become Split
// nodes and call instructions become Invoke nodes. The resulting graph is
// what the walk package traverses to discover call sites.
package lower
