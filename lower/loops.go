package lower

import "golang.org/x/tools/go/ssa"

// blockEdge is one control-flow edge between basic blocks.
type blockEdge struct {
	from, to *ssa.BasicBlock
}

// backEdges finds the loop back edges of fn by depth-first search: an edge
// into a block still on the search stack closes a loop. Go SSA built from
// source is reducible, so retreating edges coincide with natural-loop back
// edges.
func backEdges(fn *ssa.Function) map[blockEdge]bool {
	back := make(map[blockEdge]bool)
	if len(fn.Blocks) == 0 {
		return back
	}
	const (
		unseen = iota
		onstack
		done
	)
	state := make([]int, len(fn.Blocks))
	var visit func(b *ssa.BasicBlock)
	visit = func(b *ssa.BasicBlock) {
		state[b.Index] = onstack
		for _, succ := range b.Succs {
			switch state[succ.Index] {
			case unseen:
				visit(succ)
			case onstack:
				back[blockEdge{b, succ}] = true
			}
		}
		state[b.Index] = done
	}
	visit(fn.Blocks[0])
	return back
}

// loopHeaders returns the target blocks of the back edges.
func loopHeaders(back map[blockEdge]bool) map[*ssa.BasicBlock]bool {
	headers := make(map[*ssa.BasicBlock]bool)
	for e := range back {
		headers[e.to] = true
	}
	return headers
}
