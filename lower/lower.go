package lower

import (
	"io"
	"io/ioutil"
	"log"

	"github.com/nickng/callwalk/graph"
	"github.com/pkg/errors"
	"golang.org/x/tools/go/ssa"
)

var ErrNoBody = errors.New("lower: function has no body")

// Result is the lowering of one function body.
type Result struct {
	Fn    *ssa.Function
	Graph *graph.Graph

	// Callees maps each resolved Invoke node to its callee, for passes that
	// follow discovered call sites into their targets. The graph itself only
	// carries the call descriptor.
	Callees map[graph.ID]*ssa.Function
}

// Function lowers fn into a fixed-node control-flow graph.
// Returns ErrNoBody for functions without SSA blocks (external declarations).
func Function(fn *ssa.Function) (*Result, error) {
	return newLowerer(fn, ioutil.Discard).lower()
}

// FunctionLog is Function with lowering trace written to out.
func FunctionLog(fn *ssa.Function, out io.Writer) (*Result, error) {
	return newLowerer(fn, out).lower()
}

// chain is the run of fixed nodes lowered from one basic block.
type chain struct {
	first, last graph.ID
	merge       graph.ID // Merge heading the chain, or None.
}

type lowerer struct {
	fn      *ssa.Function
	b       *graph.Builder
	callees map[graph.ID]*ssa.Function
	back    map[blockEdge]bool
	headers map[*ssa.BasicBlock]bool
	chains  []chain
	logger  *log.Logger
}

func newLowerer(fn *ssa.Function, out io.Writer) *lowerer {
	return &lowerer{
		fn:      fn,
		b:       graph.NewBuilder(),
		callees: make(map[graph.ID]*ssa.Function),
		logger:  log.New(out, "lower: ", 0),
	}
}

func (l *lowerer) lower() (*Result, error) {
	if len(l.fn.Blocks) == 0 {
		return nil, errors.Wrap(ErrNoBody, l.fn.String())
	}
	l.back = backEdges(l.fn)
	l.headers = loopHeaders(l.back)
	l.chains = make([]chain, len(l.fn.Blocks))
	for _, blk := range l.fn.Blocks {
		l.chains[blk.Index] = l.lowerBlock(blk)
	}
	for _, blk := range l.fn.Blocks {
		l.wireBlock(blk)
	}
	g, err := l.b.Graph()
	if err != nil {
		return nil, errors.Wrapf(err, "lowering %s", l.fn.String())
	}
	l.logger.Printf("%s: %d blocks -> %d fixed nodes, %d call sites",
		l.fn.String(), len(l.fn.Blocks), g.NumNodes(), g.InvokeCount())
	return &Result{Fn: l.fn, Graph: g, Callees: l.callees}, nil
}

// lowerBlock builds the node chain of one basic block: the join/loop head
// first, then one Invoke per call instruction, then the terminator.
func (l *lowerer) lowerBlock(blk *ssa.BasicBlock) chain {
	c := chain{first: graph.None, last: graph.None, merge: graph.None}
	add := func(id graph.ID) {
		if c.first == graph.None {
			c.first = id
		} else {
			l.b.Edge(c.last, id)
		}
		c.last = id
	}

	if blk.Index == 0 {
		add(l.b.Start())
	}
	if l.countForwardPreds(blk) >= 2 {
		m := l.b.Node(graph.KindMerge)
		c.merge = m
		add(m)
	}
	if l.headers[blk] {
		add(l.b.Node(graph.KindLoopBegin))
	}

	for _, instr := range blk.Instrs {
		switch call := instr.(type) {
		case *ssa.Call:
			target, callee := resolveTarget(l.fn.Prog, call.Common())
			id := l.b.Invoke(target)
			if callee != nil {
				l.callees[id] = callee
				l.logger.Printf("#%d call %s", id, target.Name)
			}
			add(id)
		case *ssa.Defer, *ssa.Go:
			// Deferred and spawned calls are call sites but not inline
			// candidates at this site.
			add(l.b.Invoke(nil))
		}
	}

	switch {
	case len(blk.Succs) == 0:
		add(l.b.Node(graph.KindSink))
	case len(blk.Succs) >= 2:
		add(l.b.Node(graph.KindSplit))
	default:
		if c.first == graph.None {
			add(l.b.Node(graph.KindPlain))
		}
	}
	return c
}

// wireBlock connects the chain of blk to the chains of its successors.
// A back edge terminates in a LoopEnd; an edge into a merge-headed chain
// goes through an End owned by that Merge; other edges link directly.
func (l *lowerer) wireBlock(blk *ssa.BasicBlock) {
	from := l.chains[blk.Index].last
	for _, succ := range blk.Succs {
		switch {
		case l.back[blockEdge{blk, succ}]:
			le := l.b.Node(graph.KindLoopEnd)
			l.b.Edge(from, le)
		case l.chains[succ.Index].merge != graph.None:
			end := l.b.EndFor(l.chains[succ.Index].merge)
			l.b.Edge(from, end)
		default:
			l.b.Edge(from, l.chains[succ.Index].first)
		}
	}
}

func (l *lowerer) countForwardPreds(blk *ssa.BasicBlock) int {
	n := 0
	for _, pred := range blk.Preds {
		if !l.back[blockEdge{pred, blk}] {
			n++
		}
	}
	return n
}
