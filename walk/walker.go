package walk

import (
	"fmt"
	"io"
	"io/ioutil"
	"log"

	"github.com/nickng/callwalk/graph"
)

// Walker performs one dominator-ordered call discovery pass over a Graph.
//
// A Walker is single-use: one Apply call per instance, mirroring one
// discovery pass per candidate graph. It holds no reference to the graph
// beyond reading it, and all walk state (the pending deque and the visited
// marking) is local to the instance.
type Walker struct {
	g       *graph.Graph
	entry   graph.ID
	queue   nodeDeque
	queued  *graph.BitMap
	applied bool
	logger  *log.Logger
}

// New returns a Walker over g.
// The graph must have a live entry node; a graph without one is malformed
// and New panics.
func New(g *graph.Graph) *Walker {
	if g == nil {
		panic("walk: graph is nil")
	}
	entry := g.Start()
	if entry == graph.None || int(entry) >= g.NumNodes() {
		panic(fmt.Sprintf("walk: graph entry %d is not alive", entry))
	}
	return &Walker{
		g:      g,
		entry:  entry,
		queued: g.NewBitMap(),
		logger: log.New(ioutil.Discard, "walk: ", 0),
	}
}

// SetLog sets the output for walk trace logging.
func (w *Walker) SetLog(out io.Writer) {
	w.logger.SetOutput(out)
}

// Apply traverses every fixed node reachable from the entry and returns the
// resolved call-site nodes in discovery order. The entry node is never part
// of the result, even when the entry is itself a call site.
//
// A structural invariant violation (an unclassifiable node kind, dequeuing
// an unmarked node, or a mismatch between the discovered call sites and the
// graph's call-site count) means the graph or the walk is broken; Apply
// panics rather than return a partial result.
func (w *Walker) Apply() []graph.ID {
	if w.applied {
		panic("walk: Apply called twice on a single-use Walker")
	}
	w.applied = true

	var invokes []graph.ID
	w.forcedQueue(w.entry)
	for {
		current, ok := w.nextQueuedNode()
		if !ok {
			break
		}
		switch w.g.Kind(current) {
		case graph.KindInvoke:
			if w.g.Target(current) != nil && current != w.entry {
				invokes = append(invokes, current)
				w.logger.Printf("collect #%d %s", current, w.g.Target(current).Name)
			}
			w.queueSuccessors(current)
		case graph.KindStart, graph.KindPlain, graph.KindLoopBegin,
			graph.KindMerge, graph.KindSplit:
			w.queueSuccessors(current)
		case graph.KindLoopEnd, graph.KindSink:
			// Dead end for this walk: nothing to queue.
		case graph.KindEnd:
			w.queueMerge(current)
		default:
			panic(fmt.Sprintf("walk: unclassifiable fixed node #%d (%s)",
				current, w.g.Kind(current)))
		}
	}

	if len(invokes) != w.g.InvokeCount() {
		panic(fmt.Sprintf("walk: discovered %d call sites, graph has %d",
			len(invokes), w.g.InvokeCount()))
	}
	return invokes
}

// queueSuccessors queues every direct successor of id for exploration.
func (w *Walker) queueSuccessors(id graph.ID) {
	for _, succ := range w.g.Succs(id) {
		w.queueNode(succ)
	}
}

// queueNode queues id at the front of the deque unless already marked.
func (w *Walker) queueNode(id graph.ID) {
	if !w.queued.Marked(id) {
		w.forcedQueue(id)
	}
}

// forcedQueue marks id and pushes it to the front of the deque.
// Marking happens at queue time, so a node is never queued twice.
func (w *Walker) forcedQueue(id graph.ID) {
	w.queued.Mark(id)
	w.queue.pushFront(id)
}

// nextQueuedNode removes the next pending node from the front of the deque.
// Every dequeued node must have been marked when queued.
func (w *Walker) nextQueuedNode() (graph.ID, bool) {
	id, ok := w.queue.popFront()
	if !ok {
		return graph.None, false
	}
	if !w.queued.Marked(id) {
		panic(fmt.Sprintf("walk: dequeued unmarked node #%d", id))
	}
	return id, true
}

// queueMerge queues the owning Merge of an End node once every forward End
// predecessor of the merge has been visited. The merge goes to the back of
// the deque: by the time it is dequeued, all pending work on the paths into
// it has drained, which is what makes the visit order dominance-respecting.
// If some forward End is still unvisited, the last End to arrive queues the
// merge instead.
func (w *Walker) queueMerge(end graph.ID) {
	merge := w.g.MergeOf(end)
	if !w.queued.Marked(merge) && w.visitedAllEnds(merge) {
		w.queued.Mark(merge)
		w.queue.pushBack(merge)
		w.logger.Printf("merge #%d ready (last end #%d)", merge, end)
	}
}

// visitedAllEnds reports whether every forward End predecessor of merge has
// been visited.
func (w *Walker) visitedAllEnds(merge graph.ID) bool {
	for _, end := range w.g.ForwardEnds(merge) {
		if !w.queued.Marked(end) {
			return false
		}
	}
	return true
}
