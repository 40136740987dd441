package graph

import (
	"github.com/pkg/errors"
)

var (
	ErrNoEntry   = errors.New("graph: no entry node designated")
	ErrOrphanEnd = errors.New("graph: End node has no owning merge")
	ErrNotMerge  = errors.New("graph: End node owned by a non-Merge node")
	ErrBadEdge   = errors.New("graph: edge endpoint is not a node")
)

// Builder constructs a Graph one node at a time. The zero Builder is not
// usable; call NewBuilder.
type Builder struct {
	g        Graph
	entrySet bool
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{g: Graph{entry: None}}
}

// Node adds a fixed node of kind k and returns its ID.
func (b *Builder) Node(k Kind) ID {
	id := ID(len(b.g.nodes))
	b.g.nodes = append(b.g.nodes, node{kind: k, merge: None})
	return id
}

// Start adds the entry node of the graph.
func (b *Builder) Start() ID {
	id := b.Node(KindStart)
	b.SetEntry(id)
	return id
}

// Invoke adds a call-site node. A nil target makes the call site an
// unresolved (indirect or intrinsic) call.
func (b *Builder) Invoke(target *CallTarget) ID {
	id := b.Node(KindInvoke)
	b.g.nodes[id].target = target
	return id
}

// EndFor adds an End node owned by merge, registering it as one of the
// merge's forward End predecessors.
func (b *Builder) EndFor(merge ID) ID {
	id := b.Node(KindEnd)
	b.g.nodes[id].merge = merge
	b.g.nodes[merge].ends = append(b.g.nodes[merge].ends, id)
	return id
}

// Edge adds a successor edge from one node to another.
func (b *Builder) Edge(from, to ID) {
	b.g.nodes[from].succs = append(b.g.nodes[from].succs, to)
}

// SetEntry designates id as the entry node of the graph. Normally the entry
// is a Start node added with Start; designating another fixed node covers
// degenerate method bodies whose first fixed node is, for example, a call.
func (b *Builder) SetEntry(id ID) {
	b.g.entry = id
	b.entrySet = true
}

// Graph validates and returns the built graph. The Builder must not be used
// afterwards.
func (b *Builder) Graph() (*Graph, error) {
	if !b.entrySet || b.g.entry < 0 || int(b.g.entry) >= len(b.g.nodes) {
		return nil, ErrNoEntry
	}
	for id := range b.g.nodes {
		n := &b.g.nodes[id]
		for _, succ := range n.succs {
			if succ < 0 || int(succ) >= len(b.g.nodes) {
				return nil, errors.Wrapf(ErrBadEdge, "node %d -> %d", id, succ)
			}
		}
		if n.kind == KindEnd {
			if n.merge == None {
				return nil, errors.Wrapf(ErrOrphanEnd, "node %d", id)
			}
			if b.g.nodes[n.merge].kind != KindMerge {
				return nil, errors.Wrapf(ErrNotMerge, "node %d owned by %d (%s)",
					id, n.merge, b.g.nodes[n.merge].kind)
			}
		}
		if n.kind == KindInvoke && n.target != nil && ID(id) != b.g.entry {
			b.g.invokes++
		}
	}
	return &b.g, nil
}
