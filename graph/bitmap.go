package graph

import "math/bits"

// BitMap is a set of nodes of one Graph, one bit per node ID.
// Each walk owns its own BitMap, so independent walks over the same graph
// do not share state.
type BitMap struct {
	words []uint64
}

// NewBitMap returns an empty BitMap sized for the nodes of g.
func (g *Graph) NewBitMap() *BitMap {
	return &BitMap{words: make([]uint64, (len(g.nodes)+63)/64)}
}

// Mark adds id to the set. Marking twice is a no-op.
func (m *BitMap) Mark(id ID) {
	m.words[id/64] |= 1 << uint(id%64)
}

// Marked reports whether id is in the set.
func (m *BitMap) Marked(id ID) bool {
	return m.words[id/64]&(1<<uint(id%64)) != 0
}

// Count returns the number of marked nodes.
func (m *BitMap) Count() int {
	n := 0
	for _, w := range m.words {
		n += bits.OnesCount64(w)
	}
	return n
}
