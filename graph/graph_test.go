package graph

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

// Tests basic graph construction and accessors.
func TestBuilder(t *testing.T) {
	b := NewBuilder()
	start := b.Start()
	inv := b.Invoke(&CallTarget{Name: "main.f"})
	sink := b.Node(KindSink)
	b.Edge(start, inv)
	b.Edge(inv, sink)
	g, err := b.Graph()
	if err != nil {
		t.Fatalf("graph build failed: %v", err)
	}
	if g.NumNodes() != 3 {
		t.Errorf("graph should have 3 nodes, got %d", g.NumNodes())
	}
	if g.Start() != start {
		t.Errorf("entry should be %d, got %d", start, g.Start())
	}
	if g.Kind(inv) != KindInvoke {
		t.Errorf("node %d should be Invoke, got %s", inv, g.Kind(inv))
	}
	if g.Target(inv) == nil || g.Target(inv).Name != "main.f" {
		t.Errorf("node %d should carry target main.f, got %v", inv, g.Target(inv))
	}
	if g.Target(start) != nil {
		t.Errorf("non-invoke node should have no target, got %v", g.Target(start))
	}
	if len(g.Succs(inv)) != 1 || g.Succs(inv)[0] != sink {
		t.Errorf("successors of %d should be [%d], got %v", inv, sink, g.Succs(inv))
	}
	if g.InvokeCount() != 1 {
		t.Errorf("graph should count 1 resolved call site, got %d", g.InvokeCount())
	}
}

// Tests the End/Merge ownership relation.
func TestBuilderEnds(t *testing.T) {
	b := NewBuilder()
	b.Start()
	merge := b.Node(KindMerge)
	end1 := b.EndFor(merge)
	end2 := b.EndFor(merge)
	g, err := b.Graph()
	if err != nil {
		t.Fatalf("graph build failed: %v", err)
	}
	if g.MergeOf(end1) != merge || g.MergeOf(end2) != merge {
		t.Errorf("ends should be owned by %d, got %d and %d",
			merge, g.MergeOf(end1), g.MergeOf(end2))
	}
	ends := g.ForwardEnds(merge)
	if len(ends) != 2 || ends[0] != end1 || ends[1] != end2 {
		t.Errorf("forward ends of %d should be [%d %d], got %v",
			merge, end1, end2, ends)
	}
}

// Tests builder validation failures.
func TestBuilderValidation(t *testing.T) {
	b := NewBuilder()
	b.Node(KindSink)
	if _, err := b.Graph(); err != ErrNoEntry {
		t.Errorf("graph without entry should fail with ErrNoEntry, got %v", err)
	}

	b = NewBuilder()
	b.Start()
	b.Node(KindEnd) // no owning merge
	if _, err := b.Graph(); errors.Cause(err) != ErrOrphanEnd {
		t.Errorf("End without owning merge should fail with ErrOrphanEnd, got %v", err)
	}

	b = NewBuilder()
	b.Start()
	plain := b.Node(KindPlain)
	b.EndFor(plain)
	if _, err := b.Graph(); errors.Cause(err) != ErrNotMerge {
		t.Errorf("End owned by non-Merge should fail with ErrNotMerge, got %v", err)
	}
}

// Tests that the entry call site is excluded from the call-site count.
func TestInvokeCountExcludesEntry(t *testing.T) {
	b := NewBuilder()
	entry := b.Invoke(&CallTarget{Name: "main.entry"})
	b.SetEntry(entry)
	b.Invoke(&CallTarget{Name: "main.f"})
	b.Invoke(nil)
	g, err := b.Graph()
	if err != nil {
		t.Fatalf("graph build failed: %v", err)
	}
	if g.InvokeCount() != 1 {
		t.Errorf("count should exclude the entry and unresolved calls, got %d",
			g.InvokeCount())
	}
}

// Tests BitMap marking and counting.
func TestBitMap(t *testing.T) {
	b := NewBuilder()
	b.Start()
	var ids []ID
	for i := 0; i < 100; i++ {
		ids = append(ids, b.Node(KindPlain))
	}
	g, err := b.Graph()
	if err != nil {
		t.Fatalf("graph build failed: %v", err)
	}
	m := g.NewBitMap()
	if m.Marked(ids[0]) {
		t.Errorf("fresh BitMap should have no marks")
	}
	m.Mark(ids[0])
	m.Mark(ids[70])
	m.Mark(ids[70]) // idempotent
	if !m.Marked(ids[0]) || !m.Marked(ids[70]) {
		t.Errorf("marked nodes should be reported marked")
	}
	if m.Marked(ids[1]) {
		t.Errorf("unmarked node reported marked")
	}
	if m.Count() != 2 {
		t.Errorf("count should be 2, got %d", m.Count())
	}

	// Independent maps over the same graph do not share state.
	m2 := g.NewBitMap()
	if m2.Marked(ids[0]) {
		t.Errorf("new BitMap should not see marks of another")
	}
}

// Tests the graphviz output shape.
func TestWriteGraphviz(t *testing.T) {
	b := NewBuilder()
	start := b.Start()
	inv := b.Invoke(&CallTarget{Name: "main.f"})
	sink := b.Node(KindSink)
	b.Edge(start, inv)
	b.Edge(inv, sink)
	g, err := b.Graph()
	if err != nil {
		t.Fatalf("graph build failed: %v", err)
	}
	var buf bytes.Buffer
	if err := g.WriteGraphviz(&buf); err != nil {
		t.Fatalf("WriteGraphviz failed: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "digraph cfg {") {
		t.Errorf("output should be a digraph, got:\n%s", out)
	}
	if !strings.Contains(out, "main.f") {
		t.Errorf("output should name the call target, got:\n%s", out)
	}
	if !strings.Contains(out, "n0 -> n1") {
		t.Errorf("output should contain the Start -> Invoke edge, got:\n%s", out)
	}
}
