package graph

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

type element struct {
	id   string
	text string
}

func (e *element) Key() string { return e.id }

func TestAddNodeIdempotent(t *testing.T) {
	g := New()

	a1 := g.AddNode("A")
	a2 := g.AddNode("A")

	if a1 != a2 {
		t.Error("AddNode should return the same node for the same key")
	}
	if g.Len() != 1 {
		t.Errorf("Expected 1 node, got %d", g.Len())
	}
	if a1.Position != (r2.Vec{}) {
		t.Errorf("New node should start at origin, got %v", a1.Position)
	}
}

func TestAddNodeKeyDerivation(t *testing.T) {
	g := New()

	el := &element{id: "login", text: "Login page"}
	n := g.AddNode(el)
	if n.Key != "login" {
		t.Errorf("Expected key from Keyer, got %q", n.Key)
	}
	if n.Payload != el {
		t.Error("Payload should be the original identity value")
	}

	// Same key from a raw string resolves to the element node
	if g.AddNode("login") != n {
		t.Error("String identity should resolve to the existing Keyer node")
	}
	if n.Payload != el {
		t.Error("First payload should be kept")
	}

	num := g.AddNode(42)
	if num.Key != "42" {
		t.Errorf("Expected fallback key \"42\", got %q", num.Key)
	}
}

func TestZeroValueGraph(t *testing.T) {
	var g Graph
	g.AddEdge("x", "y")
	if g.Len() != 2 || g.EdgeCount() != 1 {
		t.Errorf("Expected 2 nodes 1 edge, got %d/%d", g.Len(), g.EdgeCount())
	}
}

func TestAddEdgeCreatesEndpoints(t *testing.T) {
	g := New()
	e := g.AddEdge("A", "B")

	if g.Len() != 2 {
		t.Fatalf("Expected 2 nodes, got %d", g.Len())
	}
	if e.Source.Key != "A" || e.Target.Key != "B" {
		t.Errorf("Edge endpoints wrong: %s -> %s", e.Source.Key, e.Target.Key)
	}

	// Multi-edges, back links and self loops are all legal
	g.AddEdge("A", "B")
	g.AddEdge("B", "A")
	g.AddEdge("A", "A")
	if g.EdgeCount() != 4 {
		t.Errorf("Expected 4 edges, got %d", g.EdgeCount())
	}
	if g.Len() != 2 {
		t.Errorf("Edges should not add nodes for known keys, got %d", g.Len())
	}
}

func TestNodeOrderAndIndex(t *testing.T) {
	g := New()
	g.AddEdge("c", "a")
	g.AddNode("b")

	want := []string{"c", "a", "b"}
	for i, n := range g.Nodes {
		if n.Key != want[i] {
			t.Errorf("Node %d: expected %q, got %q", i, want[i], n.Key)
		}
		if n.Index != i {
			t.Errorf("Node %q: expected index %d, got %d", n.Key, i, n.Index)
		}
	}
}

func TestEffectiveWeight(t *testing.T) {
	tests := []struct {
		weight   float64
		expected float64
	}{
		{0, 1},
		{0.5, 1},
		{-3, 1},
		{1, 1},
		{5, 5},
	}

	for _, tc := range tests {
		e := &Edge{Weight: tc.weight}
		if got := e.EffectiveWeight(); got != tc.expected {
			t.Errorf("EffectiveWeight(%v) = %v, expected %v", tc.weight, got, tc.expected)
		}
		if e.Weight != tc.weight {
			t.Errorf("EffectiveWeight should not mutate the stored weight")
		}
	}
}

func TestRemoveNode(t *testing.T) {
	g := New()
	g.AddEdge("A", "B")
	g.AddEdge("B", "C")
	g.AddEdge("C", "A")
	g.AddEdge("C", "D")

	if !g.RemoveNode("B") {
		t.Fatal("RemoveNode should report success")
	}
	if g.RemoveNode("B") {
		t.Error("Removing twice should fail")
	}

	if g.Len() != 3 {
		t.Errorf("Expected 3 nodes, got %d", g.Len())
	}
	if g.EdgeCount() != 2 {
		t.Errorf("Expected 2 edges, got %d", g.EdgeCount())
	}
	for _, e := range g.Edges {
		if e.Source.Key == "B" || e.Target.Key == "B" {
			t.Errorf("Dangling edge %s -> %s", e.Source.Key, e.Target.Key)
		}
	}
	for i, n := range g.Nodes {
		if n.Index != i {
			t.Errorf("Node %q has stale index %d (want %d)", n.Key, n.Index, i)
		}
	}
	if _, ok := g.Node("B"); ok {
		t.Error("Removed node should not be found")
	}
}

func TestRemoveEdge(t *testing.T) {
	g := New()
	e1 := g.AddEdge("A", "B")
	e2 := g.AddEdge("A", "B")

	if !g.RemoveEdge(e1) {
		t.Fatal("RemoveEdge should find the edge")
	}
	if g.EdgeCount() != 1 || g.Edges[0] != e2 {
		t.Error("Only the given edge should be removed")
	}
	if g.RemoveEdge(e1) {
		t.Error("Removing twice should fail")
	}
}

func TestComputeBounds(t *testing.T) {
	g := New()
	g.AddNode("A").Position = r2.Vec{X: -1, Y: 2}
	g.AddNode("B").Position = r2.Vec{X: 3, Y: -4}
	g.AddNode("C").Position = r2.Vec{X: 0, Y: 0}

	b := g.ComputeBounds()
	if b.MinX != -1 || b.MaxX != 3 || b.MinY != -4 || b.MaxY != 2 {
		t.Errorf("Unexpected bounds %+v", b)
	}
	if b.Width() != 4 || b.Height() != 6 {
		t.Errorf("Expected 4x6, got %vx%v", b.Width(), b.Height())
	}
	for _, n := range g.Nodes {
		if !b.Contains(n.Position) {
			t.Errorf("Node %s outside bounds", n.Key)
		}
	}
	if g.Bounds != b {
		t.Error("ComputeBounds should store the result on the graph")
	}
}

func TestComputeBoundsEmpty(t *testing.T) {
	g := New()
	b := g.ComputeBounds()

	if !b.Empty() {
		t.Error("Bounds of an empty graph should be empty")
	}
	for _, v := range []float64{b.MinX, b.MaxX, b.MinY, b.MaxY} {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			t.Errorf("Empty bounds should be finite, got %+v", b)
		}
	}
	if b.Contains(r2.Vec{}) {
		t.Error("Empty bounds contain nothing")
	}
	if b.MinX != 0 || b.MaxX != 0 || b.MinY != 0 || b.MaxY != 0 {
		t.Errorf("Empty bounds should have zero extremes, got %+v", b)
	}

	// a literal zero box is one node at the origin
	if (Bounds{}).Empty() {
		t.Error("Bounds{} should not report empty")
	}
	if !(Bounds{}).Contains(r2.Vec{}) {
		t.Error("Bounds{} should contain the origin")
	}
}

func TestResetPositions(t *testing.T) {
	g := New()
	g.AddNode("A").Position = r2.Vec{X: 5, Y: 5}
	g.ResetPositions()
	if g.Nodes[0].Position != (r2.Vec{}) {
		t.Errorf("Expected origin, got %v", g.Nodes[0].Position)
	}
}
