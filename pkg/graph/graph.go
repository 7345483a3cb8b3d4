// Package graph provides the node/edge model consumed by the layout engine
// and the renderers.
package graph

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"
)

// Keyer is implemented by payloads that carry their own identity.
type Keyer interface {
	Key() string
}

// Node is a vertex of the graph.
type Node struct {
	Key      string
	Payload  any    // caller data, never inspected beyond identity
	Position r2.Vec // logical layout coordinates
	Index    int    // position in Graph.Nodes
}

// Edge is a directed link between two nodes of the same graph.
type Edge struct {
	Source *Node
	Target *Node
	Weight float64 // 0 means no weight was given
}

// EffectiveWeight returns the weight used by the layout.
// Missing, zero and negative weights all count as 1.
func (e *Edge) EffectiveWeight() float64 {
	if e.Weight < 1 {
		return 1
	}
	return e.Weight
}

// Graph holds nodes in insertion order plus the directed edges between them.
// It is not safe for concurrent mutation.
type Graph struct {
	Nodes  []*Node
	Edges  []*Edge
	Bounds Bounds

	index map[string]*Node
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		Nodes: make([]*Node, 0),
		Edges: make([]*Edge, 0),
		index: make(map[string]*Node),
	}
}

// KeyOf derives the node key for an identity value.
func KeyOf(identity any) string {
	switch v := identity.(type) {
	case string:
		return v
	case Keyer:
		return v.Key()
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// AddNode returns the node for identity, creating it if needed.
// The payload of the first call for a key is kept.
func (g *Graph) AddNode(identity any) *Node {
	if g.index == nil {
		g.index = make(map[string]*Node)
	}
	key := KeyOf(identity)
	if n, ok := g.index[key]; ok {
		return n
	}
	n := &Node{
		Key:     key,
		Payload: identity,
		Index:   len(g.Nodes),
	}
	g.index[key] = n
	g.Nodes = append(g.Nodes, n)
	return n
}

// AddEdge appends an unweighted edge, creating missing endpoints.
// Duplicate edges are the caller's concern.
func (g *Graph) AddEdge(source, target any) *Edge {
	return g.AddWeightedEdge(source, target, 0)
}

// AddWeightedEdge appends an edge with the given weight.
func (g *Graph) AddWeightedEdge(source, target any, weight float64) *Edge {
	e := &Edge{
		Source: g.AddNode(source),
		Target: g.AddNode(target),
		Weight: weight,
	}
	g.Edges = append(g.Edges, e)
	return e
}

// Node looks up a node by key.
func (g *Graph) Node(key string) (*Node, bool) {
	n, ok := g.index[key]
	return n, ok
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.Nodes)
}

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int {
	return len(g.Edges)
}

// RemoveNode deletes a node together with every edge touching it.
func (g *Graph) RemoveNode(key string) bool {
	n, ok := g.index[key]
	if !ok {
		return false
	}

	edges := g.Edges[:0]
	for _, e := range g.Edges {
		if e.Source != n && e.Target != n {
			edges = append(edges, e)
		}
	}
	for i := len(edges); i < len(g.Edges); i++ {
		g.Edges[i] = nil
	}
	g.Edges = edges

	g.Nodes = append(g.Nodes[:n.Index], g.Nodes[n.Index+1:]...)
	for i := n.Index; i < len(g.Nodes); i++ {
		g.Nodes[i].Index = i
	}
	delete(g.index, key)
	return true
}

// RemoveEdge deletes one edge by identity.
func (g *Graph) RemoveEdge(e *Edge) bool {
	for i, cur := range g.Edges {
		if cur == e {
			g.Edges = append(g.Edges[:i], g.Edges[i+1:]...)
			return true
		}
	}
	return false
}

// ResetPositions moves every node back to the origin.
func (g *Graph) ResetPositions() {
	for _, n := range g.Nodes {
		n.Position = r2.Vec{}
	}
}

// ComputeBounds recomputes and stores the bounding box of all node positions.
func (g *Graph) ComputeBounds() Bounds {
	g.Bounds = BoundsOf(g.Nodes)
	return g.Bounds
}
