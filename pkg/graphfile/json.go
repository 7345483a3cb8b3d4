// Package graphfile reads graph descriptions and writes graph exports:
// JSON descriptions, Graphviz DOT and TOML position files.
package graphfile

import (
	"encoding/json"
	"errors"
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/ha1tch/springgraph/pkg/graph"
)

// ErrInvalidDescription is wrapped by every structural error in a description.
var ErrInvalidDescription = errors.New("invalid graph description")

// NodeSpec is the payload of nodes declared as objects.
type NodeSpec struct {
	ID      string
	Caption string
}

// Key returns the node id.
func (n *NodeSpec) Key() string { return n.ID }

// Label returns the caption, empty when none was given.
func (n *NodeSpec) Label() string { return n.Caption }

// Document is a parsed description.
type Document struct {
	Name        string
	Description string
	Graph       *graph.Graph
}

// jsonGraph is the JSON representation of a graph.
type jsonGraph struct {
	Name        string        `json:"name,omitempty"`
	Description string        `json:"description,omitempty"`
	Nodes       []interface{} `json:"nodes"`
	Edges       []jsonEdge    `json:"edges"`
	Bounds      *jsonBounds   `json:"bounds,omitempty"`
}

type jsonNode struct {
	ID    string   `json:"id"`
	Label string   `json:"label,omitempty"`
	X     *float64 `json:"x,omitempty"`
	Y     *float64 `json:"y,omitempty"`
}

type jsonEdge struct {
	Source string  `json:"source"`
	Target string  `json:"target"`
	Weight float64 `json:"weight,omitempty"`
}

type jsonBounds struct {
	MinX float64 `json:"min_x"`
	MaxX float64 `json:"max_x"`
	MinY float64 `json:"min_y"`
	MaxY float64 `json:"max_y"`
}

// ParseJSON parses a graph from JSON.
func ParseJSON(data []byte) (*graph.Graph, error) {
	doc, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return doc.Graph, nil
}

// Decode parses a description including its name.
//
// Nodes are either plain strings or objects with "id", optional "label" and
// optional "x"/"y" starting coordinates. Edges may name nodes that were not
// declared; those are created on the fly.
func Decode(data []byte) (*Document, error) {
	var j jsonGraph
	if err := json.Unmarshal(data, &j); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDescription, err)
	}

	g := graph.New()
	for i, raw := range j.Nodes {
		switch v := raw.(type) {
		case string:
			if v == "" {
				return nil, fmt.Errorf("%w: node %d has an empty id", ErrInvalidDescription, i)
			}
			if _, dup := g.Node(v); dup {
				return nil, fmt.Errorf("%w: duplicate node %q", ErrInvalidDescription, v)
			}
			g.AddNode(v)
		case map[string]interface{}:
			n, err := decodeNode(v)
			if err != nil {
				return nil, fmt.Errorf("%w: node %d: %v", ErrInvalidDescription, i, err)
			}
			if _, dup := g.Node(n.ID); dup {
				return nil, fmt.Errorf("%w: duplicate node %q", ErrInvalidDescription, n.ID)
			}
			node := g.AddNode(&NodeSpec{ID: n.ID, Caption: n.Label})
			if n.X != nil && n.Y != nil {
				node.Position = r2.Vec{X: *n.X, Y: *n.Y}
			}
		default:
			return nil, fmt.Errorf("%w: node %d must be a string or an object", ErrInvalidDescription, i)
		}
	}

	for i, e := range j.Edges {
		if e.Source == "" || e.Target == "" {
			return nil, fmt.Errorf("%w: edge %d needs both source and target", ErrInvalidDescription, i)
		}
		g.AddWeightedEdge(e.Source, e.Target, e.Weight)
	}
	g.ComputeBounds()

	return &Document{Name: j.Name, Description: j.Description, Graph: g}, nil
}

func decodeNode(m map[string]interface{}) (jsonNode, error) {
	// round-trip through the typed struct to get field checking
	var n jsonNode
	data, err := json.Marshal(m)
	if err != nil {
		return n, err
	}
	if err := json.Unmarshal(data, &n); err != nil {
		return n, err
	}
	if n.ID == "" {
		return n, errors.New("missing id")
	}
	if (n.X != nil && !finite(*n.X)) || (n.Y != nil && !finite(*n.Y)) {
		return n, errors.New("coordinates must be finite")
	}
	return n, nil
}

// ToJSON converts a graph, including positions and bounds, to JSON.
func ToJSON(g *graph.Graph, name string, pretty bool) ([]byte, error) {
	j := jsonGraph{
		Name:  name,
		Nodes: make([]interface{}, 0, g.Len()),
		Edges: make([]jsonEdge, 0, g.EdgeCount()),
	}

	for _, n := range g.Nodes {
		x, y := n.Position.X, n.Position.Y
		jn := jsonNode{ID: n.Key, X: &x, Y: &y}
		if l, ok := n.Payload.(interface{ Label() string }); ok {
			jn.Label = l.Label()
		}
		j.Nodes = append(j.Nodes, jn)
	}

	for _, e := range g.Edges {
		j.Edges = append(j.Edges, jsonEdge{
			Source: e.Source.Key,
			Target: e.Target.Key,
			Weight: e.Weight,
		})
	}

	if !g.Bounds.Empty() {
		b := g.Bounds
		j.Bounds = &jsonBounds{MinX: b.MinX, MaxX: b.MaxX, MinY: b.MinY, MaxY: b.MaxY}
	}

	if pretty {
		return json.MarshalIndent(j, "", "  ")
	}
	return json.Marshal(j)
}
