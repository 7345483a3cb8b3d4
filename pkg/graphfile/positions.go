package graphfile

import (
	"fmt"
	"io"
	"math"

	"github.com/BurntSushi/toml"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/ha1tch/springgraph/pkg/graph"
)

// PositionsVersion is written to every positions file.
const PositionsVersion = 1

// Positions is the on-disk form of a layout result.
type Positions struct {
	Version int                     `toml:"version"`
	Nodes   map[string]NodePosition `toml:"nodes"`
}

// NodePosition contains the logical position of a single node.
type NodePosition struct {
	X float64 `toml:"x"`
	Y float64 `toml:"y"`
}

// PositionsOf captures the current node positions of g.
func PositionsOf(g *graph.Graph) Positions {
	p := Positions{
		Version: PositionsVersion,
		Nodes:   make(map[string]NodePosition, g.Len()),
	}
	for _, n := range g.Nodes {
		p.Nodes[n.Key] = NodePosition{X: n.Position.X, Y: n.Position.Y}
	}
	return p
}

// EncodePositions writes the positions of g as TOML.
func EncodePositions(w io.Writer, g *graph.Graph) error {
	if err := toml.NewEncoder(w).Encode(PositionsOf(g)); err != nil {
		return fmt.Errorf("encode positions: %w", err)
	}
	return nil
}

// DecodePositions reads a positions file.
func DecodePositions(r io.Reader) (Positions, error) {
	var p Positions
	if _, err := toml.NewDecoder(r).Decode(&p); err != nil {
		return p, fmt.Errorf("decode positions: %w", err)
	}
	if p.Version > PositionsVersion {
		return p, fmt.Errorf("decode positions: unsupported version %d", p.Version)
	}
	for key, pos := range p.Nodes {
		if !finite(pos.X) || !finite(pos.Y) {
			return p, fmt.Errorf("%w: position of %q is not finite", ErrInvalidDescription, key)
		}
	}
	if p.Nodes == nil {
		p.Nodes = make(map[string]NodePosition)
	}
	return p, nil
}

// ApplyPositions moves the nodes of g named in p and recomputes the bounds.
// Unknown keys and non-finite coordinates are ignored. It returns how many
// nodes were moved.
func ApplyPositions(g *graph.Graph, p Positions) int {
	moved := 0
	for key, pos := range p.Nodes {
		if !finite(pos.X) || !finite(pos.Y) {
			continue
		}
		if n, ok := g.Node(key); ok {
			n.Position = r2.Vec{X: pos.X, Y: pos.Y}
			moved++
		}
	}
	g.ComputeBounds()
	return moved
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
