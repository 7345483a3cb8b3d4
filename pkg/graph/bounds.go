package graph

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Bounds is the axis-aligned box around the laid out nodes.
type Bounds struct {
	MinX, MaxX float64
	MinY, MaxY float64

	empty bool
}

// BoundsOf scans the node positions. No nodes gives an empty zero box
// instead of infinite extremes.
func BoundsOf(nodes []*Node) Bounds {
	if len(nodes) == 0 {
		return Bounds{empty: true}
	}

	b := Bounds{
		MinX: math.Inf(1), MaxX: math.Inf(-1),
		MinY: math.Inf(1), MaxY: math.Inf(-1),
	}
	for _, n := range nodes {
		x, y := n.Position.X, n.Position.Y
		if x > b.MaxX {
			b.MaxX = x
		}
		if x < b.MinX {
			b.MinX = x
		}
		if y > b.MaxY {
			b.MaxY = y
		}
		if y < b.MinY {
			b.MinY = y
		}
	}
	return b
}

// Empty reports whether the box was computed from zero nodes.
// The zero Bounds value is not empty; it is the box of a single node at the origin.
func (b Bounds) Empty() bool {
	return b.empty
}

// Width returns MaxX - MinX.
func (b Bounds) Width() float64 {
	return b.MaxX - b.MinX
}

// Height returns MaxY - MinY.
func (b Bounds) Height() float64 {
	return b.MaxY - b.MinY
}

// Contains checks if a point lies inside the box, edges included.
func (b Bounds) Contains(p r2.Vec) bool {
	if b.empty {
		return false
	}
	return p.X >= b.MinX && p.X <= b.MaxX &&
		p.Y >= b.MinY && p.Y <= b.MaxY
}

// Center returns the middle of the box.
func (b Bounds) Center() r2.Vec {
	return r2.Vec{
		X: (b.MinX + b.MaxX) / 2,
		Y: (b.MinY + b.MaxY) / 2,
	}
}
