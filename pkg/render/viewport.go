package render

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/ha1tch/springgraph/pkg/graph"
)

// Viewport maps logical layout coordinates onto a pixel surface so that the
// bounding box fills the surface minus a radius-wide margin on every side.
type Viewport struct {
	Width, Height float64
	Radius        float64
	FactorX       float64
	FactorY       float64
	Bounds        graph.Bounds
}

// NewViewport computes the scale factors for b on a width x height surface.
// An axis with zero or non-finite extent uses factor 1, which puts every
// node of a single-node or collinear graph on the margin line.
func NewViewport(width, height, radius float64, b graph.Bounds) Viewport {
	return Viewport{
		Width:   width,
		Height:  height,
		Radius:  radius,
		FactorX: axisFactor(width-2*radius, b.Width()),
		FactorY: axisFactor(height-2*radius, b.Height()),
		Bounds:  b,
	}
}

func axisFactor(avail, extent float64) float64 {
	if extent <= 0 || math.IsNaN(extent) || math.IsInf(extent, 0) {
		return 1
	}
	f := avail / extent
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 1
	}
	return f
}

// Translate converts a logical position to surface coordinates.
func (v Viewport) Translate(p r2.Vec) r2.Vec {
	return r2.Vec{
		X: (p.X-v.Bounds.MinX)*v.FactorX + v.Radius,
		Y: (p.Y-v.Bounds.MinY)*v.FactorY + v.Radius,
	}
}
