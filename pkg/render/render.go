// Package render draws a laid out graph onto a drawing surface.
//
// Nodes are circles of a fixed pixel radius; edges are straight grey lines
// trimmed to the circles with a filled arrowhead at the target. Concrete
// surfaces exist for PNG, SVG, terminal screens and a recorded display list.
package render

import (
	"image/color"
	"math"

	"github.com/kataras/golog"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/ha1tch/springgraph/pkg/graph"
)

// Style carries the drawing attributes of a single operation.
type Style struct {
	Color     color.Color
	LineWidth float64
	FontSize  float64
}

// Surface is a 2D drawing target in pixel coordinates, y axis down.
type Surface interface {
	Size() (width, height float64)
	StrokeCircle(center r2.Vec, radius float64, s Style)
	StrokeLine(from, to r2.Vec, s Style)
	FillPolygon(points []r2.Vec, s Style)
	Text(at r2.Vec, text string, s Style)
}

// Overlay is implemented by node payloads that are positioned next to the
// drawing, such as a widget stacked on top of the canvas.
type Overlay interface {
	Place(top, left float64)
}

// Labeler is implemented by node payloads that supply their own caption.
type Labeler interface {
	Label() string
}

// Colors used in rendering
var (
	ColorNode = color.RGBA{0, 0, 0, 255}
	ColorEdge = color.RGBA{128, 128, 128, 255}
)

// Options configures the renderer.
type Options struct {
	Radius         float64
	ArrowLength    float64
	ArrowAngle     float64 // half-opening of the arrowhead, radians
	OverlayOffsetX float64
	OverlayOffsetY float64
	NodeColor      color.Color
	EdgeColor      color.Color
	LineWidth      float64
	Labels         bool
	FontSize       float64
}

// DefaultOptions returns the classic canvas look.
func DefaultOptions() Options {
	return Options{
		Radius:         39,
		ArrowLength:    20,
		ArrowAngle:     math.Pi / 10,
		OverlayOffsetX: -40,
		OverlayOffsetY: -42,
		NodeColor:      ColorNode,
		EdgeColor:      ColorEdge,
		LineWidth:      1,
		Labels:         true,
		FontSize:       12,
	}
}

// Renderer draws graphs with a fixed set of options.
type Renderer struct {
	Options

	// Logger receives debug output; nil disables logging.
	Logger *golog.Logger
}

// NewRenderer creates a renderer.
func NewRenderer(opts Options) *Renderer {
	return &Renderer{Options: opts}
}

// Viewport returns the transform Render uses for g on s.
func (r *Renderer) Viewport(g *graph.Graph, s Surface) Viewport {
	w, h := s.Size()
	return NewViewport(w, h, r.Radius, g.Bounds)
}

// Render draws every node, then every edge, using the bounds stored on g by
// the last layout. An empty graph draws nothing.
func (r *Renderer) Render(g *graph.Graph, s Surface) {
	if g.Len() == 0 {
		return
	}
	vp := r.Viewport(g, s)

	for _, n := range g.Nodes {
		r.drawNode(vp, n, s)
	}

	skipped := 0
	for _, e := range g.Edges {
		if !r.drawEdge(vp, e, s) {
			skipped++
		}
	}

	if r.Logger != nil {
		r.Logger.Debugf("render: %d nodes, %d edges (%d without direction), factor %.3f x %.3f",
			g.Len(), g.EdgeCount(), skipped, vp.FactorX, vp.FactorY)
	}
}

func (r *Renderer) drawNode(vp Viewport, n *graph.Node, s Surface) {
	p := vp.Translate(n.Position)

	if o, ok := n.Payload.(Overlay); ok {
		o.Place(p.Y+r.OverlayOffsetY, p.X+r.OverlayOffsetX)
	}

	s.StrokeCircle(p, r.Radius, Style{Color: r.NodeColor, LineWidth: r.LineWidth})

	if r.Labels {
		s.Text(p, NodeLabel(n), Style{Color: r.NodeColor, FontSize: r.FontSize})
	}
}

// drawEdge reports false when the endpoints coincide on screen.
func (r *Renderer) drawEdge(vp Viewport, e *graph.Edge, s Surface) bool {
	src := vp.Translate(e.Source.Position)
	dst := vp.Translate(e.Target.Position)

	from, to, theta, ok := TrimEdge(src, dst, r.Radius)
	if !ok {
		return false
	}

	style := Style{Color: r.EdgeColor, LineWidth: r.LineWidth}
	s.StrokeLine(from, to, style)

	head := ArrowHead(to, r.ArrowLength, r.ArrowAngle, theta)
	s.FillPolygon(head[:], style)
	return true
}

// NodeLabel returns the caption for n: the payload's Label when it has a
// non-empty one, otherwise the node key.
func NodeLabel(n *graph.Node) string {
	if l, ok := n.Payload.(Labeler); ok {
		if text := l.Label(); text != "" {
			return text
		}
	}
	return n.Key
}
