package render

import (
	"encoding/json"
	"fmt"
	"image/color"
	"io"

	"gonum.org/v1/gonum/spatial/r2"
)

// Operation kinds recorded by DisplayList.
const (
	OpCircle  = "circle"
	OpLine    = "line"
	OpPolygon = "polygon"
	OpText    = "text"
)

// Point is a pixel coordinate in a display list.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Op is one recorded drawing operation.
type Op struct {
	Kind      string  `json:"kind"`
	Points    []Point `json:"points"`
	Radius    float64 `json:"radius,omitempty"`
	Text      string  `json:"text,omitempty"`
	Color     string  `json:"color"`
	LineWidth float64 `json:"line_width,omitempty"`
	FontSize  float64 `json:"font_size,omitempty"`
}

// DisplayList records drawing operations instead of rasterising them.
// It serves as the renderable representation handed to other programs and
// as a test double for the renderer.
type DisplayList struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Ops    []Op    `json:"ops"`
}

// NewDisplayList creates an empty list for a width x height surface.
func NewDisplayList(width, height float64) *DisplayList {
	return &DisplayList{Width: width, Height: height, Ops: []Op{}}
}

func points(vs ...r2.Vec) []Point {
	out := make([]Point, len(vs))
	for i, v := range vs {
		out[i] = Point{X: v.X, Y: v.Y}
	}
	return out
}

// Size returns the surface size.
func (d *DisplayList) Size() (float64, float64) {
	return d.Width, d.Height
}

// StrokeCircle records a circle.
func (d *DisplayList) StrokeCircle(c r2.Vec, radius float64, s Style) {
	d.Ops = append(d.Ops, Op{
		Kind:      OpCircle,
		Points:    points(c),
		Radius:    radius,
		Color:     cssColor(s.Color),
		LineWidth: s.LineWidth,
	})
}

// StrokeLine records a line.
func (d *DisplayList) StrokeLine(from, to r2.Vec, s Style) {
	d.Ops = append(d.Ops, Op{
		Kind:      OpLine,
		Points:    points(from, to),
		Color:     cssColor(s.Color),
		LineWidth: s.LineWidth,
	})
}

// FillPolygon records a filled polygon.
func (d *DisplayList) FillPolygon(pts []r2.Vec, s Style) {
	d.Ops = append(d.Ops, Op{
		Kind:   OpPolygon,
		Points: points(pts...),
		Color:  cssColor(s.Color),
	})
}

// Text records a label.
func (d *DisplayList) Text(at r2.Vec, text string, s Style) {
	d.Ops = append(d.Ops, Op{
		Kind:     OpText,
		Points:   points(at),
		Text:     text,
		Color:    cssColor(s.Color),
		FontSize: s.FontSize,
	})
}

// Count returns how many operations of the given kind were recorded.
func (d *DisplayList) Count(kind string) int {
	n := 0
	for _, op := range d.Ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// Replay draws the recorded operations onto another surface.
func (d *DisplayList) Replay(s Surface) {
	for _, op := range d.Ops {
		style := Style{Color: parseCSSColor(op.Color), LineWidth: op.LineWidth, FontSize: op.FontSize}
		vs := make([]r2.Vec, len(op.Points))
		for i, p := range op.Points {
			vs[i] = r2.Vec{X: p.X, Y: p.Y}
		}
		if len(vs) == 0 {
			continue
		}
		switch op.Kind {
		case OpCircle:
			s.StrokeCircle(vs[0], op.Radius, style)
		case OpLine:
			if len(vs) > 1 {
				s.StrokeLine(vs[0], vs[1], style)
			}
		case OpPolygon:
			s.FillPolygon(vs, style)
		case OpText:
			s.Text(vs[0], op.Text, style)
		}
	}
}

// parseCSSColor reads the #rrggbb form written by cssColor. Anything else is black.
func parseCSSColor(s string) color.Color {
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return color.RGBA{0, 0, 0, 255}
	}
	return color.RGBA{r, g, b, 255}
}

// WriteJSON writes the list as indented JSON.
func (d *DisplayList) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}
