// Vector output built on svgo.

package render

import (
	"fmt"
	"image/color"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"
	"gonum.org/v1/gonum/spatial/r2"
)

// SVGSurface streams drawing operations as SVG elements. Coordinates are
// rounded to whole pixels.
type SVGSurface struct {
	canvas *svg.SVG
	width  int
	height int
	closed bool
}

// NewSVGSurface writes the SVG header and a white background to w.
// Close must be called to finish the document.
func NewSVGSurface(w io.Writer, width, height int) *SVGSurface {
	canvas := svg.New(w)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, "fill:"+cssColor(colorWhite))
	return &SVGSurface{canvas: canvas, width: width, height: height}
}

// Size returns the document size in pixels.
func (s *SVGSurface) Size() (float64, float64) {
	return float64(s.width), float64(s.height)
}

// StrokeCircle emits an unfilled circle.
func (s *SVGSurface) StrokeCircle(c r2.Vec, radius float64, st Style) {
	s.canvas.Circle(px(c.X), px(c.Y), px(radius),
		fmt.Sprintf("fill:none;stroke:%s;stroke-width:%s", cssColor(st.Color), strokeWidth(st)))
}

// StrokeLine emits a line.
func (s *SVGSurface) StrokeLine(from, to r2.Vec, st Style) {
	s.canvas.Line(px(from.X), px(from.Y), px(to.X), px(to.Y),
		fmt.Sprintf("stroke:%s;stroke-width:%s", cssColor(st.Color), strokeWidth(st)))
}

// FillPolygon emits a filled polygon.
func (s *SVGSurface) FillPolygon(points []r2.Vec, st Style) {
	if len(points) < 3 {
		return
	}
	xs := make([]int, len(points))
	ys := make([]int, len(points))
	for i, p := range points {
		xs[i], ys[i] = px(p.X), px(p.Y)
	}
	s.canvas.Polygon(xs, ys, "fill:"+cssColor(st.Color))
}

// Text emits a centred text element.
func (s *SVGSurface) Text(at r2.Vec, text string, st Style) {
	if text == "" {
		return
	}
	size := st.FontSize
	if size <= 0 {
		size = 12
	}
	s.canvas.Text(px(at.X), px(at.Y), text,
		fmt.Sprintf("fill:%s;font-size:%gpx;font-family:sans-serif;text-anchor:middle;dominant-baseline:middle",
			cssColor(st.Color), size))
}

// Close ends the document. Further calls are no-ops.
func (s *SVGSurface) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.canvas.End()
	return nil
}

func px(v float64) int {
	return int(math.Round(v))
}

func strokeWidth(st Style) string {
	if st.LineWidth <= 0 {
		return "1"
	}
	return fmt.Sprintf("%g", st.LineWidth)
}

func cssColor(c color.Color) string {
	if c == nil {
		return "#000000"
	}
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
}
