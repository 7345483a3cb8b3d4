// Terminal output built on tcell. Pixel coordinates are mapped onto
// character cells, so the picture is coarse but keeps the geometry.

package render

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"
	"gonum.org/v1/gonum/spatial/r2"
)

// Pixel size of one terminal cell.
const (
	CellWidth  = 8
	CellHeight = 16
)

// TermSurface draws onto a tcell screen.
type TermSurface struct {
	screen tcell.Screen

	// ReserveRows keeps the bottom rows free, e.g. for a status line.
	ReserveRows int
}

// NewTermSurface wraps an initialised screen.
func NewTermSurface(screen tcell.Screen) *TermSurface {
	return &TermSurface{screen: screen}
}

func (t *TermSurface) cells() (int, int) {
	w, h := t.screen.Size()
	h -= t.ReserveRows
	if h < 0 {
		h = 0
	}
	return w, h
}

// Size returns the usable area in pixels.
func (t *TermSurface) Size() (float64, float64) {
	w, h := t.cells()
	return float64(w * CellWidth), float64(h * CellHeight)
}

func finiteVec(p r2.Vec) bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

func toCell(p r2.Vec) (int, int) {
	return int(math.Floor(p.X / CellWidth)), int(math.Floor(p.Y / CellHeight))
}

func (t *TermSurface) set(x, y int, r rune, style tcell.Style) {
	w, h := t.cells()
	if x < 0 || y < 0 || x >= w || y >= h {
		return
	}
	t.screen.SetContent(x, y, r, nil, style)
}

// termStyle maps a colour onto a foreground style. Very dark colours use the
// terminal's own foreground so they stay visible on dark backgrounds.
func termStyle(c color.Color) tcell.Style {
	if c == nil {
		return tcell.StyleDefault
	}
	r, g, b, _ := c.RGBA()
	r, g, b = r>>8, g>>8, b>>8
	if r+g+b < 64 {
		return tcell.StyleDefault
	}
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(r), int32(g), int32(b)))
}

// StrokeCircle plots a ring of cells.
func (t *TermSurface) StrokeCircle(c r2.Vec, radius float64, s Style) {
	if !finiteVec(c) || math.IsNaN(radius) || math.IsInf(radius, 0) {
		return
	}
	style := termStyle(s.Color)
	steps := int(2*math.Pi*radius/4) + 8
	for i := 0; i < steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		x, y := toCell(Rotate(c, radius, a))
		t.set(x, y, 'o', style)
	}
}

// StrokeLine plots a line with a rune chosen from its slope. The segment is
// clipped to the screen first.
func (t *TermSurface) StrokeLine(from, to r2.Vec, s Style) {
	style := termStyle(s.Color)
	r := lineRune(to.X-from.X, to.Y-from.Y)

	w, h := t.Size()
	from, to, ok := clipSegment(from, to, w, h)
	if !ok {
		return
	}

	x0, y0 := toCell(from)
	x1, y1 := toCell(to)
	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		t.set(x0, y0, r, style)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// clipSegment cuts a segment to the box [0, w] x [0, h] (Liang-Barsky).
// It reports false when nothing of the segment is inside or it is not finite.
func clipSegment(from, to r2.Vec, w, h float64) (r2.Vec, r2.Vec, bool) {
	if !finiteVec(from) || !finiteVec(to) {
		return from, to, false
	}
	d := r2.Sub(to, from)
	t0, t1 := 0.0, 1.0
	for _, e := range [4][2]float64{
		{-d.X, from.X},
		{d.X, w - from.X},
		{-d.Y, from.Y},
		{d.Y, h - from.Y},
	} {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return from, to, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return from, to, false
			}
			t0 = max(t0, r)
		} else {
			if r < t0 {
				return from, to, false
			}
			t1 = min(t1, r)
		}
	}
	a, b := from, to
	if t0 > 0 {
		a = r2.Add(from, r2.Scale(t0, d))
	}
	if t1 < 1 {
		b = r2.Add(from, r2.Scale(t1, d))
	}
	if !finiteVec(a) || !finiteVec(b) {
		return from, to, false
	}
	return a, b, true
}

func lineRune(dx, dy float64) rune {
	ax, ay := math.Abs(dx), math.Abs(dy)
	switch {
	case ay < 0.4*ax:
		return '─'
	case ay > 2.5*ax:
		return '│'
	case (dx > 0) == (dy > 0):
		return '╲'
	default:
		return '╱'
	}
}

// FillPolygon fills every cell whose centre lies inside the polygon. A
// polygon smaller than one cell marks the cell of its first point.
func (t *TermSurface) FillPolygon(points []r2.Vec, s Style) {
	if len(points) < 3 {
		return
	}
	for _, p := range points {
		if !finiteVec(p) {
			return
		}
	}
	style := termStyle(s.Color)

	// scan only the part of the bounding box that is on screen
	w, h := t.Size()
	lo, hi := points[0], points[0]
	for _, p := range points[1:] {
		lo = r2.Vec{X: min(lo.X, p.X), Y: min(lo.Y, p.Y)}
		hi = r2.Vec{X: max(hi.X, p.X), Y: max(hi.Y, p.Y)}
	}
	minX, minY := toCell(r2.Vec{X: math.Max(lo.X, 0), Y: math.Max(lo.Y, 0)})
	maxX, maxY := toCell(r2.Vec{X: math.Min(hi.X, w), Y: math.Min(hi.Y, h)})

	filled := false
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			centre := r2.Vec{X: (float64(x) + 0.5) * CellWidth, Y: (float64(y) + 0.5) * CellHeight}
			if insidePolygon(centre, points) {
				t.set(x, y, '●', style)
				filled = true
			}
		}
	}
	if !filled && points[0].X >= 0 && points[0].X < w && points[0].Y >= 0 && points[0].Y < h {
		x, y := toCell(points[0])
		t.set(x, y, '●', style)
	}
}

// insidePolygon is the even-odd ray casting test.
func insidePolygon(p r2.Vec, poly []r2.Vec) bool {
	in := false
	j := len(poly) - 1
	for i := range poly {
		a, b := poly[i], poly[j]
		if (a.Y > p.Y) != (b.Y > p.Y) &&
			p.X < (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)+a.X {
			in = !in
		}
		j = i
	}
	return in
}

// Text writes a single line centred on at.
func (t *TermSurface) Text(at r2.Vec, text string, s Style) {
	runes := []rune(text)
	if len(runes) == 0 || !finiteVec(at) {
		return
	}
	style := termStyle(s.Color).Bold(true)
	x, y := toCell(at)
	x -= len(runes) / 2
	for i, r := range runes {
		t.set(x+i, y, r, style)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
