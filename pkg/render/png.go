// Raster output built on gg. Drawing happens at an integer multiple of the
// requested size and is downsampled on export for smoother edges.

package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"sync"

	"github.com/fogleman/gg"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"gonum.org/v1/gonum/spatial/r2"
)

var colorWhite = color.RGBA{255, 255, 255, 255}

var parseGoRegular = sync.OnceValues(func() (*opentype.Font, error) {
	return opentype.Parse(goregular.TTF)
})

// PNGSurface draws into an in-memory RGBA image.
type PNGSurface struct {
	dc     *gg.Context
	width  int
	height int
	scale  float64

	font  *opentype.Font
	faces map[float64]font.Face
}

// NewPNGSurface creates a white width x height canvas. supersample < 1 is
// treated as 1.
func NewPNGSurface(width, height, supersample int) (*PNGSurface, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid image size %dx%d", width, height)
	}
	if supersample < 1 {
		supersample = 1
	}

	fnt, err := parseGoRegular()
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}

	dc := gg.NewContext(width*supersample, height*supersample)
	dc.SetColor(colorWhite)
	dc.Clear()

	return &PNGSurface{
		dc:     dc,
		width:  width,
		height: height,
		scale:  float64(supersample),
		font:   fnt,
		faces:  make(map[float64]font.Face),
	}, nil
}

// Size returns the output size in pixels.
func (p *PNGSurface) Size() (float64, float64) {
	return float64(p.width), float64(p.height)
}

func (p *PNGSurface) stroke(s Style) {
	w := s.LineWidth
	if w <= 0 {
		w = 1
	}
	p.dc.SetColor(colorOr(s.Color))
	p.dc.SetLineWidth(w * p.scale)
	p.dc.Stroke()
}

// StrokeCircle outlines a circle.
func (p *PNGSurface) StrokeCircle(c r2.Vec, radius float64, s Style) {
	p.dc.DrawCircle(c.X*p.scale, c.Y*p.scale, radius*p.scale)
	p.stroke(s)
}

// StrokeLine draws a straight segment.
func (p *PNGSurface) StrokeLine(from, to r2.Vec, s Style) {
	p.dc.DrawLine(from.X*p.scale, from.Y*p.scale, to.X*p.scale, to.Y*p.scale)
	p.stroke(s)
}

// FillPolygon fills a closed polygon.
func (p *PNGSurface) FillPolygon(points []r2.Vec, s Style) {
	if len(points) < 3 {
		return
	}
	p.dc.MoveTo(points[0].X*p.scale, points[0].Y*p.scale)
	for _, pt := range points[1:] {
		p.dc.LineTo(pt.X*p.scale, pt.Y*p.scale)
	}
	p.dc.ClosePath()
	p.dc.SetColor(colorOr(s.Color))
	p.dc.Fill()
}

// Text draws text centred on at. Faces that fail to load are skipped.
func (p *PNGSurface) Text(at r2.Vec, text string, s Style) {
	face := p.face(s.FontSize * p.scale)
	if face == nil || text == "" {
		return
	}
	p.dc.SetFontFace(face)
	p.dc.SetColor(colorOr(s.Color))
	p.dc.DrawStringAnchored(text, at.X*p.scale, at.Y*p.scale, 0.5, 0.35)
}

func (p *PNGSurface) face(size float64) font.Face {
	if size <= 0 {
		size = 12 * p.scale
	}
	if f, ok := p.faces[size]; ok {
		return f
	}
	f, err := opentype.NewFace(p.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		f = nil
	}
	p.faces[size] = f
	return f
}

// Image returns the rendered picture at output size.
func (p *PNGSurface) Image() image.Image {
	src := p.dc.Image()
	if p.scale == 1 {
		return src
	}
	dst := image.NewRGBA(image.Rect(0, 0, p.width, p.height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// EncodePNG writes the image as PNG.
func (p *PNGSurface) EncodePNG(w io.Writer) error {
	return png.Encode(w, p.Image())
}

// Close releases the cached font faces.
func (p *PNGSurface) Close() error {
	for size, f := range p.faces {
		if f != nil {
			f.Close()
		}
		delete(p.faces, size)
	}
	return nil
}

// colorOr returns c, or black when no colour was set.
func colorOr(c color.Color) color.Color {
	if c == nil {
		return color.Black
	}
	return c
}
