// Package ebitenpaint paints frag3d scenes onto an *ebiten.Image.
package ebitenpaint

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/solarlune/frag3d"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// Painter is a frag3d.Painter drawing onto an ebiten image. Polygons are filled as triangles, lines
// are stroked with ebiten's vector package and labels are written with a bitmap font.
type Painter struct {
	Target    *ebiten.Image
	Face      font.Face // Label font; defaults to basicfont.Face7x13
	AntiAlias bool

	white    *ebiten.Image
	vertices []ebiten.Vertex
	indices  []uint16
}

// New creates a Painter drawing onto target.
func New(target *ebiten.Image) *Painter {

	whiteImage := ebiten.NewImage(3, 3)
	whiteImage.Fill(color.White)

	return &Painter{
		Target:    target,
		Face:      basicfont.Face7x13,
		AntiAlias: true,
		// Sampling from the middle pixel only avoids bleeding in from the edges
		white: whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image),
	}

}

func (p *Painter) colorVertices(c frag3d.Color) {
	for i := range p.vertices {
		p.vertices[i].SrcX = 1
		p.vertices[i].SrcY = 1
		p.vertices[i].ColorR = c.R
		p.vertices[i].ColorG = c.G
		p.vertices[i].ColorB = c.B
		p.vertices[i].ColorA = c.A
	}
}

// FillPolygon fills the polygon with the surface color.
func (p *Painter) FillPolygon(pts []frag3d.Vec2, s *frag3d.SurfaceProp) {

	if s == nil || len(pts) < 3 {
		return
	}

	var path vector.Path
	path.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, pt := range pts[1:] {
		path.LineTo(float32(pt.X), float32(pt.Y))
	}
	path.Close()

	p.vertices, p.indices = path.AppendVerticesAndIndicesForFilling(p.vertices[:0], p.indices[:0])
	p.colorVertices(s.Color)

	p.Target.DrawTriangles(p.vertices, p.indices, p.white, &ebiten.DrawTrianglesOptions{
		AntiAlias: p.AntiAlias,
	})

}

// StrokePolyline strokes each segment of the line.
func (p *Painter) StrokePolyline(pts []frag3d.Vec2, closed bool, l *frag3d.LineProp, scale float64) {

	if l == nil || len(pts) < 2 {
		return
	}

	clr := l.Color.ToNRGBA64()
	width := float32(l.Width * scale)

	segments := len(pts) - 1
	if closed {
		segments++
	}

	for i := 0; i < segments; i++ {
		a, b := pts[i], pts[(i+1)%len(pts)]
		vector.StrokeLine(p.Target, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), width, clr, p.AntiAlias)
	}

}

// DrawString writes s with its baseline starting at pos. The bitmap face has a fixed size.
func (p *Painter) DrawString(pos frag3d.Vec2, s string, c frag3d.Color, size float64) {
	text.Draw(p.Target, s, p.Face, int(pos.X), int(pos.Y), c.ToNRGBA64())
}
