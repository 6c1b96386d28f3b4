// Package ggpaint paints frag3d scenes onto a gg.Context.
package ggpaint

import (
	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"github.com/solarlune/frag3d"
	"golang.org/x/image/font/gofont/goregular"
)

// Painter is a frag3d.Painter drawing with a gg.Context.
type Painter struct {
	dc     *gg.Context
	source *text.FontSource
	faces  map[float64]text.Face
}

// New creates a Painter drawing onto dc. Labels are written in Go Regular.
func New(dc *gg.Context) *Painter {

	p := &Painter{dc: dc, faces: map[float64]text.Face{}}

	source, err := text.NewFontSource(goregular.TTF)
	if err != nil {
		frag3d.Logger().Warn("ggpaint: no label font, labels will not be drawn", "error", err)
	} else {
		p.source = source
	}

	dc.SetLineJoin(gg.LineJoinRound)
	dc.SetLineCap(gg.LineCapRound)

	return p

}

// NewContext creates a width x height gg.Context cleared to background, and a Painter for it.
func NewContext(width, height int, background frag3d.Color) (*gg.Context, *Painter) {
	dc := gg.NewContext(width, height)
	r, g, b, a := background.RGBA64()
	dc.ClearWithColor(gg.RGBA2(r, g, b, a))
	return dc, New(dc)
}

// Context returns the gg.Context being painted on.
func (p *Painter) Context() *gg.Context {
	return p.dc
}

func (p *Painter) path(pts []frag3d.Vec2, closed bool) {
	p.dc.ClearPath()
	p.dc.MoveTo(pts[0].X, pts[0].Y)
	for _, pt := range pts[1:] {
		p.dc.LineTo(pt.X, pt.Y)
	}
	if closed {
		p.dc.ClosePath()
	}
}

// FillPolygon fills the polygon with the surface color.
func (p *Painter) FillPolygon(pts []frag3d.Vec2, s *frag3d.SurfaceProp) {
	if s == nil || len(pts) < 3 {
		return
	}
	p.path(pts, true)
	p.dc.SetRGBA(s.Color.RGBA64())
	if err := p.dc.Fill(); err != nil {
		frag3d.Logger().Debug("ggpaint: fill failed", "error", err)
	}
}

// StrokePolyline strokes the line, scaling its width by scale.
func (p *Painter) StrokePolyline(pts []frag3d.Vec2, closed bool, l *frag3d.LineProp, scale float64) {
	if l == nil || len(pts) < 2 {
		return
	}
	p.path(pts, closed)
	p.dc.SetRGBA(l.Color.RGBA64())
	p.dc.SetLineWidth(l.Width * scale)
	if err := p.dc.Stroke(); err != nil {
		frag3d.Logger().Debug("ggpaint: stroke failed", "error", err)
	}
}

// DrawString writes s with its baseline starting at pos.
func (p *Painter) DrawString(pos frag3d.Vec2, s string, c frag3d.Color, size float64) {

	if p.source == nil || size <= 0 {
		return
	}

	face, exists := p.faces[size]
	if !exists {
		face = p.source.Face(size)
		p.faces[size] = face
	}

	p.dc.SetFont(face)
	p.dc.SetRGBA(c.RGBA64())
	p.dc.DrawString(s, pos.X, pos.Y)

}
