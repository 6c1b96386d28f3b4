package frag3d

// Painter is a 2D drawing backend fragments are painted onto, in pixel coordinates with y pointing down.
// Scene.Render calls it back to front; a Painter never needs to handle depth.
type Painter interface {
	// FillPolygon fills the closed polygon through pts with the surface's color.
	FillPolygon(pts []Vec2, s *SurfaceProp)
	// StrokePolyline strokes the line through pts, closing it back to the start if closed is set.
	// The line's width is to be multiplied by scale.
	StrokePolyline(pts []Vec2, closed bool, l *LineProp, scale float64)
	// DrawString writes text with its baseline starting at pos, at the given font size in pixels.
	DrawString(pos Vec2, s string, c Color, size float64)
}

// Viewport maps projected coordinates (x and y from -1 to 1, y pointing up) to pixels.
type Viewport struct {
	Width, Height float64
}

// ToPixels maps a projected point to pixel coordinates.
func (vp Viewport) ToPixels(proj Vec3) Vec2 {
	return Vec2{
		X: (proj.X + 1) * 0.5 * vp.Width,
		Y: (1 - proj.Y) * 0.5 * vp.Height,
	}
}

// PaintFragment draws a single fragment with p. Style aspects that are nil or hidden are skipped.
func PaintFragment(p Painter, vp Viewport, f *Fragment, opts *RenderOptions) {

	if opts == nil {
		opts = DefaultRenderOptions()
	}

	switch f.Type {

	case FragmentTriangle:
		pts := []Vec2{vp.ToPixels(f.Proj[0]), vp.ToPixels(f.Proj[1]), vp.ToPixels(f.Proj[2])}
		if f.Surface.visible() {
			p.FillPolygon(pts, f.Surface)
		}
		if f.Line.visible() {
			p.StrokePolyline(pts, true, f.Line, opts.LineScale)
		}

	case FragmentLineSeg:
		if f.Line.visible() {
			p.StrokePolyline([]Vec2{vp.ToPixels(f.Proj[0]), vp.ToPixels(f.Proj[1])}, false, f.Line, opts.LineScale)
		}

	case FragmentPath:
		if f.Params == nil {
			return
		}
		if f.Params.Label != nil {
			f.Params.Label.DrawLabel(p, vp.ToPixels(f.Proj[0]), vp.ToPixels(f.Proj[1]), f.PathIndex, opts.Scale, opts.LineScale)
			return
		}
		if len(f.Params.Marker) == 0 {
			return
		}
		pts := f.Params.Marker.Scaled(vp.ToPixels(f.Proj[0]), f.PathSize*opts.MarkerScale)
		if f.Surface.visible() {
			p.FillPolygon(pts, f.Surface)
		}
		if f.Line.visible() {
			lineScale := opts.LineScale
			if f.Params.ScaleEdges {
				lineScale *= f.PathSize
			}
			p.StrokePolyline(pts, true, f.Line, lineScale)
		}

	}

}
