package frag3d

// SurfaceProp describes how the filled area of a triangle or marker is painted.
// Fragments only hold a pointer to a SurfaceProp; a nil pointer means the surface is not drawn.
// The same SurfaceProp is shared between every fragment an object emits.
type SurfaceProp struct {
	Color Color
	// Hide keeps the surface from being painted while the object still emits its fragments
	// (so it still takes part in depth ordering).
	Hide bool
}

// NewSurfaceProp returns a SurfaceProp filled with the Color provided.
func NewSurfaceProp(c Color) *SurfaceProp {
	return &SurfaceProp{Color: c}
}

// LineProp describes how segments and outlines are stroked. A nil *LineProp means no line is drawn.
type LineProp struct {
	Color Color
	Width float64 // Width of the line in pixels, before any scaling
	Hide  bool
}

// NewLineProp returns a LineProp stroking with the color and width provided.
func NewLineProp(c Color, width float64) *LineProp {
	return &LineProp{Color: c, Width: width}
}

func (s *SurfaceProp) visible() bool { return s != nil && !s.Hide }

func (l *LineProp) visible() bool { return l != nil && !l.Hide }
