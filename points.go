package frag3d

import "math"

// MarkerPath is a closed marker outline around the origin, in units of the marker's size.
type MarkerPath []Vec2

// NewMarkerCircle returns a circle of diameter 1 approximated with the given number of segments.
func NewMarkerCircle(segments int) MarkerPath {
	if segments < 3 {
		segments = 3
	}
	path := make(MarkerPath, segments)
	for i := range path {
		angle := 2 * math.Pi * float64(i) / float64(segments)
		path[i] = Vec2{0.5 * math.Cos(angle), 0.5 * math.Sin(angle)}
	}
	return path
}

// NewMarkerSquare returns a unit square centered on the origin.
func NewMarkerSquare() MarkerPath {
	return MarkerPath{{-0.5, -0.5}, {0.5, -0.5}, {0.5, 0.5}, {-0.5, 0.5}}
}

// NewMarkerDiamond returns a unit square rotated by 45 degrees.
func NewMarkerDiamond() MarkerPath {
	return MarkerPath{{0, -0.5}, {0.5, 0}, {0, 0.5}, {-0.5, 0}}
}

// Scaled returns the path scaled by size and moved to center.
func (path MarkerPath) Scaled(center Vec2, size float64) []Vec2 {
	out := make([]Vec2, len(path))
	for i, p := range path {
		out[i] = center.Add(p.Scale(size))
	}
	return out
}

// Points is a cloud of markers, one path fragment for each finite point.
type Points struct {
	X, Y, Z []float64
	// Sizes optionally holds a marker size per point; without it every marker has size 1.
	Sizes []float64

	Surface *SurfaceProp // Marker fill
	Line    *LineProp    // Marker outline

	params PathParams
}

// NewPoints creates a Points object drawing marker at each (x, y, z).
func NewPoints(x, y, z, sizes []float64, marker MarkerPath, surface *SurfaceProp, line *LineProp) *Points {
	return &Points{
		X:       x,
		Y:       y,
		Z:       z,
		Sizes:   sizes,
		Surface: surface,
		Line:    line,
		params:  PathParams{Marker: marker},
	}
}

// SetScaleEdges sets if the marker outlines should be scaled with the marker size.
func (pts *Points) SetScaleEdges(scale bool) {
	pts.params.ScaleEdges = scale
}

// Marker returns the marker outline drawn at each point.
func (pts *Points) Marker() MarkerPath {
	return pts.params.Marker
}

func (pts *Points) Type() ObjectType { return ObjectTypePoints }

func (pts *Points) isObject() {}

// AppendFragments emits a path fragment for each point, truncating the coordinates (and sizes, if
// given) to the shortest slice.
func (pts *Points) AppendFragments(outerM Mat4, cam *Camera, out *FragmentList) {

	f := Fragment{
		Type:     FragmentPath,
		Object:   pts,
		Params:   &pts.params,
		Surface:  pts.Surface,
		Line:     pts.Line,
		PathSize: 1,
	}

	size := min(len(pts.X), len(pts.Y), len(pts.Z))
	hasSizes := len(pts.Sizes) > 0
	if hasSizes {
		size = min(size, len(pts.Sizes))
	}

	for i := 0; i < size; i++ {

		f.Points[0], f.Proj[0] = transformPoint(outerM, cam, Vec4{pts.X[i], pts.Y[i], pts.Z[i], 1})
		f.PathIndex = i
		if hasSizes {
			f.PathSize = pts.Sizes[i]
		}

		if f.Points[0].IsFinite() && f.Proj[0].IsFinite() {
			out.Append(f)
		}

	}

}
