package frag3d

import "slices"

// PolyLine is a connected sequence of line segments through its points. A non-finite point breaks the
// line into separate runs.
type PolyLine struct {
	Points []Vec3
	Line   *LineProp
}

// NewPolyLine creates an empty PolyLine drawn with line.
func NewPolyLine(line *LineProp) *PolyLine {
	return &PolyLine{Line: line}
}

// AddPoints appends points built from the coordinate slices, truncated to the shortest slice.
func (pl *PolyLine) AddPoints(x, y, z []float64) {
	size := min(len(x), len(y), len(z))
	pl.Points = slices.Grow(pl.Points, size)
	for i := 0; i < size; i++ {
		pl.Points = append(pl.Points, Vec3{x[i], y[i], z[i]})
	}
}

func (pl *PolyLine) Type() ObjectType { return ObjectTypePolyLine }

func (pl *PolyLine) isObject() {}

// AppendFragments emits one segment for each consecutive pair of finite points.
func (pl *PolyLine) AppendFragments(outerM Mat4, cam *Camera, out *FragmentList) {

	f := Fragment{
		Type:   FragmentLineSeg,
		Object: pl,
		Line:   pl.Line,
	}

	for i, p := range pl.Points {

		// shuffle the previous point along and calculate the new one
		f.Points[1] = f.Points[0]
		f.Proj[1] = f.Proj[0]
		f.Points[0], f.Proj[0] = transformPoint(outerM, cam, Vec3To4(p))

		if i > 0 && segmentFinite(&f) {
			out.Append(f)
		}

	}

}

// LineSegments is a set of independent line segments.
type LineSegments struct {
	// Points holds the segments' endpoints in pairs: Points[2i] to Points[2i+1].
	Points []Vec3
	Line   *LineProp
}

// NewLineSegments creates segments from (x1, y1, z1) to (x2, y2, z2), truncated to the shortest slice.
func NewLineSegments(x1, y1, z1, x2, y2, z2 []float64, line *LineProp) *LineSegments {
	size := min(len(x1), len(y1), len(z1), len(x2), len(y2), len(z2))
	ls := &LineSegments{
		Points: make([]Vec3, 0, size*2),
		Line:   line,
	}
	for i := 0; i < size; i++ {
		ls.Points = append(ls.Points, Vec3{x1[i], y1[i], z1[i]}, Vec3{x2[i], y2[i], z2[i]})
	}
	return ls
}

// NewLineSegmentsFromPoints creates segments from two flat lists of x, y, z triples, starts and ends.
// Incomplete triples and unmatched entries are dropped.
func NewLineSegmentsFromPoints(starts, ends []float64, line *LineProp) *LineSegments {
	size := min(len(starts), len(ends)) / 3
	ls := &LineSegments{
		Points: make([]Vec3, 0, size*2),
		Line:   line,
	}
	for i := 0; i < size; i++ {
		ls.Points = append(ls.Points,
			Vec3{starts[i*3], starts[i*3+1], starts[i*3+2]},
			Vec3{ends[i*3], ends[i*3+1], ends[i*3+2]},
		)
	}
	return ls
}

func (ls *LineSegments) Type() ObjectType { return ObjectTypeLineSegments }

func (ls *LineSegments) isObject() {}

// AppendFragments emits one fragment per segment with two finite endpoints.
func (ls *LineSegments) AppendFragments(outerM Mat4, cam *Camera, out *FragmentList) {

	f := Fragment{
		Type:   FragmentLineSeg,
		Object: ls,
		Line:   ls.Line,
	}

	for i := 0; i+1 < len(ls.Points); i += 2 {
		f.Points[0], f.Proj[0] = transformPoint(outerM, cam, Vec3To4(ls.Points[i]))
		f.Points[1], f.Proj[1] = transformPoint(outerM, cam, Vec3To4(ls.Points[i+1]))
		if segmentFinite(&f) {
			out.Append(f)
		}
	}

}

// segmentFinite checks both the 3D and projected endpoints of a segment fragment.
func segmentFinite(f *Fragment) bool {
	return f.Points[0].Add(f.Points[1]).IsFinite() && f.Proj[0].Add(f.Proj[1]).IsFinite()
}
