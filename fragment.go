package frag3d

import (
	"math"
	"sync/atomic"
)

// LineDeltaDepth is subtracted from the depth of line segments (and twice over from paths), so that lines
// outlining a surface are drawn just in front of it, and markers in front of both.
const LineDeltaDepth = 1e-3

// FragmentType tags what kind of primitive a Fragment is.
type FragmentType int

const (
	FragmentNone     FragmentType = iota // An empty fragment, skipped when painting
	FragmentTriangle                     // A filled triangle
	FragmentLineSeg                      // A stroked line segment
	FragmentPath                         // A marker or label anchored at a point
)

func (t FragmentType) String() string {
	switch t {
	case FragmentTriangle:
		return "triangle"
	case FragmentLineSeg:
		return "lineseg"
	case FragmentPath:
		return "path"
	default:
		return "none"
	}
}

// PathParams is shared by every path fragment an object emits and tells the painter what to draw at the point.
type PathParams struct {
	Marker     MarkerPath  // Outline drawn around the point for markers, in units of the fragment's PathSize.
	ScaleEdges bool        // If the marker's outline width should scale with PathSize.
	Label      LabelDrawer // Set for text labels; the painter hands the two anchors over to it.
}

// Fragment is a single renderable piece of geometry in camera space, created by an Object's emission.
type Fragment struct {
	Type FragmentType

	// Object is the Object that emitted the fragment. It is only compared for identity,
	// so that pieces of the same object are never tested against each other.
	Object Object
	// Params is optional extra data for path fragments.
	Params *PathParams

	// Drawing style; either may be nil.
	Surface *SurfaceProp
	Line    *LineProp

	// Points holds the 3D points (after transformation); only NPoints() of them are meaningful.
	Points [3]Vec3
	// Proj holds the projected points that go with Points.
	Proj [3]Vec3

	PathSize  float64 // Size of a path fragment's marker
	PathIndex int     // Index of the point or label a path fragment was made from

	SplitCount int    // Number of times this fragment has been split from an original
	Index      uint64 // Creation index, increasing within a render pass
}

// NPoints returns the number of points used by the fragment's type.
func (f *Fragment) NPoints() int {
	switch f.Type {
	case FragmentTriangle:
		return 3
	case FragmentLineSeg:
		return 2
	case FragmentPath:
		return 1
	default:
		return 0
	}
}

// projPoints is the number of points to reproject; labels carry a second anchor alongside their single point.
func (f *Fragment) projPoints() int {
	if f.Type == FragmentPath && f.Params != nil && f.Params.Label != nil {
		return 2
	}
	return f.NPoints()
}

// MinDepth returns the smallest depth of the fragment's projected points.
func (f *Fragment) MinDepth() float64 {
	switch f.Type {
	case FragmentTriangle:
		return math.Min(f.Proj[0].Z, math.Min(f.Proj[1].Z, f.Proj[2].Z))
	case FragmentLineSeg:
		return math.Min(f.Proj[0].Z, f.Proj[1].Z) - LineDeltaDepth
	case FragmentPath:
		return f.Proj[0].Z - 2*LineDeltaDepth
	default:
		return math.Inf(1)
	}
}

// MaxDepth returns the largest depth of the fragment's projected points.
func (f *Fragment) MaxDepth() float64 {
	switch f.Type {
	case FragmentTriangle:
		return math.Max(f.Proj[0].Z, math.Max(f.Proj[1].Z, f.Proj[2].Z))
	case FragmentLineSeg:
		return math.Max(f.Proj[0].Z, f.Proj[1].Z) - LineDeltaDepth
	case FragmentPath:
		return f.Proj[0].Z - 2*LineDeltaDepth
	default:
		return math.Inf(1)
	}
}

// MeanDepth returns the average depth of the fragment's projected points.
func (f *Fragment) MeanDepth() float64 {
	switch f.Type {
	case FragmentTriangle:
		return (f.Proj[0].Z + f.Proj[1].Z + f.Proj[2].Z) / 3
	case FragmentLineSeg:
		return (f.Proj[0].Z+f.Proj[1].Z)*0.5 - LineDeltaDepth
	case FragmentPath:
		return f.Proj[0].Z - 2*LineDeltaDepth
	default:
		return math.Inf(1)
	}
}

// UpdateProjCoords recalculates the projected coordinates from the fragment's 3D points, for
// re-rendering a fragment set under a changed projection.
//
// The 3D points of split pieces are interpolated in projected space, so they are exact only where the
// projection that produced the pieces is affine (orthographic, or none at all). Pieces split under a
// perspective projection can shift slightly when reprojected; re-render from the scene instead.
func (f *Fragment) UpdateProjCoords(projM Mat4) {
	n := f.projPoints()
	for i := 0; i < n; i++ {
		f.Proj[i] = CalcProjVec(projM, Vec3To4(f.Points[i]))
	}
}

// IndexCounter hands out fragment creation indices for a render pass. It is safe for concurrent use;
// indices are unique and increasing in the order they are requested.
type IndexCounter struct {
	next atomic.Uint64
}

// Next returns the next unused index.
func (c *IndexCounter) Next() uint64 {
	return c.next.Add(1) - 1
}

// FragmentList collects the fragments emitted by Objects, numbering them with its IndexCounter.
type FragmentList struct {
	Fragments []Fragment
	counter   *IndexCounter
}

// NewFragmentList returns an empty FragmentList numbering fragments with counter.
// Passing nil creates a fresh counter starting at zero.
func NewFragmentList(counter *IndexCounter) *FragmentList {
	if counter == nil {
		counter = &IndexCounter{}
	}
	return &FragmentList{counter: counter}
}

// Append adds f to the list, giving it a fresh creation index.
func (l *FragmentList) Append(f Fragment) {
	f.Index = l.counter.Next()
	l.Fragments = append(l.Fragments, f)
}

// Len returns the number of fragments in the list.
func (l *FragmentList) Len() int {
	return len(l.Fragments)
}

// Counter returns the IndexCounter the list numbers its fragments with.
func (l *FragmentList) Counter() *IndexCounter {
	return l.counter
}

// spawn creates an empty list sharing this list's counter.
func (l *FragmentList) spawn() *FragmentList {
	return &FragmentList{counter: l.counter}
}
