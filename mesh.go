package frag3d

import (
	"errors"
	"fmt"
)

// Direction names a principal axis.
type Direction int

const (
	DirectionX Direction = iota
	DirectionY
	DirectionZ
)

// ErrMeshSize is reported when a Mesh's heights don't cover its grid.
var ErrMeshSize = errors.New("mesh heights do not match grid size")

// Mesh is a height surface over a rectilinear grid. Heights run along the Dirn axis, and the grid
// coordinates Pos1 and Pos2 along the other two axes (in cyclic order: for DirectionZ, Pos1 is X and Pos2 is Y).
type Mesh struct {
	Pos1, Pos2 []float64
	// Heights holds one value per grid point, Heights[i1*len(Pos2)+i2].
	Heights []float64
	Dirn    Direction

	Line    *LineProp    // Grid lines; nil to leave them out
	Surface *SurfaceProp // Surface triangles; nil to leave them out

	HideLines1 bool // Don't draw the grid lines running along Pos1
	HideLines2 bool // Don't draw the grid lines running along Pos2
}

// NewMesh creates a Mesh with heights along dirn over the grid pos1 x pos2.
func NewMesh(dirn Direction, pos1, pos2, heights []float64, line *LineProp, surface *SurfaceProp) *Mesh {
	return &Mesh{
		Pos1:    pos1,
		Pos2:    pos2,
		Heights: heights,
		Dirn:    dirn,
		Line:    line,
		Surface: surface,
	}
}

func (mesh *Mesh) Type() ObjectType { return ObjectTypeMesh }

func (mesh *Mesh) isObject() {}

// vecIdxs returns the vector component indices for the height, pos1 and pos2 directions.
func (mesh *Mesh) vecIdxs() (h, i1, i2 int) {
	switch mesh.Dirn {
	case DirectionY:
		return 1, 2, 0
	case DirectionZ:
		return 2, 0, 1
	default:
		return 0, 1, 2
	}
}

func (mesh *Mesh) validate() error {
	if need := len(mesh.Pos1) * len(mesh.Pos2); len(mesh.Heights) < need {
		return fmt.Errorf("%w: %d heights for %dx%d grid", ErrMeshSize, len(mesh.Heights), len(mesh.Pos1), len(mesh.Pos2))
	}
	return nil
}

// AppendFragments emits the grid lines, then the surface triangles.
func (mesh *Mesh) AppendFragments(outerM Mat4, cam *Camera, out *FragmentList) {
	if err := mesh.validate(); err != nil {
		Logger().Warn("skipping mesh", "error", err)
		return
	}
	mesh.appendLineFragments(outerM, cam, out)
	mesh.appendSurfaceFragments(outerM, cam, out)
}

func (mesh *Mesh) appendLineFragments(outerM Mat4, cam *Camera, out *FragmentList) {

	if mesh.Line == nil {
		return
	}

	vidxH, vidx1, vidx2 := mesh.vecIdxs()

	f := Fragment{
		Type:   FragmentLineSeg,
		Object: mesh,
		Line:   mesh.Line,
	}

	n2 := len(mesh.Pos2)
	pt := Vec4{W: 1}

	for stepIndex := 0; stepIndex <= 1; stepIndex++ {

		if (stepIndex == 0 && mesh.HideLines1) || (stepIndex == 1 && mesh.HideLines2) {
			continue
		}

		vecStep, vecConst := mesh.Pos1, mesh.Pos2
		vidxStep, vidxConst := vidx1, vidx2
		if stepIndex == 1 {
			vecStep, vecConst = mesh.Pos2, mesh.Pos1
			vidxStep, vidxConst = vidx2, vidx1
		}

		for constI, constVal := range vecConst {

			pt = pt.Set(vidxConst, constVal)

			for stepI, stepVal := range vecStep {

				hIdx := stepI*n2 + constI
				if stepIndex == 1 {
					hIdx = constI*n2 + stepI
				}

				pt = pt.Set(vidxStep, stepVal)
				pt = pt.Set(vidxH, mesh.Heights[hIdx])

				// shuffle new to old positions and calculate the new one
				f.Points[1] = f.Points[0]
				f.Proj[1] = f.Proj[0]
				f.Points[0], f.Proj[0] = transformPoint(outerM, cam, pt)

				if stepI > 0 && segmentFinite(&f) {
					out.Append(f)
				}

			}

		}

	}

}

func (mesh *Mesh) appendSurfaceFragments(outerM Mat4, cam *Camera, out *FragmentList) {

	if mesh.Surface == nil {
		return
	}

	vidxH, vidx1, vidx2 := mesh.vecIdxs()

	f := Fragment{
		Type:    FragmentTriangle,
		Object:  mesh,
		Surface: mesh.Surface,
	}

	n1 := len(mesh.Pos1)
	n2 := len(mesh.Pos2)

	corner := func(i1, i2 int) Vec4 {
		pt := Vec4{W: 1}
		pt = pt.Set(vidxH, mesh.Heights[i1*n2+i2])
		pt = pt.Set(vidx1, mesh.Pos1[i1])
		pt = pt.Set(vidx2, mesh.Pos2[i2])
		return pt
	}

	var pts [4]Vec3
	var proj [4]Vec3

	for i1 := 0; i1+1 < n1; i1++ {
		for i2 := 0; i2+1 < n2; i2++ {

			// p0 and p3 are opposite corners; both triangles share the p1-p2 diagonal
			pts[0], proj[0] = transformPoint(outerM, cam, corner(i1, i2))
			pts[1], proj[1] = transformPoint(outerM, cam, corner(i1+1, i2))
			pts[2], proj[2] = transformPoint(outerM, cam, corner(i1, i2+1))
			pts[3], proj[3] = transformPoint(outerM, cam, corner(i1+1, i2+1))

			f.Points[1], f.Points[2] = pts[1], pts[2]
			f.Proj[1], f.Proj[2] = proj[1], proj[2]

			for _, c := range [2]int{0, 3} {
				f.Points[0], f.Proj[0] = pts[c], proj[c]
				if triangleFinite(&f) {
					out.Append(f)
				}
			}

		}
	}

}

// triangleFinite checks the 3D and projected corners of a triangle fragment.
func triangleFinite(f *Fragment) bool {
	return f.Points[0].Add(f.Points[1]).Add(f.Points[2]).IsFinite() &&
		f.Proj[0].Add(f.Proj[1]).Add(f.Proj[2]).IsFinite()
}
