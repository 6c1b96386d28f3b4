package frag3d

// Triangle is a single filled triangle.
type Triangle struct {
	Points  [3]Vec3
	Surface *SurfaceProp
}

// NewTriangle creates a Triangle from its three corners.
func NewTriangle(a, b, c Vec3, surface *SurfaceProp) *Triangle {
	return &Triangle{Points: [3]Vec3{a, b, c}, Surface: surface}
}

func (tri *Triangle) Type() ObjectType { return ObjectTypeTriangle }

func (tri *Triangle) isObject() {}

// AppendFragments emits one triangle fragment, unless a corner is not finite.
func (tri *Triangle) AppendFragments(outerM Mat4, cam *Camera, out *FragmentList) {
	appendTriangle(tri, tri.Points, tri.Surface, outerM, cam, out)
}

// Normal returns the (unnormalized) face normal, following the right-hand rule over the corners' order.
func (tri *Triangle) Normal() Vec3 {
	return tri.Points[1].Sub(tri.Points[0]).Cross(tri.Points[2].Sub(tri.Points[0]))
}

func appendTriangle(obj Object, points [3]Vec3, surface *SurfaceProp, outerM Mat4, cam *Camera, out *FragmentList) {

	f := Fragment{
		Type:    FragmentTriangle,
		Object:  obj,
		Surface: surface,
	}

	for i, p := range points {
		f.Points[i], f.Proj[i] = transformPoint(outerM, cam, Vec3To4(p))
	}

	if triangleFinite(&f) {
		out.Append(f)
	}

}

// TriangleFacing is a Triangle that is only drawn when its front face (corners counter-clockwise when
// seen from the front) points towards the camera.
type TriangleFacing struct {
	Triangle
}

// NewTriangleFacing creates a back-face culled triangle from its three corners.
func NewTriangleFacing(a, b, c Vec3, surface *SurfaceProp) *TriangleFacing {
	return &TriangleFacing{Triangle: Triangle{Points: [3]Vec3{a, b, c}, Surface: surface}}
}

func (tri *TriangleFacing) Type() ObjectType { return ObjectTypeTriangleFacing }

// AppendFragments emits the triangle only if its transformed normal faces the camera.
func (tri *TriangleFacing) AppendFragments(outerM Mat4, cam *Camera, out *FragmentList) {
	if !facesCamera(outerM, tri.Normal()) {
		return
	}
	appendTriangle(tri, tri.Points, tri.Surface, outerM, cam, out)
}
