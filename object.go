package frag3d

// ObjectType identifies the concrete kind of an Object.
type ObjectType int

const (
	ObjectTypeTriangle ObjectType = iota
	ObjectTypeTriangleFacing
	ObjectTypePolyLine
	ObjectTypeLineSegments
	ObjectTypeMesh
	ObjectTypeDataMesh
	ObjectTypePoints
	ObjectTypeText
	ObjectTypeContainer
	ObjectTypeFacingContainer
	ObjectTypeClipContainer
)

func (t ObjectType) String() string {
	switch t {
	case ObjectTypeTriangle:
		return "Triangle"
	case ObjectTypeTriangleFacing:
		return "TriangleFacing"
	case ObjectTypePolyLine:
		return "PolyLine"
	case ObjectTypeLineSegments:
		return "LineSegments"
	case ObjectTypeMesh:
		return "Mesh"
	case ObjectTypeDataMesh:
		return "DataMesh"
	case ObjectTypePoints:
		return "Points"
	case ObjectTypeText:
		return "Text"
	case ObjectTypeContainer:
		return "ObjectContainer"
	case ObjectTypeFacingContainer:
		return "FacingContainer"
	case ObjectTypeClipContainer:
		return "ClipContainer"
	}
	return "Unknown"
}

// Object is anything in a scene that can be flattened into fragments. The set of Objects is closed:
// only the types in this package implement it.
type Object interface {
	// Type returns the kind of Object.
	Type() ObjectType
	// AppendFragments emits the Object's fragments into out, with outerM transforming the Object's
	// coordinates into camera space and cam supplying the projection. Previously appended fragments
	// are never touched.
	AppendFragments(outerM Mat4, cam *Camera, out *FragmentList)

	isObject()
}

// transformPoint applies outerM to p, returning both the transformed point and its projection.
func transformPoint(outerM Mat4, cam *Camera, p Vec4) (Vec3, Vec3) {
	tp := outerM.MultVec4(p)
	return Vec4To3(tp), CalcProjVec(cam.PerspM, tp)
}

// facesCamera returns true if the normal, transformed by outerM, points towards +Z relative to the
// transformed origin, that is towards a camera looking down -Z.
func facesCamera(outerM Mat4, normal Vec3) bool {
	torigin := Vec4To3(outerM.MultVec4(Vec4{0, 0, 0, 1}))
	tnorm := Vec4To3(outerM.MultVec4(Vec3To4(normal)))
	return tnorm.Z > torigin.Z
}
