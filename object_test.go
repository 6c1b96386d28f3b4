package frag3d

import "testing"

// identityCamera projects camera space as-is, so projected coordinates equal the transformed points.
func identityCamera() *Camera {
	return NewCameraWithProjection(NewMat4())
}

// emit flattens obj with an identity transform and projection.
func emit(obj Object) []Fragment {
	list := NewFragmentList(nil)
	obj.AppendFragments(NewMat4(), identityCamera(), list)
	return list.Fragments
}

func countTypes(frags []Fragment) map[FragmentType]int {
	counts := map[FragmentType]int{}
	for _, f := range frags {
		counts[f.Type]++
	}
	return counts
}

func TestObjectTypeNames(t *testing.T) {

	objects := []Object{
		&Triangle{}, &TriangleFacing{}, &PolyLine{}, &LineSegments{}, &Mesh{}, &DataMesh{},
		&Points{}, &Text{}, NewObjectContainer(), NewFacingContainer(VecZ), NewClipContainer(Vec3{}, Vec3{}),
	}

	seen := map[string]bool{}
	for _, obj := range objects {
		name := obj.Type().String()
		if name == "Unknown" || seen[name] {
			t.Errorf("bad or duplicate type name %q", name)
		}
		seen[name] = true
	}

}

func TestTransformPoint(t *testing.T) {

	cam := NewCameraWithProjection(NewMat4Scale(2, 2, 1))
	p, proj := transformPoint(NewMat4Translate(1, 0, 0), cam, NewVec4(1, 1, 1, 1))

	if p != NewVec3(2, 1, 1) {
		t.Errorf("transformed point = %v, want (2, 1, 1)", p)
	}
	if proj != NewVec3(4, 2, 1) {
		t.Errorf("projected point = %v, want (4, 2, 1)", proj)
	}

}

func TestFacesCamera(t *testing.T) {

	if !facesCamera(NewMat4(), VecZ) {
		t.Error("+Z normal should face a camera looking down -Z")
	}
	if facesCamera(NewMat4(), VecZ.Invert()) {
		t.Error("-Z normal should face away")
	}

	// Translation doesn't change facing, but rotation does.
	if !facesCamera(NewMat4Translate(0, 0, -50), VecZ) {
		t.Error("translated +Z normal should still face the camera")
	}
	if facesCamera(NewMat4Rotate(0, 1, 0, 3), VecZ) {
		t.Error("normal turned around should face away")
	}

}
