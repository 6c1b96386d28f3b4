package frag3d

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ObjectContainer groups child Objects under a local transform. The container owns its children.
type ObjectContainer struct {
	// ObjM is the container's transform, applied to the children before the outer transform.
	ObjM    Mat4
	Objects []Object

	// Parallel makes the container emit its children concurrently. Fragments still come out in the
	// order of the children, but the indices they are given are then in no particular order.
	Parallel bool
}

// NewObjectContainer creates an empty container with an identity transform.
func NewObjectContainer() *ObjectContainer {
	return &ObjectContainer{ObjM: NewMat4()}
}

// AddObject adds children to the container.
func (oc *ObjectContainer) AddObject(objects ...Object) {
	oc.Objects = append(oc.Objects, objects...)
}

// RemoveObject removes the given children from the container.
func (oc *ObjectContainer) RemoveObject(objects ...Object) {
	for _, obj := range objects {
		for i, child := range oc.Objects {
			if child == obj {
				oc.Objects = append(oc.Objects[:i], oc.Objects[i+1:]...)
				break
			}
		}
	}
}

func (oc *ObjectContainer) Type() ObjectType { return ObjectTypeContainer }

func (oc *ObjectContainer) isObject() {}

// AppendFragments emits each child's fragments under outerM.Mult(ObjM).
func (oc *ObjectContainer) AppendFragments(outerM Mat4, cam *Camera, out *FragmentList) {
	totM := outerM.Mult(oc.ObjM)
	if oc.Parallel && len(oc.Objects) > 1 {
		oc.appendParallel(totM, cam, out)
		return
	}
	for _, obj := range oc.Objects {
		obj.AppendFragments(totM, cam, out)
	}
}

func (oc *ObjectContainer) appendParallel(totM Mat4, cam *Camera, out *FragmentList) {

	lists := make([]*FragmentList, len(oc.Objects))

	var group errgroup.Group
	group.SetLimit(runtime.GOMAXPROCS(0))

	for i, obj := range oc.Objects {
		lists[i] = out.spawn()
		group.Go(func() error {
			obj.AppendFragments(totM, cam, lists[i])
			return nil
		})
	}

	// Emission never fails, so there's no error to check.
	_ = group.Wait()

	for _, list := range lists {
		out.Fragments = append(out.Fragments, list.Fragments...)
	}

}

// FacingContainer is a container whose children are only drawn while its Normal faces the camera.
// It is useful for the walls of a box, for instance, where only the walls facing the viewer should be drawn.
type FacingContainer struct {
	ObjectContainer
	Normal Vec3
}

// NewFacingContainer creates an empty FacingContainer with an identity transform.
func NewFacingContainer(normal Vec3) *FacingContainer {
	return &FacingContainer{ObjectContainer: ObjectContainer{ObjM: NewMat4()}, Normal: normal}
}

func (fc *FacingContainer) Type() ObjectType { return ObjectTypeFacingContainer }

// AppendFragments emits the children only if Normal, under outerM, points towards the camera.
func (fc *FacingContainer) AppendFragments(outerM Mat4, cam *Camera, out *FragmentList) {
	if !facesCamera(outerM, fc.Normal) {
		return
	}
	fc.ObjectContainer.AppendFragments(outerM, cam, out)
}

// ClipContainer is a container whose children are clipped to the box between Min and Max,
// given in the children's coordinates (before ObjM is applied).
type ClipContainer struct {
	ObjectContainer
	Min, Max Vec3
}

// NewClipContainer creates an empty ClipContainer clipping to the box from min to max.
func NewClipContainer(min, max Vec3) *ClipContainer {
	return &ClipContainer{ObjectContainer: ObjectContainer{ObjM: NewMat4()}, Min: min, Max: max}
}

func (cc *ClipContainer) Type() ObjectType { return ObjectTypeClipContainer }

func (cc *ClipContainer) planes() [6]clipPlane {
	return [6]clipPlane{
		{normal: VecX, offset: -cc.Min.X},
		{normal: VecX.Invert(), offset: cc.Max.X},
		{normal: VecY, offset: -cc.Min.Y},
		{normal: VecY.Invert(), offset: cc.Max.Y},
		{normal: VecZ, offset: -cc.Min.Z},
		{normal: VecZ.Invert(), offset: cc.Max.Z},
	}
}

// AppendFragments emits the children's fragments, clipped to the box. Triangles are cut down to the
// part inside the box (possibly as several triangles), segments are shortened, and paths are kept only
// if their point is inside.
func (cc *ClipContainer) AppendFragments(outerM Mat4, cam *Camera, out *FragmentList) {

	totM := outerM.Mult(cc.ObjM)
	invM := totM.Inverted()
	if !invM.IsFinite() {
		Logger().Warn("clip container transform cannot be inverted, skipping clipping")
		cc.ObjectContainer.AppendFragments(outerM, cam, out)
		return
	}

	// children are emitted without a counter of their own, as fragments get their final index below
	inner := NewFragmentList(nil)
	cc.ObjectContainer.AppendFragments(outerM, cam, inner)

	planes := cc.planes()

	toLocal := func(f *Fragment) []clipVertex {
		verts := make([]clipVertex, f.NPoints())
		for i := range verts {
			verts[i] = clipVertex{P: invM.MultVec3(f.Points[i]), W: f.Points[i]}
		}
		return verts
	}

	fromLocal := func(f Fragment, verts []clipVertex) {
		for i, v := range verts {
			world := totM.MultVec4(Vec3To4(v.P))
			f.Points[i], f.Proj[i] = Vec4To3(world), CalcProjVec(cam.PerspM, world)
		}
		out.Append(f)
	}

	for _, f := range inner.Fragments {

		switch f.Type {

		case FragmentTriangle:
			poly := toLocal(&f)
			for _, plane := range planes {
				poly = clipPolygon(poly, plane)
			}
			if len(poly) == 3 && f.Points == [3]Vec3{poly[0].W, poly[1].W, poly[2].W} {
				out.Append(f)
				continue
			}
			for _, tri := range fanTriangles3D(poly) {
				fromLocal(f, tri[:])
			}

		case FragmentLineSeg:
			verts := toLocal(&f)
			t0, t1 := 0.0, 1.0
			for _, plane := range planes {
				t0, t1 = clipSegment(verts[0].P, verts[1].P, t0, t1, plane)
			}
			if t1-t0 <= depthEpsilon {
				continue
			}
			if t0 == 0 && t1 == 1 {
				out.Append(f)
				continue
			}
			fromLocal(f, []clipVertex{verts[0].lerp(verts[1], t0), verts[0].lerp(verts[1], t1)})

		case FragmentPath:
			p := invM.MultVec3(f.Points[0])
			inside := true
			for _, plane := range planes {
				if plane.dist(p) < 0 {
					inside = false
					break
				}
			}
			if inside {
				out.Append(f)
			}

		}

	}

}
