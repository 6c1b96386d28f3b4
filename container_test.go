package frag3d

import (
	"math"
	"testing"
)

func TestContainerTransforms(t *testing.T) {

	inner := NewObjectContainer()
	inner.ObjM = NewMat4Scale(2, 2, 2)
	inner.AddObject(NewTriangle(VecX, VecY, VecZ, nil))

	outer := NewObjectContainer()
	outer.ObjM = NewMat4Translate(10, 0, 0)
	outer.AddObject(inner)

	frags := emit(outer)
	if len(frags) != 1 {
		t.Fatalf("got %d fragments, want 1", len(frags))
	}

	// scaled by the inner container first, then moved by the outer one
	if p := frags[0].Points[0]; p != NewVec3(12, 0, 0) {
		t.Errorf("first corner = %v, want (12, 0, 0)", p)
	}

}

func TestContainerRemoveObject(t *testing.T) {

	a := NewTriangle(Vec3{}, VecX, VecY, nil)
	b := NewTriangle(Vec3{}, VecX, VecZ, nil)

	oc := NewObjectContainer()
	oc.AddObject(a, b, a)
	oc.RemoveObject(a)

	if len(oc.Objects) != 2 || oc.Objects[0] != b || oc.Objects[1] != a {
		t.Errorf("objects after removal = %v", oc.Objects)
	}

}

func TestContainerParallel(t *testing.T) {

	build := func(parallel bool) []Fragment {
		oc := NewObjectContainer()
		oc.Parallel = parallel
		for i := 0; i < 32; i++ {
			pl := NewPolyLine(nil)
			x := float64(i)
			pl.AddPoints([]float64{x, x, x}, []float64{0, 1, 2}, []float64{0, 0, 0})
			oc.AddObject(pl)
		}
		return emit(oc)
	}

	serial := build(false)
	parallel := build(true)

	if len(parallel) != len(serial) {
		t.Fatalf("parallel emission gave %d fragments, want %d", len(parallel), len(serial))
	}

	seen := map[uint64]bool{}
	for i := range parallel {
		if parallel[i].Points != serial[i].Points {
			t.Fatalf("fragment %d differs: %v vs %v", i, parallel[i].Points, serial[i].Points)
		}
		if seen[parallel[i].Index] {
			t.Fatalf("index %d handed out twice", parallel[i].Index)
		}
		seen[parallel[i].Index] = true
	}
	for i := range serial {
		if !seen[uint64(i)] {
			t.Errorf("index %d missing from parallel emission", i)
		}
	}

}

func TestFacingContainer(t *testing.T) {

	front := NewFacingContainer(VecZ)
	front.AddObject(NewTriangle(Vec3{}, VecX, VecY, nil))
	if n := len(emit(front)); n != 1 {
		t.Errorf("facing container gave %d fragments, want 1", n)
	}

	back := NewFacingContainer(VecZ.Invert())
	back.AddObject(NewTriangle(Vec3{}, VecX, VecY, nil))
	if n := len(emit(back)); n != 0 {
		t.Errorf("container facing away gave %d fragments, want 0", n)
	}

	// ObjM doesn't turn the normal; only the outer transform does
	back.ObjM = NewMat4Rotate(0, 1, 0, math.Pi)
	if n := len(emit(back)); n != 0 {
		t.Errorf("container facing away gave %d fragments after its own rotation, want 0", n)
	}

}

func TestClipContainer(t *testing.T) {

	cc := NewClipContainer(NewVec3(-1, -1, -1), NewVec3(1, 1, 1))
	inside := NewTriangle(NewVec3(-0.5, -0.5, 0), NewVec3(0.5, -0.5, 0), NewVec3(0, 0.5, 0), nil)
	crossing := NewTriangle(NewVec3(0, 0, 0), NewVec3(2, 0, 0), NewVec3(0, 2, 0), nil)
	outside := NewTriangle(NewVec3(5, 5, 0), NewVec3(6, 5, 0), NewVec3(5, 6, 0), nil)
	cc.AddObject(inside, crossing, outside)

	frags := emit(cc)

	var insideFrags, crossingFrags []Fragment
	for _, f := range frags {
		switch f.Object {
		case inside:
			insideFrags = append(insideFrags, f)
		case crossing:
			crossingFrags = append(crossingFrags, f)
		default:
			t.Errorf("fragment from unexpected object %v", f.Object)
		}
	}

	if len(insideFrags) != 1 || insideFrags[0].Points != inside.Points {
		t.Errorf("triangle inside the box changed: %v", insideFrags)
	}

	// the part of the crossing triangle inside the box is the unit square
	area := 0.0
	for _, f := range crossingFrags {
		area += math.Abs(signedArea2D(f.Proj[0], f.Proj[1], f.Proj[2]))
		for _, p := range f.Points {
			if p.X > 1+1e-12 || p.Y > 1+1e-12 {
				t.Errorf("clipped point %v is outside the box", p)
			}
		}
	}
	if math.Abs(area-1) > 1e-9 {
		t.Errorf("clipped area = %v, want 1", area)
	}

	for i := 1; i < len(frags); i++ {
		if frags[i].Index <= frags[i-1].Index {
			t.Error("clipped fragments aren't numbered in order")
		}
	}

}

func TestClipContainerSegmentsAndPaths(t *testing.T) {

	cc := NewClipContainer(NewVec3(-1, -1, -1), NewVec3(1, 1, 1))
	cc.AddObject(
		NewLineSegments([]float64{-2, 3}, []float64{0, 3}, []float64{0, 3}, []float64{2, 4}, []float64{0, 3}, []float64{0, 3}, nil),
		NewPoints([]float64{0, 2}, []float64{0, 0}, []float64{0, 0}, nil, NewMarkerSquare(), nil, nil),
	)

	frags := emit(cc)
	counts := countTypes(frags)
	if counts[FragmentLineSeg] != 1 || counts[FragmentPath] != 1 {
		t.Fatalf("got %v, want one segment and one point", counts)
	}

	seg := frags[0]
	if seg.Points[0] != NewVec3(-1, 0, 0) || seg.Points[1] != NewVec3(1, 0, 0) {
		t.Errorf("clipped segment = %v to %v", seg.Points[0], seg.Points[1])
	}

}

func TestClipContainerSingular(t *testing.T) {

	cc := NewClipContainer(NewVec3(-1, -1, -1), NewVec3(1, 1, 1))
	cc.ObjM = NewMat4Scale(1, 1, 0)
	cc.AddObject(NewTriangle(NewVec3(5, 5, 0), NewVec3(6, 5, 0), NewVec3(5, 6, 0), nil))

	if n := len(emit(cc)); n != 1 {
		t.Errorf("got %d fragments, want the triangle emitted unclipped", n)
	}

}
