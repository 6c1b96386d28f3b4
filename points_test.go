package frag3d

import (
	"math"
	"testing"
)

func TestPointsEmission(t *testing.T) {

	pts := NewPoints(
		[]float64{0, 1, 2, 3},
		[]float64{0, math.NaN(), 0, 0},
		[]float64{0.1, 0.2, 0.3},
		nil,
		NewMarkerSquare(),
		NewSurfaceProp(NewColor(1, 0, 0, 1)), nil,
	)

	frags := emit(pts)
	if len(frags) != 2 {
		t.Fatalf("got %d fragments, want 2", len(frags))
	}

	for i, want := range []int{0, 2} {
		f := frags[i]
		if f.Type != FragmentPath || f.PathIndex != want || f.PathSize != 1 {
			t.Errorf("fragment %d: type %v, index %d, size %v", i, f.Type, f.PathIndex, f.PathSize)
		}
		if f.Params == nil || len(f.Params.Marker) != 4 {
			t.Errorf("fragment %d doesn't carry the marker", i)
		}
	}

	if frags[1].Proj[0] != NewVec3(2, 0, 0.3) {
		t.Errorf("second point projected to %v", frags[1].Proj[0])
	}

}

func TestPointsSizes(t *testing.T) {

	pts := NewPoints([]float64{0, 1, 2}, []float64{0, 1, 2}, []float64{0, 1, 2}, []float64{2, 4},
		NewMarkerCircle(8), nil, NewLineProp(NewColor(0, 0, 0, 1), 1))
	pts.SetScaleEdges(true)

	frags := emit(pts)
	if len(frags) != 2 {
		t.Fatalf("got %d fragments, want sizes to truncate to 2", len(frags))
	}
	if frags[0].PathSize != 2 || frags[1].PathSize != 4 {
		t.Errorf("sizes = %v, %v; want 2, 4", frags[0].PathSize, frags[1].PathSize)
	}
	if !frags[0].Params.ScaleEdges {
		t.Error("ScaleEdges not passed on")
	}

}

func TestMarkerPaths(t *testing.T) {

	circle := NewMarkerCircle(2)
	if len(circle) != 3 {
		t.Errorf("circle has %d points, want at least 3", len(circle))
	}
	for _, p := range NewMarkerCircle(16) {
		if r := math.Hypot(p.X, p.Y); math.Abs(r-0.5) > 1e-12 {
			t.Errorf("circle point %v has radius %v", p, r)
		}
	}

	scaled := NewMarkerSquare().Scaled(Vec2{X: 10, Y: 20}, 4)
	if scaled[0] != (Vec2{X: 8, Y: 18}) || scaled[2] != (Vec2{X: 12, Y: 22}) {
		t.Errorf("scaled square = %v", scaled)
	}

	if d := NewMarkerDiamond(); d[1] != (Vec2{X: 0.5}) {
		t.Errorf("diamond = %v", d)
	}

}
