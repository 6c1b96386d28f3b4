package frag3d

import (
	"math"
	"testing"
)

func gridHeights(n1, n2 int, height func(i1, i2 int) float64) []float64 {
	heights := make([]float64, 0, n1*n2)
	for i1 := 0; i1 < n1; i1++ {
		for i2 := 0; i2 < n2; i2++ {
			heights = append(heights, height(i1, i2))
		}
	}
	return heights
}

func TestMeshCounts(t *testing.T) {

	line := NewLineProp(NewColor(0, 0, 0, 1), 1)
	surface := NewSurfaceProp(NewColor(1, 1, 1, 1))

	pos1 := []float64{0, 1, 2}
	pos2 := []float64{0, 1, 2, 3}
	flat := gridHeights(3, 4, func(i1, i2 int) float64 { return 0 })

	tests := []struct {
		name            string
		mesh            *Mesh
		triangles, segs int
	}{
		{"surface only", NewMesh(DirectionZ, pos1, pos2, flat, nil, surface), 12, 0},
		{"lines only", NewMesh(DirectionZ, pos1, pos2, flat, line, nil), 0, 17},
		{"both", NewMesh(DirectionY, pos1, pos2, flat, line, surface), 12, 17},
		{"too few heights", NewMesh(DirectionZ, pos1, pos2, flat[:11], line, surface), 0, 0},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			counts := countTypes(emit(test.mesh))
			if counts[FragmentTriangle] != test.triangles || counts[FragmentLineSeg] != test.segs {
				t.Errorf("got %d triangles and %d segments, want %d and %d",
					counts[FragmentTriangle], counts[FragmentLineSeg], test.triangles, test.segs)
			}
		})
	}

}

func TestMeshHiddenLines(t *testing.T) {

	mesh := NewMesh(DirectionZ, []float64{0, 1, 2}, []float64{0, 1, 2, 3}, make([]float64, 12),
		NewLineProp(NewColor(0, 0, 0, 1), 1), nil)

	mesh.HideLines1 = true
	if n := len(emit(mesh)); n != 9 {
		t.Errorf("got %d segments with lines along Pos1 hidden, want 9", n)
	}

	mesh.HideLines1, mesh.HideLines2 = false, true
	if n := len(emit(mesh)); n != 8 {
		t.Errorf("got %d segments with lines along Pos2 hidden, want 8", n)
	}

}

func TestMeshNonFiniteHeight(t *testing.T) {

	heights := gridHeights(3, 4, func(i1, i2 int) float64 {
		if i1 == 1 && i2 == 1 {
			return math.NaN()
		}
		return 1
	})

	mesh := NewMesh(DirectionZ, []float64{0, 1, 2}, []float64{0, 1, 2, 3}, heights,
		NewLineProp(NewColor(0, 0, 0, 1), 1), NewSurfaceProp(NewColor(1, 1, 1, 1)))

	counts := countTypes(emit(mesh))
	if counts[FragmentTriangle] != 6 || counts[FragmentLineSeg] != 13 {
		t.Errorf("got %d triangles and %d segments, want 6 and 13", counts[FragmentTriangle], counts[FragmentLineSeg])
	}

}

func TestMeshDirection(t *testing.T) {

	heights := []float64{5, 5, 5, 5}

	tests := []struct {
		dirn Direction
		want Vec3
	}{
		// the (1, 1) corner of the grid, with the height along dirn
		{DirectionX, NewVec3(5, 10, 20)},
		{DirectionY, NewVec3(20, 5, 10)},
		{DirectionZ, NewVec3(10, 20, 5)},
	}

	for _, test := range tests {
		mesh := NewMesh(test.dirn, []float64{0, 10}, []float64{0, 20}, heights, nil, NewSurfaceProp(NewColor(1, 1, 1, 1)))
		frags := emit(mesh)
		if len(frags) != 2 {
			t.Fatalf("got %d triangles, want 2", len(frags))
		}
		// the second triangle starts at the far corner
		if got := frags[1].Points[0]; got != test.want {
			t.Errorf("direction %d: far corner = %v, want %v", test.dirn, got, test.want)
		}
	}

}
