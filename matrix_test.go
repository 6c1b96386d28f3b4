package frag3d

import (
	"math"
	"testing"
)

func BenchmarkMatrixInversion(b *testing.B) {

	b.ReportAllocs()

	mat := NewMat4Rotate(0, 1, 0.2, 0.24).Mult(NewMat4Translate(1, 4, -12))

	for i := 0; i < b.N; i++ {
		mat.Inverted()
	}

}

func TestMatrixInversion(t *testing.T) {

	matrices := []Mat4{
		NewMat4Rotate(0, 1, 0, 0.1),
		NewMat4Translate(-10, 0.1, 3232.1976),
		NewMat4Scale(10, 0.1, -0.45),
		NewMat4Translate(-1, -1, -1).Mult(NewMat4Rotate(1, 0, 0.1, 0.334)).Mult(NewMat4Scale(10, 1, 2)),
		NewLookAt(NewVec3(3, 2, 5), Vec3{}, VecY),
	}

	for i, mat := range matrices {
		if !mat.Mult(mat.Inverted()).IsIdentity() {
			t.Fatal("failed on matrix #", i, ": matrix * matrix.Inverted() is not identity")
		}
	}

}

func TestSingularMatrixInversion(t *testing.T) {
	if NewMat4Scale(1, 1, 0).Inverted().IsFinite() {
		t.Error("inverting a singular matrix gave finite entries")
	}
}

func TestMatrixMultOrder(t *testing.T) {

	// Scale first, then translate.
	m := NewMat4Translate(1, 0, 0).Mult(NewMat4Scale(2, 2, 2))

	if got := m.MultVec3(NewVec3(1, 1, 1)); !got.Equals(NewVec3(3, 2, 2)) {
		t.Errorf("transformed point = %v, want (3, 2, 2)", got)
	}

}

func TestMatrixRotate(t *testing.T) {

	// A quarter turn counter-clockwise around +Z takes +X to +Y.
	m := NewMat4Rotate(0, 0, 1, math.Pi/2)
	if got := m.MultVec3(VecX); !got.Equals(VecY) {
		t.Errorf("rotated +X = %v, want +Y", got)
	}

	// No axis falls back to +Y.
	if !NewMat4Rotate(0, 0, 0, 1).Equals(NewMat4Rotate(0, 1, 0, 1)) {
		t.Error("zero axis didn't fall back to +Y")
	}

}

func TestMatrixMultVec4Direction(t *testing.T) {

	m := NewMat4Translate(5, 5, 5)
	if got := m.MultVec4(NewVec4(1, 0, 0, 0)); got != NewVec4(1, 0, 0, 0) {
		t.Errorf("translated direction = %v, want it unchanged", got)
	}

}

func TestLookAt(t *testing.T) {

	view := NewLookAt(NewVec3(0, 0, 5), Vec3{}, VecY)

	if got := view.MultVec3(Vec3{}); !got.Equals(NewVec3(0, 0, -5)) {
		t.Errorf("target in camera space = %v, want (0, 0, -5)", got)
	}
	if got := view.MultVec3(NewVec3(0, 0, 5)); !got.Equals(Vec3{}) {
		t.Errorf("eye in camera space = %v, want origin", got)
	}

	// Looking straight down still gives a usable view.
	down := NewLookAt(NewVec3(0, 5, 0), Vec3{}, VecY)
	if !down.IsFinite() || !down.Mult(down.Inverted()).IsIdentity() {
		t.Error("view along the up vector is degenerate")
	}

}
