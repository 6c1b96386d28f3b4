package raster

import (
	"image/color"
	"path/filepath"
	"testing"

	"github.com/solarlune/frag3d"
)

var (
	black = frag3d.NewColor(0, 0, 0, 1)
	red   = frag3d.NewColor(1, 0, 0, 1)
	blue  = frag3d.NewColor(0, 0, 1, 1)
)

func TestFillPolygon(t *testing.T) {

	p := New(100, 100, black)
	p.FillPolygon([]frag3d.Vec2{{X: 10, Y: 10}, {X: 90, Y: 10}, {X: 10, Y: 90}}, frag3d.NewSurfaceProp(red))

	if got := p.At(20, 20); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("inside pixel = %v, want red", got)
	}
	if got := p.At(80, 80); got != (color.RGBA{0, 0, 0, 255}) {
		t.Errorf("outside pixel = %v, want black", got)
	}

}

func TestFillPolygonNilSurface(t *testing.T) {
	p := New(10, 10, black)
	p.FillPolygon([]frag3d.Vec2{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 0, Y: 10}}, nil)
	if got := p.At(1, 1); got != (color.RGBA{0, 0, 0, 255}) {
		t.Errorf("pixel = %v, want untouched", got)
	}
}

func TestStrokePolyline(t *testing.T) {

	p := New(100, 100, black)
	p.StrokePolyline([]frag3d.Vec2{{X: 10, Y: 50}, {X: 90, Y: 50}}, false, frag3d.NewLineProp(blue, 4), 1)

	if got := p.At(50, 50); got.B == 0 {
		t.Errorf("pixel on the line = %v, want blue", got)
	}
	if got := p.At(50, 40); got != (color.RGBA{0, 0, 0, 255}) {
		t.Errorf("pixel off the line = %v, want black", got)
	}

}

func TestRenderScene(t *testing.T) {

	scene := frag3d.NewScene()
	scene.Camera = frag3d.NewCameraWithProjection(frag3d.NewMat4())

	// far blue triangle over the whole view, nearer red one in the middle
	scene.Root.AddObject(
		frag3d.NewTriangle(frag3d.Vec3{X: -1, Y: -1, Z: 0.8}, frag3d.Vec3{X: 3, Y: -1, Z: 0.8}, frag3d.Vec3{X: -1, Y: 3, Z: 0.8}, frag3d.NewSurfaceProp(blue)),
		frag3d.NewTriangle(frag3d.Vec3{X: -0.5, Y: -0.5, Z: 0.2}, frag3d.Vec3{X: 0.5, Y: -0.5, Z: 0.2}, frag3d.Vec3{X: 0, Y: 0.5, Z: 0.2}, frag3d.NewSurfaceProp(red)),
	)

	p := New(100, 100, black)
	if err := scene.Render(p, 100, 100, nil); err != nil {
		t.Fatal(err)
	}

	if got := p.At(50, 55); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("center pixel = %v, want the near red triangle", got)
	}
	if got := p.At(5, 95); got != (color.RGBA{0, 0, 255, 255}) {
		t.Errorf("corner pixel = %v, want the far blue triangle", got)
	}

	if err := p.SavePNG(filepath.Join(t.TempDir(), "scene.png")); err != nil {
		t.Fatal(err)
	}

}

func TestDrawString(t *testing.T) {

	p := New(60, 30, black)
	p.DrawString(frag3d.Vec2{X: 2, Y: 20}, "HI", frag3d.NewColor(1, 1, 1, 1), 16)

	lit := 0
	for y := 0; y < 30; y++ {
		for x := 0; x < 60; x++ {
			if p.At(x, y).R > 0 {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Error("no pixels drawn for the string")
	}

}
