package ggpaint

import (
	"testing"

	"github.com/solarlune/frag3d"
)

func TestFillPolygon(t *testing.T) {

	dc, p := NewContext(100, 100, frag3d.NewColor(1, 1, 1, 1))
	defer dc.Close()

	p.FillPolygon([]frag3d.Vec2{{X: 10, Y: 10}, {X: 90, Y: 10}, {X: 10, Y: 90}}, frag3d.NewSurfaceProp(frag3d.NewColor(1, 0, 0, 1)))

	r, g, b, _ := dc.Image().At(20, 20).RGBA()
	if r>>8 < 250 || g>>8 > 5 || b>>8 > 5 {
		t.Errorf("inside pixel = (%d, %d, %d), want red", r>>8, g>>8, b>>8)
	}

	r, g, b, _ = dc.Image().At(85, 85).RGBA()
	if r>>8 < 250 || g>>8 < 250 || b>>8 < 250 {
		t.Errorf("outside pixel = (%d, %d, %d), want white", r>>8, g>>8, b>>8)
	}

}

func TestNilStylesSkipped(t *testing.T) {

	dc, p := NewContext(20, 20, frag3d.NewColor(1, 1, 1, 1))
	defer dc.Close()

	p.FillPolygon([]frag3d.Vec2{{X: 0, Y: 0}, {X: 20, Y: 0}, {X: 0, Y: 20}}, nil)
	p.StrokePolyline([]frag3d.Vec2{{X: 0, Y: 0}, {X: 20, Y: 20}}, false, nil, 1)

	r, g, b, _ := dc.Image().At(5, 5).RGBA()
	if r>>8 < 250 || g>>8 < 250 || b>>8 < 250 {
		t.Errorf("pixel = (%d, %d, %d), want untouched white", r>>8, g>>8, b>>8)
	}

}

func TestRenderScene(t *testing.T) {

	scene := frag3d.NewScene()
	scene.Camera = frag3d.NewCameraWithProjection(frag3d.NewMat4())
	scene.Root.AddObject(frag3d.NewTriangle(
		frag3d.Vec3{X: -0.8, Y: -0.8, Z: 0}, frag3d.Vec3{X: 0.8, Y: -0.8, Z: 0}, frag3d.Vec3{X: 0, Y: 0.8, Z: 0},
		frag3d.NewSurfaceProp(frag3d.NewColor(0, 0, 1, 1)),
	))

	dc, p := NewContext(64, 64, frag3d.NewColor(0, 0, 0, 1))
	defer dc.Close()

	if err := scene.Render(p, 64, 64, nil); err != nil {
		t.Fatal(err)
	}

	_, _, b, _ := dc.Image().At(32, 36).RGBA()
	if b>>8 < 250 {
		t.Errorf("center pixel blue = %d, want the triangle's color", b>>8)
	}

}
