// Package raster paints frag3d scenes in software onto an *image.RGBA.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"

	"github.com/solarlune/frag3d"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// Painter is a frag3d.Painter drawing onto an RGBA image with an anti-aliased vector rasterizer.
type Painter struct {
	img   *image.RGBA
	z     *vector.Rasterizer
	font  *opentype.Font
	faces map[float64]font.Face
}

// New creates a Painter with a width x height image cleared to background.
func New(width, height int, background frag3d.Color) *Painter {

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(background.ToNRGBA64()), image.Point{}, draw.Src)

	p := &Painter{
		img:   img,
		z:     vector.NewRasterizer(width, height),
		faces: map[float64]font.Face{},
	}

	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		frag3d.Logger().Warn("could not parse label font, falling back to basicfont", "error", err)
	} else {
		p.font = f
	}

	return p

}

// Image returns the image being painted on.
func (p *Painter) Image() *image.RGBA {
	return p.img
}

// SavePNG writes the image to a PNG file.
func (p *Painter) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("raster: %w", err)
	}
	if err := png.Encode(f, p.img); err != nil {
		f.Close()
		return fmt.Errorf("raster: encoding png: %w", err)
	}
	return f.Close()
}

func (p *Painter) fill(c frag3d.Color) {
	bounds := p.img.Bounds()
	p.z.Draw(p.img, bounds, image.NewUniform(c.ToNRGBA64()), image.Point{})
	p.z.Reset(bounds.Dx(), bounds.Dy())
}

// FillPolygon fills the polygon with the surface color.
func (p *Painter) FillPolygon(pts []frag3d.Vec2, s *frag3d.SurfaceProp) {

	if s == nil || len(pts) < 3 {
		return
	}

	p.z.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, pt := range pts[1:] {
		p.z.LineTo(float32(pt.X), float32(pt.Y))
	}
	p.z.ClosePath()

	p.fill(s.Color)

}

// StrokePolyline strokes each segment of the line as a rectangle, with square caps covering the joins.
func (p *Painter) StrokePolyline(pts []frag3d.Vec2, closed bool, l *frag3d.LineProp, scale float64) {

	if l == nil || len(pts) < 2 {
		return
	}

	half := math.Max(l.Width*scale, 1) / 2

	segments := len(pts) - 1
	if closed {
		segments++
	}

	for i := 0; i < segments; i++ {

		a, b := pts[i], pts[(i+1)%len(pts)]
		dir := b.Sub(a)
		length := math.Hypot(dir.X, dir.Y)
		if length == 0 {
			continue
		}

		along := dir.Scale(half / length)
		across := frag3d.Vec2{X: -along.Y, Y: along.X}

		corners := [4]frag3d.Vec2{
			a.Sub(along).Add(across),
			b.Add(along).Add(across),
			b.Add(along).Sub(across),
			a.Sub(along).Sub(across),
		}

		p.z.MoveTo(float32(corners[0].X), float32(corners[0].Y))
		for _, c := range corners[1:] {
			p.z.LineTo(float32(c.X), float32(c.Y))
		}
		p.z.ClosePath()

	}

	p.fill(l.Color)

}

func (p *Painter) face(size float64) font.Face {

	if p.font == nil || size <= 0 {
		return basicfont.Face7x13
	}

	if face, exists := p.faces[size]; exists {
		return face
	}

	face, err := opentype.NewFace(p.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		frag3d.Logger().Warn("could not create label font face", "size", size, "error", err)
		return basicfont.Face7x13
	}

	p.faces[size] = face
	return face

}

// DrawString writes s with its baseline starting at pos.
func (p *Painter) DrawString(pos frag3d.Vec2, s string, c frag3d.Color, size float64) {
	d := font.Drawer{
		Dst:  p.img,
		Src:  image.NewUniform(c.ToNRGBA64()),
		Face: p.face(size),
		Dot:  fixed.Point26_6{X: fixed.Int26_6(pos.X * 64), Y: fixed.Int26_6(pos.Y * 64)},
	}
	d.DrawString(s)
}

// At returns the color of the pixel at (x, y).
func (p *Painter) At(x, y int) color.RGBA {
	return p.img.RGBAAt(x, y)
}
