package frag3d

import (
	"errors"
	"time"
)

// ErrNoScene is returned when rendering a Scene without a root container or camera.
var ErrNoScene = errors.New("scene has no root container or camera")

// RenderOptions controls how a Scene is rendered.
type RenderOptions struct {
	Sort *SortOptions // Fragment sorting; nil for DefaultSortOptions()

	Scale       float64 // Pixel scale handed to label drawers
	LineScale   float64 // Multiplier for line widths
	MarkerScale float64 // Marker size in pixels for a PathSize of 1
}

// DefaultRenderOptions returns the default RenderOptions: default sorting, unscaled lines, and 8 pixel markers.
func DefaultRenderOptions() *RenderOptions {
	return &RenderOptions{
		Sort:        DefaultSortOptions(),
		Scale:       1,
		LineScale:   1,
		MarkerScale: 8,
	}
}

// Scene is a tree of Objects viewed through a Camera.
type Scene struct {
	Root   *ObjectContainer
	Camera *Camera
}

// NewScene creates a Scene with an empty root container and a default Camera.
func NewScene() *Scene {
	return &Scene{
		Root:   NewObjectContainer(),
		Camera: NewCamera(),
	}
}

// Fragments flattens the scene into fragments in camera space, using the Camera's view as the
// outermost transform. Fragments are numbered from zero.
func (scene *Scene) Fragments() (*FragmentList, error) {
	if scene.Root == nil || scene.Camera == nil {
		return nil, ErrNoScene
	}
	list := NewFragmentList(nil)
	scene.Root.AppendFragments(scene.Camera.ViewM, scene.Camera, list)
	return list, nil
}

// Render flattens, sorts and paints the scene onto p, which covers width x height pixels.
// Passing nil for opts renders with DefaultRenderOptions().
func (scene *Scene) Render(p Painter, width, height int, opts *RenderOptions) error {

	if opts == nil {
		opts = DefaultRenderOptions()
	}

	start := time.Now()

	list, err := scene.Fragments()
	if err != nil {
		return err
	}
	emitted := list.Len()

	sorted := SortFragments(list.Counter(), list.Fragments, opts.Sort)

	vp := Viewport{Width: float64(width), Height: float64(height)}
	for i := range sorted {
		PaintFragment(p, vp, &sorted[i], opts)
	}

	Logger().Debug("rendered scene",
		"emitted", emitted,
		"painted", len(sorted),
		"elapsed", time.Since(start),
	)

	return nil

}
