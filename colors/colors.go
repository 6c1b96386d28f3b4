// Package colors names a palette of frag3d.Colors, and builds surface and line styles from them.
package colors

import (
	"sort"
	"strings"

	"github.com/solarlune/frag3d"
)

var palette = map[string]frag3d.Color{
	"transparent": frag3d.NewColor(0, 0, 0, 0),
	"white":       frag3d.NewColor(1, 1, 1, 1),
	"black":       frag3d.NewColor(0, 0, 0, 1),
	"gray":        frag3d.NewColor(0.5, 0.5, 0.5, 1),
	"lightgray":   frag3d.NewColor(0.8, 0.8, 0.8, 1),
	"darkgray":    frag3d.NewColor(0.2, 0.2, 0.2, 1),
	"darkestgray": frag3d.NewColor(0.05, 0.05, 0.05, 1),
	"red":         frag3d.NewColor(1, 0, 0, 1),
	"palered":     frag3d.NewColor(0.678, 0.172, 0.384, 1),
	"orange":      frag3d.NewColor(1, 0.5, 0, 1),
	"yellow":      frag3d.NewColor(1, 1, 0, 1),
	"green":       frag3d.NewColor(0, 1, 0, 1),
	"skyblue":     frag3d.NewColor(0, 0.5, 1, 1),
	"turquoise":   frag3d.NewColor(0, 1, 1, 1),
	"blue":        frag3d.NewColor(0, 0, 1, 1),
	"pink":        frag3d.NewColor(1, 0, 1, 1),
	"purple":      frag3d.NewColor(0.5, 0, 1, 1),
}

// ByName returns the palette color with the given name, ignoring case, spaces and dashes
// ("Sky Blue", "sky-blue" and "skyblue" are the same color).
func ByName(name string) (frag3d.Color, bool) {
	key := strings.ToLower(strings.NewReplacer(" ", "", "-", "", "_", "").Replace(name))
	c, ok := palette[key]
	return c, ok
}

// Names returns the names of the palette colors in alphabetical order.
func Names() []string {
	names := make([]string, 0, len(palette))
	for name := range palette {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Surface returns a new SurfaceProp filled with the named color, or nil if there's no such color.
func Surface(name string) *frag3d.SurfaceProp {
	c, ok := ByName(name)
	if !ok {
		return nil
	}
	return frag3d.NewSurfaceProp(c)
}

// Line returns a new LineProp stroking with the named color and width, or nil if there's no such color.
func Line(name string, width float64) *frag3d.LineProp {
	c, ok := ByName(name)
	if !ok {
		return nil
	}
	return frag3d.NewLineProp(c, width)
}

// Transparent returns a fully transparent black.
func Transparent() frag3d.Color { return palette["transparent"] }

func White() frag3d.Color       { return palette["white"] }
func Black() frag3d.Color       { return palette["black"] }
func Gray() frag3d.Color        { return palette["gray"] }
func LightGray() frag3d.Color   { return palette["lightgray"] }
func DarkGray() frag3d.Color    { return palette["darkgray"] }
func DarkestGray() frag3d.Color { return palette["darkestgray"] }
func Red() frag3d.Color         { return palette["red"] }
func PaleRed() frag3d.Color     { return palette["palered"] }
func Orange() frag3d.Color      { return palette["orange"] }
func Yellow() frag3d.Color      { return palette["yellow"] }
func Green() frag3d.Color       { return palette["green"] }
func SkyBlue() frag3d.Color     { return palette["skyblue"] }
func Turquoise() frag3d.Color   { return palette["turquoise"] }
func Blue() frag3d.Color        { return palette["blue"] }
func Pink() frag3d.Color        { return palette["pink"] }
func Purple() frag3d.Color      { return palette["purple"] }
