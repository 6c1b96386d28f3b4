package frag3d

import "image/color"

// A Color represents a color, containing R, G, B, and A components, each expected to range from 0 to 1.
type Color struct {
	R, G, B, A float32
}

// NewColor returns a new Color, with the provided R, G, B, and A components expected to range from 0 to 1.
func NewColor(r, g, b, a float32) Color {
	return Color{r, g, b, a}
}

// RGBA64 returns the components of the Color as float64s.
func (c Color) RGBA64() (float64, float64, float64, float64) {
	return float64(c.R), float64(c.G), float64(c.B), float64(c.A)
}

// ToNRGBA64 converts the Color to a non-premultiplied color.NRGBA64, clamping components to [0, 1].
func (c Color) ToNRGBA64() color.NRGBA64 {
	return color.NRGBA64{
		R: uint16(clamp(c.R, 0, 1) * 65535),
		G: uint16(clamp(c.G, 0, 1) * 65535),
		B: uint16(clamp(c.B, 0, 1) * 65535),
		A: uint16(clamp(c.A, 0, 1) * 65535),
	}
}

// WithAlpha returns a copy of the Color with its alpha multiplied by the factor given.
func (c Color) WithAlpha(factor float32) Color {
	c.A *= factor
	return c
}

func clamp[V float64 | float32 | int](value, min, max V) V {
	if value > max {
		return max
	} else if value < min {
		return min
	}
	return value
}
