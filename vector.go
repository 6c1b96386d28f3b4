package frag3d

import (
	"math"
)

// VecX, VecY and VecZ are unit vectors along the principal axes.
var (
	VecX = Vec3{1, 0, 0}
	VecY = Vec3{0, 1, 0}
	VecZ = Vec3{0, 0, 1}
)

// isFinite reports whether value is neither NaN nor infinite.
func isFinite(value float64) bool {
	return !math.IsNaN(value) && !math.IsInf(value, 0)
}

// Vec2 is a point on the projected screen plane.
type Vec2 struct {
	X, Y float64
}

// Add returns the sum of the two vectors.
func (vec Vec2) Add(other Vec2) Vec2 {
	vec.X += other.X
	vec.Y += other.Y
	return vec
}

// Sub returns a copy of the calling Vec2 with other subtracted from it.
func (vec Vec2) Sub(other Vec2) Vec2 {
	vec.X -= other.X
	vec.Y -= other.Y
	return vec
}

// Scale returns a copy of the Vec2 multiplied by scalar.
func (vec Vec2) Scale(scalar float64) Vec2 {
	vec.X *= scalar
	vec.Y *= scalar
	return vec
}

// Dot returns the dot product of the two vectors.
func (vec Vec2) Dot(other Vec2) float64 {
	return vec.X*other.X + vec.Y*other.Y
}

// Cross returns the z component of the 3D cross product of the two vectors lying in the XY plane.
func (vec Vec2) Cross(other Vec2) float64 {
	return vec.X*other.Y - vec.Y*other.X
}

// Lerp linearly interpolates between the calling Vec2 (t = 0) and other (t = 1).
func (vec Vec2) Lerp(other Vec2, t float64) Vec2 {
	vec.X += (other.X - vec.X) * t
	vec.Y += (other.Y - vec.Y) * t
	return vec
}

// IsFinite returns true if both components are finite numbers.
func (vec Vec2) IsFinite() bool {
	return isFinite(vec.X) && isFinite(vec.Y)
}

// Vec3 is a bare 3D vector, used for points and directions.
// Like Vec2 and Vec4, a Vec3 is a value type; methods return modified copies, so they can be chained.
type Vec3 struct {
	X, Y, Z float64
}

// NewVec3 creates a new Vec3 with the components provided.
func NewVec3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Add returns a copy of the calling vector, added together with other.
func (vec Vec3) Add(other Vec3) Vec3 {
	vec.X += other.X
	vec.Y += other.Y
	vec.Z += other.Z
	return vec
}

// Sub returns a copy of the calling Vec3, with other subtracted from it.
func (vec Vec3) Sub(other Vec3) Vec3 {
	vec.X -= other.X
	vec.Y -= other.Y
	vec.Z -= other.Z
	return vec
}

// Scale returns a copy of the Vec3 with each component multiplied by scalar.
func (vec Vec3) Scale(scalar float64) Vec3 {
	vec.X *= scalar
	vec.Y *= scalar
	vec.Z *= scalar
	return vec
}

// Invert returns a copy of the Vec3 pointing the other way.
func (vec Vec3) Invert() Vec3 {
	vec.X = -vec.X
	vec.Y = -vec.Y
	vec.Z = -vec.Z
	return vec
}

// Dot returns the dot product of the calling Vec3 and other.
func (vec Vec3) Dot(other Vec3) float64 {
	return vec.X*other.X + vec.Y*other.Y + vec.Z*other.Z
}

// Cross returns the cross product of the calling Vec3 and other.
func (vec Vec3) Cross(other Vec3) Vec3 {

	ogVecY := vec.Y
	ogVecZ := vec.Z

	vec.Z = vec.X*other.Y - other.X*vec.Y
	vec.Y = ogVecZ*other.X - other.Z*vec.X
	vec.X = ogVecY*other.Z - other.Y*ogVecZ

	return vec

}

// Magnitude returns the length of the Vec3.
func (vec Vec3) Magnitude() float64 {
	return math.Sqrt(vec.X*vec.X + vec.Y*vec.Y + vec.Z*vec.Z)
}

// Unit returns a copy of the Vec3 normalized to unit length. Zero-length vectors are returned unchanged.
func (vec Vec3) Unit() Vec3 {
	l := vec.Magnitude()
	if l < 1e-12 {
		return vec
	}
	vec.X, vec.Y, vec.Z = vec.X/l, vec.Y/l, vec.Z/l
	return vec
}

// Lerp linearly interpolates between the calling Vec3 (t = 0) and other (t = 1).
func (vec Vec3) Lerp(other Vec3, t float64) Vec3 {
	vec.X += (other.X - vec.X) * t
	vec.Y += (other.Y - vec.Y) * t
	vec.Z += (other.Z - vec.Z) * t
	return vec
}

// Equals returns true if the two vectors are equal within a small tolerance.
func (vec Vec3) Equals(other Vec3) bool {
	eps := 1e-9
	return math.Abs(vec.X-other.X) <= eps && math.Abs(vec.Y-other.Y) <= eps && math.Abs(vec.Z-other.Z) <= eps
}

// XY drops the Z component.
func (vec Vec3) XY() Vec2 {
	return Vec2{vec.X, vec.Y}
}

// Get returns the component at index i (0 = X, 1 = Y, 2 = Z).
func (vec Vec3) Get(i int) float64 {
	switch i {
	case 0:
		return vec.X
	case 1:
		return vec.Y
	default:
		return vec.Z
	}
}

// IsFinite returns true if every component of the Vec3 is a finite number.
func (vec Vec3) IsFinite() bool {
	return isFinite(vec.X) && isFinite(vec.Y) && isFinite(vec.Z)
}

// Vec4 is a homogeneous vector; W is 1 for points and 0 for directions.
type Vec4 struct {
	X, Y, Z, W float64
}

// NewVec4 creates a new Vec4 with the components provided.
func NewVec4(x, y, z, w float64) Vec4 {
	return Vec4{X: x, Y: y, Z: z, W: w}
}

// Add returns the component-wise sum of the two vectors, W included.
func (vec Vec4) Add(other Vec4) Vec4 {
	vec.X += other.X
	vec.Y += other.Y
	vec.Z += other.Z
	vec.W += other.W
	return vec
}

// Get returns the component at index i (0 = X, 1 = Y, 2 = Z, 3 = W).
func (vec Vec4) Get(i int) float64 {
	switch i {
	case 0:
		return vec.X
	case 1:
		return vec.Y
	case 2:
		return vec.Z
	default:
		return vec.W
	}
}

// Set returns a copy of the Vec4 with the component at index i set to value.
func (vec Vec4) Set(i int, value float64) Vec4 {
	switch i {
	case 0:
		vec.X = value
	case 1:
		vec.Y = value
	case 2:
		vec.Z = value
	default:
		vec.W = value
	}
	return vec
}

// IsFinite returns true if every component of the Vec4 is a finite number.
func (vec Vec4) IsFinite() bool {
	return isFinite(vec.X) && isFinite(vec.Y) && isFinite(vec.Z) && isFinite(vec.W)
}

// Vec4To3 converts a homogeneous vector into a bare 3D one by dividing through by W.
func Vec4To3(v Vec4) Vec3 {
	inv := 1 / v.W
	return Vec3{v.X * inv, v.Y * inv, v.Z * inv}
}

// Vec3To4 lifts a 3D point into homogeneous coordinates, with W set to 1.
func Vec3To4(v Vec3) Vec4 {
	return Vec4{v.X, v.Y, v.Z, 1}
}
