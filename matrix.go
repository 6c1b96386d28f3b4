package frag3d

import (
	"math"
	"strconv"
)

// Mat4 represents a 4x4 transformation matrix. It is stored row-major (m[row][column]) and applied to
// column vectors, so transforms compose right to left: outer.Mult(local) applies local first.
type Mat4 [4][4]float64

// NewMat4 returns a new identity Mat4.
func NewMat4() Mat4 {
	return Mat4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// NewMat4Translate returns a new identity Mat4, but with the x, y, and z translation components set as provided.
func NewMat4Translate(x, y, z float64) Mat4 {
	mat := NewMat4()
	mat[0][3] = x
	mat[1][3] = y
	mat[2][3] = z
	return mat
}

// NewMat4Scale returns a new Mat4 scaling each axis by the factor provided. 1, 1, 1 is the identity.
func NewMat4Scale(x, y, z float64) Mat4 {
	mat := NewMat4()
	mat[0][0] = x
	mat[1][1] = y
	mat[2][2] = z
	return mat
}

// NewMat4Rotate returns a new Mat4 rotating counter-clockwise by angle (in radians) around the axis [x, y, z].
func NewMat4Rotate(x, y, z, angle float64) Mat4 {

	// Default to spinning on +Y axis if there is no valid axis
	if x == 0 && y == 0 && z == 0 {
		y = 1
	}

	axis := Vec3{x, y, z}.Unit()
	s := math.Sin(angle)
	c := math.Cos(angle)
	m := 1 - c

	mat := NewMat4()

	mat[0][0] = m*axis.X*axis.X + c
	mat[0][1] = m*axis.X*axis.Y - axis.Z*s
	mat[0][2] = m*axis.X*axis.Z + axis.Y*s

	mat[1][0] = m*axis.X*axis.Y + axis.Z*s
	mat[1][1] = m*axis.Y*axis.Y + c
	mat[1][2] = m*axis.Y*axis.Z - axis.X*s

	mat[2][0] = m*axis.X*axis.Z - axis.Y*s
	mat[2][1] = m*axis.Y*axis.Z + axis.X*s
	mat[2][2] = m*axis.Z*axis.Z + c

	return mat

}

// NewLookAt returns a view matrix for an eye at eye looking at target. The camera looks down its own -Z axis,
// with up giving the rough upwards direction.
func NewLookAt(eye, target, up Vec3) Mat4 {

	if eye.Equals(target) {
		return NewMat4Translate(-eye.X, -eye.Y, -eye.Z)
	}

	forward := target.Sub(eye).Unit()
	up = up.Unit()

	// If forward and up are parallel the basis collapses, so pick another up vector
	if math.Abs(forward.Dot(up)) > 1-1e-9 {
		if math.Abs(forward.Dot(VecX)) < 0.9 {
			up = VecX
		} else {
			up = VecZ
		}
	}

	right := forward.Cross(up).Unit()
	trueUp := right.Cross(forward)

	return Mat4{
		{right.X, right.Y, right.Z, -right.Dot(eye)},
		{trueUp.X, trueUp.Y, trueUp.Z, -trueUp.Dot(eye)},
		{-forward.X, -forward.Y, -forward.Z, forward.Dot(eye)},
		{0, 0, 0, 1},
	}

}

// NewProjectionPerspective generates a perspective projection Mat4. fovy is the vertical field of view in degrees,
// near and far the clipping planes, aspect the view's width divided by its height.
// Camera-space points in front of the camera (negative z) map to depths from 0 at the near plane to 1 at the far plane.
func NewProjectionPerspective(fovy, near, far, aspect float64) Mat4 {

	scale := 1 / math.Tan(fovy*math.Pi/360)

	return Mat4{
		{scale / aspect, 0, 0, 0},
		{0, scale, 0, 0},
		{0, 0, -far / (far - near), -far * near / (far - near)},
		{0, 0, -1, 0},
	}

}

// NewProjectionOrthographic generates an orthographic projection Mat4 showing the given right/left/top/bottom planes.
// Depth runs from 0 at the near plane to 1 at the far plane, like NewProjectionPerspective.
func NewProjectionOrthographic(near, far, right, left, top, bottom float64) Mat4 {
	return Mat4{
		{2 / (right - left), 0, 0, -(right + left) / (right - left)},
		{0, 2 / (top - bottom), 0, -(top + bottom) / (top - bottom)},
		{0, 0, -1 / (far - near), -near / (far - near)},
		{0, 0, 0, 1},
	}
}

// Mult multiplies the Mat4 by other, combining them; the result applies other first.
func (matrix Mat4) Mult(other Mat4) Mat4 {

	var newMat Mat4

	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			newMat[row][col] = matrix[row][0]*other[0][col] +
				matrix[row][1]*other[1][col] +
				matrix[row][2]*other[2][col] +
				matrix[row][3]*other[3][col]
		}
	}

	return newMat

}

// MultVec4 transforms the homogeneous vector provided.
func (matrix Mat4) MultVec4(v Vec4) Vec4 {
	return Vec4{
		X: matrix[0][0]*v.X + matrix[0][1]*v.Y + matrix[0][2]*v.Z + matrix[0][3]*v.W,
		Y: matrix[1][0]*v.X + matrix[1][1]*v.Y + matrix[1][2]*v.Z + matrix[1][3]*v.W,
		Z: matrix[2][0]*v.X + matrix[2][1]*v.Y + matrix[2][2]*v.Z + matrix[2][3]*v.W,
		W: matrix[3][0]*v.X + matrix[3][1]*v.Y + matrix[3][2]*v.Z + matrix[3][3]*v.W,
	}
}

// MultVec3 transforms the point provided (W taken as 1) and returns the result divided through by W.
func (matrix Mat4) MultVec3(v Vec3) Vec3 {
	return Vec4To3(matrix.MultVec4(Vec3To4(v)))
}

// Transposed returns a copy of the Mat4 with rows and columns swapped.
func (matrix Mat4) Transposed() Mat4 {

	var newMat Mat4

	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			newMat[i][j] = matrix[j][i]
		}
	}

	return newMat

}

// Inverted returns the inverse of the Mat4. A singular matrix yields non-finite entries.
func (matrix Mat4) Inverted() Mat4 {

	// 2x2 sub-determinants of the lower two rows (s) and upper two rows (c).
	s0 := matrix[0][0]*matrix[1][1] - matrix[1][0]*matrix[0][1]
	s1 := matrix[0][0]*matrix[1][2] - matrix[1][0]*matrix[0][2]
	s2 := matrix[0][0]*matrix[1][3] - matrix[1][0]*matrix[0][3]
	s3 := matrix[0][1]*matrix[1][2] - matrix[1][1]*matrix[0][2]
	s4 := matrix[0][1]*matrix[1][3] - matrix[1][1]*matrix[0][3]
	s5 := matrix[0][2]*matrix[1][3] - matrix[1][2]*matrix[0][3]

	c5 := matrix[2][2]*matrix[3][3] - matrix[3][2]*matrix[2][3]
	c4 := matrix[2][1]*matrix[3][3] - matrix[3][1]*matrix[2][3]
	c3 := matrix[2][1]*matrix[3][2] - matrix[3][1]*matrix[2][2]
	c2 := matrix[2][0]*matrix[3][3] - matrix[3][0]*matrix[2][3]
	c1 := matrix[2][0]*matrix[3][2] - matrix[3][0]*matrix[2][2]
	c0 := matrix[2][0]*matrix[3][1] - matrix[3][0]*matrix[2][1]

	invDet := 1 / (s0*c5 - s1*c4 + s2*c3 + s3*c2 - s4*c1 + s5*c0)

	var m Mat4

	m[0][0] = (matrix[1][1]*c5 - matrix[1][2]*c4 + matrix[1][3]*c3) * invDet
	m[0][1] = (-matrix[0][1]*c5 + matrix[0][2]*c4 - matrix[0][3]*c3) * invDet
	m[0][2] = (matrix[3][1]*s5 - matrix[3][2]*s4 + matrix[3][3]*s3) * invDet
	m[0][3] = (-matrix[2][1]*s5 + matrix[2][2]*s4 - matrix[2][3]*s3) * invDet

	m[1][0] = (-matrix[1][0]*c5 + matrix[1][2]*c2 - matrix[1][3]*c1) * invDet
	m[1][1] = (matrix[0][0]*c5 - matrix[0][2]*c2 + matrix[0][3]*c1) * invDet
	m[1][2] = (-matrix[3][0]*s5 + matrix[3][2]*s2 - matrix[3][3]*s1) * invDet
	m[1][3] = (matrix[2][0]*s5 - matrix[2][2]*s2 + matrix[2][3]*s1) * invDet

	m[2][0] = (matrix[1][0]*c4 - matrix[1][1]*c2 + matrix[1][3]*c0) * invDet
	m[2][1] = (-matrix[0][0]*c4 + matrix[0][1]*c2 - matrix[0][3]*c0) * invDet
	m[2][2] = (matrix[3][0]*s4 - matrix[3][1]*s2 + matrix[3][3]*s0) * invDet
	m[2][3] = (-matrix[2][0]*s4 + matrix[2][1]*s2 - matrix[2][3]*s0) * invDet

	m[3][0] = (-matrix[1][0]*c3 + matrix[1][1]*c1 - matrix[1][2]*c0) * invDet
	m[3][1] = (matrix[0][0]*c3 - matrix[0][1]*c1 + matrix[0][2]*c0) * invDet
	m[3][2] = (-matrix[3][0]*s3 + matrix[3][1]*s1 - matrix[3][2]*s0) * invDet
	m[3][3] = (matrix[2][0]*s3 - matrix[2][1]*s1 + matrix[2][2]*s0) * invDet

	return m

}

// Equals returns true if the matrix equals other within a small epsilon.
func (matrix Mat4) Equals(other Mat4) bool {

	eps := 1e-9
	for i := 0; i < len(matrix); i++ {
		for j := 0; j < len(matrix[i]); j++ {
			if math.Abs(matrix[i][j]-other[i][j]) > eps {
				return false
			}
		}
	}
	return true
}

// IsIdentity returns true if the matrix is (within epsilon) an identity matrix.
func (matrix Mat4) IsIdentity() bool {
	return matrix.Equals(NewMat4())
}

// IsFinite returns true if every entry of the matrix is a finite number.
func (matrix Mat4) IsFinite() bool {
	for i := range matrix {
		for j := range matrix[i] {
			if !isFinite(matrix[i][j]) {
				return false
			}
		}
	}
	return true
}

// String returns the matrix formatted over four lines.
func (matrix Mat4) String() string {
	s := "{"
	for i, y := range matrix {
		for j, x := range y {
			s += strconv.FormatFloat(x, 'f', -1, 64)
			if j < len(y)-1 {
				s += ", "
			}
		}
		if i < len(matrix)-1 {
			s += "\n"
		}
	}
	s += "}"
	return s
}
