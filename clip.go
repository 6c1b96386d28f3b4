package frag3d

import "math"

// Geometric tolerances for clipping and splitting, in projected units.
const (
	areaEpsilon  = 1e-12
	depthEpsilon = 1e-9
)

// clipVertex is a polygon vertex being clipped. P is the position the clip planes test (projected
// x, y and depth while splitting, local coordinates in a ClipContainer) and W is carried along with it.
type clipVertex struct {
	P, W Vec3
}

func (v clipVertex) lerp(other clipVertex, t float64) clipVertex {
	return clipVertex{P: v.P.Lerp(other.P, t), W: v.W.Lerp(other.W, t)}
}

// clipPlane is the half-space normal.P + offset >= 0.
type clipPlane struct {
	normal Vec3
	offset float64
}

func (p clipPlane) dist(v Vec3) float64 {
	return p.normal.Dot(v) + p.offset
}

func (p clipPlane) flipped() clipPlane {
	return clipPlane{normal: p.normal.Invert(), offset: -p.offset}
}

// clipPolygon clips a convex polygon to the inside of plane, Sutherland-Hodgman style.
func clipPolygon(poly []clipVertex, plane clipPlane) []clipVertex {

	if len(poly) == 0 {
		return nil
	}

	out := make([]clipVertex, 0, len(poly)+1)
	prev := poly[len(poly)-1]
	dp := plane.dist(prev.P)

	for _, cur := range poly {
		dc := plane.dist(cur.P)
		if (dp < 0 && dc > 0) || (dp > 0 && dc < 0) {
			out = append(out, prev.lerp(cur, dp/(dp-dc)))
		}
		if dc >= 0 {
			out = append(out, cur)
		}
		prev, dp = cur, dc
	}

	return out

}

// clipSegment clips the parameter range [0, 1] of the segment a-b against plane, returning the
// remaining range. An empty range has t0 >= t1.
func clipSegment(a, b Vec3, t0, t1 float64, plane clipPlane) (float64, float64) {
	da, db := plane.dist(a), plane.dist(b)
	switch {
	case da < 0 && db < 0:
		return 1, 0
	case da < 0:
		t0 = math.Max(t0, da/(da-db))
	case db < 0:
		t1 = math.Min(t1, da/(da-db))
	}
	return t0, t1
}

// edgePlanes2D returns the three half-planes (in projected x, y) whose intersection is the triangle,
// whatever its winding. ok is false for a degenerate triangle.
func edgePlanes2D(tri [3]Vec3) (planes [3]clipPlane, ok bool) {

	area := signedArea2D(tri[0], tri[1], tri[2])
	if math.Abs(area) <= areaEpsilon {
		return planes, false
	}

	for i := 0; i < 3; i++ {
		a, b := tri[i], tri[(i+1)%3]
		n := Vec3{X: -(b.Y - a.Y), Y: b.X - a.X}
		if area < 0 {
			n = n.Invert()
		}
		planes[i] = clipPlane{normal: n, offset: -(n.X*a.X + n.Y*a.Y)}
	}

	return planes, true

}

// signedArea2D is the signed x, y area of a triangle, positive when counter-clockwise.
func signedArea2D(a, b, c Vec3) float64 {
	return 0.5 * ((b.X-a.X)*(c.Y-a.Y) - (c.X-a.X)*(b.Y-a.Y))
}

// polygonArea2D is the unsigned x, y area of a polygon.
func polygonArea2D(poly []clipVertex) float64 {
	area := 0.0
	for i := 1; i+1 < len(poly); i++ {
		area += signedArea2D(poly[0].P, poly[i].P, poly[i+1].P)
	}
	return math.Abs(area)
}

// polygonCentroid2D returns the area centroid of a polygon in x, y.
func polygonCentroid2D(poly []clipVertex) Vec2 {
	var sum Vec2
	total := 0.0
	for i := 1; i+1 < len(poly); i++ {
		a := signedArea2D(poly[0].P, poly[i].P, poly[i+1].P)
		c := poly[0].P.XY().Add(poly[i].P.XY()).Add(poly[i+1].P.XY()).Scale(1.0 / 3)
		sum = sum.Add(c.Scale(a))
		total += a
	}
	if total == 0 {
		return poly[0].P.XY()
	}
	return sum.Scale(1 / total)
}

// fanTriangles splits a convex polygon into triangles around its first vertex, dropping slivers.
func fanTriangles(poly []clipVertex) [][3]clipVertex {
	var tris [][3]clipVertex
	for i := 1; i+1 < len(poly); i++ {
		tri := [3]clipVertex{poly[0], poly[i], poly[i+1]}
		if math.Abs(signedArea2D(tri[0].P, tri[1].P, tri[2].P)) > areaEpsilon {
			tris = append(tris, tri)
		}
	}
	return tris
}

// fanTriangles3D is fanTriangles for polygons clipped in 3D, where the x, y area may legitimately be zero.
func fanTriangles3D(poly []clipVertex) [][3]clipVertex {
	var tris [][3]clipVertex
	for i := 1; i+1 < len(poly); i++ {
		a, b, c := poly[0], poly[i], poly[i+1]
		if b.P.Sub(a.P).Cross(c.P.Sub(a.P)).Magnitude() > areaEpsilon {
			tris = append(tris, [3]clipVertex{a, b, c})
		}
	}
	return tris
}

// depthPlane is the depth of a projected triangle as a function of x and y.
type depthPlane struct {
	a, b, c float64
}

func newDepthPlane(tri [3]Vec3) (depthPlane, bool) {

	d1 := tri[1].Sub(tri[0])
	d2 := tri[2].Sub(tri[0])
	det := d1.X*d2.Y - d2.X*d1.Y
	if math.Abs(det) <= areaEpsilon {
		return depthPlane{}, false
	}

	a := (d1.Z*d2.Y - d2.Z*d1.Y) / det
	b := (d1.X*d2.Z - d2.X*d1.Z) / det
	return depthPlane{a: a, b: b, c: tri[0].Z - a*tri[0].X - b*tri[0].Y}, true

}

func (p depthPlane) at(x, y float64) float64 {
	return p.a*x + p.b*y + p.c
}

// minus returns the plane for the depth difference p - other.
func (p depthPlane) minus(other depthPlane) depthPlane {
	return depthPlane{a: p.a - other.a, b: p.b - other.b, c: p.c - other.c}
}

// asClipPlane turns the plane into the half-space where the depth is non-negative.
func (p depthPlane) asClipPlane() clipPlane {
	return clipPlane{normal: Vec3{X: p.a, Y: p.b}, offset: p.c}
}

func fragmentVertices(f *Fragment) []clipVertex {
	n := f.NPoints()
	verts := make([]clipVertex, n)
	for i := 0; i < n; i++ {
		verts[i] = clipVertex{P: f.Proj[i], W: f.Points[i]}
	}
	return verts
}
