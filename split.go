package frag3d

import "math"

// Overlap2D returns true if the projections of the two fragments overlap in x and y. Triangles have to
// share a positive area, a segment has to cross into a triangle or another segment, and a path's point
// has to lie inside a triangle.
func Overlap2D(f1, f2 *Fragment) bool {

	if f2.Type < f1.Type {
		f1, f2 = f2, f1
	}

	switch {

	case f1.Type == FragmentTriangle && f2.Type == FragmentTriangle:
		poly, ok := triangleOverlap(f1, f2)
		return ok && polygonArea2D(poly) > areaEpsilon

	case f1.Type == FragmentTriangle && f2.Type == FragmentLineSeg:
		_, _, ok := segmentInTriangle(f2, f1)
		return ok

	case f1.Type == FragmentTriangle && f2.Type == FragmentPath:
		return pointInTriangle(f1, f2.Proj[0])

	case f1.Type == FragmentLineSeg && f2.Type == FragmentLineSeg:
		_, _, ok := segmentCrossing(f1, f2)
		return ok

	}

	return false

}

// triangleOverlap clips the first triangle to the second, in projected coordinates.
func triangleOverlap(f1, f2 *Fragment) ([]clipVertex, bool) {
	planes, ok := edgePlanes2D(f2.Proj)
	if !ok {
		return nil, false
	}
	if _, ok := edgePlanes2D(f1.Proj); !ok {
		return nil, false
	}
	poly := fragmentVertices(f1)
	for _, plane := range planes {
		poly = clipPolygon(poly, plane)
	}
	return poly, len(poly) >= 3
}

// segmentInTriangle returns the parameter range of the segment lying inside the triangle.
func segmentInTriangle(seg, tri *Fragment) (t0, t1 float64, ok bool) {
	planes, ok := edgePlanes2D(tri.Proj)
	if !ok {
		return 0, 0, false
	}
	a, b := seg.Proj[0], seg.Proj[1]
	a.Z, b.Z = 0, 0
	t0, t1 = 0, 1
	for _, plane := range planes {
		t0, t1 = clipSegment(a, b, t0, t1, plane)
	}
	return t0, t1, t1-t0 > depthEpsilon
}

// segmentCrossing returns the parameters along each segment where the two cross in x and y.
// Parallel segments never cross.
func segmentCrossing(s1, s2 *Fragment) (t, u float64, ok bool) {
	p, r := s1.Proj[0].XY(), s1.Proj[1].XY().Sub(s1.Proj[0].XY())
	q, s := s2.Proj[0].XY(), s2.Proj[1].XY().Sub(s2.Proj[0].XY())
	denom := r.Cross(s)
	if math.Abs(denom) <= areaEpsilon {
		return 0, 0, false
	}
	qp := q.Sub(p)
	t = qp.Cross(s) / denom
	u = qp.Cross(r) / denom
	return t, u, t >= 0 && t <= 1 && u >= 0 && u <= 1
}

func pointInTriangle(tri *Fragment, p Vec3) bool {
	planes, ok := edgePlanes2D(tri.Proj)
	if !ok {
		return false
	}
	p.Z = 0
	for _, plane := range planes {
		if plane.dist(p) < 0 {
			return false
		}
	}
	return true
}

// fragmentLess is a total order over fragments' geometry, used to make pairwise operations
// independent of argument order.
func fragmentLess(f1, f2 *Fragment) bool {
	if f1.Type != f2.Type {
		return f1.Type < f2.Type
	}
	for i := 0; i < 3; i++ {
		for axis := 0; axis < 3; axis++ {
			a, b := f1.Proj[i].Get(axis), f2.Proj[i].Get(axis)
			if a != b {
				return a < b
			}
		}
	}
	return f1.Index < f2.Index
}

// OverlapDepth returns the depth of each fragment averaged over the region where their projections
// overlap, rather than over the whole fragment. Fragments that don't overlap give their mean depths.
// The result does not depend on the order of the arguments: OverlapDepth(f2, f1) returns the same
// depths swapped.
func OverlapDepth(f1, f2 *Fragment) (d1, d2 float64) {
	if fragmentLess(f2, f1) {
		d2, d1 = overlapDepth(f2, f1)
		return d1, d2
	}
	return overlapDepth(f1, f2)
}

func overlapDepth(f1, f2 *Fragment) (float64, float64) {

	swapped := false
	if f2.Type < f1.Type {
		f1, f2 = f2, f1
		swapped = true
	}

	d1, d2 := f1.MeanDepth(), f2.MeanDepth()

	switch {

	case f1.Type == FragmentTriangle && f2.Type == FragmentTriangle:
		poly, ok := triangleOverlap(f1, f2)
		plane1, ok1 := newDepthPlane(f1.Proj)
		plane2, ok2 := newDepthPlane(f2.Proj)
		if ok && ok1 && ok2 && polygonArea2D(poly) > areaEpsilon {
			c := polygonCentroid2D(poly)
			d1, d2 = plane1.at(c.X, c.Y), plane2.at(c.X, c.Y)
		}

	case f1.Type == FragmentTriangle && f2.Type == FragmentLineSeg:
		plane, okPlane := newDepthPlane(f1.Proj)
		t0, t1, ok := segmentInTriangle(f2, f1)
		if ok && okPlane {
			m := f2.Proj[0].Lerp(f2.Proj[1], 0.5*(t0+t1))
			d1, d2 = plane.at(m.X, m.Y), m.Z-LineDeltaDepth
		}

	case f1.Type == FragmentTriangle && f2.Type == FragmentPath:
		plane, okPlane := newDepthPlane(f1.Proj)
		if okPlane && pointInTriangle(f1, f2.Proj[0]) {
			d1 = plane.at(f2.Proj[0].X, f2.Proj[0].Y)
		}

	case f1.Type == FragmentLineSeg && f2.Type == FragmentLineSeg:
		if t, u, ok := segmentCrossing(f1, f2); ok {
			d1 = f1.Proj[0].Lerp(f1.Proj[1], t).Z - LineDeltaDepth
			d2 = f2.Proj[0].Lerp(f2.Proj[1], u).Z - LineDeltaDepth
		}

	}

	if swapped {
		return d2, d1
	}
	return d1, d2

}

// indexSource hands out creation indices for split pieces: from counter if given, otherwise
// counting on from the largest index among frags.
func indexSource(counter *IndexCounter, frags ...Fragment) func() uint64 {
	if counter != nil {
		return counter.Next
	}
	var next uint64
	for i := range frags {
		if frags[i].Index >= next {
			next = frags[i].Index + 1
		}
	}
	return func() uint64 {
		next++
		return next - 1
	}
}

// piece returns a copy of src with the given geometry, counted as a split of src.
func piece(src *Fragment, verts []clipVertex, nextIndex func() uint64) Fragment {
	f := *src
	f.Points = [3]Vec3{}
	f.Proj = [3]Vec3{}
	for i, v := range verts {
		f.Points[i] = v.W
		f.Proj[i] = v.P
	}
	f.SplitCount++
	f.Index = nextIndex()
	return f
}

func trianglePieces(src *Fragment, tris [][3]clipVertex, nextIndex func() uint64) []Fragment {
	out := make([]Fragment, 0, len(tris))
	for _, tri := range tris {
		out = append(out, piece(src, tri[:], nextIndex))
	}
	return out
}

// SplitFragments splits two fragments whose depth order over their 2D overlap is ambiguous, so that
// each resulting piece is either entirely in front of or entirely behind the other fragment's pieces.
// It returns the pieces of f1 followed by the pieces of f2, and the number of pieces from each.
//
// Two triangles are both cut along the line where their depths are equal, when that line crosses
// their overlap. A segment is cut where it passes through the depth of a triangle it overlaps. Any
// other pair, fragments from the same object, disjoint or degenerate fragments, and pairs with a
// clear depth order are returned unchanged, as [f1, f2], 1, 1.
//
// Pieces keep the object and styles of their source, have their SplitCount incremented and get a new
// index from counter; with a nil counter, indices continue on from the larger of the two inputs'.
// The world points of pieces are interpolated linearly in projected coordinates, which is exact
// only for affine projections; see Fragment.UpdateProjCoords.
func SplitFragments(counter *IndexCounter, f1, f2 Fragment) ([]Fragment, int, int) {

	unchanged := []Fragment{f1, f2}

	if f1.Object != nil && f1.Object == f2.Object {
		return unchanged, 1, 1
	}

	switch {

	case f1.Type == FragmentTriangle && f2.Type == FragmentTriangle:
		if out, n1, n2, ok := splitTriangles(counter, &f1, &f2); ok {
			return out, n1, n2
		}

	case f1.Type == FragmentLineSeg && f2.Type == FragmentTriangle:
		if pieces, ok := splitSegment(counter, &f1, &f2); ok {
			return append(pieces, f2), len(pieces), 1
		}

	case f1.Type == FragmentTriangle && f2.Type == FragmentLineSeg:
		if pieces, ok := splitSegment(counter, &f2, &f1); ok {
			return append([]Fragment{f1}, pieces...), 1, len(pieces)
		}

	}

	return unchanged, 1, 1

}

func splitTriangles(counter *IndexCounter, f1, f2 *Fragment) ([]Fragment, int, int, bool) {

	poly, ok := triangleOverlap(f1, f2)
	if !ok || polygonArea2D(poly) <= areaEpsilon {
		return nil, 0, 0, false
	}

	plane1, ok1 := newDepthPlane(f1.Proj)
	plane2, ok2 := newDepthPlane(f2.Proj)
	if !ok1 || !ok2 {
		return nil, 0, 0, false
	}

	diff := plane1.minus(plane2)
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range poly {
		d := diff.at(v.P.X, v.P.Y)
		lo = math.Min(lo, d)
		hi = math.Max(hi, d)
	}
	if lo >= -depthEpsilon || hi <= depthEpsilon {
		return nil, 0, 0, false
	}

	nextIndex := indexSource(counter, *f1, *f2)
	cut := diff.asClipPlane()

	var out []Fragment
	n1 := 0
	for i, f := range [2]*Fragment{f1, f2} {
		verts := fragmentVertices(f)
		for _, plane := range [2]clipPlane{cut, cut.flipped()} {
			out = append(out, trianglePieces(f, fanTriangles(clipPolygon(verts, plane)), nextIndex)...)
		}
		if i == 0 {
			n1 = len(out)
		}
	}

	n2 := len(out) - n1
	if n1 == 0 || n2 == 0 {
		return nil, 0, 0, false
	}

	return out, n1, n2, true

}

// splitSegment cuts the segment where it crosses the triangle's depth within the triangle's outline.
func splitSegment(counter *IndexCounter, seg, tri *Fragment) ([]Fragment, bool) {

	t0, t1, ok := segmentInTriangle(seg, tri)
	plane, okPlane := newDepthPlane(tri.Proj)
	if !ok || !okPlane {
		return nil, false
	}

	// depth difference along the segment, linear in t
	diffAt := func(t float64) float64 {
		p := seg.Proj[0].Lerp(seg.Proj[1], t)
		return p.Z - LineDeltaDepth - plane.at(p.X, p.Y)
	}
	g0, g1 := diffAt(t0), diffAt(t1)
	if !(g0 < -depthEpsilon && g1 > depthEpsilon) && !(g0 > depthEpsilon && g1 < -depthEpsilon) {
		return nil, false
	}

	tc := t0 + (t1-t0)*g0/(g0-g1)
	if tc <= depthEpsilon || tc >= 1-depthEpsilon {
		return nil, false
	}

	nextIndex := indexSource(counter, *seg, *tri)
	verts := fragmentVertices(seg)
	mid := verts[0].lerp(verts[1], tc)

	return []Fragment{
		piece(seg, []clipVertex{verts[0], mid}, nextIndex),
		piece(seg, []clipVertex{mid, verts[1]}, nextIndex),
	}, true

}

// SplitOn2DOverlap resolves the overlap of two triangles frags[idx1] and frags[idx2] by carving out
// their common region. The common region is kept with the nearer triangle's depths and styles, along
// with what is left of each triangle outside it. The part of the farther triangle hidden behind the
// nearer one is dropped.
//
// The first piece of each triangle replaces it in frags; further pieces are appended, those of
// frags[idx1] first. A triangle left without pieces is replaced by a FragmentNone fragment. The
// counts of pieces from each input are returned along with the updated slice. Non-triangles, same
// object pairs and triangles without a common area are left as they are, with counts of 1.
func SplitOn2DOverlap(counter *IndexCounter, frags []Fragment, idx1, idx2 int) ([]Fragment, int, int) {

	f1, f2 := &frags[idx1], &frags[idx2]
	if f1.Type != FragmentTriangle || f2.Type != FragmentTriangle || idx1 == idx2 {
		return frags, 1, 1
	}
	if f1.Object != nil && f1.Object == f2.Object {
		return frags, 1, 1
	}

	d1, d2 := OverlapDepth(f1, f2)
	near, far := f1, f2
	if d2 < d1 {
		near, far = f2, f1
	}

	common, ok := triangleOverlap(near, far)
	if !ok || polygonArea2D(common) <= areaEpsilon {
		return frags, 1, 1
	}

	nextIndex := indexSource(counter, frags...)

	nearPieces := trianglePieces(near, fanTriangles(common), nextIndex)
	nearPieces = append(nearPieces, trianglePieces(near, triangleDifference(near, far), nextIndex)...)
	farPieces := trianglePieces(far, triangleDifference(far, near), nextIndex)

	pieces1, pieces2 := nearPieces, farPieces
	if near != f1 {
		pieces1, pieces2 = farPieces, nearPieces
	}

	place := func(idx int, pieces []Fragment) {
		if len(pieces) == 0 {
			frags[idx] = Fragment{Type: FragmentNone, Object: frags[idx].Object, Index: nextIndex()}
			return
		}
		frags[idx] = pieces[0]
	}
	place(idx1, pieces1)
	place(idx2, pieces2)

	if len(pieces1) > 1 {
		frags = append(frags, pieces1[1:]...)
	}
	if len(pieces2) > 1 {
		frags = append(frags, pieces2[1:]...)
	}

	return frags, len(pieces1), len(pieces2)

}

// triangleDifference returns the part of f outside triangle g as triangles. Successive pieces lie
// outside one edge of g and inside the edges before it, so they don't overlap.
func triangleDifference(f, g *Fragment) [][3]clipVertex {

	planes, ok := edgePlanes2D(g.Proj)
	if !ok {
		return fanTriangles(fragmentVertices(f))
	}

	var tris [][3]clipVertex
	remaining := fragmentVertices(f)
	for _, plane := range planes {
		if len(remaining) < 3 {
			break
		}
		tris = append(tris, fanTriangles(clipPolygon(remaining, plane.flipped()))...)
		remaining = clipPolygon(remaining, plane)
	}
	return tris

}
