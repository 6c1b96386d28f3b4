package frag3d

import (
	"errors"
	"fmt"
)

var (
	ErrDataMeshAxes = errors.New("datamesh axis indices must be a permutation of 0, 1 and 2")
	ErrDataMeshSize = errors.New("datamesh values do not match its edges")
)

// DataMesh draws a smoothed surface for gridded data: one value per cell, with the cells bounded by
// Edges1 and Edges2. Each cell is drawn from a 9 point stencil (4 corners, 4 edge midpoints and the
// center) whose heights are averaged from the neighboring cells.
type DataMesh struct {
	Edges1, Edges2 []float64
	// Values holds one value per cell, Values[i1*(len(Edges2)-1)+i2].
	Values []float64

	// Vector component indices for the value and the two edge coordinates. They must be a permutation of 0, 1, 2.
	IdxVal, IdxEdge1, IdxEdge2 int

	// HighRes draws each cell as 8 triangles around its center, rather than 2 triangles.
	HighRes bool

	Line    *LineProp
	Surface *SurfaceProp

	HideLines1 bool // Don't draw cell edges running along Edges1
	HideLines2 bool // Don't draw cell edges running along Edges2
}

// NewDataMesh creates a DataMesh for the cell edges and values given.
func NewDataMesh(edges1, edges2, values []float64, idxVal, idxEdge1, idxEdge2 int, highRes bool, line *LineProp, surface *SurfaceProp) *DataMesh {
	return &DataMesh{
		Edges1:   edges1,
		Edges2:   edges2,
		Values:   values,
		IdxVal:   idxVal,
		IdxEdge1: idxEdge1,
		IdxEdge2: idxEdge2,
		HighRes:  highRes,
		Line:     line,
		Surface:  surface,
	}
}

func (dm *DataMesh) Type() ObjectType { return ObjectTypeDataMesh }

func (dm *DataMesh) isObject() {}

// Stencil points 0-7 go around the cell starting at the (low, low) corner, first along Edges2;
// point 8 is the center.
var (
	dataMeshTrisHighRes = [][3]int{{8, 0, 1}, {8, 1, 2}, {8, 2, 3}, {8, 3, 4}, {8, 4, 5}, {8, 5, 6}, {8, 6, 7}, {8, 7, 0}}
	dataMeshTrisLowRes  = [][3]int{{0, 2, 4}, {0, 6, 4}}

	dataMeshLinesHighRes = []dataMeshLine{
		{0, 1, 0, 0, 0}, {1, 2, 0, 0, 1},
		{2, 3, 0, 1, 2}, {3, 4, 0, 1, 3},
		{4, 5, 1, 0, 1}, {5, 6, 1, 0, 0},
		{6, 7, 0, 0, 3}, {7, 0, 0, 0, 2},
	}
	dataMeshLinesLowRes = []dataMeshLine{
		{0, 2, 0, 0, 0},
		{2, 4, 0, 1, 2},
		{4, 6, 1, 0, 0},
		{6, 0, 0, 0, 2},
	}
)

// dataMeshLine is a line between two stencil points. The line is owned by the grid vertex offset by
// (d1, d2) from the cell's low corner, under bit: bits 0 and 1 are the first and second halves of the
// edge leaving the vertex along Edges2, bits 2 and 3 the halves of the edge along Edges1.
type dataMeshLine struct {
	a, b   int
	d1, d2 int
	bit    uint
}

func (l dataMeshLine) alongEdges2() bool { return l.bit < 2 }

// lineCellTracker remembers which (half) edges have been drawn, so edges shared by two cells are drawn once.
type lineCellTracker struct {
	n2   int
	data []uint8
}

func newLineCellTracker(n1, n2 int) *lineCellTracker {
	return &lineCellTracker{n2: n2, data: make([]uint8, n1*n2)}
}

func (t *lineCellTracker) setLine(i1, i2 int, bit uint) {
	t.data[i1*t.n2+i2] |= 1 << bit
}

func (t *lineCellTracker) isLineSet(i1, i2 int, bit uint) bool {
	return t.data[i1*t.n2+i2]&(1<<bit) != 0
}

// average4 averages the finite values given. With no finite values the result is NaN.
func average4(a, b, c, d float64) float64 {
	sum, count := 0.0, 0.0
	for _, v := range [4]float64{a, b, c, d} {
		if isFinite(v) {
			sum += v
			count++
		}
	}
	return sum / count
}

// average2 is average4 for two values.
func average2(a, b float64) float64 {
	sum, count := 0.0, 0.0
	for _, v := range [2]float64{a, b} {
		if isFinite(v) {
			sum += v
			count++
		}
	}
	return sum / count
}

func (dm *DataMesh) validate() error {

	var found [3]bool
	for _, idx := range [3]int{dm.IdxVal, dm.IdxEdge1, dm.IdxEdge2} {
		if idx >= 0 && idx <= 2 {
			found[idx] = true
		}
	}
	if !found[0] || !found[1] || !found[2] {
		return fmt.Errorf("%w: got %d, %d, %d", ErrDataMeshAxes, dm.IdxVal, dm.IdxEdge1, dm.IdxEdge2)
	}

	if len(dm.Edges1) < 2 || len(dm.Edges2) < 2 || (len(dm.Edges1)-1)*(len(dm.Edges2)-1) != len(dm.Values) {
		return fmt.Errorf("%w: %d values for %d x %d edges", ErrDataMeshSize, len(dm.Values), len(dm.Edges1), len(dm.Edges2))
	}

	return nil

}

// AppendFragments emits each cell with a finite value. A misconfigured DataMesh is logged and emits nothing.
func (dm *DataMesh) AppendFragments(outerM Mat4, cam *Camera, out *FragmentList) {

	if err := dm.validate(); err != nil {
		Logger().Warn("skipping datamesh", "error", err)
		return
	}

	if dm.Line == nil && dm.Surface == nil {
		return
	}

	ft := Fragment{
		Type:    FragmentTriangle,
		Object:  dm,
		Surface: dm.Surface,
	}
	fl := Fragment{
		Type:   FragmentLineSeg,
		Object: dm,
		Line:   dm.Line,
	}

	tris, lines := dataMeshTrisLowRes, dataMeshLinesLowRes
	if dm.HighRes {
		tris, lines = dataMeshTrisHighRes, dataMeshLinesHighRes
	}

	n1 := len(dm.Edges1) - 1
	n2 := len(dm.Edges2) - 1
	tracker := newLineCellTracker(n1+1, n2+1)

	var neigh [9]float64
	var heights [9]float64
	var pts [9]Vec3
	var proj [9]Vec3

	for i1 := 0; i1 < n1; i1++ {
		for i2 := 0; i2 < n2; i2++ {

			if !isFinite(dm.Values[i1*n2+i2]) {
				continue
			}

			// values of the 3x3 neighborhood, clamped at the grid's edges
			for d1 := -1; d1 <= 1; d1++ {
				for d2 := -1; d2 <= 1; d2++ {
					c1 := clamp(i1+d1, 0, n1-1)
					c2 := clamp(i2+d2, 0, n2-1)
					neigh[(d1+1)*3+(d2+1)] = dm.Values[c1*n2+c2]
				}
			}

			heights[0] = average4(neigh[0], neigh[1], neigh[3], neigh[4])
			heights[1] = average2(neigh[1], neigh[4])
			heights[2] = average4(neigh[1], neigh[2], neigh[4], neigh[5])
			heights[3] = average2(neigh[4], neigh[5])
			heights[4] = average4(neigh[4], neigh[5], neigh[7], neigh[8])
			heights[5] = average2(neigh[4], neigh[7])
			heights[6] = average4(neigh[3], neigh[4], neigh[6], neigh[7])
			heights[7] = average2(neigh[3], neigh[4])
			heights[8] = neigh[4]

			lo1, hi1 := dm.Edges1[i1], dm.Edges1[i1+1]
			lo2, hi2 := dm.Edges2[i2], dm.Edges2[i2+1]
			mid1, mid2 := 0.5*(lo1+hi1), 0.5*(lo2+hi2)

			edgeCoords := [9][2]float64{
				{lo1, lo2}, {lo1, mid2}, {lo1, hi2}, {mid1, hi2},
				{hi1, hi2}, {hi1, mid2}, {hi1, lo2}, {mid1, lo2},
				{mid1, mid2},
			}

			for i := range edgeCoords {
				pt := Vec4{W: 1}
				pt = pt.Set(dm.IdxVal, heights[i])
				pt = pt.Set(dm.IdxEdge1, edgeCoords[i][0])
				pt = pt.Set(dm.IdxEdge2, edgeCoords[i][1])
				pts[i], proj[i] = transformPoint(outerM, cam, pt)
			}

			if dm.Surface != nil {
				for _, tri := range tris {
					for j, idx := range tri {
						ft.Points[j] = pts[idx]
						ft.Proj[j] = proj[idx]
					}
					if triangleFinite(&ft) {
						out.Append(ft)
					}
				}
			}

			if dm.Line != nil {
				for _, line := range lines {

					if (line.alongEdges2() && dm.HideLines2) || (!line.alongEdges2() && dm.HideLines1) {
						continue
					}

					v1, v2 := i1+line.d1, i2+line.d2
					if tracker.isLineSet(v1, v2, line.bit) {
						continue
					}

					fl.Points[0], fl.Proj[0] = pts[line.a], proj[line.a]
					fl.Points[1], fl.Proj[1] = pts[line.b], proj[line.b]
					if segmentFinite(&fl) {
						out.Append(fl)
						tracker.setLine(v1, v2, line.bit)
					}

				}
			}

		}
	}

}
