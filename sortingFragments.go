package frag3d

import (
	"container/heap"
	"math"

	"github.com/dhconnelly/rtreego"
)

// SortOptions controls how SortFragments orders and splits fragments.
type SortOptions struct {
	// Split enables splitting fragments whose depth order is ambiguous where they overlap.
	Split bool
	// MaxSplits is the number of times a fragment (and its pieces) may be split, bounding the work
	// done on tangled geometry.
	MaxSplits int
	// MarkerExtent is how far a path fragment of PathSize 1 reaches from its point, in projected
	// units. Markers and labels within this distance of another fragment are ordered against it.
	MarkerExtent float64
}

// DefaultSortOptions returns the default options for sorting: splitting on, up to 3 splits per
// fragment, and markers reaching 0.02 projected units.
func DefaultSortOptions() *SortOptions {
	return &SortOptions{
		Split:        true,
		MaxSplits:    3,
		MarkerExtent: 0.02,
	}
}

// boundsPadding keeps bounding rectangles of points and axis-aligned segments from being empty.
const boundsPadding = 1e-9

// sortingFragment is a fragment's entry in the broad phase R-tree.
type sortingFragment struct {
	id     int
	bounds rtreego.Rect
}

func (sf *sortingFragment) Bounds() rtreego.Rect {
	return sf.bounds
}

func fragmentBounds(f *Fragment, pad float64) (rtreego.Rect, error) {
	n := f.NPoints()
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for i := 0; i < n; i++ {
		minX = math.Min(minX, f.Proj[i].X)
		minY = math.Min(minY, f.Proj[i].Y)
		maxX = math.Max(maxX, f.Proj[i].X)
		maxY = math.Max(maxY, f.Proj[i].Y)
	}
	pad += boundsPadding
	return rtreego.NewRect(
		rtreego.Point{minX - pad, minY - pad},
		[]float64{maxX - minX + 2*pad, maxY - minY + 2*pad},
	)
}

// fragmentSorter holds the working state of a SortFragments call.
type fragmentSorter struct {
	frags   []Fragment
	entries []*sortingFragment // nil for fragments removed by splitting
	tree    *rtreego.Rtree
	counter *IndexCounter
	opts    *SortOptions
}

// reach is how far a fragment extends past its points on screen: markers and labels cover an area
// around their single point.
func (s *fragmentSorter) reach(f *Fragment) float64 {
	if f.Type != FragmentPath {
		return 0
	}
	size := f.PathSize
	if size <= 0 {
		size = 1
	}
	return math.Max(s.opts.MarkerExtent*size, 0)
}

func (s *fragmentSorter) add(f Fragment) int {
	id := len(s.frags)
	s.frags = append(s.frags, f)
	bounds, err := fragmentBounds(&f, s.reach(&f))
	if err != nil {
		// only non-finite coordinates get here, and emission filters those out
		Logger().Debug("fragment has no bounds", "index", f.Index, "error", err)
		s.entries = append(s.entries, nil)
		return id
	}
	entry := &sortingFragment{id: id, bounds: bounds}
	s.entries = append(s.entries, entry)
	s.tree.Insert(entry)
	return id
}

func (s *fragmentSorter) remove(id int) {
	if entry := s.entries[id]; entry != nil {
		s.tree.Delete(entry)
		s.entries[id] = nil
	}
}

// candidates returns the ids of live fragments whose bounds intersect those of id.
func (s *fragmentSorter) candidates(id int) []int {
	entry := s.entries[id]
	if entry == nil {
		return nil
	}
	var ids []int
	for _, sp := range s.tree.SearchIntersect(entry.bounds) {
		if other := sp.(*sortingFragment); other.id != id {
			ids = append(ids, other.id)
		}
	}
	return ids
}

// depthRangesOverlap returns true if neither fragment lies completely in front of the other.
func depthRangesOverlap(f1, f2 *Fragment) bool {
	return f1.MinDepth() < f2.MaxDepth() && f2.MinDepth() < f1.MaxDepth()
}

// screenOverlap is Overlap2D with path fragments widened to discs of their reach, so markers and
// labels are ordered against lines, surfaces and each other.
func (s *fragmentSorter) screenOverlap(f1, f2 *Fragment) bool {

	if f1.Type != FragmentPath && f2.Type != FragmentPath {
		return Overlap2D(f1, f2)
	}
	if f1.Type == FragmentPath {
		f1, f2 = f2, f1
	}

	p := f2.Proj[0].XY()
	r := s.reach(f2)

	switch f1.Type {
	case FragmentPath:
		d := p.Sub(f1.Proj[0].XY())
		return math.Hypot(d.X, d.Y) <= r+s.reach(f1)
	case FragmentLineSeg:
		_, dist := closestOnSegment2D(p, f1.Proj[0].XY(), f1.Proj[1].XY())
		return dist <= r
	case FragmentTriangle:
		if pointInTriangle(f1, f2.Proj[0]) {
			return true
		}
		for i := 0; i < 3; i++ {
			if _, dist := closestOnSegment2D(p, f1.Proj[i].XY(), f1.Proj[(i+1)%3].XY()); dist <= r {
				return true
			}
		}
	}

	return false

}

// closestOnSegment2D returns the parameter of the point on segment a-b closest to p, and its distance.
func closestOnSegment2D(p, a, b Vec2) (t, dist float64) {
	ab := b.Sub(a)
	if l2 := ab.Dot(ab); l2 > 0 {
		t = clamp(p.Sub(a).Dot(ab)/l2, 0, 1)
	}
	d := p.Sub(a.Add(ab.Scale(t)))
	return t, math.Hypot(d.X, d.Y)
}

// pathDepths returns the depth of other next to the path fragment's point, and the path's depth.
func pathDepths(other, path *Fragment) (float64, float64) {
	p := path.Proj[0]
	switch other.Type {
	case FragmentLineSeg:
		t, _ := closestOnSegment2D(p.XY(), other.Proj[0].XY(), other.Proj[1].XY())
		return other.Proj[0].Lerp(other.Proj[1], t).Z - LineDeltaDepth, path.MeanDepth()
	case FragmentTriangle:
		if plane, ok := newDepthPlane(other.Proj); ok {
			return clamp(plane.at(p.X, p.Y), other.MinDepth(), other.MaxDepth()), path.MeanDepth()
		}
	}
	return other.MeanDepth(), path.MeanDepth()
}

// paintOrder compares two fragments that overlap on screen: 1 if f1 is farther and is painted first,
// -1 if f2 is, 0 if neither. Fragments with separate depth ranges are ordered by those ranges;
// otherwise by their depths where they overlap, or next to a marker's point.
func paintOrder(f1, f2 *Fragment) int {
	var d1, d2 float64
	switch {
	case !depthRangesOverlap(f1, f2):
		d1, d2 = f1.MeanDepth(), f2.MeanDepth()
	case f1.Type == FragmentPath && f2.Type != FragmentPath:
		d2, d1 = pathDepths(f2, f1)
	case f2.Type == FragmentPath && f1.Type != FragmentPath:
		d1, d2 = pathDepths(f1, f2)
	default:
		d1, d2 = OverlapDepth(f1, f2)
	}
	switch {
	case d1 > d2+depthEpsilon:
		return 1
	case d2 > d1+depthEpsilon:
		return -1
	}
	return 0
}

func (s *fragmentSorter) split(maxSplits int) {

	queue := make([]int, 0, len(s.frags))
	for id := range s.frags {
		queue = append(queue, id)
	}

	for len(queue) > 0 {

		id := queue[0]
		queue = queue[1:]

		if s.entries[id] == nil || s.frags[id].SplitCount >= maxSplits {
			continue
		}

		for _, other := range s.candidates(id) {

			if s.entries[other] == nil {
				continue
			}
			f1, f2 := &s.frags[id], &s.frags[other]
			if f2.SplitCount >= maxSplits || (f1.Object != nil && f1.Object == f2.Object) {
				continue
			}
			if !depthRangesOverlap(f1, f2) || !Overlap2D(f1, f2) {
				continue
			}

			pieces, n1, n2 := SplitFragments(s.counter, *f1, *f2)
			if n1+n2 == 2 && pieces[0].Index == f1.Index && pieces[1].Index == f2.Index {
				continue
			}

			replaced := false
			for side, span := range [2][2]int{{0, n1}, {n1, n1 + n2}} {
				orig := id
				if side == 1 {
					orig = other
				}
				sidePieces := pieces[span[0]:span[1]]
				if len(sidePieces) == 1 && sidePieces[0].Index == s.frags[orig].Index {
					continue
				}
				s.remove(orig)
				for _, p := range sidePieces {
					queue = append(queue, s.add(p))
				}
				if orig == id {
					replaced = true
				}
			}

			if replaced {
				break
			}

		}

	}

}

// sortingNode is a fragment waiting in the ready queue of the topological sort.
type sortingNode struct {
	id    int
	depth float64
	index uint64
}

// readyQueue pops the farthest fragment first, then the oldest.
type readyQueue []sortingNode

func (q readyQueue) Len() int { return len(q) }
func (q readyQueue) Less(i, j int) bool {
	if q[i].depth != q[j].depth {
		return q[i].depth > q[j].depth
	}
	return q[i].index < q[j].index
}
func (q readyQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }
func (q *readyQueue) Push(x any)   { *q = append(*q, x.(sortingNode)) }
func (q *readyQueue) Pop() any {
	old := *q
	n := old[len(old)-1]
	*q = old[:len(old)-1]
	return n
}

// order returns the live fragments in painting order. Where two fragments overlap on screen, the
// farther one goes first; everything else (and any cycle) is ordered by mean depth.
func (s *fragmentSorter) order() []Fragment {

	live := make([]int, 0, len(s.frags))
	for id := range s.frags {
		if s.entries[id] != nil {
			live = append(live, id)
		}
	}

	after := make(map[int][]int, len(live))
	inDegree := make(map[int]int, len(live))

	for _, id := range live {
		for _, other := range s.candidates(id) {
			if other < id {
				continue // every pair once
			}
			f1, f2 := &s.frags[id], &s.frags[other]
			if !s.screenOverlap(f1, f2) {
				continue
			}
			switch paintOrder(f1, f2) {
			case 1:
				after[id] = append(after[id], other)
				inDegree[other]++
			case -1:
				after[other] = append(after[other], id)
				inDegree[id]++
			}
		}
	}

	node := func(id int) sortingNode {
		return sortingNode{id: id, depth: s.frags[id].MeanDepth(), index: s.frags[id].Index}
	}

	ready := &readyQueue{}
	for _, id := range live {
		if inDegree[id] == 0 {
			*ready = append(*ready, node(id))
		}
	}
	heap.Init(ready)

	done := make(map[int]bool, len(live))
	out := make([]Fragment, 0, len(live))

	for len(out) < len(live) {

		if ready.Len() == 0 {
			// a cycle: release the farthest remaining fragment
			var best *sortingNode
			for _, id := range live {
				if done[id] {
					continue
				}
				if n := node(id); best == nil || (readyQueue{n, *best}).Less(0, 1) {
					best = &n
				}
			}
			inDegree[best.id] = 0
			heap.Push(ready, *best)
		}

		n := heap.Pop(ready).(sortingNode)
		if done[n.id] {
			continue
		}
		done[n.id] = true
		out = append(out, s.frags[n.id])

		for _, next := range after[n.id] {
			if done[next] {
				continue
			}
			inDegree[next]--
			if inDegree[next] == 0 {
				heap.Push(ready, node(next))
			}
		}

	}

	return out

}

// SortFragments returns the fragments in the order they should be painted, farthest first. Empty
// fragments are dropped. With splitting enabled, overlapping fragments from different objects with an
// ambiguous depth order are split first, with new indices taken from counter (which may be nil).
func SortFragments(counter *IndexCounter, frags []Fragment, opts *SortOptions) []Fragment {

	if opts == nil {
		opts = DefaultSortOptions()
	}

	s := &fragmentSorter{
		frags:   make([]Fragment, 0, len(frags)),
		tree:    rtreego.NewTree(2, 25, 50),
		counter: counter,
		opts:    opts,
	}

	for _, f := range frags {
		if f.Type != FragmentNone {
			s.add(f)
		}
	}

	if s.counter == nil {
		s.counter = &IndexCounter{}
		var next uint64
		for _, f := range frags {
			next = max(next, f.Index+1)
		}
		s.counter.next.Store(next)
	}

	if opts.Split {
		s.split(opts.MaxSplits)
	}

	return s.order()

}
