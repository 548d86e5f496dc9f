package floord

import (
	"github.com/paulmach/orb"
	"golang.org/x/exp/slices"
)

// isSimpleRing checks that the edges of a closed point loop only meet at
// shared vertices of neighboring edges, and that no vertex doubles back on
// its incoming edge.
//
// The points are an open list, i.e. the last edge connects the last point
// back to the first.
func isSimpleRing(points []orb.Point) bool {
	n := len(points)
	if n < 3 {
		return false
	}

	type edge struct {
		Index int
		A, B  orb.Point
		Bound orb.Bound
	}
	edges := make([]edge, n)
	for i := range edges {
		a, b := points[i], points[(i+1)%n]
		if a == b {
			return false
		}
		edges[i] = edge{Index: i, A: a, B: b, Bound: orb.Bound{Min: a, Max: a}.Extend(b)}
	}

	for i := range edges {
		e1, e2 := edges[i], edges[(i+1)%n]
		if orientation(e1.A, e1.B, e2.B) == 0 {
			d1 := sub(e1.B, e1.A)
			d2 := sub(e2.B, e2.A)
			if d1[0]*d2[0]+d1[1]*d2[1] < 0 {
				return false
			}
		}
	}

	// Sweep along x so that only edges with overlapping extents are compared.
	slices.SortFunc(edges, func(a, b edge) bool {
		return a.Bound.Min[0] < b.Bound.Min[0]
	})
	for i, e1 := range edges {
		for _, e2 := range edges[i+1:] {
			if e2.Bound.Min[0] > e1.Bound.Max[0] {
				break
			}
			if adjacentEdges(e1.Index, e2.Index, n) {
				continue
			}
			if !e1.Bound.Intersects(e2.Bound) {
				continue
			}
			if segmentsTouch(e1.A, e1.B, e2.A, e2.B) {
				return false
			}
		}
	}
	return true
}

func adjacentEdges(i, j, n int) bool {
	return (i+1)%n == j || (j+1)%n == i
}

// orientation is positive when c lies to the left of the direction from a to
// b, negative when it lies to the right, and zero when the points are
// collinear.
func orientation(a, b, c orb.Point) float64 {
	return (b[0]-a[0])*(c[1]-a[1]) - (b[1]-a[1])*(c[0]-a[0])
}

func segmentsTouch(p1, p2, q1, q2 orb.Point) bool {
	d1 := orientation(q1, q2, p1)
	d2 := orientation(q1, q2, p2)
	d3 := orientation(p1, p2, q1)
	d4 := orientation(p1, p2, q2)
	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}
	return (d1 == 0 && onSegment(q1, q2, p1)) ||
		(d2 == 0 && onSegment(q1, q2, p2)) ||
		(d3 == 0 && onSegment(p1, p2, q1)) ||
		(d4 == 0 && onSegment(p1, p2, q2))
}

// onSegment checks if a point known to be collinear with a segment lies
// within the segment's extent.
func onSegment(a, b, p orb.Point) bool {
	return orb.Bound{Min: a, Max: a}.Extend(b).Contains(p)
}
