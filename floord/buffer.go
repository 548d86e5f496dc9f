package floord

import (
	"math"

	"github.com/paulmach/orb"
)

// Number of arc segments used to round a quarter turn.
const bufferQuadSegments = 8

// offsetRing offsets a positively oriented ring outward by d.
//
// Convex corners are rounded, and reflex corners are mitered. The input and
// output are both open point lists (the first point is not repeated).
func offsetRing(points []orb.Point, d float64) []orb.Point {
	n := len(points)
	res := make([]orb.Point, 0, n*2)
	for i := 0; i < n; i++ {
		prev := points[(i+n-1)%n]
		p := points[i]
		next := points[(i+1)%n]
		n1 := rightNormal(prev, p)
		n2 := rightNormal(p, next)
		e1 := sub(p, prev)
		e2 := sub(next, p)
		cross := e1[0]*e2[1] - e1[1]*e2[0]
		dot := e1[0]*e2[0] + e1[1]*e2[1]

		switch {
		case cross > 0 || (cross == 0 && dot < 0):
			res = append(res, arcPoints(p, n1, n2, d)...)
		case cross == 0:
			res = append(res, addScaled(p, n1, d))
		default:
			denom := 1 + n1[0]*n2[0] + n1[1]*n2[1]
			if denom < 1e-3 {
				res = append(res, addScaled(p, n1, d), addScaled(p, n2, d))
			} else {
				res = append(res, addScaled(p, orb.Point{n1[0] + n2[0], n1[1] + n2[1]}, d/denom))
			}
		}
	}
	return res
}

// bufferLine turns an open polyline into a strip of half-width d with
// rounded ends.
func bufferLine(points []orb.Point, d float64) []orb.Point {
	if len(points) < 2 {
		return nil
	}
	path := append([]orb.Point{}, points...)
	for i := len(points) - 2; i > 0; i-- {
		path = append(path, points[i])
	}
	return offsetRing(path, d)
}

// arcPoints sweeps counter-clockwise from normal n1 to normal n2 around c.
func arcPoints(c, n1, n2 orb.Point, d float64) []orb.Point {
	a1 := math.Atan2(n1[1], n1[0])
	a2 := math.Atan2(n2[1], n2[0])
	sweep := a2 - a1
	for sweep <= 0 {
		sweep += 2 * math.Pi
	}
	steps := int(math.Ceil(sweep / (math.Pi / 2 / bufferQuadSegments)))
	if steps < 1 {
		steps = 1
	}
	res := make([]orb.Point, 0, steps+1)
	res = append(res, addScaled(c, n1, d))
	for i := 1; i < steps; i++ {
		a := a1 + sweep*float64(i)/float64(steps)
		res = append(res, addScaled(c, orb.Point{math.Cos(a), math.Sin(a)}, d))
	}
	return append(res, addScaled(c, n2, d))
}

// rightNormal is the unit normal to the right of the direction from a to b,
// which points outward for a positively oriented ring.
func rightNormal(a, b orb.Point) orb.Point {
	dx, dy := b[0]-a[0], b[1]-a[1]
	norm := math.Hypot(dx, dy)
	if norm == 0 {
		return orb.Point{}
	}
	return orb.Point{dy / norm, -dx / norm}
}

func sub(a, b orb.Point) orb.Point {
	return orb.Point{a[0] - b[0], a[1] - b[1]}
}

func addScaled(p, v orb.Point, s float64) orb.Point {
	return orb.Point{p[0] + v[0]*s, p[1] + v[1]*s}
}
