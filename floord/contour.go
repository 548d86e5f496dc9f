package floord

import (
	"math"

	"github.com/unixpickle/model3d/model2d"
	"gonum.org/v1/gonum/floats"
)

const (
	DefaultEdgeLevel    = 0.1
	DefaultContourLevel = 0.5
)

// A Contour is a polyline traced along an iso-level of a grid.
//
// Points are in pixel coordinates, where X is the column and Y is the row.
// For closed contours, the first point is not repeated at the end.
type Contour struct {
	Points []model2d.Coord
	Closed bool
}

// Scale returns a copy of the contour with every point multiplied by s.
func (c *Contour) Scale(s float64) *Contour {
	res := &Contour{
		Points: make([]model2d.Coord, len(c.Points)),
		Closed: c.Closed,
	}
	for i, p := range c.Points {
		res.Points[i] = p.Scale(s)
	}
	return res
}

// TraceContours finds the boundaries between values above level and values
// at or below level using marching squares.
//
// The grid is treated as if it were surrounded by values below the level,
// so every returned contour is closed. Contours with fewer than three
// distinct points are dropped.
//
// Each contour keeps the region above the level on the same side, and
// contours are ordered by the position of their first segment in the grid.
func TraceContours(g *Grid[float64], level float64) []*Contour {
	pad := level
	if len(g.Pix) > 0 {
		pad = math.Min(pad, floats.Min(g.Pix))
	}
	t := &contourTracer{
		width:  g.Width + 2,
		height: g.Height + 2,
		level:  level,
	}
	t.values = make([]float64, t.width*t.height)
	for i := range t.values {
		t.values[i] = pad
	}
	for y := 0; y < g.Height; y++ {
		copy(t.values[(y+1)*t.width+1:], g.Pix[y*g.Width:(y+1)*g.Width])
	}
	return t.Trace()
}

type contourTracer struct {
	width  int
	height int
	level  float64
	values []float64
}

func (c *contourTracer) Trace() []*Contour {
	next := make([]int32, 2*c.width*c.height)
	for i := range next {
		next[i] = -1
	}
	hasPrev := make([]bool, len(next))
	var starts []int

	addSegment := func(from, to int) {
		next[from] = int32(to)
		hasPrev[to] = true
		starts = append(starts, from)
	}

	for cy := 0; cy+1 < c.height; cy++ {
		for cx := 0; cx+1 < c.width; cx++ {
			c.cellSegments(cx, cy, addSegment)
		}
	}

	visited := make([]bool, len(next))
	var res []*Contour
	trace := func(start int) {
		var points []model2d.Coord
		edge := start
		closed := false
		for {
			visited[edge] = true
			p := c.edgePoint(edge)
			if len(points) == 0 || points[len(points)-1] != p {
				points = append(points, p)
			}
			n := next[edge]
			if n < 0 {
				break
			}
			edge = int(n)
			if edge == start {
				closed = true
				break
			}
		}
		if closed && len(points) > 1 && points[0] == points[len(points)-1] {
			points = points[:len(points)-1]
		}
		if countDistinct(points) < 3 {
			return
		}
		res = append(res, &Contour{Points: points, Closed: closed})
	}

	// Open chains must be traced from their first edge.
	for _, s := range starts {
		if !visited[s] && !hasPrev[s] {
			trace(s)
		}
	}
	for _, s := range starts {
		if !visited[s] {
			trace(s)
		}
	}
	return res
}

// cellSegments emits the oriented segments for one cell, given as pairs of
// edge ids.
func (c *contourTracer) cellSegments(cx, cy int, emit func(from, to int)) {
	corners := [4]float64{
		c.values[cy*c.width+cx],
		c.values[cy*c.width+cx+1],
		c.values[(cy+1)*c.width+cx+1],
		c.values[(cy+1)*c.width+cx],
	}
	edges := [4]int{
		c.horizontalEdge(cx, cy),
		c.verticalEdge(cx+1, cy),
		c.horizontalEdge(cx, cy+1),
		c.verticalEdge(cx, cy),
	}
	var inside [4]bool
	var numInside int
	for i, v := range corners {
		if v > c.level {
			inside[i] = true
			numInside++
		}
	}
	if numInside == 0 || numInside == 4 {
		return
	}

	// Walking clockwise, an exit crossing goes from an inside corner to an
	// outside one, and an enter crossing does the opposite.
	var exits, enters []int
	for i := 0; i < 4; i++ {
		if inside[i] && !inside[(i+1)%4] {
			exits = append(exits, i)
		} else if !inside[i] && inside[(i+1)%4] {
			enters = append(enters, i)
		}
	}
	if len(exits) == 1 {
		emit(edges[exits[0]], edges[enters[0]])
		return
	}

	// Saddle: connect through the center if the center is above the level.
	center := (corners[0] + corners[1] + corners[2] + corners[3]) / 4
	offset := 3
	if center > c.level {
		offset = 1
	}
	for _, e := range exits {
		emit(edges[e], edges[(e+offset)%4])
	}
}

func (c *contourTracer) horizontalEdge(x, y int) int {
	return 2 * (y*c.width + x)
}

func (c *contourTracer) verticalEdge(x, y int) int {
	return 2*(y*c.width+x) + 1
}

// edgePoint interpolates the crossing on an edge and converts it into
// unpadded pixel coordinates.
func (c *contourTracer) edgePoint(edge int) model2d.Coord {
	idx := edge / 2
	x, y := idx%c.width, idx/c.width
	a := c.values[idx]
	var b float64
	if edge%2 == 0 {
		b = c.values[idx+1]
	} else {
		b = c.values[idx+c.width]
	}
	t := (c.level - a) / (b - a)
	if math.IsNaN(t) || math.IsInf(t, 0) {
		t = 0.5
	}
	if edge%2 == 0 {
		return model2d.XY(float64(x)+t-1, float64(y)-1)
	}
	return model2d.XY(float64(x)-1, float64(y)+t-1)
}

func countDistinct(points []model2d.Coord) int {
	seen := map[model2d.Coord]bool{}
	for _, p := range points {
		seen[p] = true
		if len(seen) >= 3 {
			break
		}
	}
	return len(seen)
}
