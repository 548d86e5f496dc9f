package floord

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/paulmach/orb/simplify"
	"github.com/unixpickle/model3d/model2d"
)

type ScalingMethod string

const (
	// ScaleContour multiplies traced contour points by the scaling factor.
	ScaleContour ScalingMethod = "contour"

	// ScaleResize resamples the masks by the scaling factor before tracing.
	ScaleResize ScalingMethod = "resize"
)

// Below this area, a ring is considered to have collapsed to a line.
const degenerateArea = 1e-9

type OutcomeStatus string

const (
	StatusAccepted      OutcomeStatus = "accepted"
	StatusBufferSkipped OutcomeStatus = "buffer_skipped"
	StatusDegenerate    OutcomeStatus = "degenerate"
	StatusInvalid       OutcomeStatus = "invalid"
	StatusTooSmall      OutcomeStatus = "too_small"
)

// Accepted is true for the statuses whose polygon is passed on for
// extrusion.
func (o OutcomeStatus) Accepted() bool {
	return o == StatusAccepted || o == StatusBufferSkipped
}

// PolygonConfig configures BuildPolygons.
type PolygonConfig struct {
	// BufferDistance is the outward offset applied to accepted polygons, in
	// world units. Open contours are turned into strips of this half-width.
	BufferDistance float64

	// ScalingFactor converts pixels to world units. Zero is treated as one.
	ScalingFactor float64
	ScalingMethod ScalingMethod

	// ContourFilter is the minimum polygon area, in world units squared.
	ContourFilter float64

	// SimplifyTolerance, if non-zero, is the Douglas-Peucker tolerance used
	// to thin out ring points before validation.
	SimplifyTolerance float64
}

// A Polygon is a validated simple ring ready for extrusion.
type Polygon struct {
	Layer LayerRole

	// Ring is closed and positively oriented.
	Ring orb.Ring

	Area     float64
	Buffered bool
}

// Points returns the ring's vertices without the closing point.
func (p *Polygon) Points() []model2d.Coord {
	res := make([]model2d.Coord, len(p.Ring)-1)
	for i, pt := range p.Ring[:len(p.Ring)-1] {
		res[i] = model2d.XY(pt[0], pt[1])
	}
	return res
}

// A PolygonOutcome records what happened to one contour.
type PolygonOutcome struct {
	Layer  LayerRole
	Index  int
	Status OutcomeStatus
	Area   float64
	Reason string
}

// A BuildReport collects the outcome of every contour in a batch.
type BuildReport struct {
	Outcomes []PolygonOutcome
}

func (b *BuildReport) Add(other *BuildReport) {
	b.Outcomes = append(b.Outcomes, other.Outcomes...)
}

// Count returns the number of outcomes with the given status.
func (b *BuildReport) Count(status OutcomeStatus) int {
	var res int
	for _, o := range b.Outcomes {
		if o.Status == status {
			res++
		}
	}
	return res
}

func (b *BuildReport) Accepted() int {
	var res int
	for _, o := range b.Outcomes {
		if o.Status.Accepted() {
			res++
		}
	}
	return res
}

func (b *BuildReport) Rejected() int {
	return len(b.Outcomes) - b.Accepted()
}

// BuildPolygons converts traced contours into validated polygons.
//
// Contours which are degenerate, self-intersecting, or smaller than the
// configured area are skipped and recorded in the report. The batch is never
// aborted by a bad contour.
func BuildPolygons(contours []*Contour, layer LayerRole, cfg PolygonConfig,
	logger Logger) ([]*Polygon, *BuildReport) {
	logger = loggerOrDiscard(logger)
	report := &BuildReport{}
	var polys []*Polygon
	for i, c := range contours {
		if cfg.ScalingMethod != ScaleResize && cfg.ScalingFactor != 0 && cfg.ScalingFactor != 1 {
			c = c.Scale(cfg.ScalingFactor)
		}
		poly, outcome := buildPolygon(c, layer, cfg)
		outcome.Index = i
		report.Outcomes = append(report.Outcomes, outcome)
		switch outcome.Status {
		case StatusAccepted:
		case StatusBufferSkipped:
			logger.Printf("warning: %s contour %d: %s", layer, i, outcome.Reason)
		default:
			logger.Printf("warning: skipping %s contour %d (%s): %s", layer, i,
				outcome.Status, outcome.Reason)
		}
		if poly != nil {
			polys = append(polys, poly)
		}
	}
	return polys, report
}

func buildPolygon(c *Contour, layer LayerRole, cfg PolygonConfig) (*Polygon, PolygonOutcome) {
	outcome := PolygonOutcome{Layer: layer}
	points := dedupePoints(contourPoints(c), c.Closed)

	if !c.Closed && cfg.BufferDistance > 0 {
		if len(points) < 2 {
			outcome.Status = StatusDegenerate
			outcome.Reason = "line has fewer than two distinct points"
			return nil, outcome
		}
		strip := bufferLine(points, cfg.BufferDistance)
		return acceptRing(strip, layer, cfg, outcome, true)
	}

	if len(points) < 3 {
		outcome.Status = StatusDegenerate
		outcome.Reason = fmt.Sprintf("ring has %d distinct points", len(points))
		return nil, outcome
	}
	ring := closeRing(points)
	if cfg.SimplifyTolerance > 0 {
		ring = simplify.DouglasPeucker(cfg.SimplifyTolerance).Ring(ring)
	}
	points = dedupePoints(ring[:len(ring)-1], true)
	if len(points) < 3 {
		outcome.Status = StatusDegenerate
		outcome.Reason = fmt.Sprintf("ring has %d distinct points", len(points))
		return nil, outcome
	}
	return acceptRing(points, layer, cfg, outcome, false)
}

// acceptRing applies the area filter, validity check, and buffering to an
// open point loop.
func acceptRing(points []orb.Point, layer LayerRole, cfg PolygonConfig,
	outcome PolygonOutcome, isStrip bool) (*Polygon, PolygonOutcome) {
	ring := orientPositive(closeRing(points))
	area := math.Abs(planar.Area(ring))
	outcome.Area = area

	if area <= degenerateArea || area < cfg.ContourFilter {
		outcome.Status = StatusTooSmall
		outcome.Reason = fmt.Sprintf("area %.4f is below the minimum %.4f", area,
			cfg.ContourFilter)
		return nil, outcome
	}
	ring = closeRing(removeCollinear(ring[:len(ring)-1]))
	if !isSimpleRing(ring[:len(ring)-1]) {
		outcome.Status = StatusInvalid
		outcome.Reason = "ring intersects itself"
		return nil, outcome
	}

	poly := &Polygon{Layer: layer, Ring: ring, Area: area, Buffered: isStrip}
	outcome.Status = StatusAccepted
	if !isStrip && cfg.BufferDistance > 0 {
		offset := offsetRing(ring[:len(ring)-1], cfg.BufferDistance)
		if isSimpleRing(offset) {
			poly.Ring = orientPositive(closeRing(offset))
			poly.Area = math.Abs(planar.Area(poly.Ring))
			poly.Buffered = true
		} else {
			outcome.Status = StatusBufferSkipped
			outcome.Reason = fmt.Sprintf("buffer of %.4f intersects itself; keeping the "+
				"unbuffered ring", cfg.BufferDistance)
		}
	}
	outcome.Area = poly.Area
	return poly, outcome
}

func contourPoints(c *Contour) []orb.Point {
	res := make([]orb.Point, len(c.Points))
	for i, p := range c.Points {
		res[i] = orb.Point{p.X, p.Y}
	}
	return res
}

// dedupePoints removes consecutive repeated points, including a repeated
// closing point if the loop is closed.
func dedupePoints(points []orb.Point, closed bool) []orb.Point {
	res := make([]orb.Point, 0, len(points))
	for _, p := range points {
		if len(res) > 0 && res[len(res)-1] == p {
			continue
		}
		res = append(res, p)
	}
	if closed {
		for len(res) > 1 && res[0] == res[len(res)-1] {
			res = res[:len(res)-1]
		}
	}
	return res
}

// removeCollinear drops vertices which continue straight along the edge
// before them. Vertices where the ring doubles back are kept.
func removeCollinear(points []orb.Point) []orb.Point {
	n := len(points)
	res := make([]orb.Point, 0, n)
	for i, p := range points {
		prev, next := points[(i+n-1)%n], points[(i+1)%n]
		if orientation(prev, p, next) == 0 {
			d1, d2 := sub(p, prev), sub(next, p)
			if d1[0]*d2[0]+d1[1]*d2[1] > 0 {
				continue
			}
		}
		res = append(res, p)
	}
	if len(res) < 3 {
		return points
	}
	return res
}

func closeRing(points []orb.Point) orb.Ring {
	ring := make(orb.Ring, 0, len(points)+1)
	ring = append(ring, points...)
	if len(points) > 0 {
		ring = append(ring, points[0])
	}
	return ring
}

func orientPositive(r orb.Ring) orb.Ring {
	if r.Orientation() == orb.CW {
		r.Reverse()
	}
	return r
}
