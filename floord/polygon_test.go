package floord

import (
	"math"
	"math/rand"
	"testing"

	"github.com/unixpickle/model3d/model2d"
)

func TestBuildPolygonsLine(t *testing.T) {
	// A single-pixel-wide line traced without buffering has no area.
	for _, closed := range []bool{false, true} {
		line := testContour(closed, 0, 0, 1, 0, 2, 0, 3, 0)
		polys, report := BuildPolygons([]*Contour{line}, RoleWall, PolygonConfig{}, nil)
		if len(polys) != 0 {
			t.Fatalf("closed=%v: expected no polygons but got %d", closed, len(polys))
		}
		if n := report.Count(StatusTooSmall); n != 1 {
			t.Fatalf("closed=%v: expected 1 too_small outcome but got %d", closed, n)
		}
	}
}

func TestBuildPolygonsDegenerate(t *testing.T) {
	c := testContour(true, 1, 1, 2, 2, 2, 2, 1, 1)
	polys, report := BuildPolygons([]*Contour{c}, RoleFloor, PolygonConfig{}, nil)
	if len(polys) != 0 || report.Count(StatusDegenerate) != 1 {
		t.Fatalf("expected degenerate outcome but got %+v", report.Outcomes)
	}
}

func TestBuildPolygonsSelfIntersecting(t *testing.T) {
	bowtie := testContour(true, 0, 0, 10, 10, 10, 0, 0, 20)
	polys, report := BuildPolygons([]*Contour{bowtie}, RoleFloor, PolygonConfig{}, nil)
	if len(polys) != 0 {
		t.Fatal("self-intersecting ring should be rejected")
	}
	if report.Count(StatusInvalid) != 1 {
		t.Fatalf("expected invalid outcome but got %+v", report.Outcomes)
	}
}

func TestBuildPolygonsAreaFilter(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	var contours []*Contour
	for i := 0; i < 50; i++ {
		x, y := rng.Float64()*100, rng.Float64()*100
		w, h := rng.Float64()*20+0.1, rng.Float64()*20+0.1
		contours = append(contours, testContour(true, x, y, x+w, y, x+w, y+h, x, y+h))
	}
	for _, buffer := range []float64{0, 0.5} {
		cfg := PolygonConfig{ContourFilter: 60, BufferDistance: buffer}
		polys, report := BuildPolygons(contours, RoleFloor, cfg, nil)
		if len(report.Outcomes) != len(contours) {
			t.Fatalf("expected %d outcomes but got %d", len(contours), len(report.Outcomes))
		}
		if len(polys) != report.Accepted() {
			t.Fatalf("expected %d polygons but got %d", report.Accepted(), len(polys))
		}
		if len(polys) == 0 || report.Rejected() == 0 {
			t.Fatal("expected a mix of accepted and rejected contours")
		}
		for _, p := range polys {
			if p.Area < cfg.ContourFilter {
				t.Fatalf("polygon with area %f passed filter %f", p.Area, cfg.ContourFilter)
			}
		}
	}
}

func TestBuildPolygonsBuffer(t *testing.T) {
	square := testContour(true, 0, 0, 10, 0, 10, 10, 0, 10)
	polys, report := BuildPolygons([]*Contour{square}, RoleFloor,
		PolygonConfig{BufferDistance: 1}, nil)
	if len(polys) != 1 || report.Count(StatusAccepted) != 1 {
		t.Fatalf("unexpected outcomes: %+v", report.Outcomes)
	}
	p := polys[0]
	if !p.Buffered {
		t.Fatal("polygon should be buffered")
	}
	// 100 + 4*10 for the sides plus nearly pi for the rounded corners.
	if p.Area < 143 || p.Area > 100+40+math.Pi {
		t.Fatalf("unexpected buffered area: %f", p.Area)
	}
	b := p.Ring.Bound()
	if math.Abs(b.Min[0]+1) > 1e-8 || math.Abs(b.Max[1]-11) > 1e-8 {
		t.Fatalf("unexpected bounds: %v", b)
	}
}

func TestBuildPolygonsOrientation(t *testing.T) {
	clockwise := testContour(true, 0, 0, 0, 10, 10, 10, 10, 0)
	polys, _ := BuildPolygons([]*Contour{clockwise}, RoleFloor, PolygonConfig{}, nil)
	if len(polys) != 1 {
		t.Fatal("expected a polygon")
	}
	p := polys[0]
	if p.Ring[0] != p.Ring[len(p.Ring)-1] {
		t.Fatal("ring should be closed")
	}
	var signed float64
	for i := 0; i+1 < len(p.Ring); i++ {
		a, b := p.Ring[i], p.Ring[i+1]
		signed += a[0]*b[1] - b[0]*a[1]
	}
	if signed <= 0 {
		t.Fatal("ring should be counter-clockwise")
	}
	if len(p.Points()) != 4 {
		t.Fatalf("expected 4 points but got %d", len(p.Points()))
	}
}

func TestBuildPolygonsScaling(t *testing.T) {
	square := testContour(true, 0, 0, 10, 0, 10, 10, 0, 10)
	cfg := PolygonConfig{ScalingFactor: 2, ScalingMethod: ScaleContour, ContourFilter: 300}
	polys, _ := BuildPolygons([]*Contour{square}, RoleFloor, cfg, nil)
	if len(polys) != 1 || math.Abs(polys[0].Area-400) > 1e-8 {
		t.Fatalf("expected one polygon of area 400, got %v", polys)
	}

	// Resized masks are already in world units.
	cfg.ScalingMethod = ScaleResize
	polys, _ = BuildPolygons([]*Contour{square}, RoleFloor, cfg, nil)
	if len(polys) != 0 {
		t.Fatal("contour should not be scaled when resizing")
	}
}

func TestBuildPolygonsOpenStrip(t *testing.T) {
	line := testContour(false, 0, 0, 10, 0)
	polys, report := BuildPolygons([]*Contour{line}, RoleWall,
		PolygonConfig{BufferDistance: 1}, nil)
	if len(polys) != 1 {
		t.Fatalf("expected a strip but got %+v", report.Outcomes)
	}
	if area := polys[0].Area; area < 22.9 || area > 20+math.Pi {
		t.Fatalf("unexpected strip area: %f", area)
	}
}

func TestBuildPolygonsSimplify(t *testing.T) {
	var coords []float64
	for i := 0; i <= 10; i++ {
		coords = append(coords, float64(i), 0)
	}
	coords = append(coords, 10, 10, 0, 10)
	c := testContour(true, coords...)
	polys, _ := BuildPolygons([]*Contour{c}, RoleFloor,
		PolygonConfig{SimplifyTolerance: 0.01}, nil)
	if len(polys) != 1 {
		t.Fatal("expected a polygon")
	}
	if n := len(polys[0].Points()); n != 4 {
		t.Fatalf("expected 4 points after simplifying but got %d", n)
	}
}

func TestBuildPolygonsLogs(t *testing.T) {
	logger := &testLogger{}
	bowtie := testContour(true, 0, 0, 10, 10, 10, 0, 0, 20)
	BuildPolygons([]*Contour{bowtie}, RoleFloor, PolygonConfig{}, logger)
	if len(logger.Lines) != 1 {
		t.Fatalf("expected 1 warning but got %d", len(logger.Lines))
	}
}

func TestIsSimpleRing(t *testing.T) {
	square := testContour(true, 0, 0, 1, 0, 1, 1, 0, 1)
	if !isSimpleRing(contourPoints(square)) {
		t.Fatal("square should be simple")
	}
	touching := testContour(true, 0, 0, 4, 0, 4, 4, 2, 0, 0, 4)
	if isSimpleRing(contourPoints(touching)) {
		t.Fatal("ring touching itself should not be simple")
	}
	spike := testContour(true, 0, 0, 4, 0, 2, 0, 2, 3)
	if isSimpleRing(contourPoints(spike)) {
		t.Fatal("ring doubling back should not be simple")
	}
}

func testContour(closed bool, coords ...float64) *Contour {
	c := &Contour{Closed: closed}
	for i := 0; i < len(coords); i += 2 {
		c.Points = append(c.Points, model2d.XY(coords[i], coords[i+1]))
	}
	return c
}

type testLogger struct {
	Lines []string
}

func (t *testLogger) Printf(format string, args ...interface{}) {
	t.Lines = append(t.Lines, format)
}

func TestBuildPolygonsCollinear(t *testing.T) {
	c := testContour(true, 0, 0, 5, 0, 10, 0, 10, 5, 10, 10, 0, 10)
	polys, _ := BuildPolygons([]*Contour{c}, RoleFloor, PolygonConfig{}, nil)
	if len(polys) != 1 {
		t.Fatal("expected a polygon")
	}
	if n := len(polys[0].Points()); n != 4 {
		t.Fatalf("expected collinear points to be dropped, got %d points", n)
	}
	if polys[0].Area != 100 {
		t.Fatalf("unexpected area %f", polys[0].Area)
	}
}
