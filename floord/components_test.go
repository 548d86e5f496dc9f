package floord

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLabelComponentsConnectivity(t *testing.T) {
	g := gridFromRows(
		"#...",
		".#..",
		"...#",
		"...#",
	)
	isSet := func(v uint8) bool { return v == 1 }

	eight := LabelComponents(g, isSet, true)
	if len(eight.Components) != 2 {
		t.Fatalf("expected 2 components but got %d", len(eight.Components))
	}
	expected := []*ConnectedComponent{
		{Label: 1, Area: 2, MinX: 0, MinY: 0, MaxX: 1, MaxY: 1},
		{Label: 2, Area: 2, MinX: 3, MinY: 2, MaxX: 3, MaxY: 3},
	}
	if diff := cmp.Diff(expected, eight.Components); diff != "" {
		t.Fatalf("unexpected components (-expected +actual):\n%s", diff)
	}

	four := LabelComponents(g, isSet, false)
	if len(four.Components) != 3 {
		t.Fatalf("expected 3 components but got %d", len(four.Components))
	}
	if four.LabelAt(0, 0) == four.LabelAt(1, 1) {
		t.Fatal("diagonal pixels should not be 4-connected")
	}
	if four.LabelAt(2, 0) != 0 {
		t.Fatal("background pixel should have label 0")
	}
	if c := four.Component(four.LabelAt(3, 3)); c.Area != 2 {
		t.Fatalf("expected area 2 but got %d", c.Area)
	}
}

func TestLabelComponentsBounds(t *testing.T) {
	g := gridFromRows(
		"..#..",
		".###.",
		"..#..",
		"..#..",
	)
	labels := LabelComponents(g, func(v uint8) bool { return v == 1 }, false)
	if len(labels.Components) != 1 {
		t.Fatalf("expected 1 component but got %d", len(labels.Components))
	}
	c := labels.Components[0]
	if c.Area != 6 || c.BoundsWidth() != 3 || c.BoundsHeight() != 4 {
		t.Fatalf("unexpected component: %+v", c)
	}
	if e := c.Elongation(); e != 4.0/3.0 {
		t.Fatalf("expected elongation 4/3 but got %f", e)
	}
}

func TestElongation(t *testing.T) {
	line := &ConnectedComponent{MinX: 2, MaxX: 2, MinY: 0, MaxY: 9}
	if e := line.Elongation(); e != 10 {
		t.Fatalf("expected 10 but got %f", e)
	}
	square := &ConnectedComponent{MinX: 0, MaxX: 4, MinY: 3, MaxY: 7}
	if e := square.Elongation(); e != 1 {
		t.Fatalf("expected 1 but got %f", e)
	}
}

// gridFromRows creates a grid where '#' is 1 and every other character is 0.
func gridFromRows(rows ...string) *Grid[uint8] {
	g := NewGrid[uint8](len(rows[0]), len(rows))
	for y, row := range rows {
		for x, ch := range row {
			if ch == '#' {
				g.Set(x, y, 1)
			}
		}
	}
	return g
}

// maskFromRows creates a mask where '#' is MaskOn.
func maskFromRows(rows ...string) *Mask {
	return MapGrid(gridFromRows(rows...), func(v uint8) uint8 {
		if v == 1 {
			return MaskOn
		}
		return MaskOff
	})
}
