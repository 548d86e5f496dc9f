package floord

import "golang.org/x/exp/slices"

// ExtractFloor finds the largest region enclosed by walls and fills it.
//
// The background of walls is split into 4-connected regions, and each region
// is measured by the area it encloses (its own pixels plus any holes it
// surrounds). Regions touching the edge of the image are open to the outside
// and never qualify, which excludes the region holding the top-left pixel.
// The largest remaining region is filled with MaskOn in an otherwise blank
// mask.
//
// If no region qualifies, a blank mask is returned along with false.
func ExtractFloor(walls *Mask) (*Mask, bool) {
	res := NewMask(walls.Width, walls.Height)
	if walls.Width == 0 || walls.Height == 0 {
		return res, false
	}

	labels := LabelComponents(walls, func(v uint8) bool {
		return v != MaskOn
	}, false)
	candidates := make([]*ConnectedComponent, 0, len(labels.Components))
	for _, c := range labels.Components {
		if !touchesEdge(walls, c) {
			candidates = append(candidates, c)
		}
	}
	slices.SortStableFunc(candidates, func(a, b *ConnectedComponent) bool {
		return boundsArea(a) > boundsArea(b)
	})

	var best *enclosure
	for _, c := range candidates {
		// The enclosed area can never exceed the bounding box.
		if best != nil && boundsArea(c) < best.Area {
			break
		}
		e := enclosedRegion(labels, c)
		if best == nil || e.Area > best.Area ||
			(e.Area == best.Area && c.Label < best.Component.Label) {
			best = e
		}
	}
	if best == nil {
		return res, false
	}

	c := best.Component
	for y := c.MinY; y <= c.MaxY; y++ {
		for x := c.MinX; x <= c.MaxX; x++ {
			if best.Inside[(y-c.MinY)*c.BoundsWidth()+x-c.MinX] {
				res.Set(x, y, MaskOn)
			}
		}
	}
	return res, true
}

type enclosure struct {
	Component *ConnectedComponent
	Area      int

	// Inside covers the component's bounding box.
	Inside []bool
}

// enclosedRegion computes the pixels of a component's bounding box which
// cannot reach the outside of the box without crossing the component.
func enclosedRegion(labels *Labeling, c *ConnectedComponent) *enclosure {
	w, h := c.BoundsWidth()+2, c.BoundsHeight()+2
	inComponent := func(px, py int) bool {
		if px == 0 || py == 0 || px == w-1 || py == h-1 {
			return false
		}
		return labels.LabelAt(px-1+c.MinX, py-1+c.MinY) == c.Label
	}

	outside := make([]bool, w*h)
	stack := []int{0}
	outside[0] = true
	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		x, y := idx%w, idx/w
		for _, o := range [4][2]int{{0, -1}, {-1, 0}, {1, 0}, {0, 1}} {
			nx, ny := x+o[0], y+o[1]
			if nx < 0 || ny < 0 || nx >= w || ny >= h {
				continue
			}
			nIdx := ny*w + nx
			if !outside[nIdx] && !inComponent(nx, ny) {
				outside[nIdx] = true
				stack = append(stack, nIdx)
			}
		}
	}

	res := &enclosure{
		Component: c,
		Inside:    make([]bool, c.BoundsWidth()*c.BoundsHeight()),
	}
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			if !outside[y*w+x] {
				res.Inside[(y-1)*c.BoundsWidth()+x-1] = true
				res.Area++
			}
		}
	}
	return res
}

func touchesEdge(m *Mask, c *ConnectedComponent) bool {
	return c.MinX == 0 || c.MinY == 0 || c.MaxX == m.Width-1 || c.MaxY == m.Height-1
}

func boundsArea(c *ConnectedComponent) int {
	return c.BoundsWidth() * c.BoundsHeight()
}
