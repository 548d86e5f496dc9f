package floord

// A ConnectedComponent summarizes one labeled region of a grid.
type ConnectedComponent struct {
	// Label is the 1-based label of the component. Labels are assigned in
	// raster order of each component's first pixel.
	Label int

	// Area is the number of pixels in the component.
	Area int

	// Inclusive bounding box.
	MinX, MinY int
	MaxX, MaxY int
}

func (c *ConnectedComponent) BoundsWidth() int {
	return c.MaxX - c.MinX + 1
}

func (c *ConnectedComponent) BoundsHeight() int {
	return c.MaxY - c.MinY + 1
}

// Elongation is the ratio of the longer side of the bounding box to the
// shorter side, or 0 if either side is empty.
func (c *ConnectedComponent) Elongation() float64 {
	w, h := c.BoundsWidth(), c.BoundsHeight()
	if w <= 0 || h <= 0 {
		return 0
	}
	if w > h {
		return float64(w) / float64(h)
	}
	return float64(h) / float64(w)
}

// A Labeling assigns a component label to every pixel of a grid, where 0
// means the pixel belongs to no component.
type Labeling struct {
	Width      int
	Height     int
	Labels     []int32
	Components []*ConnectedComponent
}

// LabelAt returns the label at the given pixel.
func (l *Labeling) LabelAt(x, y int) int {
	return int(l.Labels[y*l.Width+x])
}

// Component returns the component for a non-zero label.
func (l *Labeling) Component(label int) *ConnectedComponent {
	return l.Components[label-1]
}

// LabelComponents finds connected regions of the pixels for which
// foreground returns true.
//
// If eightConnected is set, diagonal neighbors are connected. Otherwise,
// only horizontal and vertical neighbors are.
func LabelComponents[T Number](g *Grid[T], foreground func(T) bool,
	eightConnected bool) *Labeling {
	res := &Labeling{
		Width:  g.Width,
		Height: g.Height,
		Labels: make([]int32, len(g.Pix)),
	}

	var offsets [][2]int
	if eightConnected {
		offsets = [][2]int{{-1, -1}, {0, -1}, {1, -1}, {-1, 0}, {1, 0}, {-1, 1}, {0, 1}, {1, 1}}
	} else {
		offsets = [][2]int{{0, -1}, {-1, 0}, {1, 0}, {0, 1}}
	}

	var stack []int
	for start, v := range g.Pix {
		if res.Labels[start] != 0 || !foreground(v) {
			continue
		}
		label := len(res.Components) + 1
		comp := &ConnectedComponent{
			Label: label,
			MinX:  start % g.Width,
			MinY:  start / g.Width,
			MaxX:  start % g.Width,
			MaxY:  start / g.Width,
		}
		res.Components = append(res.Components, comp)

		res.Labels[start] = int32(label)
		stack = append(stack[:0], start)
		for len(stack) > 0 {
			idx := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			x, y := idx%g.Width, idx/g.Width
			comp.Area++
			if x < comp.MinX {
				comp.MinX = x
			} else if x > comp.MaxX {
				comp.MaxX = x
			}
			if y > comp.MaxY {
				comp.MaxY = y
			}
			for _, o := range offsets {
				nx, ny := x+o[0], y+o[1]
				if !g.InBounds(nx, ny) {
					continue
				}
				nIdx := ny*g.Width + nx
				if res.Labels[nIdx] == 0 && foreground(g.Pix[nIdx]) {
					res.Labels[nIdx] = int32(label)
					stack = append(stack, nIdx)
				}
			}
		}
	}
	return res
}
