package floord

import (
	"image"

	"golang.org/x/exp/constraints"
)

// Mask pixel values. Flagged pixels (walls, or a filled floor region) are
// stored as MaskOn, and everything else as MaskOff.
const (
	MaskOn  uint8 = 0
	MaskOff uint8 = 255
)

type Number interface {
	constraints.Integer | constraints.Float
}

// A Grid is a row-major 2D array of values.
type Grid[T Number] struct {
	Width  int
	Height int
	Pix    []T
}

func NewGrid[T Number](width, height int) *Grid[T] {
	return &Grid[T]{
		Width:  width,
		Height: height,
		Pix:    make([]T, width*height),
	}
}

func (g *Grid[T]) At(x, y int) T {
	return g.Pix[y*g.Width+x]
}

func (g *Grid[T]) Set(x, y int, v T) {
	g.Pix[y*g.Width+x] = v
}

func (g *Grid[T]) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.Width && y < g.Height
}

// Fill sets every value in the grid to v.
func (g *Grid[T]) Fill(v T) {
	for i := range g.Pix {
		g.Pix[i] = v
	}
}

func (g *Grid[T]) Clone() *Grid[T] {
	return &Grid[T]{
		Width:  g.Width,
		Height: g.Height,
		Pix:    append([]T{}, g.Pix...),
	}
}

// MapGrid applies f to every value of g to produce a new grid.
func MapGrid[T, S Number](g *Grid[T], f func(T) S) *Grid[S] {
	res := NewGrid[S](g.Width, g.Height)
	for i, x := range g.Pix {
		res.Pix[i] = f(x)
	}
	return res
}

// A RasterImage is an 8-bit intensity image, where 0 is black.
type RasterImage = Grid[uint8]

// A Mask is a W×H grid of MaskOn and MaskOff values.
type Mask = Grid[uint8]

// NewMask creates a mask where every pixel is MaskOff.
func NewMask(width, height int) *Mask {
	res := NewGrid[uint8](width, height)
	res.Fill(MaskOff)
	return res
}

// GrayImage wraps an 8-bit grid as an *image.Gray without copying.
func GrayImage(g *Grid[uint8]) *image.Gray {
	return &image.Gray{
		Pix:    g.Pix,
		Stride: g.Width,
		Rect:   image.Rect(0, 0, g.Width, g.Height),
	}
}

// GrayGrid copies an *image.Gray into a new grid.
func GrayGrid(img *image.Gray) *Grid[uint8] {
	b := img.Bounds()
	res := NewGrid[uint8](b.Dx(), b.Dy())
	for y := 0; y < res.Height; y++ {
		start := img.PixOffset(b.Min.X, b.Min.Y+y)
		copy(res.Pix[y*res.Width:(y+1)*res.Width], img.Pix[start:start+res.Width])
	}
	return res
}

// MaskIntensity converts a mask into a grid where flagged pixels are 1 and
// background pixels are 0.
func MaskIntensity(m *Mask) *Grid[float64] {
	return MapGrid(m, func(v uint8) float64 {
		return 1 - float64(v)/255
	})
}
