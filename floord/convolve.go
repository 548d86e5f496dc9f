package floord

import "math"

var (
	sobelHorizontal = [3][3]float64{
		{0.25, 0.5, 0.25},
		{0, 0, 0},
		{-0.25, -0.5, -0.25},
	}
	sobelVertical = [3][3]float64{
		{0.25, 0, -0.25},
		{0.5, 0, -0.5},
		{0.25, 0, -0.25},
	}
)

// reflectIndex maps an out-of-range index back into [0, n) by mirroring
// around the edges, repeating the edge sample (d c b a | a b c d | d c b a).
func reflectIndex(i, n int) int {
	period := 2 * n
	i %= period
	if i < 0 {
		i += period
	}
	if i >= n {
		i = period - 1 - i
	}
	return i
}

// BoxAverage computes the mean of every k×k window of g, using reflected
// samples past the edges.
//
// For even k, the window of pixel i spans [i-k/2, i-k/2+k-1].
func BoxAverage[T Number](g *Grid[T], k int) *Grid[float64] {
	if k < 1 {
		panic("kernel size must be positive")
	}
	half := k / 2
	pw, ph := g.Width+k-1, g.Height+k-1

	// Summed-area table over the reflected extent, with a zero row and
	// column at the start.
	sums := make([]float64, (pw+1)*(ph+1))
	for py := 0; py < ph; py++ {
		y := reflectIndex(py-half, g.Height)
		var rowSum float64
		for px := 0; px < pw; px++ {
			x := reflectIndex(px-half, g.Width)
			rowSum += float64(g.At(x, y))
			sums[(py+1)*(pw+1)+px+1] = sums[py*(pw+1)+px+1] + rowSum
		}
	}

	norm := float64(k * k)
	res := NewGrid[float64](g.Width, g.Height)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			total := sums[(y+k)*(pw+1)+x+k] - sums[y*(pw+1)+x+k] -
				sums[(y+k)*(pw+1)+x] + sums[y*(pw+1)+x]
			res.Set(x, y, total/norm)
		}
	}
	return res
}

// Correlate3x3 applies a 3×3 kernel centered on each pixel, using reflected
// samples past the edges.
func Correlate3x3[T Number](g *Grid[T], kernel [3][3]float64) *Grid[float64] {
	res := NewGrid[float64](g.Width, g.Height)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			var sum float64
			for i := 0; i < 3; i++ {
				sy := reflectIndex(y+i-1, g.Height)
				for j := 0; j < 3; j++ {
					if kernel[i][j] == 0 {
						continue
					}
					sx := reflectIndex(x+j-1, g.Width)
					sum += kernel[i][j] * float64(g.At(sx, sy))
				}
			}
			res.Set(x, y, sum)
		}
	}
	return res
}

// Sobel computes the normalized Sobel gradient magnitude of g.
//
// A unit step edge produces a magnitude of 1/sqrt(2) next to the edge.
func Sobel[T Number](g *Grid[T]) *Grid[float64] {
	h := Correlate3x3(g, sobelHorizontal)
	v := Correlate3x3(g, sobelVertical)
	for i, x := range h.Pix {
		y := v.Pix[i]
		h.Pix[i] = math.Sqrt((x*x + y*y) / 2)
	}
	return h
}
