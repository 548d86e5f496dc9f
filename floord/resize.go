package floord

import (
	"image"

	"github.com/pkg/errors"
	"golang.org/x/image/draw"
)

// ResizeMask resamples a mask by a scale factor using nearest-neighbor
// sampling, so the result still only contains MaskOn and MaskOff.
//
// The new size is truncated toward zero, and an error is returned if either
// side would be empty.
func ResizeMask(m *Mask, factor float64) (*Mask, error) {
	w := int(float64(m.Width) * factor)
	h := int(float64(m.Height) * factor)
	if w <= 0 || h <= 0 {
		return nil, errors.Wrapf(ErrEmptyResult, "resizing %dx%d by %f leaves no pixels",
			m.Width, m.Height, factor)
	}
	dst := image.NewGray(image.Rect(0, 0, w, h))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), GrayImage(m), image.Rect(0, 0, m.Width, m.Height),
		draw.Src, nil)
	return GrayGrid(dst), nil
}
