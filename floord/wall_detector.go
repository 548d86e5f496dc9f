package floord

import "github.com/pkg/errors"

const (
	DefaultIntensityThreshold  = 127.0
	DefaultKernelSize          = 9
	DefaultAreaThreshold       = 50
	DefaultElongationThreshold = 2.0
)

// DetectorConfig configures DetectWalls.
type DetectorConfig struct {
	// IntensityThreshold is the local-average intensity at or below which a
	// pixel counts as ink.
	IntensityThreshold float64 `json:"intensity_threshold"`

	// KernelSize is the side length of the averaging window.
	KernelSize int `json:"kernel_size"`

	// AreaThreshold is the pixel area at which a component is always kept.
	AreaThreshold int `json:"area_threshold"`

	// ElongationThreshold is the bounding box aspect ratio at which a
	// component is kept regardless of its area.
	ElongationThreshold float64 `json:"elongation_threshold"`
}

// DefaultDetectorConfig returns the parameters used for wall detection when
// none are specified.
func DefaultDetectorConfig() DetectorConfig {
	return DetectorConfig{
		IntensityThreshold:  DefaultIntensityThreshold,
		KernelSize:          DefaultKernelSize,
		AreaThreshold:       DefaultAreaThreshold,
		ElongationThreshold: DefaultElongationThreshold,
	}
}

// FloorPassDetectorConfig returns a stricter parameter set which only keeps
// large or very long structures. It is meant for producing the mask that
// the floor region is extracted from, since furniture and text do not need
// to survive in that mask.
func FloorPassDetectorConfig() DetectorConfig {
	return DetectorConfig{
		IntensityThreshold:  190,
		KernelSize:          3,
		AreaThreshold:       1500,
		ElongationThreshold: 20,
	}
}

func (d DetectorConfig) Validate() error {
	if d.KernelSize < 1 {
		return errors.Wrapf(ErrInvalidConfig, "kernel size %d must be positive", d.KernelSize)
	}
	if d.AreaThreshold < 0 {
		return errors.Wrapf(ErrInvalidConfig, "area threshold %d is negative", d.AreaThreshold)
	}
	if d.ElongationThreshold < 0 {
		return errors.Wrapf(ErrInvalidConfig, "elongation threshold %f is negative",
			d.ElongationThreshold)
	}
	return nil
}

// KeepComponent decides whether an ink component is part of a wall.
//
// Large blobs are kept by area, and thin lines are kept by elongation even
// when their area is small.
func (d DetectorConfig) KeepComponent(c *ConnectedComponent) bool {
	return c.Area >= d.AreaThreshold || c.Elongation() >= d.ElongationThreshold
}

// DetectWalls produces a mask where wall-like pixels are MaskOn.
//
// The image is smoothed with a box filter, thresholded into ink and paper,
// and then every 8-connected ink component which fails KeepComponent is
// dropped.
func DetectWalls(img *RasterImage, cfg DetectorConfig) *Mask {
	avg := BoxAverage(img, cfg.KernelSize)
	labels := LabelComponents(avg, func(v float64) bool {
		return !(v > cfg.IntensityThreshold)
	}, true)

	keep := make([]bool, len(labels.Components)+1)
	for _, c := range labels.Components {
		keep[c.Label] = cfg.KeepComponent(c)
	}

	res := NewMask(img.Width, img.Height)
	for i, l := range labels.Labels {
		if keep[l] {
			res.Pix[i] = MaskOn
		}
	}
	return res
}
