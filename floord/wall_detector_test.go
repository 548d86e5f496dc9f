package floord

import (
	"math/rand"
	"testing"
)

func TestDetectWallsBlank(t *testing.T) {
	img := NewGrid[uint8](20, 15)
	img.Fill(255)
	mask := DetectWalls(img, DefaultDetectorConfig())
	for i, v := range mask.Pix {
		if v != MaskOff {
			t.Fatalf("pixel %d: expected background but got %d", i, v)
		}
	}
}

func TestDetectWallsRing(t *testing.T) {
	img := testRingRaster()
	cfg := DefaultDetectorConfig()
	cfg.KernelSize = 1
	mask := DetectWalls(img, cfg)
	for y := 0; y < mask.Height; y++ {
		for x := 0; x < mask.Width; x++ {
			expected := MaskOff
			if inTestRing(x, y) {
				expected = MaskOn
			}
			if actual := mask.At(x, y); actual != expected {
				t.Fatalf("(%d, %d): expected %d but got %d", x, y, expected, actual)
			}
		}
	}
}

func TestDetectWallsFiltersBlobs(t *testing.T) {
	img := NewGrid[uint8](40, 40)
	img.Fill(255)

	// Small square blob: area 9, elongation 1.
	for y := 5; y < 8; y++ {
		for x := 5; x < 8; x++ {
			img.Set(x, y, 0)
		}
	}
	// Thin line: area 20, elongation 20.
	for x := 10; x < 30; x++ {
		img.Set(x, 20, 0)
	}
	// Large blob: area 64.
	for y := 28; y < 36; y++ {
		for x := 28; x < 36; x++ {
			img.Set(x, y, 0)
		}
	}

	cfg := DefaultDetectorConfig()
	cfg.KernelSize = 1
	mask := DetectWalls(img, cfg)
	if mask.At(6, 6) != MaskOff {
		t.Error("small blob should be removed")
	}
	if mask.At(15, 20) != MaskOn {
		t.Error("thin line should be kept")
	}
	if mask.At(30, 30) != MaskOn {
		t.Error("large blob should be kept")
	}
}

func TestDetectWallsKeepsOnlyQualifyingComponents(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	img := NewGrid[uint8](64, 48)
	for i := range img.Pix {
		if rng.Intn(4) == 0 {
			img.Pix[i] = uint8(rng.Intn(100))
		} else {
			img.Pix[i] = 255
		}
	}
	cfg := DetectorConfig{
		IntensityThreshold:  127,
		KernelSize:          3,
		AreaThreshold:       10,
		ElongationThreshold: 3,
	}
	mask := DetectWalls(img, cfg)

	// Every flagged pixel must belong to a component of the flagged pixels
	// which passes the filter on its own.
	labels := LabelComponents(mask, func(v uint8) bool { return v == MaskOn }, true)
	for _, c := range labels.Components {
		if !cfg.KeepComponent(c) {
			t.Fatalf("kept component fails the filter: %+v", c)
		}
	}
}

func TestDetectorConfigValidate(t *testing.T) {
	if err := DefaultDetectorConfig().Validate(); err != nil {
		t.Fatal(err)
	}
	if err := FloorPassDetectorConfig().Validate(); err != nil {
		t.Fatal(err)
	}
	cfg := DefaultDetectorConfig()
	cfg.KernelSize = 0
	if cfg.Validate() == nil {
		t.Fatal("expected error for zero kernel size")
	}
}

// testRingRaster creates a 200x200 white raster with a 4 pixel wide black
// square ring, whose outer side is 180 and inner side is 172.
func testRingRaster() *RasterImage {
	img := NewGrid[uint8](200, 200)
	img.Fill(255)
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			if inTestRing(x, y) {
				img.Set(x, y, 0)
			}
		}
	}
	return img
}

func inTestRing(x, y int) bool {
	return inTestSquare(x, y, 10, 189) && !inTestSquare(x, y, 14, 185)
}

func inTestSquare(x, y, min, max int) bool {
	return x >= min && x <= max && y >= min && y <= max
}
