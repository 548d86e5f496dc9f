package floord

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

const (
	DefaultWallHeight       = 5.0
	DefaultFloorHeight      = 0.1
	DefaultCeilingHeight    = 0.1
	DefaultBufferDistance   = 0.1
	DefaultResizeHeightGain = 10.0
	DefaultResizeAreaGain   = 100.0

	maxConfigFileSize = 1 << 20
)

// Config holds every parameter of one pipeline run.
//
// The JSON form uses the field tags, and fields missing from a JSON file
// keep their values from DefaultConfig.
type Config struct {
	DetectorConfig

	// FloorDetector, if set, produces a separate mask for floor extraction
	// instead of reusing the wall mask.
	FloorDetector *DetectorConfig `json:"floor_detector,omitempty"`

	WallHeight    float64 `json:"wall_height"`
	FloorHeight   float64 `json:"floor_height"`
	CeilingHeight float64 `json:"ceiling_height"`

	BufferDistance float64 `json:"buffer_distance"`

	Walls   bool `json:"walls"`
	Floor   bool `json:"floor"`
	Ceiling bool `json:"ceiling"`

	ScalingFactor float64       `json:"scaling_factor"`
	ScalingMethod ScalingMethod `json:"scaling_method"`

	// ContourFilter is the minimum polygon area in world units squared.
	ContourFilter float64 `json:"contour_filter"`

	// EdgeLevel is the iso-level traced on the edge magnitude of the wall
	// mask, and ContourLevel is the iso-level traced on the floor mask.
	EdgeLevel    float64 `json:"edge_level"`
	ContourLevel float64 `json:"contour_level"`

	SimplifyTolerance float64 `json:"simplify_tolerance"`

	// With ScaleResize, the wall height and the contour filter are
	// multiplied by these gains.
	ResizeHeightGain float64 `json:"resize_height_gain"`
	ResizeAreaGain   float64 `json:"resize_area_gain"`

	OutputFormat MeshFormat `json:"output_format"`
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() *Config {
	return &Config{
		DetectorConfig:   DefaultDetectorConfig(),
		WallHeight:       DefaultWallHeight,
		FloorHeight:      DefaultFloorHeight,
		CeilingHeight:    DefaultCeilingHeight,
		BufferDistance:   DefaultBufferDistance,
		Walls:            true,
		Floor:            true,
		Ceiling:          true,
		ScalingFactor:    1.0,
		ScalingMethod:    ScaleContour,
		EdgeLevel:        DefaultEdgeLevel,
		ContourLevel:     DefaultContourLevel,
		ResizeHeightGain: DefaultResizeHeightGain,
		ResizeAreaGain:   DefaultResizeAreaGain,
		OutputFormat:     FormatGLB,
	}
}

// LoadConfig reads a JSON configuration file on top of DefaultConfig.
func LoadConfig(path string) (*Config, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, errors.Errorf("config file must have .json extension, got %q", ext)
	}
	info, err := os.Stat(cleanPath)
	if err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	if info.Size() > maxConfigFileSize {
		return nil, errors.Errorf("config file too large: %d bytes (max %d)", info.Size(),
			maxConfigFileSize)
	}
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that every numeric parameter is usable.
//
// An unknown scaling method is not an error; the pipeline falls back to
// ScaleContour.
func (c *Config) Validate() error {
	if err := c.DetectorConfig.Validate(); err != nil {
		return err
	}
	if c.FloorDetector != nil {
		if err := c.FloorDetector.Validate(); err != nil {
			return errors.Wrap(err, "floor detector")
		}
	}
	for _, h := range []struct {
		Name  string
		Value float64
	}{
		{"wall height", c.WallHeight},
		{"floor height", c.FloorHeight},
		{"ceiling height", c.CeilingHeight},
		{"scaling factor", c.ScalingFactor},
	} {
		if !(h.Value > 0) {
			return errors.Wrapf(ErrInvalidConfig, "%s must be positive, got %f", h.Name, h.Value)
		}
	}
	for _, v := range []struct {
		Name  string
		Value float64
	}{
		{"buffer distance", c.BufferDistance},
		{"contour filter", c.ContourFilter},
		{"simplify tolerance", c.SimplifyTolerance},
		{"resize height gain", c.ResizeHeightGain},
		{"resize area gain", c.ResizeAreaGain},
	} {
		if v.Value < 0 {
			return errors.Wrapf(ErrInvalidConfig, "%s must not be negative, got %f", v.Name, v.Value)
		}
	}
	switch c.OutputFormat {
	case FormatGLB, FormatSTL, "":
	default:
		return errors.Wrapf(ErrInvalidConfig, "unknown output format %q", c.OutputFormat)
	}
	return nil
}

// Layers returns the per-layer extrusion settings.
//
// The ceiling uses the floor footprint, and sits on top of the walls.
func (c *Config) Layers() []LayerConfig {
	wallHeight := c.WallHeight
	if c.ScalingMethod == ScaleResize {
		wallHeight *= c.ResizeHeightGain
	}
	return []LayerConfig{
		{Role: RoleWall, Height: wallHeight, Enabled: c.Walls},
		{Role: RoleFloor, Height: c.FloorHeight, Enabled: c.Floor},
		{Role: RoleCeiling, Height: c.CeilingHeight, VerticalShift: wallHeight, Enabled: c.Ceiling},
	}
}

// PolygonConfig returns the settings for BuildPolygons.
func (c *Config) PolygonConfig() PolygonConfig {
	res := PolygonConfig{
		BufferDistance:    c.BufferDistance,
		ScalingFactor:     c.ScalingFactor,
		ScalingMethod:     c.ScalingMethod,
		ContourFilter:     c.ContourFilter,
		SimplifyTolerance: c.SimplifyTolerance,
	}
	if c.ScalingMethod == ScaleResize {
		res.ScalingFactor = 1
		res.ContourFilter *= c.ResizeAreaGain
	}
	return res
}
