package floord

import (
	"context"
	"io"
	"time"

	"github.com/pkg/errors"
	"github.com/unixpickle/essentials"
)

// A Pipeline turns floor plan rasters into wall masks and meshes.
//
// A Pipeline holds no per-run state, so one value may be used for many
// concurrent runs.
type Pipeline struct {
	// Logger receives progress messages and geometry warnings. It may be nil.
	Logger Logger

	// Rasterizer renders PDF input. It may be nil if PDFs are not needed.
	Rasterizer PageRasterizer

	// Concurrency is the maximum number of Goroutines used to extrude the
	// polygons of a layer. If it is 0, GOMAXPROCS is used.
	Concurrency int
}

// A LayerResult describes the geometry produced for one layer.
type LayerResult struct {
	Layer    LayerConfig
	Contours int
	Polygons []*Polygon
	Mesh     *Mesh

	// ExtrudeFailures counts accepted polygons which could not be
	// triangulated.
	ExtrudeFailures int
}

// A Result holds everything produced by one run.
type Result struct {
	WallMask  *Mask
	FloorMask *Mask

	// FloorFound is false if no enclosed region was found, in which case
	// FloorMask is blank.
	FloorFound bool

	Layers []*LayerResult
	Report *BuildReport

	// EmptyLayers lists the enabled layers which produced no geometry.
	EmptyLayers []LayerRole

	// Mesh combines the meshes of every enabled layer.
	Mesh *Mesh
}

// Run executes every stage of the pipeline on a decoded raster.
//
// The context is checked between stages, and a cancelled run returns the
// context's error.
//
// If no geometry is produced, the returned error wraps ErrEmptyResult and
// the Result is still returned so that the masks can be used.
func (p *Pipeline) Run(ctx context.Context, img *RasterImage, cfg *Config) (*Result, error) {
	logger := loggerOrDiscard(p.Logger)
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = p.normalizeConfig(cfg)

	if err := checkpoint(ctx, "detect walls"); err != nil {
		return nil, err
	}
	start := time.Now()
	res := &Result{Report: &BuildReport{}}
	res.WallMask = DetectWalls(img, cfg.DetectorConfig)
	logger.Printf("detected walls in %dx%d raster in %v", img.Width, img.Height,
		time.Since(start))

	if err := checkpoint(ctx, "extract floor"); err != nil {
		return nil, err
	}
	floorSource := res.WallMask
	if cfg.FloorDetector != nil {
		floorSource = DetectWalls(img, *cfg.FloorDetector)
	}
	res.FloorMask, res.FloorFound = ExtractFloor(floorSource)
	if !res.FloorFound {
		logger.Printf("warning: no enclosed floor region found")
	}

	wallTrace, floorTrace := res.WallMask, res.FloorMask
	if cfg.ScalingMethod == ScaleResize {
		var err error
		if wallTrace, err = ResizeMask(wallTrace, cfg.ScalingFactor); err != nil {
			return nil, err
		}
		if floorTrace, err = ResizeMask(floorTrace, cfg.ScalingFactor); err != nil {
			return nil, err
		}
		logger.Printf("resized masks to %dx%d", wallTrace.Width, wallTrace.Height)
	}

	var floorContours []*Contour
	var floorTraced bool
	var meshes []*Mesh
	for _, layer := range cfg.Layers() {
		if !layer.Enabled {
			continue
		}
		if err := checkpoint(ctx, "process "+string(layer.Role)); err != nil {
			return nil, err
		}
		var contours []*Contour
		if layer.UsesEdges() {
			contours = TraceContours(Sobel(MaskIntensity(wallTrace)), cfg.EdgeLevel)
		} else {
			if !floorTraced {
				floorContours = TraceContours(MaskIntensity(floorTrace), cfg.ContourLevel)
				floorTraced = true
			}
			contours = floorContours
		}
		lr := p.buildLayer(layer, contours, cfg, res.Report, logger)
		res.Layers = append(res.Layers, lr)
		if lr.Mesh.Empty() {
			res.EmptyLayers = append(res.EmptyLayers, layer.Role)
			logger.Printf("warning: %s layer produced no geometry", layer.Role)
		} else {
			meshes = append(meshes, lr.Mesh)
		}
	}

	res.Mesh = Concat(meshes...)
	logger.Printf("built mesh with %d faces (%d polygons accepted, %d rejected) in %v",
		res.Mesh.NumFaces(), res.Report.Accepted(), res.Report.Rejected(), time.Since(start))
	if res.Mesh.Empty() {
		return res, errors.Wrap(ErrEmptyResult, "no layer produced any polygons")
	}
	return res, nil
}

// Process decodes an input, runs the pipeline, and writes the wall mask and
// the combined mesh.
//
// Either writer may be nil to skip that output. The mask is written even if
// no geometry is produced, but the mesh is not.
func (p *Pipeline) Process(ctx context.Context, data []byte, contentType string, cfg *Config,
	maskOut, meshOut io.Writer) (*Result, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	img, err := DecodeRaster(data, contentType, p.Rasterizer)
	if err != nil {
		return nil, err
	}
	res, runErr := p.Run(ctx, img, cfg)
	if res == nil {
		return nil, runErr
	}
	if maskOut != nil {
		if err := WriteMaskPNG(maskOut, res.WallMask); err != nil {
			return res, err
		}
	}
	if runErr != nil {
		return res, runErr
	}
	if meshOut != nil {
		if err := WriteMesh(meshOut, res.Mesh, cfg.OutputFormat); err != nil {
			return res, err
		}
	}
	return res, nil
}

func (p *Pipeline) buildLayer(layer LayerConfig, contours []*Contour, cfg *Config,
	report *BuildReport, logger Logger) *LayerResult {
	polys, layerReport := BuildPolygons(contours, layer.Role, cfg.PolygonConfig(), logger)
	report.Add(layerReport)

	meshes := make([]*Mesh, len(polys))
	errs := make([]error, len(polys))
	essentials.ConcurrentMap(p.Concurrency, len(polys), func(i int) {
		meshes[i], errs[i] = Extrude(polys[i], layer)
	})

	res := &LayerResult{
		Layer:    layer,
		Contours: len(contours),
		Polygons: polys,
	}
	for i, err := range errs {
		if err != nil {
			logger.Printf("warning: skipping %s polygon %d: %v", layer.Role, i, err)
			meshes[i] = nil
			res.ExtrudeFailures++
		}
	}
	res.Mesh = Concat(meshes...)
	return res
}

func (p *Pipeline) normalizeConfig(cfg *Config) *Config {
	switch cfg.ScalingMethod {
	case ScaleContour, ScaleResize:
		return cfg
	}
	loggerOrDiscard(p.Logger).Printf("warning: unknown scaling method %q, using %q",
		cfg.ScalingMethod, ScaleContour)
	res := *cfg
	res.ScalingMethod = ScaleContour
	return &res
}

func checkpoint(ctx context.Context, stage string) error {
	if ctx == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return errors.Wrap(err, "before "+stage)
	}
	return nil
}
