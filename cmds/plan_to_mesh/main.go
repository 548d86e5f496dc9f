package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/paulmach/orb/geojson"
	"github.com/unixpickle/essentials"
	"github.com/unixpickle/floor-d/floord"
	"github.com/unixpickle/model3d/render3d"
)

func main() {
	var configPath string
	var maskPath string
	var floorMaskPath string
	var geoJSONPath string
	var previewPath string
	var previewSize int
	var timeout time.Duration
	flag.StringVar(&configPath, "config", "", "path to a JSON configuration file")
	flag.StringVar(&maskPath, "mask", "", "optional path to save the wall mask")
	flag.StringVar(&floorMaskPath, "floor-mask", "", "optional path to save the floor mask")
	flag.StringVar(&geoJSONPath, "geojson", "", "optional path to save polygons as GeoJSON")
	flag.StringVar(&previewPath, "preview", "", "optional path to save a rendered preview")
	flag.IntVar(&previewSize, "preview-size", 300, "size of each preview image")
	flag.DurationVar(&timeout, "timeout", 0, "maximum processing time (0 for no limit)")

	cfg := floord.DefaultConfig()
	flag.Float64Var(&cfg.WallHeight, "wall-height", cfg.WallHeight, "wall extrusion height")
	flag.Float64Var(&cfg.BufferDistance, "buffer", cfg.BufferDistance, "polygon buffer distance")
	flag.Float64Var(&cfg.ScalingFactor, "scale", cfg.ScalingFactor, "pixels to world units")
	flag.Float64Var(&cfg.ContourFilter, "min-area", cfg.ContourFilter, "minimum polygon area")
	flag.IntVar(&cfg.KernelSize, "kernel-size", cfg.KernelSize, "averaging window size")
	noWalls := flag.Bool("no-walls", false, "do not produce walls")
	noFloor := flag.Bool("no-floor", false, "do not produce a floor")
	noCeiling := flag.Bool("no-ceiling", false, "do not produce a ceiling")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: plan_to_mesh [flags] <input> <output.glb|output.stl>")
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Command-line flags override values from -config.")
		fmt.Fprintln(os.Stderr)
		flag.PrintDefaults()
	}
	flag.Parse()

	args := flag.Args()
	if len(args) != 2 {
		flag.Usage()
		os.Exit(1)
	}
	inputPath, outputPath := args[0], args[1]

	if configPath != "" {
		log.Println("Loading config...")
		loaded, err := floord.LoadConfig(configPath)
		essentials.Must(err)
		applyFlags(loaded, cfg)
		cfg = loaded
	}
	cfg.Walls = cfg.Walls && !*noWalls
	cfg.Floor = cfg.Floor && !*noFloor
	cfg.Ceiling = cfg.Ceiling && !*noCeiling
	cfg.OutputFormat = floord.FormatForPath(outputPath)

	log.Println("Loading raster...")
	data, err := os.ReadFile(inputPath)
	essentials.Must(err)

	ctx := context.Background()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	log.Println("Running pipeline...")
	pipeline := &floord.Pipeline{Logger: log.Default()}
	res, err := pipeline.Process(ctx, data, "", cfg, nil, nil)
	if res != nil {
		saveMasks(res, maskPath, floorMaskPath)
	}
	essentials.Must(err)

	for _, layer := range res.Layers {
		log.Printf(" - %s: %d contours, %d polygons, %d faces", layer.Layer.Role,
			layer.Contours, len(layer.Polygons), layer.Mesh.NumFaces())
	}

	log.Println("Saving mesh...")
	essentials.Must(floord.Save(outputPath, res.Mesh, func(w io.Writer, m *floord.Mesh) error {
		return floord.WriteMesh(w, m, cfg.OutputFormat)
	}))

	if geoJSONPath != "" {
		log.Println("Saving GeoJSON...")
		var polys []*floord.Polygon
		for _, layer := range res.Layers {
			polys = append(polys, layer.Polygons...)
		}
		fc := floord.PolygonFeatures(polys)
		essentials.Must(floord.Save(geoJSONPath, fc, writeGeoJSON))
	}

	if previewPath != "" {
		log.Println("Rendering preview...")
		object := render3d.Objectify(res.Mesh.Model3D(), nil)
		essentials.Must(render3d.SaveRandomGrid(previewPath, object, 3, 3, previewSize, nil))
	}
}

// applyFlags copies explicitly set flags on top of a loaded config.
func applyFlags(dst, flagValues *floord.Config) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "wall-height":
			dst.WallHeight = flagValues.WallHeight
		case "buffer":
			dst.BufferDistance = flagValues.BufferDistance
		case "scale":
			dst.ScalingFactor = flagValues.ScalingFactor
		case "min-area":
			dst.ContourFilter = flagValues.ContourFilter
		case "kernel-size":
			dst.KernelSize = flagValues.KernelSize
		}
	})
}

func saveMasks(res *floord.Result, maskPath, floorMaskPath string) {
	if maskPath != "" {
		essentials.Must(floord.Save(maskPath, res.WallMask, floord.WriteMaskPNG))
	}
	if floorMaskPath != "" {
		essentials.Must(floord.Save(floorMaskPath, res.FloorMask, floord.WriteMaskPNG))
	}
}

func writeGeoJSON(w io.Writer, fc *geojson.FeatureCollection) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(fc)
}
