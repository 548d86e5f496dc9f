package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/unixpickle/essentials"
	"github.com/unixpickle/floor-d/floord"
)

func main() {
	var cfg floord.DetectorConfig
	var floorMaskPath string
	var floorPass bool
	def := floord.DefaultDetectorConfig()
	flag.Float64Var(&cfg.IntensityThreshold, "intensity-threshold", def.IntensityThreshold,
		"local average intensity at or below which a pixel is ink")
	flag.IntVar(&cfg.KernelSize, "kernel-size", def.KernelSize, "averaging window size")
	flag.IntVar(&cfg.AreaThreshold, "area-threshold", def.AreaThreshold,
		"minimum area of kept components")
	flag.Float64Var(&cfg.ElongationThreshold, "elongation-threshold", def.ElongationThreshold,
		"minimum elongation of kept small components")
	flag.StringVar(&floorMaskPath, "floor-mask", "", "optional path to save the floor mask")
	flag.BoolVar(&floorPass, "floor-pass", false,
		"extract the floor from a mask made with the stricter floor parameters")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: detect_walls [flags] <input> <output.png>")
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
	essentials.Must(cfg.Validate())

	log.Println("Loading raster...")
	data, err := os.ReadFile(inputPath)
	essentials.Must(err)
	img, err := floord.DecodeRaster(data, "", nil)
	essentials.Must(err)
	log.Printf("Raster size: %dx%d", img.Width, img.Height)

	log.Println("Detecting walls...")
	walls := floord.DetectWalls(img, cfg)
	essentials.Must(floord.Save(outputPath, walls, floord.WriteMaskPNG))

	if floorMaskPath != "" {
		log.Println("Extracting floor...")
		source := walls
		if floorPass {
			source = floord.DetectWalls(img, floord.FloorPassDetectorConfig())
		}
		floor, ok := floord.ExtractFloor(source)
		if !ok {
			log.Println("No enclosed floor region found.")
		}
		essentials.Must(floord.Save(floorMaskPath, floor, floord.WriteMaskPNG))
	}
}
