package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"os"

	"github.com/unixpickle/essentials"
	"github.com/unixpickle/floor-d/floord"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

func main() {
	var kernelSize int
	var edgeLevel float64
	var contourLevel float64
	var size float64
	flag.IntVar(&kernelSize, "kernel-size", floord.DefaultKernelSize, "averaging window size")
	flag.Float64Var(&edgeLevel, "edge-level", floord.DefaultEdgeLevel,
		"iso-level for wall edge contours")
	flag.Float64Var(&contourLevel, "contour-level", floord.DefaultContourLevel,
		"iso-level for floor contours")
	flag.Float64Var(&size, "size", 8, "plot size in inches")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: plot_contours [flags] <input> <output.png|output.svg>")
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

	log.Println("Loading raster...")
	data, err := os.ReadFile(inputPath)
	essentials.Must(err)
	img, err := floord.DecodeRaster(data, "", nil)
	essentials.Must(err)

	log.Println("Tracing contours...")
	cfg := floord.DefaultDetectorConfig()
	cfg.KernelSize = kernelSize
	essentials.Must(cfg.Validate())
	walls := floord.DetectWalls(img, cfg)
	floor, _ := floord.ExtractFloor(walls)
	wallContours := floord.TraceContours(floord.Sobel(floord.MaskIntensity(walls)), edgeLevel)
	floorContours := floord.TraceContours(floord.MaskIntensity(floor), contourLevel)
	log.Printf("Found %d wall contours and %d floor contours", len(wallContours),
		len(floorContours))

	p := plot.New()
	p.Title.Text = "Contours"
	p.X.Label.Text = "column"
	p.Y.Label.Text = "row"
	p.X.Min, p.X.Max = 0, float64(img.Width)
	p.Y.Min, p.Y.Max = -float64(img.Height), 0
	addContours(p, wallContours, color.RGBA{R: 200, A: 255}, "walls")
	addContours(p, floorContours, color.RGBA{B: 200, A: 255}, "floor")

	log.Println("Saving plot...")
	essentials.Must(p.Save(vg.Length(size)*vg.Inch, vg.Length(size)*vg.Inch, outputPath))
}

func addContours(p *plot.Plot, contours []*floord.Contour, c color.Color, name string) {
	for i, contour := range contours {
		pts := make(plotter.XYs, 0, len(contour.Points)+1)
		for _, pt := range contour.Points {
			// Rows grow downward in the image.
			pts = append(pts, plotter.XY{X: pt.X, Y: -pt.Y})
		}
		if contour.Closed && len(pts) > 0 {
			pts = append(pts, pts[0])
		}
		line, err := plotter.NewLine(pts)
		essentials.Must(err)
		line.Color = c
		line.Width = vg.Points(1)
		p.Add(line)
		if i == 0 {
			p.Legend.Add(name, line)
		}
	}
}
