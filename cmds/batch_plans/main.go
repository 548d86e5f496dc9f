package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/pkg/errors"
	"github.com/unixpickle/essentials"
	"github.com/unixpickle/floor-d/floord"
)

var inputExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
	".webp": true,
	".tif":  true,
	".tiff": true,
}

func main() {
	var configPath string
	var workers int
	var format string
	flag.StringVar(&configPath, "config", "", "path to a JSON configuration file")
	flag.IntVar(&workers, "workers", 0, "number of plans processed at once (0 for GOMAXPROCS)")
	flag.StringVar(&format, "format", string(floord.FormatGLB), "mesh format (glb or stl)")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: batch_plans [flags] <input_dir> <output_dir>")
		fmt.Fprintln(os.Stderr)
		flag.PrintDefaults()
	}
	flag.Parse()

	args := flag.Args()
	if len(args) != 2 {
		flag.Usage()
		os.Exit(1)
	}
	inputDir, outputDir := args[0], args[1]

	cfg := floord.DefaultConfig()
	if configPath != "" {
		var err error
		cfg, err = floord.LoadConfig(configPath)
		essentials.Must(err)
	}
	cfg.OutputFormat = floord.MeshFormat(format)
	essentials.Must(cfg.Validate())

	inputs, err := listInputs(inputDir)
	essentials.Must(err)
	essentials.Must(os.MkdirAll(outputDir, 0755))
	log.Printf("Processing %d plans...", len(inputs))

	pipeline := &floord.Pipeline{Concurrency: 1}
	var failures, empty int64
	essentials.ConcurrentMap(workers, len(inputs), func(i int) {
		name := inputs[i]
		err := processPlan(pipeline, filepath.Join(inputDir, name), outputDir, cfg)
		if errors.Is(err, floord.ErrEmptyResult) {
			atomic.AddInt64(&empty, 1)
			log.Printf(" - %s: no geometry", name)
		} else if err != nil {
			atomic.AddInt64(&failures, 1)
			log.Printf(" - %s: %v", name, err)
		} else {
			log.Printf(" - %s: done", name)
		}
	})
	log.Printf("Finished: %d succeeded, %d empty, %d failed",
		int64(len(inputs))-failures-empty, empty, failures)
	if failures > 0 {
		os.Exit(1)
	}
}

func listInputs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(err, "list inputs")
	}
	var res []string
	for _, e := range entries {
		if !e.IsDir() && inputExtensions[strings.ToLower(filepath.Ext(e.Name()))] {
			res = append(res, e.Name())
		}
	}
	sort.Strings(res)
	return res, nil
}

func processPlan(p *floord.Pipeline, inputPath, outputDir string, cfg *floord.Config) error {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return err
	}
	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	res, runErr := p.Process(context.Background(), data, "", cfg, nil, nil)
	if res != nil {
		maskPath := filepath.Join(outputDir, base+"_mask.png")
		if err := floord.Save(maskPath, res.WallMask, floord.WriteMaskPNG); err != nil {
			return err
		}
	}
	if runErr != nil {
		return runErr
	}
	meshPath := filepath.Join(outputDir, base+"."+string(cfg.OutputFormat))
	return floord.Save(meshPath, res.Mesh, func(w io.Writer, m *floord.Mesh) error {
		return floord.WriteMesh(w, m, cfg.OutputFormat)
	})
}
