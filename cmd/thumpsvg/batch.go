package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/putara/thumpsvg"
	"github.com/putara/thumpsvg/renderers"
	"github.com/tdewolff/argp"
	"golang.org/x/sync/errgroup"
)

type Batch struct {
	Size    int    `short:"s" default:"128" desc:"Thumbnail size in pixels (1-256)"`
	Jobs    int    `short:"j" default:"4" desc:"Number of concurrent jobs"`
	Output  string `short:"o" desc:"Output directory, next to the inputs if empty"`
	Format  string `short:"f" default:"png" desc:"Output format (png, bmp, jpg, gif, tif)"`
	Backend string `short:"b" desc:"Backend (oksvg, rasterizer)"`
	Config  string `short:"c" desc:"YAML configuration file"`
	Verbose bool   `short:"v" desc:"Verbose logging"`
	Input   string `index:"0" desc:"Input directory"`
}

// findSVG returns the SVG and SVGZ files below root in lexical order.
func findSVG(root string) ([]string, error) {
	filenames := []string{}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		} else if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".svg", ".svgz":
			filenames = append(filenames, path)
		}
		return nil
	})
	return filenames, err
}

// batchOutput returns the output filename for input, mirroring the
// directory structure below root into dir.
func batchOutput(dir, root, input, ext string) string {
	if dir == "" {
		return outputName("", input, ext)
	}
	rel, err := filepath.Rel(root, input)
	if err != nil {
		rel = filepath.Base(input)
	}
	return outputName("", filepath.Join(dir, rel), ext)
}

func (cmd *Batch) Run() error {
	if cmd.Input == "" {
		return argp.ShowUsage
	}
	ext := "." + strings.TrimPrefix(strings.ToLower(cmd.Format), ".")
	if _, err := renderers.Writer("thumb" + ext); err != nil {
		fmt.Println("ERROR:", err)
		return argp.ShowUsage
	}

	r, logger, err := setup(Common{cmd.Config, cmd.Backend, cmd.Verbose})
	if err != nil {
		return err
	}
	filenames, err := findSVG(cmd.Input)
	if err != nil {
		return err
	}

	size := clampThumbSize(cmd.Size)
	jobs := cmd.Jobs
	if jobs < 1 {
		jobs = 1
	}

	var failed atomic.Int64
	g := errgroup.Group{}
	g.SetLimit(jobs)
	for _, filename := range filenames {
		filename := filename
		g.Go(func() error {
			output := batchOutput(cmd.Output, cmd.Input, filename, ext)
			if err := thumbnail(r, filename, output, size); err != nil {
				failed.Add(1)
				logger.Error().Err(err).Stringer("kind", thumpsvg.Classify(err)).Str("file", filename).Msg("thumbnail failed")
				return nil
			}
			logger.Debug().Str("file", filename).Str("output", output).Msg("thumbnail written")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	n := failed.Load()
	fmt.Printf("%d files, %d failed\n", len(filenames), n)
	if 0 < n {
		return fmt.Errorf("%d of %d thumbnails failed", n, len(filenames))
	}
	return nil
}

func thumbnail(r *thumpsvg.Renderer, input, output string, size uint32) error {
	data, err := r.LoadFile(input)
	if err != nil {
		return err
	}
	bmp, err := r.Thumbnail(data, size)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(output), 0755); err != nil {
		return err
	}
	return renderers.Write(output, bmp)
}
