package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/putara/thumpsvg"
	"github.com/putara/thumpsvg/fit"
	"github.com/putara/thumpsvg/probe"
	"github.com/putara/thumpsvg/renderers"
	"github.com/putara/thumpsvg/sanitize"
	"github.com/tdewolff/argp"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/svg"
)

const (
	defaultThumbSize = 128
	maxThumbSize     = 256
)

type Thumb struct {
	Size    int    `short:"s" default:"128" desc:"Thumbnail size in pixels (1-256)"`
	Output  string `short:"o" desc:"Output file (.png .bmp .jpg .gif .tif)"`
	Backend string `short:"b" desc:"Backend (oksvg, rasterizer)"`
	Config  string `short:"c" desc:"YAML configuration file"`
	Verbose bool   `short:"v" desc:"Verbose logging"`
	Input   string `index:"0" desc:"Input SVG or SVGZ file"`
}

type Render struct {
	Fit     string `short:"f" default:"scale:1" desc:"Fit policy: scale:F, contain:WxH or cover:WxH"`
	Output  string `short:"o" desc:"Output file (.png .bmp .jpg .gif .tif)"`
	Backend string `short:"b" desc:"Backend (oksvg, rasterizer)"`
	Config  string `short:"c" desc:"YAML configuration file"`
	Verbose bool   `short:"v" desc:"Verbose logging"`
	Input   string `index:"0" desc:"Input SVG or SVGZ file"`
}

type Sanitize struct {
	Minify bool   `short:"m" desc:"Minify the sanitized document"`
	Output string `short:"o" desc:"Output file, stdout if empty"`
	Config string `short:"c" desc:"YAML configuration file"`
	Input  string `index:"0" desc:"Input SVG or SVGZ file"`
}

type Info struct {
	Backend string `short:"b" desc:"Backend (oksvg, rasterizer)"`
	Config  string `short:"c" desc:"YAML configuration file"`
	Input   string `index:"0" desc:"Input SVG or SVGZ file"`
}

func main() {
	root := argp.NewCmd(&Thumb{}, "SVG thumbnail renderer")
	root.AddCmd(&Render{}, "render", "Render with a fit policy")
	root.AddCmd(&Sanitize{}, "sanitize", "Decompress and patch an SVG file")
	root.AddCmd(&Info{}, "info", "Show intrinsic and thumbnail sizes")
	root.AddCmd(&Batch{}, "batch", "Create thumbnails for a directory tree")
	root.Parse()
	root.PrintHelp()
}

// clampThumbSize limits a requested thumbnail size to the range the shell
// asks for.
func clampThumbSize(size int) uint32 {
	if size < 1 {
		return 1
	} else if maxThumbSize < size {
		return maxThumbSize
	}
	return uint32(size)
}

// outputName returns the output filename for input, replacing its extension.
func outputName(output, input, ext string) string {
	if output != "" {
		return output
	}
	return strings.TrimSuffix(input, filepath.Ext(input)) + ext
}

func (cmd *Thumb) Run() error {
	if cmd.Input == "" {
		return argp.ShowUsage
	}

	r, logger, err := setup(Common{cmd.Config, cmd.Backend, cmd.Verbose})
	if err != nil {
		return err
	}
	data, err := r.LoadFile(cmd.Input)
	if err != nil {
		return err
	}
	bmp, err := r.Thumbnail(data, clampThumbSize(cmd.Size))
	if err != nil {
		logger.Error().Err(err).Stringer("kind", thumpsvg.Classify(err)).Str("file", cmd.Input).Msg("thumbnail failed")
		return err
	}
	return renderers.Write(outputName(cmd.Output, cmd.Input, ".png"), bmp)
}

func (cmd *Render) Run() error {
	if cmd.Input == "" {
		return argp.ShowUsage
	}
	policy, err := fit.ParsePolicy(cmd.Fit)
	if err != nil {
		fmt.Println("ERROR:", err)
		return argp.ShowUsage
	}

	r, logger, err := setup(Common{cmd.Config, cmd.Backend, cmd.Verbose})
	if err != nil {
		return err
	}
	data, err := r.LoadFile(cmd.Input)
	if err != nil {
		return err
	}
	bmp, err := r.Render(data, policy)
	if err != nil {
		logger.Error().Err(err).Stringer("kind", thumpsvg.Classify(err)).Str("file", cmd.Input).Msg("render failed")
		return err
	}
	return renderers.Write(outputName(cmd.Output, cmd.Input, ".png"), bmp)
}

func (cmd *Sanitize) Run() error {
	if cmd.Input == "" {
		return argp.ShowUsage
	}

	config, err := LoadConfig(cmd.Config)
	if err != nil {
		return err
	}
	logger, err := config.Logger(os.Stderr, false)
	if err != nil {
		return err
	}
	opts := config.Options(&logger)
	opts.Workaround = true
	backend, err := renderers.New(config.Backend)
	if err != nil {
		return err
	}
	r := thumpsvg.New(backend, opts)

	data, err := r.LoadFile(cmd.Input)
	if err != nil {
		return err
	}
	if data, err = r.Prepare(data); err != nil {
		return err
	}

	if cmd.Minify {
		m := minify.New()
		m.AddFunc("image/svg+xml", svg.Minify)
		if data, err = m.Bytes("image/svg+xml", data); err != nil {
			return err
		}
	}

	if cmd.Output == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(cmd.Output, data, 0644)
}

func (cmd *Info) Run() error {
	if cmd.Input == "" {
		return argp.ShowUsage
	}

	r, _, err := setup(Common{Config: cmd.Config, Backend: cmd.Backend})
	if err != nil {
		return err
	}
	data, err := r.LoadFile(cmd.Input)
	if err != nil {
		return err
	}

	fmt.Println("File name:", filepath.Base(cmd.Input))
	fmt.Println("File size:", len(data))
	if sanitize.IsCompressed(data) {
		fmt.Println("Compressed: yes")
	} else {
		fmt.Println("Compressed: no")
	}

	prepared, err := r.Prepare(data)
	if err != nil {
		return err
	}
	if info, err := probe.Parse(prepared); err != nil {
		fmt.Println("Root:", err)
	} else {
		fmt.Printf("Root: width=%g height=%g", info.Width, info.Height)
		if info.HasViewBox {
			fmt.Printf(" viewBox=%g", info.ViewBox)
		}
		fmt.Println()
	}

	doc, err := r.Parse(data)
	if err != nil {
		return err
	}
	size := doc.Size()
	if size == nil {
		fmt.Println("Size: unknown")
		return nil
	}
	fmt.Println("Size:", size)
	fmt.Println("Backend:", r.Backend().Name())
	for _, cx := range []uint32{16, 32, 48, 96, defaultThumbSize, maxThumbSize} {
		res, err := fit.Resolve(fit.Contain(cx, cx), size)
		if err != nil {
			fmt.Printf("%4d: %v\n", cx, err)
			continue
		}
		fmt.Printf("%4d: %v\n", cx, res)
	}
	return nil
}
