// Usage examples:
//
// # Interactive viewer, half blocks in truecolor
// ./termcam -c truecolor scene.png
//
// # Wireframe from a depth map, edges only
// ./termcam -s none -e -depth scene_depth.png -near 1 -far 50 scene.png
//
// # Braille luminance, resampled to fit the terminal
// ./termcam -s luminance -ramp braille -a scene.png
//
// # Print 120 columns of 256-color ANSI (pipe to less -R, etc.)
// ./termcam -p -c 256 -cols 120 scene.png | less -R

package main

import (
	"flag"
	"fmt"
	"image"
	"log/slog"
	"math"
	"os"

	"github.com/lixenwraith/termcam/camera"
	"github.com/lixenwraith/termcam/config"
	"github.com/lixenwraith/termcam/render"
)

func main() {
	var (
		configPath  string
		colorStr    string
		kind        string
		ramp        string
		orientation string
		edges       bool
		autoresize  bool
		stretch     bool
		depthPath   string
		normalsPath string
		near        float64
		far         float64
		printMode   bool
		outPath     string
		cols        int
		rows        int
		noStatus    bool
		verbose     bool
	)

	flag.StringVar(&configPath, "config", "", "YAML config file; flags given explicitly override it")
	flag.StringVar(&colorStr, "c", "auto", "Color depth: 'auto', 'truecolor', '256', '16', or 'none'")
	flag.StringVar(&kind, "s", "halfblocks", "Strategy: 'halfblocks', 'luminance', 'depth', or 'none'")
	flag.StringVar(&ramp, "ramp", "braille", "Glyph ramp for luminance/depth: 'braille', 'misc', or 'shading'")
	flag.StringVar(&orientation, "o", "lower", "Half-block orientation: 'lower' or 'upper'")
	flag.BoolVar(&edges, "e", false, "Overlay edge glyphs (needs -depth or -normals)")
	flag.BoolVar(&autoresize, "a", false, "Resample the image to match the cell area")
	flag.BoolVar(&stretch, "stretch", false, "Fill the area instead of preserving aspect")
	flag.StringVar(&depthPath, "depth", "", "Grayscale depth map, white is near")
	flag.StringVar(&normalsPath, "normals", "", "RGB normal map")
	flag.Float64Var(&near, "near", 0, "Depth of a white depth map pixel")
	flag.Float64Var(&far, "far", 100, "Depth of a black depth map pixel")
	flag.BoolVar(&printMode, "p", false, "Print ANSI text to stdout instead of opening a viewer")
	flag.StringVar(&outPath, "out", "-", "Print mode destination, '-' for stdout")
	flag.IntVar(&cols, "cols", 80, "Output columns in print mode")
	flag.IntVar(&rows, "rows", 0, "Output rows in print mode, 0 follows the image aspect")
	flag.BoolVar(&noStatus, "no-status", false, "Hide status bar")
	flag.BoolVar(&verbose, "v", false, "Log render decisions to stderr")
	flag.Usage = printUsage
	flag.Parse()

	if flag.NArg() < 1 {
		printUsage()
		os.Exit(1)
	}

	if verbose {
		camera.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	// Config file first, then explicitly set flags on top
	cfg := &config.File{}
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			fatal(err)
		}
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "c":
			cfg.Color = colorStr
		case "s":
			cfg.Strategy.Kind = kind
		case "ramp":
			cfg.Strategy.Ramp = ramp
		case "o":
			cfg.Strategy.Orientation = orientation
		case "e":
			if cfg.Edge == nil {
				cfg.Edge = &config.EdgeSection{}
			}
			cfg.Edge.Enabled = &edges
		case "a":
			cfg.Autoresize.Enabled = autoresize
		case "stretch":
			cfg.Stretch = stretch
		}
	})
	if err := cfg.Validate(); err != nil {
		fatal(err)
	}
	cam, err := cfg.Camera()
	if err != nil {
		fatal(err)
	}

	src, err := openSource(flag.Arg(0), depthPath, normalsPath, near, far)
	if err != nil {
		fatal(err)
	}
	if size, ok := cfg.TargetSize(); ok && !cam.Autoresize.Enabled {
		if err := src.resize(size.Width, size.Height); err != nil {
			fatal(err)
		}
	}

	if printMode {
		err = printANSI(cam, src, outPath, cols, rows)
	} else {
		err = newViewer(cam, src, !noStatus).run()
	}
	if err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage: termcam [options] <image>")
	fmt.Fprintln(os.Stderr, "\nSupported formats: PNG, JPEG, GIF, BMP, TIFF, WebP")
	fmt.Fprintln(os.Stderr, "\nOptions:")
	flag.PrintDefaults()
	fmt.Fprintln(os.Stderr, "\nControls:")
	fmt.Fprintln(os.Stderr, "  q, Esc, Ctrl+C    Quit")
	fmt.Fprintln(os.Stderr, "  s                 Cycle strategy")
	fmt.Fprintln(os.Stderr, "  e                 Toggle edge glyphs")
	fmt.Fprintln(os.Stderr, "  c                 Cycle color mode")
	fmt.Fprintln(os.Stderr, "  a                 Toggle autoresize")
	fmt.Fprintln(os.Stderr, "  f                 Toggle stretch/fit")
	fmt.Fprintln(os.Stderr, "  S                 Toggle status bar")
}

func openSource(colorPath, depthPath, normalsPath string, near, far float64) (*source, error) {
	color, err := loadImage(colorPath)
	if err != nil {
		return nil, err
	}
	b := color.Bounds()
	fmt.Fprintf(os.Stderr, "Loaded: %s (%dx%d)\n", colorPath, b.Dx(), b.Dy())

	var depth, normals image.Image
	if depthPath != "" {
		if depth, err = loadImage(depthPath); err != nil {
			return nil, err
		}
	}
	if normalsPath != "" {
		if normals, err = loadImage(normalsPath); err != nil {
			return nil, err
		}
	}
	return newSource(color, depth, normals, near, far)
}

// printANSI renders one frame into a cols x rows grid and writes it to output
func printANSI(cam *camera.Camera, src *source, output string, cols, rows int) error {
	if cols <= 0 {
		return fmt.Errorf("invalid column count %d", cols)
	}
	if rows <= 0 {
		aspect := camera.AspectRatio(src.size.Width, src.size.Height)
		if aspect == 0 {
			return fmt.Errorf("empty image")
		}
		rows = max(1, int(math.Round(float64(cols)/aspect)))
	}

	comp := render.NewCompositor(cols, rows)
	if _, err := src.render(cam, render.Rect{Width: cols, Height: rows}, comp); err != nil {
		return err
	}

	if output == "-" {
		return render.WriteANSI(os.Stdout, comp.Grid)
	}
	f, err := os.Create(output)
	if err != nil {
		return err
	}
	if err := render.WriteANSI(f, comp.Grid); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
