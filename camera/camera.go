// Package camera wires sampling, edge detection, encoding, and compositing
// into one render pass per frame.
package camera

import (
	"errors"
	"fmt"

	"github.com/lixenwraith/termcam/edge"
	"github.com/lixenwraith/termcam/frame"
	"github.com/lixenwraith/termcam/render"
	"github.com/lixenwraith/termcam/sample"
	"github.com/lixenwraith/termcam/strategy"
	"github.com/lixenwraith/termcam/terminal"
)

// ErrFrameSkipped wraps the reason a frame produced no output
var ErrFrameSkipped = errors.New("camera: frame skipped")

// Camera is one widget converting frames into cells
type Camera struct {
	Strategy   strategy.Strategy
	Edge       *edge.Config // nil disables edge glyphs
	ColorMode  terminal.ColorMode
	Autoresize Controller

	// Stretch fills the whole area instead of preserving the frame aspect
	Stretch bool
}

// New returns a half-block camera for the detected terminal color mode
func New() *Camera {
	return &Camera{
		Strategy:  strategy.Default(),
		ColorMode: terminal.DetectColorMode(),
	}
}

// Result reports what one Render call did
type Result struct {
	Area     render.Rect // cells the frame was fitted into
	Resize   Decision    // RequestResize means nothing was drawn
	Drawn    int
	Occluded int // cells not written: depth test or outside comp
}

// Render draws f into comp within area.
// An invalid frame or a nil comp is skipped with an error wrapping
// ErrFrameSkipped.
// When autoresize wants a different render target size, nothing is drawn and
// the request is returned instead. Frames with depth are depth-tested so
// several cameras sharing comp occlude each other per cell; frames without
// depth draw over whatever is there.
func (c *Camera) Render(f *frame.Frame, area render.Rect, comp *render.Compositor) (Result, error) {
	log := Logger()

	if f == nil {
		return Result{}, fmt.Errorf("%w: nil frame", ErrFrameSkipped)
	}
	if comp == nil {
		return Result{}, fmt.Errorf("%w: nil compositor", ErrFrameSkipped)
	}
	if err := f.Validate(); err != nil {
		log.Warn("frame skipped", "err", err)
		return Result{}, fmt.Errorf("%w: %w", ErrFrameSkipped, err)
	}
	if area.Empty() {
		return Result{}, nil
	}

	if dec := c.Autoresize.Check(Size{f.Width, f.Height}, area); dec.Kind == RequestResize {
		log.Debug("resize requested",
			"from_w", f.Width, "from_h", f.Height,
			"to_w", dec.Width, "to_h", dec.Height)
		return Result{Resize: dec}, nil
	}

	ra := area
	if !c.Stretch {
		ra = RenderArea(area, f.Width, f.Height)
	}
	if ra.Empty() || f.Empty() {
		return Result{Area: ra}, nil
	}

	rows, cols := ra.Height, ra.Width
	samples := sample.Grid(f, rows, cols)

	var cls []edge.Classification
	if c.Edge.Active() {
		cls = edge.Detect(samples, rows, cols, f.HasDepth(), f.HasNormals(), *c.Edge)
	}

	policy := render.DepthBypass
	if f.HasDepth() {
		policy = render.DepthTest
	}

	st := c.Strategy
	if st == nil {
		st = strategy.Default()
	}

	res := Result{Area: ra}
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			i := y*cols + x
			var cl *edge.Classification
			if cls != nil {
				cl = &cls[i]
			}
			cell := strategy.Encode(st, samples[i], cl, c.Edge, c.ColorMode)
			if cell.Skip {
				continue
			}
			if comp.Draw(ra.X+x, ra.Y+y, cell, policy) {
				res.Drawn++
			} else {
				res.Occluded++
			}
		}
	}

	log.Debug("frame rendered",
		"strategy", st.Name(),
		"cols", cols, "rows", rows,
		"drawn", res.Drawn, "occluded", res.Occluded)
	return res, nil
}
