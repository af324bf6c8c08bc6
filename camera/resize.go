package camera

import (
	"math"

	"github.com/lixenwraith/termcam/render"
)

// Size is a render target size in pixels
type Size struct {
	Width, Height int
}

// DecisionKind is the autoresize controller verdict
type DecisionKind uint8

const (
	NoOp DecisionKind = iota
	RequestResize
)

func (k DecisionKind) String() string {
	if k == RequestResize {
		return "resize"
	}
	return "noop"
}

// Decision asks the render target owner to reallocate at Width x Height
type Decision struct {
	Kind   DecisionKind
	Width  int
	Height int
}

// ScaleFunc maps a cell area to the render target pixel size it should have
type ScaleFunc func(cols, rows int) (width, height int)

// DefaultScale gives two pixels per column and four per row, square pixels
// on the usual 1:2 terminal cell
func DefaultScale(cols, rows int) (int, int) {
	return max(cols*2, 1), max(rows*4, 1)
}

// Controller decides when the render target no longer matches the cell area.
// It never touches pixel data; the owner of the render target acts on the
// Decision and the next frame arrives at the new size.
type Controller struct {
	Enabled bool
	Scale   ScaleFunc

	// Tolerance is the relative size difference per dimension accepted
	// without a resize; 0 requires an exact match
	Tolerance float64
}

// NewController returns an enabled controller with DefaultScale
func NewController() Controller {
	return Controller{Enabled: true, Scale: DefaultScale}
}

// Target returns the pixel size wanted for area
func (c Controller) Target(area render.Rect) Size {
	scale := c.Scale
	if scale == nil {
		scale = DefaultScale
	}
	w, h := scale(area.Width, area.Height)
	return Size{Width: w, Height: h}
}

// Check compares the current render target size to the one wanted for area
func (c Controller) Check(current Size, area render.Rect) Decision {
	if !c.Enabled || area.Empty() {
		return Decision{}
	}
	want := c.Target(area)
	if want.Width <= 0 || want.Height <= 0 {
		return Decision{}
	}
	if c.differs(current.Width, want.Width) || c.differs(current.Height, want.Height) {
		return Decision{Kind: RequestResize, Width: want.Width, Height: want.Height}
	}
	return Decision{}
}

func (c Controller) differs(have, want int) bool {
	if c.Tolerance <= 0 || math.IsNaN(c.Tolerance) {
		return have != want
	}
	return math.Abs(float64(have-want))/float64(want) > c.Tolerance
}
