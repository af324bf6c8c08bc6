// Package sample reduces the pixels under each terminal cell to a summary
// that the strategy encoders and the edge detector consume.
package sample

import (
	"image"
	"math"

	"github.com/lixenwraith/termcam/frame"
	"github.com/lixenwraith/termcam/terminal"
)

// Sample summarizes the pixel region mapped to one cell
type Sample struct {
	Color terminal.RGB // mean of the whole region
	Alpha uint8

	// Half means, split vertically for half-block glyphs
	Top         terminal.RGB
	TopAlpha    uint8
	Bottom      terminal.RGB
	BottomAlpha uint8

	Luminance float64    // relative luminance of Color, [0,1]
	Depth     float64    // nearest depth in region, +Inf when none
	Normal    frame.Vec3 // normalized sum of region normals, zero when none
	Count     int        // pixels in region
	Empty     bool       // region covers no pixels
}

// Region returns the pixel bounds of cell (row, col) for a width x height frame
// divided into rows x cols cells. Boundaries use integer floor division, so
// adjacent regions share edges and together tile the frame exactly. When an
// axis has more cells than pixels, a cell that would cover no pixels takes
// the one pixel nearest its center instead, replicating pixels across cells.
// Only a frame with no pixels on an axis yields empty regions.
func Region(width, height, rows, cols, row, col int) image.Rectangle {
	x0, x1 := span(width, cols, col)
	y0, y1 := span(height, rows, row)
	return image.Rect(x0, y0, x1, y1)
}

// span is the pixel range [lo, hi) of cell i when n pixels are split across cells
func span(n, cells, i int) (lo, hi int) {
	lo, hi = i*n/cells, (i+1)*n/cells
	if hi == lo && n > 0 {
		lo = min((2*i+1)*n/(2*cells), n-1)
		hi = lo + 1
	}
	return lo, hi
}

// Split returns the row where the bottom half of a region starts.
// Odd heights give the extra row to the top half; a one-row region has an
// empty bottom half.
func Split(r image.Rectangle) int {
	return r.Min.Y + (r.Dy()+1)/2
}

// accum sums pixels of a sub-region. Color sums are weighted by alpha so
// transparent pixels do not pull the mean toward their clear color.
type accum struct {
	r, g, b    int // plain sums, used when every pixel is transparent
	wr, wg, wb int // alpha-weighted sums
	a          int
	n          int
}

func (s *accum) add(f *frame.Frame, x, y int) {
	r, g, b, a := f.RGBA(x, y)
	s.r += int(r)
	s.g += int(g)
	s.b += int(b)
	s.wr += int(r) * int(a)
	s.wg += int(g) * int(a)
	s.wb += int(b) * int(a)
	s.a += int(a)
	s.n++
}

func (s *accum) merge(o accum) accum {
	return accum{
		r: s.r + o.r, g: s.g + o.g, b: s.b + o.b,
		wr: s.wr + o.wr, wg: s.wg + o.wg, wb: s.wb + o.wb,
		a: s.a + o.a, n: s.n + o.n,
	}
}

func (s *accum) mean() (terminal.RGB, uint8) {
	if s.n == 0 {
		return terminal.RGB{}, 0
	}
	alpha := uint8((s.a + s.n - 1) / s.n) // ceil, nonzero if any pixel has alpha
	if s.a == 0 {
		return terminal.RGB{R: roundDiv(s.r, s.n), G: roundDiv(s.g, s.n), B: roundDiv(s.b, s.n)}, alpha
	}
	return terminal.RGB{R: roundDiv(s.wr, s.a), G: roundDiv(s.wg, s.a), B: roundDiv(s.wb, s.a)}, alpha
}

// roundDiv divides rounding half up
func roundDiv(sum, n int) uint8 {
	return uint8((sum + n/2) / n)
}

// Grid partitions f into rows x cols regions and summarizes each, row-major.
// The frame must already be validated. Non-positive grid sizes yield nil.
func Grid(f *frame.Frame, rows, cols int) []Sample {
	if rows <= 0 || cols <= 0 {
		return nil
	}
	out := make([]Sample, rows*cols)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			out[row*cols+col] = Cell(f, Region(f.Width, f.Height, rows, cols, row, col))
		}
	}
	return out
}

// Cell summarizes one pixel region
func Cell(f *frame.Frame, r image.Rectangle) Sample {
	r = r.Intersect(image.Rect(0, 0, f.Width, f.Height))
	if r.Empty() {
		return Sample{Empty: true, Depth: math.Inf(1)}
	}

	var top, bottom accum
	split := Split(r)
	nearest := math.Inf(1)
	var normal frame.Vec3

	for y := r.Min.Y; y < r.Max.Y; y++ {
		half := &top
		if y >= split {
			half = &bottom
		}
		for x := r.Min.X; x < r.Max.X; x++ {
			half.add(f, x, y)
			if f.Depth != nil {
				nearest = min(nearest, f.DepthAt(x, y))
			}
			if f.Normals != nil {
				normal = normal.Add(f.NormalAt(x, y))
			}
		}
	}

	s := Sample{
		Depth:  nearest,
		Normal: normal.Normalize(),
	}
	all := top.merge(bottom)
	s.Count = all.n
	s.Color, s.Alpha = all.mean()
	s.Top, s.TopAlpha = top.mean()
	if bottom.n == 0 {
		s.Bottom, s.BottomAlpha = s.Top, s.TopAlpha
	} else {
		s.Bottom, s.BottomAlpha = bottom.mean()
	}
	s.Luminance = terminal.Luminance(s.Color)
	return s
}

// HasGeometry reports whether any pixel in the region carried finite depth
func (s Sample) HasGeometry() bool {
	return !math.IsInf(s.Depth, 1)
}

// Transparent reports whether every pixel in the region had zero alpha
func (s Sample) Transparent() bool {
	return !s.Empty && s.Alpha == 0
}
