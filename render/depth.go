package render

import (
	"math"
)

// DepthBuffer holds the nearest accepted depth per cell for one compositing pass.
// Values only decrease between Resets.
type DepthBuffer struct {
	values []float64
	width  int
	height int
}

// NewDepthBuffer creates a buffer with every cell at +Inf
func NewDepthBuffer(width, height int) *DepthBuffer {
	b := &DepthBuffer{}
	b.Resize(width, height)
	return b
}

// Resize adjusts dimensions, reallocates only if capacity insufficient, and resets
func (b *DepthBuffer) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	size := width * height
	if cap(b.values) < size {
		b.values = make([]float64, size)
	} else {
		b.values = b.values[:size]
	}
	b.width = width
	b.height = height
	b.Reset()
}

// Reset returns every cell to +Inf for the next pass
func (b *DepthBuffer) Reset() {
	if len(b.values) == 0 {
		return
	}
	b.values[0] = math.Inf(1)
	for filled := 1; filled < len(b.values); filled *= 2 {
		copy(b.values[filled:], b.values[:filled])
	}
}

// Width returns the buffer width in cells
func (b *DepthBuffer) Width() int { return b.width }

// Height returns the buffer height in cells
func (b *DepthBuffer) Height() int { return b.height }

// At returns the stored depth, +Inf when out of bounds
func (b *DepthBuffer) At(x, y int) float64 {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return math.Inf(1)
	}
	return b.values[y*b.width+x]
}

// CompareAndUpdate accepts depth if it is not farther than the stored value
// and records it. Equal depth is accepted so redrawing the same cell at the
// same depth is idempotent and the later draw wins.
// NaN is treated as +Inf and negative values as 0.
// ok is false when (x, y) is outside the buffer.
func (b *DepthBuffer) CompareAndUpdate(x, y int, depth float64) (drawn, ok bool) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return false, false
	}
	depth = sanitize(depth)
	idx := y*b.width + x
	if depth > b.values[idx] {
		return false, true
	}
	b.values[idx] = depth
	return true, true
}

func sanitize(d float64) float64 {
	if math.IsNaN(d) {
		return math.Inf(1)
	}
	if d < 0 {
		return 0
	}
	return d
}
