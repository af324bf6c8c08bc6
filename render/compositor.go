package render

import (
	"fmt"
)

type policyKind uint8

const (
	policyTest policyKind = iota
	policyBypass
	policyExplicit
)

// DepthPolicy selects how a draw interacts with the depth buffer
type DepthPolicy struct {
	kind  policyKind
	value float64
}

var (
	// DepthTest tests and records each cell's own Depth
	DepthTest = DepthPolicy{kind: policyTest}

	// DepthBypass always draws and leaves the depth buffer untouched
	DepthBypass = DepthPolicy{kind: policyBypass}
)

// DepthExplicit tests and records v in place of the cell's Depth
func DepthExplicit(v float64) DepthPolicy {
	return DepthPolicy{kind: policyExplicit, value: v}
}

func (p DepthPolicy) String() string {
	switch p.kind {
	case policyTest:
		return "test"
	case policyBypass:
		return "bypass"
	case policyExplicit:
		return fmt.Sprintf("explicit(%g)", p.value)
	}
	return "unknown"
}

// Compositor writes cells into a grid, resolving occlusion per cell through
// an optional depth buffer. Without a depth buffer every draw bypasses.
// Not safe for concurrent use; draws within a pass must be sequenced.
type Compositor struct {
	Grid  *Grid
	Depth *DepthBuffer
}

// NewCompositor allocates a grid and matching depth buffer
func NewCompositor(width, height int) *Compositor {
	return &Compositor{
		Grid:  NewGrid(width, height),
		Depth: NewDepthBuffer(width, height),
	}
}

// Resize resizes both buffers, clearing them
func (c *Compositor) Resize(width, height int) {
	c.Grid.Resize(width, height)
	if c.Depth != nil {
		c.Depth.Resize(width, height)
	}
}

// Begin clears both buffers for a new pass
func (c *Compositor) Begin() {
	c.Grid.Clear()
	if c.Depth != nil {
		c.Depth.Reset()
	}
}

// Width returns the output width in cells
func (c *Compositor) Width() int { return c.Grid.Width() }

// Height returns the output height in cells
func (c *Compositor) Height() int { return c.Grid.Height() }

// visible reports whether a cell at depth would pass Draw at (x, y) without
// writing anything
func (c *Compositor) visible(x, y int, depth float64, policy DepthPolicy) bool {
	if !c.Grid.inBounds(x, y) {
		return false
	}
	if policy.kind == policyBypass || c.Depth == nil {
		return true
	}
	if policy.kind == policyExplicit {
		depth = policy.value
	}
	return sanitize(depth) <= c.Depth.At(x, y)
}

// Draw composites one cell and reports whether it was written.
// Skip cells and out-of-bounds positions are never written.
func (c *Compositor) Draw(x, y int, cell Cell, policy DepthPolicy) bool {
	if cell.Skip || !c.Grid.inBounds(x, y) {
		return false
	}

	if policy.kind == policyBypass || c.Depth == nil {
		c.Grid.Set(x, y, cell)
		return true
	}

	depth := cell.Depth
	if policy.kind == policyExplicit {
		depth = policy.value
	}
	drawn, ok := c.Depth.CompareAndUpdate(x, y, depth)
	if !ok || !drawn {
		return false
	}
	cell.Depth = sanitize(depth)
	c.Grid.Set(x, y, cell)
	return true
}
