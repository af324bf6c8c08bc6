package render

// Grid is the composited output, row-major, with per-pass write tracking
type Grid struct {
	cells   []Cell // Optimization: Persistent buffer reused across passes
	touched []bool
	width   int
	height  int
}

// NewGrid creates a cleared grid with the specified dimensions
func NewGrid(width, height int) *Grid {
	g := &Grid{}
	g.Resize(width, height)
	return g
}

// Resize adjusts grid dimensions, reallocates only if capacity insufficient
func (g *Grid) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	size := width * height
	if cap(g.cells) < size {
		g.cells = make([]Cell, size)
		g.touched = make([]bool, size)
	} else {
		g.cells = g.cells[:size]
		g.touched = g.touched[:size]
	}
	g.width = width
	g.height = height
	g.Clear()
}

// Clear resets all cells to blank using exponential copy
func (g *Grid) Clear() {
	if len(g.cells) == 0 {
		return
	}
	g.cells[0] = BlankCell
	g.touched[0] = false
	for filled := 1; filled < len(g.cells); filled *= 2 {
		copy(g.cells[filled:], g.cells[:filled])
	}
	for filled := 1; filled < len(g.touched); filled *= 2 {
		copy(g.touched[filled:], g.touched[:filled])
	}
}

// Width returns the grid width in cells
func (g *Grid) Width() int { return g.width }

// Height returns the grid height in cells
func (g *Grid) Height() int { return g.height }

// inBounds returns true if in grid bounds
func (g *Grid) inBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// At returns the cell at (x, y), BlankCell when out of bounds
func (g *Grid) At(x, y int) Cell {
	if !g.inBounds(x, y) {
		return BlankCell
	}
	return g.cells[y*g.width+x]
}

// Touched reports whether (x, y) was written since the last Clear
func (g *Grid) Touched(x, y int) bool {
	return g.inBounds(x, y) && g.touched[y*g.width+x]
}

// Set writes a cell. Glyph and foreground always replace; an unset
// background preserves the existing one so overlays keep the scene behind them.
func (g *Grid) Set(x, y int, c Cell) {
	if !g.inBounds(x, y) {
		return
	}
	idx := y*g.width + x
	dst := &g.cells[idx]

	dst.Glyph = c.Glyph
	dst.Fg = c.Fg
	if c.Bg.IsSet() {
		dst.Bg = c.Bg
	}
	dst.Depth = c.Depth
	dst.Skip = false
	g.touched[idx] = true
}

// Cells exposes the backing slice for zero-copy export
func (g *Grid) Cells() []Cell {
	return g.cells
}

// Rows returns the grid as per-row slices sharing the backing array
func (g *Grid) Rows() [][]Cell {
	rows := make([][]Cell, g.height)
	for y := range rows {
		rows[y] = g.cells[y*g.width : (y+1)*g.width]
	}
	return rows
}
