package render

import (
	"github.com/lixenwraith/termcam/terminal"
)

// Cell is one terminal character position produced by a strategy encoder
type Cell struct {
	Glyph rune // 0 marks the trailing column of a wide rune
	Fg    terminal.Color
	Bg    terminal.Color // unset keeps whatever is already underneath
	Depth float64        // consulted by DepthTest, lower is nearer
	Skip  bool           // transparent, never drawn
}

// BlankCell is the cleared grid state
var BlankCell = Cell{Glyph: ' '}

// Rect is a cell-space rectangle
type Rect struct {
	X, Y          int
	Width, Height int
}

// Empty reports whether the rect covers no cells
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains reports whether (x, y) lies inside the rect
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}
