package render

import (
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/termcam/terminal"
)

// DrawText writes a single-line label starting at (x, y) and returns the
// number of columns it spans. Wide runes occupy two columns, the second
// holding a zero glyph. A wide rune is written only when both of its columns
// are in bounds and pass the depth test, otherwise neither is. Zero-width
// runes are dropped. Each rune is composited independently so a label can be
// partially occluded. Label cells sit at depth 0 under DepthTest.
func (c *Compositor) DrawText(x, y int, text string, fg, bg terminal.Color, policy DepthPolicy) int {
	col := x
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if w == 2 {
			if c.visible(col, y, 0, policy) && c.visible(col+1, y, 0, policy) {
				c.Draw(col, y, Cell{Glyph: r, Fg: fg, Bg: bg}, policy)
				c.Draw(col+1, y, Cell{Glyph: 0, Fg: fg, Bg: bg}, policy)
			}
		} else {
			c.Draw(col, y, Cell{Glyph: r, Fg: fg, Bg: bg}, policy)
		}
		col += w
	}
	return col - x
}

// TextWidth returns the column width of a label
func TextWidth(text string) int {
	return runewidth.StringWidth(text)
}
