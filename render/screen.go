package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/termcam/terminal"
)

// Screen is the subset of tcell.Screen the grid draws to
type Screen interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Size() (int, int)
}

// FlushToScreen copies the grid onto a tcell screen at offset (ox, oy).
// Trailing wide-rune columns are left for tcell to manage.
// The caller is responsible for Show.
func (g *Grid) FlushToScreen(s Screen, ox, oy int) {
	sw, sh := s.Size()
	for y := 0; y < g.height; y++ {
		sy := oy + y
		if sy < 0 || sy >= sh {
			continue
		}
		for x := 0; x < g.width; x++ {
			sx := ox + x
			if sx < 0 || sx >= sw {
				continue
			}
			cell := g.cells[y*g.width+x]
			if cell.Glyph == 0 {
				continue
			}
			s.SetContent(sx, sy, cell.Glyph, nil, terminal.TcellStyle(cell.Fg, cell.Bg))
		}
	}
}
