package render

import (
	"bufio"
	"io"

	"github.com/lixenwraith/termcam/terminal"
)

// WriteANSI emits the grid as rows of SGR-colored text.
// Colors are written as quantized; a new SGR sequence is emitted only when
// fg or bg changes. Every row ends with a reset and newline.
func WriteANSI(w io.Writer, g *Grid) error {
	bw := bufio.NewWriter(w)
	var seq []byte

	for y := 0; y < g.height; y++ {
		var lastFg, lastBg terminal.Color
		lastValid := false

		for x := 0; x < g.width; x++ {
			cell := g.cells[y*g.width+x]
			if cell.Glyph == 0 {
				// Trailing half of a wide rune
				continue
			}

			if !lastValid || cell.Fg != lastFg || cell.Bg != lastBg {
				seq = terminal.AppendSGR(seq[:0], cell.Fg, cell.Bg)
				if _, err := bw.Write(seq); err != nil {
					return err
				}
				lastFg, lastBg = cell.Fg, cell.Bg
				lastValid = true
			}
			if _, err := bw.WriteRune(cell.Glyph); err != nil {
				return err
			}
		}
		if _, err := bw.WriteString(terminal.SGRReset + "\n"); err != nil {
			return err
		}
	}

	return bw.Flush()
}
