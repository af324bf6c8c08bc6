package render

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"

	"github.com/lixenwraith/termcam/terminal"
)

type recordingScreen struct {
	w, h  int
	cells map[[2]int]rune
}

func (s *recordingScreen) SetContent(x, y int, primary rune, _ []rune, _ tcell.Style) {
	s.cells[[2]int{x, y}] = primary
}

func (s *recordingScreen) Size() (int, int) { return s.w, s.h }

func TestFlushToScreen(t *testing.T) {
	comp := NewCompositor(4, 2)
	fg := terminal.Quantize(terminal.RGBWhite, terminal.ColorModeTrueColor)
	comp.DrawText(0, 0, "a漢", fg, terminal.DefaultColor, DepthBypass)
	comp.Draw(3, 1, Cell{Glyph: 'z'}, DepthBypass)

	scr := &recordingScreen{w: 4, h: 2, cells: make(map[[2]int]rune)}
	comp.Grid.FlushToScreen(scr, 1, 0)

	assert.Equal(t, 'a', scr.cells[[2]int{1, 0}])
	assert.Equal(t, '漢', scr.cells[[2]int{2, 0}])
	_, trailer := scr.cells[[2]int{3, 0}]
	assert.False(t, trailer, "wide rune trailer is left to the screen")
	_, clipped := scr.cells[[2]int{4, 1}]
	assert.False(t, clipped, "cells past the screen edge are dropped")
	assert.Equal(t, ' ', scr.cells[[2]int{1, 1}])
}
