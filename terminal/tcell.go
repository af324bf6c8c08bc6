package terminal

import (
	"github.com/gdamore/tcell/v2"
)

// TcellColor converts a quantized color to its tcell equivalent
func TcellColor(c Color) tcell.Color {
	switch c.Kind {
	case ColorRGB:
		return tcell.NewRGBColor(int32(c.RGB.R), int32(c.RGB.G), int32(c.RGB.B))
	case ColorIndexed, ColorANSI:
		return tcell.PaletteColor(int(c.Index))
	default:
		return tcell.ColorDefault
	}
}

// TcellStyle builds a style from a fg/bg pair
func TcellStyle(fg, bg Color) tcell.Style {
	style := tcell.StyleDefault.Foreground(TcellColor(fg)).Background(TcellColor(bg))
	if fg.Kind == ColorMono {
		switch {
		case fg.Index >= 3:
			style = style.Bold(true)
		case fg.Index <= 1:
			style = style.Dim(true)
		}
	}
	return style
}
