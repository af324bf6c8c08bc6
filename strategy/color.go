package strategy

import (
	"github.com/lixenwraith/termcam/terminal"
)

// ColorChoice derives a cell color either from the sampled color or a constant
type ColorChoice struct {
	Fixed bool
	Scale float64      // multiplier on the sampled color when not Fixed
	Color terminal.RGB // used when Fixed
}

// ScaleColor multiplies the sampled color by f, saturating
func ScaleColor(f float64) *ColorChoice {
	return &ColorChoice{Scale: f}
}

// FixedColor always yields c
func FixedColor(c terminal.RGB) *ColorChoice {
	return &ColorChoice{Fixed: true, Color: c}
}

// Resolve applies the choice to a sampled color
func (c *ColorChoice) Resolve(sampled terminal.RGB) terminal.RGB {
	if c.Fixed {
		return c.Color
	}
	return sampled.Scale(c.Scale)
}

// resolve quantizes a color choice, nil stays unset
func resolve(c *ColorChoice, sampled terminal.RGB, mode terminal.ColorMode) terminal.Color {
	if c == nil {
		return terminal.DefaultColor
	}
	return terminal.Quantize(c.Resolve(sampled), mode)
}
