// Package strategy turns cell samples into terminal cells.
//
// A Strategy is one of HalfBlocks, Luminance, Depth, or None. Exactly one is
// active per camera; edge glyphs are layered on top of whichever is chosen.
package strategy

import (
	"fmt"
)

// Strategy is the sealed set of cell encodings
type Strategy interface {
	isStrategy()
	Name() string
}

// Orientation selects which half-block glyph is drawn
type Orientation uint8

const (
	// OrientationLower draws '▄' with the bottom half as foreground
	OrientationLower Orientation = iota
	// OrientationUpper draws '▀' with the top half as foreground
	OrientationUpper
)

const (
	lowerHalf = '▄'
	upperHalf = '▀'
)

func (o Orientation) String() string {
	if o == OrientationUpper {
		return "upper"
	}
	return "lower"
}

// ParseOrientation maps "lower"/"upper" to an Orientation
func ParseOrientation(s string) (Orientation, error) {
	switch s {
	case "", "lower":
		return OrientationLower, nil
	case "upper":
		return OrientationUpper, nil
	}
	return OrientationLower, fmt.Errorf("unknown half-block orientation %q", s)
}

// HalfBlocks draws two vertically stacked pixels per cell
type HalfBlocks struct {
	Orientation Orientation

	// Transparent leaves fully transparent halves unset so content underneath
	// shows through; a cell with both halves transparent is skipped
	Transparent bool
}

// Character ramps in increasing order of opacity
var (
	BrailleCharacters = []rune{' ', '⠂', '⠒', '⠖', '⠶', '⠷', '⠿', '⡿', '⣿'}
	MiscCharacters    = []rune{' ', '.', ':', '+', '=', '!', '*', '?', '#', '%', '&', '@'}
	ShadingCharacters = []rune{' ', '░', '▒', '▓', '█'}
)

const (
	DefaultLuminanceScale = 10.0
	DefaultDepthScale     = 1.0
)

// Luminance picks a glyph from a ramp by scaled cell luminance
type Luminance struct {
	Characters []rune
	Scale      float64

	// Nil leaves the color unset
	Foreground *ColorChoice
	Background *ColorChoice

	// Transparent skips cells whose pixels are all fully transparent
	Transparent bool
}

// Depth picks a glyph from a ramp by scaled nearness 1/(1+depth).
// Cells with no geometry are skipped.
type Depth struct {
	Characters []rune
	Scale      float64

	Foreground *ColorChoice
	Background *ColorChoice

	Transparent bool
}

// None draws nothing by itself; with edge detection it renders a wireframe
type None struct{}

func (HalfBlocks) isStrategy() {}
func (Luminance) isStrategy()  {}
func (Depth) isStrategy()      {}
func (None) isStrategy()       {}

func (HalfBlocks) Name() string { return "halfblocks" }
func (Luminance) Name() string  { return "luminance" }
func (Depth) Name() string      { return "depth" }
func (None) Name() string       { return "none" }

// NewLuminance returns the braille luminance strategy with default scale
func NewLuminance() Luminance {
	return LuminanceWithCharacters(BrailleCharacters)
}

// LuminanceWithCharacters returns a luminance strategy using ramp
func LuminanceWithCharacters(ramp []rune) Luminance {
	return Luminance{
		Characters:  ramp,
		Scale:       DefaultLuminanceScale,
		Foreground:  ScaleColor(1),
		Transparent: true,
	}
}

// LuminanceBraille uses braille dots
func LuminanceBraille() Luminance { return LuminanceWithCharacters(BrailleCharacters) }

// LuminanceMisc uses ASCII punctuation
func LuminanceMisc() Luminance { return LuminanceWithCharacters(MiscCharacters) }

// LuminanceShading uses block shades
func LuminanceShading() Luminance { return LuminanceWithCharacters(ShadingCharacters) }

// NewDepth returns the braille depth strategy
func NewDepth() Depth {
	return Depth{
		Characters:  BrailleCharacters,
		Scale:       DefaultDepthScale,
		Foreground:  ScaleColor(1),
		Transparent: true,
	}
}

// Default is the half-block strategy
func Default() Strategy {
	return HalfBlocks{}
}
