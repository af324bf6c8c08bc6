package terminal

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// ColorKind tells how a Color is emitted to the terminal
type ColorKind uint8

const (
	ColorDefault ColorKind = iota // unset, terminal default applies
	ColorRGB                      // 24-bit
	ColorIndexed                  // xterm-256 palette index
	ColorANSI                     // system color 0-15
	ColorMono                     // monochrome level 0-3
)

// monoLevels are the gray values represented by the monochrome tier
var monoLevels = [4]uint8{0, 85, 170, 255}

// Color is a color resolved against a ColorMode.
// RGB always holds the displayed value so colors can be re-quantized.
type Color struct {
	Kind  ColorKind
	Index uint8
	RGB   RGB
}

// DefaultColor is the unset color
var DefaultColor = Color{}

// IsSet reports whether the color overrides the terminal default
func (c Color) IsSet() bool {
	return c.Kind != ColorDefault
}

// Quantize maps a 24-bit color to the nearest color representable in mode.
// Palette searches use squared Euclidean RGB distance with ties going to the
// lowest palette index.
func Quantize(c RGB, mode ColorMode) Color {
	switch mode {
	case ColorMode256:
		idx := nearest256(c)
		return Color{Kind: ColorIndexed, Index: idx, RGB: palette256[idx]}
	case ColorMode16:
		idx := nearest16(c)
		return Color{Kind: ColorANSI, Index: idx, RGB: ansi16Palette[idx]}
	case ColorModeNone:
		level := monoLevel(c)
		v := monoLevels[level]
		return Color{Kind: ColorMono, Index: level, RGB: RGB{v, v, v}}
	default:
		return Color{Kind: ColorRGB, RGB: c}
	}
}

// Requantize resolves an already quantized color against another mode.
// Unset colors stay unset.
func Requantize(c Color, mode ColorMode) Color {
	if !c.IsSet() {
		return c
	}
	return Quantize(c.RGB, mode)
}

// nearest16 scans the system colors
func nearest16(c RGB) uint8 {
	best := 0
	bestDist := distanceSq(c, ansi16Palette[0])
	for i := 1; i < 16; i++ {
		if d := distanceSq(c, ansi16Palette[i]); d < bestDist {
			bestDist = d
			best = i
		}
	}
	return uint8(best)
}

// nearest256 finds the nearest xterm-256 index without scanning all 256 entries.
// The cube is a product grid so per-channel nearest levels give the nearest cube
// entry; the gray ramp is one-dimensional around the channel mean. Candidates are
// compared in index order so equal distances resolve to the lowest index.
func nearest256(c RGB) uint8 {
	best := nearest16(c)
	bestDist := distanceSq(c, ansi16Palette[best])

	cube := Cube256(cubeIndex[c.R], cubeIndex[c.G], cubeIndex[c.B])
	if d := distanceSq(c, palette256[cube]); d < bestDist {
		bestDist = d
		best = cube
	}

	// Gray level for step j is 8+10j; candidates bracket the channel mean
	sum := int(c.R) + int(c.G) + int(c.B)
	j := (sum - 24) / 30
	j = max(0, min(j, 23))
	for _, step := range [2]int{j, min(j+1, 23)} {
		idx := uint8(grayStart + step)
		if d := distanceSq(c, palette256[idx]); d < bestDist {
			bestDist = d
			best = idx
		}
	}

	return best
}

// monoLevel buckets gamma-encoded luminance into four levels
func monoLevel(c RGB) uint8 {
	lum := Luminance(c)
	if math.IsNaN(lum) || lum < 0 {
		lum = 0
	}
	encoded := colorful.LinearRgb(lum, lum, lum).R
	level := math.Round(encoded * 3)
	if level < 0 {
		return 0
	}
	if level > 3 {
		return 3
	}
	return uint8(level)
}
