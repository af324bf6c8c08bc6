package strategy

import (
	"math"

	"github.com/lixenwraith/termcam/edge"
	"github.com/lixenwraith/termcam/render"
	"github.com/lixenwraith/termcam/sample"
	"github.com/lixenwraith/termcam/terminal"
)

// Encode converts one cell sample into a terminal cell.
// cls and ec may be nil; when both are present and the classification crosses
// the edge threshold, the edge glyph replaces the strategy's glyph.
// Every emitted color is quantized to mode.
func Encode(s Strategy, smp sample.Sample, cls *edge.Classification, ec *edge.Config, mode terminal.ColorMode) render.Cell {
	if smp.Empty {
		return render.Cell{
			Glyph: ' ',
			Bg:    terminal.Quantize(terminal.RGBBlack, mode),
			Depth: math.Inf(1),
		}
	}

	var cell render.Cell
	switch st := s.(type) {
	case Luminance:
		cell = encodeLuminance(st, smp, mode)
	case Depth:
		cell = encodeDepth(st, smp, mode)
	case None:
		cell = render.Cell{Skip: true}
	case HalfBlocks:
		cell = encodeHalfBlocks(st, smp, mode)
	default:
		cell = encodeHalfBlocks(HalfBlocks{}, smp, mode)
	}
	cell.Depth = smp.Depth

	if cls != nil && ec.Overlays(*cls) {
		cell = overlayEdge(cell, smp, *cls, ec, mode)
	}
	return cell
}

func encodeHalfBlocks(st HalfBlocks, smp sample.Sample, mode terminal.ColorMode) render.Cell {
	topClear := st.Transparent && smp.TopAlpha == 0
	bottomClear := st.Transparent && smp.BottomAlpha == 0
	if topClear && bottomClear {
		return render.Cell{Skip: true}
	}

	// Mono blocks carry no image, fall back to shading by luminance
	if mode == terminal.ColorModeNone {
		return render.Cell{
			Glyph: rampGlyph(ShadingCharacters, smp.Luminance),
			Fg:    terminal.Quantize(smp.Color, mode),
		}
	}

	top := terminal.Quantize(smp.Top, mode)
	bottom := terminal.Quantize(smp.Bottom, mode)

	switch {
	case topClear:
		return render.Cell{Glyph: lowerHalf, Fg: bottom}
	case bottomClear:
		return render.Cell{Glyph: upperHalf, Fg: top}
	case st.Orientation == OrientationUpper:
		return render.Cell{Glyph: upperHalf, Fg: top, Bg: bottom}
	default:
		return render.Cell{Glyph: lowerHalf, Fg: bottom, Bg: top}
	}
}

func encodeLuminance(st Luminance, smp sample.Sample, mode terminal.ColorMode) render.Cell {
	if st.Transparent && smp.Transparent() {
		return render.Cell{Skip: true}
	}
	return render.Cell{
		Glyph: rampGlyph(st.Characters, smp.Luminance*st.Scale),
		Fg:    resolve(st.Foreground, smp.Color, mode),
		Bg:    resolve(st.Background, smp.Color, mode),
	}
}

func encodeDepth(st Depth, smp sample.Sample, mode terminal.ColorMode) render.Cell {
	if !smp.HasGeometry() || (st.Transparent && smp.Transparent()) {
		return render.Cell{Skip: true}
	}
	nearness := 1 / (1 + smp.Depth)
	return render.Cell{
		Glyph: rampGlyph(st.Characters, nearness*st.Scale),
		Fg:    resolve(st.Foreground, smp.Color, mode),
		Bg:    resolve(st.Background, smp.Color, mode),
	}
}

func overlayEdge(base render.Cell, smp sample.Sample, cls edge.Classification, ec *edge.Config, mode terminal.ColorMode) render.Cell {
	glyph := ec.Characters.Glyph(cls.Direction)
	if glyph == 0 {
		return base
	}

	fg := base.Fg
	switch {
	case ec.Override != nil:
		fg = terminal.Quantize(*ec.Override, mode)
	case !fg.IsSet():
		fg = terminal.Quantize(smp.Color, mode)
	}

	return render.Cell{
		Glyph: glyph,
		Fg:    fg,
		Bg:    base.Bg,
		Depth: base.Depth,
	}
}

// rampGlyph maps v in [0,1] onto ramp; out of range values clamp
func rampGlyph(ramp []rune, v float64) rune {
	if len(ramp) == 0 {
		return ' '
	}
	return ramp[RampIndex(v, len(ramp))]
}

// RampIndex maps v to an index in [0, n). NaN and negatives give 0,
// values at or above 1 give n-1.
func RampIndex(v float64, n int) int {
	if n <= 0 || math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= 1 {
		return n - 1
	}
	return min(int(v*float64(n)), n-1)
}
