package terminal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// bruteNearest is the reference linear scan with lowest-index tie-break
func bruteNearest(c RGB, n int) uint8 {
	best := 0
	bestDist := distanceSq(c, palette256[0])
	for i := 1; i < n; i++ {
		if d := distanceSq(c, palette256[i]); d < bestDist {
			bestDist = d
			best = i
		}
	}
	return uint8(best)
}

func TestPaletteLayout(t *testing.T) {
	assert.Equal(t, RGB{0, 0, 0}, Palette256(16))
	assert.Equal(t, RGB{255, 255, 255}, Palette256(231))
	assert.Equal(t, RGB{95, 135, 175}, Palette256(Cube256(1, 2, 3)))
	assert.Equal(t, RGB{8, 8, 8}, Palette256(232))
	assert.Equal(t, RGB{238, 238, 238}, Palette256(255))
	assert.Equal(t, RGB{255, 0, 0}, Palette16(9))

	r, g, b := CubeRGB256(Cube256(4, 0, 5))
	assert.Equal(t, [3]uint8{4, 0, 5}, [3]uint8{r, g, b})
}

func TestNearest256MatchesBruteForce(t *testing.T) {
	// Step 5 covers every cube/gray midpoint tie (47, 115, 155, 195, 235 ± 1 neighborhoods)
	for r := 0; r < 256; r += 5 {
		for g := 0; g < 256; g += 5 {
			for b := 0; b < 256; b += 5 {
				c := RGB{uint8(r), uint8(g), uint8(b)}
				require.Equal(t, bruteNearest(c, 256), nearest256(c), "rgb %v", c)
			}
		}
	}
	// Exact tie points on the gray ramp and cube boundaries
	for v := 0; v < 256; v++ {
		c := RGB{uint8(v), uint8(v), uint8(v)}
		require.Equal(t, bruteNearest(c, 256), nearest256(c), "gray %d", v)
		c = RGB{uint8(v), 115, 235}
		require.Equal(t, bruteNearest(c, 256), nearest256(c), "rgb %v", c)
	}
}

func TestQuantize(t *testing.T) {
	tests := []struct {
		name string
		in   RGB
		mode ColorMode
		want Color
	}{
		{"truecolor passthrough", RGB{12, 34, 56}, ColorModeTrueColor, Color{Kind: ColorRGB, RGB: RGB{12, 34, 56}}},
		{"256 pure red prefers system index", RGB{255, 0, 0}, ColorMode256, Color{Kind: ColorIndexed, Index: 9, RGB: RGB{255, 0, 0}}},
		{"256 black prefers index 0", RGB{0, 0, 0}, ColorMode256, Color{Kind: ColorIndexed, Index: 0, RGB: RGB{}}},
		{"256 cube entry", RGB{95, 135, 175}, ColorMode256, Color{Kind: ColorIndexed, Index: 67, RGB: RGB{95, 135, 175}}},
		{"256 gray ramp", RGB{30, 30, 30}, ColorMode256, Color{Kind: ColorIndexed, Index: 234, RGB: RGB{28, 28, 28}}},
		{"16 dark red", RGB{120, 10, 10}, ColorMode16, Color{Kind: ColorANSI, Index: 1, RGB: RGB{128, 0, 0}}},
		{"16 white", RGB{250, 250, 250}, ColorMode16, Color{Kind: ColorANSI, Index: 15, RGB: RGB{255, 255, 255}}},
		{"mono black", RGB{0, 0, 0}, ColorModeNone, Color{Kind: ColorMono, Index: 0, RGB: RGB{}}},
		{"mono white", RGB{255, 255, 255}, ColorModeNone, Color{Kind: ColorMono, Index: 3, RGB: RGB{255, 255, 255}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Quantize(tt.in, tt.mode))
		})
	}
}

func TestQuantizeDeterministicAndIdempotent(t *testing.T) {
	modes := []ColorMode{ColorModeTrueColor, ColorMode256, ColorMode16, ColorModeNone}
	for _, mode := range modes {
		t.Run(mode.String(), func(t *testing.T) {
			for r := 0; r < 256; r += 17 {
				for g := 0; g < 256; g += 15 {
					for b := 0; b < 256; b += 51 {
						c := RGB{uint8(r), uint8(g), uint8(b)}
						first := Quantize(c, mode)
						require.Equal(t, first, Quantize(c, mode))
						require.Equal(t, first, Quantize(first.RGB, mode), "re-quantize %v", c)
						require.Equal(t, first, Requantize(first, mode))
					}
				}
			}
		})
	}
}

func TestRequantizeIndexedTo16(t *testing.T) {
	c := Quantize(RGB{215, 0, 0}, ColorMode256)
	require.Equal(t, ColorIndexed, c.Kind)

	got := Requantize(c, ColorMode16)
	assert.Equal(t, ColorANSI, got.Kind)
	assert.Equal(t, uint8(9), got.Index)

	assert.Equal(t, DefaultColor, Requantize(DefaultColor, ColorMode16))
}

func TestRGBScaleSaturates(t *testing.T) {
	c := RGB{200, 100, 10}
	assert.Equal(t, RGB{255, 200, 20}, c.Scale(2))
	assert.Equal(t, RGB{100, 50, 5}, c.Scale(0.5))
	assert.Equal(t, RGBBlack, c.Scale(-1))
	assert.Equal(t, c, c.Scale(1))
}

func TestLuminance(t *testing.T) {
	assert.InDelta(t, 0.0, Luminance(RGBBlack), 1e-9)
	assert.InDelta(t, 1.0, Luminance(RGBWhite), 1e-6)
	assert.InDelta(t, 0.2126, Luminance(RGB{255, 0, 0}), 1e-6)
}

func TestParseColorMode(t *testing.T) {
	tests := map[string]ColorMode{
		"truecolor": ColorModeTrueColor,
		"24bit":     ColorModeTrueColor,
		"256":       ColorMode256,
		"16":        ColorMode16,
		"mono":      ColorModeNone,
	}
	for in, want := range tests {
		got, err := ParseColorMode(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseColorMode("bogus")
	assert.Error(t, err)
}

func TestDetectColorMode(t *testing.T) {
	resetEnv := func() {
		for _, k := range []string{"NO_COLOR", "COLORTERM", "KITTY_WINDOW_ID", "KONSOLE_VERSION",
			"ITERM_SESSION_ID", "ALACRITTY_WINDOW_ID", "ALACRITTY_LOG", "WEZTERM_PANE", "TERM"} {
			t.Setenv(k, "")
		}
	}

	resetEnv()
	t.Setenv("COLORTERM", "truecolor")
	assert.Equal(t, ColorModeTrueColor, DetectColorMode())

	resetEnv()
	t.Setenv("TERM", "xterm-256color")
	assert.Equal(t, ColorMode256, DetectColorMode())

	resetEnv()
	t.Setenv("TERM", "linux")
	assert.Equal(t, ColorMode16, DetectColorMode())
}

func TestParseHex(t *testing.T) {
	c, err := ParseHex("#ff00aa")
	require.NoError(t, err)
	assert.Equal(t, RGB{255, 0, 170}, c)
	assert.Equal(t, "#ff00aa", c.Hex())

	_, err = ParseHex("#fff")
	assert.Error(t, err)
}

func TestAppendSGR(t *testing.T) {
	tests := []struct {
		name   string
		fg, bg Color
		want   string
	}{
		{"truecolor", Quantize(RGB{1, 2, 3}, ColorModeTrueColor), Quantize(RGB{4, 5, 6}, ColorModeTrueColor), "\x1b[0;38;2;1;2;3;48;2;4;5;6m"},
		{"256 fg only", Quantize(RGB{95, 135, 175}, ColorMode256), DefaultColor, "\x1b[0;38;5;67m"},
		{"16 bright", Quantize(RGB{255, 0, 0}, ColorMode16), Quantize(RGB{0, 0, 128}, ColorMode16), "\x1b[0;91;44m"},
		{"mono", Quantize(RGBWhite, ColorModeNone), DefaultColor, "\x1b[0m"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, string(AppendSGR(nil, tt.fg, tt.bg)))
		})
	}
}
