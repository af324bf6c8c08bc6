package terminal

// xterm palette layout
//
// 0-15:    system colors (ansi16Palette)
// 16-231:  color cube, index = 16 + 36*r + 6*g + b where r,g,b ∈ [0,5]
// 232-255: grayscale ramp, level = 8 + 10*(index-232)

// ansi16Palette holds the xterm default system colors
var ansi16Palette = [16]RGB{
	{0, 0, 0},
	{128, 0, 0},
	{0, 128, 0},
	{128, 128, 0},
	{0, 0, 128},
	{128, 0, 128},
	{0, 128, 128},
	{192, 192, 192},
	{128, 128, 128},
	{255, 0, 0},
	{0, 255, 0},
	{255, 255, 0},
	{0, 0, 255},
	{255, 0, 255},
	{0, 255, 255},
	{255, 255, 255},
}

// Color cube values for 6x6x6 palette (indices 16-231)
var cubeValues = [6]uint8{0, 95, 135, 175, 215, 255}

// cubeIndex maps 0-255 to nearest cube level 0-5, lower level on ties
var cubeIndex [256]uint8

const (
	cubeStart = 16
	grayStart = 232
)

// palette256 is the full xterm palette, built at init
var palette256 [256]RGB

func init() {
	for i := 0; i < 256; i++ {
		best := 0
		bestDist := abs(i - int(cubeValues[0]))
		for j := 1; j < 6; j++ {
			if d := abs(i - int(cubeValues[j])); d < bestDist {
				bestDist = d
				best = j
			}
		}
		cubeIndex[i] = uint8(best)
	}

	copy(palette256[:16], ansi16Palette[:])
	for i := cubeStart; i < grayStart; i++ {
		r, g, b := CubeRGB256(uint8(i))
		palette256[i] = RGB{cubeValues[r], cubeValues[g], cubeValues[b]}
	}
	for i := grayStart; i < 256; i++ {
		level := uint8(8 + 10*(i-grayStart))
		palette256[i] = RGB{level, level, level}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Palette256 returns the RGB value of an xterm 256-palette index
func Palette256(index uint8) RGB {
	return palette256[index]
}

// Palette16 returns the RGB value of an ANSI system color; indices above 15 wrap
func Palette16(index uint8) RGB {
	return ansi16Palette[index&0x0F]
}

// Cube256 returns the xterm 256-palette index for an RGB cube coordinate.
// r, g, b must be in [0,5]. Values outside that range are clamped.
func Cube256(r, g, b uint8) uint8 {
	r, g, b = min(r, 5), min(g, 5), min(b, 5)
	return cubeStart + 36*r + 6*g + b
}

// CubeRGB256 returns the (r, g, b) cube coordinates for a 256-palette color cube index.
// Index must be in [16,231]. Returns (0,0,0) for out-of-range indices.
func CubeRGB256(index uint8) (r, g, b uint8) {
	if index < cubeStart || index >= grayStart {
		return 0, 0, 0
	}
	n := index - cubeStart
	return n / 36, (n % 36) / 6, n % 6
}
