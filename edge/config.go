package edge

import (
	"fmt"

	"github.com/lixenwraith/termcam/terminal"
)

// Direction is the orientation of a detected discontinuity
type Direction uint8

const (
	DirectionNone Direction = iota
	DirectionVertical
	DirectionHorizontal
	DirectionForward  // '/'
	DirectionBackward // '\'
)

// directionPriority is the tie-break order when responses are equal
var directionPriority = [4]Direction{
	DirectionVertical,
	DirectionHorizontal,
	DirectionForward,
	DirectionBackward,
}

func (d Direction) String() string {
	switch d {
	case DirectionNone:
		return "none"
	case DirectionVertical:
		return "vertical"
	case DirectionHorizontal:
		return "horizontal"
	case DirectionForward:
		return "forward_diagonal"
	case DirectionBackward:
		return "backward_diagonal"
	default:
		return fmt.Sprintf("Direction(%d)", uint8(d))
	}
}

// Classification is the per-cell detector output
type Classification struct {
	Direction Direction
	Magnitude float64 // threshold-normalized response, 0 when flat
}

// Characters selects glyphs for edge cells, keyed by direction.
// A single-glyph set has all four directions equal.
type Characters struct {
	Vertical   rune
	Horizontal rune
	Forward    rune
	Backward   rune
}

// DirectionalCharacters is the default line-drawing set
var DirectionalCharacters = Characters{
	Vertical:   '|',
	Horizontal: '-',
	Forward:    '/',
	Backward:   '\\',
}

// SingleCharacter uses r for every direction
func SingleCharacter(r rune) Characters {
	return Characters{Vertical: r, Horizontal: r, Forward: r, Backward: r}
}

// Glyph returns the rune for d, 0 for DirectionNone
func (c Characters) Glyph(d Direction) rune {
	switch d {
	case DirectionVertical:
		return c.Vertical
	case DirectionHorizontal:
		return c.Horizontal
	case DirectionForward:
		return c.Forward
	case DirectionBackward:
		return c.Backward
	}
	return 0
}

// IsSingle reports whether all directions share one glyph
func (c Characters) IsSingle() bool {
	return c.Vertical == c.Horizontal && c.Horizontal == c.Forward && c.Forward == c.Backward
}

// Config controls edge detection and the edge overlay
type Config struct {
	Enabled bool

	// Neighbor offset in cells; values below 1 act as 1
	Thickness int

	// Overlay draws edge glyphs where Magnitude exceeds Threshold
	Threshold float64

	// Per-channel enables and the discontinuity that maps to a response of 1.0
	Depth           bool
	DepthThreshold  float64 // relative depth difference
	Normal          bool
	NormalThreshold float64 // radians
	Color           bool
	ColorThreshold  float64 // fraction of max RGB distance

	Characters Characters

	// Override replaces the base cell's foreground on edge cells when set
	Override *terminal.RGB
}

// DefaultConfig returns an enabled detector with all channels on
func DefaultConfig() Config {
	return Config{
		Enabled:         true,
		Thickness:       1,
		Threshold:       1.0,
		Depth:           true,
		DepthThreshold:  0.05,
		Normal:          true,
		NormalThreshold: 0.5,
		Color:           true,
		ColorThreshold:  0.2,
		Characters:      DirectionalCharacters,
	}
}

// Active reports whether the overlay should run
func (c *Config) Active() bool {
	return c != nil && c.Enabled
}

// Overlays reports whether cls crosses the overlay threshold
func (c *Config) Overlays(cls Classification) bool {
	return c.Active() && cls.Direction != DirectionNone && cls.Magnitude > c.Threshold
}
