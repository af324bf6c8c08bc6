package terminal

import (
	"fmt"
	"os"
	"strings"
)

// ColorMode indicates terminal color capability
type ColorMode uint8

const (
	ColorModeTrueColor ColorMode = iota // 24-bit RGB
	ColorMode256                        // xterm-256 palette
	ColorMode16                         // ANSI 16 system colors
	ColorModeNone                       // monochrome, glyphs only
)

// String returns the canonical name used by flags and config files
func (m ColorMode) String() string {
	switch m {
	case ColorModeTrueColor:
		return "truecolor"
	case ColorMode256:
		return "256"
	case ColorMode16:
		return "16"
	case ColorModeNone:
		return "none"
	default:
		return fmt.Sprintf("ColorMode(%d)", uint8(m))
	}
}

// ParseColorMode maps a user-facing name to a ColorMode.
// "auto" and the empty string resolve through DetectColorMode.
func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return DetectColorMode(), nil
	case "true", "truecolor", "24", "24bit", "rgb":
		return ColorModeTrueColor, nil
	case "256", "8bit", "ansi256":
		return ColorMode256, nil
	case "16", "ansi16", "ansi":
		return ColorMode16, nil
	case "none", "mono", "monochrome", "0":
		return ColorModeNone, nil
	}
	return ColorModeTrueColor, fmt.Errorf("unknown color mode %q", s)
}

// DetectColorMode determines terminal color capability from environment
func DetectColorMode() ColorMode {
	// 1. NO_COLOR (https://no-color.org) disables color regardless of terminal
	if os.Getenv("NO_COLOR") != "" {
		return ColorModeNone
	}

	// 2. COLORTERM, set by modern terminals
	colorterm := os.Getenv("COLORTERM")
	if colorterm == "truecolor" || colorterm == "24bit" {
		return ColorModeTrueColor
	}

	// 3. Terminal-specific env vars
	if os.Getenv("KITTY_WINDOW_ID") != "" ||
		os.Getenv("KONSOLE_VERSION") != "" ||
		os.Getenv("ITERM_SESSION_ID") != "" ||
		os.Getenv("ALACRITTY_WINDOW_ID") != "" ||
		os.Getenv("ALACRITTY_LOG") != "" ||
		os.Getenv("WEZTERM_PANE") != "" {
		return ColorModeTrueColor
	}

	// 4. TERM
	term := strings.ToLower(os.Getenv("TERM"))
	switch {
	case strings.Contains(term, "truecolor"),
		strings.Contains(term, "24bit"),
		strings.Contains(term, "direct"):
		return ColorModeTrueColor
	case strings.Contains(term, "256color"):
		return ColorMode256
	case term == "dumb":
		return ColorModeNone
	case term == "linux", term == "vt100", term == "ansi", strings.HasPrefix(term, "xterm-16color"):
		return ColorMode16
	}

	// 5. Default to 256-color
	return ColorMode256
}
