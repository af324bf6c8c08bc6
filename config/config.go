// Package config loads camera settings from YAML files.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/termcam/camera"
	"github.com/lixenwraith/termcam/edge"
	"github.com/lixenwraith/termcam/strategy"
	"github.com/lixenwraith/termcam/terminal"
)

// ErrInvalidConfig is wrapped by every semantic validation failure
var ErrInvalidConfig = errors.New("invalid config")

// File is the on-disk layout. Omitted fields keep the library defaults.
type File struct {
	Color      string            `yaml:"color"`
	Strategy   StrategySection   `yaml:"strategy"`
	Edge       *EdgeSection      `yaml:"edge"`
	Autoresize AutoresizeSection `yaml:"autoresize"`
	Stretch    bool              `yaml:"stretch"`

	// Fixed render target size, used when autoresize is off
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// StrategySection selects and parameterizes the cell encoding
type StrategySection struct {
	Kind        string        `yaml:"kind"`
	Ramp        string        `yaml:"ramp"`       // braille, misc or shading
	Characters  string        `yaml:"characters"` // explicit ramp, overrides Ramp
	Scale       *float64      `yaml:"scale"`
	Orientation string        `yaml:"orientation"`
	Transparent *bool         `yaml:"transparent"`
	Foreground  *ColorSection `yaml:"foreground"`
	Background  *ColorSection `yaml:"background"`
}

// ColorSection is either a scale of the sampled color or a fixed hex color.
// None leaves the color unset.
type ColorSection struct {
	Scale *float64 `yaml:"scale"`
	Color string   `yaml:"color"`
	None  bool     `yaml:"none"`
}

// EdgeSection overrides fields of edge.DefaultConfig
type EdgeSection struct {
	Enabled         *bool    `yaml:"enabled"`
	Thickness       *int     `yaml:"thickness"`
	Threshold       *float64 `yaml:"threshold"`
	Depth           *bool    `yaml:"depth"`
	DepthThreshold  *float64 `yaml:"depth_threshold"`
	Normal          *bool    `yaml:"normal"`
	NormalThreshold *float64 `yaml:"normal_threshold"`
	Color           *bool    `yaml:"color"`
	ColorThreshold  *float64 `yaml:"color_threshold"`
	Characters      string   `yaml:"characters"`
	ColorOverride   string   `yaml:"color_override"`
}

// AutoresizeSection configures the resize controller
type AutoresizeSection struct {
	Enabled   bool    `yaml:"enabled"`
	Tolerance float64 `yaml:"tolerance"`
}

// Load reads and validates a YAML config file
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Parse decodes YAML and validates it. Unknown keys are rejected.
// An empty document yields the defaults.
func Parse(data []byte) (*File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks fields that decode cleanly but cannot be applied
func (f *File) Validate() error {
	if f.Width < 0 || f.Height < 0 {
		return fmt.Errorf("%w: negative render size %dx%d", ErrInvalidConfig, f.Width, f.Height)
	}
	if f.Autoresize.Tolerance < 0 {
		return fmt.Errorf("%w: negative autoresize tolerance %g", ErrInvalidConfig, f.Autoresize.Tolerance)
	}
	if _, err := f.Camera(); err != nil {
		return err
	}
	return nil
}

// Camera builds a camera from the file
func (f *File) Camera() (*camera.Camera, error) {
	mode, err := terminal.ParseColorMode(f.Color)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	st, err := f.Strategy.build()
	if err != nil {
		return nil, err
	}

	cam := &camera.Camera{
		Strategy:  st,
		ColorMode: mode,
		Stretch:   f.Stretch,
	}

	if f.Edge != nil {
		ec, err := f.Edge.build()
		if err != nil {
			return nil, err
		}
		cam.Edge = &ec
	}

	if f.Autoresize.Enabled {
		cam.Autoresize = camera.NewController()
		cam.Autoresize.Tolerance = f.Autoresize.Tolerance
	}
	return cam, nil
}

// TargetSize returns the fixed render size, ok is false when unset
func (f *File) TargetSize() (camera.Size, bool) {
	if f.Width <= 0 || f.Height <= 0 {
		return camera.Size{}, false
	}
	return camera.Size{Width: f.Width, Height: f.Height}, true
}

func (s *StrategySection) build() (strategy.Strategy, error) {
	switch strings.ToLower(s.Kind) {
	case "", "halfblocks", "half-blocks", "halfblock":
		o, err := strategy.ParseOrientation(s.Orientation)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
		hb := strategy.HalfBlocks{Orientation: o}
		if s.Transparent != nil {
			hb.Transparent = *s.Transparent
		}
		return hb, nil

	case "luminance":
		ramp, err := s.ramp()
		if err != nil {
			return nil, err
		}
		lum := strategy.LuminanceWithCharacters(ramp)
		if err := s.apply(&lum.Scale, &lum.Foreground, &lum.Background, &lum.Transparent); err != nil {
			return nil, err
		}
		return lum, nil

	case "depth":
		ramp, err := s.ramp()
		if err != nil {
			return nil, err
		}
		d := strategy.NewDepth()
		d.Characters = ramp
		if err := s.apply(&d.Scale, &d.Foreground, &d.Background, &d.Transparent); err != nil {
			return nil, err
		}
		return d, nil

	case "none", "wireframe":
		return strategy.None{}, nil
	}
	return nil, fmt.Errorf("%w: unknown strategy kind %q", ErrInvalidConfig, s.Kind)
}

// apply copies the shared ramp strategy options over the preset values
func (s *StrategySection) apply(scale *float64, fg, bg **strategy.ColorChoice, transparent *bool) error {
	if s.Scale != nil {
		if *s.Scale < 0 {
			return fmt.Errorf("%w: negative strategy scale %g", ErrInvalidConfig, *s.Scale)
		}
		*scale = *s.Scale
	}
	if s.Transparent != nil {
		*transparent = *s.Transparent
	}
	if s.Foreground != nil {
		c, err := s.Foreground.build()
		if err != nil {
			return fmt.Errorf("foreground: %w", err)
		}
		*fg = c
	}
	if s.Background != nil {
		c, err := s.Background.build()
		if err != nil {
			return fmt.Errorf("background: %w", err)
		}
		*bg = c
	}
	return nil
}

func (s *StrategySection) ramp() ([]rune, error) {
	if s.Characters != "" {
		r := []rune(s.Characters)
		if err := singleWidth(r); err != nil {
			return nil, err
		}
		return r, nil
	}
	switch strings.ToLower(s.Ramp) {
	case "", "braille":
		return strategy.BrailleCharacters, nil
	case "misc", "ascii":
		return strategy.MiscCharacters, nil
	case "shading", "blocks":
		return strategy.ShadingCharacters, nil
	}
	return nil, fmt.Errorf("%w: unknown ramp %q", ErrInvalidConfig, s.Ramp)
}

func (c *ColorSection) build() (*strategy.ColorChoice, error) {
	switch {
	case c.None:
		return nil, nil
	case c.Color != "" && c.Scale != nil:
		return nil, fmt.Errorf("%w: color and scale are exclusive", ErrInvalidConfig)
	case c.Color != "":
		rgb, err := terminal.ParseHex(c.Color)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
		return strategy.FixedColor(rgb), nil
	case c.Scale != nil:
		if *c.Scale < 0 {
			return nil, fmt.Errorf("%w: negative color scale %g", ErrInvalidConfig, *c.Scale)
		}
		return strategy.ScaleColor(*c.Scale), nil
	}
	return strategy.ScaleColor(1), nil
}

func (e *EdgeSection) build() (edge.Config, error) {
	cfg := edge.DefaultConfig()

	if e.Enabled != nil {
		cfg.Enabled = *e.Enabled
	}
	if e.Thickness != nil {
		if *e.Thickness < 1 {
			return cfg, fmt.Errorf("%w: edge thickness %d below 1", ErrInvalidConfig, *e.Thickness)
		}
		cfg.Thickness = *e.Thickness
	}

	thresholds := []struct {
		name string
		src  *float64
		dst  *float64
	}{
		{"threshold", e.Threshold, &cfg.Threshold},
		{"depth_threshold", e.DepthThreshold, &cfg.DepthThreshold},
		{"normal_threshold", e.NormalThreshold, &cfg.NormalThreshold},
		{"color_threshold", e.ColorThreshold, &cfg.ColorThreshold},
	}
	for _, t := range thresholds {
		if t.src == nil {
			continue
		}
		if *t.src < 0 {
			return cfg, fmt.Errorf("%w: negative edge %s %g", ErrInvalidConfig, t.name, *t.src)
		}
		*t.dst = *t.src
	}

	if e.Depth != nil {
		cfg.Depth = *e.Depth
	}
	if e.Normal != nil {
		cfg.Normal = *e.Normal
	}
	if e.Color != nil {
		cfg.Color = *e.Color
	}

	if e.Characters != "" {
		r := []rune(e.Characters)
		if err := singleWidth(r); err != nil {
			return cfg, err
		}
		switch len(r) {
		case 1:
			cfg.Characters = edge.SingleCharacter(r[0])
		case 4:
			cfg.Characters = edge.Characters{Vertical: r[0], Horizontal: r[1], Forward: r[2], Backward: r[3]}
		default:
			return cfg, fmt.Errorf("%w: edge characters need 1 or 4 glyphs, got %d", ErrInvalidConfig, len(r))
		}
	}

	if e.ColorOverride != "" {
		rgb, err := terminal.ParseHex(e.ColorOverride)
		if err != nil {
			return cfg, fmt.Errorf("%w: edge color_override: %w", ErrInvalidConfig, err)
		}
		cfg.Override = &rgb
	}
	return cfg, nil
}

// singleWidth rejects glyphs that do not occupy exactly one column
func singleWidth(glyphs []rune) error {
	for _, r := range glyphs {
		if w := runewidth.RuneWidth(r); w != 1 {
			return fmt.Errorf("%w: glyph %q has width %d", ErrInvalidConfig, r, w)
		}
	}
	return nil
}
