package main

import (
	"image/color"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/termcam/camera"
	"github.com/lixenwraith/termcam/strategy"
	"github.com/lixenwraith/termcam/terminal"
)

func TestNewViewerStartsAtConfiguredStrategy(t *testing.T) {
	custom := strategy.LuminanceMisc()
	custom.Scale = 3

	tests := []struct {
		name     string
		strategy strategy.Strategy
		idx      int
		next     strategy.Strategy
	}{
		{"default", strategy.Default(), 0, strategy.HalfBlocks{Orientation: strategy.OrientationUpper}},
		{"upper half blocks", strategy.HalfBlocks{Orientation: strategy.OrientationUpper}, 1, strategy.LuminanceBraille()},
		{"misc ramp", strategy.LuminanceMisc(), 3, strategy.LuminanceShading()},
		{"shading ramp", strategy.LuminanceShading(), 4, strategy.NewDepth()},
		{"depth", strategy.NewDepth(), 5, strategy.None{}},
		{"wireframe", strategy.None{}, 6, strategy.Default()},
		{"customized luminance falls back to kind", custom, 2, strategy.LuminanceMisc()},
		{"transparent half blocks", strategy.HalfBlocks{Transparent: true}, 0, strategy.HalfBlocks{Orientation: strategy.OrientationUpper}},
		{"unset", nil, 0, strategy.HalfBlocks{Orientation: strategy.OrientationUpper}},
	}

	src, err := newSource(uniform(2, 2, color.NRGBA{A: 255}), nil, nil, 0, 1)
	require.NoError(t, err)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cam := &camera.Camera{
				Strategy:   tt.strategy,
				ColorMode:  terminal.ColorModeTrueColor,
				Autoresize: camera.NewController(),
			}
			v := newViewer(cam, src, true)
			assert.Equal(t, tt.idx, v.strategyIdx)

			require.True(t, v.handleKey(tcell.NewEventKey(tcell.KeyRune, 's', tcell.ModNone)))
			assert.Equal(t, tt.next, cam.Strategy)
		})
	}
}
