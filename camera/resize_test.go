package camera

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lixenwraith/termcam/render"
)

func TestControllerCheck(t *testing.T) {
	area := render.Rect{Width: 40, Height: 10}

	tests := []struct {
		name    string
		ctrl    Controller
		current Size
		area    render.Rect
		want    Decision
	}{
		{"disabled", Controller{}, Size{1, 1}, area, Decision{}},
		{"exact match", NewController(), Size{80, 40}, area, Decision{}},
		{"mismatch", NewController(), Size{64, 40}, area, Decision{Kind: RequestResize, Width: 80, Height: 40}},
		{"zero area", NewController(), Size{64, 40}, render.Rect{}, Decision{}},
		{"within tolerance", Controller{Enabled: true, Tolerance: 0.1}, Size{76, 42}, area, Decision{}},
		{"beyond tolerance", Controller{Enabled: true, Tolerance: 0.1}, Size{70, 40}, area, Decision{Kind: RequestResize, Width: 80, Height: 40}},
		{
			"custom scale",
			Controller{Enabled: true, Scale: func(cols, rows int) (int, int) { return cols, rows * 2 }},
			Size{80, 40}, area,
			Decision{Kind: RequestResize, Width: 40, Height: 20},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.ctrl.Check(tt.current, tt.area))
		})
	}
}

func TestRenderArea(t *testing.T) {
	tests := []struct {
		name   string
		area   render.Rect
		fw, fh int
		want   render.Rect
	}{
		{"exact fit", render.Rect{Width: 10, Height: 5}, 20, 20, render.Rect{Width: 10, Height: 5}},
		{"letterbox", render.Rect{Width: 10, Height: 10}, 4, 4, render.Rect{Y: 2, Width: 10, Height: 5}},
		{"pillarbox", render.Rect{X: 1, Y: 1, Width: 20, Height: 5}, 20, 20, render.Rect{X: 6, Y: 1, Width: 10, Height: 5}},
		{"empty frame", render.Rect{X: 3, Width: 10, Height: 5}, 0, 4, render.Rect{X: 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RenderArea(tt.area, tt.fw, tt.fh))
		})
	}
}

func TestNDCRoundTrip(t *testing.T) {
	ra := render.Rect{Width: 8, Height: 4}

	nx, ny := CellToNDC(ra, 0, 0)
	assert.Equal(t, -1.0, nx)
	assert.Equal(t, 1.0, ny)

	nx, ny = CellToNDC(ra, 6, 1)
	assert.Equal(t, 0.5, nx)
	assert.Equal(t, 0.5, ny)

	x, y, ok := NDCToCell(ra, 0.5, 0.5)
	assert.True(t, ok)
	assert.Equal(t, 6, x)
	assert.Equal(t, 1, y)

	_, _, ok = NDCToCell(ra, 1.5, 0)
	assert.False(t, ok)
	_, _, ok = NDCToCell(render.Rect{}, 0, 0)
	assert.False(t, ok)
}
