package camera

import (
	"math"

	"github.com/lixenwraith/termcam/render"
)

// AspectRatio is the cell-space aspect of a frame: one pixel per column and
// two per row, so columns/rows = 2W/H
func AspectRatio(frameWidth, frameHeight int) float64 {
	if frameWidth <= 0 || frameHeight <= 0 {
		return 0
	}
	return float64(frameWidth*2) / float64(frameHeight)
}

// RenderArea fits a frame into area preserving its aspect ratio, centered,
// with gutters on the unused axis
func RenderArea(area render.Rect, frameWidth, frameHeight int) render.Rect {
	aspect := AspectRatio(frameWidth, frameHeight)
	if aspect == 0 || area.Empty() {
		return render.Rect{X: area.X, Y: area.Y}
	}

	width := int(math.Round(min(float64(area.Width), float64(area.Height)*aspect)))
	height := int(math.Round(min(float64(area.Height), float64(area.Width)/aspect)))
	width = max(0, min(width, area.Width))
	height = max(0, min(height, area.Height))

	return render.Rect{
		X:      area.X + (area.Width-width)/2,
		Y:      area.Y + (area.Height-height)/2,
		Width:  width,
		Height: height,
	}
}

// CellToNDC maps a cell position relative to the render area's origin to
// normalized device coordinates: x in [-1,1] left to right, y in [-1,1]
// bottom to top
func CellToNDC(renderArea render.Rect, x, y int) (nx, ny float64) {
	if renderArea.Empty() {
		return 0, 0
	}
	nx = (float64(x)/float64(renderArea.Width) - 0.5) * 2
	ny = (float64(y)/float64(renderArea.Height) - 0.5) * -2
	return nx, ny
}

// NDCToCell is the inverse of CellToNDC. ok is false when the point falls
// outside the render area.
func NDCToCell(renderArea render.Rect, nx, ny float64) (x, y int, ok bool) {
	if renderArea.Empty() || math.IsNaN(nx) || math.IsNaN(ny) {
		return 0, 0, false
	}
	fx := (nx/2 + 0.5) * float64(renderArea.Width)
	fy := (ny/-2 + 0.5) * float64(renderArea.Height)
	x, y = int(math.Floor(fx)), int(math.Floor(fy))
	ok = x >= 0 && x < renderArea.Width && y >= 0 && y < renderArea.Height
	return x, y, ok
}
