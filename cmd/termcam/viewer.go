package main

import (
	"fmt"
	"reflect"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/termcam/camera"
	"github.com/lixenwraith/termcam/edge"
	"github.com/lixenwraith/termcam/render"
	"github.com/lixenwraith/termcam/strategy"
	"github.com/lixenwraith/termcam/terminal"
)

// strategyCycle is the order the 's' key steps through
var strategyCycle = []func() strategy.Strategy{
	strategy.Default,
	func() strategy.Strategy { return strategy.HalfBlocks{Orientation: strategy.OrientationUpper} },
	func() strategy.Strategy { return strategy.LuminanceBraille() },
	func() strategy.Strategy { return strategy.LuminanceMisc() },
	func() strategy.Strategy { return strategy.LuminanceShading() },
	func() strategy.Strategy { return strategy.NewDepth() },
	func() strategy.Strategy { return strategy.None{} },
}

// strategyIndex locates st in strategyCycle: an identical entry first, then
// the first entry of the same kind, else the start of the cycle
func strategyIndex(st strategy.Strategy) int {
	if st == nil {
		return 0
	}
	for i, next := range strategyCycle {
		if reflect.DeepEqual(next(), st) {
			return i
		}
	}
	for i, next := range strategyCycle {
		if next().Name() == st.Name() {
			return i
		}
	}
	return 0
}

var colorCycle = []terminal.ColorMode{
	terminal.ColorModeTrueColor,
	terminal.ColorMode256,
	terminal.ColorMode16,
	terminal.ColorModeNone,
}

// viewer owns the screen, the compositor, and the camera settings
type viewer struct {
	screen tcell.Screen
	cam    *camera.Camera
	src    *source
	comp   *render.Compositor

	strategyIdx int
	edgeCfg     edge.Config // restored when edges are toggled back on
	showStatus  bool
	last        camera.Result
	lastErr     error
}

func newViewer(cam *camera.Camera, src *source, showStatus bool) *viewer {
	v := &viewer{
		cam:         cam,
		src:         src,
		comp:        render.NewCompositor(0, 0),
		strategyIdx: strategyIndex(cam.Strategy),
		edgeCfg:     edge.DefaultConfig(),
		showStatus:  showStatus,
	}
	if cam.Edge != nil {
		v.edgeCfg = *cam.Edge
	}
	return v
}

func (v *viewer) run() error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal init: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal init: %w", err)
	}
	defer screen.Fini()
	screen.HideCursor()
	v.screen = screen

	v.resize()
	v.draw()

	for {
		switch ev := screen.PollEvent().(type) {
		case *tcell.EventKey:
			if !v.handleKey(ev) {
				return nil
			}
		case *tcell.EventResize:
			v.resize()
			screen.Sync()
		case nil:
			return nil
		}
		v.draw()
	}
}

func (v *viewer) resize() {
	w, h := v.screen.Size()
	v.comp.Resize(w, h)
}

// area is the screen minus the status line
func (v *viewer) area() render.Rect {
	w, h := v.comp.Width(), v.comp.Height()
	if v.showStatus && h > 1 {
		h--
	}
	return render.Rect{Width: w, Height: h}
}

func (v *viewer) draw() {
	v.comp.Begin()
	area := v.area()

	v.last, v.lastErr = v.src.render(v.cam, area, v.comp)

	if v.showStatus {
		v.drawStatus()
	}

	v.screen.Clear()
	v.comp.Grid.FlushToScreen(v.screen, 0, 0)
	v.screen.Show()
}

func (v *viewer) drawStatus() {
	y := v.comp.Height() - 1
	if y < 1 {
		return
	}
	edges := "off"
	if v.cam.Edge.Active() {
		edges = "on"
	}
	resize := "off"
	if v.cam.Autoresize.Enabled {
		resize = "on"
	}

	text := fmt.Sprintf(" %s | %s | edges %s | autoresize %s | %dx%d px | drawn %d occluded %d ",
		v.cam.Strategy.Name(), v.cam.ColorMode, edges, resize,
		v.src.size.Width, v.src.size.Height, v.last.Drawn, v.last.Occluded)
	if v.lastErr != nil {
		text = fmt.Sprintf(" error: %v ", v.lastErr)
	}

	fg := terminal.Quantize(terminal.RGBBlack, v.cam.ColorMode)
	bg := terminal.Quantize(terminal.RGB{R: 200, G: 200, B: 200}, v.cam.ColorMode)
	n := v.comp.DrawText(0, y, text, fg, bg, render.DepthBypass)
	for x := n; x < v.comp.Width(); x++ {
		v.comp.Draw(x, y, render.Cell{Glyph: ' ', Fg: fg, Bg: bg}, render.DepthBypass)
	}
}

func (v *viewer) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC, tcell.KeyCtrlD:
		return false
	case tcell.KeyRune:
	default:
		return true
	}

	switch ev.Rune() {
	case 'q', 'Q':
		return false

	case 's':
		v.strategyIdx = (v.strategyIdx + 1) % len(strategyCycle)
		v.cam.Strategy = strategyCycle[v.strategyIdx]()

	case 'e', 'E':
		if v.cam.Edge.Active() {
			v.edgeCfg = *v.cam.Edge
			v.cam.Edge = nil
		} else {
			ec := v.edgeCfg
			ec.Enabled = true
			v.cam.Edge = &ec
		}

	case 'c', 'C':
		for i, m := range colorCycle {
			if m == v.cam.ColorMode {
				v.cam.ColorMode = colorCycle[(i+1)%len(colorCycle)]
				break
			}
		}

	case 'a', 'A':
		v.cam.Autoresize.Enabled = !v.cam.Autoresize.Enabled

	case 'f', 'F':
		v.cam.Stretch = !v.cam.Stretch

	case 'S':
		v.showStatus = !v.showStatus
	}
	return true
}
