package render

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/termcam/terminal"
)

var (
	red  = terminal.Quantize(terminal.RGB{R: 255}, terminal.ColorModeTrueColor)
	blue = terminal.Quantize(terminal.RGB{B: 255}, terminal.ColorModeTrueColor)
)

func TestDepthBufferCompareAndUpdate(t *testing.T) {
	b := NewDepthBuffer(2, 2)
	assert.True(t, math.IsInf(b.At(1, 1), 1))

	tests := []struct {
		name      string
		depth     float64
		wantDrawn bool
		wantStore float64
	}{
		{"first write", 5, true, 5},
		{"farther rejected", 10, false, 5},
		{"equal accepted", 5, true, 5},
		{"nearer accepted", 2, true, 2},
		{"NaN is infinitely far", math.NaN(), false, 2},
		{"negative clamps to zero", -3, true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			drawn, ok := b.CompareAndUpdate(0, 0, tt.depth)
			require.True(t, ok)
			assert.Equal(t, tt.wantDrawn, drawn)
			assert.Equal(t, tt.wantStore, b.At(0, 0))
		})
	}

	_, ok := b.CompareAndUpdate(2, 0, 1)
	assert.False(t, ok)
	_, ok = b.CompareAndUpdate(0, -1, 1)
	assert.False(t, ok)

	b.Reset()
	assert.True(t, math.IsInf(b.At(0, 0), 1))
}

func TestDepthBufferMonotonic(t *testing.T) {
	b := NewDepthBuffer(1, 1)
	last := math.Inf(1)
	for _, d := range []float64{9, 3, 7, 3, 1, 100, math.NaN(), 0.5} {
		b.CompareAndUpdate(0, 0, d)
		require.LessOrEqual(t, b.At(0, 0), last)
		last = b.At(0, 0)
	}
	assert.Equal(t, 0.5, last)
}

func TestCompositorDrawOrder(t *testing.T) {
	tests := []struct {
		name  string
		first float64
		then  float64
		want  terminal.Color
	}{
		{"near then far keeps near", 5, 10, red},
		{"far then near overwrites", 10, 5, blue},
		{"equal depth later draw wins", 5, 5, blue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCompositor(3, 3)
			c.Draw(1, 1, Cell{Glyph: 'A', Fg: red, Depth: tt.first}, DepthTest)
			c.Draw(1, 1, Cell{Glyph: 'B', Fg: blue, Depth: tt.then}, DepthTest)
			assert.Equal(t, tt.want, c.Grid.At(1, 1).Fg)
			assert.Equal(t, min(tt.first, tt.then), c.Depth.At(1, 1))
		})
	}
}

func TestCompositorPolicies(t *testing.T) {
	c := NewCompositor(2, 1)
	c.Draw(0, 0, Cell{Glyph: 'A', Depth: 1}, DepthTest)

	// Bypass draws over nearer content and leaves depth alone
	assert.True(t, c.Draw(0, 0, Cell{Glyph: 'B', Depth: 50}, DepthBypass))
	assert.Equal(t, 'B', c.Grid.At(0, 0).Glyph)
	assert.Equal(t, 1.0, c.Depth.At(0, 0))

	// Explicit depth overrides the cell's own
	assert.False(t, c.Draw(0, 0, Cell{Glyph: 'C', Depth: 0}, DepthExplicit(2)))
	assert.True(t, c.Draw(0, 0, Cell{Glyph: 'D', Depth: 99}, DepthExplicit(0.5)))
	assert.Equal(t, 'D', c.Grid.At(0, 0).Glyph)
	assert.Equal(t, 0.5, c.Depth.At(0, 0))

	// Skip and out of bounds never draw
	assert.False(t, c.Draw(1, 0, Cell{Glyph: 'E', Skip: true}, DepthBypass))
	assert.False(t, c.Grid.Touched(1, 0))
	assert.False(t, c.Draw(5, 0, Cell{Glyph: 'F'}, DepthBypass))

	// No depth buffer behaves as bypass
	nd := &Compositor{Grid: NewGrid(1, 1)}
	assert.True(t, nd.Draw(0, 0, Cell{Glyph: 'G', Depth: 5}, DepthTest))
	assert.True(t, nd.Draw(0, 0, Cell{Glyph: 'H', Depth: 10}, DepthTest))
	assert.Equal(t, 'H', nd.Grid.At(0, 0).Glyph)
}

func TestGridSetPreservesUnsetBackground(t *testing.T) {
	g := NewGrid(1, 1)
	g.Set(0, 0, Cell{Glyph: '▄', Fg: red, Bg: blue})
	g.Set(0, 0, Cell{Glyph: 'x', Fg: red})

	got := g.At(0, 0)
	assert.Equal(t, 'x', got.Glyph)
	assert.Equal(t, blue, got.Bg)
	assert.True(t, g.Touched(0, 0))

	g.Clear()
	assert.Equal(t, BlankCell, g.At(0, 0))
	assert.False(t, g.Touched(0, 0))
}

func TestGridResizeReusesCapacity(t *testing.T) {
	g := NewGrid(4, 4)
	g.Set(3, 3, Cell{Glyph: 'z'})
	g.Resize(2, 3)
	assert.Equal(t, 2, g.Width())
	assert.Equal(t, 3, g.Height())
	assert.Len(t, g.Cells(), 6)
	for _, c := range g.Cells() {
		assert.Equal(t, BlankCell, c)
	}

	rows := g.Rows()
	require.Len(t, rows, 3)
	assert.Len(t, rows[0], 2)
}

func TestDrawTextOcclusion(t *testing.T) {
	c := NewCompositor(6, 1)
	// Scene at depth 3 in the middle two cells
	c.Draw(2, 0, Cell{Glyph: '#', Depth: 3}, DepthTest)
	c.Draw(3, 0, Cell{Glyph: '#', Depth: 3}, DepthTest)

	// Label behind the scene
	n := c.DrawText(0, 0, "abcdef", red, terminal.DefaultColor, DepthExplicit(5))
	assert.Equal(t, 6, n)

	var line []rune
	for x := 0; x < 6; x++ {
		line = append(line, c.Grid.At(x, 0).Glyph)
	}
	assert.Equal(t, "ab##ef", string(line))
}

func TestDrawTextWideRunes(t *testing.T) {
	c := NewCompositor(6, 1)
	n := c.DrawText(0, 0, "日x", red, terminal.DefaultColor, DepthBypass)
	assert.Equal(t, 3, n)
	assert.Equal(t, 3, TextWidth("日x"))
	assert.Equal(t, '日', c.Grid.At(0, 0).Glyph)
	assert.Equal(t, rune(0), c.Grid.At(1, 0).Glyph)
	assert.Equal(t, 'x', c.Grid.At(2, 0).Glyph)
}

func TestDrawTextWideRuneNeedsBothColumns(t *testing.T) {
	tests := []struct {
		name   string
		width  int
		text   string
		policy DepthPolicy
		setup  func(c *Compositor)
		want   string // glyphs left to right, '.' for untouched
	}{
		{
			name:   "last column",
			width:  3,
			text:   "ab日",
			policy: DepthBypass,
			want:   "ab.",
		},
		{
			name:   "trailing column occluded",
			width:  4,
			text:   "a日b",
			policy: DepthExplicit(5),
			setup: func(c *Compositor) {
				c.Draw(2, 0, Cell{Glyph: '#', Depth: 3}, DepthTest)
			},
			want: "a.#b",
		},
		{
			name:   "leading column occluded",
			width:  4,
			text:   "a日b",
			policy: DepthExplicit(5),
			setup: func(c *Compositor) {
				c.Draw(1, 0, Cell{Glyph: '#', Depth: 3}, DepthTest)
			},
			want: "a#.b",
		},
		{
			name:   "both columns visible",
			width:  4,
			text:   "a日b",
			policy: DepthExplicit(2),
			setup: func(c *Compositor) {
				c.Draw(2, 0, Cell{Glyph: '#', Depth: 3}, DepthTest)
			},
			want: "a日\x00b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCompositor(tt.width, 1)
			if tt.setup != nil {
				tt.setup(c)
			}
			n := c.DrawText(0, 0, tt.text, red, terminal.DefaultColor, tt.policy)
			assert.Equal(t, TextWidth(tt.text), n)

			var line []rune
			for x := 0; x < tt.width; x++ {
				if !c.Grid.Touched(x, 0) {
					line = append(line, '.')
					continue
				}
				line = append(line, c.Grid.At(x, 0).Glyph)
			}
			assert.Equal(t, tt.want, string(line))
		})
	}
}

func TestWriteANSI(t *testing.T) {
	g := NewGrid(2, 2)
	g.Set(0, 0, Cell{Glyph: 'a', Fg: red})
	g.Set(1, 0, Cell{Glyph: 'b', Fg: red})
	g.Set(0, 1, Cell{Glyph: 'c', Fg: blue, Bg: red})

	var buf bytes.Buffer
	require.NoError(t, WriteANSI(&buf, g))

	want := "\x1b[0;38;2;255;0;0mab\x1b[0m\n" +
		"\x1b[0;38;2;0;0;255;48;2;255;0;0mc\x1b[0m \x1b[0m\n"
	assert.Equal(t, want, buf.String())
}
