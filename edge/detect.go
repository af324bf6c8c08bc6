package edge

import (
	"math"

	"github.com/lixenwraith/termcam/frame"
	"github.com/lixenwraith/termcam/sample"
)

// maxColorDistance is the RGB distance between black and white
var maxColorDistance = 255 * math.Sqrt(3)

// tap is one weighted neighbor of a kernel side, offsets in cells
type tap struct {
	dx, dy int
	w      float64
}

// kernel compares two opposite sides of a cell. Each side is three taps
// weighted 1,2,1 around the axis perpendicular to the edge direction.
type kernel struct {
	dir  Direction
	a, b [3]tap
}

// kernels are listed in tie-break priority order
var kernels = [4]kernel{
	{
		dir: DirectionVertical,
		a:   [3]tap{{-1, -1, 1}, {-1, 0, 2}, {-1, 1, 1}},
		b:   [3]tap{{1, -1, 1}, {1, 0, 2}, {1, 1, 1}},
	},
	{
		dir: DirectionHorizontal,
		a:   [3]tap{{-1, -1, 1}, {0, -1, 2}, {1, -1, 1}},
		b:   [3]tap{{-1, 1, 1}, {0, 1, 2}, {1, 1, 1}},
	},
	{
		dir: DirectionForward,
		a:   [3]tap{{-1, 0, 1}, {-1, -1, 2}, {0, -1, 1}},
		b:   [3]tap{{1, 0, 1}, {1, 1, 2}, {0, 1, 1}},
	},
	{
		dir: DirectionBackward,
		a:   [3]tap{{-1, 0, 1}, {-1, 1, 2}, {0, 1, 1}},
		b:   [3]tap{{1, 0, 1}, {1, -1, 2}, {0, -1, 1}},
	},
}

// side is the weighted aggregate of one kernel side
type side struct {
	r, g, b float64
	depth   float64 // weighted mean over taps with geometry
	hits    float64 // weight of taps with geometry
	empty   float64 // weighted fraction of taps without geometry, [0,1]
	normal  frame.Vec3
}

// Detect classifies every cell of a rows x cols sample grid.
// Detection needs geometry: it returns nil when disabled, when the frame had
// neither depth nor normals, or when the grid does not match samples.
// Responses are normalized per channel by its threshold and the strongest
// channel wins. Equal directional responses resolve vertical, horizontal,
// forward, backward in that order.
func Detect(samples []sample.Sample, rows, cols int, hasDepth, hasNormals bool, cfg Config) []Classification {
	if !cfg.Enabled || (!hasDepth && !hasNormals) {
		return nil
	}
	if rows <= 0 || cols <= 0 || len(samples) != rows*cols {
		return nil
	}

	useDepth := hasDepth && cfg.Depth
	useNormal := hasNormals && cfg.Normal
	useColor := cfg.Color
	if !useDepth && !useNormal && !useColor {
		return make([]Classification, rows*cols)
	}

	d := detector{
		samples:   samples,
		rows:      rows,
		cols:      cols,
		step:      max(cfg.Thickness, 1),
		useDepth:  useDepth,
		useNormal: useNormal,
		useColor:  useColor,
		cfg:       cfg,
	}

	out := make([]Classification, rows*cols)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			out[y*cols+x] = d.classify(x, y)
		}
	}
	return out
}

type detector struct {
	samples    []sample.Sample
	rows, cols int
	step       int

	useDepth, useNormal, useColor bool
	cfg                           Config
}

func (d *detector) classify(x, y int) Classification {
	var responses [4]float64
	for i, k := range kernels {
		responses[i] = d.response(x, y, k)
	}
	return strongest(responses)
}

// strongest picks the largest response, indexed in directionPriority order.
// Strict comparison keeps the earlier direction on ties.
func strongest(responses [4]float64) Classification {
	var best Classification
	for i, r := range responses {
		if r > best.Magnitude {
			best = Classification{Direction: directionPriority[i], Magnitude: r}
		}
	}
	return best
}

// response is the strongest normalized channel difference across the kernel
func (d *detector) response(x, y int, k kernel) float64 {
	a := d.side(x, y, k.a)
	b := d.side(x, y, k.b)

	r := 0.0
	if d.useDepth {
		r = max(r, normalize(depthMetric(a, b), d.cfg.DepthThreshold))
	}
	if d.useNormal {
		r = max(r, normalize(frame.Angle(a.normal, b.normal), d.cfg.NormalThreshold))
	}
	if d.useColor {
		dr, dg, db := a.r-b.r, a.g-b.g, a.b-b.b
		dist := math.Sqrt(dr*dr+dg*dg+db*db) / maxColorDistance
		r = max(r, normalize(dist, d.cfg.ColorThreshold))
	}
	return r
}

func (d *detector) side(x, y int, taps [3]tap) side {
	var s side
	var total float64
	for _, t := range taps {
		nx := clampInt(x+t.dx*d.step, 0, d.cols-1)
		ny := clampInt(y+t.dy*d.step, 0, d.rows-1)
		smp := &d.samples[ny*d.cols+nx]

		s.r += float64(smp.Color.R) * t.w
		s.g += float64(smp.Color.G) * t.w
		s.b += float64(smp.Color.B) * t.w
		if smp.HasGeometry() {
			s.depth += smp.Depth * t.w
			s.hits += t.w
		} else {
			s.empty += t.w
		}
		s.normal = s.normal.Add(smp.Normal.Scale(t.w))
		total += t.w
	}
	inv := 1 / total
	s.r *= inv
	s.g *= inv
	s.b *= inv
	s.empty *= inv
	if s.hits > 0 {
		s.depth /= s.hits
	}
	return s
}

// depthMetric is the stronger of two depth differences between kernel sides.
// Coverage: the difference in the fraction of taps landing on background, so
// a side fully on background against a side fully on geometry counts as a
// relative difference of 1 and a partial overlap counts proportionally.
// Depth: where both sides touch geometry, the difference of their mean
// depths relative to the nearer one.
func depthMetric(a, b side) float64 {
	m := math.Abs(a.empty - b.empty)
	if a.hits > 0 && b.hits > 0 {
		m = max(m, math.Abs(a.depth-b.depth)/(1+min(a.depth, b.depth)))
	}
	return m
}

// normalize scales a channel metric by its threshold; a non-positive
// threshold makes any difference infinitely strong
func normalize(m, threshold float64) float64 {
	if m <= 0 || math.IsNaN(m) {
		return 0
	}
	if threshold <= 0 {
		return math.Inf(1)
	}
	return m / threshold
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
