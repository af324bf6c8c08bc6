package frame

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrDimensionMismatch reports depth or normal buffers sized differently from the color buffer
	ErrDimensionMismatch = errors.New("frame: buffer dimensions do not match color buffer")

	// ErrBufferSize reports a color buffer that is not width*height*4 bytes
	ErrBufferSize = errors.New("frame: color buffer size does not match dimensions")
)

// Frame is one rendered image handed to the conversion pipeline.
// Pix is RGBA8, row-major, origin top-left. Depth holds one value per pixel,
// lower is nearer. Normals holds three components per pixel.
// Depth and Normals are optional and nil when absent.
type Frame struct {
	Width   int
	Height  int
	Pix     []uint8
	Depth   []float32
	Normals []float32
}

// New allocates a transparent black frame
func New(width, height int) *Frame {
	width, height = max(width, 0), max(height, 0)
	return &Frame{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*4),
	}
}

// WithDepth allocates a depth buffer initialized to +Inf (no geometry)
func (f *Frame) WithDepth() *Frame {
	f.Depth = make([]float32, f.Width*f.Height)
	inf := float32(math.Inf(1))
	for i := range f.Depth {
		f.Depth[i] = inf
	}
	return f
}

// WithNormals allocates a zeroed normal buffer
func (f *Frame) WithNormals() *Frame {
	f.Normals = make([]float32, f.Width*f.Height*3)
	return f
}

// HasDepth reports whether a depth buffer is attached
func (f *Frame) HasDepth() bool {
	return f.Depth != nil
}

// HasNormals reports whether a normal buffer is attached
func (f *Frame) HasNormals() bool {
	return f.Normals != nil
}

// Empty reports whether the frame has no pixels
func (f *Frame) Empty() bool {
	return f.Width <= 0 || f.Height <= 0
}

// Validate checks buffer sizes against the declared dimensions.
// A frame failing validation must be skipped rather than sampled.
func (f *Frame) Validate() error {
	if f.Width < 0 || f.Height < 0 {
		return fmt.Errorf("%w: negative dimensions %dx%d", ErrBufferSize, f.Width, f.Height)
	}
	n := f.Width * f.Height
	if len(f.Pix) != n*4 {
		return fmt.Errorf("%w: %dx%d needs %d bytes, have %d", ErrBufferSize, f.Width, f.Height, n*4, len(f.Pix))
	}
	if f.Depth != nil && len(f.Depth) != n {
		return fmt.Errorf("%w: depth has %d values, want %d", ErrDimensionMismatch, len(f.Depth), n)
	}
	if f.Normals != nil && len(f.Normals) != n*3 {
		return fmt.Errorf("%w: normals have %d components, want %d", ErrDimensionMismatch, len(f.Normals), n*3)
	}
	return nil
}

// Set writes one pixel; out of range coordinates are ignored
func (f *Frame) Set(x, y int, r, g, b, a uint8) {
	if !f.inBounds(x, y) {
		return
	}
	i := (y*f.Width + x) * 4
	f.Pix[i], f.Pix[i+1], f.Pix[i+2], f.Pix[i+3] = r, g, b, a
}

// RGBA returns one pixel; caller guarantees bounds
func (f *Frame) RGBA(x, y int) (r, g, b, a uint8) {
	i := (y*f.Width + x) * 4
	return f.Pix[i], f.Pix[i+1], f.Pix[i+2], f.Pix[i+3]
}

// SetDepth writes one depth value; no-op without a depth buffer
func (f *Frame) SetDepth(x, y int, d float32) {
	if f.Depth == nil || !f.inBounds(x, y) {
		return
	}
	f.Depth[y*f.Width+x] = d
}

// DepthAt returns the sanitized depth of one pixel.
// NaN reads as +Inf (no geometry), negative values clamp to 0.
// Frames without depth report +Inf.
func (f *Frame) DepthAt(x, y int) float64 {
	if f.Depth == nil {
		return math.Inf(1)
	}
	return SanitizeDepth(float64(f.Depth[y*f.Width+x]))
}

// SetNormal writes one normal; no-op without a normal buffer
func (f *Frame) SetNormal(x, y int, n Vec3) {
	if f.Normals == nil || !f.inBounds(x, y) {
		return
	}
	i := (y*f.Width + x) * 3
	f.Normals[i], f.Normals[i+1], f.Normals[i+2] = float32(n.X), float32(n.Y), float32(n.Z)
}

// NormalAt returns the normal of one pixel, zero vector when absent or non-finite
func (f *Frame) NormalAt(x, y int) Vec3 {
	if f.Normals == nil {
		return Vec3{}
	}
	i := (y*f.Width + x) * 3
	n := Vec3{float64(f.Normals[i]), float64(f.Normals[i+1]), float64(f.Normals[i+2])}
	if !n.Finite() {
		return Vec3{}
	}
	return n
}

func (f *Frame) inBounds(x, y int) bool {
	return x >= 0 && x < f.Width && y >= 0 && y < f.Height
}

// SanitizeDepth clamps out-of-range depth: NaN is treated as empty space
func SanitizeDepth(d float64) float64 {
	if math.IsNaN(d) {
		return math.Inf(1)
	}
	if d < 0 {
		return 0
	}
	return d
}
