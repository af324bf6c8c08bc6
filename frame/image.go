package frame

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
)

// ErrDepthRange reports an unusable near/far pair
var ErrDepthRange = errors.New("frame: depth range requires 0 <= near < far")

// FromImage copies an image into a frame with straight (non-premultiplied) alpha
func FromImage(img image.Image) *Frame {
	b := img.Bounds()
	f := New(b.Dx(), b.Dy())

	// Fast path: NRGBA rows map directly onto the frame layout
	if src, ok := img.(*image.NRGBA); ok {
		rowBytes := f.Width * 4
		for y := 0; y < f.Height; y++ {
			off := src.PixOffset(b.Min.X, b.Min.Y+y)
			copy(f.Pix[y*rowBytes:(y+1)*rowBytes], src.Pix[off:off+rowBytes])
		}
		return f
	}

	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			f.Set(x, y, c.R, c.G, c.B, c.A)
		}
	}
	return f
}

// DepthFromImage decodes a grayscale depth map into linear depth values.
// White maps to near, black to far. Fully transparent pixels carry no geometry
// and decode to +Inf.
func DepthFromImage(img image.Image, near, far float64) ([]float32, error) {
	if math.IsNaN(near) || math.IsNaN(far) || near < 0 || far <= near {
		return nil, fmt.Errorf("%w: near=%g far=%g", ErrDepthRange, near, far)
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	depth := make([]float32, w*h)
	inf := float32(math.Inf(1))
	span := far - near

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := img.At(b.Min.X+x, b.Min.Y+y)
			if _, _, _, a := c.RGBA(); a == 0 {
				depth[y*w+x] = inf
				continue
			}
			g := float64(color.Gray16Model.Convert(c).(color.Gray16).Y) / 0xffff
			depth[y*w+x] = float32(near + (1-g)*span)
		}
	}
	return depth, nil
}

// NormalsFromImage decodes a normal map where each channel encodes one
// component in [-1,1]. Transparent pixels decode to the zero vector.
func NormalsFromImage(img image.Image) []float32 {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	normals := make([]float32, w*h*3)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			if c.A == 0 {
				continue
			}
			n := Vec3{
				X: float64(c.R)/127.5 - 1,
				Y: float64(c.G)/127.5 - 1,
				Z: float64(c.B)/127.5 - 1,
			}.Normalize()
			i := (y*w + x) * 3
			normals[i], normals[i+1], normals[i+2] = float32(n.X), float32(n.Y), float32(n.Z)
		}
	}
	return normals
}
