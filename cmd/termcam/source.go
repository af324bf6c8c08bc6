package main

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/lixenwraith/termcam/camera"
	"github.com/lixenwraith/termcam/frame"
	"github.com/lixenwraith/termcam/render"
)

// source stands in for a GPU render target: it owns the current frame and
// rebuilds it at whatever size the camera asks for
type source struct {
	color   image.Image
	depth   image.Image // optional, white = near
	normals image.Image // optional, RGB-encoded unit vectors
	near    float64
	far     float64

	size  camera.Size
	frame *frame.Frame
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return img, nil
}

// newSource builds a frame at the color image's native size
func newSource(color, depth, normals image.Image, near, far float64) (*source, error) {
	b := color.Bounds()
	s := &source{color: color, depth: depth, normals: normals, near: near, far: far}
	if err := s.resize(b.Dx(), b.Dy()); err != nil {
		return nil, err
	}
	return s, nil
}

// resize rebuilds the frame at width x height. Color is filtered; depth and
// normal maps use nearest sampling so silhouettes are not smeared across.
func (s *source) resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid render target size %dx%d", width, height)
	}

	f := frame.FromImage(scale(s.color, width, height, xdraw.CatmullRom))

	if s.depth != nil {
		d, err := frame.DepthFromImage(scale(s.depth, width, height, xdraw.NearestNeighbor), s.near, s.far)
		if err != nil {
			return err
		}
		f.Depth = d
	}
	if s.normals != nil {
		f.Normals = frame.NormalsFromImage(scale(s.normals, width, height, xdraw.NearestNeighbor))
	}

	if err := f.Validate(); err != nil {
		return err
	}
	s.frame = f
	s.size = camera.Size{Width: width, Height: height}
	return nil
}

// apply acts on an autoresize decision, reporting whether the frame changed
func (s *source) apply(dec camera.Decision) (bool, error) {
	if dec.Kind != camera.RequestResize {
		return false, nil
	}
	if err := s.resize(dec.Width, dec.Height); err != nil {
		return false, err
	}
	camera.Logger().Debug("render target resized", "w", dec.Width, "h", dec.Height)
	return true, nil
}

// render draws the current frame, rebuilding it once if the camera asks for
// a different size so the new frame renders in the same pass
func (s *source) render(cam *camera.Camera, area render.Rect, comp *render.Compositor) (camera.Result, error) {
	res, err := cam.Render(s.frame, area, comp)
	if err != nil {
		return res, err
	}
	changed, err := s.apply(res.Resize)
	if err != nil || !changed {
		return res, err
	}
	return cam.Render(s.frame, area, comp)
}

// scale returns img resampled to width x height, or img itself when it
// already has that size
func scale(img image.Image, width, height int, interp xdraw.Interpolator) image.Image {
	b := img.Bounds()
	if b.Dx() == width && b.Dy() == height {
		return img
	}
	dst := image.NewNRGBA64(image.Rect(0, 0, width, height))
	interp.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}
