package renderer

import (
	"image"
	"image/color"
	"math"

	"github.com/df07/go-sphere-tracer/pkg/core"
)

// Frame holds the averaged linear color of every pixel. Row 0 is the top of the image.
type Frame struct {
	Width  int
	Height int
	Pixels []core.Vec3
}

// NewFrame allocates a black frame
func NewFrame(width, height int) *Frame {
	return &Frame{
		Width:  width,
		Height: height,
		Pixels: make([]core.Vec3, width*height),
	}
}

// At returns the linear color at (x, y)
func (f *Frame) At(x, y int) core.Vec3 {
	return f.Pixels[y*f.Width+x]
}

// Set stores the linear color at (x, y)
func (f *Frame) Set(x, y int, c core.Vec3) {
	f.Pixels[y*f.Width+x] = c
}

// RGB returns the gamma corrected 8-bit channels of the pixel at (x, y)
func (f *Frame) RGB(x, y int) (r, g, b uint8) {
	c := f.At(x, y)
	return ToByte(c.X), ToByte(c.Y), ToByte(c.Z)
}

// Image converts the frame to an 8-bit RGBA image
func (f *Frame) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			r, g, b := f.RGB(x, y)
			img.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}
	return img
}

// ToByte applies gamma 2 correction to a linear channel and quantizes it as
// floor(255.99 * sqrt(c)), clamped to [0, 255]
func ToByte(c float64) uint8 {
	if !(c > 0) {
		return 0
	}
	v := math.Floor(255.99 * math.Sqrt(c))
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
