package output

import (
	"fmt"
	"image"
	"io"

	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"

	"github.com/df07/go-sphere-tracer/pkg/renderer"
)

// EncodePNG writes the gamma corrected frame as a PNG image
func EncodePNG(w io.Writer, frame *renderer.Frame) error {
	if err := imaging.Encode(w, frame.Image(), imaging.PNG); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// Thumbnail scales the frame down to fit within maxWidth x maxHeight, keeping the
// aspect ratio. Frames that already fit are returned at full size.
func Thumbnail(frame *renderer.Frame, maxWidth, maxHeight uint) image.Image {
	return resize.Thumbnail(maxWidth, maxHeight, frame.Image(), resize.Lanczos3)
}
