package output

import (
	"bufio"
	"fmt"
	"io"

	"github.com/df07/go-sphere-tracer/pkg/renderer"
)

// EncodePPM writes frame as a plain text P3 image: a header with the size and
// maximum value 255, then one "r g b" line per pixel, rows from top to bottom.
func EncodePPM(w io.Writer, frame *renderer.Frame) error {
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", frame.Width, frame.Height); err != nil {
		return fmt.Errorf("write ppm header: %w", err)
	}

	for y := 0; y < frame.Height; y++ {
		for x := 0; x < frame.Width; x++ {
			r, g, b := frame.RGB(x, y)
			if _, err := fmt.Fprintf(bw, "%d %d %d\n", r, g, b); err != nil {
				return fmt.Errorf("write ppm pixel (%d,%d): %w", x, y, err)
			}
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush ppm: %w", err)
	}
	return nil
}
