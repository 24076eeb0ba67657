package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/df07/go-sphere-tracer/pkg/renderer"
)

// StdoutPath selects standard output instead of a file
const StdoutPath = "-"

// Format is an image encoding
type Format string

const (
	FormatPPM Format = "ppm"
	FormatPNG Format = "png"
)

// Options controls how a frame is written
type Options struct {
	Format        Format // Empty selects by file extension, PPM by default
	Compression   Codec  // Stream compression of the main image
	ThumbnailSize int    // Longest thumbnail edge in pixels, 0 disables
}

// FormatForPath picks the encoding from the file extension, ignoring any
// compression suffix
func FormatForPath(path string) Format {
	for _, codec := range []Codec{CodecGzip, CodecZstd, CodecSnappy} {
		path = strings.TrimSuffix(path, codec.Extension())
	}
	if strings.EqualFold(filepath.Ext(path), ".png") {
		return FormatPNG
	}
	return FormatPPM
}

// Encode writes frame to w in the given format, compressed with codec
func Encode(w io.Writer, frame *renderer.Frame, format Format, codec Codec) error {
	cw, err := NewCompressedWriter(w, codec)
	if err != nil {
		return err
	}

	switch format {
	case FormatPNG:
		err = EncodePNG(cw, frame)
	case "", FormatPPM:
		err = EncodePPM(cw, frame)
	default:
		err = fmt.Errorf("unknown image format %q", format)
	}
	if err != nil {
		cw.Close()
		return err
	}

	if err := cw.Close(); err != nil {
		return fmt.Errorf("close %s stream: %w", codec, err)
	}
	return nil
}

// WriteFile writes frame to path, creating parent directories, plus an optional
// PNG thumbnail next to it. It returns the paths it wrote. The path "-" writes the
// main image to standard output and skips the thumbnail.
func WriteFile(path string, frame *renderer.Frame, opts Options) ([]string, error) {
	format := opts.Format
	if format == "" {
		format = FormatForPath(path)
	}

	if path == StdoutPath {
		if err := Encode(os.Stdout, frame, format, opts.Compression); err != nil {
			return nil, err
		}
		return []string{StdoutPath}, nil
	}

	imagePath := path
	if ext := opts.Compression.Extension(); ext != "" && !strings.HasSuffix(imagePath, ext) {
		imagePath += ext
	}

	if err := writeEncoded(imagePath, func(w io.Writer) error {
		return Encode(w, frame, format, opts.Compression)
	}); err != nil {
		return nil, err
	}
	written := []string{imagePath}

	if opts.ThumbnailSize > 0 {
		thumbPath := ThumbnailPath(path)
		thumb := Thumbnail(frame, uint(opts.ThumbnailSize), uint(opts.ThumbnailSize))
		if err := writeEncoded(thumbPath, func(w io.Writer) error {
			return imaging.Encode(w, thumb, imaging.PNG)
		}); err != nil {
			return written, err
		}
		written = append(written, thumbPath)
	}

	return written, nil
}

// ThumbnailPath returns "<name>_thumb.png" beside the image at path
func ThumbnailPath(path string) string {
	for _, codec := range []Codec{CodecGzip, CodecZstd, CodecSnappy} {
		path = strings.TrimSuffix(path, codec.Extension())
	}
	return strings.TrimSuffix(path, filepath.Ext(path)) + "_thumb.png"
}

func writeEncoded(path string, encode func(w io.Writer) error) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	if err := encode(file); err != nil {
		file.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
