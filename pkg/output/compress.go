package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/golang/snappy"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Codec names a stream compression applied to encoded images
type Codec string

const (
	CodecNone   Codec = "none"
	CodecGzip   Codec = "gzip"
	CodecZstd   Codec = "zstd"
	CodecSnappy Codec = "snappy"
)

// ParseCodec converts a configuration value to a Codec. Empty means none.
func ParseCodec(s string) (Codec, error) {
	switch c := Codec(strings.ToLower(strings.TrimSpace(s))); c {
	case "", CodecNone:
		return CodecNone, nil
	case CodecGzip, CodecZstd, CodecSnappy:
		return c, nil
	default:
		return "", fmt.Errorf("unknown compression %q (want none, gzip, zstd or snappy)", s)
	}
}

// Extension returns the file suffix for the codec, empty for none
func (c Codec) Extension() string {
	switch c {
	case CodecGzip:
		return ".gz"
	case CodecZstd:
		return ".zst"
	case CodecSnappy:
		return ".sz"
	default:
		return ""
	}
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// NewCompressedWriter wraps w so that everything written is compressed with codec.
// Close flushes the compressed stream but does not close w.
func NewCompressedWriter(w io.Writer, codec Codec) (io.WriteCloser, error) {
	switch codec {
	case "", CodecNone:
		return nopWriteCloser{w}, nil
	case CodecGzip:
		return gzip.NewWriter(w), nil
	case CodecZstd:
		enc, err := zstd.NewWriter(w)
		if err != nil {
			return nil, fmt.Errorf("zstd writer: %w", err)
		}
		return enc, nil
	case CodecSnappy:
		return snappy.NewBufferedWriter(w), nil
	default:
		return nil, fmt.Errorf("unknown compression %q", codec)
	}
}

// NewDecompressedReader is the inverse of NewCompressedWriter
func NewDecompressedReader(r io.Reader, codec Codec) (io.ReadCloser, error) {
	switch codec {
	case "", CodecNone:
		return io.NopCloser(r), nil
	case CodecGzip:
		reader, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("gzip reader: %w", err)
		}
		return reader, nil
	case CodecZstd:
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("zstd reader: %w", err)
		}
		return dec.IOReadCloser(), nil
	case CodecSnappy:
		return io.NopCloser(snappy.NewReader(r)), nil
	default:
		return nil, fmt.Errorf("unknown compression %q", codec)
	}
}
