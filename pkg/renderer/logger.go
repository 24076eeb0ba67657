package renderer

import (
	"fmt"
	"io"
	"os"

	"github.com/df07/go-sphere-tracer/pkg/core"
)

// DefaultLogger implements core.Logger by writing to an io.Writer
type DefaultLogger struct {
	out io.Writer
}

// Printf implements core.Logger
func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Fprintf(dl.out, format, args...)
}

// NewDefaultLogger creates a logger writing to out, or stderr when out is nil.
// Stdout is left free for image output.
func NewDefaultLogger(out io.Writer) core.Logger {
	if out == nil {
		out = os.Stderr
	}
	return &DefaultLogger{out: out}
}
