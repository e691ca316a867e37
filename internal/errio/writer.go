// Package errio provides a small io.Writer wrapper that tracks the first
// write error encountered across a sequence of writes, so that callers
// emitting many small fields (a line at a time) need only check the error
// once at the end rather than after every write.
package errio

import (
	"io"

	"github.com/pkg/errors"
)

// Writer wraps an io.Writer and remembers the first error it produced.
// Once set, Write keeps returning that same error without touching the
// underlying writer again.
type Writer struct {
	w   io.Writer
	Err error
}

func (w *Writer) Write(p []byte) (n int, err error) {
	if w.Err != nil {
		return 0, w.Err
	}
	n, err = w.w.Write(p)
	if err != nil {
		w.Err = errors.Wrap(err, "write failed")
	}
	return n, w.Err
}

// New returns a new Writer wrapping w.
func New(w io.Writer) *Writer {
	return &Writer{w: w}
}
