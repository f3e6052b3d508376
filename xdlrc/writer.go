package xdlrc

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// writer emits tab-indented declarations. The first write error sticks and
// every later write is dropped.
type writer struct {
	buf *bufio.Writer
	err error
}

func newWriter(w io.Writer) *writer {
	return &writer{buf: bufio.NewWriter(w)}
}

func (w *writer) line(depth int, format string, args ...interface{}) {
	if w.err != nil {
		return
	}
	if depth > 0 {
		w.buf.WriteString(strings.Repeat("\t", depth))
	}
	_, w.err = fmt.Fprintf(w.buf, format, args...)
	if w.err == nil {
		w.err = w.buf.WriteByte('\n')
	}
}

func (w *writer) flush() error {
	if w.err != nil {
		return w.err
	}
	w.err = w.buf.Flush()
	return w.err
}
