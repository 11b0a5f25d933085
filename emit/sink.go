package emit

import (
	"bytes"
	"io"
	"os"
)

// Sink is the byte-sink abstraction spec.md §4.8 requires three concrete
// forms of: in-memory buffer, file stream, and raw file descriptor. All
// three are implemented here as thin io.Writer wrappers since Go's
// *os.File already serves both the "file stream" and "file descriptor"
// cases.
type Sink interface {
	io.Writer
}

// NewBufferSink wraps an in-memory buffer.
func NewBufferSink(buf *bytes.Buffer) Sink { return buf }

// NewFileSink wraps an open file stream.
func NewFileSink(f *os.File) Sink { return f }

// NewFDSink wraps a raw OS file descriptor, matching libucl-style hosts
// that hand the emitter an already-open fd rather than a *os.File.
func NewFDSink(fd uintptr) Sink { return os.NewFile(fd, "ucl-emit-fd") }

// funcsTable is spec.md §4.8's "functions table": the four low-level write
// primitives every format's operations table is built on top of.
type funcsTable struct {
	appendChar   func(c byte, n int) error
	appendBytes  func(p []byte) error
	appendInt    func(i int64) error
	appendDouble func(f float64) error
}

func newFuncsTable(sink Sink) funcsTable {
	return funcsTable{
		appendChar: func(c byte, n int) error {
			buf := make([]byte, n)
			for i := range buf {
				buf[i] = c
			}
			_, err := sink.Write(buf)
			return err
		},
		appendBytes: func(p []byte) error {
			_, err := sink.Write(p)
			return err
		},
		appendInt: func(i int64) error {
			_, err := sink.Write([]byte(formatInt(i)))
			return err
		},
		appendDouble: func(f float64) error {
			_, err := sink.Write([]byte(formatFloat(f)))
			return err
		},
	}
}

func (fns funcsTable) str(s string) error { return fns.appendBytes([]byte(s)) }
