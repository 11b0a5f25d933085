package emit

import (
	"fmt"

	"github.com/kaptinlin/ucl"
)

// StreamEmitter implements spec.md §4.8's four-operation streaming API:
// start, start_container/add_object/end_container as the caller walks its
// own data source, and finish to flush. It accumulates into a Value tree
// using the same container-stack technique as parser.Parser (push on
// start_container, attach on end_container) rather than writing bytes
// immediately; finish hands the completed tree to the ordinary renderer.
// This is a deliberate simplicity/reuse trade against the fully
// zero-buffer incremental encoder the spec's overview gestures at — see
// DESIGN.md.
type StreamEmitter struct {
	format   Format
	sink     Sink
	started  bool
	finished bool

	root  *ucl.Value
	stack []*streamFrame
}

type streamFrame struct {
	container  *ucl.Value
	pendingKey string
	haveKey    bool
}

// Start configures the emitter's target format and byte sink.
func (e *StreamEmitter) Start(format Format, sink Sink) error {
	if e.started {
		return fmt.Errorf("emit: stream already started")
	}
	e.format = format
	e.sink = sink
	e.started = true
	return nil
}

// StartContainer opens a new Object or Array, pushing it onto the
// emitter's container stack. isArray selects which.
func (e *StreamEmitter) StartContainer(isArray bool) error {
	if !e.started {
		return fmt.Errorf("emit: stream not started")
	}
	var c *ucl.Value
	if isArray {
		c = ucl.NewArray()
	} else {
		c = ucl.NewObject(false)
	}
	e.stack = append(e.stack, &streamFrame{container: c})
	return nil
}

// SetKey records the key the next AddObject/StartContainer call attaches
// under; it is an error to call this while the innermost container is an
// Array.
func (e *StreamEmitter) SetKey(key string) error {
	f := e.top()
	if f == nil {
		return fmt.Errorf("emit: no open container")
	}
	if f.container.Tag() != ucl.Object {
		return fmt.Errorf("emit: SetKey on a non-Object container")
	}
	f.pendingKey = key
	f.haveKey = true
	return nil
}

// AddObject attaches a single completed leaf value to the innermost open
// container (spec.md §4.8's add_object).
func (e *StreamEmitter) AddObject(v *ucl.Value) error {
	f := e.top()
	if f == nil {
		return fmt.Errorf("emit: no open container")
	}
	return e.attach(f, v)
}

func (e *StreamEmitter) attach(f *streamFrame, v *ucl.Value) error {
	if f.container.Tag() == ucl.Array {
		f.container.Append(v)
		return nil
	}
	if !f.haveKey {
		return fmt.Errorf("emit: object entry added without a key")
	}
	f.container.Insert(f.pendingKey, v)
	f.haveKey = false
	return nil
}

// EndContainer closes the innermost open container and attaches it to
// its parent, or sets it as the document root if this was the outermost
// one.
func (e *StreamEmitter) EndContainer() error {
	n := len(e.stack)
	if n == 0 {
		return fmt.Errorf("emit: end_container with no matching start_container")
	}
	f := e.stack[n-1]
	e.stack = e.stack[:n-1]
	if len(e.stack) == 0 {
		e.root = f.container
		return nil
	}
	return e.attach(e.stack[len(e.stack)-1], f.container)
}

func (e *StreamEmitter) top() *streamFrame {
	if len(e.stack) == 0 {
		return nil
	}
	return e.stack[len(e.stack)-1]
}

// Finish closes any outstanding containers (the invariant spec.md §4.8
// requires) and flushes the accumulated tree to the sink.
func (e *StreamEmitter) Finish() error {
	if e.finished {
		return fmt.Errorf("emit: stream already finished")
	}
	for len(e.stack) > 0 {
		if err := e.EndContainer(); err != nil {
			return err
		}
	}
	e.finished = true
	if e.root == nil {
		return fmt.Errorf("emit: stream produced no root value")
	}
	return EmitFull(e.root, e.format, e.sink)
}
