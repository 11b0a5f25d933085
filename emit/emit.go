// Package emit implements the multi-format emitter described in spec.md
// §4.8: a shared tree traversal over a github.com/kaptinlin/ucl.Value,
// driven by a per-format operations table, writing through a functions
// table to one of three byte sinks. Four formats are supported: Json,
// JsonCompact, Config (nginx-style), and Yaml.
package emit

import (
	"bytes"
	"fmt"

	"github.com/kaptinlin/ucl"
)

// Format selects one of the four output formats spec.md §4.8 defines.
type Format int

const (
	Json Format = iota
	JsonCompact
	Config
	Yaml
)

func (f Format) String() string {
	switch f {
	case Json:
		return "json"
	case JsonCompact:
		return "compact_json"
	case Config:
		return "config"
	case Yaml:
		return "yaml"
	default:
		return "unknown"
	}
}

// Emit renders v to a freshly allocated byte slice in the given format.
func Emit(v *ucl.Value, format Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := EmitFull(v, format, NewBufferSink(&buf)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EmitFull streams v through sink in the given format (spec.md §4.8's
// "emit_full" entry point). It is the one function every format funnels
// through, whether the caller wants an in-memory buffer, a file, or a raw
// file descriptor.
func EmitFull(v *ucl.Value, format Format, sink Sink) error {
	if v == nil {
		return fmt.Errorf("emit: nil value")
	}
	fns := newFuncsTable(sink)

	switch format {
	case Json:
		return renderText(v, fns, jsonOps())
	case Config:
		return renderText(v, fns, configOps())
	case JsonCompact:
		return renderCompactJSON(v, fns)
	case Yaml:
		return renderYAML(v, fns)
	default:
		return fmt.Errorf("emit: unknown format %d", format)
	}
}
