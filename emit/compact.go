package emit

import (
	gojson "github.com/goccy/go-json"
	"github.com/kaptinlin/ucl"
)

func compactMarshal(v any) ([]byte, error) {
	return gojson.Marshal(v)
}

// renderCompactJSON builds the order-preserving generic tree (generic.go)
// and hands it to goccy/go-json, which is the fast path spec.md §4.8
// expects CompactJSON to take — no indentation, no newlines, everything on
// one line.
func renderCompactJSON(v *ucl.Value, fns funcsTable) error {
	generic := toJSONGeneric(v)
	out, err := gojson.Marshal(generic)
	if err != nil {
		return err
	}
	return fns.appendBytes(out)
}
