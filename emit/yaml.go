package emit

import (
	goyaml "github.com/goccy/go-yaml"
	"github.com/kaptinlin/ucl"
)

// renderYAML builds the order-preserving generic tree (generic.go) and
// hands it to goccy/go-yaml. Scalars are emitted unquoted wherever the
// library's own quoting rules allow (spec.md §4.8); we don't second-guess
// that decision since it already encodes the "unsafe bytes" cases we'd
// otherwise have to duplicate by hand.
func renderYAML(v *ucl.Value, fns funcsTable) error {
	generic := toYAMLGeneric(v)
	out, err := goyaml.Marshal(generic)
	if err != nil {
		return err
	}
	return fns.appendBytes(out)
}
