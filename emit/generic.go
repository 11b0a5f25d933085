package emit

import (
	goyaml "github.com/goccy/go-yaml"
	"github.com/kaptinlin/ucl"
)

// orderedJSONObject is a minimal order-preserving object wrapper for the
// compact-JSON path: goccy/go-json marshals values through it, but key
// order is ours to keep, not Go map iteration's to lose.
type orderedJSONObject struct {
	keys   []string
	values []any
}

func (o *orderedJSONObject) set(k string, v any) {
	o.keys = append(o.keys, k)
	o.values = append(o.values, v)
}

// MarshalJSON is consumed by goccy/go-json's Marshal, which recurses into
// each value (including nested orderedJSONObject instances) on our behalf.
func (o *orderedJSONObject) MarshalJSON() ([]byte, error) {
	buf := []byte{'{'}
	for i, k := range o.keys {
		if i > 0 {
			buf = append(buf, ',')
		}
		kb, err := compactMarshal(k)
		if err != nil {
			return nil, err
		}
		buf = append(buf, kb...)
		buf = append(buf, ':')
		vb, err := compactMarshal(o.values[i])
		if err != nil {
			return nil, err
		}
		buf = append(buf, vb...)
	}
	buf = append(buf, '}')
	return buf, nil
}

// toJSONGeneric converts v into plain Go values goccy/go-json already knows
// how to encode, with Object keys kept in insertion order via
// orderedJSONObject and duplicate keys grouped into a JSON array (spec.md
// §4.8's "Duplicate keys ... JSON array" rule).
func toJSONGeneric(v *ucl.Value) any {
	switch v.Tag() {
	case ucl.Object:
		obj := &orderedJSONObject{}
		for _, key := range v.Keys() {
			head, _ := v.Get(key)
			chain := chainOf(head)
			if len(chain) == 1 {
				obj.set(key, toJSONGeneric(head))
				continue
			}
			arr := make([]any, len(chain))
			for i, c := range chain {
				arr[i] = toJSONGeneric(c)
			}
			obj.set(key, arr)
		}
		return obj
	case ucl.Array:
		elems := v.Elements()
		arr := make([]any, len(elems))
		for i, e := range elems {
			arr[i] = toJSONGeneric(e)
		}
		return arr
	default:
		return scalarGeneric(v)
	}
}

// toYAMLGeneric mirrors toJSONGeneric but targets goccy/go-yaml's
// order-preserving MapSlice/MapItem types instead of a custom marshaler.
func toYAMLGeneric(v *ucl.Value) any {
	switch v.Tag() {
	case ucl.Object:
		var slice goyaml.MapSlice
		for _, key := range v.Keys() {
			head, _ := v.Get(key)
			chain := chainOf(head)
			if len(chain) == 1 {
				slice = append(slice, goyaml.MapItem{Key: key, Value: toYAMLGeneric(head)})
				continue
			}
			arr := make([]any, len(chain))
			for i, c := range chain {
				arr[i] = toYAMLGeneric(c)
			}
			slice = append(slice, goyaml.MapItem{Key: key, Value: arr})
		}
		return slice
	case ucl.Array:
		elems := v.Elements()
		arr := make([]any, len(elems))
		for i, e := range elems {
			arr[i] = toYAMLGeneric(e)
		}
		return arr
	default:
		return scalarGeneric(v)
	}
}

func scalarGeneric(v *ucl.Value) any {
	switch v.Tag() {
	case ucl.Null:
		return nil
	case ucl.Bool:
		return v.Bool()
	case ucl.Int:
		return v.Int()
	case ucl.Float, ucl.Time:
		return v.Float()
	case ucl.String:
		return v.Str()
	case ucl.Userdata:
		ud := v.Userdata()
		if ud != nil && ud.Emit != nil {
			return ud.Emit(ud.Data)
		}
		return nil
	default:
		return nil
	}
}
