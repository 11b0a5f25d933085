package schema

import (
	"fmt"

	gojsonexp "github.com/go-json-experiment/json"
	"github.com/kaptinlin/ucl"
)

// jsonBytesToValue decodes JSON bytes into a generic any tree via
// go-json-experiment/json (the library the teacher's own schema.go already
// depends on for schema unmarshaling) and converts it into a *ucl.Value.
// Object key order is not preserved — schema keyword semantics never depend
// on it, unlike ucl.FromJSONBytes's general-purpose JSON ingestion, which
// uses goccy/go-json's token decoder instead to keep order for arbitrary
// documents (see DESIGN.md).
func jsonBytesToValue(data []byte) (*ucl.Value, error) {
	var generic any
	if err := gojsonexp.Unmarshal(data, &generic); err != nil {
		return nil, fmt.Errorf("schema: decoding JSON schema: %w", err)
	}
	return genericToValue(generic), nil
}

func genericToValue(v any) *ucl.Value {
	switch t := v.(type) {
	case nil:
		return ucl.NewNull()
	case bool:
		return ucl.NewBool(t)
	case string:
		return ucl.NewString(t)
	case float64:
		if t == float64(int64(t)) {
			return ucl.NewInt(int64(t))
		}
		return ucl.NewFloat(t)
	case []any:
		arr := ucl.NewArray()
		for _, el := range t {
			arr.Append(genericToValue(el))
		}
		return arr
	case map[string]any:
		obj := ucl.NewObject(false)
		for k, el := range t {
			obj.Insert(k, genericToValue(el))
		}
		return obj
	default:
		return ucl.NewNull()
	}
}
