package ucl

import (
	"bytes"
	"fmt"
	"strconv"

	gojson "github.com/goccy/go-json"
)

// FromJSONBytes decodes a JSON document into a *Value tree, the inverse of
// emit.Emit(v, emit.Json)/emit.Emit(v, emit.JsonCompact). Unlike
// encoding/json's Unmarshal-into-map approach, it walks the input
// token-by-token so object key insertion order survives the round trip
// (spec.md §3's Object is an ordered map, not a Go map).
//
// This is the JSON ingestion path for hosts that already have JSON bytes
// (e.g. a JSON Schema document) and want a *Value without going through the
// Config-dialect parser.
func FromJSONBytes(data []byte) (*Value, error) {
	dec := gojson.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := decodeJSONValue(dec)
	if err != nil {
		return nil, fmt.Errorf("ucl: FromJSONBytes: %w", err)
	}
	return v, nil
}

func decodeJSONValue(dec *gojson.Decoder) (*Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return decodeJSONToken(dec, tok)
}

func decodeJSONToken(dec *gojson.Decoder, tok gojson.Token) (*Value, error) {
	switch t := tok.(type) {
	case nil:
		return NewNull(), nil
	case bool:
		return NewBool(t), nil
	case gojson.Number:
		return numberToValue(t), nil
	case string:
		return NewString(t), nil
	case gojson.Delim:
		switch t {
		case '[':
			return decodeJSONArray(dec)
		case '{':
			return decodeJSONObject(dec)
		default:
			return nil, fmt.Errorf("unexpected delimiter %q", t)
		}
	default:
		return nil, fmt.Errorf("unexpected JSON token %T", tok)
	}
}

func decodeJSONArray(dec *gojson.Decoder) (*Value, error) {
	arr := NewArray()
	for dec.More() {
		elem, err := decodeJSONValue(dec)
		if err != nil {
			return nil, err
		}
		arr.Append(elem)
	}
	if _, err := dec.Token(); err != nil { // consume ']'
		return nil, err
	}
	return arr, nil
}

func decodeJSONObject(dec *gojson.Decoder) (*Value, error) {
	obj := NewObject(false)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("expected string object key, got %T", keyTok)
		}
		val, err := decodeJSONValue(dec)
		if err != nil {
			return nil, err
		}
		obj.Insert(key, val)
	}
	if _, err := dec.Token(); err != nil { // consume '}'
		return nil, err
	}
	return obj, nil
}

// numberToValue keeps integral JSON numbers as Int and everything else as
// Float, matching the schema validator's "an Int satisfies number" rule
// (spec.md §4.9) without losing the Int/Float distinction a naive
// float64-for-everything decode would.
func numberToValue(n gojson.Number) *Value {
	if i, err := strconv.ParseInt(n.String(), 10, 64); err == nil {
		return NewInt(i)
	}
	f, _ := n.Float64()
	return NewFloat(f)
}
