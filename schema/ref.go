package schema

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/kaptinlin/jsonpointer"
)

// resolveRef resolves $ref's value against this schema's root document.
// Only the bare root reference ("#") and local fragment pointers
// ("#/a/b") are supported — draft-4's $ref has no URL/base-URI resolution
// and no $dynamicRef, both 2019-09+ features (spec.md §4.9, DESIGN.md).
func (s *Schema) resolveRef(ref string) (*Schema, error) {
	if ref == "#" || ref == "" {
		return s.getRootSchema(), nil
	}
	if !strings.HasPrefix(ref, "#/") {
		return nil, ErrUnsupportedRef
	}
	segments := jsonpointer.Parse(ref[1:])
	return s.getRootSchema().resolvePointer(segments)
}

// resolvePointer descends the compiled schema tree one JSON Pointer segment
// at a time. Unlike a generic JSON Pointer walk over raw JSON, it has to
// know which keywords are schema-valued (properties/items/allOf/…) and
// which take an index or property name as their next segment, since the
// compiled *Schema has already thrown away the original document's object
// shape.
func (s *Schema) resolvePointer(segments []string) (*Schema, error) {
	cur := s
	for i := 0; i < len(segments); i++ {
		seg, err := url.PathUnescape(segments[i])
		if err != nil {
			return nil, ErrReferenceResolution
		}

		switch seg {
		case "properties":
			i++
			if i >= len(segments) {
				return nil, ErrReferenceResolution
			}
			next, ok := cur.Properties[segments[i]]
			if !ok {
				return nil, ErrReferenceResolution
			}
			cur = next

		case "patternProperties":
			i++
			if i >= len(segments) {
				return nil, ErrReferenceResolution
			}
			next, ok := cur.PatternProperties[segments[i]]
			if !ok {
				return nil, ErrReferenceResolution
			}
			cur = next

		case "additionalProperties":
			if cur.AdditionalProperties == nil {
				return nil, ErrReferenceResolution
			}
			cur = cur.AdditionalProperties

		case "items":
			if i+1 < len(segments) {
				if idx, err := strconv.Atoi(segments[i+1]); err == nil && idx >= 0 && idx < len(cur.ItemsList) {
					i++
					cur = cur.ItemsList[idx]
					continue
				}
			}
			if cur.Items == nil {
				return nil, ErrReferenceResolution
			}
			cur = cur.Items

		case "additionalItems":
			if cur.AdditionalItems == nil {
				return nil, ErrReferenceResolution
			}
			cur = cur.AdditionalItems

		case "allOf", "anyOf", "oneOf":
			i++
			if i >= len(segments) {
				return nil, ErrReferenceResolution
			}
			idx, err := strconv.Atoi(segments[i])
			if err != nil {
				return nil, ErrReferenceResolution
			}
			var list []*Schema
			switch seg {
			case "allOf":
				list = cur.AllOf
			case "anyOf":
				list = cur.AnyOf
			case "oneOf":
				list = cur.OneOf
			}
			if idx < 0 || idx >= len(list) {
				return nil, ErrReferenceResolution
			}
			cur = list[idx]

		case "not":
			if cur.Not == nil {
				return nil, ErrReferenceResolution
			}
			cur = cur.Not

		case "dependencies":
			i++
			if i >= len(segments) {
				return nil, ErrReferenceResolution
			}
			dep, ok := cur.Dependencies[segments[i]]
			if !ok || dep.Schema == nil {
				return nil, ErrReferenceResolution
			}
			cur = dep.Schema

		default:
			return nil, ErrReferenceResolution
		}
	}
	return cur, nil
}
