package schema

import (
	"strconv"
	"strings"

	"github.com/kaptinlin/ucl"
)

// evaluateItems implements draft-4's two forms of "items": a single schema
// applied to every array element, or a positional array of schemas applied
// index-for-index, with "additionalItems" governing any elements beyond the
// positional list's length (spec.md §4.9).
func evaluateItems(schema *Schema, instance *ucl.Value) *EvaluationResult {
	if instance.Tag() != ucl.Array {
		return nil
	}
	if schema.Items == nil && schema.ItemsList == nil {
		return nil
	}

	result := NewEvaluationResult(schema)
	var invalid []string
	elements := instance.Elements()

	if schema.Items != nil {
		for i, el := range elements {
			detail := schema.Items.Evaluate(el)
			detail.SetInstanceLocation("/" + strconv.Itoa(i))
			result.AddDetail(detail)
			if !detail.IsValid() {
				invalid = append(invalid, strconv.Itoa(i))
			}
		}
	} else {
		for i, el := range elements {
			var sub *Schema
			switch {
			case i < len(schema.ItemsList):
				sub = schema.ItemsList[i]
			case schema.AdditionalItems != nil:
				sub = schema.AdditionalItems
			default:
				continue
			}
			detail := sub.Evaluate(el)
			detail.SetInstanceLocation("/" + strconv.Itoa(i))
			result.AddDetail(detail)
			if !detail.IsValid() {
				invalid = append(invalid, strconv.Itoa(i))
			}
		}
	}

	if len(invalid) == 0 {
		return result
	}
	if len(invalid) == 1 {
		result.AddError(NewEvaluationError("items", Constraint, "item_mismatch",
			"Item at index {index} does not match the schema", instance,
			map[string]any{"index": invalid[0]}))
		return result
	}
	result.AddError(NewEvaluationError("items", Constraint, "items_mismatch",
		"Items at index {indexes} do not match the schema", instance,
		map[string]any{"indexes": strings.Join(invalid, ", ")}))
	return result
}
