package schema

import (
	"fmt"
	"strings"

	"github.com/kaptinlin/ucl"
)

// evaluateUniqueItems checks array elements for duplicates using ucl.Equal,
// the same deep-equality relation enum uses (spec.md §8 property 10).
// Two elements with different numeric tags (Int 1 and Float 1.0) count as
// duplicates only when the schema's type lists "number"; otherwise
// elements of different tags are always distinct, so 1 and "1" never
// collide.
func evaluateUniqueItems(schema *Schema, instance *ucl.Value) *EvaluationError {
	if schema.UniqueItems == nil || !*schema.UniqueItems || instance.Tag() != ucl.Array {
		return nil
	}

	crossNumeric := false
	for _, t := range schema.Type {
		if t == "number" {
			crossNumeric = true
		}
	}

	elements := instance.Elements()
	var duplicates []string
	for i := 0; i < len(elements); i++ {
		for j := i + 1; j < len(elements); j++ {
			if !crossNumeric && elements[i].Tag() != elements[j].Tag() {
				continue
			}
			if ucl.Equal(elements[i], elements[j]) {
				duplicates = append(duplicates, fmt.Sprintf("(%d, %d)", i, j))
			}
		}
	}

	if len(duplicates) == 0 {
		return nil
	}
	return NewEvaluationError("uniqueItems", Constraint, "unique_items_mismatch",
		"Found duplicates at index pairs: {duplicates}", instance,
		map[string]any{"duplicates": strings.Join(duplicates, ", ")})
}
