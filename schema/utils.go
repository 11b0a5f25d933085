package schema

import (
	"fmt"
	"strings"
)

// replace substitutes "{key}" placeholders in template with params[key],
// grounded on the teacher's utils.go of the same name.
func replace(template string, params map[string]any) string {
	if len(params) == 0 {
		return template
	}
	out := template
	for k, v := range params {
		out = strings.ReplaceAll(out, "{"+k+"}", toDisplayString(v))
	}
	return out
}

func toDisplayString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
