package emit

import (
	"fmt"
	"strings"

	"github.com/kaptinlin/ucl/internal/chartable"
)

// escapeJSONString renders s as a double-quoted JSON string, short-escaping
// '"', '\\', and the common control bytes, and using \u00XX for any other
// byte chartable classifies as JsonUnsafe (spec.md §4.8).
func escapeJSONString(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) + 2)
	sb.WriteByte('"')
	for i := 0; i < len(s); i++ {
		b := s[i]
		switch b {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\b':
			sb.WriteString(`\b`)
		case '\f':
			sb.WriteString(`\f`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			if chartable.Is(b, chartable.JSONUnsafe) {
				fmt.Fprintf(&sb, `\u%04x`, b)
			} else {
				sb.WriteByte(b)
			}
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

// keyNeedsConfigEscape reports whether key must be quoted in Config output
// (spec.md §4.8: "only when key has unsafe bytes").
func keyNeedsConfigEscape(key string) bool {
	if key == "" {
		return true
	}
	for i := 0; i < len(key); i++ {
		b := key[i]
		if !chartable.Is(b, chartable.KeyStart) && !chartable.Is(b, chartable.KeyContinue) {
			return true
		}
		if i == 0 && !chartable.Is(b, chartable.KeyStart) {
			return true
		}
	}
	return false
}
