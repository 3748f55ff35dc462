package outline

import (
	"strings"
)

const fence = "```"

// Repair strips markdown code fences and removes trailing commas before
// a closing brace or bracket. Fences and commas inside string literals are kept.
//
// Quotes only open string literals inside an object or array, so stray quotes
// in surrounding prose do not disable the repair.
func Repair(text string) string {
	if !strings.Contains(text, fence) && !strings.Contains(text, ",") {
		return strings.TrimSpace(text)
	}

	var b strings.Builder
	b.Grow(len(text))

	depth := 0
	inString, escaped := false, false
	for i := 0; i < len(text); i++ {
		ch := text[i]
		if inString {
			b.WriteByte(ch)
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}

		switch {
		case strings.HasPrefix(text[i:], fence):
			// Drop the marker and its language tag (```json, ```JSON, ...).
			i += len(fence)
			for i < len(text) && isFenceTag(text[i]) {
				i++
			}
			i--
			continue
		case ch == '"':
			inString = depth > 0
		case ch == '{' || ch == '[':
			depth++
		case ch == '}' || ch == ']':
			depth = max(depth-1, 0)
		case ch == ',' && closesNext(text[i+1:]):
			continue
		}
		b.WriteByte(ch)
	}
	return strings.TrimSpace(b.String())
}

func isFenceTag(ch byte) bool {
	return ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' || ch >= '0' && ch <= '9' || ch == '_' || ch == '-'
}

// closesNext reports whether the first non-space byte of s closes an object or array.
func closesNext(s string) bool {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case ' ', '\t', '\n', '\r':
			continue
		case '}', ']':
			return true
		default:
			return false
		}
	}
	return false
}
