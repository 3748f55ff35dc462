package sanitize

import (
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

const maxPasses = 4

var (
	strict = bluemonday.StrictPolicy()

	// **bold**, __bold__, *em*, _em_ around a word run.
	strongMarker = regexp.MustCompile(`(\*\*|__)(\S(?:.*?\S)?)(\*\*|__)`)
	emMarker     = regexp.MustCompile(`(^|[^\w*])[*_](\S(?:[^*_]*?\S)?)[*_]($|[^\w*])`)
	spaceRun     = regexp.MustCompile(`\s+`)
)

// Clean removes markup tags, decodes character entities, strips emphasis
// markers, collapses whitespace runs and trims the result.
func Clean(text string) (out string) {
	defer func() {
		if r := recover(); r != nil {
			out = text
		}
	}()

	if text == "" {
		return ""
	}

	// Each step can expose work for another (decoded entities become tags,
	// stripped markers join "<" and "b>"), so run the whole transform to a fixed point.
	s := text
	for range len(text) + 1 {
		next := cleanPass(s)
		if next == s {
			break
		}
		s = next
	}
	return s
}

func cleanPass(s string) string {
	s = html.UnescapeString(strict.Sanitize(s))
	s = stripEmphasis(s)
	s = spaceRun.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

func stripEmphasis(s string) string {
	if !strings.ContainsAny(s, "*_") {
		return s
	}
	s = strongMarker.ReplaceAllStringFunc(s, func(m string) string {
		sub := strongMarker.FindStringSubmatch(m)
		if sub[1] != sub[3] {
			return m
		}
		return sub[2]
	})
	// Adjacent matches share a delimiter, so one pass can miss every other word.
	for range maxPasses {
		next := emMarker.ReplaceAllString(s, "$1$2$3")
		if next == s {
			break
		}
		s = next
	}
	return strings.ReplaceAll(s, "**", "")
}

// Value applies Clean to every string leaf of v, preserving container shape.
// Supported containers are []any, []string, [][]string and map[string]any;
// other values are returned as is.
func Value(v any) (out any) {
	defer func() {
		if r := recover(); r != nil {
			out = v
		}
	}()

	switch t := v.(type) {
	case string:
		return Clean(t)
	case []string:
		cleaned := make([]string, len(t))
		for i, s := range t {
			cleaned[i] = Clean(s)
		}
		return cleaned
	case [][]string:
		cleaned := make([][]string, len(t))
		for i, row := range t {
			cleaned[i] = Value(row).([]string)
		}
		return cleaned
	case []any:
		cleaned := make([]any, len(t))
		for i, e := range t {
			cleaned[i] = Value(e)
		}
		return cleaned
	case map[string]any:
		cleaned := make(map[string]any, len(t))
		for k, e := range t {
			cleaned[k] = Value(e)
		}
		return cleaned
	default:
		return v
	}
}
