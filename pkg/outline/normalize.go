package outline

import (
	"strings"

	"github.com/aretw0/deckgen/pkg/domain"
	"github.com/aretw0/deckgen/pkg/sanitize"
)

type normalizeConfig struct {
	theme    domain.Theme
	sanitize bool
}

// NormalizeOption configures Normalize.
type NormalizeOption func(*normalizeConfig)

// WithThemeDefaults sets the theme used to fill missing theme fields.
// Zero fields of t fall back to domain.DefaultTheme.
func WithThemeDefaults(t domain.Theme) NormalizeOption {
	return func(cfg *normalizeConfig) {
		cfg.theme = t.Merge(domain.DefaultTheme())
	}
}

// WithoutSanitizing leaves string values untouched.
func WithoutSanitizing() NormalizeOption {
	return func(cfg *normalizeConfig) {
		cfg.sanitize = false
	}
}

// Coerce returns a copy of c in which the slide fields with an unambiguous
// canonical form are rewritten: type and layout are lower-cased, string
// content becomes a one-element list and legacy table_data{headers, rows} is
// flattened into content with headers as row 0. Any other content is left
// as is for ValidateSlides to judge. c is not modified.
func Coerce(c Candidate) Candidate {
	out := c.Clone()
	if out == nil {
		return Candidate{}
	}
	eachSlide(out, coerceSlide)
	return out
}

// Normalize returns a canonical copy of c. It never fails and c is not modified.
//
//   - a missing or non-object theme is replaced by the defaults, a partial
//     theme has its missing fields filled in;
//   - slides are coerced as by Coerce, and content that is still not a list
//     becomes an empty list;
//   - every string is sanitized.
//
// Unknown keys are preserved. Normalize(Normalize(c)) equals Normalize(c).
func Normalize(c Candidate, opts ...NormalizeOption) Candidate {
	cfg := normalizeConfig{theme: domain.DefaultTheme(), sanitize: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	out := c.Clone()
	if out == nil {
		out = Candidate{}
	}
	if cfg.sanitize {
		if cleaned, ok := sanitize.Value(map[string]any(out)).(map[string]any); ok {
			out = Candidate(cleaned)
		}
	}

	out[FieldTheme] = normalizeTheme(out[FieldTheme], cfg.theme)
	eachSlide(out, normalizeSlide)
	return out
}

func eachSlide(c Candidate, fn func(map[string]any)) {
	for _, raw := range c.Slides() {
		if slide, ok := raw.(map[string]any); ok {
			fn(slide)
		}
	}
}

func normalizeTheme(raw any, defaults domain.Theme) map[string]any {
	theme, ok := raw.(map[string]any)
	if !ok {
		return defaults.Fields()
	}
	for key, value := range defaults.Fields() {
		if isBlank(theme[key]) {
			theme[key] = value
		}
	}
	return theme
}

func normalizeSlide(slide map[string]any) {
	coerceSlide(slide)
	if _, ok := slide[FieldContent].([]any); !ok {
		slide[FieldContent] = []any{}
	}
}

func coerceSlide(slide map[string]any) {
	for _, key := range []string{FieldType, FieldLayout} {
		if s, ok := slide[key].(string); ok {
			slide[key] = strings.ToLower(strings.TrimSpace(s))
		}
	}

	if s, ok := slide[FieldContent].(string); ok {
		slide[FieldContent] = []any{s}
	}

	if slide[FieldType] != string(domain.SlideTypeTable) {
		return
	}
	legacy, ok := slide[FieldTableData].(map[string]any)
	if !ok {
		return
	}
	_, hasHeaders := legacy[FieldHeaders]
	_, hasRows := legacy[FieldRows]
	if !hasHeaders && !hasRows {
		return
	}

	rows := []any{normalizeContent(legacy[FieldHeaders])}
	if body, ok := legacy[FieldRows].([]any); ok {
		rows = append(rows, body...)
	}
	slide[FieldContent] = rows
	delete(slide, FieldTableData)
}

func normalizeContent(raw any) []any {
	switch v := raw.(type) {
	case []any:
		return v
	case string:
		return []any{v}
	default:
		return []any{}
	}
}

func isBlank(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	default:
		return false
	}
}
