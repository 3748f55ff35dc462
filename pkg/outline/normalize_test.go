package outline

import (
	"testing"

	"github.com/aretw0/deckgen/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_SynthesizesMissingTheme(t *testing.T) {
	out := Normalize(validCandidate())

	theme, ok := out[FieldTheme].(map[string]any)
	require.True(t, ok)
	for _, key := range domain.ColorKeys {
		assert.NotEmpty(t, theme[key], key)
	}
	assert.Equal(t, "#0072C6", theme[domain.KeyPrimaryColor])
	assert.Equal(t, "#404040", theme[domain.KeySecondaryColor])
	assert.Equal(t, "#00B294", theme[domain.KeyAccentColor])
	assert.Equal(t, "#FFFFFF", theme[domain.KeyBackgroundColor])
}

func TestNormalize_ReplacesNonObjectTheme(t *testing.T) {
	c := validCandidate()
	c[FieldTheme] = "dark"

	theme := Normalize(c)[FieldTheme].(map[string]any)
	assert.Equal(t, domain.DefaultTheme().Fields(), theme)
}

func TestNormalize_CompletesPartialTheme(t *testing.T) {
	c := validCandidate()
	c[FieldTheme] = map[string]any{
		"primary_color": "#123456",
		"accent_color":  "",
		"mood":          "calm",
	}

	theme := Normalize(c)[FieldTheme].(map[string]any)
	assert.Equal(t, "#123456", theme[domain.KeyPrimaryColor])
	assert.Equal(t, "#404040", theme[domain.KeySecondaryColor])
	assert.Equal(t, "#00B294", theme[domain.KeyAccentColor])
	assert.Equal(t, "#FFFFFF", theme[domain.KeyBackgroundColor])
	assert.Equal(t, "calm", theme["mood"])
}

func TestNormalize_ThemeDefaultsOption(t *testing.T) {
	preset := domain.Theme{PrimaryColor: "#1B1B1B", FontFamily: "Georgia"}

	theme := Normalize(validCandidate(), WithThemeDefaults(preset))[FieldTheme].(map[string]any)
	assert.Equal(t, "#1B1B1B", theme[domain.KeyPrimaryColor])
	assert.Equal(t, "Georgia", theme[domain.KeyFontFamily])
	assert.Equal(t, "#404040", theme[domain.KeySecondaryColor])
}

func TestNormalize_CoercesContent(t *testing.T) {
	c := validCandidate()
	c[FieldSlides] = []any{
		map[string]any{"title": "a", "type": "content", "layout": "split", "content": "single point"},
		map[string]any{"title": "b", "type": "content", "layout": "split", "content": 42.0},
		map[string]any{"title": "c", "type": "content", "layout": "split"},
		map[string]any{"title": "d", "type": "content", "layout": "split", "content": map[string]any{"x": 1.0}},
		map[string]any{"title": "e", "type": "Content", "layout": " SPLIT ", "content": []any{"kept"}},
	}

	slides := Normalize(c).Slides()
	require.Len(t, slides, 5)
	assert.Equal(t, []any{"single point"}, slides[0].(map[string]any)[FieldContent])
	assert.Equal(t, []any{}, slides[1].(map[string]any)[FieldContent])
	assert.Equal(t, []any{}, slides[2].(map[string]any)[FieldContent])
	assert.Equal(t, []any{}, slides[3].(map[string]any)[FieldContent])

	last := slides[4].(map[string]any)
	assert.Equal(t, "content", last[FieldType])
	assert.Equal(t, "split", last[FieldLayout])
	assert.Equal(t, []any{"kept"}, last[FieldContent])
}

func TestCoerce_LeavesTypeErrorsForValidation(t *testing.T) {
	c := validCandidate()
	c[FieldSlides] = []any{
		map[string]any{"title": "a", "type": " Content", "layout": "SPLIT", "content": "single point"},
		map[string]any{"title": "b", "type": "content", "layout": "split", "content": 42.0},
		map[string]any{"title": "c", "type": "table", "layout": "table",
			"table_data": map[string]any{"headers": []any{"H"}, "rows": []any{[]any{"1"}}}},
	}

	out := Coerce(c)
	slides := out.Slides()
	first := slides[0].(map[string]any)
	assert.Equal(t, "content", first[FieldType])
	assert.Equal(t, "split", first[FieldLayout])
	assert.Equal(t, []any{"single point"}, first[FieldContent])
	assert.Equal(t, 42.0, slides[1].(map[string]any)[FieldContent])
	assert.Equal(t, []any{[]any{"H"}, []any{"1"}}, slides[2].(map[string]any)[FieldContent])

	err := ValidateSlides(out)
	assert.True(t, IsKind(err, KindInvalidSlideContent), err)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, 1, verr.Index)

	assert.Equal(t, "single point", c.Slides()[0].(map[string]any)[FieldContent], "input is not modified")
}

func TestNormalize_FlattensLegacyTableData(t *testing.T) {
	c := validCandidate()
	c[FieldSlides] = []any{
		map[string]any{
			"title":  "Compare",
			"type":   "table",
			"layout": "table",
			"table_data": map[string]any{
				"headers": []any{"H1", "H2"},
				"rows":    []any{[]any{"a", "b"}, []any{"c", "d"}},
			},
		},
		map[string]any{
			"title":      "Not a table",
			"type":       "content",
			"layout":     "split",
			"content":    []any{"x"},
			"table_data": map[string]any{"headers": []any{"H"}},
		},
	}

	slides := Normalize(c).Slides()
	table := slides[0].(map[string]any)
	assert.Equal(t, []any{
		[]any{"H1", "H2"},
		[]any{"a", "b"},
		[]any{"c", "d"},
	}, table[FieldContent])
	assert.NotContains(t, table, FieldTableData)

	content := slides[1].(map[string]any)
	assert.Equal(t, []any{"x"}, content[FieldContent])
	assert.Contains(t, content, FieldTableData)

	assert.NoError(t, ValidateSlides(Normalize(c)))
}

func TestNormalize_KeepsUnknownKeys(t *testing.T) {
	c := validCandidate()
	c["author"] = "someone"
	c.Slides()[0].(map[string]any)["transition"] = "fade"

	out := Normalize(c)
	assert.Equal(t, "someone", out["author"])
	assert.Equal(t, "fade", out.Slides()[0].(map[string]any)["transition"])
}

func TestNormalize_SanitizesStrings(t *testing.T) {
	c := validCandidate()
	c[FieldTitle] = "<b>A</b>  &amp; more"
	c.Slides()[1].(map[string]any)[FieldContent] = []any{"**bold** point"}

	out := Normalize(c)
	assert.Equal(t, "A & more", out[FieldTitle])
	assert.Equal(t, []any{"bold point"}, out.Slides()[1].(map[string]any)[FieldContent])

	raw := Normalize(c, WithoutSanitizing())
	assert.Equal(t, "<b>A</b>  &amp; more", raw[FieldTitle])
}

func TestNormalize_DoesNotMutateInput(t *testing.T) {
	c := validCandidate()
	c.Slides()[0].(map[string]any)[FieldContent] = "scalar"
	before := c.Clone()

	_ = Normalize(c)
	assert.Equal(t, before, c)
	assert.NotContains(t, c, FieldTheme)
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := map[string]Candidate{
		"minimal": validCandidate(),
		"partial theme": {
			"title": "A", "subtitle": "B",
			"theme":  map[string]any{"accent_color": "#abcdef", "body_font_size": 20.0},
			"slides": []any{map[string]any{"title": "x", "type": "content", "layout": "split", "content": "one"}},
		},
		"legacy table": {
			"title": "A", "subtitle": "B",
			"slides": []any{map[string]any{
				"title": "t", "type": "TABLE", "layout": "table",
				"table_data": map[string]any{"headers": "H", "rows": []any{[]any{"1"}}},
			}},
		},
		"messy": {
			"title": " <i>A</i> ", "subtitle": "*B*",
			"slides": []any{"not a slide", 3.0, map[string]any{"content": 7.0}},
			"extra":  []string{"x", "y"},
		},
		"markup behind emphasis": {
			"title": "<*b*>", "subtitle": "B",
			"slides": []any{map[string]any{"title": "<_i_>x", "type": "content", "layout": "split", "content": []any{"<*b*>"}}},
		},
		"empty": {},
	}

	for name, c := range inputs {
		t.Run(name, func(t *testing.T) {
			once := Normalize(c)
			assert.Equal(t, once, Normalize(once))
		})
	}
}
