package outline

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalOutline = `{"title":"A","subtitle":"B","slides":[{"title":"S1","type":"title","layout":"centered","content":["B"]}]}`

func TestExtract_SingleObject(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"standalone", minimalOutline},
		{"surrounding whitespace", "\n\t" + minimalOutline + "\n"},
		{"fenced", "```json\n" + minimalOutline + "\n```"},
		{"fenced without language", "```\n" + minimalOutline + "\n```"},
		{"prose around", "Here is your outline:\n" + minimalOutline + "\nLet me know if you need changes."},
		{"prose and fences", "Sure! ```json\n" + minimalOutline + "\n``` Hope that helps"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Extract(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, "A", c[FieldTitle])
			assert.Equal(t, "B", c[FieldSubtitle])
			require.Len(t, c.Slides(), 1)
			slide := c.Slides()[0].(map[string]any)
			assert.Equal(t, "S1", slide[FieldTitle])
			assert.Equal(t, []any{"B"}, slide[FieldContent])
		})
	}
}

func TestExtract_RepairsTrailingCommaInsideFences(t *testing.T) {
	raw := "Sure! ```json\n{\"title\": \"A\", \"subtitle\": \"B\", \"slides\": [{\"title\": \"S1\", \"type\": \"content\", \"layout\": \"split\", \"content\": [\"x\", \"y\",],},],}\n``` Hope that helps"

	c, err := Extract(raw)
	require.NoError(t, err)
	assert.Equal(t, "A", c[FieldTitle])
	slide := c.Slides()[0].(map[string]any)
	assert.Equal(t, []any{"x", "y"}, slide[FieldContent])
}

func TestExtract_DeeplyNestedObjectInProse(t *testing.T) {
	raw := `Outline below.
{"title": "Compare", "subtitle": "Langs", "theme": {"primary_color": "#111111"},
 "slides": [{"title": "Table", "type": "table", "layout": "table",
   "table_data": {"headers": ["Lang", "Year"], "rows": [["Go", "2009"]]}}]}
Done.`

	c, err := Extract(raw)
	require.NoError(t, err)
	assert.Equal(t, "Compare", c[FieldTitle])
	slide := c.Slides()[0].(map[string]any)
	assert.Contains(t, slide, FieldTableData)
}

func TestExtract_BracesInsideStrings(t *testing.T) {
	raw := `Result: {"title": "Sets {a, b}", "subtitle": "and } braces", "slides": [{"title": "x"}]} end`

	c, err := Extract(raw)
	require.NoError(t, err)
	assert.Equal(t, "Sets {a, b}", c[FieldTitle])
	assert.Equal(t, "and } braces", c[FieldSubtitle])
}

func TestExtract_FirstValidWins(t *testing.T) {
	raw := `{"title": "First", "subtitle": "1", "slides": [{}]} and {"title": "Second", "subtitle": "2", "slides": [{}]}`

	c, err := Extract(raw)
	require.NoError(t, err)
	assert.Equal(t, "First", c[FieldTitle])
}

func TestExtract_SkipsStructurallyInvalidCandidates(t *testing.T) {
	raw := `First a config {"debug": true}, then the deck {"title": "Deck", "subtitle": "S", "slides": [{"title": "x"}]}`

	c, err := Extract(raw)
	require.NoError(t, err)
	assert.Equal(t, "Deck", c[FieldTitle])
}

func TestExtract_NoValidJSON(t *testing.T) {
	inputs := map[string]string{
		"empty":            "",
		"prose only":       "I cannot help with that.",
		"array":            `[{"title": "A"}]`,
		"unbalanced":       `{"title": "A", "subtitle": "B", "slides": [`,
		"missing subtitle": `{"title": "A", "slides": [{}]}`,
		"empty slides":     "```json\n{\"title\": \"A\", \"subtitle\": \"B\", \"slides\": []}\n```",
		"empty title":      `{"title": " ", "subtitle": "B", "slides": [{}]}`,
	}

	for name, raw := range inputs {
		t.Run(name, func(t *testing.T) {
			c, err := Extract(raw)
			assert.Nil(t, c)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrNoValidJSON))

			var exErr *ExtractionError
			require.ErrorAs(t, err, &exErr)
			assert.Equal(t, ReasonNoValidJSON, exErr.Reason)
			assert.NotEmpty(t, exErr.Message())
			assert.Positive(t, exErr.Attempts)
		})
	}
}

func TestExtract_ReportsLastStructuralFailure(t *testing.T) {
	_, err := Extract(`{"title": "A", "slides": [{}]}`)
	assert.True(t, IsKind(err, KindStructure))

	var exErr *ExtractionError
	require.ErrorAs(t, err, &exErr)
	assert.Contains(t, exErr.Message(), "missing required fields: subtitle")
}

func TestObjects(t *testing.T) {
	t.Run("order and nesting", func(t *testing.T) {
		got := Objects(`x {"a": {"b": 1}} y {"c": 2}`)
		assert.Equal(t, []string{`{"a": {"b": 1}}`, `{"b": 1}`, `{"c": 2}`}, got)
	})

	t.Run("deep object yields only the full match at its start", func(t *testing.T) {
		got := Objects(`{"a": {"b": {"c": 1}}}`)
		require.NotEmpty(t, got)
		assert.Equal(t, `{"a": {"b": {"c": 1}}}`, got[0])
		assert.Contains(t, got, `{"b": {"c": 1}}`)
		assert.Contains(t, got, `{"c": 1}`)
	})

	t.Run("string literals", func(t *testing.T) {
		got := Objects(`{"s": "}{\"}"}`)
		require.NotEmpty(t, got)
		assert.Equal(t, `{"s": "}{\"}"}`, got[0])
	})

	t.Run("none", func(t *testing.T) {
		assert.Empty(t, Objects("no braces } here {"))
	})

	t.Run("stray quote in prose", func(t *testing.T) {
		got := Objects(`The "best outline is {"a": 1} and {"b": 2}`)
		assert.Equal(t, []string{`{"a": 1}`, `{"b": 2}`}, got)
	})

	t.Run("unclosed outer object", func(t *testing.T) {
		assert.Equal(t, []string{`{"b": 1}`}, Objects(`{"a": {"b": 1}`))
	})
}

func TestExtract_PathologicalInputStaysLinear(t *testing.T) {
	inputs := map[string]string{
		"open braces":     strings.Repeat("{", 200000),
		"nested balanced": strings.Repeat("{", 50000) + strings.Repeat("}", 50000),
		"many objects":    strings.Repeat(`{"a": 1} `, 50000),
	}
	for name, raw := range inputs {
		t.Run(name, func(t *testing.T) {
			start := time.Now()
			_, err := Extract(raw)
			assert.ErrorIs(t, err, ErrNoValidJSON)
			assert.Less(t, time.Since(start), 2*time.Second)
		})
	}
}

func TestExtract_RejectsOversizedInput(t *testing.T) {
	_, err := Extract(strings.Repeat(" ", MaxInputSize+1))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoValidJSON)
	assert.ErrorIs(t, err, ErrInputTooLarge)
}
