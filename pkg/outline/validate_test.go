package outline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCandidate() Candidate {
	return Candidate{
		"title":    "A",
		"subtitle": "B",
		"slides": []any{
			map[string]any{"title": "S1", "type": "title", "layout": "centered", "content": []any{"B"}},
			map[string]any{"title": "S2", "type": "content", "layout": "split", "content": []any{"x", "y"}},
			map[string]any{"title": "S3", "type": "table", "layout": "table", "content": []any{
				[]any{"H1", "H2"},
				[]any{"r1c1", "r1c2"},
			}},
		},
	}
}

func TestValidateStructure(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, ValidateStructure(validCandidate()))
	})

	t.Run("missing fields", func(t *testing.T) {
		err := ValidateStructure(Candidate{"title": "A"})

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, KindStructure, verr.Kind)
		assert.Equal(t, -1, verr.Index)
		assert.Equal(t, []string{"slides", "subtitle"}, verr.MissingFields)
		assert.Contains(t, verr.Message(), "slides, subtitle")
	})

	t.Run("wrong types", func(t *testing.T) {
		tests := map[string]Candidate{
			"numeric title":  {"title": 1.0, "subtitle": "B", "slides": []any{1.0}},
			"blank subtitle": {"title": "A", "subtitle": "", "slides": []any{1.0}},
			"slides object":  {"title": "A", "subtitle": "B", "slides": map[string]any{}},
			"no slides":      {"title": "A", "subtitle": "B", "slides": []any{}},
			"null slides":    {"title": "A", "subtitle": "B", "slides": nil},
			"nil candidate":  nil,
		}
		for name, c := range tests {
			t.Run(name, func(t *testing.T) {
				err := ValidateStructure(c)
				assert.True(t, IsKind(err, KindStructure), "got %v", err)
			})
		}
	})
}

func TestValidateSlides(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, ValidateSlides(validCandidate()))
	})

	tests := []struct {
		name  string
		slide any
		kind  Kind
	}{
		{"not an object", "just text", KindInvalidSlide},
		{"missing title", map[string]any{"type": "content", "layout": "split", "content": []any{}}, KindInvalidSlideTitle},
		{"blank title", map[string]any{"title": "  ", "type": "content", "layout": "split", "content": []any{}}, KindInvalidSlideTitle},
		{"numeric title", map[string]any{"title": 3.0, "type": "content", "layout": "split", "content": []any{}}, KindInvalidSlideTitle},
		{"chart type", map[string]any{"title": "x", "type": "chart", "layout": "split", "content": []any{}}, KindInvalidSlideType},
		{"missing type", map[string]any{"title": "x", "layout": "split", "content": []any{}}, KindInvalidSlideType},
		{"grid layout", map[string]any{"title": "x", "type": "content", "layout": "grid", "content": []any{}}, KindInvalidSlideLayout},
		{"table with flat content", map[string]any{"title": "x", "type": "table", "layout": "table", "content": []any{"a", "b"}}, KindInvalidTableContent},
		{"table with string content", map[string]any{"title": "x", "type": "table", "layout": "table", "content": "a"}, KindInvalidTableContent},
		{"content with numbers", map[string]any{"title": "x", "type": "content", "layout": "split", "content": []any{"a", 2.0}}, KindInvalidSlideContent},
		{"content with rows", map[string]any{"title": "x", "type": "content", "layout": "split", "content": []any{[]any{"a"}}}, KindInvalidSlideContent},
		{"missing content", map[string]any{"title": "x", "type": "title", "layout": "centered"}, KindInvalidSlideContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validCandidate()
			c["slides"] = append(c.Slides(), tt.slide)

			err := ValidateSlides(c)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.kind, verr.Kind)
			assert.Equal(t, 3, verr.Index)
			assert.NotEmpty(t, verr.Message())
			assert.Contains(t, verr.Error(), string(tt.kind))
		})
	}
}

func TestValidateSlides_FailsFastInSlideOrder(t *testing.T) {
	c := validCandidate()
	slides := c.Slides()
	slides[1] = map[string]any{"title": "x", "type": "content", "layout": "grid", "content": []any{}}
	slides[2] = map[string]any{"title": "y", "type": "chart", "layout": "split", "content": []any{}}

	err := ValidateSlides(c)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, KindInvalidSlideLayout, verr.Kind)
	assert.Equal(t, 1, verr.Index)
	assert.Equal(t, "Slide 2 has an unsupported layout. Use one of: centered, split, table.", verr.Message())
}

func TestValidateSlides_ChecksTitleBeforeType(t *testing.T) {
	c := validCandidate()
	c["slides"] = []any{map[string]any{"type": "chart", "layout": "nope"}}

	assert.True(t, IsKind(ValidateSlides(c), KindInvalidSlideTitle))
}

func TestValidateSlides_ChartScenario(t *testing.T) {
	raw := `{"title":"A","subtitle":"B","slides":[{"title":"S1","type":"chart","layout":"centered","content":["B"]}]}`

	c, err := Extract(raw)
	require.NoError(t, err)

	err = ValidateSlides(Normalize(c))
	require.Error(t, err)
	assert.True(t, IsKind(err, KindInvalidSlideType))

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, 0, verr.Index)
}

func TestValidateSlides_RequiresStructure(t *testing.T) {
	assert.True(t, IsKind(ValidateSlides(Candidate{}), KindStructure))
}
