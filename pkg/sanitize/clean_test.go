package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text", "Hello World", "Hello World"},
		{"empty", "", ""},
		{"tags removed", "<b>Hello</b> <i>there</i>", "Hello there"},
		{"entities decoded", "Tom &amp; Jerry &lt;3", "Tom & Jerry <3"},
		{"encoded markup removed", "&lt;b&gt;Bold&lt;/b&gt; claim", "Bold claim"},
		{"strong markers", "**Key** point and __another__", "Key point and another"},
		{"em markers", "an *important* and _subtle_ note", "an important and subtle note"},
		{"adjacent em markers", "*one* *two* *three*", "one two three"},
		{"identifiers kept", "use snake_case_names here", "use snake_case_names here"},
		{"arithmetic kept", "5 * 3 = 15", "5 * 3 = 15"},
		{"whitespace collapsed", "  lots\n\tof   space  ", "lots of space"},
		{"apostrophe", "it's fine", "it's fine"},
		{"markup revealed by emphasis", "<*b*>", ""},
		{"markup revealed by emphasis keeps text", "before <*b*> after", "before after"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Clean(tt.input))
		})
	}
}

func TestClean_Idempotent(t *testing.T) {
	inputs := []string{
		"<p>**Agenda** &amp; goals</p>",
		"&amp;lt;i&amp;gt;nested&amp;lt;/i&amp;gt;",
		"  a  *b*  c ",
		"<*b*>",
		"x <_i_>y</_i_> z",
		"&lt;*em*&gt;",
	}
	for _, in := range inputs {
		once := Clean(in)
		assert.Equal(t, once, Clean(once), in)
	}
}

func TestValue_PreservesShape(t *testing.T) {
	in := map[string]any{
		"title": "<h1>Deck</h1>",
		"slides": []any{
			map[string]any{
				"title":   "**Intro**",
				"content": []any{" a ", "b&amp;c"},
				"count":   3.0,
			},
		},
		"rows":  [][]string{{"<b>H</b>"}, {"x  y"}},
		"tags":  []string{"_t_"},
		"ok":    true,
		"empty": nil,
	}

	out, ok := Value(in).(map[string]any)
	if !assert.True(t, ok) {
		return
	}

	assert.Equal(t, "Deck", out["title"])
	slide := out["slides"].([]any)[0].(map[string]any)
	assert.Equal(t, "Intro", slide["title"])
	assert.Equal(t, []any{"a", "b&c"}, slide["content"])
	assert.Equal(t, 3.0, slide["count"])
	assert.Equal(t, [][]string{{"H"}, {"x y"}}, out["rows"])
	assert.Equal(t, []string{"t"}, out["tags"])
	assert.Equal(t, true, out["ok"])
	assert.Nil(t, out["empty"])

	// input untouched
	assert.Equal(t, "<h1>Deck</h1>", in["title"])
}

func TestValue_Scalars(t *testing.T) {
	assert.Equal(t, "x", Value(" x "))
	assert.Equal(t, 42, Value(42))
	assert.Nil(t, Value(nil))
}
