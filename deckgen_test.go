package deckgen_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	ppt "github.com/VantageDataChat/GoPPT"
	"github.com/aretw0/deckgen"
	"github.com/aretw0/deckgen/pkg/domain"
	"github.com/aretw0/deckgen/pkg/llm"
	"github.com/aretw0/deckgen/pkg/observability"
	"github.com/aretw0/deckgen/pkg/outline"
	"github.com/aretw0/deckgen/pkg/render"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const modelResponse = "Sure! Here is your outline:\n```json\n" + `{
  "title": "**Go** Concurrency",
  "subtitle": "Goroutines &amp; channels",
  "theme": {"primary_color": "#112233"},
  "slides": [
    {"title": "Go Concurrency", "type": "title", "layout": "centered", "content": "Goroutines and channels"},
    {"title": "Why", "type": "content", "layout": "split", "content": ["<b>cheap</b> threads", "CSP", "select"],},
    {"title": "Costs", "type": "table", "layout": "table", "table_data": {"headers": ["Primitive", "Cost"], "rows": [["goroutine", "2KB"]]}}
  ]
}` + "\n```\nLet me know if you need changes."

func staticClient(text string, err error) llm.Client {
	return llm.ClientFunc(func(ctx context.Context, req llm.Request) (string, error) {
		return text, err
	})
}

func TestNew_RequiresClient(t *testing.T) {
	_, err := deckgen.New(nil)
	assert.ErrorIs(t, err, deckgen.ErrNoClient)
}

func TestGenerate_EndToEnd(t *testing.T) {
	var got llm.Request
	client := llm.ClientFunc(func(ctx context.Context, req llm.Request) (string, error) {
		got = req
		return modelResponse, nil
	})
	metrics := observability.NewMetrics()
	gen, err := deckgen.New(client, deckgen.WithMetrics(metrics))
	require.NoError(t, err)

	res, err := gen.Generate(context.Background(), "  Go concurrency\x00 ", "")
	require.NoError(t, err)

	assert.Equal(t, "Go concurrency", got.Topic)
	assert.NotEmpty(t, got.Style, "default style guidance is sent")
	assert.Equal(t, "corporate", res.Style.Name)
	assert.Equal(t, modelResponse, res.Raw)

	p := res.Presentation
	assert.Equal(t, "Go Concurrency", p.Title)
	assert.Equal(t, "Goroutines & channels", p.Subtitle)
	assert.Equal(t, "#112233", p.Theme.PrimaryColor)
	assert.Equal(t, "#404040", p.Theme.SecondaryColor)
	require.Len(t, p.Slides, 3)
	assert.Equal(t, []string{"Goroutines and channels"}, p.Slides[0].Bullets)
	assert.Equal(t, []string{"cheap threads", "CSP", "select"}, p.Slides[1].Bullets)
	assert.Equal(t, [][]string{{"Primitive", "Cost"}, {"goroutine", "2KB"}}, p.Slides[2].Rows)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Generations.WithLabelValues(observability.OutcomeSuccess)))
}

func TestGenerate_StyleThemeFillsGaps(t *testing.T) {
	raw := `{"title":"T","subtitle":"S","slides":[{"title":"T","type":"title","layout":"centered","content":["S"]}]}`
	gen, err := deckgen.New(staticClient(raw, nil))
	require.NoError(t, err)

	res, err := gen.Generate(context.Background(), "topic", "Academic")
	require.NoError(t, err)
	assert.Equal(t, "Georgia", res.Presentation.Theme.FontFamily)
	assert.Equal(t, "#1F3A5F", res.Presentation.Theme.PrimaryColor)
}

func TestGenerate_Failures(t *testing.T) {
	tests := []struct {
		name       string
		topic      string
		style      string
		text       string
		llmErr     error
		wantStatus int
		wantKind   string
	}{
		{
			name:       "empty topic",
			topic:      "   ",
			wantStatus: http.StatusBadRequest,
			wantKind:   observability.OutcomeInput,
		},
		{
			name:       "unknown style",
			topic:      "go",
			style:      "baroque",
			wantStatus: http.StatusBadRequest,
			wantKind:   observability.OutcomeInput,
		},
		{
			name:       "prose only",
			topic:      "go",
			text:       "I cannot help with that.",
			wantStatus: http.StatusBadRequest,
			wantKind:   observability.OutcomeExtraction,
		},
		{
			name:       "chart slide",
			topic:      "go",
			text:       `{"title":"T","subtitle":"S","slides":[{"title":"x","type":"chart","layout":"centered","content":[]}]}`,
			wantStatus: http.StatusBadRequest,
			wantKind:   observability.OutcomeValidation,
		},
		{
			name:       "endpoint down",
			topic:      "go",
			llmErr:     &llm.ConnectionError{Endpoint: "http://localhost", Err: errors.New("connection refused")},
			wantStatus: http.StatusServiceUnavailable,
			wantKind:   observability.OutcomeConnection,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metrics := observability.NewMetrics()
			gen, err := deckgen.New(staticClient(tt.text, tt.llmErr), deckgen.WithMetrics(metrics))
			require.NoError(t, err)

			_, err = gen.Generate(context.Background(), tt.topic, tt.style)
			require.Error(t, err)

			f := deckgen.Classify(err)
			assert.Equal(t, tt.wantStatus, f.Status)
			assert.Equal(t, tt.wantKind, f.Kind)
			assert.NotEmpty(t, f.Message)
			assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Generations.WithLabelValues(tt.wantKind)))
		})
	}
}

func TestPrepare_RevalidatesClientOutline(t *testing.T) {
	gen, err := deckgen.New(staticClient("", nil))
	require.NoError(t, err)

	c := outline.Candidate{
		"title":    "Posted",
		"subtitle": "Deck",
		"slides": []any{
			map[string]any{"title": "Posted", "type": "title", "layout": "centered", "content": "Deck"},
		},
	}
	p, err := gen.Prepare(c, "")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultTheme(), p.Theme)

	bad := outline.Candidate{"title": "Posted", "subtitle": "Deck", "slides": []any{
		map[string]any{"title": "x", "type": "content", "layout": "diagonal", "content": []any{}},
	}}
	_, err = gen.Prepare(bad, "")
	require.Error(t, err)
	assert.True(t, outline.IsKind(err, outline.KindInvalidSlideLayout))
	assert.Equal(t, "Slide 1 has an unsupported layout. Use one of: centered, split, table.", deckgen.Classify(err).Message)
}

func TestPrepare_RejectsNonListContent(t *testing.T) {
	gen, err := deckgen.New(staticClient("", nil))
	require.NoError(t, err)

	contents := map[string]any{
		"number":  42.0,
		"object":  map[string]any{"a": "b"},
		"boolean": true,
		"null":    nil,
	}
	for name, content := range contents {
		t.Run(name, func(t *testing.T) {
			c := outline.Candidate{"title": "T", "subtitle": "S", "slides": []any{
				map[string]any{"title": "x", "type": "content", "layout": "split", "content": content},
			}}
			_, err := gen.Prepare(c, "")
			require.Error(t, err)
			assert.True(t, outline.IsKind(err, outline.KindInvalidSlideContent), err)
		})
	}

	t.Run("missing", func(t *testing.T) {
		c := outline.Candidate{"title": "T", "subtitle": "S", "slides": []any{
			map[string]any{"title": "x", "type": "content", "layout": "split"},
		}}
		_, err := gen.Prepare(c, "")
		assert.True(t, outline.IsKind(err, outline.KindInvalidSlideContent), err)
	})

	t.Run("table with scalar content", func(t *testing.T) {
		c := outline.Candidate{"title": "T", "subtitle": "S", "slides": []any{
			map[string]any{"title": "x", "type": "table", "layout": "table", "content": 7.0},
		}}
		_, err := gen.Prepare(c, "")
		assert.True(t, outline.IsKind(err, outline.KindInvalidTableContent), err)
	})
}

func TestProcess(t *testing.T) {
	gen, err := deckgen.New(staticClient("", nil))
	require.NoError(t, err)

	p, err := gen.Process(modelResponse, "minimal")
	require.NoError(t, err)
	assert.Len(t, p.Slides, 3)

	_, err = gen.Process("{}", "")
	assert.ErrorIs(t, err, outline.ErrNoValidJSON)
}

func TestRender(t *testing.T) {
	gen, err := deckgen.New(staticClient(modelResponse, nil))
	require.NoError(t, err)
	res, err := gen.Generate(context.Background(), "go", "")
	require.NoError(t, err)

	for _, format := range []render.Format{render.FormatPPTX, render.FormatPDF} {
		var buf bytes.Buffer
		require.NoError(t, gen.Render(context.Background(), res.Presentation, format, &buf), format)
		assert.NotZero(t, buf.Len(), format)
	}

	err = gen.Render(context.Background(), res.Presentation, render.Format("docx"), &bytes.Buffer{})
	assert.Equal(t, http.StatusBadRequest, deckgen.Classify(err).Status)
}

func TestRender_StampsCreator(t *testing.T) {
	gen, err := deckgen.New(staticClient(modelResponse, nil))
	require.NoError(t, err)
	res, err := gen.Generate(context.Background(), "go", "")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, gen.Render(context.Background(), res.Presentation, render.FormatPPTX, &buf))
	path := filepath.Join(t.TempDir(), "deck.pptx")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))

	pres, err := (&ppt.PPTXReader{}).Read(path)
	require.NoError(t, err)
	assert.Equal(t, "deckgen "+deckgen.Version, pres.GetDocumentProperties().Creator)
}

func TestClassify(t *testing.T) {
	assert.Equal(t, http.StatusOK, deckgen.Classify(nil).Status)

	f := deckgen.Classify(errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, f.Status)
	assert.False(t, strings.Contains(f.Message, "boom"), "internal details never leak")

	f = deckgen.Classify(render.ErrSave)
	assert.Equal(t, observability.OutcomeRender, f.Kind)

	f = deckgen.Classify(&llm.ConnectionError{Err: context.DeadlineExceeded})
	assert.True(t, f.Retryable)
	assert.Contains(t, f.Message, "in time")
}

func TestClassify_ExtractionKeepsStructuralReason(t *testing.T) {
	_, err := outline.Extract(`{"title": "T"}`)
	require.Error(t, err)

	f := deckgen.Classify(err)
	assert.Equal(t, http.StatusBadRequest, f.Status)
	assert.Equal(t, observability.OutcomeExtraction, f.Kind)
	assert.Contains(t, f.Message, "missing required fields: slides, subtitle")

	_, err = outline.Extract("I cannot help with that.")
	f = deckgen.Classify(err)
	assert.Contains(t, f.Message, "Please try again")
}

func TestVersion(t *testing.T) {
	assert.NotEmpty(t, deckgen.Version)
	assert.Equal(t, strings.TrimSpace(deckgen.Version), deckgen.Version)
}
